package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"inventory/config"
	"inventory/internal/database"
	. "inventory/internal/models"
	"inventory/internal/repositories"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/golang-jwt/jwt/v5"
)

// IdentityClaims are the claims read from a bearer token.
type IdentityClaims struct {
	Email             string `json:"email,omitempty"`
	Name              string `json:"name,omitempty"`
	PreferredUsername string `json:"preferred_username,omitempty"`
	Role              string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// AuthService validates HS256 bearer tokens and maps them to local user profiles.
type AuthService struct {
	secret      []byte
	issuer      string
	emailDomain string
	db          database.DB
	users       repositories.UserRepository
	log         logger.Logger
}

func NewAuthService(
	cfg config.Config,
	db database.DB,
	users repositories.UserRepository,
) *AuthService {
	return &AuthService{
		secret:      []byte(cfg.JWTSecret),
		issuer:      cfg.JWTIssuer,
		emailDomain: strings.ToLower(strings.TrimPrefix(strings.TrimSpace(cfg.AccountEmailDomain), "@")),
		db:          db,
		users:       users,
		log:         logger.New("AuthService"),
	}
}

func (s *AuthService) parse(tokenString string) (*IdentityClaims, error) {
	options := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if s.issuer != "" {
		options = append(options, jwt.WithIssuer(s.issuer))
	}

	claims := &IdentityClaims{}
	token, err := jwt.ParseWithClaims(
		tokenString,
		claims,
		func(token *jwt.Token) (any, error) { return s.secret, nil },
		options...,
	)
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrTokenSignatureInvalid
	}
	if claims.Subject == "" {
		return nil, jwt.ErrTokenRequiredClaimMissing
	}

	return claims, nil
}

// AllowedEmail reports whether email belongs to the configured account domain.
// Any email is allowed when no domain is configured.
func (s *AuthService) AllowedEmail(email string) bool {
	if s.emailDomain == "" {
		return true
	}
	return strings.HasSuffix(strings.ToLower(strings.TrimSpace(email)), "@"+s.emailDomain)
}

// Authenticate validates tokenString and returns the caller's profile, creating it on
// first sight.
func (s *AuthService) Authenticate(ctx context.Context, tokenString string) (*User, error) {
	log := s.log.Function("Authenticate").TraceFromContext(ctx)

	claims, err := s.parse(tokenString)
	if err != nil {
		log.Debug("token rejected", "error", err)
		return nil, fmt.Errorf("%w: %w", ErrUnauthenticated, err)
	}

	if !s.AllowedEmail(claims.Email) {
		log.Warn("email outside account domain", "subject", claims.Subject)
		return nil, fmt.Errorf("%w: email domain not allowed", ErrUnauthenticated)
	}

	role := UserRole(strings.ToLower(claims.Role))
	if !role.Valid() {
		role = RoleFaculty
	}

	user, err := s.users.FindOrCreate(ctx, s.db.SQL, &User{
		ExternalID:  claims.Subject,
		Username:    claims.PreferredUsername,
		DisplayName: claims.Name,
		Email:       claims.Email,
		Role:        role,
	})
	if err != nil {
		return nil, log.Err("failed to load user profile", err, "subject", claims.Subject)
	}

	return user, nil
}

// IssueToken signs claims with the service secret, expiring after ttl.
func (s *AuthService) IssueToken(claims IdentityClaims, ttl time.Duration) (string, error) {
	now := time.Now()
	if claims.Issuer == "" {
		claims.Issuer = s.issuer
	}
	claims.IssuedAt = jwt.NewNumericDate(now)
	claims.ExpiresAt = jwt.NewNumericDate(now.Add(ttl))

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}
