package repositories

import (
	"context"
	"time"

	"inventory/internal/constants"
	"inventory/internal/database"
	. "inventory/internal/models"

	logger "github.com/Bparsons0904/goLogger"
	"gorm.io/gorm"
)

type UserRepository interface {
	GetByExternalID(ctx context.Context, tx *gorm.DB, externalID string) (*User, error)
	FindOrCreate(ctx context.Context, tx *gorm.DB, user *User) (*User, error)
	Update(ctx context.Context, tx *gorm.DB, user *User) error
	ClearCache(ctx context.Context, externalID string) error
}

type userRepository struct {
	db  database.DB
	log logger.Logger
}

func NewUserRepository(db database.DB) UserRepository {
	return &userRepository{
		db:  db,
		log: logger.New("userRepository"),
	}
}

func (r *userRepository) cacheEnabled() bool {
	return r.db.Cache.User != nil
}

func (r *userRepository) GetByExternalID(
	ctx context.Context,
	tx *gorm.DB,
	externalID string,
) (*User, error) {
	log := r.log.Function("GetByExternalID")

	var cached User
	if r.cacheEnabled() {
		found, err := database.NewCacheBuilder(r.db.Cache.User, externalID).
			WithContext(ctx).
			WithHash(constants.UserCachePrefix).
			Get(&cached)
		if err != nil {
			log.Warn("failed to get user from cache", "externalID", externalID, "error", err)
		}
		if found {
			return &cached, nil
		}
	}

	user, err := gorm.G[User](tx).Where("external_id = ?", externalID).First(ctx)
	if err != nil {
		return nil, storeError(err)
	}

	r.addToCache(ctx, &user)
	return &user, nil
}

// FindOrCreate returns the stored profile for user.ExternalID, refreshing its email and
// display name, or creates it on first sight.
func (r *userRepository) FindOrCreate(ctx context.Context, tx *gorm.DB, user *User) (*User, error) {
	log := r.log.Function("FindOrCreate")

	existing, err := r.GetByExternalID(ctx, tx, user.ExternalID)
	if err == nil {
		if existing.Email != user.Email || existing.DisplayName != user.DisplayName {
			existing.UpdateFromClaims(user.Email, user.DisplayName)
			if err := r.Update(ctx, tx, existing); err != nil {
				log.Warn("failed to refresh user profile", "externalID", user.ExternalID, "error", err)
			}
		}
		return existing, nil
	}
	if !isNotFound(err) {
		return nil, log.Err("failed to look up user", err, "externalID", user.ExternalID)
	}

	now := time.Now()
	user.LastLoginAt = &now
	if err := gorm.G[User](tx).Create(ctx, user); err != nil {
		return nil, log.Err("failed to create user", storeError(err), "externalID", user.ExternalID)
	}

	r.addToCache(ctx, user)
	return user, nil
}

func (r *userRepository) Update(ctx context.Context, tx *gorm.DB, user *User) error {
	log := r.log.Function("Update")

	if err := tx.WithContext(ctx).Save(user).Error; err != nil {
		return log.Err("failed to update user", storeError(err), "userID", user.ID)
	}

	if err := r.ClearCache(ctx, user.ExternalID); err != nil {
		log.Warn("failed to clear user cache after update", "userID", user.ID, "error", err)
	}

	return nil
}

func (r *userRepository) ClearCache(ctx context.Context, externalID string) error {
	if !r.cacheEnabled() {
		return nil
	}

	return database.NewCacheBuilder(r.db.Cache.User, externalID).
		WithContext(ctx).
		WithHash(constants.UserCachePrefix).
		Delete()
}

func (r *userRepository) addToCache(ctx context.Context, user *User) {
	if !r.cacheEnabled() {
		return
	}

	if err := database.NewCacheBuilder(r.db.Cache.User, user.ExternalID).
		WithContext(ctx).
		WithHash(constants.UserCachePrefix).
		WithStruct(user).
		WithTTL(constants.UserCacheExpiry).
		Set(); err != nil {
		r.log.Function("addToCache").
			Warn("failed to add user to cache", "userID", user.ID, "error", err)
	}
}
