package types

import (
	"context"

	"inventory/internal/models"
)

type contextKey string

const actorKey contextKey = "actor"

// Actor is the authenticated user behind a request, plus the device it came from.
type Actor struct {
	UserID      string          `json:"userId"`
	Username    string          `json:"username"`
	DisplayName string          `json:"displayName"`
	Email       string          `json:"email"`
	Role        models.UserRole `json:"role"`
	UserAgent   string          `json:"userAgent"`
	Platform    string          `json:"platform"`
}

func NewActor(user *models.User, userAgent, platform string) Actor {
	return Actor{
		UserID:      user.ID.String(),
		Username:    user.Username,
		DisplayName: user.DisplayName,
		Email:       user.Email,
		Role:        user.Role,
		UserAgent:   userAgent,
		Platform:    platform,
	}
}

// Name falls back from username to display name to email.
func (a Actor) Name() string {
	user := models.User{Username: a.Username, DisplayName: a.DisplayName, Email: a.Email}
	return user.ActivityName()
}

func WithActor(ctx context.Context, actor Actor) context.Context {
	return context.WithValue(ctx, actorKey, actor)
}

func ActorFromContext(ctx context.Context) (Actor, bool) {
	actor, ok := ctx.Value(actorKey).(Actor)
	return actor, ok
}
