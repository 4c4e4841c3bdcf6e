package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const DefaultActivityType = "general"

// ActivityLog is an append-only audit row. Timestamp is nil only for rows imported without one.
type ActivityLog struct {
	ID         uuid.UUID         `gorm:"type:uuid;primaryKey"                    json:"id"`
	UserID     string            `gorm:"type:text;index:idx_activity_logs_user" json:"userId"`
	UserName   string            `gorm:"type:text"                               json:"userName"`
	Email      string            `gorm:"type:text"                               json:"email"`
	Role       string            `gorm:"type:text"                               json:"role"`
	Action     string            `gorm:"type:text;not null"                      json:"action"`
	Details    string            `gorm:"type:text"                               json:"details"`
	Type       string            `gorm:"type:text;not null;default:'general'"    json:"type"`
	References datatypes.JSONMap `gorm:"column:references"                       json:"references"`
	DeviceInfo datatypes.JSONMap `gorm:"column:device_info"                      json:"deviceInfo"`
	Timestamp  *time.Time        `gorm:"index:idx_activity_logs_timestamp"       json:"timestamp"`
}

func (a *ActivityLog) BeforeCreate(tx *gorm.DB) error {
	if a.Action == "" {
		return ErrMissingField
	}
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if a.Type == "" {
		a.Type = DefaultActivityType
	}
	if a.References == nil {
		a.References = datatypes.JSONMap{}
	}
	if a.DeviceInfo == nil {
		a.DeviceInfo = datatypes.JSONMap{}
	}
	return nil
}
