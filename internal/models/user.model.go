package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

type UserRole string

const (
	RoleAdmin             UserRole = "admin"
	RoleFaculty           UserRole = "faculty"
	RoleITOffice          UserRole = "it office"
	RolePropertyCustodian UserRole = "property custodian"
)

func (r UserRole) Valid() bool {
	switch r {
	case RoleAdmin, RoleFaculty, RoleITOffice, RolePropertyCustodian:
		return true
	}
	return false
}

// User is the local profile for a token subject. Profiles are created on first sight.
type User struct {
	BaseUUIDModel
	ExternalID  string     `gorm:"type:text;not null;uniqueIndex" json:"externalId"`
	Username    string     `gorm:"type:text"                      json:"username"`
	DisplayName string     `gorm:"type:text"                      json:"displayName"`
	Email       string     `gorm:"type:text;index"                json:"email"`
	Role        UserRole   `gorm:"type:text;not null"             json:"role"`
	LastLoginAt *time.Time `gorm:"type:timestamp"                 json:"lastLoginAt,omitempty"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ExternalID == "" {
		return ErrMissingField
	}
	if err := u.BaseUUIDModel.BeforeCreate(tx); err != nil {
		return err
	}
	if u.Role == "" {
		u.Role = RoleFaculty
	}
	if u.DisplayName == "" {
		u.DisplayName = u.Username
	}
	return nil
}

// ActivityName picks the first non-empty of username, display name and email.
func (u *User) ActivityName() string {
	for _, name := range []string{u.Username, u.DisplayName, u.Email} {
		if strings.TrimSpace(name) != "" {
			return name
		}
	}
	return ""
}

// UpdateFromClaims refreshes the mutable profile fields from a validated token.
func (u *User) UpdateFromClaims(email, name string) {
	now := time.Now()
	u.LastLoginAt = &now

	if email != "" {
		u.Email = email
	}
	if name != "" {
		u.DisplayName = name
	}
}
