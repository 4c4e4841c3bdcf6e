package models

import (
	"strconv"
	"time"

	"gorm.io/gorm"
)

// Floor is keyed by its number rendered as text, so rooms reference it by that string.
type Floor struct {
	ID        string    `gorm:"type:text;primaryKey"          json:"id"`
	Number    int       `gorm:"type:int;not null;uniqueIndex" json:"number"`
	Name      string    `gorm:"type:text"                     json:"name"`
	CreatedAt time.Time `gorm:"autoCreateTime"                json:"createdAt"`
}

func FloorID(number int) string {
	return strconv.Itoa(number)
}

func (f *Floor) BeforeCreate(tx *gorm.DB) error {
	if f.ID == "" {
		f.ID = FloorID(f.Number)
	}
	return nil
}
