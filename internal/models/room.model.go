package models

import (
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// LegacyEquipmentItem is the shape of the equipment array stored on room rows before
// equipment moved to its own table. It is read back unchanged and never written by new code.
type LegacyEquipmentItem struct {
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	Condition string `json:"condition,omitempty"`
	Status    string `json:"status,omitempty"`
}

type Room struct {
	ID              string                                   `gorm:"type:text;primaryKey"                                     json:"id"`
	Floor           string                                   `gorm:"type:text;not null;uniqueIndex:idx_rooms_floor_number" json:"floor"`
	Number          string                                   `gorm:"type:text;not null;uniqueIndex:idx_rooms_floor_number" json:"number"`
	Name            string                                   `gorm:"type:text"                                                json:"name"`
	LegacyEquipment datatypes.JSONSlice[LegacyEquipmentItem] `gorm:"column:equipment"                                         json:"equipment"`
	Maintenance     datatypes.JSONSlice[RoomRecord]          `gorm:"column:maintenance"                                       json:"maintenance"`
	Replacements    datatypes.JSONSlice[RoomRecord]          `gorm:"column:replacements"                                      json:"replacements"`
	Versioned
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"lastModified"`
}

func RoomID(floor, number string) string {
	return fmt.Sprintf("%s-%s", floor, number)
}

func (r *Room) GetID() string { return r.ID }

// Records returns the embedded array for kind; the zero RecordKind yields nil.
func (r *Room) Records(kind RecordKind) []RoomRecord {
	switch kind {
	case RecordKindMaintenance:
		return r.Maintenance
	case RecordKindReplacement:
		return r.Replacements
	}
	return nil
}

func (r *Room) SetRecords(kind RecordKind, records []RoomRecord) {
	switch kind {
	case RecordKindMaintenance:
		r.Maintenance = records
	case RecordKindReplacement:
		r.Replacements = records
	}
}

func (r *Room) BeforeCreate(tx *gorm.DB) error {
	if r.Floor == "" || r.Number == "" {
		return ErrMissingField
	}
	if r.ID == "" {
		r.ID = RoomID(r.Floor, r.Number)
	}
	if r.LegacyEquipment == nil {
		r.LegacyEquipment = datatypes.JSONSlice[LegacyEquipmentItem]{}
	}
	if r.Maintenance == nil {
		r.Maintenance = datatypes.JSONSlice[RoomRecord]{}
	}
	if r.Replacements == nil {
		r.Replacements = datatypes.JSONSlice[RoomRecord]{}
	}
	return nil
}
