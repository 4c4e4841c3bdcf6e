package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type EquipmentCondition string

const (
	EquipmentConditionGood EquipmentCondition = "Good"
	EquipmentConditionFair EquipmentCondition = "Fair"
	EquipmentConditionPoor EquipmentCondition = "Poor"
)

func (c EquipmentCondition) Valid() bool {
	switch c {
	case EquipmentConditionGood, EquipmentConditionFair, EquipmentConditionPoor:
		return true
	}
	return false
}

type EquipmentStatus string

const (
	EquipmentStatusAvailable        EquipmentStatus = "Available"
	EquipmentStatusInUse            EquipmentStatus = "In Use"
	EquipmentStatusUnderMaintenance EquipmentStatus = "Under Maintenance"
	EquipmentStatusOutOfService     EquipmentStatus = "Out of Service"
)

func (s EquipmentStatus) Valid() bool {
	switch s {
	case EquipmentStatusAvailable,
		EquipmentStatusInUse,
		EquipmentStatusUnderMaintenance,
		EquipmentStatusOutOfService:
		return true
	}
	return false
}

type Equipment struct {
	BaseUUIDModel
	RoomID    string             `gorm:"type:text;not null;index:idx_equipment_room" json:"roomId"`
	Floor     string             `gorm:"type:text;not null"                          json:"floor"`
	Name      string             `gorm:"type:text;not null"                          json:"name"`
	Quantity  int                `gorm:"type:int;not null"                           json:"quantity"`
	Condition EquipmentCondition `gorm:"type:text;not null"                          json:"condition"`
	Status    EquipmentStatus    `gorm:"type:text;not null"                          json:"status"`
	Notes     string             `gorm:"type:text"                                   json:"notes"`
}

func (Equipment) TableName() string {
	return "equipment"
}

func (e *Equipment) BeforeCreate(tx *gorm.DB) error {
	if e.RoomID == "" || e.Name == "" {
		return ErrMissingField
	}
	if e.Quantity <= 0 {
		return ErrMissingField
	}
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}
