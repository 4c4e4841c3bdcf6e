package seed

import (
	"context"

	. "inventory/internal/models"

	logger "github.com/Bparsons0904/goLogger"
	"gorm.io/gorm"
)

type seedRoom struct {
	floor     string
	number    string
	name      string
	equipment []Equipment
}

func Seed(ctx context.Context, db *gorm.DB, log logger.Logger) error {
	log = log.Function("seed")
	log.Info("Seeding development data")

	floors := []Floor{
		{Number: 1, Name: "Ground"},
		{Number: 2, Name: "Science Wing"},
	}
	for _, floor := range floors {
		if err := gorm.G[Floor](db).Create(ctx, &floor); err != nil {
			return log.Err("failed to create floor", err, "floor", floor.Number)
		}
	}

	rooms := []seedRoom{
		{
			floor:  "1",
			number: "101",
			name:   "Computer Lab",
			equipment: []Equipment{
				{Name: "Desktop PC", Quantity: 30, Condition: EquipmentConditionGood, Status: EquipmentStatusInUse},
				{Name: "Projector", Quantity: 1, Condition: EquipmentConditionFair, Status: EquipmentStatusAvailable},
			},
		},
		{
			floor:  "1",
			number: "102",
			name:   "Faculty Room",
			equipment: []Equipment{
				{Name: "Printer", Quantity: 2, Condition: EquipmentConditionPoor, Status: EquipmentStatusUnderMaintenance},
			},
		},
		{
			floor:  "2",
			number: "201",
			name:   "Chemistry Lab",
			equipment: []Equipment{
				{Name: "Fume Hood", Quantity: 4, Condition: EquipmentConditionGood, Status: EquipmentStatusAvailable},
			},
		},
	}

	for _, seed := range rooms {
		room := Room{Floor: seed.floor, Number: seed.number, Name: seed.name}
		if err := gorm.G[Room](db).Create(ctx, &room); err != nil {
			return log.Err("failed to create room", err, "room", seed.number)
		}

		for _, item := range seed.equipment {
			item.RoomID = room.ID
			item.Floor = room.Floor
			if err := gorm.G[Equipment](db).Create(ctx, &item); err != nil {
				return log.Err("failed to create equipment", err, "room", room.ID, "equipment", item.Name)
			}
		}

		log.Info("Seeded room", "roomID", room.ID, "equipment", len(seed.equipment))
	}

	return nil
}
