package services

import (
	"cmp"
	"context"
	"slices"
	"strconv"
	"strings"

	"inventory/internal/database"
	. "inventory/internal/models"
	"inventory/internal/repositories"

	logger "github.com/Bparsons0904/goLogger"
)

type RoomSummary struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Number          string `json:"number"`
	TotalEquipment  int    `json:"totalEquipment"`
	NeedMaintenance int    `json:"needMaintenance"`
	NeedReplacement int    `json:"needReplacement"`
}

type FloorStats struct {
	Rooms           int           `json:"rooms"`
	TotalEquipment  int           `json:"totalEquipment"`
	NeedMaintenance int           `json:"needMaintenance"`
	NeedReplacement int           `json:"needReplacement"`
	RoomSummaries   []RoomSummary `json:"roomSummaries"`
}

type DashboardStats struct {
	TotalRooms           int                    `json:"totalRooms"`
	TotalEquipment       int                    `json:"totalEquipment"`
	TotalMaintenanceOpen int                    `json:"totalMaintenanceOpen"`
	TotalReplacementOpen int                    `json:"totalReplacementOpen"`
	PerFloor             map[string]*FloorStats `json:"perFloor"`
	FloorOrder           []string               `json:"floorOrder"`
}

// AggregationService rolls rooms and their equipment up into dashboard statistics.
// Every call scans the full data set.
type AggregationService struct {
	db        database.DB
	rooms     repositories.RoomRepository
	equipment repositories.EquipmentRepository
	log       logger.Logger
}

func NewAggregationService(
	db database.DB,
	rooms repositories.RoomRepository,
	equipment repositories.EquipmentRepository,
) *AggregationService {
	return &AggregationService{
		db:        db,
		rooms:     rooms,
		equipment: equipment,
		log:       logger.New("AggregationService"),
	}
}

// ComputeStats buckets rooms by their floor value as stored. Floors without rooms
// do not appear.
func (s *AggregationService) ComputeStats(ctx context.Context) (DashboardStats, error) {
	log := s.log.Function("ComputeStats").TraceFromContext(ctx)

	rooms, err := s.rooms.List(ctx, s.db.SQL, "")
	if err != nil {
		return DashboardStats{}, log.Err("failed to list rooms", err)
	}

	stats := DashboardStats{PerFloor: make(map[string]*FloorStats)}

	for _, room := range rooms {
		equipment, err := s.equipment.ListByRoom(ctx, s.db.SQL, room.ID)
		if err != nil {
			return DashboardStats{}, log.Err("failed to list room equipment", err, "roomID", room.ID)
		}

		summary := RoomSummary{
			ID:              room.ID,
			Name:            room.Name,
			Number:          room.Number,
			TotalEquipment:  sumQuantity(room.ID, equipment),
			NeedMaintenance: CountOpen(room.Maintenance),
			NeedReplacement: CountOpen(room.Replacements),
		}

		floor, ok := stats.PerFloor[room.Floor]
		if !ok {
			floor = &FloorStats{RoomSummaries: []RoomSummary{}}
			stats.PerFloor[room.Floor] = floor
		}

		floor.Rooms++
		floor.TotalEquipment += summary.TotalEquipment
		floor.NeedMaintenance += summary.NeedMaintenance
		floor.NeedReplacement += summary.NeedReplacement
		floor.RoomSummaries = append(floor.RoomSummaries, summary)

		stats.TotalRooms++
		stats.TotalEquipment += summary.TotalEquipment
		stats.TotalMaintenanceOpen += summary.NeedMaintenance
		stats.TotalReplacementOpen += summary.NeedReplacement
	}

	stats.FloorOrder = SortFloorKeys(stats.PerFloor)

	return stats, nil
}

// sumQuantity only counts equipment whose owning room matches roomID.
func sumQuantity(roomID string, equipment []Equipment) int {
	total := 0
	for _, item := range equipment {
		if item.RoomID == roomID {
			total += item.Quantity
		}
	}
	return total
}

// SortFloorKeys orders numeric keys numerically, then the rest lexicographically.
func SortFloorKeys[V any](perFloor map[string]V) []string {
	keys := make([]string, 0, len(perFloor))
	for key := range perFloor {
		keys = append(keys, key)
	}

	slices.SortFunc(keys, func(a, b string) int {
		an, aErr := strconv.Atoi(a)
		bn, bErr := strconv.Atoi(b)
		switch {
		case aErr == nil && bErr == nil:
			if an != bn {
				return cmp.Compare(an, bn)
			}
			return strings.Compare(a, b)
		case aErr == nil:
			return -1
		case bErr == nil:
			return 1
		}
		return strings.Compare(a, b)
	})

	return keys
}
