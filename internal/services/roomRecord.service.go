package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"inventory/internal/database"
	. "inventory/internal/models"
	"inventory/internal/repositories"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/google/uuid"
)

const recordIDLength = 12

// recordMutation edits a copy of a room's record array and reports the record it touched.
type recordMutation func(records []RoomRecord) ([]RoomRecord, RoomRecord, error)

// RoomRecordService manages the maintenance and replacement arrays embedded in room rows.
// Every write is a compare-and-set on the room's row version.
type RoomRecordService struct {
	db         database.DB
	rooms      repositories.RoomRepository
	maxRetries int
	now        func() time.Time
	newID      func() string
	log        logger.Logger
}

func NewRoomRecordService(
	db database.DB,
	rooms repositories.RoomRepository,
	maxRetries int,
) *RoomRecordService {
	return &RoomRecordService{
		db:         db,
		rooms:      rooms,
		maxRetries: maxRetries,
		now:        func() time.Time { return time.Now().UTC() },
		newID:      newRecordID,
		log:        logger.New("RoomRecordService"),
	}
}

func newRecordID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:recordIDLength]
}

func (s *RoomRecordService) List(ctx context.Context, roomID string, kind RecordKind) ([]RoomRecord, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidKind, kind)
	}

	room, err := s.rooms.GetByID(ctx, s.db.SQL, roomID)
	if err != nil {
		return nil, err
	}

	records := room.Records(kind)
	if records == nil {
		return []RoomRecord{}, nil
	}
	return records, nil
}

// Append adds record at the end of the kind's array as unresolved with a fresh id.
func (s *RoomRecordService) Append(
	ctx context.Context,
	roomID string,
	kind RecordKind,
	record RoomRecord,
) (RoomRecord, error) {
	return s.mutate(ctx, "Append", roomID, kind, func(records []RoomRecord) ([]RoomRecord, RoomRecord, error) {
		added := record
		added.ID = s.newID()
		added.Resolved = false
		added.ResolvedAt = nil
		added.CreatedAt = s.now()
		return append(records, added), added, nil
	})
}

// Resolve marks the record at index resolved. Resolving an already resolved record
// refreshes ResolvedAt.
func (s *RoomRecordService) Resolve(
	ctx context.Context,
	roomID string,
	kind RecordKind,
	index int,
) (RoomRecord, error) {
	return s.mutate(ctx, "Resolve", roomID, kind, func(records []RoomRecord) ([]RoomRecord, RoomRecord, error) {
		if index < 0 || index >= len(records) {
			return nil, RoomRecord{}, fmt.Errorf("%w: %d of %d", ErrInvalidIndex, index, len(records))
		}
		s.markResolved(&records[index])
		return records, records[index], nil
	})
}

// Remove splices out the record at index. Later records shift down by one.
func (s *RoomRecordService) Remove(
	ctx context.Context,
	roomID string,
	kind RecordKind,
	index int,
) (RoomRecord, error) {
	return s.mutate(ctx, "Remove", roomID, kind, func(records []RoomRecord) ([]RoomRecord, RoomRecord, error) {
		if index < 0 || index >= len(records) {
			return nil, RoomRecord{}, fmt.Errorf("%w: %d of %d", ErrInvalidIndex, index, len(records))
		}
		removed := records[index]
		return append(records[:index], records[index+1:]...), removed, nil
	})
}

func (s *RoomRecordService) ResolveByID(
	ctx context.Context,
	roomID string,
	kind RecordKind,
	recordID string,
) (RoomRecord, error) {
	return s.mutate(ctx, "ResolveByID", roomID, kind, func(records []RoomRecord) ([]RoomRecord, RoomRecord, error) {
		index, err := indexOfRecord(records, recordID)
		if err != nil {
			return nil, RoomRecord{}, err
		}
		s.markResolved(&records[index])
		return records, records[index], nil
	})
}

func (s *RoomRecordService) RemoveByID(
	ctx context.Context,
	roomID string,
	kind RecordKind,
	recordID string,
) (RoomRecord, error) {
	return s.mutate(ctx, "RemoveByID", roomID, kind, func(records []RoomRecord) ([]RoomRecord, RoomRecord, error) {
		index, err := indexOfRecord(records, recordID)
		if err != nil {
			return nil, RoomRecord{}, err
		}
		removed := records[index]
		return append(records[:index], records[index+1:]...), removed, nil
	})
}

func (s *RoomRecordService) markResolved(record *RoomRecord) {
	resolvedAt := s.now()
	record.Resolved = true
	record.ResolvedAt = &resolvedAt
}

func indexOfRecord(records []RoomRecord, recordID string) (int, error) {
	for i, record := range records {
		if record.ID != "" && record.ID == recordID {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: %s", ErrRecordNotFound, recordID)
}

func (s *RoomRecordService) mutate(
	ctx context.Context,
	operation string,
	roomID string,
	kind RecordKind,
	fn recordMutation,
) (RoomRecord, error) {
	log := s.log.Function(operation).TraceFromContext(ctx)

	if !kind.Valid() {
		return RoomRecord{}, fmt.Errorf("%w: %s", ErrInvalidKind, kind)
	}

	var touched RoomRecord
	err := repositories.WithRetry(
		ctx,
		s.maxRetries,
		roomID,
		func(ctx context.Context, id string) (*Room, error) {
			return s.rooms.GetByID(ctx, s.db.SQL, id)
		},
		func(ctx context.Context, room *Room, expectedVersion int64) (int64, error) {
			return s.rooms.UpdateRecordsIfVersion(ctx, s.db.SQL, room, expectedVersion)
		},
		func(room *Room) error {
			records := append([]RoomRecord{}, room.Records(kind)...)
			updated, record, err := fn(records)
			if err != nil {
				return err
			}
			room.SetRecords(kind, updated)
			touched = record
			return nil
		},
	)
	if err != nil {
		return RoomRecord{}, log.Err(
			"failed to update room records",
			err,
			"roomID", roomID,
			"kind", kind,
		)
	}

	return touched, nil
}
