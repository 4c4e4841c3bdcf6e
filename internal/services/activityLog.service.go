package services

import (
	"context"
	"slices"
	"strings"

	"inventory/internal/database"
	"inventory/internal/events"
	. "inventory/internal/models"
	"inventory/internal/repositories"
	"inventory/internal/types"

	logger "github.com/Bparsons0904/goLogger"
	"gorm.io/datatypes"
)

const filterAll = "all"

// ActivityPayload is the caller-supplied part of an activity entry.
type ActivityPayload struct {
	Details    string
	Type       string
	References map[string]any
}

type ActivityPage struct {
	Entries []ActivityLog `json:"entries"`
	Total   int           `json:"total"`
}

// ActivityLogService appends audit entries and serves filtered views of them.
// Appends are best effort and never fail the caller.
type ActivityLogService struct {
	db       database.DB
	repo     repositories.ActivityLogRepository
	eventBus *events.EventBus
	log      logger.Logger
}

func NewActivityLogService(
	db database.DB,
	repo repositories.ActivityLogRepository,
	eventBus *events.EventBus,
) *ActivityLogService {
	return &ActivityLogService{
		db:       db,
		repo:     repo,
		eventBus: eventBus,
		log:      logger.New("ActivityLogService"),
	}
}

// Append records action for the actor stored in ctx. Without an actor it logs a
// warning and returns.
func (s *ActivityLogService) Append(ctx context.Context, action string, payload ActivityPayload) {
	log := s.log.Function("Append").TraceFromContext(ctx)

	actor, ok := types.ActorFromContext(ctx)
	if !ok {
		log.Warn("No active user, skipping activity log", "action", action, "error", ErrUnauthenticated)
		return
	}

	entry := buildActivityEntry(actor, action, payload)

	if err := s.repo.Create(ctx, s.db.SQL, &entry); err != nil {
		log.Warn("Failed to write activity log", "action", action, "error", err)
		return
	}

	if s.eventBus == nil {
		return
	}

	if err := s.eventBus.Publish(ctx, events.ACTIVITY_CHANNEL, events.Event{
		Type:   events.ACTIVITY_LOGGED,
		UserID: entry.UserID,
		Data: map[string]any{
			"id":     entry.ID.String(),
			"action": entry.Action,
			"type":   entry.Type,
		},
	}); err != nil {
		log.Warn("Failed to publish activity event", "action", action, "error", err)
	}
}

func buildActivityEntry(actor types.Actor, action string, payload ActivityPayload) ActivityLog {
	entryType := payload.Type
	if entryType == "" {
		entryType = DefaultActivityType
	}

	references := datatypes.JSONMap{}
	for key, value := range payload.References {
		references[key] = value
	}

	return ActivityLog{
		UserID:     actor.UserID,
		UserName:   actor.Name(),
		Email:      actor.Email,
		Role:       string(actor.Role),
		Action:     action,
		Details:    payload.Details,
		Type:       entryType,
		References: references,
		DeviceInfo: datatypes.JSONMap{
			"userAgent": actor.UserAgent,
			"platform":  actor.Platform,
		},
	}
}

// Query loads every entry, applies the filter, sorts newest first and pages the result.
// Total counts all matches before paging.
func (s *ActivityLogService) Query(ctx context.Context, filter types.ActivityFilter) (ActivityPage, error) {
	log := s.log.Function("Query").TraceFromContext(ctx)

	entries, err := s.repo.ListAll(ctx, s.db.SQL)
	if err != nil {
		return ActivityPage{}, log.Err("failed to load activity logs", err)
	}

	matched := FilterActivity(entries, filter)
	SortActivityNewestFirst(matched)

	return ActivityPage{
		Entries: paginate(matched, filter.Offset, filter.Limit),
		Total:   len(matched),
	}, nil
}

func normalizeFilter(value string) string {
	value = strings.ToLower(strings.TrimSpace(value))
	if value == filterAll {
		return ""
	}
	return value
}

// FilterActivity keeps entries matching every set field of filter. Type matches the
// action exactly, Role matches exactly, Search is a substring of details, user name or email.
// All comparisons ignore case.
func FilterActivity(entries []ActivityLog, filter types.ActivityFilter) []ActivityLog {
	action := normalizeFilter(filter.Type)
	role := normalizeFilter(filter.Role)
	search := strings.ToLower(filter.Search)

	matched := make([]ActivityLog, 0, len(entries))
	for _, entry := range entries {
		if action != "" && strings.ToLower(entry.Action) != action {
			continue
		}
		if role != "" && strings.ToLower(entry.Role) != role {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(entry.Details), search) &&
			!strings.Contains(strings.ToLower(entry.UserName), search) &&
			!strings.Contains(strings.ToLower(entry.Email), search) {
			continue
		}
		matched = append(matched, entry)
	}

	return matched
}

// SortActivityNewestFirst orders by timestamp descending. Entries without a timestamp
// go last and keep their relative order, as do entries with equal timestamps.
func SortActivityNewestFirst(entries []ActivityLog) {
	slices.SortStableFunc(entries, func(a, b ActivityLog) int {
		switch {
		case a.Timestamp == nil && b.Timestamp == nil:
			return 0
		case a.Timestamp == nil:
			return 1
		case b.Timestamp == nil:
			return -1
		}
		return b.Timestamp.Compare(*a.Timestamp)
	})
}

func paginate(entries []ActivityLog, offset, limit int) []ActivityLog {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(entries) {
		return []ActivityLog{}
	}

	end := len(entries)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}

	return entries[offset:end]
}
