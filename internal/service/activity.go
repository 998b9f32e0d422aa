package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"smart_home_face/internal/logger"
	"smart_home_face/internal/models"
	"smart_home_face/internal/repository"

	"github.com/google/uuid"
)

type ActivityLogService struct {
	repo repository.ActivityRepo
	log  *logger.Logger
}

func NewActivityLogService(repo repository.ActivityRepo, log *logger.Logger) *ActivityLogService {
	return &ActivityLogService{repo: repo, log: logger.OrNop(log)}
}

var (
	errInvalidTimeRange = errors.New("invalid time range: From must be <= To")
)

// normalizeToUTC returns t in UTC, preserving zero time values.
func normalizeToUTC(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.UTC()
}

// normalizeEventType trims spaces and uppercases the event type filter.
func normalizeEventType(s string) string {
	return strings.TrimSpace(strings.ToUpper(s))
}

// normalizeAndValidateFilter prepares query parameters and validates the time range.
func normalizeAndValidateFilter(f LogFilter) (time.Time, time.Time, string, error) {
	from := normalizeToUTC(f.From)
	to := normalizeToUTC(f.To)

	if !from.IsZero() && !to.IsZero() && from.After(to) {
		return time.Time{}, time.Time{}, "", errInvalidTimeRange
	}

	eventType := normalizeEventType(f.Type)
	return from, to, eventType, nil
}

func (s *ActivityLogService) List(ctx context.Context, f LogFilter) ([]models.ActivityEvent, error) {
	from, to, typ, err := normalizeAndValidateFilter(f)
	if err != nil {
		return nil, err
	}
	return s.repo.List(ctx, from, to, typ)
}

// Record appends an event. Failures are logged and never reach the caller.
func (s *ActivityLogService) Record(ctx context.Context, typ, description string, meta map[string]any) {
	ev := models.ActivityEvent{
		EventID:     uuid.NewString(),
		OccurredAt:  time.Now().UTC(),
		Type:        normalizeEventType(typ),
		Description: description,
	}
	if len(meta) > 0 {
		ev.Metadata = meta
	}
	// the entry outlives the request that produced it
	if err := s.repo.Append(context.WithoutCancel(ctx), ev); err != nil {
		s.log.Warnw("activity_append_failed", "type", ev.Type, "err", err)
	}
}
