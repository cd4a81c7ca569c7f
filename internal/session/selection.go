package session

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/nkiryanov/eventdesk/internal/apperrors"
	"github.com/nkiryanov/eventdesk/internal/logger"
	"github.com/nkiryanov/eventdesk/internal/storage"
)

const (
	EventIDKey   = "current_event_id"
	EventNameKey = "current_event_name"
	EventSlugKey = "current_event_slug"

	selectionTTL = 7 * 24 * time.Hour
)

type SelectedEvent struct {
	ID   int64
	Name string
	Slug string
}

// Selection is the event the user works on, remembered for a week
type Selection struct {
	storage storage.Storage
	logger  logger.Logger
	now     func() time.Time

	mu      sync.RWMutex
	current *SelectedEvent
}

func NewSelection(st storage.Storage, l logger.Logger) *Selection {
	return &Selection{
		storage: st,
		logger:  logger.OrNoOp(l),
		now:     time.Now,
	}
}

func (s *Selection) Select(ctx context.Context, ev SelectedEvent) error {
	if ev.ID <= 0 {
		return fmt.Errorf("invalid event id %d", ev.ID)
	}

	opts := storage.Options{
		Expires:  s.now().Add(selectionTTL),
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	}
	entries := []struct{ key, value string }{
		{EventIDKey, strconv.FormatInt(ev.ID, 10)},
		{EventNameKey, ev.Name},
		{EventSlugKey, ev.Slug},
	}
	for _, e := range entries {
		if err := s.storage.Set(ctx, e.key, e.value, opts); err != nil {
			return fmt.Errorf("persist %s: %w", e.key, err)
		}
	}

	s.mu.Lock()
	s.current = &ev
	s.mu.Unlock()

	s.logger.Debug("Event selected", "event_id", ev.ID, "slug", ev.Slug)
	return nil
}

func (s *Selection) Clear(ctx context.Context) error {
	var errs []error
	for _, key := range []string{EventIDKey, EventNameKey, EventSlugKey} {
		if err := s.storage.Delete(ctx, key); err != nil {
			errs = append(errs, fmt.Errorf("delete %s: %w", key, err))
		}
	}

	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()

	return errors.Join(errs...)
}

// Load restores the selection from storage. Missing or broken id means nothing is selected
func (s *Selection) Load(ctx context.Context) (SelectedEvent, bool, error) {
	raw, ok, err := s.storage.Get(ctx, EventIDKey)
	if err != nil {
		return SelectedEvent{}, false, fmt.Errorf("read %s: %w", EventIDKey, err)
	}

	eventID, parseErr := strconv.ParseInt(raw, 10, 64)
	if !ok || parseErr != nil || eventID <= 0 {
		s.mu.Lock()
		s.current = nil
		s.mu.Unlock()
		return SelectedEvent{}, false, nil
	}

	ev := SelectedEvent{ID: eventID}
	if ev.Name, _, err = s.storage.Get(ctx, EventNameKey); err != nil {
		return SelectedEvent{}, false, fmt.Errorf("read %s: %w", EventNameKey, err)
	}
	if ev.Slug, _, err = s.storage.Get(ctx, EventSlugKey); err != nil {
		return SelectedEvent{}, false, fmt.Errorf("read %s: %w", EventSlugKey, err)
	}

	s.mu.Lock()
	s.current = &ev
	s.mu.Unlock()
	return ev, true, nil
}

func (s *Selection) Current() (SelectedEvent, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.current == nil {
		return SelectedEvent{}, false
	}
	return *s.current, true
}

func (s *Selection) EnsureSelected() (int64, error) {
	ev, ok := s.Current()
	if !ok {
		return 0, apperrors.ErrNoEventSelected
	}
	return ev.ID, nil
}
