package guestlist

import (
	"context"
	"fmt"
	"time"

	"github.com/nkiryanov/eventdesk/internal/cache"
	"github.com/nkiryanov/eventdesk/internal/logger"
	"github.com/nkiryanov/eventdesk/internal/models"
	"github.com/nkiryanov/eventdesk/internal/service/validate"
)

const ListTTL = 20 * time.Minute

type guestAPI interface {
	List(ctx context.Context, p models.GuestParameters) (models.Page[models.Guest], error)
	ConfirmPresence(ctx context.Context, guestID int64, in models.ConfirmPresenceInput) (models.Guest, error)
	ConfirmArrival(ctx context.Context, guestID int64) (models.Guest, error)
	CancelArrival(ctx context.Context, guestID int64) (models.Guest, error)
}

type eventSelection interface {
	EnsureSelected() (int64, error)
}

// Service is the guest list of the selected event
type Service struct {
	api       guestAPI
	selection eventSelection
	lists     *cache.Family[models.Page[models.Guest]]
	logger    logger.Logger
}

func New(api guestAPI, selection eventSelection, store cache.Store, l logger.Logger) *Service {
	l = logger.OrNoOp(l).With("service", "guestlist")

	return &Service{
		api:       api,
		selection: selection,
		lists:     cache.NewFamily[models.Page[models.Guest]](store, "guests", ListTTL, cache.WithLogger(l)),
		logger:    l,
	}
}

func optional(v *int64) string {
	if v == nil {
		return ""
	}
	return fmt.Sprint(*v)
}

func (s *Service) query(p models.GuestParameters) (*cache.Query[models.Page[models.Guest]], error) {
	eventID, err := s.selection.EnsureSelected()
	if err != nil {
		return nil, err
	}
	p.EventID = &eventID

	fetch := func(ctx context.Context) (models.Page[models.Guest], error) {
		return s.api.List(ctx, p)
	}
	return s.lists.Query(fetch,
		eventID, optional(p.GuestID), optional(p.CategoryID), p.AvailabilityType,
		p.SearchQuery, p.StartDate, p.EndDate, p.PageNumber, p.PageSize,
	), nil
}

func (s *Service) List(ctx context.Context, p models.GuestParameters) (models.Page[models.Guest], error) {
	q, err := s.query(p)
	if err != nil {
		return models.Page[models.Guest]{}, err
	}
	return q.Get(ctx)
}

func (s *Service) Refresh(ctx context.Context, p models.GuestParameters) (models.Page[models.Guest], error) {
	q, err := s.query(p)
	if err != nil {
		return models.Page[models.Guest]{}, err
	}
	return q.Refresh(ctx)
}

func (s *Service) ConfirmPresence(ctx context.Context, guestID int64, in models.ConfirmPresenceInput) (models.Guest, error) {
	if err := validate.Struct(in); err != nil {
		return models.Guest{}, err
	}

	return s.mutate(ctx, "confirm presence", guestID, func(ctx context.Context) (models.Guest, error) {
		return s.api.ConfirmPresence(ctx, guestID, in)
	})
}

func (s *Service) ConfirmArrival(ctx context.Context, guestID int64) (models.Guest, error) {
	return s.mutate(ctx, "confirm arrival", guestID, func(ctx context.Context) (models.Guest, error) {
		return s.api.ConfirmArrival(ctx, guestID)
	})
}

func (s *Service) CancelArrival(ctx context.Context, guestID int64) (models.Guest, error) {
	return s.mutate(ctx, "cancel arrival", guestID, func(ctx context.Context) (models.Guest, error) {
		return s.api.CancelArrival(ctx, guestID)
	})
}

func (s *Service) mutate(ctx context.Context, op string, guestID int64, call func(context.Context) (models.Guest, error)) (models.Guest, error) {
	guest, err := call(ctx)
	if err != nil {
		return models.Guest{}, fmt.Errorf("%s for guest %d: %w", op, guestID, err)
	}

	s.lists.InvalidateAll(ctx)
	s.logger.Info("Guest updated", "op", op, "guest_id", guestID)
	return guest, nil
}
