package guestlist

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nkiryanov/eventdesk/internal/apperrors"
	"github.com/nkiryanov/eventdesk/internal/cache"
	"github.com/nkiryanov/eventdesk/internal/models"
)

type fakeGuests struct {
	listCalls  int
	lastParams models.GuestParameters
	arrived    map[int64]bool
}

func (f *fakeGuests) List(_ context.Context, p models.GuestParameters) (models.Page[models.Guest], error) {
	f.listCalls++
	f.lastParams = p
	return models.Page[models.Guest]{
		PageInfo: models.DefaultPageInfo(),
		Data:     []models.Guest{{ID: 1, Name: "Ana", Arrived: f.arrived[1]}},
	}, nil
}

func (f *fakeGuests) ConfirmPresence(_ context.Context, guestID int64, in models.ConfirmPresenceInput) (models.Guest, error) {
	return models.Guest{ID: guestID, PresenceConfirmed: true, PeopleConfirmed: &in.PeopleConfirmed}, nil
}

func (f *fakeGuests) ConfirmArrival(_ context.Context, guestID int64) (models.Guest, error) {
	f.arrived[guestID] = true
	return models.Guest{ID: guestID, Arrived: true}, nil
}

func (f *fakeGuests) CancelArrival(_ context.Context, guestID int64) (models.Guest, error) {
	return models.Guest{}, assert.AnError
}

type selected int64

func (s selected) EnsureSelected() (int64, error) {
	if s == 0 {
		return 0, apperrors.ErrNoEventSelected
	}
	return int64(s), nil
}

func TestService(t *testing.T) {
	ctx := context.Background()
	params := models.GuestParameters{PageNumber: 1, PageSize: 20}

	setup := func(event selected) (*Service, *fakeGuests) {
		api := &fakeGuests{arrived: map[int64]bool{}}
		return New(api, event, cache.NewMemoryStore(), nil), api
	}

	t.Run("requires selected event", func(t *testing.T) {
		svc, api := setup(0)

		_, err := svc.List(ctx, params)

		require.ErrorIs(t, err, apperrors.ErrNoEventSelected)
		assert.Equal(t, 0, api.listCalls)
	})

	t.Run("scoped to selected event and cached", func(t *testing.T) {
		svc, api := setup(7)

		for range 2 {
			_, err := svc.List(ctx, params)
			require.NoError(t, err)
		}

		assert.Equal(t, 1, api.listCalls)
		require.NotNil(t, api.lastParams.EventID)
		assert.Equal(t, int64(7), *api.lastParams.EventID)
	})

	t.Run("different parameters are different entries", func(t *testing.T) {
		svc, api := setup(7)
		category := int64(2)

		_, err := svc.List(ctx, params)
		require.NoError(t, err)
		_, err = svc.List(ctx, models.GuestParameters{PageNumber: 1, PageSize: 20, CategoryID: &category})
		require.NoError(t, err)

		assert.Equal(t, 2, api.listCalls)
	})

	t.Run("refresh", func(t *testing.T) {
		svc, api := setup(7)

		_, err := svc.List(ctx, params)
		require.NoError(t, err)
		_, err = svc.Refresh(ctx, params)
		require.NoError(t, err)

		assert.Equal(t, 2, api.listCalls)
	})

	t.Run("arrival invalidates list", func(t *testing.T) {
		svc, api := setup(7)
		_, err := svc.List(ctx, params)
		require.NoError(t, err)

		_, err = svc.ConfirmArrival(ctx, 1)
		require.NoError(t, err)

		page, err := svc.List(ctx, params)
		require.NoError(t, err)
		assert.True(t, page.Data[0].Arrived)
		assert.Equal(t, 2, api.listCalls)
	})

	t.Run("arrival from another run invalidates shared cache", func(t *testing.T) {
		api := &fakeGuests{arrived: map[int64]bool{}}
		store := cache.NewMemoryStore()
		_, err := New(api, selected(7), store, nil).List(ctx, params)
		require.NoError(t, err)

		_, err = New(api, selected(7), store, nil).ConfirmArrival(ctx, 1)
		require.NoError(t, err)

		page, err := New(api, selected(7), store, nil).List(ctx, params)
		require.NoError(t, err)
		assert.True(t, page.Data[0].Arrived)
		assert.Equal(t, 2, api.listCalls)
	})

	t.Run("confirm presence validates", func(t *testing.T) {
		svc, _ := setup(7)

		_, err := svc.ConfirmPresence(ctx, 1, models.ConfirmPresenceInput{PeopleConfirmed: -1})
		require.ErrorIs(t, err, apperrors.ErrValidation)

		guest, err := svc.ConfirmPresence(ctx, 1, models.ConfirmPresenceInput{PeopleConfirmed: 2})
		require.NoError(t, err)
		assert.True(t, guest.PresenceConfirmed)
	})

	t.Run("failed mutation keeps cache", func(t *testing.T) {
		svc, api := setup(7)
		_, err := svc.List(ctx, params)
		require.NoError(t, err)

		_, err = svc.CancelArrival(ctx, 1)
		require.ErrorIs(t, err, assert.AnError)

		_, err = svc.List(ctx, params)
		require.NoError(t, err)
		assert.Equal(t, 1, api.listCalls)
	})
}
