package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nkiryanov/eventdesk/internal/apperrors"
	"github.com/nkiryanov/eventdesk/internal/cache"
	"github.com/nkiryanov/eventdesk/internal/models"
)

type fakeBeverages struct {
	categories []models.BeverageCategory
	listCalls  int
	created    []string
	createErr  error
}

func (f *fakeBeverages) Categories(_ context.Context, _ models.BeverageCategoriesParameters) (models.Page[models.BeverageCategory], error) {
	f.listCalls++
	page := models.Page[models.BeverageCategory]{PageInfo: models.DefaultPageInfo(), Data: f.categories}
	page.TotalCount = len(f.categories)
	return page, nil
}

func (f *fakeBeverages) CreateCategory(_ context.Context, in models.BeverageCategoryInput) (models.BeverageCategory, error) {
	if f.createErr != nil {
		return models.BeverageCategory{}, f.createErr
	}
	f.created = append(f.created, in.Name)
	c := models.BeverageCategory{ID: int64(len(f.categories) + 1), Name: in.Name}
	f.categories = append(f.categories, c)
	return c, nil
}

func TestBeverageCategories(t *testing.T) {
	ctx := context.Background()
	params := models.BeverageCategoriesParameters{PageNumber: 1, PageSize: 50}

	setup := func() (*BeverageCategories, *fakeBeverages) {
		api := &fakeBeverages{categories: []models.BeverageCategory{{ID: 1, Name: "Vinhos"}}}
		return NewBeverageCategories(api, cache.NewMemoryStore(), nil), api
	}

	t.Run("list is cached", func(t *testing.T) {
		svc, api := setup()

		for range 3 {
			page, err := svc.List(ctx, params)
			require.NoError(t, err)
			assert.Len(t, page.Data, 1)
		}
		assert.Equal(t, 1, api.listCalls)
	})

	t.Run("refresh refetches", func(t *testing.T) {
		svc, api := setup()

		_, err := svc.List(ctx, params)
		require.NoError(t, err)
		_, err = svc.Refresh(ctx, params)
		require.NoError(t, err)

		assert.Equal(t, 2, api.listCalls)
	})

	t.Run("blank name rejected before network", func(t *testing.T) {
		svc, api := setup()

		for _, name := range []string{"", "   ", "\t\n"} {
			_, err := svc.CreateCategory(ctx, name)
			require.ErrorIs(t, err, apperrors.ErrNameRequired)
		}
		assert.Empty(t, api.created)
	})

	t.Run("create trims and invalidates list", func(t *testing.T) {
		svc, api := setup()
		_, err := svc.List(ctx, params)
		require.NoError(t, err)

		created, err := svc.CreateCategory(ctx, "  Cervejas ")

		require.NoError(t, err)
		assert.Equal(t, "Cervejas", created.Name)
		assert.Equal(t, []string{"Cervejas"}, api.created)

		page, err := svc.List(ctx, params)
		require.NoError(t, err)
		assert.Len(t, page.Data, 2)
		assert.Equal(t, 2, api.listCalls)
	})

	t.Run("failed create keeps cache", func(t *testing.T) {
		svc, api := setup()
		_, err := svc.List(ctx, params)
		require.NoError(t, err)
		api.createErr = assert.AnError

		_, err = svc.CreateCategory(ctx, "Sumos")

		require.ErrorIs(t, err, assert.AnError)
		_, err = svc.List(ctx, params)
		require.NoError(t, err)
		assert.Equal(t, 1, api.listCalls)
	})
}
