package catalog

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/nkiryanov/eventdesk/internal/apperrors"
	"github.com/nkiryanov/eventdesk/internal/cache"
	"github.com/nkiryanov/eventdesk/internal/logger"
	"github.com/nkiryanov/eventdesk/internal/models"
)

const CategoriesTTL = 30 * time.Minute

type beverageAPI interface {
	Categories(ctx context.Context, p models.BeverageCategoriesParameters) (models.Page[models.BeverageCategory], error)
	CreateCategory(ctx context.Context, in models.BeverageCategoryInput) (models.BeverageCategory, error)
}

// BeverageCategories is the cached beverage category list
type BeverageCategories struct {
	api    beverageAPI
	lists  *cache.Family[models.Page[models.BeverageCategory]]
	logger logger.Logger
}

func NewBeverageCategories(api beverageAPI, store cache.Store, l logger.Logger) *BeverageCategories {
	l = logger.OrNoOp(l).With("service", "beverage-categories")

	return &BeverageCategories{
		api:    api,
		lists:  cache.NewFamily[models.Page[models.BeverageCategory]](store, "beverage-categories", CategoriesTTL, cache.WithLogger(l)),
		logger: l,
	}
}

func (b *BeverageCategories) query(p models.BeverageCategoriesParameters) *cache.Query[models.Page[models.BeverageCategory]] {
	fetch := func(ctx context.Context) (models.Page[models.BeverageCategory], error) {
		return b.api.Categories(ctx, p)
	}
	return b.lists.Query(fetch, p.SearchQuery, p.PageNumber, p.PageSize)
}

func (b *BeverageCategories) List(ctx context.Context, p models.BeverageCategoriesParameters) (models.Page[models.BeverageCategory], error) {
	return b.query(p).Get(ctx)
}

func (b *BeverageCategories) Refresh(ctx context.Context, p models.BeverageCategoriesParameters) (models.Page[models.BeverageCategory], error) {
	return b.query(p).Refresh(ctx)
}

// CreateCategory rejects blank names before calling the API
func (b *BeverageCategories) CreateCategory(ctx context.Context, name string) (models.BeverageCategory, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.BeverageCategory{}, apperrors.ErrNameRequired
	}

	category, err := b.api.CreateCategory(ctx, models.BeverageCategoryInput{Name: name})
	if err != nil {
		return models.BeverageCategory{}, fmt.Errorf("create beverage category: %w", err)
	}

	b.lists.InvalidateAll(ctx)
	b.logger.Info("Beverage category created", "id", category.ID, "name", category.Name)
	return category, nil
}
