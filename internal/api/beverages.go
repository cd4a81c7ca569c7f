package api

import (
	"context"
	"net/http"

	"github.com/nkiryanov/eventdesk/internal/models"
	"github.com/nkiryanov/eventdesk/internal/transport"
)

const beverageCategoriesPath = "/BeverageCatalog/categories"

type Beverages struct {
	c *transport.Client
}

func (b *Beverages) Categories(ctx context.Context, p models.BeverageCategoriesParameters) (models.Page[models.BeverageCategory], error) {
	return list[models.BeverageCategory](ctx, b.c, beverageCategoriesPath, p)
}

func (b *Beverages) CreateCategory(ctx context.Context, in models.BeverageCategoryInput) (models.BeverageCategory, error) {
	return send[models.BeverageCategory](ctx, b.c, http.MethodPost, beverageCategoriesPath, in)
}

func (b *Beverages) CatalogItems(ctx context.Context, p models.BeverageCatalogParameters) (models.Page[models.BeverageCatalogItem], error) {
	return list[models.BeverageCatalogItem](ctx, b.c, "/BeverageCatalog", p)
}

// Search is the unpaged autocomplete over the catalog, ten results unless Take says otherwise
func (b *Beverages) Search(ctx context.Context, p models.BeverageSearchParameters) ([]models.BeverageCatalogItem, error) {
	if p.Take == 0 {
		p.Take = 10
	}
	return get[[]models.BeverageCatalogItem](ctx, b.c, "/BeverageCatalog/Search", p)
}
