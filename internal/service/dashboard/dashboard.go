package dashboard

import (
	"context"
	"time"

	"github.com/nkiryanov/eventdesk/internal/cache"
	"github.com/nkiryanov/eventdesk/internal/logger"
	"github.com/nkiryanov/eventdesk/internal/models"
)

const StatsTTL = 10 * time.Minute

type statisticsAPI interface {
	Dashboard(ctx context.Context, p models.DashboardStatsParameters) (models.DashboardStats, error)
}

type eventSelection interface {
	EnsureSelected() (int64, error)
}

type Service struct {
	api       statisticsAPI
	selection eventSelection
	stats     *cache.Family[models.DashboardStats]
}

func New(api statisticsAPI, selection eventSelection, store cache.Store, l logger.Logger) *Service {
	l = logger.OrNoOp(l).With("service", "dashboard")

	return &Service{
		api:       api,
		selection: selection,
		stats:     cache.NewFamily[models.DashboardStats](store, "dashboard", StatsTTL, cache.WithLogger(l)),
	}
}

func (s *Service) query(p models.DashboardStatsParameters) (*cache.Query[models.DashboardStats], error) {
	eventID, err := s.selection.EnsureSelected()
	if err != nil {
		return nil, err
	}
	p.EventID = eventID

	fetch := func(ctx context.Context) (models.DashboardStats, error) {
		return s.api.Dashboard(ctx, p)
	}
	return s.stats.Query(fetch, eventID, p.Range, p.From, p.To), nil
}

// Stats of the selected event. Range is one of the backend presets (e.g. 7d, 30d) or empty with From/To
func (s *Service) Stats(ctx context.Context, p models.DashboardStatsParameters) (models.DashboardStats, error) {
	q, err := s.query(p)
	if err != nil {
		return models.DashboardStats{}, err
	}
	return q.Get(ctx)
}

func (s *Service) Refresh(ctx context.Context, p models.DashboardStatsParameters) (models.DashboardStats, error) {
	q, err := s.query(p)
	if err != nil {
		return models.DashboardStats{}, err
	}
	return q.Refresh(ctx)
}
