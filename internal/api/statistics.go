package api

import (
	"context"

	"github.com/nkiryanov/eventdesk/internal/models"
	"github.com/nkiryanov/eventdesk/internal/transport"
)

type Statistics struct {
	c *transport.Client
}

func (s *Statistics) Dashboard(ctx context.Context, p models.DashboardStatsParameters) (models.DashboardStats, error) {
	return get[models.DashboardStats](ctx, s.c, "/Statistics/dashboard/"+id(p.EventID), p)
}
