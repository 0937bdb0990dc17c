package calendar

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"unite-dashboard/internal/cache"
	"unite-dashboard/internal/config"
	"unite-dashboard/internal/domain"
	"unite-dashboard/internal/upstream"
)

// Service serves the public calendar feed. The feed is unauthenticated and
// identical for every caller, so it is the cheapest surface to cache.
type Service interface {
	PublicEvents(ctx context.Context) ([]domain.PublicEvent, error)
}

type service struct {
	api      upstream.Client
	cacheSvc cache.Store
	cfg      *config.Config
	logger   *zap.Logger
}

func NewService(api upstream.Client, cacheSvc cache.Store, cfg *config.Config, logger *zap.Logger) Service {
	return &service{api: api, cacheSvc: cacheSvc, cfg: cfg, logger: logger}
}

func (s *service) PublicEvents(ctx context.Context) ([]domain.PublicEvent, error) {
	key := cache.Key("public-events")

	if cached, ok := s.cacheSvc.Get(ctx, key); ok {
		var events []domain.PublicEvent
		if json.Unmarshal(cached, &events) == nil {
			return events, nil
		}
	}

	events, err := s.api.PublicEvents(ctx)
	if err != nil {
		return nil, err
	}

	if encoded, err := json.Marshal(events); err == nil {
		s.cacheSvc.Set(ctx, key, encoded, s.cfg.CacheTTL)
	}
	return events, nil
}
