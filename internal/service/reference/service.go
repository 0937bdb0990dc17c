package reference

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"unite-dashboard/internal/cache"
	"unite-dashboard/internal/config"
	"unite-dashboard/internal/domain"
	"unite-dashboard/internal/upstream"
)

// Reference data changes rarely, so it gets a longer TTL than the request
// lists regardless of the configured cache window.
const referenceTTL = 10 * time.Minute

type Service interface {
	Stakeholders(ctx context.Context, token string) ([]domain.Stakeholder, error)
	Coordinators(ctx context.Context, token string) ([]domain.Coordinator, error)
	Districts(ctx context.Context, token string) ([]domain.District, error)
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

func (s *service) Stakeholders(ctx context.Context, token string) ([]domain.Stakeholder, error) {
	return cachedList(ctx, s, "stakeholders", func() ([]domain.Stakeholder, error) {
		return s.api.ListStakeholders(ctx, token)
	})
}

func (s *service) Coordinators(ctx context.Context, token string) ([]domain.Coordinator, error) {
	return cachedList(ctx, s, "coordinators", func() ([]domain.Coordinator, error) {
		return s.api.ListCoordinators(ctx, token)
	})
}

func (s *service) Districts(ctx context.Context, token string) ([]domain.District, error) {
	return cachedList(ctx, s, "districts", func() ([]domain.District, error) {
		return s.api.ListDistricts(ctx, token)
	})
}

// cachedList is the shared read-through path. Reference lists are not
// viewer-scoped upstream, so the key carries only the resource name.
func cachedList[T any](ctx context.Context, s *service, name string, fetch func() ([]T, error)) ([]T, error) {
	key := cache.Key("reference", name)

	if cached, ok := s.cacheSvc.Get(ctx, key); ok {
		var items []T
		if json.Unmarshal(cached, &items) == nil {
			return items, nil
		}
	}

	items, err := fetch()
	if err != nil {
		return nil, err
	}

	if encoded, err := json.Marshal(items); err == nil {
		s.cacheSvc.Set(ctx, key, encoded, referenceTTL)
	}
	return items, nil
}
