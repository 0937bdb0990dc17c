package notification

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"unite-dashboard/internal/cache"
	"unite-dashboard/internal/config"
	"unite-dashboard/internal/domain"
	"unite-dashboard/internal/upstream"
)

// Service proxies the upstream notification feed with a short cache. Reads
// are per-viewer, so the bearer token is part of the key; mark-read drops
// the viewer's cached feed immediately so the badge count never lags.
type Service interface {
	List(ctx context.Context, token string, unreadOnly bool) (*domain.NotificationList, error)
	MarkRead(ctx context.Context, token, id string) error
	MarkAllRead(ctx context.Context, token string) error
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

func (s *service) List(ctx context.Context, token string, unreadOnly bool) (*domain.NotificationList, error) {
	unread := "all"
	if unreadOnly {
		unread = "unread"
	}
	key := cache.Key("notifications", token, unread)

	if cached, ok := s.cacheSvc.Get(ctx, key); ok {
		var list domain.NotificationList
		if json.Unmarshal(cached, &list) == nil {
			return &list, nil
		}
	}

	list, err := s.api.ListNotifications(ctx, token, unreadOnly)
	if err != nil {
		return nil, err
	}

	if encoded, err := json.Marshal(list); err == nil {
		s.cacheSvc.Set(ctx, key, encoded, s.cfg.CacheTTL)
	}
	return list, nil
}

func (s *service) MarkRead(ctx context.Context, token, id string) error {
	if err := s.api.MarkNotificationRead(ctx, token, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *service) MarkAllRead(ctx context.Context, token string) error {
	if err := s.api.MarkAllNotificationsRead(ctx, token); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *service) invalidate(ctx context.Context) {
	if err := s.cacheSvc.InvalidatePattern(ctx, "*notifications*"); err != nil {
		s.logger.Debug("notification cache invalidation failed", zap.Error(err))
	}
}
