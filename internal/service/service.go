package service

import (
	"github.com/minio/minio-go/v7"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"unite-dashboard/internal/cache"
	"unite-dashboard/internal/config"
	"unite-dashboard/internal/repository"
	"unite-dashboard/internal/service/audit"
	"unite-dashboard/internal/service/calendar"
	"unite-dashboard/internal/service/dispatch"
	"unite-dashboard/internal/service/email"
	"unite-dashboard/internal/service/event"
	"unite-dashboard/internal/service/notification"
	"unite-dashboard/internal/service/reference"
	"unite-dashboard/internal/service/refresh"
	"unite-dashboard/internal/service/request"
	"unite-dashboard/internal/upstream"
)

type Services struct {
	Request      request.Service
	Dispatch     dispatch.Service
	Event        event.Service
	Notification notification.Service
	Reference    reference.Service
	Calendar     calendar.Service
	Refresh      refresh.Service
	Email        email.Service
	Audit        audit.Service
}

func NewServices(
	api upstream.Client,
	repos *repository.Repositories,
	redisClient *redis.Client,
	minioClient *minio.Client,
	cfg *config.Config,
	logger *zap.Logger,
) *Services {
	cacheStore := cache.New(redisClient, logger)

	emailService := email.NewService(cfg)
	refreshService := refresh.NewService(cfg.RefreshDebounce, cfg.RefreshRenudge, logger)
	auditService := audit.NewService(repos.AuditLog, repos.Journal, logger)

	dispatchService := dispatch.NewService(api, cacheStore, refreshService, repos.Journal, emailService, cfg, logger)
	requestService := request.NewService(api, cacheStore, refreshService, dispatchService, cfg, logger)
	eventService := event.NewService(api, cacheStore, refreshService, minioClient, cfg, logger)
	notificationService := notification.NewService(api, cacheStore, cfg, logger)
	referenceService := reference.NewService(api, cacheStore, cfg, logger)
	calendarService := calendar.NewService(api, cacheStore, cfg, logger)

	return &Services{
		Request:      requestService,
		Dispatch:     dispatchService,
		Event:        eventService,
		Notification: notificationService,
		Reference:    referenceService,
		Calendar:     calendarService,
		Refresh:      refreshService,
		Email:        emailService,
		Audit:        auditService,
	}
}
