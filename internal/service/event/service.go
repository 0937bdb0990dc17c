package event

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"

	"unite-dashboard/internal/cache"
	"unite-dashboard/internal/config"
	"unite-dashboard/internal/domain"
	"unite-dashboard/internal/service/refresh"
	"unite-dashboard/internal/upstream"
)

var (
	ErrAdminOnly       = errors.New("only a system administrator may create events directly")
	ErrPosterUnstorage = errors.New("poster storage is not configured")
	ErrInvalidSchedule = errors.New("event end must come after its start")
)

// Service handles admin direct event creation. Direct events skip the
// request workflow, so the only gatekeeping here is the admin check and
// basic input sanity; the upstream enforces everything else.
type Service interface {
	Create(ctx context.Context, viewer domain.Viewer, token string, input domain.CreateEventInput) error
	UploadPoster(ctx context.Context, viewer domain.Viewer, fileName string, size int64, mimeType string, reader io.Reader) (string, error)
}

type service struct {
	api         upstream.Client
	cacheSvc    cache.Store
	refresher   refresh.Service
	minioClient *minio.Client
	cfg         *config.Config
	logger      *zap.Logger
}

func NewService(
	api upstream.Client,
	cacheSvc cache.Store,
	refresher refresh.Service,
	minioClient *minio.Client,
	cfg *config.Config,
	logger *zap.Logger,
) Service {
	return &service{
		api:         api,
		cacheSvc:    cacheSvc,
		refresher:   refresher,
		minioClient: minioClient,
		cfg:         cfg,
		logger:      logger,
	}
}

func (s *service) Create(ctx context.Context, viewer domain.Viewer, token string, input domain.CreateEventInput) error {
	if !viewer.IsAdmin {
		return ErrAdminOnly
	}
	if !input.EndsAt.After(input.StartsAt) {
		return ErrInvalidSchedule
	}

	if err := s.api.CreateEvent(ctx, token, input, true); err != nil {
		return err
	}

	// A direct event shows up in the calendar feed and in event listings,
	// so both cached surfaces drop.
	if err := s.cacheSvc.InvalidatePattern(ctx, "*events*"); err != nil {
		s.logger.Warn("event cache invalidation failed", zap.Error(err))
	}
	s.refresher.BroadcastAfterMutation()
	return nil
}

// UploadPoster stores the poster image and returns its public URL for the
// create payload. The object key is time-bucketed so buckets stay browsable.
func (s *service) UploadPoster(ctx context.Context, viewer domain.Viewer, fileName string, size int64, mimeType string, reader io.Reader) (string, error) {
	if !viewer.IsAdmin {
		return "", ErrAdminOnly
	}
	if s.minioClient == nil {
		return "", ErrPosterUnstorage
	}

	objectPath := fmt.Sprintf("posters/%s/%s", time.Now().Format("2006/01"), uuid.New().String())
	_, err := s.minioClient.PutObject(ctx, s.cfg.MinIOBucket, objectPath, reader, size, minio.PutObjectOptions{
		ContentType: mimeType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to store poster: %w", err)
	}

	s.logger.Info("poster uploaded",
		zap.String("object", objectPath),
		zap.String("file_name", fileName),
		zap.Int64("size", size))
	return s.publicURL(objectPath), nil
}

func (s *service) publicURL(objectPath string) string {
	scheme := "http"
	if s.cfg.MinIOPublicUseSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, s.cfg.MinIOPublicEndpoint, s.cfg.MinIOBucket, url.PathEscape(objectPath))
}
