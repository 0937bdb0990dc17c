package request

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"

	"go.uber.org/zap"

	"unite-dashboard/internal/cache"
	"unite-dashboard/internal/config"
	"unite-dashboard/internal/domain"
	"unite-dashboard/internal/service/dispatch"
	"unite-dashboard/internal/service/refresh"
	"unite-dashboard/internal/upstream"
)

var (
	ErrDeleteRequiresAdmin     = errors.New("only a system administrator may delete a request")
	ErrDeleteRequiresCancelled = errors.New("a request must be cancelled before it can be deleted")
)

// Detail is a request enriched with everything the detail screen derives:
// the advisory permission set, badge label, pending-stage sublabel and the
// narrative block to render.
type Detail struct {
	Request        *domain.Request    `json:"request"`
	AllowedActions []string           `json:"allowed_actions"`
	Label          domain.StatusLabel `json:"label"`
	PendingStage   string             `json:"pending_stage,omitempty"`
	Block          domain.DetailBlock `json:"block"`
}

type Service interface {
	List(ctx context.Context, token string, params domain.ListParams) (*domain.RequestList, error)
	Get(ctx context.Context, token, id string) (*domain.Request, error)
	Detail(ctx context.Context, viewer domain.Viewer, token, id string) (*Detail, error)
	Act(ctx context.Context, viewer domain.Viewer, token, id string, input dispatch.Input) (*dispatch.Result, error)
	Enrich(req *domain.Request, viewer domain.Viewer) *Detail
}

type service struct {
	api        upstream.Client
	cacheSvc   cache.Store
	refresher  refresh.Service
	dispatcher dispatch.Service
	cfg        *config.Config
	logger     *zap.Logger
}

func NewService(
	api upstream.Client,
	cacheSvc cache.Store,
	refresher refresh.Service,
	dispatcher dispatch.Service,
	cfg *config.Config,
	logger *zap.Logger,
) Service {
	return &service{
		api:        api,
		cacheSvc:   cacheSvc,
		refresher:  refresher,
		dispatcher: dispatcher,
		cfg:        cfg,
		logger:     logger,
	}
}

func (s *service) List(ctx context.Context, token string, params domain.ListParams) (*domain.RequestList, error) {
	params.Validate()

	key := cache.Key("event-requests",
		token,
		strconv.Itoa(params.Skip), strconv.Itoa(params.Limit),
		params.Status, params.Search, params.Category)

	if cached, ok := s.cacheSvc.Get(ctx, key); ok {
		var list domain.RequestList
		if json.Unmarshal(cached, &list) == nil {
			return &list, nil
		}
	}

	// Register the fetch so a force-refresh can cancel it before a stale
	// response lands on top of fresher data.
	fetchCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	release := s.refresher.RegisterInFlight("event-requests", cancel)
	defer release()

	list, err := s.api.ListRequests(fetchCtx, token, params)
	if err != nil {
		return nil, err
	}

	if encoded, err := json.Marshal(list); err == nil {
		s.cacheSvc.Set(ctx, key, encoded, s.cfg.CacheTTL)
	}
	return list, nil
}

func (s *service) Get(ctx context.Context, token, id string) (*domain.Request, error) {
	return s.api.GetRequest(ctx, token, id)
}

func (s *service) Detail(ctx context.Context, viewer domain.Viewer, token, id string) (*Detail, error) {
	req, err := s.api.GetRequest(ctx, token, id)
	if err != nil {
		return nil, err
	}
	return s.Enrich(req, viewer), nil
}

// Enrich computes the advisory view data. It never feeds authorization:
// the upstream re-checks every mutation.
func (s *service) Enrich(req *domain.Request, viewer domain.Viewer) *Detail {
	return &Detail{
		Request:        req,
		AllowedActions: domain.DeriveActions(req, viewer).List(),
		Label:          domain.DisplayLabel(req),
		PendingStage:   domain.PendingStage(req),
		Block:          domain.SelectDetailBlock(req),
	}
}

func (s *service) Act(ctx context.Context, viewer domain.Viewer, token, id string, input dispatch.Input) (*dispatch.Result, error) {
	req, err := s.api.GetRequest(ctx, token, id)
	if err != nil {
		return nil, err
	}

	if input.Action == domain.ActionDelete {
		// Hard delete is admin-only and only after a soft cancel.
		if !viewer.IsAdmin {
			return nil, ErrDeleteRequiresAdmin
		}
		if domain.DisplayLabel(req) != domain.LabelCancelled {
			return nil, ErrDeleteRequiresCancelled
		}
	}

	return s.dispatcher.Do(ctx, viewer, token, req, input)
}
