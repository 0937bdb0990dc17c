package unit_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"unite-dashboard/internal/config"
	"unite-dashboard/internal/domain"
	"unite-dashboard/internal/service/dispatch"
	"unite-dashboard/internal/service/request"
	"unite-dashboard/tests/mocks"
)

func requestFixture() (*mocks.UpstreamClient, *mocks.CacheStore, *mocks.RefreshService, *mocks.DispatchService, request.Service) {
	api := new(mocks.UpstreamClient)
	cacheStore := new(mocks.CacheStore)
	refresher := new(mocks.RefreshService)
	dispatcher := new(mocks.DispatchService)

	cfg := &config.Config{CacheTTL: 30 * time.Second}
	svc := request.NewService(api, cacheStore, refresher, dispatcher, cfg, zap.NewNop())
	return api, cacheStore, refresher, dispatcher, svc
}

func TestRequestService_List(t *testing.T) {
	ctx := context.Background()

	t.Run("cache hit skips the upstream", func(t *testing.T) {
		api, cacheStore, _, _, svc := requestFixture()

		cached, _ := json.Marshal(domain.RequestList{
			Items: []domain.Request{{ID: "r1", Status: domain.StatusApproved}},
			Total: 1,
		})
		cacheStore.On("Get", mock.Anything, mock.Anything).Return(cached, true).Once()

		list, err := svc.List(ctx, "tok", domain.ListParams{})
		require.NoError(t, err)
		assert.Equal(t, int64(1), list.Total)
		api.AssertNotCalled(t, "ListRequests", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("cache miss fetches and stores", func(t *testing.T) {
		api, cacheStore, refresher, _, svc := requestFixture()

		cacheStore.On("Get", mock.Anything, mock.Anything).Return(nil, false).Once()
		cacheStore.On("Set", mock.Anything, mock.Anything, mock.Anything, 30*time.Second).Once()
		refresher.On("RegisterInFlight", "event-requests", mock.Anything).Return(func() {}).Once()
		api.On("ListRequests", mock.Anything, "tok", mock.Anything).
			Return(&domain.RequestList{Total: 3}, nil).Once()

		list, err := svc.List(ctx, "tok", domain.ListParams{Limit: 10})
		require.NoError(t, err)
		assert.Equal(t, int64(3), list.Total)
		cacheStore.AssertExpectations(t)
		refresher.AssertExpectations(t)
	})
}

func TestRequestService_Act_DeleteGuard(t *testing.T) {
	ctx := context.Background()
	admin := domain.Viewer{ID: "a1", Role: "System Administrator", IsAdmin: true}
	staff := domain.Viewer{ID: "u1", Role: "Program Staff"}

	t.Run("delete requires a system admin", func(t *testing.T) {
		api, _, _, dispatcher, svc := requestFixture()

		api.On("GetRequest", mock.Anything, "tok", "r1").
			Return(&domain.Request{ID: "r1", Status: domain.StatusCancelled}, nil).Once()

		_, err := svc.Act(ctx, staff, "tok", "r1", dispatch.Input{Action: domain.ActionDelete})
		assert.ErrorIs(t, err, request.ErrDeleteRequiresAdmin)
		dispatcher.AssertNotCalled(t, "Do", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("delete requires a cancelled request", func(t *testing.T) {
		api, _, _, dispatcher, svc := requestFixture()

		api.On("GetRequest", mock.Anything, "tok", "r1").
			Return(&domain.Request{ID: "r1", Status: domain.StatusApproved}, nil).Once()

		_, err := svc.Act(ctx, admin, "tok", "r1", dispatch.Input{Action: domain.ActionDelete})
		assert.ErrorIs(t, err, request.ErrDeleteRequiresCancelled)
		dispatcher.AssertNotCalled(t, "Do", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("delete on a cancelled request dispatches", func(t *testing.T) {
		api, _, _, dispatcher, svc := requestFixture()

		req := &domain.Request{ID: "r1", Status: domain.StatusCancelled}
		api.On("GetRequest", mock.Anything, "tok", "r1").Return(req, nil).Once()
		dispatcher.On("Do", mock.Anything, admin, "tok", req, mock.Anything).
			Return(&dispatch.Result{State: domain.DispatchConfirmed}, nil).Once()

		result, err := svc.Act(ctx, admin, "tok", "r1", dispatch.Input{Action: domain.ActionDelete})
		require.NoError(t, err)
		assert.Equal(t, domain.DispatchConfirmed, result.State)
		dispatcher.AssertExpectations(t)
	})

	t.Run("non-delete actions pass straight through", func(t *testing.T) {
		api, _, _, dispatcher, svc := requestFixture()

		req := &domain.Request{ID: "r1", Status: domain.StatusPendingAdminReview}
		api.On("GetRequest", mock.Anything, "tok", "r1").Return(req, nil).Once()
		dispatcher.On("Do", mock.Anything, staff, "tok", req, mock.Anything).
			Return(&dispatch.Result{State: domain.DispatchConfirmed}, nil).Once()

		_, err := svc.Act(ctx, staff, "tok", "r1", dispatch.Input{Action: domain.ActionAccept})
		assert.NoError(t, err)
	})
}

func TestRequestService_Enrich(t *testing.T) {
	_, _, _, _, svc := requestFixture()

	req := &domain.Request{ID: "r1", Status: domain.StatusPendingAdminReview}
	detail := svc.Enrich(req, domain.Viewer{ID: "a1", IsAdmin: true})

	assert.Equal(t, domain.LabelPending, detail.Label)
	assert.Equal(t, "Waiting for admin review", detail.PendingStage)
	assert.ElementsMatch(t, []string{"accept", "reject", "reschedule"}, detail.AllowedActions)
}
