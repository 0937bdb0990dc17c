package unit_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"unite-dashboard/internal/config"
	"unite-dashboard/internal/domain"
	"unite-dashboard/internal/service/dispatch"
	"unite-dashboard/internal/upstream"
	"unite-dashboard/tests/mocks"
)

func dispatchFixture() (*mocks.UpstreamClient, *mocks.CacheStore, *mocks.RefreshService, *mocks.JournalRepository, *mocks.EmailService, dispatch.Service) {
	api := new(mocks.UpstreamClient)
	cacheStore := new(mocks.CacheStore)
	refresher := new(mocks.RefreshService)
	journal := new(mocks.JournalRepository)
	emailSvc := new(mocks.EmailService)

	cfg := &config.Config{
		UpstreamTimeout: 50 * time.Millisecond,
		VerifyAttempts:  2,
		VerifyInterval:  time.Millisecond,
	}

	svc := dispatch.NewService(api, cacheStore, refresher, journal, emailSvc, cfg, zap.NewNop())
	return api, cacheStore, refresher, journal, emailSvc, svc
}

func expectSettleSuccess(api *mocks.UpstreamClient, cacheStore *mocks.CacheStore, refresher *mocks.RefreshService, journal *mocks.JournalRepository) {
	journal.On("Create", mock.Anything, mock.Anything).Return(nil)
	journal.On("UpdateState", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	cacheStore.On("InvalidatePattern", mock.Anything, "*event-requests*").Return(nil)
	cacheStore.On("InvalidatePattern", mock.Anything, "*requests*").Return(nil)
	api.On("ListRequests", mock.Anything, "tok", domain.ListParams{}).Return(&domain.RequestList{}, nil)
	refresher.On("BroadcastAfterMutation").Return()
}

func TestDispatchService_Do(t *testing.T) {
	ctx := context.Background()
	admin := domain.Viewer{ID: "u1", Role: "System Administrator", IsAdmin: true}

	t.Run("short-circuits when already in the expected state", func(t *testing.T) {
		api, _, _, journal, _, svc := dispatchFixture()

		req := &domain.Request{ID: "r1", Status: domain.StatusApproved}
		result, err := svc.Do(ctx, admin, "tok", req, dispatch.Input{Action: domain.ActionAccept})

		assert.NoError(t, err)
		assert.True(t, result.ShortCircuit)
		assert.Equal(t, domain.DispatchConfirmed, result.State)
		api.AssertNotCalled(t, "SubmitAction", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		journal.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("reject requires a note", func(t *testing.T) {
		_, _, _, _, _, svc := dispatchFixture()

		req := &domain.Request{ID: "r1", Status: domain.StatusPendingAdminReview}
		_, err := svc.Do(ctx, admin, "tok", req, dispatch.Input{Action: domain.ActionReject})

		assert.ErrorIs(t, err, dispatch.ErrNoteRequired)
	})

	t.Run("reschedule requires a date", func(t *testing.T) {
		_, _, _, _, _, svc := dispatchFixture()

		req := &domain.Request{ID: "r1", Status: domain.StatusPendingAdminReview}
		_, err := svc.Do(ctx, admin, "tok", req, dispatch.Input{Action: domain.ActionReschedule})

		assert.ErrorIs(t, err, dispatch.ErrDateRequired)
	})

	t.Run("successful accept settles and broadcasts", func(t *testing.T) {
		api, cacheStore, refresher, journal, _, svc := dispatchFixture()

		req := &domain.Request{ID: "r1", Status: domain.StatusPendingAdminReview}
		expectSettleSuccess(api, cacheStore, refresher, journal)
		api.On("SubmitAction", mock.Anything, "tok", "r1", mock.Anything).Return(nil).Once()

		result, err := svc.Do(ctx, admin, "tok", req, dispatch.Input{Action: domain.ActionAccept})

		assert.NoError(t, err)
		assert.Equal(t, domain.DispatchConfirmed, result.State)
		assert.False(t, result.Recovered)
		api.AssertExpectations(t)
		cacheStore.AssertExpectations(t)
		refresher.AssertExpectations(t)
	})

	t.Run("delete on a cancelled request reaches the delete endpoint", func(t *testing.T) {
		api, cacheStore, refresher, journal, _, svc := dispatchFixture()

		// Cancelled is the precondition for delete, not its terminal state,
		// so an already-cancelled request must not short-circuit.
		req := &domain.Request{ID: "r1", Status: domain.StatusCancelled}
		expectSettleSuccess(api, cacheStore, refresher, journal)
		api.On("DeleteRequest", mock.Anything, "tok", "r1").Return(nil).Once()

		result, err := svc.Do(ctx, admin, "tok", req, dispatch.Input{Action: domain.ActionDelete})

		assert.NoError(t, err)
		assert.Equal(t, domain.DispatchConfirmed, result.State)
		assert.False(t, result.ShortCircuit)
		api.AssertExpectations(t)
		api.AssertNotCalled(t, "SubmitAction", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("timed-out delete recovers when a poll finds the request gone", func(t *testing.T) {
		api, cacheStore, refresher, journal, _, svc := dispatchFixture()

		req := &domain.Request{ID: "r1", Status: domain.StatusCancelled}
		expectSettleSuccess(api, cacheStore, refresher, journal)
		api.On("DeleteRequest", mock.Anything, "tok", "r1").Return(context.DeadlineExceeded).Once()
		api.On("GetRequest", mock.Anything, "tok", "r1").
			Return(nil, &upstream.Error{StatusCode: 404, Message: "not found"})

		result, err := svc.Do(ctx, admin, "tok", req, dispatch.Input{Action: domain.ActionDelete})

		assert.NoError(t, err)
		assert.True(t, result.Recovered)
		assert.Equal(t, domain.DispatchConfirmed, result.State)
	})

	t.Run("timed-out delete fails when the request is still readable", func(t *testing.T) {
		api, _, refresher, journal, _, svc := dispatchFixture()

		// The request was Cancelled before the delete went out, so observing
		// Cancelled again says nothing about the delete having landed.
		req := &domain.Request{ID: "r1", Status: domain.StatusCancelled}
		journal.On("Create", mock.Anything, mock.Anything).Return(nil)
		journal.On("UpdateState", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
		api.On("DeleteRequest", mock.Anything, "tok", "r1").Return(context.DeadlineExceeded).Once()
		api.On("GetRequest", mock.Anything, "tok", "r1").
			Return(&domain.Request{ID: "r1", Status: domain.StatusCancelled}, nil)

		_, err := svc.Do(ctx, admin, "tok", req, dispatch.Input{Action: domain.ActionDelete})

		assert.Error(t, err)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
		refresher.AssertNotCalled(t, "BroadcastAfterMutation")
	})

	t.Run("timed-out accept recovers when a poll observes the expected state", func(t *testing.T) {
		api, cacheStore, refresher, journal, _, svc := dispatchFixture()

		req := &domain.Request{ID: "r1", Status: domain.StatusPendingAdminReview}
		expectSettleSuccess(api, cacheStore, refresher, journal)
		api.On("SubmitAction", mock.Anything, "tok", "r1", mock.Anything).Return(context.DeadlineExceeded).Once()
		api.On("GetRequest", mock.Anything, "tok", "r1").Return(&domain.Request{ID: "r1", Status: domain.StatusApproved}, nil)

		result, err := svc.Do(ctx, admin, "tok", req, dispatch.Input{Action: domain.ActionAccept})

		assert.NoError(t, err)
		assert.True(t, result.Recovered)
		assert.Equal(t, domain.DispatchConfirmed, result.State)
		assert.GreaterOrEqual(t, result.Attempts, 1)
	})

	t.Run("timed-out accept fails when no poll observes the expected state", func(t *testing.T) {
		api, _, refresher, journal, _, svc := dispatchFixture()

		req := &domain.Request{ID: "r1", Status: domain.StatusPendingAdminReview}
		journal.On("Create", mock.Anything, mock.Anything).Return(nil)
		journal.On("UpdateState", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
		api.On("SubmitAction", mock.Anything, "tok", "r1", mock.Anything).Return(context.DeadlineExceeded).Once()
		api.On("GetRequest", mock.Anything, "tok", "r1").Return(&domain.Request{ID: "r1", Status: domain.StatusPendingAdminReview}, nil)

		_, err := svc.Do(ctx, admin, "tok", req, dispatch.Input{Action: domain.ActionAccept})

		assert.Error(t, err)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
		refresher.AssertNotCalled(t, "BroadcastAfterMutation")
	})

	t.Run("non-timeout upstream failure surfaces directly", func(t *testing.T) {
		api, _, refresher, journal, _, svc := dispatchFixture()

		req := &domain.Request{ID: "r1", Status: domain.StatusPendingAdminReview}
		journal.On("Create", mock.Anything, mock.Anything).Return(nil)
		journal.On("UpdateState", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
		upstreamErr := errors.New("boom")
		api.On("SubmitAction", mock.Anything, "tok", "r1", mock.Anything).Return(upstreamErr).Once()

		_, err := svc.Do(ctx, admin, "tok", req, dispatch.Input{Action: domain.ActionAccept})

		assert.ErrorIs(t, err, upstreamErr)
		api.AssertNotCalled(t, "GetRequest", mock.Anything, mock.Anything, mock.Anything)
		refresher.AssertNotCalled(t, "BroadcastAfterMutation")
	})
}
