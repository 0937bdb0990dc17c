package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"unite-dashboard/internal/domain"
	"unite-dashboard/internal/upstream"
)

type UpstreamClient struct {
	mock.Mock
}

func (m *UpstreamClient) ListRequests(ctx context.Context, token string, params domain.ListParams) (*domain.RequestList, error) {
	args := m.Called(ctx, token, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RequestList), args.Error(1)
}

func (m *UpstreamClient) GetRequest(ctx context.Context, token, id string) (*domain.Request, error) {
	args := m.Called(ctx, token, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Request), args.Error(1)
}

func (m *UpstreamClient) SubmitAction(ctx context.Context, token, id string, input upstream.ActionInput) error {
	args := m.Called(ctx, token, id, input)
	return args.Error(0)
}

func (m *UpstreamClient) DeleteRequest(ctx context.Context, token, id string) error {
	args := m.Called(ctx, token, id)
	return args.Error(0)
}

func (m *UpstreamClient) CreateEvent(ctx context.Context, token string, input domain.CreateEventInput, direct bool) error {
	args := m.Called(ctx, token, input, direct)
	return args.Error(0)
}

func (m *UpstreamClient) ListStakeholders(ctx context.Context, token string) ([]domain.Stakeholder, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Stakeholder), args.Error(1)
}

func (m *UpstreamClient) ListCoordinators(ctx context.Context, token string) ([]domain.Coordinator, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Coordinator), args.Error(1)
}

func (m *UpstreamClient) ListDistricts(ctx context.Context, token string) ([]domain.District, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.District), args.Error(1)
}

func (m *UpstreamClient) PublicEvents(ctx context.Context) ([]domain.PublicEvent, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PublicEvent), args.Error(1)
}

func (m *UpstreamClient) ListNotifications(ctx context.Context, token string, unreadOnly bool) (*domain.NotificationList, error) {
	args := m.Called(ctx, token, unreadOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.NotificationList), args.Error(1)
}

func (m *UpstreamClient) MarkNotificationRead(ctx context.Context, token, id string) error {
	args := m.Called(ctx, token, id)
	return args.Error(0)
}

func (m *UpstreamClient) MarkAllNotificationsRead(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}
