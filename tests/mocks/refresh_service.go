package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"unite-dashboard/internal/service/refresh"
)

type RefreshService struct {
	mock.Mock
}

func (m *RefreshService) Subscribe() (<-chan refresh.Signal, func()) {
	args := m.Called()
	return args.Get(0).(<-chan refresh.Signal), args.Get(1).(func())
}

func (m *RefreshService) Broadcast(reason string) {
	m.Called(reason)
}

func (m *RefreshService) BroadcastAfterMutation() {
	m.Called()
}

func (m *RefreshService) RegisterInFlight(pattern string, cancel context.CancelFunc) func() {
	args := m.Called(pattern, cancel)
	return args.Get(0).(func())
}

func (m *RefreshService) ForceRefresh(reason, pattern string) {
	m.Called(reason, pattern)
}
