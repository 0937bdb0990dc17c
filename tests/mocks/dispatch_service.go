package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"unite-dashboard/internal/domain"
	"unite-dashboard/internal/service/dispatch"
)

type DispatchService struct {
	mock.Mock
}

func (m *DispatchService) Do(ctx context.Context, viewer domain.Viewer, token string, req *domain.Request, input dispatch.Input) (*dispatch.Result, error) {
	args := m.Called(ctx, viewer, token, req, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dispatch.Result), args.Error(1)
}
