package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"unite-dashboard/internal/domain"
)

type EmailService struct {
	mock.Mock
}

func (m *EmailService) SendDecisionEmail(ctx context.Context, toEmail, toName, eventTitle string, action domain.Action, note string) error {
	args := m.Called(ctx, toEmail, toName, eventTitle, action, note)
	return args.Error(0)
}
