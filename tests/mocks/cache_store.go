package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
)

type CacheStore struct {
	mock.Mock
}

func (m *CacheStore) Get(ctx context.Context, key string) ([]byte, bool) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Bool(1)
	}
	return args.Get(0).([]byte), args.Bool(1)
}

func (m *CacheStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	m.Called(ctx, key, value, ttl)
}

func (m *CacheStore) InvalidatePattern(ctx context.Context, pattern string) error {
	args := m.Called(ctx, pattern)
	return args.Error(0)
}
