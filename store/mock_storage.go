package store

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/librecal/librecal/recur"
)

// MockStorage implements the Storage interface for testing.
type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) ListEvents(ctx context.Context) ([]recur.Event, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]recur.Event), args.Error(1)
}

func (m *MockStorage) GetEvent(ctx context.Context, id string) (*recur.Event, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*recur.Event), args.Error(1)
}

func (m *MockStorage) CreateEvents(ctx context.Context, events []recur.Event) error {
	args := m.Called(ctx, events)
	return args.Error(0)
}

func (m *MockStorage) UpdateEvent(ctx context.Context, event recur.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockStorage) DeleteEvent(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockStorage) UpdateSeries(ctx context.Context, seriesID string, patch recur.Patch) ([]recur.Event, error) {
	args := m.Called(ctx, seriesID, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]recur.Event), args.Error(1)
}

func (m *MockStorage) DeleteSeries(ctx context.Context, seriesID string) (int, error) {
	args := m.Called(ctx, seriesID)
	return args.Int(0), args.Error(1)
}
