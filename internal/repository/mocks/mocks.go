package mocks

import (
	"context"

	"dashkit/internal/domain/activity"
	"dashkit/internal/domain/dashboard"
	"github.com/stretchr/testify/mock"
)

// DashboardRepository is a mock for repository.DashboardRepository.
type DashboardRepository struct {
	mock.Mock
}

func (m *DashboardRepository) Create(ctx context.Context, projectID int64, name string, options map[string]any) (*dashboard.Dashboard, error) {
	args := m.Called(ctx, projectID, name, options)
	if dash, ok := args.Get(0).(*dashboard.Dashboard); ok {
		return dash, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *DashboardRepository) Delete(ctx context.Context, projectID, dashboardID int64) error {
	args := m.Called(ctx, projectID, dashboardID)
	return args.Error(0)
}

func (m *DashboardRepository) DeleteByName(ctx context.Context, projectID int64, name string) error {
	args := m.Called(ctx, projectID, name)
	return args.Error(0)
}

func (m *DashboardRepository) Items(ctx context.Context, projectID int64, name string) ([]dashboard.Item, error) {
	args := m.Called(ctx, projectID, name)
	if items, ok := args.Get(0).([]dashboard.Item); ok {
		return items, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *DashboardRepository) List(ctx context.Context, projectID int64) ([]dashboard.Dashboard, error) {
	args := m.Called(ctx, projectID)
	if list, ok := args.Get(0).([]dashboard.Dashboard); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *DashboardRepository) AddItem(ctx context.Context, projectID, dashboardID int64, name, directive string, data map[string]any) error {
	args := m.Called(ctx, projectID, dashboardID, name, directive, data)
	return args.Error(0)
}

func (m *DashboardRepository) UpdateItems(ctx context.Context, projectID, dashboardID int64, updates []dashboard.ItemUpdate) error {
	args := m.Called(ctx, projectID, dashboardID, updates)
	return args.Error(0)
}

func (m *DashboardRepository) UpdateOptions(ctx context.Context, projectID, dashboardID int64, options map[string]any) error {
	args := m.Called(ctx, projectID, dashboardID, options)
	return args.Error(0)
}

func (m *DashboardRepository) RenameItem(ctx context.Context, projectID, dashboardID, itemID int64, name string) error {
	args := m.Called(ctx, projectID, dashboardID, itemID, name)
	return args.Error(0)
}

func (m *DashboardRepository) RemoveItem(ctx context.Context, projectID, dashboardID, itemID int64) error {
	args := m.Called(ctx, projectID, dashboardID, itemID)
	return args.Error(0)
}

// ActivityRepository is a mock for repository.ActivityRepository.
type ActivityRepository struct {
	mock.Mock
}

func (m *ActivityRepository) Log(ctx context.Context, projectID int64, entry *activity.Entry) error {
	args := m.Called(ctx, projectID, entry)
	return args.Error(0)
}

func (m *ActivityRepository) List(ctx context.Context, projectID int64, opts activity.ListOptions) ([]activity.Entry, error) {
	args := m.Called(ctx, projectID, opts)
	if entries, ok := args.Get(0).([]activity.Entry); ok {
		return entries, args.Error(1)
	}
	return nil, args.Error(1)
}

// APIKeyRepository is a mock for repository.APIKeyRepository.
type APIKeyRepository struct {
	mock.Mock
}

func (m *APIKeyRepository) Create(ctx context.Context, projectID int64, description string) (string, error) {
	args := m.Called(ctx, projectID, description)
	return args.String(0), args.Error(1)
}

func (m *APIKeyRepository) Resolve(ctx context.Context, token string) (int64, error) {
	args := m.Called(ctx, token)
	return args.Get(0).(int64), args.Error(1)
}

func (m *APIKeyRepository) Revoke(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}
