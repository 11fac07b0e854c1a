package dashboard_test

import (
	"context"
	"errors"
	"testing"

	"dashkit/internal/domain/dashboard"
	"dashkit/internal/repository/mocks"
	"dashkit/internal/storage"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestDashboardService_Create(t *testing.T) {
	ctx := context.Background()

	repo := &mocks.DashboardRepository{}
	activities := &mocks.ActivityRepository{}

	repo.On("Create", ctx, int64(1), "sales", map[string]any{"theme": "dark"}).
		Return(&dashboard.Dashboard{ID: 7, ProjectID: 1, Name: "sales", Options: map[string]any{"theme": "dark"}}, nil)
	activities.On("Log", ctx, int64(1), mock.Anything).Return(nil)

	svc := dashboard.NewService(repo, activities, nil)
	dash, err := svc.Create(ctx, 1, dashboard.CreateRequest{
		Name:    "sales",
		Options: map[string]any{"theme": "dark"},
	})
	require.NoError(t, err)
	require.Equal(t, int64(7), dash.ID)
	require.Equal(t, "sales", dash.Name)
	activities.AssertExpectations(t)
}

func TestDashboardService_Create_EmptyName(t *testing.T) {
	ctx := context.Background()

	svc := dashboard.NewService(&mocks.DashboardRepository{}, nil, nil)
	_, err := svc.Create(ctx, 1, dashboard.CreateRequest{Name: "   "})
	require.ErrorIs(t, err, dashboard.ErrInvalidInput)
}

func TestDashboardService_Create_Duplicate(t *testing.T) {
	ctx := context.Background()

	repo := &mocks.DashboardRepository{}
	repo.On("Create", ctx, int64(1), "sales", mock.Anything).
		Return(nil, storage.ErrAlreadyExists)

	svc := dashboard.NewService(repo, nil, nil)
	_, err := svc.Create(ctx, 1, dashboard.CreateRequest{Name: "sales"})
	require.ErrorIs(t, err, dashboard.ErrDashboardExists)
}

func TestDashboardService_Create_StorageFailure(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("disk on fire")

	repo := &mocks.DashboardRepository{}
	repo.On("Create", ctx, int64(1), "sales", mock.Anything).Return(nil, boom)

	svc := dashboard.NewService(repo, nil, nil)
	_, err := svc.Create(ctx, 1, dashboard.CreateRequest{Name: "sales"})
	require.ErrorIs(t, err, boom)
	require.NotErrorIs(t, err, dashboard.ErrDashboardExists)
}

func TestDashboardService_AddItem_UnknownDashboard(t *testing.T) {
	ctx := context.Background()

	repo := &mocks.DashboardRepository{}
	repo.On("AddItem", ctx, int64(1), int64(9), "chart", "line", mock.Anything).
		Return(storage.ErrNotFound)

	svc := dashboard.NewService(repo, nil, nil)
	err := svc.AddItem(ctx, 1, dashboard.AddItemRequest{
		DashboardID: 9,
		Name:        "chart",
		Directive:   "line",
	})
	require.ErrorIs(t, err, dashboard.ErrDashboardNotFound)
}

func TestDashboardService_AddItem_Validation(t *testing.T) {
	ctx := context.Background()
	svc := dashboard.NewService(&mocks.DashboardRepository{}, nil, nil)

	err := svc.AddItem(ctx, 1, dashboard.AddItemRequest{DashboardID: 1, Name: "", Directive: "line"})
	require.ErrorIs(t, err, dashboard.ErrInvalidInput)

	err = svc.AddItem(ctx, 1, dashboard.AddItemRequest{DashboardID: 1, Name: "chart", Directive: " "})
	require.ErrorIs(t, err, dashboard.ErrInvalidInput)
}

func TestDashboardService_UpdateItems_EmptyBatch(t *testing.T) {
	ctx := context.Background()

	// No repository call expected for an empty batch
	svc := dashboard.NewService(&mocks.DashboardRepository{}, nil, nil)
	require.NoError(t, svc.UpdateItems(ctx, 1, 7, nil))
}

func TestDashboardService_UpdateItems(t *testing.T) {
	ctx := context.Background()

	updates := []dashboard.ItemUpdate{{ID: 3, Name: "n", Directive: "line"}}

	repo := &mocks.DashboardRepository{}
	activities := &mocks.ActivityRepository{}
	repo.On("UpdateItems", ctx, int64(1), int64(7), updates).Return(nil)
	activities.On("Log", ctx, int64(1), mock.Anything).Return(nil)

	svc := dashboard.NewService(repo, activities, nil)
	require.NoError(t, svc.UpdateItems(ctx, 1, 7, updates))
	repo.AssertExpectations(t)
	activities.AssertExpectations(t)
}

func TestDashboardService_Delete_ActivityFailureIgnored(t *testing.T) {
	ctx := context.Background()

	repo := &mocks.DashboardRepository{}
	activities := &mocks.ActivityRepository{}
	repo.On("Delete", ctx, int64(1), int64(7)).Return(nil)
	activities.On("Log", ctx, int64(1), mock.Anything).Return(errors.New("log table gone"))

	// An audit failure must not fail the mutation
	svc := dashboard.NewService(repo, activities, nil)
	require.NoError(t, svc.Delete(ctx, 1, 7))
}

func TestDashboardService_DeleteByName(t *testing.T) {
	ctx := context.Background()

	repo := &mocks.DashboardRepository{}
	activities := &mocks.ActivityRepository{}
	repo.On("DeleteByName", ctx, int64(1), "sales").Return(nil)
	activities.On("Log", ctx, int64(1), mock.Anything).Return(nil)

	svc := dashboard.NewService(repo, activities, nil)
	require.NoError(t, svc.DeleteByName(ctx, 1, "sales"))
	repo.AssertExpectations(t)
	activities.AssertExpectations(t)
}

func TestDashboardService_DeleteByName_EmptyName(t *testing.T) {
	ctx := context.Background()
	svc := dashboard.NewService(&mocks.DashboardRepository{}, nil, nil)
	require.ErrorIs(t, svc.DeleteByName(ctx, 1, "  "), dashboard.ErrInvalidInput)
}

func TestDashboardService_RenameItem_EmptyName(t *testing.T) {
	ctx := context.Background()
	svc := dashboard.NewService(&mocks.DashboardRepository{}, nil, nil)
	require.ErrorIs(t, svc.RenameItem(ctx, 1, 7, 3, ""), dashboard.ErrInvalidInput)
}
