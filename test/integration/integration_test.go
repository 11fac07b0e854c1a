package integration_test

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"dashkit/internal/domain/activity"
	"dashkit/internal/domain/dashboard"
	"dashkit/internal/sqlite"
	"dashkit/internal/testserver"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	db            *sqlite.DB
	dashboardRepo *sqlite.DashboardRepository
	activityRepo  *sqlite.ActivityRepository

	dashboardSvc *dashboard.Service
	activitySvc  *activity.Service
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := sqlite.New(dsn)
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations())
	t.Cleanup(func() { _ = db.Close() })

	dashboardRepo := sqlite.NewDashboardRepository(db)
	activityRepo := sqlite.NewActivityRepository(db)

	return &testEnv{
		db:            db,
		dashboardRepo: dashboardRepo,
		activityRepo:  activityRepo,
		dashboardSvc:  dashboard.NewService(dashboardRepo, activityRepo, nil),
		activitySvc:   activity.NewService(activityRepo, nil),
	}
}

func TestIntegration_OptionsLifecycle(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	dash, err := env.dashboardSvc.Create(ctx, 1, dashboard.CreateRequest{Name: "sales"})
	require.NoError(t, err)

	list, err := env.dashboardSvc.List(ctx, 1)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, dash.ID, list[0].ID)
	require.Equal(t, "sales", list[0].Name)
	require.Nil(t, list[0].Options)

	require.NoError(t, env.dashboardSvc.UpdateOptions(ctx, 1, dash.ID, map[string]any{"theme": "dark"}))

	list, err = env.dashboardSvc.List(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, map[string]any{"theme": "dark"}, list[0].Options)

	// Both mutations left an audit trail
	entries, err := env.activitySvc.Recent(ctx, 1, activity.ListOptions{})
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.Equal(t, activity.TypeOptionsUpdated, entries[0].Type)
	require.Equal(t, activity.TypeDashboardCreated, entries[1].Type)
}

func TestIntegration_CascadeDelete(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	dash, err := env.dashboardSvc.Create(ctx, 1, dashboard.CreateRequest{Name: "doomed"})
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		require.NoError(t, env.dashboardSvc.AddItem(ctx, 1, dashboard.AddItemRequest{
			DashboardID: dash.ID,
			Name:        fmt.Sprintf("chart%d", i),
			Directive:   "line",
			Data:        map[string]any{"i": i},
		}))
	}

	require.NoError(t, env.dashboardSvc.Delete(ctx, 1, dash.ID))

	items, err := env.dashboardSvc.Items(ctx, 1, "doomed")
	require.NoError(t, err)
	require.Empty(t, items)

	var orphans int
	err = env.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM dashboard_items WHERE dashboard = ?`, dash.ID).Scan(&orphans)
	require.NoError(t, err)
	require.Zero(t, orphans)
}

func TestIntegration_TenantIsolation(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	_, err := env.dashboardSvc.Create(ctx, 1, dashboard.CreateRequest{Name: "p1-board"})
	require.NoError(t, err)
	_, err = env.dashboardSvc.Create(ctx, 2, dashboard.CreateRequest{Name: "p2-board"})
	require.NoError(t, err)

	list, err := env.dashboardSvc.List(ctx, 1)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, "p1-board", list[0].Name)

	list, err = env.dashboardSvc.List(ctx, 2)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, "p2-board", list[0].Name)
}

func TestIntegration_DuplicateName(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	_, err := env.dashboardSvc.Create(ctx, 1, dashboard.CreateRequest{Name: "sales"})
	require.NoError(t, err)

	_, err = env.dashboardSvc.Create(ctx, 1, dashboard.CreateRequest{Name: "sales"})
	require.ErrorIs(t, err, dashboard.ErrDashboardExists)

	// Different project, same name: fine
	_, err = env.dashboardSvc.Create(ctx, 2, dashboard.CreateRequest{Name: "sales"})
	require.NoError(t, err)
}

func TestIntegration_HTTPWorkflow(t *testing.T) {
	ts := testserver.New(t, 1)

	var dash dashboard.Dashboard
	resp := ts.Post(t, "/create", map[string]any{"name": "ops"}, &dash)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NotZero(t, dash.ID)

	resp = ts.Post(t, "/create", map[string]any{"name": "ops"}, nil)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode, "duplicate name is a client error")

	resp = ts.Post(t, "/add_item", map[string]any{
		"dashboard": dash.ID,
		"name":      "chart1",
		"directive": "line",
		"data":      map[string]any{"x": 1, "series": []string{"a", "b"}},
	}, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var items []dashboard.Item
	resp = ts.Post(t, "/get", map[string]any{"name": "ops"}, &items)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, items, 1)
	require.Equal(t, "chart1", items[0].Name)
	require.Equal(t, "line", items[0].Directive)
	require.Equal(t, map[string]any{"x": float64(1), "series": []any{"a", "b"}}, items[0].Data)

	resp = ts.Post(t, "/update_dashboard_items", map[string]any{
		"dashboard": dash.ID,
		"items": []map[string]any{
			{"id": items[0].ID, "name": "chart1*", "directive": "area", "data": map[string]any{"x": 2}},
		},
	}, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = ts.Post(t, "/rename_item", map[string]any{
		"dashboard": dash.ID,
		"id":        items[0].ID,
		"name":      "renamed",
	}, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	items = nil
	resp = ts.Post(t, "/get", map[string]any{"name": "ops"}, &items)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "renamed", items[0].Name)
	require.Equal(t, "area", items[0].Directive)

	resp = ts.Post(t, "/delete_item", map[string]any{"dashboard": dash.ID, "id": items[0].ID}, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = ts.Post(t, "/delete", map[string]any{"dashboard": dash.ID}, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	items = nil
	resp = ts.Post(t, "/get", map[string]any{"name": "ops"}, &items)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Empty(t, items)

	var entries []activity.Entry
	resp = ts.Post(t, "/activity", map[string]any{"limit": 10}, &entries)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NotEmpty(t, entries)
	require.Equal(t, activity.TypeDashboardDeleted, entries[0].Type)
}

func TestIntegration_HTTPAuthRequired(t *testing.T) {
	ts := testserver.New(t, 1)

	req, err := http.NewRequest(http.MethodPost,
		ts.Server.URL+"/ui/dashboard/list", strings.NewReader("{}"))
	require.NoError(t, err)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
