package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"dashkit/internal/domain/activity"
	"dashkit/internal/domain/dashboard"
	"github.com/stretchr/testify/require"
)

type stubDashboards struct {
	createErr error
	dash      *dashboard.Dashboard
	items     []dashboard.Item
	list      []dashboard.Dashboard

	lastProject int64
	lastUpdates []dashboard.ItemUpdate
	deletedID   int64
	deletedName string
}

func (s *stubDashboards) Create(_ context.Context, projectID int64, req dashboard.CreateRequest) (*dashboard.Dashboard, error) {
	s.lastProject = projectID
	if s.createErr != nil {
		return nil, s.createErr
	}
	return s.dash, nil
}

func (s *stubDashboards) Delete(_ context.Context, projectID, dashboardID int64) error {
	s.lastProject = projectID
	s.deletedID = dashboardID
	return nil
}

func (s *stubDashboards) DeleteByName(_ context.Context, projectID int64, name string) error {
	s.lastProject = projectID
	s.deletedName = name
	return nil
}

func (s *stubDashboards) Items(_ context.Context, projectID int64, name string) ([]dashboard.Item, error) {
	s.lastProject = projectID
	return s.items, nil
}

func (s *stubDashboards) List(_ context.Context, projectID int64) ([]dashboard.Dashboard, error) {
	s.lastProject = projectID
	return s.list, nil
}

func (s *stubDashboards) AddItem(_ context.Context, projectID int64, req dashboard.AddItemRequest) error {
	s.lastProject = projectID
	return nil
}

func (s *stubDashboards) UpdateItems(_ context.Context, projectID, dashboardID int64, updates []dashboard.ItemUpdate) error {
	s.lastProject = projectID
	s.lastUpdates = updates
	return nil
}

func (s *stubDashboards) UpdateOptions(_ context.Context, projectID, dashboardID int64, options map[string]any) error {
	s.lastProject = projectID
	return nil
}

func (s *stubDashboards) RenameItem(_ context.Context, projectID, dashboardID, itemID int64, name string) error {
	s.lastProject = projectID
	return nil
}

func (s *stubDashboards) RemoveItem(_ context.Context, projectID, dashboardID, itemID int64) error {
	s.lastProject = projectID
	return nil
}

type stubActivities struct {
	entries []activity.Entry
}

func (s *stubActivities) Recent(_ context.Context, projectID int64, opts activity.ListOptions) ([]activity.Entry, error) {
	return s.entries, nil
}

func newTestServer(t *testing.T, dashboards *stubDashboards) *httptest.Server {
	t.Helper()
	router := NewServer(dashboards, &stubActivities{}, ProjectHeaderMiddleware, nil)
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return server
}

func post(t *testing.T, url, project string, body any) *http.Response {
	t.Helper()
	encoded, err := json.Marshal(body)
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(encoded))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if project != "" {
		req.Header.Set("Project", project)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestHTTPServer_Create(t *testing.T) {
	stub := &stubDashboards{dash: &dashboard.Dashboard{ID: 7, ProjectID: 1, Name: "sales"}}
	server := newTestServer(t, stub)

	resp := post(t, server.URL+"/ui/dashboard/create", "1", map[string]any{"name": "sales"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, int64(1), stub.lastProject)

	var dash dashboard.Dashboard
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&dash))
	require.Equal(t, int64(7), dash.ID)
	require.Equal(t, "sales", dash.Name)
}

func TestHTTPServer_Create_Duplicate(t *testing.T) {
	stub := &stubDashboards{createErr: dashboard.ErrDashboardExists}
	server := newTestServer(t, stub)

	resp := post(t, server.URL+"/ui/dashboard/create", "1", map[string]any{"name": "sales"})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHTTPServer_Create_MissingProject(t *testing.T) {
	server := newTestServer(t, &stubDashboards{})

	resp := post(t, server.URL+"/ui/dashboard/create", "", map[string]any{"name": "sales"})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHTTPServer_Get_EmptyItems(t *testing.T) {
	server := newTestServer(t, &stubDashboards{})

	resp := post(t, server.URL+"/ui/dashboard/get", "1", map[string]any{"name": "nothing"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var items []dashboard.Item
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&items))
	require.NotNil(t, items)
	require.Empty(t, items)
}

func TestHTTPServer_List(t *testing.T) {
	stub := &stubDashboards{list: []dashboard.Dashboard{
		{ID: 1, ProjectID: 9, Name: "a"},
		{ID: 2, ProjectID: 9, Name: "b", Options: map[string]any{"theme": "dark"}},
	}}
	server := newTestServer(t, stub)

	resp := post(t, server.URL+"/ui/dashboard/list", "9", map[string]any{})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, int64(9), stub.lastProject)

	var list []dashboard.Dashboard
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&list))
	require.Len(t, list, 2)
	require.Nil(t, list[0].Options)
	require.Equal(t, map[string]any{"theme": "dark"}, list[1].Options)
}

func TestHTTPServer_Delete_ByIDOrName(t *testing.T) {
	stub := &stubDashboards{}
	server := newTestServer(t, stub)

	resp := post(t, server.URL+"/ui/dashboard/delete", "1", map[string]any{"dashboard": 7})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, int64(7), stub.deletedID)
	require.Empty(t, stub.deletedName)

	resp = post(t, server.URL+"/ui/dashboard/delete", "1", map[string]any{"name": "sales"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "sales", stub.deletedName)
}

func TestHTTPServer_UpdateItems(t *testing.T) {
	stub := &stubDashboards{}
	server := newTestServer(t, stub)

	resp := post(t, server.URL+"/ui/dashboard/update_dashboard_items", "1", map[string]any{
		"dashboard": 7,
		"items": []map[string]any{
			{"id": 3, "name": "n", "directive": "line", "data": map[string]any{"x": 1}},
		},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, stub.lastUpdates, 1)
	require.Equal(t, int64(3), stub.lastUpdates[0].ID)

	var msg SuccessMessage
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&msg))
	require.True(t, msg.Success)
}

func TestHTTPServer_BadBody(t *testing.T) {
	server := newTestServer(t, &stubDashboards{})

	req, err := http.NewRequest(http.MethodPost,
		server.URL+"/ui/dashboard/create", bytes.NewBufferString("{not json"))
	require.NoError(t, err)
	req.Header.Set("Project", "1")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHTTPServer_Health(t *testing.T) {
	server := newTestServer(t, &stubDashboards{})

	resp, err := http.Get(server.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
}
