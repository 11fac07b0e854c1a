package testserver

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"dashkit/internal/domain/activity"
	"dashkit/internal/domain/dashboard"
	"dashkit/internal/sqlite"
	"dashkit/internal/transport"
	"github.com/stretchr/testify/require"
)

// TestServer is a fully wired HTTP server over a shared in-memory database,
// authenticated with a real API key.
type TestServer struct {
	Server    *httptest.Server
	DB        *sqlite.DB
	Token     string
	ProjectID int64
}

// New starts a test server whose bearer token is scoped to projectID.
func New(t *testing.T, projectID int64) *TestServer {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := sqlite.New(dsn)
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations())

	dashboardRepo := sqlite.NewDashboardRepository(db)
	activityRepo := sqlite.NewActivityRepository(db)
	apiKeyRepo := sqlite.NewAPIKeyRepository(db)

	dashboardSvc := dashboard.NewService(dashboardRepo, activityRepo, nil)
	activitySvc := activity.NewService(activityRepo, nil)

	token, err := apiKeyRepo.Create(context.Background(), projectID, "test key")
	require.NoError(t, err)

	server := httptest.NewServer(transport.NewServer(
		dashboardSvc, activitySvc, transport.AuthMiddleware(apiKeyRepo), nil))

	ts := &TestServer{
		Server:    server,
		DB:        db,
		Token:     token,
		ProjectID: projectID,
	}

	t.Cleanup(func() {
		server.Close()
		db.Close()
	})

	return ts
}

// Post sends an authenticated JSON request to the given dashboard endpoint
// and decodes the response body into out when out is non-nil.
func (ts *TestServer) Post(t *testing.T, path string, body any, out any) *http.Response {
	t.Helper()

	encoded, err := json.Marshal(body)
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodPost,
		ts.Server.URL+"/ui/dashboard"+path, bytes.NewReader(encoded))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+ts.Token)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })

	if out != nil && resp.StatusCode == http.StatusOK {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}

	return resp
}
