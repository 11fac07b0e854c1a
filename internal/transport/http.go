package transport

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"dashkit/internal/domain/activity"
	"dashkit/internal/domain/dashboard"
	"github.com/go-chi/chi/v5"
)

// DashboardService defines the dashboard operations exposed over HTTP.
type DashboardService interface {
	Create(ctx context.Context, projectID int64, req dashboard.CreateRequest) (*dashboard.Dashboard, error)
	Delete(ctx context.Context, projectID, dashboardID int64) error
	DeleteByName(ctx context.Context, projectID int64, name string) error
	Items(ctx context.Context, projectID int64, name string) ([]dashboard.Item, error)
	List(ctx context.Context, projectID int64) ([]dashboard.Dashboard, error)
	AddItem(ctx context.Context, projectID int64, req dashboard.AddItemRequest) error
	UpdateItems(ctx context.Context, projectID, dashboardID int64, updates []dashboard.ItemUpdate) error
	UpdateOptions(ctx context.Context, projectID, dashboardID int64, options map[string]any) error
	RenameItem(ctx context.Context, projectID, dashboardID, itemID int64, name string) error
	RemoveItem(ctx context.Context, projectID, dashboardID, itemID int64) error
}

// ActivityService defines the activity log operations exposed over HTTP.
type ActivityService interface {
	Recent(ctx context.Context, projectID int64, opts activity.ListOptions) ([]activity.Entry, error)
}

// Server wires HTTP handlers.
type Server struct {
	dashboards DashboardService
	activities ActivityService
	logger     *slog.Logger
}

// NewServer creates an HTTP router with middleware. tenantMiddleware supplies
// the project scope (bearer auth or the Project header in dev mode).
func NewServer(dashboards DashboardService, activities ActivityService, tenantMiddleware func(http.Handler) http.Handler, logger *slog.Logger) *chi.Mux {
	r := chi.NewRouter()

	srv := &Server{dashboards: dashboards, activities: activities, logger: logger}

	r.Get("/health", srv.handleHealth)

	r.Route("/ui/dashboard", func(r chi.Router) {
		if tenantMiddleware != nil {
			r.Use(tenantMiddleware)
		}
		r.Post("/create", srv.handleCreate)
		r.Post("/delete", srv.handleDelete)
		r.Post("/get", srv.handleGet)
		r.Post("/list", srv.handleList)
		r.Post("/add_item", srv.handleAddItem)
		r.Post("/update_dashboard_items", srv.handleUpdateItems)
		r.Post("/update_dashboard_options", srv.handleUpdateOptions)
		r.Post("/rename_item", srv.handleRenameItem)
		r.Post("/delete_item", srv.handleRemoveItem)
		r.Post("/activity", srv.handleActivity)
	})

	return r
}

// SuccessMessage is the body of responses with nothing else to say.
type SuccessMessage struct {
	Success bool `json:"success"`
}

type errorMessage struct {
	Error string `json:"error"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

type createRequest struct {
	Name    string         `json:"name"`
	Options map[string]any `json:"options,omitempty"`
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	projectID, ok := ProjectFromContext(r.Context())
	if !ok {
		http.Error(w, "missing project", http.StatusUnauthorized)
		return
	}

	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	dash, err := s.dashboards.Create(r.Context(), projectID, dashboard.CreateRequest{
		Name:    req.Name,
		Options: req.Options,
	})
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, dash)
}

type deleteRequest struct {
	Dashboard int64  `json:"dashboard,omitempty"`
	Name      string `json:"name,omitempty"`
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	projectID, ok := ProjectFromContext(r.Context())
	if !ok {
		http.Error(w, "missing project", http.StatusUnauthorized)
		return
	}

	var req deleteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	var err error
	if req.Name != "" {
		err = s.dashboards.DeleteByName(r.Context(), projectID, req.Name)
	} else {
		err = s.dashboards.Delete(r.Context(), projectID, req.Dashboard)
	}
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, SuccessMessage{Success: true})
}

type getRequest struct {
	Name string `json:"name"`
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	projectID, ok := ProjectFromContext(r.Context())
	if !ok {
		http.Error(w, "missing project", http.StatusUnauthorized)
		return
	}

	var req getRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	items, err := s.dashboards.Items(r.Context(), projectID, req.Name)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	if items == nil {
		items = []dashboard.Item{}
	}

	s.writeJSON(w, http.StatusOK, items)
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	projectID, ok := ProjectFromContext(r.Context())
	if !ok {
		http.Error(w, "missing project", http.StatusUnauthorized)
		return
	}

	dashboards, err := s.dashboards.List(r.Context(), projectID)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	if dashboards == nil {
		dashboards = []dashboard.Dashboard{}
	}

	s.writeJSON(w, http.StatusOK, dashboards)
}

type addItemRequest struct {
	Dashboard int64          `json:"dashboard"`
	Name      string         `json:"name"`
	Directive string         `json:"directive"`
	Data      map[string]any `json:"data"`
}

func (s *Server) handleAddItem(w http.ResponseWriter, r *http.Request) {
	projectID, ok := ProjectFromContext(r.Context())
	if !ok {
		http.Error(w, "missing project", http.StatusUnauthorized)
		return
	}

	var req addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	err := s.dashboards.AddItem(r.Context(), projectID, dashboard.AddItemRequest{
		DashboardID: req.Dashboard,
		Name:        req.Name,
		Directive:   req.Directive,
		Data:        req.Data,
	})
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, SuccessMessage{Success: true})
}

type updateItemsRequest struct {
	Dashboard int64                  `json:"dashboard"`
	Items     []dashboard.ItemUpdate `json:"items"`
}

func (s *Server) handleUpdateItems(w http.ResponseWriter, r *http.Request) {
	projectID, ok := ProjectFromContext(r.Context())
	if !ok {
		http.Error(w, "missing project", http.StatusUnauthorized)
		return
	}

	var req updateItemsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := s.dashboards.UpdateItems(r.Context(), projectID, req.Dashboard, req.Items); err != nil {
		s.writeServiceError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, SuccessMessage{Success: true})
}

type updateOptionsRequest struct {
	Dashboard int64          `json:"dashboard"`
	Options   map[string]any `json:"options"`
}

func (s *Server) handleUpdateOptions(w http.ResponseWriter, r *http.Request) {
	projectID, ok := ProjectFromContext(r.Context())
	if !ok {
		http.Error(w, "missing project", http.StatusUnauthorized)
		return
	}

	var req updateOptionsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := s.dashboards.UpdateOptions(r.Context(), projectID, req.Dashboard, req.Options); err != nil {
		s.writeServiceError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, SuccessMessage{Success: true})
}

type renameItemRequest struct {
	Dashboard int64  `json:"dashboard"`
	ID        int64  `json:"id"`
	Name      string `json:"name"`
}

func (s *Server) handleRenameItem(w http.ResponseWriter, r *http.Request) {
	projectID, ok := ProjectFromContext(r.Context())
	if !ok {
		http.Error(w, "missing project", http.StatusUnauthorized)
		return
	}

	var req renameItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := s.dashboards.RenameItem(r.Context(), projectID, req.Dashboard, req.ID, req.Name); err != nil {
		s.writeServiceError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, SuccessMessage{Success: true})
}

type removeItemRequest struct {
	Dashboard int64 `json:"dashboard"`
	ID        int64 `json:"id"`
}

func (s *Server) handleRemoveItem(w http.ResponseWriter, r *http.Request) {
	projectID, ok := ProjectFromContext(r.Context())
	if !ok {
		http.Error(w, "missing project", http.StatusUnauthorized)
		return
	}

	var req removeItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := s.dashboards.RemoveItem(r.Context(), projectID, req.Dashboard, req.ID); err != nil {
		s.writeServiceError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, SuccessMessage{Success: true})
}

type activityRequest struct {
	Dashboard *int64         `json:"dashboard,omitempty"`
	Type      *activity.Type `json:"type,omitempty"`
	Limit     int            `json:"limit,omitempty"`
	Offset    int            `json:"offset,omitempty"`
}

func (s *Server) handleActivity(w http.ResponseWriter, r *http.Request) {
	projectID, ok := ProjectFromContext(r.Context())
	if !ok {
		http.Error(w, "missing project", http.StatusUnauthorized)
		return
	}

	var req activityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	entries, err := s.activities.Recent(r.Context(), projectID, activity.ListOptions{
		DashboardID: req.Dashboard,
		Type:        req.Type,
		Limit:       req.Limit,
		Offset:      req.Offset,
	})
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	if entries == nil {
		entries = []activity.Entry{}
	}

	s.writeJSON(w, http.StatusOK, entries)
}

func (s *Server) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, dashboard.ErrDashboardExists),
		errors.Is(err, dashboard.ErrInvalidInput):
		s.writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, dashboard.ErrDashboardNotFound):
		s.writeError(w, http.StatusNotFound, err.Error())
	default:
		if s.logger != nil {
			s.logger.Error("request failed", "error", err)
		}
		s.writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, errorMessage{Error: message})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
