package dashboard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"dashkit/internal/domain/activity"
	"dashkit/internal/storage"
)

// Service handles dashboard business logic.
type Service struct {
	repo       Repository
	activities ActivityRepository
	logger     *slog.Logger
}

// NewService creates a new dashboard service.
func NewService(repo Repository, activities ActivityRepository, logger *slog.Logger) *Service {
	return &Service{repo: repo, activities: activities, logger: logger}
}

// CreateRequest defines dashboard creation inputs.
type CreateRequest struct {
	Name    string
	Options map[string]any
}

// Create creates a new dashboard. The name must be unique within the project;
// a collision surfaces as ErrDashboardExists.
func (s *Service) Create(ctx context.Context, projectID int64, req CreateRequest) (*Dashboard, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrInvalidInput
	}

	dash, err := s.repo.Create(ctx, projectID, req.Name, req.Options)
	if err != nil {
		if errors.Is(err, storage.ErrAlreadyExists) {
			return nil, ErrDashboardExists
		}
		return nil, fmt.Errorf("creating dashboard: %w", err)
	}

	s.recordActivity(ctx, projectID, &dash.ID, activity.TypeDashboardCreated,
		fmt.Sprintf("created dashboard %q", dash.Name))
	return dash, nil
}

// Delete removes a dashboard and all of its items. Deleting a dashboard that
// doesn't exist is a no-op.
func (s *Service) Delete(ctx context.Context, projectID, dashboardID int64) error {
	if err := s.repo.Delete(ctx, projectID, dashboardID); err != nil {
		return fmt.Errorf("deleting dashboard: %w", err)
	}
	s.recordActivity(ctx, projectID, &dashboardID, activity.TypeDashboardDeleted,
		fmt.Sprintf("deleted dashboard %d", dashboardID))
	return nil
}

// DeleteByName removes the dashboard with the given name and all of its
// items. Unknown names are a no-op.
func (s *Service) DeleteByName(ctx context.Context, projectID int64, name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrInvalidInput
	}
	if err := s.repo.DeleteByName(ctx, projectID, name); err != nil {
		return fmt.Errorf("deleting dashboard: %w", err)
	}
	s.recordActivity(ctx, projectID, nil, activity.TypeDashboardDeleted,
		fmt.Sprintf("deleted dashboard %q", name))
	return nil
}

// Items returns the items of the dashboard with the given name. An unknown
// name yields an empty slice.
func (s *Service) Items(ctx context.Context, projectID int64, name string) ([]Item, error) {
	items, err := s.repo.Items(ctx, projectID, name)
	if err != nil {
		return nil, fmt.Errorf("getting dashboard items: %w", err)
	}
	return items, nil
}

// List returns the project's dashboards in creation order.
func (s *Service) List(ctx context.Context, projectID int64) ([]Dashboard, error) {
	return s.repo.List(ctx, projectID)
}

// AddItemRequest defines item creation inputs.
type AddItemRequest struct {
	DashboardID int64
	Name        string
	Directive   string
	Data        map[string]any
}

// AddItem appends an item to a dashboard owned by the project.
func (s *Service) AddItem(ctx context.Context, projectID int64, req AddItemRequest) error {
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Directive) == "" {
		return ErrInvalidInput
	}

	if err := s.repo.AddItem(ctx, projectID, req.DashboardID, req.Name, req.Directive, req.Data); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrDashboardNotFound
		}
		return fmt.Errorf("adding dashboard item: %w", err)
	}

	s.recordActivity(ctx, projectID, &req.DashboardID, activity.TypeItemAdded,
		fmt.Sprintf("added item %q", req.Name))
	return nil
}

// UpdateItems replaces the listed items' fields atomically. Either every
// update commits or none do. Updates naming unknown item ids are skipped.
func (s *Service) UpdateItems(ctx context.Context, projectID, dashboardID int64, updates []ItemUpdate) error {
	if len(updates) == 0 {
		return nil
	}

	if err := s.repo.UpdateItems(ctx, projectID, dashboardID, updates); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrDashboardNotFound
		}
		return fmt.Errorf("updating dashboard items: %w", err)
	}

	s.recordActivity(ctx, projectID, &dashboardID, activity.TypeItemsUpdated,
		fmt.Sprintf("updated %d items", len(updates)))
	return nil
}

// UpdateOptions replaces the dashboard's options blob.
func (s *Service) UpdateOptions(ctx context.Context, projectID, dashboardID int64, options map[string]any) error {
	if err := s.repo.UpdateOptions(ctx, projectID, dashboardID, options); err != nil {
		return fmt.Errorf("updating dashboard options: %w", err)
	}
	s.recordActivity(ctx, projectID, &dashboardID, activity.TypeOptionsUpdated,
		fmt.Sprintf("updated options of dashboard %d", dashboardID))
	return nil
}

// RenameItem changes a single item's display name.
func (s *Service) RenameItem(ctx context.Context, projectID, dashboardID, itemID int64, name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrInvalidInput
	}
	if err := s.repo.RenameItem(ctx, projectID, dashboardID, itemID, name); err != nil {
		return fmt.Errorf("renaming dashboard item: %w", err)
	}
	s.recordActivity(ctx, projectID, &dashboardID, activity.TypeItemRenamed,
		fmt.Sprintf("renamed item %d to %q", itemID, name))
	return nil
}

// RemoveItem deletes a single item. Removing an unknown item is a no-op.
func (s *Service) RemoveItem(ctx context.Context, projectID, dashboardID, itemID int64) error {
	if err := s.repo.RemoveItem(ctx, projectID, dashboardID, itemID); err != nil {
		return fmt.Errorf("removing dashboard item: %w", err)
	}
	s.recordActivity(ctx, projectID, &dashboardID, activity.TypeItemRemoved,
		fmt.Sprintf("removed item %d", itemID))
	return nil
}

// recordActivity appends an audit entry. Failures are logged, never surfaced:
// the mutation itself has already committed.
func (s *Service) recordActivity(ctx context.Context, projectID int64, dashboardID *int64, typ activity.Type, summary string) {
	if s.activities == nil {
		return
	}
	entry := &activity.Entry{
		ProjectID:   projectID,
		DashboardID: dashboardID,
		Type:        typ,
		Summary:     summary,
	}
	if err := s.activities.Log(ctx, projectID, entry); err != nil && s.logger != nil {
		s.logger.Warn("failed to record activity", "type", typ, "error", err)
	}
}
