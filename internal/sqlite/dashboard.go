package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"dashkit/internal/domain/dashboard"
	"dashkit/internal/storage"
)

// DashboardRepository implements repository.DashboardRepository for SQLite
type DashboardRepository struct {
	db *DB
}

// NewDashboardRepository creates a new DashboardRepository
func NewDashboardRepository(db *DB) *DashboardRepository {
	return &DashboardRepository{db: db}
}

// Create inserts a new dashboard and returns it with its generated id.
//
// Duplicate names are detected by re-querying after a failed insert rather
// than by parsing the driver's constraint error: two concurrent creates race
// at the UNIQUE(project_id, name) index, and the loser must still see
// ErrAlreadyExists regardless of how the backend words the violation.
func (r *DashboardRepository) Create(ctx context.Context, projectID int64, name string, options map[string]any) (*dashboard.Dashboard, error) {
	opts, err := encodeOptions(options)
	if err != nil {
		return nil, fmt.Errorf("failed to encode options: %w", err)
	}

	query := `
		INSERT INTO dashboard (project_id, name, options)
		VALUES (?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query, projectID, name, opts)
	if err != nil {
		var one int
		checkErr := r.db.QueryRowContext(ctx,
			`SELECT 1 FROM dashboard WHERE project_id = ? AND name = ?`,
			projectID, name).Scan(&one)
		if checkErr == nil {
			return nil, storage.ErrAlreadyExists
		}
		return nil, fmt.Errorf("failed to create dashboard: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get dashboard id: %w", err)
	}

	return &dashboard.Dashboard{
		ID:        id,
		ProjectID: projectID,
		Name:      name,
		Options:   options,
	}, nil
}

// Delete removes a dashboard and its items. Items go first so that no item
// can outlive its dashboard; both deletes commit together. Deleting a
// dashboard that doesn't exist is a no-op.
func (r *DashboardRepository) Delete(ctx context.Context, projectID, dashboardID int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		DELETE FROM dashboard_items
		WHERE dashboard IN (SELECT id FROM dashboard WHERE id = ? AND project_id = ?)
	`, dashboardID, projectID)
	if err != nil {
		return fmt.Errorf("failed to delete dashboard items: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`DELETE FROM dashboard WHERE id = ? AND project_id = ?`,
		dashboardID, projectID)
	if err != nil {
		return fmt.Errorf("failed to delete dashboard: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// DeleteByName removes a dashboard by its project-unique name, cascading to
// its items the same way Delete does. Unknown names are a no-op.
func (r *DashboardRepository) DeleteByName(ctx context.Context, projectID int64, name string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		DELETE FROM dashboard_items
		WHERE dashboard IN (SELECT id FROM dashboard WHERE project_id = ? AND name = ?)
	`, projectID, name)
	if err != nil {
		return fmt.Errorf("failed to delete dashboard items: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`DELETE FROM dashboard WHERE project_id = ? AND name = ?`,
		projectID, name)
	if err != nil {
		return fmt.Errorf("failed to delete dashboard: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// Items returns all items of the dashboard with the given name. An unknown
// name yields an empty result, not an error.
func (r *DashboardRepository) Items(ctx context.Context, projectID int64, name string) ([]dashboard.Item, error) {
	query := `
		SELECT id, name, directive, data
		FROM dashboard_items
		WHERE dashboard = (SELECT id FROM dashboard WHERE project_id = ? AND name = ?)
		ORDER BY id ASC
	`

	rows, err := r.db.QueryContext(ctx, query, projectID, name)
	if err != nil {
		return nil, fmt.Errorf("failed to get dashboard items: %w", err)
	}
	defer rows.Close()

	var items []dashboard.Item
	for rows.Next() {
		var item dashboard.Item
		var data string
		if err := rows.Scan(&item.ID, &item.Name, &item.Directive, &data); err != nil {
			return nil, fmt.Errorf("failed to scan dashboard item: %w", err)
		}
		if err := json.Unmarshal([]byte(data), &item.Data); err != nil {
			return nil, fmt.Errorf("failed to decode item data: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating item rows: %w", err)
	}

	return items, nil
}

// List returns all dashboards of a project in insertion order.
func (r *DashboardRepository) List(ctx context.Context, projectID int64) ([]dashboard.Dashboard, error) {
	query := `
		SELECT id, project_id, name, options
		FROM dashboard
		WHERE project_id = ?
		ORDER BY id ASC
	`

	rows, err := r.db.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list dashboards: %w", err)
	}
	defer rows.Close()

	var dashboards []dashboard.Dashboard
	for rows.Next() {
		var dash dashboard.Dashboard
		var options sql.NullString
		if err := rows.Scan(&dash.ID, &dash.ProjectID, &dash.Name, &options); err != nil {
			return nil, fmt.Errorf("failed to scan dashboard: %w", err)
		}
		if options.Valid {
			if err := json.Unmarshal([]byte(options.String), &dash.Options); err != nil {
				return nil, fmt.Errorf("failed to decode dashboard options: %w", err)
			}
		}
		dashboards = append(dashboards, dash)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating dashboard rows: %w", err)
	}

	return dashboards, nil
}

// AddItem inserts an item into a dashboard. The dashboard must belong to the
// project; otherwise ErrNotFound.
func (r *DashboardRepository) AddItem(ctx context.Context, projectID, dashboardID int64, name, directive string, data map[string]any) error {
	owned, err := r.dashboardOwned(ctx, r.db, projectID, dashboardID)
	if err != nil {
		return err
	}
	if !owned {
		return storage.ErrNotFound
	}

	encoded, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to encode item data: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO dashboard_items (dashboard, name, directive, data)
		VALUES (?, ?, ?, ?)
	`, dashboardID, name, directive, string(encoded))
	if err != nil {
		return fmt.Errorf("failed to add dashboard item: %w", err)
	}

	return nil
}

// UpdateItems applies the given updates in a single transaction. If any
// statement fails the whole batch rolls back. Updates naming ids that don't
// exist on the dashboard affect no rows and are skipped silently.
func (r *DashboardRepository) UpdateItems(ctx context.Context, projectID, dashboardID int64, updates []dashboard.ItemUpdate) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	owned, err := r.dashboardOwned(ctx, tx, projectID, dashboardID)
	if err != nil {
		return err
	}
	if !owned {
		return storage.ErrNotFound
	}

	for _, update := range updates {
		encoded, err := json.Marshal(update.Data)
		if err != nil {
			return fmt.Errorf("failed to encode item data: %w", err)
		}

		_, err = tx.ExecContext(ctx, `
			UPDATE dashboard_items
			SET name = ?, directive = ?, data = ?
			WHERE id = ? AND dashboard = ?
		`, update.Name, update.Directive, string(encoded), update.ID, dashboardID)
		if err != nil {
			return fmt.Errorf("failed to update item %d: %w", update.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// UpdateOptions replaces the options blob, scoped by dashboard and project.
func (r *DashboardRepository) UpdateOptions(ctx context.Context, projectID, dashboardID int64, options map[string]any) error {
	opts, err := encodeOptions(options)
	if err != nil {
		return fmt.Errorf("failed to encode options: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		`UPDATE dashboard SET options = ? WHERE id = ? AND project_id = ?`,
		opts, dashboardID, projectID)
	if err != nil {
		return fmt.Errorf("failed to update dashboard options: %w", err)
	}

	return nil
}

// RenameItem updates a single item's name, scoped to the project's dashboard.
func (r *DashboardRepository) RenameItem(ctx context.Context, projectID, dashboardID, itemID int64, name string) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE dashboard_items
		SET name = ?
		WHERE id = ? AND dashboard IN (SELECT id FROM dashboard WHERE id = ? AND project_id = ?)
	`, name, itemID, dashboardID, projectID)
	if err != nil {
		return fmt.Errorf("failed to rename dashboard item: %w", err)
	}

	return nil
}

// RemoveItem deletes a single item, scoped to the project's dashboard.
// Removing an unknown item is a no-op.
func (r *DashboardRepository) RemoveItem(ctx context.Context, projectID, dashboardID, itemID int64) error {
	_, err := r.db.ExecContext(ctx, `
		DELETE FROM dashboard_items
		WHERE id = ? AND dashboard IN (SELECT id FROM dashboard WHERE id = ? AND project_id = ?)
	`, itemID, dashboardID, projectID)
	if err != nil {
		return fmt.Errorf("failed to remove dashboard item: %w", err)
	}

	return nil
}

type queryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// dashboardOwned reports whether the dashboard exists under the given project.
func (r *DashboardRepository) dashboardOwned(ctx context.Context, q queryRower, projectID, dashboardID int64) (bool, error) {
	var one int
	err := q.QueryRowContext(ctx,
		`SELECT 1 FROM dashboard WHERE id = ? AND project_id = ?`,
		dashboardID, projectID).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check dashboard ownership: %w", err)
	}
	return true, nil
}

// encodeOptions serializes an options mapping, mapping nil to SQL NULL.
func encodeOptions(options map[string]any) (any, error) {
	if options == nil {
		return nil, nil
	}
	encoded, err := json.Marshal(options)
	if err != nil {
		return nil, err
	}
	return string(encoded), nil
}
