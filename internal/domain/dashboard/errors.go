package dashboard

import "errors"

var (
	// ErrDashboardExists indicates a dashboard with the same name already
	// exists in the project.
	ErrDashboardExists = errors.New("dashboard already exists")
	// ErrDashboardNotFound indicates the dashboard doesn't exist in the project.
	ErrDashboardNotFound = errors.New("dashboard not found")
	// ErrInvalidInput indicates invalid dashboard or item input.
	ErrInvalidInput = errors.New("invalid dashboard input")
)
