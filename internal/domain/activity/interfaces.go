package activity

import "context"

// Repository provides persistence for the activity log.
type Repository interface {
	Log(ctx context.Context, projectID int64, entry *Entry) error
	List(ctx context.Context, projectID int64, opts ListOptions) ([]Entry, error)
}
