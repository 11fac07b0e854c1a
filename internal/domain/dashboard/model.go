package dashboard

// Dashboard is a named, project-owned container of report items
type Dashboard struct {
	ID        int64          `json:"id"`
	ProjectID int64          `json:"project_id"`
	Name      string         `json:"name"`
	Options   map[string]any `json:"options,omitempty"`
}

// Item is a single visualization entry within a dashboard. The directive
// names a rendering kind; data is an opaque payload interpreted by clients.
type Item struct {
	ID        int64          `json:"id"`
	Name      string         `json:"name"`
	Directive string         `json:"directive"`
	Data      map[string]any `json:"data"`
}

// ItemUpdate replaces an existing item's fields by id.
type ItemUpdate struct {
	ID        int64          `json:"id"`
	Name      string         `json:"name"`
	Directive string         `json:"directive"`
	Data      map[string]any `json:"data"`
}
