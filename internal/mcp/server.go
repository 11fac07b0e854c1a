package mcp

import (
	"context"
	"log/slog"

	"dashkit/internal/domain/activity"
	"dashkit/internal/domain/dashboard"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// DashboardService defines dashboard operations needed by MCP.
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

// ActivityService defines activity operations needed by MCP.
type ActivityService interface {
	Recent(ctx context.Context, projectID int64, opts activity.ListOptions) ([]activity.Entry, error)
}

// Services contains all domain services needed by MCP.
type Services struct {
	Dashboards DashboardService
	Activity   ActivityService
}

// Config contains server configuration.
type Config struct {
	Services       Services
	Resolver       ProjectResolver
	AuthEnabled    bool
	DefaultProject int64
	Logger         *slog.Logger
}

const serverInstructions = `Manage per-project dashboards: named collections of report
items. Each item carries a rendering directive and an opaque data payload interpreted
by the client. Dashboard names are unique within a project.`

// NewServer creates and configures an MCP server with all tools and middleware.
func NewServer(cfg Config) *sdkmcp.Server {
	server := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    "dashkit",
		Version: "0.1.0",
	}, &sdkmcp.ServerOptions{
		Instructions: serverInstructions,
		Logger:       cfg.Logger,
	})

	if cfg.AuthEnabled {
		server.AddReceivingMiddleware(authMiddleware(cfg.Resolver))
	} else {
		server.AddReceivingMiddleware(noAuthMiddleware(cfg.DefaultProject))
	}

	registerTools(server, cfg.Services)

	return server
}
