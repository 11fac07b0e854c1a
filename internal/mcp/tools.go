package mcp

import (
	"context"

	"dashkit/internal/domain/activity"
	"dashkit/internal/domain/dashboard"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// CreateDashboardInput is the input for the create_dashboard tool.
type CreateDashboardInput struct {
	Name    string         `json:"name" jsonschema:"dashboard name, unique within the project"`
	Options map[string]any `json:"options,omitempty" jsonschema:"optional free-form options blob"`
}

// DashboardResult wraps a single dashboard.
type DashboardResult struct {
	Dashboard dashboard.Dashboard `json:"dashboard"`
}

// ListDashboardsInput is the (empty) input for the list_dashboards tool.
type ListDashboardsInput struct{}

// ListDashboardsResult carries the project's dashboards in creation order.
type ListDashboardsResult struct {
	Dashboards []dashboard.Dashboard `json:"dashboards"`
}

// GetItemsInput is the input for the get_dashboard_items tool.
type GetItemsInput struct {
	Name string `json:"name" jsonschema:"dashboard name"`
}

// GetItemsResult carries a dashboard's items.
type GetItemsResult struct {
	Items []dashboard.Item `json:"items"`
}

// DeleteDashboardInput is the input for the delete_dashboard tool. The target
// may be named by id or by its project-unique name; name wins when both are set.
type DeleteDashboardInput struct {
	Dashboard int64  `json:"dashboard,omitempty" jsonschema:"dashboard id"`
	Name      string `json:"name,omitempty" jsonschema:"dashboard name"`
}

// AddItemInput is the input for the add_dashboard_item tool.
type AddItemInput struct {
	Dashboard int64          `json:"dashboard" jsonschema:"dashboard id"`
	Name      string         `json:"name" jsonschema:"item display name"`
	Directive string         `json:"directive" jsonschema:"rendering directive, opaque to the server"`
	Data      map[string]any `json:"data,omitempty" jsonschema:"opaque item payload"`
}

// UpdateItemsInput is the input for the update_dashboard_items tool.
type UpdateItemsInput struct {
	Dashboard int64                  `json:"dashboard" jsonschema:"dashboard id"`
	Items     []dashboard.ItemUpdate `json:"items" jsonschema:"item replacements, applied atomically"`
}

// UpdateOptionsInput is the input for the update_dashboard_options tool.
type UpdateOptionsInput struct {
	Dashboard int64          `json:"dashboard" jsonschema:"dashboard id"`
	Options   map[string]any `json:"options,omitempty" jsonschema:"replacement options blob"`
}

// RenameItemInput is the input for the rename_dashboard_item tool.
type RenameItemInput struct {
	Dashboard int64  `json:"dashboard" jsonschema:"dashboard id"`
	ID        int64  `json:"id" jsonschema:"item id"`
	Name      string `json:"name" jsonschema:"new display name"`
}

// RemoveItemInput is the input for the remove_dashboard_item tool.
type RemoveItemInput struct {
	Dashboard int64 `json:"dashboard" jsonschema:"dashboard id"`
	ID        int64 `json:"id" jsonschema:"item id"`
}

// RecentActivityInput is the input for the recent_activity tool.
type RecentActivityInput struct {
	Dashboard *int64 `json:"dashboard,omitempty" jsonschema:"filter by dashboard id"`
	Type      string `json:"type,omitempty" jsonschema:"filter by activity type"`
	Limit     int    `json:"limit,omitempty" jsonschema:"maximum number of entries"`
	Offset    int    `json:"offset,omitempty" jsonschema:"offset for pagination"`
}

// RecentActivityResult carries activity entries, newest first.
type RecentActivityResult struct {
	Entries []activity.Entry `json:"entries"`
}

// SuccessResult is the output of tools with nothing else to report.
type SuccessResult struct {
	Success bool `json:"success"`
}

func registerTools(server *sdkmcp.Server, services Services) {
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "create_dashboard",
		Description: "Create a dashboard; its name must be unique within the project",
	}, createDashboardHandler(services.Dashboards))

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_dashboards",
		Description: "List the project's dashboards in creation order",
	}, listDashboardsHandler(services.Dashboards))

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_dashboard_items",
		Description: "Get all items of a dashboard by name",
	}, getItemsHandler(services.Dashboards))

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "delete_dashboard",
		Description: "Delete a dashboard and all of its items",
	}, deleteDashboardHandler(services.Dashboards))

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "add_dashboard_item",
		Description: "Add an item to a dashboard",
	}, addItemHandler(services.Dashboards))

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "update_dashboard_items",
		Description: "Replace the listed items' fields; all updates commit together or not at all",
	}, updateItemsHandler(services.Dashboards))

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "update_dashboard_options",
		Description: "Replace a dashboard's options blob",
	}, updateOptionsHandler(services.Dashboards))

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "rename_dashboard_item",
		Description: "Rename a single dashboard item",
	}, renameItemHandler(services.Dashboards))

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "remove_dashboard_item",
		Description: "Remove a single item from a dashboard",
	}, removeItemHandler(services.Dashboards))

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "recent_activity",
		Description: "List recent dashboard changes, newest first",
	}, recentActivityHandler(services.Activity))
}

func createDashboardHandler(svc DashboardService) sdkmcp.ToolHandlerFor[CreateDashboardInput, DashboardResult] {
	return func(ctx context.Context, _ *sdkmcp.CallToolRequest, input CreateDashboardInput) (*sdkmcp.CallToolResult, DashboardResult, error) {
		dash, err := svc.Create(ctx, projectFromContext(ctx), dashboard.CreateRequest{
			Name:    input.Name,
			Options: input.Options,
		})
		if err != nil {
			return nil, DashboardResult{}, err
		}
		return nil, DashboardResult{Dashboard: *dash}, nil
	}
}

func listDashboardsHandler(svc DashboardService) sdkmcp.ToolHandlerFor[ListDashboardsInput, ListDashboardsResult] {
	return func(ctx context.Context, _ *sdkmcp.CallToolRequest, _ ListDashboardsInput) (*sdkmcp.CallToolResult, ListDashboardsResult, error) {
		dashboards, err := svc.List(ctx, projectFromContext(ctx))
		if err != nil {
			return nil, ListDashboardsResult{}, err
		}
		if dashboards == nil {
			dashboards = []dashboard.Dashboard{}
		}
		return nil, ListDashboardsResult{Dashboards: dashboards}, nil
	}
}

func getItemsHandler(svc DashboardService) sdkmcp.ToolHandlerFor[GetItemsInput, GetItemsResult] {
	return func(ctx context.Context, _ *sdkmcp.CallToolRequest, input GetItemsInput) (*sdkmcp.CallToolResult, GetItemsResult, error) {
		items, err := svc.Items(ctx, projectFromContext(ctx), input.Name)
		if err != nil {
			return nil, GetItemsResult{}, err
		}
		if items == nil {
			items = []dashboard.Item{}
		}
		return nil, GetItemsResult{Items: items}, nil
	}
}

func deleteDashboardHandler(svc DashboardService) sdkmcp.ToolHandlerFor[DeleteDashboardInput, SuccessResult] {
	return func(ctx context.Context, _ *sdkmcp.CallToolRequest, input DeleteDashboardInput) (*sdkmcp.CallToolResult, SuccessResult, error) {
		var err error
		if input.Name != "" {
			err = svc.DeleteByName(ctx, projectFromContext(ctx), input.Name)
		} else {
			err = svc.Delete(ctx, projectFromContext(ctx), input.Dashboard)
		}
		if err != nil {
			return nil, SuccessResult{}, err
		}
		return nil, SuccessResult{Success: true}, nil
	}
}

func addItemHandler(svc DashboardService) sdkmcp.ToolHandlerFor[AddItemInput, SuccessResult] {
	return func(ctx context.Context, _ *sdkmcp.CallToolRequest, input AddItemInput) (*sdkmcp.CallToolResult, SuccessResult, error) {
		err := svc.AddItem(ctx, projectFromContext(ctx), dashboard.AddItemRequest{
			DashboardID: input.Dashboard,
			Name:        input.Name,
			Directive:   input.Directive,
			Data:        input.Data,
		})
		if err != nil {
			return nil, SuccessResult{}, err
		}
		return nil, SuccessResult{Success: true}, nil
	}
}

func updateItemsHandler(svc DashboardService) sdkmcp.ToolHandlerFor[UpdateItemsInput, SuccessResult] {
	return func(ctx context.Context, _ *sdkmcp.CallToolRequest, input UpdateItemsInput) (*sdkmcp.CallToolResult, SuccessResult, error) {
		if err := svc.UpdateItems(ctx, projectFromContext(ctx), input.Dashboard, input.Items); err != nil {
			return nil, SuccessResult{}, err
		}
		return nil, SuccessResult{Success: true}, nil
	}
}

func updateOptionsHandler(svc DashboardService) sdkmcp.ToolHandlerFor[UpdateOptionsInput, SuccessResult] {
	return func(ctx context.Context, _ *sdkmcp.CallToolRequest, input UpdateOptionsInput) (*sdkmcp.CallToolResult, SuccessResult, error) {
		if err := svc.UpdateOptions(ctx, projectFromContext(ctx), input.Dashboard, input.Options); err != nil {
			return nil, SuccessResult{}, err
		}
		return nil, SuccessResult{Success: true}, nil
	}
}

func renameItemHandler(svc DashboardService) sdkmcp.ToolHandlerFor[RenameItemInput, SuccessResult] {
	return func(ctx context.Context, _ *sdkmcp.CallToolRequest, input RenameItemInput) (*sdkmcp.CallToolResult, SuccessResult, error) {
		if err := svc.RenameItem(ctx, projectFromContext(ctx), input.Dashboard, input.ID, input.Name); err != nil {
			return nil, SuccessResult{}, err
		}
		return nil, SuccessResult{Success: true}, nil
	}
}

func removeItemHandler(svc DashboardService) sdkmcp.ToolHandlerFor[RemoveItemInput, SuccessResult] {
	return func(ctx context.Context, _ *sdkmcp.CallToolRequest, input RemoveItemInput) (*sdkmcp.CallToolResult, SuccessResult, error) {
		if err := svc.RemoveItem(ctx, projectFromContext(ctx), input.Dashboard, input.ID); err != nil {
			return nil, SuccessResult{}, err
		}
		return nil, SuccessResult{Success: true}, nil
	}
}

func recentActivityHandler(svc ActivityService) sdkmcp.ToolHandlerFor[RecentActivityInput, RecentActivityResult] {
	return func(ctx context.Context, _ *sdkmcp.CallToolRequest, input RecentActivityInput) (*sdkmcp.CallToolResult, RecentActivityResult, error) {
		var typ *activity.Type
		if input.Type != "" {
			t := activity.Type(input.Type)
			typ = &t
		}
		entries, err := svc.Recent(ctx, projectFromContext(ctx), activity.ListOptions{
			DashboardID: input.Dashboard,
			Type:        typ,
			Limit:       input.Limit,
			Offset:      input.Offset,
		})
		if err != nil {
			return nil, RecentActivityResult{}, err
		}
		if entries == nil {
			entries = []activity.Entry{}
		}
		return nil, RecentActivityResult{Entries: entries}, nil
	}
}
