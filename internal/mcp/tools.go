// ABOUTME: MCP tool definitions and handlers
// ABOUTME: Provides shopping list CRUD and totals for AI agents

package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/harper/shoplist/internal/models"
	"github.com/harper/shoplist/internal/storage"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerTools() {
	s.registerListItemsTool()
	s.registerSearchItemsTool()
	s.registerAddItemTool()
	s.registerUpdateItemTool()
	s.registerDeleteItemTool()
	s.registerResetItemsTool()
	s.registerGetTotalTool()
}

// ItemOutput defines output for a single list item. Money is rendered as
// exact decimal strings, as stored.
type ItemOutput struct {
	ID           int64     `json:"id"`
	Description  string    `json:"description"`
	Quantity     int       `json:"quantity"`
	UnitPrice    string    `json:"unit_price"`
	LineTotal    string    `json:"line_total"`
	RegisteredAt time.Time `json:"registered_at"`
}

// ListItemsOutput defines output for list_items and search_items.
type ListItemsOutput struct {
	Items     []ItemOutput `json:"items"`
	Count     int          `json:"count"`
	Total     string       `json:"total"`
	Formatted string       `json:"formatted_total"`
}

func (s *Server) toItemOutput(item models.Item) ItemOutput {
	return ItemOutput{
		ID:           item.ID,
		Description:  item.Description,
		Quantity:     item.Quantity,
		UnitPrice:    item.UnitPrice.String(),
		LineTotal:    item.LineTotal().String(),
		RegisteredAt: item.RegisteredAt,
	}
}

func (s *Server) toListOutput(items []models.Item) ListItemsOutput {
	outputs := make([]ItemOutput, len(items))
	for i, item := range items {
		outputs[i] = s.toItemOutput(item)
	}
	total := models.Total(items)
	return ListItemsOutput{
		Items:     outputs,
		Count:     len(outputs),
		Total:     total.String(),
		Formatted: s.format.FormatMoney(total),
	}
}

func jsonResult(v any) *mcp.CallToolResult {
	jsonBytes, _ := json.MarshalIndent(v, "", "  ") //nolint:errchkjson // output is always serializable
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(jsonBytes)}},
	}
}

// ListItemsInput is empty but required for type.
type ListItemsInput struct{}

func (s *Server) registerListItemsTool() {
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "list_items",
		Description: "List every item on the shopping list, ordered by description, with the grand total.",
		InputSchema: map[string]interface{}{
			"type": "object",
		},
	}, s.handleListItems)
}

func (s *Server) handleListItems(ctx context.Context, req *mcp.CallToolRequest, input ListItemsInput) (*mcp.CallToolResult, ListItemsOutput, error) {
	items, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, ListItemsOutput{}, fmt.Errorf("failed to list items: %w", err)
	}
	output := s.toListOutput(items)
	return jsonResult(output), output, nil
}

// SearchItemsInput defines input for search_items tool.
type SearchItemsInput struct {
	Query string `json:"query"`
}

func (s *Server) registerSearchItemsTool() {
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "search_items",
		Description: "Find items whose description contains the query, ignoring case. A blank query lists everything.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"query": map[string]interface{}{
					"type":        "string",
					"description": "Text to look for inside descriptions (e.g., 'arroz')",
				},
			},
			"required": []string{"query"},
		},
	}, s.handleSearchItems)
}

func (s *Server) handleSearchItems(ctx context.Context, req *mcp.CallToolRequest, input SearchItemsInput) (*mcp.CallToolResult, ListItemsOutput, error) {
	items, err := s.repo.Search(ctx, input.Query)
	if err != nil {
		return nil, ListItemsOutput{}, fmt.Errorf("failed to search items: %w", err)
	}
	output := s.toListOutput(items)
	return jsonResult(output), output, nil
}

// AddItemInput defines input for add_item tool.
type AddItemInput struct {
	Description  string  `json:"description"`
	Quantity     int     `json:"quantity"`
	UnitPrice    string  `json:"unit_price"`
	RegisteredAt *string `json:"registered_at,omitempty"`
}

func (s *Server) registerAddItemTool() {
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "add_item",
		Description: "Add an item to the shopping list. Returns the stored item with its new id.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"description": map[string]interface{}{
					"type":        "string",
					"description": "What to buy (e.g., 'Arroz 5kg')",
				},
				"quantity": map[string]interface{}{
					"type":        "integer",
					"description": "How many units",
				},
				"unit_price": map[string]interface{}{
					"type":        "string",
					"description": "Price of one unit, e.g. '27.90' or '27,90'",
				},
				"registered_at": map[string]interface{}{
					"type":        "string",
					"description": "Optional registration time in RFC3339 format",
				},
			},
			"required": []string{"description", "quantity", "unit_price"},
		},
	}, s.handleAddItem)
}

func (s *Server) handleAddItem(ctx context.Context, req *mcp.CallToolRequest, input AddItemInput) (*mcp.CallToolResult, ItemOutput, error) {
	price, err := s.format.ParseDecimal(input.UnitPrice)
	if err != nil {
		return nil, ItemOutput{}, fmt.Errorf("invalid unit_price: %w", err)
	}

	item := models.NewItem(input.Description, input.Quantity, price)
	if input.RegisteredAt != nil {
		registeredAt, err := time.Parse(time.RFC3339, *input.RegisteredAt)
		if err != nil {
			return nil, ItemOutput{}, fmt.Errorf("invalid timestamp: %w", err)
		}
		item.RegisteredAt = registeredAt
	}

	if _, err := s.repo.Insert(ctx, item); err != nil {
		return nil, ItemOutput{}, fmt.Errorf("failed to add item: %w", err)
	}
	s.logger.Debug("mcp added item", "id", item.ID)

	output := s.toItemOutput(*item)
	return jsonResult(output), output, nil
}

// UpdateItemInput defines input for update_item tool. Omitted fields keep
// their stored values.
type UpdateItemInput struct {
	ID           int64   `json:"id"`
	Description  *string `json:"description,omitempty"`
	Quantity     *int    `json:"quantity,omitempty"`
	UnitPrice    *string `json:"unit_price,omitempty"`
	RegisteredAt *string `json:"registered_at,omitempty"`
}

func (s *Server) registerUpdateItemTool() {
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "update_item",
		Description: "Change fields of an existing item. Only the fields given are changed.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"id": map[string]interface{}{
					"type":        "integer",
					"description": "Id of the item to change",
				},
				"description": map[string]interface{}{
					"type":        "string",
					"description": "New description",
				},
				"quantity": map[string]interface{}{
					"type":        "integer",
					"description": "New quantity",
				},
				"unit_price": map[string]interface{}{
					"type":        "string",
					"description": "New unit price, e.g. '8.50'",
				},
				"registered_at": map[string]interface{}{
					"type":        "string",
					"description": "New registration time in RFC3339 format",
				},
			},
			"required": []string{"id"},
		},
	}, s.handleUpdateItem)
}

func (s *Server) handleUpdateItem(ctx context.Context, req *mcp.CallToolRequest, input UpdateItemInput) (*mcp.CallToolResult, ItemOutput, error) {
	item, err := s.repo.Get(ctx, input.ID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ItemOutput{}, fmt.Errorf("item %d not found", input.ID)
		}
		return nil, ItemOutput{}, fmt.Errorf("failed to get item: %w", err)
	}

	if input.Description != nil {
		item.Description = *input.Description
	}
	if input.Quantity != nil {
		item.Quantity = *input.Quantity
	}
	if input.UnitPrice != nil {
		price, err := s.format.ParseDecimal(*input.UnitPrice)
		if err != nil {
			return nil, ItemOutput{}, fmt.Errorf("invalid unit_price: %w", err)
		}
		item.UnitPrice = price
	}
	if input.RegisteredAt != nil {
		registeredAt, err := time.Parse(time.RFC3339, *input.RegisteredAt)
		if err != nil {
			return nil, ItemOutput{}, fmt.Errorf("invalid timestamp: %w", err)
		}
		item.RegisteredAt = registeredAt
	}

	n, err := s.repo.Update(ctx, item)
	if err != nil {
		return nil, ItemOutput{}, fmt.Errorf("failed to update item: %w", err)
	}
	if n == 0 {
		return nil, ItemOutput{}, fmt.Errorf("item %d not found", input.ID)
	}

	output := s.toItemOutput(*item)
	return jsonResult(output), output, nil
}

// DeleteItemInput defines input for delete_item tool.
type DeleteItemInput struct {
	ID int64 `json:"id"`
}

// MessageOutput defines output for tools that only report success.
type MessageOutput struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func (s *Server) registerDeleteItemTool() {
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "delete_item",
		Description: "Remove one item from the shopping list. This cannot be undone.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"id": map[string]interface{}{
					"type":        "integer",
					"description": "Id of the item to remove",
				},
			},
			"required": []string{"id"},
		},
	}, s.handleDeleteItem)
}

func (s *Server) handleDeleteItem(ctx context.Context, req *mcp.CallToolRequest, input DeleteItemInput) (*mcp.CallToolResult, MessageOutput, error) {
	n, err := s.repo.Delete(ctx, input.ID)
	if err != nil {
		return nil, MessageOutput{}, fmt.Errorf("failed to delete item: %w", err)
	}
	if n == 0 {
		return nil, MessageOutput{}, fmt.Errorf("item %d not found", input.ID)
	}

	output := MessageOutput{
		Success: true,
		Message: fmt.Sprintf("Removed item %d", input.ID),
	}
	return jsonResult(output), output, nil
}

// ResetItemsInput defines input for reset_items tool.
type ResetItemsInput struct {
	Confirm bool `json:"confirm"`
}

func (s *Server) registerResetItemsTool() {
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "reset_items",
		Description: "Delete ALL items and restart ids at 1. Requires confirm=true. This cannot be undone.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"confirm": map[string]interface{}{
					"type":        "boolean",
					"description": "Must be true to actually reset the list",
				},
			},
			"required": []string{"confirm"},
		},
	}, s.handleResetItems)
}

func (s *Server) handleResetItems(ctx context.Context, req *mcp.CallToolRequest, input ResetItemsInput) (*mcp.CallToolResult, MessageOutput, error) {
	if !input.Confirm {
		return nil, MessageOutput{}, fmt.Errorf("reset requires confirm=true")
	}
	if err := s.repo.Reset(ctx); err != nil {
		return nil, MessageOutput{}, fmt.Errorf("failed to reset items: %w", err)
	}
	s.logger.Info("mcp reset shopping list")

	output := MessageOutput{
		Success: true,
		Message: "Shopping list cleared",
	}
	return jsonResult(output), output, nil
}

// GetTotalInput defines input for get_total tool.
type GetTotalInput struct {
	Query string `json:"query,omitempty"`
}

// TotalOutput defines output for get_total tool.
type TotalOutput struct {
	Total     string `json:"total"`
	Formatted string `json:"formatted_total"`
	Count     int    `json:"count"`
}

func (s *Server) registerGetTotalTool() {
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "get_total",
		Description: "Sum quantity times unit price over the list, optionally only over items matching a query.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"query": map[string]interface{}{
					"type":        "string",
					"description": "Optional description filter",
				},
			},
		},
	}, s.handleGetTotal)
}

func (s *Server) handleGetTotal(ctx context.Context, req *mcp.CallToolRequest, input GetTotalInput) (*mcp.CallToolResult, TotalOutput, error) {
	items, err := s.repo.Search(ctx, input.Query)
	if err != nil {
		return nil, TotalOutput{}, fmt.Errorf("failed to total items: %w", err)
	}

	total := models.Total(items)
	output := TotalOutput{
		Total:     total.String(),
		Formatted: s.format.FormatMoney(total),
		Count:     len(items),
	}
	return jsonResult(output), output, nil
}
