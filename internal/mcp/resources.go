// ABOUTME: MCP resource definitions
// ABOUTME: Provides a read-only view of the shopping list for AI agents

package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const itemsResourceURI = "shoplist://items"

func (s *Server) registerResources() {
	s.mcp.AddResource(&mcp.Resource{
		Name:        itemsResourceURI,
		Description: "Every item on the shopping list with line totals and the grand total",
		URI:         itemsResourceURI,
		MIMEType:    "application/json",
	}, s.handleItemsResource)
}

func (s *Server) handleItemsResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	items, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}

	jsonBytes, _ := json.MarshalIndent(s.toListOutput(items), "", "  ") //nolint:errchkjson // output is always serializable

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{
			{
				URI:      itemsResourceURI,
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		},
	}, nil
}
