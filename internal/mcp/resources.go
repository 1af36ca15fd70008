// ABOUTME: MCP resource definitions
// ABOUTME: Provides a read-only view of the trace library for AI agents

package mcp

import (
	"context"
	"encoding/json"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// TracesResourceURI lists every stored trace.
const TracesResourceURI = "trailbook://traces"

func (s *Server) registerResources() {
	s.mcp.AddResource(&mcp.Resource{
		Name:        TracesResourceURI,
		Description: "All stored traces with distance and duration",
		URI:         TracesResourceURI,
		MIMEType:    "application/json",
	}, s.handleTracesResource)
}

func (s *Server) handleTracesResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	output, err := s.listTraces("")
	if err != nil {
		return nil, err
	}

	jsonBytes, _ := json.MarshalIndent(output, "", "  ") //nolint:errchkjson // output is always serializable

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{
			{
				URI:      TracesResourceURI,
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		},
	}, nil
}
