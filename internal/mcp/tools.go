// ABOUTME: MCP tool definitions and handlers
// ABOUTME: Exposes GPX analysis, trace comparison, and the trace library to AI agents

package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/harper/trailbook/internal/analytics"
	"github.com/harper/trailbook/internal/gpx"
	"github.com/harper/trailbook/internal/models"
	"github.com/harper/trailbook/internal/storage"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerTools() {
	s.registerAnalyzeGPXTool()
	s.registerImportGPXTool()
	s.registerGetTraceTool()
	s.registerCompareTracesTool()
	s.registerListTracesTool()
}

// PointOutput is a coordinate in tool output.
type PointOutput struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

func pointOutput(p models.GeoPoint) PointOutput {
	return PointOutput{Lat: p.Lat, Lon: p.Lon}
}

// TraceStatsOutput defines output for tools that describe a single trace.
type TraceStatsOutput struct {
	Name            string      `json:"name,omitempty"`
	Kind            string      `json:"kind,omitempty"`
	Points          int         `json:"points"`
	DistanceMeters  int64       `json:"distance_meters"`
	DurationSeconds *int64      `json:"duration_seconds,omitempty"`
	ElevationGain   int64       `json:"elevation_gain_meters"`
	Start           PointOutput `json:"start"`
	End             PointOutput `json:"end"`
	Center          PointOutput `json:"center"`
	PaceMax         *float64    `json:"pace_max_mps,omitempty"`
	PaceMin         *float64    `json:"pace_min_mps,omitempty"`
	PaceAverage     *float64    `json:"pace_average_mps,omitempty"`
	DirectionChange bool        `json:"direction_change"`
}

func statsOutput(data *models.GpxData) TraceStatsOutput {
	report := analytics.Analyze(data)
	return TraceStatsOutput{
		Points:          len(data.Path),
		DistanceMeters:  data.Distance,
		DurationSeconds: data.Duration,
		ElevationGain:   data.ElevationGain,
		Start:           pointOutput(data.StartPoint),
		End:             pointOutput(data.EndPoint),
		Center:          pointOutput(data.Center),
		PaceMax:         report.PaceMax,
		PaceMin:         report.PaceMin,
		PaceAverage:     report.PaceAverage,
		DirectionChange: report.DirectionChange,
	}
}

func textResult(output any) *mcp.CallToolResult {
	jsonBytes, _ := json.MarshalIndent(output, "", "  ") //nolint:errchkjson // output is always serializable
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(jsonBytes)}},
	}
}

// AnalyzeGPXInput defines input for analyze_gpx tool.
type AnalyzeGPXInput struct {
	GPX string `json:"gpx"`
}

func (s *Server) registerAnalyzeGPXTool() {
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "analyze_gpx",
		Description: "Parse GPX document text and return distance, duration, elevation gain, pace, and whether the route contains sharp turns. Nothing is stored.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"gpx": map[string]interface{}{
					"type":        "string",
					"description": "Full GPX 1.0 or 1.1 XML document",
				},
			},
			"required": []string{"gpx"},
		},
	}, s.handleAnalyzeGPX)
}

func (s *Server) handleAnalyzeGPX(_ context.Context, req *mcp.CallToolRequest, input AnalyzeGPXInput) (*mcp.CallToolResult, TraceStatsOutput, error) {
	data, err := gpx.Parse(input.GPX)
	if err != nil {
		return nil, TraceStatsOutput{}, fmt.Errorf("failed to parse GPX: %w", err)
	}
	output := statsOutput(data)
	return textResult(output), output, nil
}

// ImportGPXInput defines input for import_gpx tool.
type ImportGPXInput struct {
	Name string `json:"name"`
	Kind string `json:"kind"`
	GPX  string `json:"gpx"`
}

func (s *Server) registerImportGPXTool() {
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "import_gpx",
		Description: "Parse GPX document text and store it in the trace library under a unique name.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"name": map[string]interface{}{
					"type":        "string",
					"description": "Unique trace name (e.g., 'forest-dog-0412')",
				},
				"kind": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"dog", "runner", "user"},
					"description": "Whose movement the trace records",
				},
				"gpx": map[string]interface{}{
					"type":        "string",
					"description": "Full GPX 1.0 or 1.1 XML document",
				},
			},
			"required": []string{"name", "kind", "gpx"},
		},
	}, s.handleImportGPX)
}

func (s *Server) handleImportGPX(_ context.Context, req *mcp.CallToolRequest, input ImportGPXInput) (*mcp.CallToolResult, TraceStatsOutput, error) {
	name := strings.TrimSpace(input.Name)
	if err := models.ValidateName(name); err != nil {
		return nil, TraceStatsOutput{}, err
	}
	kind, err := models.ParseTraceKind(input.Kind)
	if err != nil {
		return nil, TraceStatsOutput{}, err
	}
	data, err := gpx.Parse(input.GPX)
	if err != nil {
		return nil, TraceStatsOutput{}, fmt.Errorf("failed to parse GPX: %w", err)
	}

	trace := models.NewTrace(name, kind, data)
	if err := s.repo.CreateTrace(trace); err != nil {
		return nil, TraceStatsOutput{}, fmt.Errorf("failed to store trace: %w", err)
	}

	output := statsOutput(data)
	output.Name = trace.Name
	output.Kind = string(trace.Kind)
	return textResult(output), output, nil
}

// GetTraceInput defines input for get_trace tool.
type GetTraceInput struct {
	Name string `json:"name"`
}

func (s *Server) registerGetTraceTool() {
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "get_trace",
		Description: "Get statistics for a stored trace by name.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"name": map[string]interface{}{
					"type":        "string",
					"description": "Name of the stored trace",
				},
			},
			"required": []string{"name"},
		},
	}, s.handleGetTrace)
}

func (s *Server) lookup(name string) (*models.Trace, error) {
	trace, err := s.repo.GetTraceByName(name)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("trace '%s' not found", name)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load trace '%s': %w", name, err)
	}
	return trace, nil
}

func (s *Server) handleGetTrace(_ context.Context, req *mcp.CallToolRequest, input GetTraceInput) (*mcp.CallToolResult, TraceStatsOutput, error) {
	trace, err := s.lookup(input.Name)
	if err != nil {
		return nil, TraceStatsOutput{}, err
	}
	output := statsOutput(trace.Data)
	output.Name = trace.Name
	output.Kind = string(trace.Kind)
	return textResult(output), output, nil
}

// CompareTracesInput defines input for compare_traces tool.
type CompareTracesInput struct {
	Trace     string `json:"trace"`
	Reference string `json:"reference"`
}

// ComparisonOutput defines output for compare_traces tool.
type ComparisonOutput struct {
	Trace                   string   `json:"trace"`
	Reference               string   `json:"reference"`
	DeviationMeters         float64  `json:"deviation_meters"`
	StartOffsetSeconds      *float64 `json:"start_offset_seconds,omitempty"`
	TraceDistanceMeters     int64    `json:"trace_distance_meters"`
	ReferenceDistanceMeters int64    `json:"reference_distance_meters"`
}

func (s *Server) registerCompareTracesTool() {
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "compare_traces",
		Description: "Measure how far a stored trace (usually the dog's) strays from a stored reference (usually the runner's laid trail). Deviation is 0 when the trace stays close.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"trace": map[string]interface{}{
					"type":        "string",
					"description": "Name of the trace to measure",
				},
				"reference": map[string]interface{}{
					"type":        "string",
					"description": "Name of the reference trace",
				},
			},
			"required": []string{"trace", "reference"},
		},
	}, s.handleCompareTraces)
}

func (s *Server) handleCompareTraces(_ context.Context, req *mcp.CallToolRequest, input CompareTracesInput) (*mcp.CallToolResult, ComparisonOutput, error) {
	trace, err := s.lookup(input.Trace)
	if err != nil {
		return nil, ComparisonOutput{}, err
	}
	reference, err := s.lookup(input.Reference)
	if err != nil {
		return nil, ComparisonOutput{}, err
	}

	cmp := analytics.Compare(trace.Data, reference.Data)
	output := ComparisonOutput{
		Trace:                   trace.Name,
		Reference:               reference.Name,
		DeviationMeters:         cmp.Deviation,
		StartOffsetSeconds:      cmp.StartOffsetSecs,
		TraceDistanceMeters:     cmp.TraceDistance,
		ReferenceDistanceMeters: cmp.ReferenceDistance,
	}
	return textResult(output), output, nil
}

// TraceOutput defines a trace in list output.
type TraceOutput struct {
	Name            string    `json:"name"`
	Kind            string    `json:"kind"`
	Points          int       `json:"points"`
	DistanceMeters  int64     `json:"distance_meters"`
	DurationSeconds *int64    `json:"duration_seconds,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// ListTracesOutput defines output for list_traces tool.
type ListTracesOutput struct {
	Traces []TraceOutput `json:"traces"`
	Count  int           `json:"count"`
}

// ListTracesInput optionally filters by kind.
type ListTracesInput struct {
	Kind string `json:"kind,omitempty"`
}

func (s *Server) registerListTracesTool() {
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "list_traces",
		Description: "List stored traces with distance and duration.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"kind": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"dog", "runner", "user"},
					"description": "Only list traces of this kind",
				},
			},
		},
	}, s.handleListTraces)
}

func (s *Server) listTraces(kind string) (ListTracesOutput, error) {
	var filter models.TraceKind
	if kind != "" {
		k, err := models.ParseTraceKind(kind)
		if err != nil {
			return ListTracesOutput{}, err
		}
		filter = k
	}

	traces, err := s.repo.ListTraces()
	if err != nil {
		return ListTracesOutput{}, fmt.Errorf("failed to list traces: %w", err)
	}

	output := ListTracesOutput{Traces: []TraceOutput{}}
	for _, trace := range traces {
		if filter != "" && trace.Kind != filter {
			continue
		}
		out := TraceOutput{
			Name:      trace.Name,
			Kind:      string(trace.Kind),
			CreatedAt: trace.CreatedAt,
		}
		if trace.Data != nil {
			out.Points = len(trace.Data.Path)
			out.DistanceMeters = trace.Data.Distance
			out.DurationSeconds = trace.Data.Duration
		}
		output.Traces = append(output.Traces, out)
	}
	output.Count = len(output.Traces)
	return output, nil
}

func (s *Server) handleListTraces(_ context.Context, req *mcp.CallToolRequest, input ListTracesInput) (*mcp.CallToolResult, ListTracesOutput, error) {
	output, err := s.listTraces(input.Kind)
	if err != nil {
		return nil, ListTracesOutput{}, err
	}
	return textResult(output), output, nil
}
