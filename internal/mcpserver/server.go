// Package mcpserver provides an MCP (Model Context Protocol) server
// that exposes the chart engine as tools for LLM integration via stdio transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/starford/bodygraph/internal/apperr"
	"github.com/starford/bodygraph/internal/chartservice"
	"github.com/starford/bodygraph/internal/models"
)

const requestFormatURI = "bodygraph://request-format"

// Server wraps the MCP server with the chart tools.
type Server struct {
	mcp *server.MCPServer
	svc *chartservice.Service
}

// New creates a new MCP server with all tools registered.
func New(svc *chartservice.Service) *Server {
	s := &Server{svc: svc}

	s.mcp = server.NewMCPServer(
		"Bodygraph",
		"1.0.0",
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("compute_chart",
		mcp.WithDescription("Compute a Human Design chart: personality and design activations, "+
			"defined centers and channels, type, authority, profile and incarnation cross. "+
			"Pass latitude and longitude to also get Placidus houses. Read the request format "+
			"first via get_request_format or the "+requestFormatURI+" resource."),
		mcp.WithString("birthDate", mcp.Required(), mcp.Description("Birth date as YYYY-MM-DD")),
		mcp.WithString("birthTime", mcp.Description("Local birth time as HH:MM (24h)")),
		mcp.WithNumber("utcOffset", mcp.Description("Local offset from UTC in hours")),
		mcp.WithNumber("latitude", mcp.Description("Birth latitude, north positive")),
		mcp.WithNumber("longitude", mcp.Description("Birth longitude, east positive")),
	), s.computeChart)

	s.mcp.AddTool(mcp.NewTool("compute_houses",
		mcp.WithDescription("Compute the Ascendant, Midheaven and the twelve Placidus house cusps "+
			"for a moment (jde, or date+time+utcOffset) and a place."),
		mcp.WithNumber("latitude", mcp.Required(), mcp.Description("Latitude, north positive")),
		mcp.WithNumber("longitude", mcp.Required(), mcp.Description("Longitude, east positive")),
		mcp.WithNumber("jde", mcp.Description("Julian Ephemeris Day; overrides date and time")),
		mcp.WithString("date", mcp.Description("Date as YYYY-MM-DD")),
		mcp.WithString("time", mcp.Description("Local time as HH:MM (24h)")),
		mcp.WithNumber("utcOffset", mcp.Description("Local offset from UTC in hours")),
	), s.computeHouses)

	s.mcp.AddTool(mcp.NewTool("describe_gate",
		mcp.WithDescription("Describe one of the 64 gates: its center, wheel position and channel partners."),
		mcp.WithNumber("gate", mcp.Required(), mcp.Description("Gate number 1-64")),
	), s.describeGate)

	s.mcp.AddTool(mcp.NewTool("get_request_format",
		mcp.WithDescription("Returns the birth-data conventions. "+
			"Call this before computing charts to get offsets and locations right."),
	), s.getRequestFormat)

	// Resource: request format contract.
	s.mcp.AddResource(
		mcp.NewResource(requestFormatURI, "Request Format",
			mcp.WithResourceDescription("Birth-data fields, units and rules for the chart tools."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readRequestFormatResource,
	)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

func (s *Server) computeChart(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	date, err := req.RequireString("birthDate")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	chartReq := models.ChartRequest{
		BirthDate: date,
		BirthTime: req.GetString("birthTime", ""),
		UTCOffset: optionalFloat(req, "utcOffset"),
		Latitude:  optionalFloat(req, "latitude"),
		Longitude: optionalFloat(req, "longitude"),
	}
	chart, err := s.svc.Chart(ctx, chartReq)
	if err != nil {
		return toolError("compute_chart", err), nil
	}
	return jsonResult(chart), nil
}

func (s *Server) computeHouses(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	lat, err := req.RequireFloat("latitude")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	lon, err := req.RequireFloat("longitude")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	hc, err := s.svc.Houses(ctx, models.HouseRequest{
		JDE:       optionalFloat(req, "jde"),
		Date:      req.GetString("date", ""),
		Time:      req.GetString("time", ""),
		UTCOffset: optionalFloat(req, "utcOffset"),
		Latitude:  &lat,
		Longitude: &lon,
	})
	if err != nil {
		return toolError("compute_houses", err), nil
	}
	return jsonResult(hc), nil
}

func (s *Server) describeGate(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	gate, err := req.RequireInt("gate")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	info, err := s.svc.Gate(gate)
	if err != nil {
		return toolError("describe_gate", err), nil
	}
	return jsonResult(info), nil
}

func (s *Server) getRequestFormat(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(RequestFormatContract), nil
}

func (s *Server) readRequestFormatResource(_ context.Context, _ mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      requestFormatURI,
			MIMEType: "text/markdown",
			Text:     RequestFormatContract,
		},
	}, nil
}

// optionalFloat returns nil when the argument is absent, so zero stays
// distinguishable from "not given".
func optionalFloat(req mcp.CallToolRequest, key string) *float64 {
	if _, ok := req.GetArguments()[key]; !ok {
		return nil
	}
	v, err := req.RequireFloat(key)
	if err != nil {
		return nil
	}
	return &v
}

func toolError(tool string, err error) *mcp.CallToolResult {
	if errors.Is(err, apperr.ErrInvalidInput) {
		return mcp.NewToolResultError(err.Error())
	}
	slog.Error(tool+" failed", slog.String("error", err.Error()))
	return mcp.NewToolResultError("internal error")
}

func jsonResult(v any) *mcp.CallToolResult {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(err.Error())
	}
	return mcp.NewToolResultText(string(out))
}
