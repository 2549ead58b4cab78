package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/findcare/findcare/internal/availability"
	"github.com/findcare/findcare/internal/booking"
	"github.com/findcare/findcare/internal/location"
	"github.com/findcare/findcare/internal/search"
	"github.com/findcare/findcare/internal/triage"
)

// ServerConfig holds configuration for the MCP server.
type ServerConfig struct {
	Triage       *triage.Service
	Search       *search.Service
	Availability *availability.Service
	Booking      *booking.Service

	// Version reported in initialize responses.
	Version string

	// Logger for server operations.
	Logger zerolog.Logger
}

// Server dispatches JSON-RPC tool calls to the care-navigation
// services in-process. It implements http.Handler for a single POST
// endpoint.
type Server struct {
	triage       *triage.Service
	search       *search.Service
	availability *availability.Service
	booking      *booking.Service
	version      string
	logger       zerolog.Logger
}

// NewServer creates a new MCP server.
func NewServer(cfg ServerConfig) *Server {
	return &Server{
		triage:       cfg.Triage,
		search:       cfg.Search,
		availability: cfg.Availability,
		booking:      cfg.Booking,
		version:      cfg.Version,
		logger:       cfg.Logger,
	}
}

// ServeHTTP handles POST /mcp.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeResponse(w, http.StatusBadRequest, errorResponse(nil, CodeInvalidRequest, "Invalid Request"))
		return
	}

	if req.JSONRPC != "2.0" || req.Method == "" {
		writeResponse(w, http.StatusBadRequest, errorResponse(req.ID, CodeInvalidRequest, "Invalid Request"))
		return
	}

	switch req.Method {
	case "initialize":
		writeResponse(w, http.StatusOK, resultResponse(req.ID, InitializeResult{
			ServerInfo:   ServerInfo{Name: "findcare", Version: s.version},
			Capabilities: map[string]interface{}{"tools": map[string]interface{}{}},
		}))
	case "tools/list":
		writeResponse(w, http.StatusOK, resultResponse(req.ID, ToolsListResult{Tools: tools}))
	case "tools/call":
		s.handleCall(r.Context(), w, req)
	default:
		writeResponse(w, http.StatusBadRequest, errorResponse(req.ID, CodeMethodNotFound, "Method not found"))
	}
}

func (s *Server) handleCall(ctx context.Context, w http.ResponseWriter, req Request) {
	var params CallParams
	if req.Params != nil {
		if err := json.Unmarshal(req.Params, &params); err != nil {
			writeResponse(w, http.StatusBadRequest, errorResponse(req.ID, CodeInvalidParams, "invalid params"))
			return
		}
	}
	if params.Name == "" {
		writeResponse(w, http.StatusBadRequest, errorResponse(req.ID, CodeInvalidParams, "tool name is required"))
		return
	}

	args := params.Arguments
	if args == nil {
		args = json.RawMessage(`{}`)
	}

	out, err := s.callTool(ctx, params.Name, args)
	if err != nil {
		code, msg := classifyError(err)
		s.logger.Debug().Err(err).Str("tool", params.Name).Msg("tool call failed")
		writeResponse(w, http.StatusOK, errorResponse(req.ID, code, msg))
		return
	}

	writeResponse(w, http.StatusOK, resultResponse(req.ID, CallResult{
		Content: []Content{{Type: "json", JSON: out}},
	}))
}

func (s *Server) callTool(ctx context.Context, name string, args json.RawMessage) (interface{}, error) {
	switch name {
	case ToolTriage:
		var in triage.Request
		if err := json.Unmarshal(args, &in); err != nil {
			return nil, errBadArguments
		}
		return s.triage.Triage(in)
	case ToolSearchFacilities:
		var in search.Request
		if err := json.Unmarshal(args, &in); err != nil {
			return nil, errBadArguments
		}
		results, err := s.search.Search(ctx, in)
		if err != nil {
			return nil, err
		}
		if results == nil {
			results = []search.Result{}
		}
		return results, nil
	case ToolGetAvailability:
		var in availability.Request
		if err := json.Unmarshal(args, &in); err != nil {
			return nil, errBadArguments
		}
		return s.availability.GetAvailability(ctx, in)
	case ToolBookAppointment:
		var in booking.Request
		if err := json.Unmarshal(args, &in); err != nil {
			return nil, errBadArguments
		}
		return s.booking.DeepLink(in)
	default:
		return nil, errUnknownTool
	}
}

var (
	errBadArguments = errors.New("invalid tool arguments")
	errUnknownTool  = errors.New("unknown tool")
)

// classifyError maps domain errors onto JSON-RPC error codes. Caller
// mistakes surface as invalid params; everything else is a server
// error with the domain message preserved.
func classifyError(err error) (int, string) {
	var verr *triage.ValidationError
	switch {
	case errors.Is(err, errUnknownTool):
		return CodeMethodNotFound, "unknown tool"
	case errors.Is(err, errBadArguments),
		errors.As(err, &verr),
		errors.Is(err, search.ErrInvalidVenue),
		errors.Is(err, location.ErrLocationRequired),
		errors.Is(err, availability.ErrInvalidDays),
		errors.Is(err, booking.ErrMissingField):
		return CodeInvalidParams, err.Error()
	default:
		return CodeServerError, err.Error()
	}
}

func resultResponse(id json.RawMessage, result interface{}) Response {
	return Response{JSONRPC: "2.0", ID: normalizeID(id), Result: result}
}

func errorResponse(id json.RawMessage, code int, message string) Response {
	return Response{JSONRPC: "2.0", ID: normalizeID(id), Error: &Error{Code: code, Message: message}}
}

// normalizeID keeps the ID field explicit in responses: an absent
// request id serializes as null rather than being dropped.
func normalizeID(id json.RawMessage) json.RawMessage {
	if len(id) == 0 {
		return json.RawMessage("null")
	}
	return id
}

func writeResponse(w http.ResponseWriter, status int, resp Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}
