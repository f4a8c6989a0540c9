/*
Package mcp implements the stdio JSON-RPC server that exposes quickfind.

The server speaks the MCP tools protocol (initialize, tools/list,
tools/call) over newline-delimited JSON and exposes 5 tools:
  - search: Rank catalog items against a query
  - did_you_mean: Spelling corrections from the catalog vocabulary
  - record_interaction: Record that a result was picked for a query
  - session_suggestions: Recent queries and categories of this session
  - explain: Explain why an item matches a query
*/
package mcp

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"

	"github.com/khanglvm/quickfind/internal/catalog"
	"github.com/khanglvm/quickfind/internal/learning"
	"github.com/khanglvm/quickfind/internal/search"
	"github.com/khanglvm/quickfind/internal/storage"
	"github.com/khanglvm/quickfind/internal/version"
)

// maxLineSize bounds a single JSON-RPC request line.
const maxLineSize = 1 << 20

// explainScanLimit is the result window searched when explaining an item.
const explainScanLimit = 1000

// Server serves one catalog to one client session.
type Server struct {
	engine  *search.Engine
	items   []catalog.Item
	byID    map[string]int
	opts    search.Options
	session *learning.Session
	tracker *learning.Tracker
	store   storage.Storage

	ctx    context.Context
	cancel context.CancelFunc

	closeOnce sync.Once
	writeMu   sync.Mutex
}

// ServerOption configures optional server collaborators.
type ServerOption func(*Server)

// WithSession uses session instead of a fresh one.
func WithSession(session *learning.Session) ServerOption {
	return func(s *Server) {
		if session != nil {
			s.session = session
		}
	}
}

// WithTracker persists recorded interactions through tracker.
func WithTracker(tracker *learning.Tracker) ServerOption {
	return func(s *Server) { s.tracker = tracker }
}

// WithStorage logs every search to store.
func WithStorage(store storage.Storage) ServerOption {
	return func(s *Server) { s.store = store }
}

// NewServer creates a server over items.
func NewServer(engine *search.Engine, items []catalog.Item, opts search.Options, options ...ServerOption) *Server {
	ctx, cancel := context.WithCancel(context.Background())

	s := &Server{
		engine:  engine,
		items:   items,
		byID:    make(map[string]int, len(items)),
		opts:    opts,
		session: learning.NewSession(),
		ctx:     ctx,
		cancel:  cancel,
	}
	for i := range items {
		s.byID[items[i].ID] = i
	}
	for _, o := range options {
		o(s)
	}
	return s
}

// Context returns the server lifetime context. It is cancelled by Close.
func (s *Server) Context() context.Context {
	return s.ctx
}

// Session returns the interaction session served by s.
func (s *Server) Session() *learning.Session {
	return s.session
}

// Run serves requests from stdin to stdout until stdin is closed.
func (s *Server) Run() error {
	return s.Serve(os.Stdin, os.Stdout)
}

// Serve reads one request per line from r and writes responses to w.
// Notifications (requests without an id) get no response.
func (s *Server) Serve(r io.Reader, w io.Writer) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	for scanner.Scan() {
		if s.ctx.Err() != nil {
			return nil
		}

		line := scanner.Bytes()
		if len(strings.TrimSpace(string(line))) == 0 {
			continue
		}

		response, err := s.handleRequest(line)
		if err != nil {
			s.sendError(w, err)
			continue
		}

		if response != nil {
			s.sendResponse(w, response)
		}
	}

	return scanner.Err()
}

// Close cancels in-flight searches. The tracker and storage belong to the
// caller and stay open.
func (s *Server) Close() error {
	s.closeOnce.Do(s.cancel)
	return nil
}

// MCPRequest represents an incoming MCP JSON-RPC request.
type MCPRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      interface{}     `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// MCPResponse represents an outgoing MCP JSON-RPC response.
type MCPResponse struct {
	JSONRPC string      `json:"jsonrpc"`
	ID      interface{} `json:"id"`
	Result  interface{} `json:"result,omitempty"`
	Error   *MCPError   `json:"error,omitempty"`
}

// MCPError represents an MCP error.
type MCPError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// JSON-RPC error codes.
const (
	codeParseError     = -32700
	codeMethodNotFound = -32601
	codeInvalidParams  = -32602
	codeToolError      = -32000
)

// handleRequest processes an incoming MCP request.
func (s *Server) handleRequest(data []byte) (*MCPResponse, error) {
	var req MCPRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("invalid JSON-RPC request: %w", err)
	}

	if req.ID == nil && strings.HasPrefix(req.Method, "notifications/") {
		return nil, nil
	}

	switch req.Method {
	case "initialize":
		return s.handleInitialize(&req)
	case "tools/list":
		return s.handleToolsList(&req)
	case "tools/call":
		return s.handleToolsCall(&req)
	case "ping":
		return &MCPResponse{JSONRPC: "2.0", ID: req.ID, Result: map[string]interface{}{}}, nil
	default:
		return &MCPResponse{
			JSONRPC: "2.0",
			ID:      req.ID,
			Error:   &MCPError{Code: codeMethodNotFound, Message: "Method not found"},
		}, nil
	}
}

// handleInitialize handles the MCP initialize request.
func (s *Server) handleInitialize(req *MCPRequest) (*MCPResponse, error) {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"protocolVersion": "2024-11-05",
			"capabilities": map[string]interface{}{
				"tools": map[string]interface{}{},
			},
			"serverInfo": map[string]interface{}{
				"name":    "quickfind",
				"version": version.Version,
			},
		},
	}, nil
}

// handleToolsList returns the tool definitions.
func (s *Server) handleToolsList(req *MCPRequest) (*MCPResponse, error) {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": ToolDefinitions(len(s.items)),
		},
	}, nil
}

// toolArgs holds the union of every tool's arguments.
type toolArgs struct {
	Query     string   `json:"query"`
	ItemID    string   `json:"itemId"`
	Limit     int      `json:"limit"`
	MinScore  *float64 `json:"minScore"`
	FullScan  bool     `json:"fullScan"`
	Threshold float64  `json:"threshold"`
}

// handleToolsCall handles tool execution requests.
func (s *Server) handleToolsCall(req *MCPRequest) (*MCPResponse, error) {
	var params struct {
		Name      string          `json:"name"`
		Arguments json.RawMessage `json:"arguments"`
	}

	if err := json.Unmarshal(req.Params, &params); err != nil {
		return &MCPResponse{
			JSONRPC: "2.0",
			ID:      req.ID,
			Error:   &MCPError{Code: codeInvalidParams, Message: fmt.Sprintf("invalid params: %v", err)},
		}, nil
	}

	var args toolArgs
	if len(params.Arguments) > 0 {
		if err := json.Unmarshal(params.Arguments, &args); err != nil {
			return &MCPResponse{
				JSONRPC: "2.0",
				ID:      req.ID,
				Error:   &MCPError{Code: codeInvalidParams, Message: fmt.Sprintf("invalid arguments: %v", err)},
			}, nil
		}
	}

	var result string
	var err error

	switch params.Name {
	case "search":
		result, err = s.execSearch(args)
	case "did_you_mean":
		result, err = s.execDidYouMean(args)
	case "record_interaction":
		result, err = s.execRecordInteraction(args)
	case "session_suggestions":
		result, err = s.execSessionSuggestions()
	case "explain":
		result, err = s.execExplain(args)
	default:
		return &MCPResponse{
			JSONRPC: "2.0",
			ID:      req.ID,
			Error:   &MCPError{Code: codeInvalidParams, Message: fmt.Sprintf("Unknown tool: %s", params.Name)},
		}, nil
	}

	if err != nil {
		return &MCPResponse{
			JSONRPC: "2.0",
			ID:      req.ID,
			Error:   &MCPError{Code: codeToolError, Message: err.Error()},
		}, nil
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": result,
				},
			},
		},
	}, nil
}

// execSearch ranks the catalog and logs the search.
func (s *Server) execSearch(args toolArgs) (string, error) {
	if strings.TrimSpace(args.Query) == "" {
		return "", fmt.Errorf("query is required")
	}

	opts := s.opts
	if args.Limit > 0 {
		opts.MaxResults = args.Limit
	}
	if args.MinScore != nil {
		opts.MinScore = *args.MinScore
	}
	if args.FullScan {
		opts.FullScan = true
	}

	results, err := s.engine.Search(s.ctx, args.Query, s.items, opts, s.session)
	if err != nil {
		return "", fmt.Errorf("search failed: %w", err)
	}
	s.recordSearch(args.Query, len(results))

	if len(results) == 0 {
		return fmt.Sprintf("No results for '%s'.", args.Query), nil
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Results for '%s' (%d):\n\n", args.Query, len(results)))
	for i, r := range results {
		sb.WriteString(fmt.Sprintf("%d. %s [id: %s", i+1, r.Item.Title, r.Item.ID))
		if r.Item.Category != "" {
			sb.WriteString(", category: " + r.Item.Category)
		}
		sb.WriteString(fmt.Sprintf("] score=%.2f type=%s\n", r.Score, r.Type))
		sb.WriteString("   " + search.Explain(r) + "\n")
	}
	sb.WriteString("\nCall record_interaction(query, itemId) when the user picks a result.")
	return sb.String(), nil
}

// execDidYouMean returns spelling corrections.
func (s *Server) execDidYouMean(args toolArgs) (string, error) {
	if strings.TrimSpace(args.Query) == "" {
		return "", fmt.Errorf("query is required")
	}

	suggestions := s.engine.DidYouMean(args.Query, s.items, args.Threshold)
	if len(suggestions) == 0 {
		return fmt.Sprintf("No suggestions for '%s'.", args.Query), nil
	}
	return "Did you mean: " + strings.Join(suggestions, ", "), nil
}

// execRecordInteraction feeds the session and the persistent history.
func (s *Server) execRecordInteraction(args toolArgs) (string, error) {
	if strings.TrimSpace(args.Query) == "" {
		return "", fmt.Errorf("query is required")
	}
	item, err := s.lookup(args.ItemID)
	if err != nil {
		return "", err
	}

	if s.tracker != nil {
		s.tracker.Record(s.session, args.Query, item)
	} else {
		s.session.RecordInteraction(args.Query, item)
	}
	return fmt.Sprintf("Recorded '%s' for query '%s'.", item.Title, args.Query), nil
}

// execSessionSuggestions lists recent queries and categories.
func (s *Server) execSessionSuggestions() (string, error) {
	suggestions := s.session.Suggestions()
	if len(suggestions) == 0 {
		return "No session activity yet.", nil
	}

	var sb strings.Builder
	sb.WriteString("Suggestions from this session:\n")
	for _, sug := range suggestions {
		sb.WriteString("  • " + sug + "\n")
	}
	return sb.String(), nil
}

// execExplain reports why an item ranks for a query.
func (s *Server) execExplain(args toolArgs) (string, error) {
	if strings.TrimSpace(args.Query) == "" {
		return "", fmt.Errorf("query is required")
	}
	item, err := s.lookup(args.ItemID)
	if err != nil {
		return "", err
	}

	opts := s.opts
	opts.FullScan = true
	opts.MaxResults = explainScanLimit
	opts.MinScore = 0

	results, err := s.engine.Search(s.ctx, args.Query, s.items, opts, s.session)
	if err != nil {
		return "", fmt.Errorf("search failed: %w", err)
	}

	for i, r := range results {
		if r.Item.ID == item.ID {
			return fmt.Sprintf("%s (rank %d of %d): %s", item.Title, i+1, len(results), search.Explain(r)), nil
		}
	}
	return fmt.Sprintf("%s does not match '%s'.", item.Title, args.Query), nil
}

func (s *Server) lookup(id string) (*catalog.Item, error) {
	if id == "" {
		return nil, fmt.Errorf("itemId is required")
	}
	idx, ok := s.byID[id]
	if !ok {
		return nil, fmt.Errorf("item '%s' not found", id)
	}
	return &s.items[idx], nil
}

func (s *Server) recordSearch(query string, count int) {
	if s.store == nil {
		return
	}
	if err := s.store.RecordSearch(storage.NewSearchRecord(query, count)); err != nil {
		log.Printf("Warning: failed to record search: %v", err)
	}
}

// sendResponse writes a JSON-RPC response line.
func (s *Server) sendResponse(w io.Writer, resp *MCPResponse) {
	data, err := json.Marshal(resp)
	if err != nil {
		log.Printf("Warning: failed to encode response: %v", err)
		return
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	fmt.Fprintln(w, string(data))
}

// sendError writes a parse error response.
func (s *Server) sendError(w io.Writer, err error) {
	resp := &MCPResponse{
		JSONRPC: "2.0",
		ID:      nil,
		Error:   &MCPError{Code: codeParseError, Message: err.Error()},
	}
	s.sendResponse(w, resp)
}
