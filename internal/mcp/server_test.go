package mcp

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/khanglvm/quickfind/internal/catalog"
	"github.com/khanglvm/quickfind/internal/learning"
	"github.com/khanglvm/quickfind/internal/lexicon"
	"github.com/khanglvm/quickfind/internal/search"
	"github.com/khanglvm/quickfind/internal/storage"
)

func testItems() []catalog.Item {
	return []catalog.Item{
		{ID: "bubble", Title: "Bubble Sort", Category: "Sorting", Tags: []string{"comparison", "stable"},
			Summary: "Repeatedly swaps adjacent elements that are out of order."},
		{ID: "merge", Title: "Merge Sort", Category: "Sorting", Tags: []string{"divide and conquer", "stable"},
			Summary: "Splits the array in halves and merges sorted halves."},
		{ID: "binary", Title: "Binary Search", Category: "Searching", Tags: []string{"logarithmic"},
			Summary: "Halves a sorted range until the key is found."},
		{ID: "dijkstra", Title: "Dijkstra's Algorithm", Category: "Graphs", Tags: []string{"weighted"},
			Summary: "Computes shortest paths from a source vertex."},
		{ID: "stack", Title: "Stack", Category: "Data Structures", Tags: []string{"lifo"},
			Summary: "Push and pop at one end."},
	}
}

func newTestServer(t *testing.T, options ...ServerOption) *Server {
	t.Helper()

	engine, err := search.NewEngine(lexicon.Default())
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}
	s := NewServer(engine, testItems(), search.DefaultOptions(), options...)
	t.Cleanup(func() { s.Close() })
	return s
}

// callTool runs a tools/call request and returns the response.
func callTool(t *testing.T, s *Server, name string, args map[string]interface{}) *MCPResponse {
	t.Helper()

	params, err := json.Marshal(map[string]interface{}{"name": name, "arguments": args})
	if err != nil {
		t.Fatal(err)
	}
	resp, err := s.handleToolsCall(&MCPRequest{JSONRPC: "2.0", ID: 1, Method: "tools/call", Params: params})
	if err != nil {
		t.Fatalf("handleToolsCall failed: %v", err)
	}
	return resp
}

// toolText extracts the text content of a successful tool response.
func toolText(t *testing.T, resp *MCPResponse) string {
	t.Helper()

	if resp.Error != nil {
		t.Fatalf("unexpected error: %+v", resp.Error)
	}
	result, ok := resp.Result.(map[string]interface{})
	if !ok {
		t.Fatal("result is not a map")
	}
	content, ok := result["content"].([]map[string]interface{})
	if !ok || len(content) != 1 {
		t.Fatalf("unexpected content: %#v", result["content"])
	}
	text, _ := content[0]["text"].(string)
	return text
}

func TestHandleInitialize(t *testing.T) {
	s := newTestServer(t)

	resp, err := s.handleInitialize(&MCPRequest{JSONRPC: "2.0", ID: 7, Method: "initialize"})
	if err != nil {
		t.Fatal(err)
	}
	if resp.JSONRPC != "2.0" || resp.ID != 7 {
		t.Errorf("bad envelope: %+v", resp)
	}

	result := resp.Result.(map[string]interface{})
	info := result["serverInfo"].(map[string]interface{})
	if info["name"] != "quickfind" {
		t.Errorf("serverInfo.name = %v", info["name"])
	}
}

func TestHandleToolsList(t *testing.T) {
	s := newTestServer(t)

	resp, err := s.handleToolsList(&MCPRequest{JSONRPC: "2.0", ID: 1, Method: "tools/list"})
	if err != nil {
		t.Fatal(err)
	}

	tools := resp.Result.(map[string]interface{})["tools"].([]map[string]interface{})
	names := make(map[string]bool)
	for _, tool := range tools {
		names[tool["name"].(string)] = true
		if _, ok := tool["inputSchema"]; !ok {
			t.Errorf("tool %v has no inputSchema", tool["name"])
		}
	}

	for _, want := range []string{"search", "did_you_mean", "record_interaction", "session_suggestions", "explain"} {
		if !names[want] {
			t.Errorf("missing tool %s", want)
		}
	}
	if len(tools) != 5 {
		t.Errorf("expected 5 tools, got %d", len(tools))
	}
}

func TestSearchTool(t *testing.T) {
	s := newTestServer(t)

	text := toolText(t, callTool(t, s, "search", map[string]interface{}{"query": "bin"}))
	if !strings.Contains(text, "1. Binary Search [id: binary") {
		t.Errorf("expected Binary Search first, got:\n%s", text)
	}
}

func TestSearchToolLimit(t *testing.T) {
	s := newTestServer(t)

	text := toolText(t, callTool(t, s, "search", map[string]interface{}{"query": "sort", "limit": 1}))
	if !strings.Contains(text, "(1):") {
		t.Errorf("expected a single result, got:\n%s", text)
	}
	if strings.Contains(text, "\n2. ") {
		t.Errorf("limit not applied:\n%s", text)
	}
}

func TestSearchToolRequiresQuery(t *testing.T) {
	s := newTestServer(t)

	resp := callTool(t, s, "search", map[string]interface{}{"query": "  "})
	if resp.Error == nil || resp.Error.Code != codeToolError {
		t.Errorf("expected tool error, got %+v", resp.Error)
	}
}

func TestDidYouMeanTool(t *testing.T) {
	s := newTestServer(t)

	text := toolText(t, callTool(t, s, "did_you_mean", map[string]interface{}{"query": "bubbel"}))
	if !strings.Contains(text, "bubble") {
		t.Errorf("expected bubble suggestion, got %q", text)
	}
}

func TestRecordInteractionAndSuggestions(t *testing.T) {
	s := newTestServer(t)

	text := toolText(t, callTool(t, s, "session_suggestions", nil))
	if text != "No session activity yet." {
		t.Errorf("unexpected empty-session text %q", text)
	}

	text = toolText(t, callTool(t, s, "record_interaction", map[string]interface{}{
		"query": "Bin", "itemId": "binary",
	}))
	if !strings.Contains(text, "Binary Search") {
		t.Errorf("unexpected record text %q", text)
	}
	if s.Session().ItemCount("binary") != 1 {
		t.Error("interaction not recorded in session")
	}

	text = toolText(t, callTool(t, s, "session_suggestions", nil))
	for _, want := range []string{"bin", "searching"} {
		if !strings.Contains(text, "• "+want) {
			t.Errorf("suggestions missing %q:\n%s", want, text)
		}
	}
}

func TestRecordInteractionUnknownItem(t *testing.T) {
	s := newTestServer(t)

	resp := callTool(t, s, "record_interaction", map[string]interface{}{"query": "x", "itemId": "nope"})
	if resp.Error == nil || !strings.Contains(resp.Error.Message, "not found") {
		t.Errorf("expected not found error, got %+v", resp.Error)
	}
}

func TestRecordInteractionPersists(t *testing.T) {
	store := storage.NewStorage(t.TempDir() + "/history.db")
	tracker := learning.NewTracker(store)
	defer store.Close()

	s := newTestServer(t, WithTracker(tracker), WithStorage(store))
	toolText(t, callTool(t, s, "search", map[string]interface{}{"query": "merge"}))
	toolText(t, callTool(t, s, "record_interaction", map[string]interface{}{
		"query": "merge", "itemId": "merge",
	}))
	tracker.Stop()

	count, err := store.CountInteractions()
	if err != nil {
		t.Fatal(err)
	}
	if count != 1 {
		t.Errorf("expected 1 stored interaction, got %d", count)
	}
}

func TestExplainTool(t *testing.T) {
	s := newTestServer(t)

	text := toolText(t, callTool(t, s, "explain", map[string]interface{}{"query": "bin", "itemId": "binary"}))
	if !strings.HasPrefix(text, "Binary Search (rank ") {
		t.Errorf("unexpected explanation %q", text)
	}
}

func TestUnknownTool(t *testing.T) {
	s := newTestServer(t)

	resp := callTool(t, s, "hub_execute", nil)
	if resp.Error == nil || resp.Error.Code != codeInvalidParams {
		t.Errorf("expected invalid params error, got %+v", resp.Error)
	}
}

func TestServeRoundTrip(t *testing.T) {
	s := newTestServer(t)

	input := strings.Join([]string{
		`{"jsonrpc":"2.0","id":1,"method":"initialize","params":{}}`,
		`{"jsonrpc":"2.0","method":"notifications/initialized"}`,
		``,
		`{"jsonrpc":"2.0","id":2,"method":"tools/call","params":{"name":"search","arguments":{"query":"dijkstra"}}}`,
		`{"jsonrpc":"2.0","id":3,"method":"bogus"}`,
		`not json`,
	}, "\n")

	var out bytes.Buffer
	done := make(chan error, 1)
	go func() { done <- s.Serve(strings.NewReader(input), &out) }()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Serve failed: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return")
	}

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 responses, got %d:\n%s", len(lines), out.String())
	}

	var responses []MCPResponse
	for _, line := range lines {
		var resp MCPResponse
		if err := json.Unmarshal([]byte(line), &resp); err != nil {
			t.Fatalf("invalid response line %q: %v", line, err)
		}
		responses = append(responses, resp)
	}

	if responses[0].Error != nil {
		t.Errorf("initialize failed: %+v", responses[0].Error)
	}
	if responses[1].Error != nil || !strings.Contains(lines[1], "Dijkstra") {
		t.Errorf("search response unexpected: %s", lines[1])
	}
	if responses[2].Error == nil || responses[2].Error.Code != codeMethodNotFound {
		t.Errorf("expected method not found, got %s", lines[2])
	}
	if responses[3].Error == nil || responses[3].Error.Code != codeParseError {
		t.Errorf("expected parse error, got %s", lines[3])
	}
}

func TestServeStopsAfterClose(t *testing.T) {
	s := newTestServer(t)
	s.Close()

	var out bytes.Buffer
	err := s.Serve(strings.NewReader(`{"jsonrpc":"2.0","id":1,"method":"ping"}`+"\n"), &out)
	if err != nil {
		t.Fatal(err)
	}
	if out.Len() != 0 {
		t.Errorf("closed server should not respond, got %q", out.String())
	}
	if s.Context().Err() == nil {
		t.Error("context should be cancelled")
	}
}
