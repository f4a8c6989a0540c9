package mcp

import "fmt"

// ToolDefinitions returns the tool list advertised by tools/list.
func ToolDefinitions(catalogSize int) []map[string]interface{} {
	return []map[string]interface{}{
		{
			"name": "search",
			"description": fmt.Sprintf(`Search the catalog (%d items) with typo-tolerant fuzzy matching.

Understands abbreviations (dfs, bst), synonyms, misspellings that sound alike,
and items related to what the user picked earlier in the session.

Returns: Ranked results with id, score, match type and a short explanation.`, catalogSize),
			"inputSchema": map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"query": map[string]interface{}{
						"type":        "string",
						"description": "Free-text query",
					},
					"limit": map[string]interface{}{
						"type":        "integer",
						"description": "Maximum number of results (default 20)",
					},
					"minScore": map[string]interface{}{
						"type":        "number",
						"description": "Drop results scoring below this value (0-1)",
					},
					"fullScan": map[string]interface{}{
						"type":        "boolean",
						"description": "Score the whole catalog before truncating",
					},
				},
				"required": []string{"query"},
			},
		},
		{
			"name":        "did_you_mean",
			"description": "Suggest spelling corrections for a query using the catalog vocabulary.",
			"inputSchema": map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"query": map[string]interface{}{
						"type":        "string",
						"description": "Possibly misspelled query",
					},
					"threshold": map[string]interface{}{
						"type":        "number",
						"description": "Minimum similarity of a suggestion (default 0.6)",
					},
				},
				"required": []string{"query"},
			},
		},
		{
			"name": "record_interaction",
			"description": `Record that the user picked an item for a query.

WHEN TO USE: After the user chooses a search result. Later searches in this
session boost related items and categories.`,
			"inputSchema": map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"query": map[string]interface{}{
						"type":        "string",
						"description": "The query that produced the result",
					},
					"itemId": map[string]interface{}{
						"type":        "string",
						"description": "ID of the picked item",
					},
				},
				"required": []string{"query", "itemId"},
			},
		},
		{
			"name":        "session_suggestions",
			"description": "List recent queries and frequently picked categories of this session.",
			"inputSchema": map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},
		{
			"name":        "explain",
			"description": "Explain why an item matches a query and where it ranks.",
			"inputSchema": map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"query": map[string]interface{}{
						"type":        "string",
						"description": "Free-text query",
					},
					"itemId": map[string]interface{}{
						"type":        "string",
						"description": "ID of the item to explain",
					},
				},
				"required": []string{"query", "itemId"},
			},
		},
	}
}
