package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

func idProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Diagram id returned by voronoi_generate",
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Generation
		{
			Name:        "voronoi_generate",
			Description: "Generate a discrete Voronoi diagram on a square grid. Returns a diagram id, the seed used and a status summary. Optionally writes the rendered image to disk.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"resolution": map[string]interface{}{
						"type":        "integer",
						"description": "Grid width and height in cells. Default 256",
						"default":     256,
					},
					"sites": map[string]interface{}{
						"type":        "integer",
						"description": "Number of seed sites to sample. Default 4",
						"default":     4,
					},
					"padding": map[string]interface{}{
						"type":        "integer",
						"description": "Margin kept free of sites on every side. Default 16",
						"default":     16,
					},
					"seed": map[string]interface{}{
						"type":        "integer",
						"description": "Random seed for site placement. Omit for a time based seed",
					},
					"sites_at": map[string]interface{}{
						"type": "array",
						"items": map[string]interface{}{
							"type": "object",
							"properties": map[string]interface{}{
								"x": map[string]interface{}{"type": "integer"},
								"y": map[string]interface{}{"type": "integer"},
							},
							"required": []string{"x", "y"},
						},
						"description": "Explicit site positions, used instead of sampling",
					},
					"engine": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"brute", "kdtree"},
						"description": "Assignment engine. Default brute",
						"default":     "brute",
					},
					"palette": map[string]interface{}{
						"type":        "array",
						"items":       map[string]interface{}{"type": "string"},
						"description": "Region colours as hex strings, e.g. [\"#FF0000\", \"#00FF00\"]",
					},
					"output": map[string]interface{}{
						"type":        "string",
						"description": "Optional absolute path for the rendered image (.bmp, .png, .jpg)",
					},
					"scale": map[string]interface{}{
						"type":        "integer",
						"description": "Integer upscale factor for the saved image. Default 1",
						"default":     1,
					},
					"boundaries": map[string]interface{}{
						"type":        "boolean",
						"description": "Outline region boundaries in black in the saved image",
						"default":     false,
					},
					"mark_sites": map[string]interface{}{
						"type":        "boolean",
						"description": "Paint site cells black in the saved image",
						"default":     false,
					},
					"grid": map[string]interface{}{
						"type":        "integer",
						"description": "Draw a labelled coordinate grid every N cells in the saved image. 0 disables it",
						"default":     0,
					},
				},
			},
		},

		// Inspection
		{
			Name:        "voronoi_status",
			Description: "Get the summary of a generated diagram: resolution, padding, sites with their colours, palette size and the degenerate flag.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"id": idProperty(),
				},
				"required": []string{"id"},
			},
		},
		{
			Name:        "voronoi_cell",
			Description: "Get one cell of a generated diagram: its kind, owning site, distance to that site and colour.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"id": idProperty(),
					"x": map[string]interface{}{
						"type":        "integer",
						"description": "X coordinate (0-based, from left)",
					},
					"y": map[string]interface{}{
						"type":        "integer",
						"description": "Y coordinate (0-based, from top)",
					},
				},
				"required": []string{"id", "x", "y"},
			},
		},
		{
			Name:        "voronoi_coverage",
			Description: "Count the cells owned by each site of a generated diagram, with the share of the grid each covers.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"id": idProperty(),
				},
				"required": []string{"id"},
			},
		},

		// Color Operations
		{
			Name:        "voronoi_palette",
			Description: "List palette colours in hex, RGB and HSL. Returns the palette of the given diagram, or the default palette when no id is passed.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"id": map[string]interface{}{
						"type":        "string",
						"description": "Optional diagram id",
					},
				},
			},
		},
		{
			Name:        "voronoi_sample_color",
			Description: "Get the exact color value at a specific pixel of a saved image.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
					"x": map[string]interface{}{
						"type":        "integer",
						"description": "X coordinate (0-based, from left)",
					},
					"y": map[string]interface{}{
						"type":        "integer",
						"description": "Y coordinate (0-based, from top)",
					},
				},
				"required": []string{"path", "x", "y"},
			},
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
