package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

func pathProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Absolute path to a 24-bit BMP document",
	}
}

func outputProperty(what string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Path of the " + what + " to write; an existing file is replaced atomically",
	}
}

func regionProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "object",
		"description": "Optional region (x2/y2 exclusive). Omitted, zero or out-of-range x2/y2 extend to the image edge",
		"properties": map[string]interface{}{
			"x1": map[string]interface{}{"type": "integer"},
			"y1": map[string]interface{}{"type": "integer"},
			"x2": map[string]interface{}{"type": "integer"},
			"y2": map[string]interface{}{"type": "integer"},
		},
	}
}

func shadeProperty(description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "integer",
		"description": description,
		"minimum":     0,
		"maximum":     255,
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Document Information
		{
			Name:        "document_load",
			Description: "Load a BMP document and return its dimensions, format, file size and the toner it would use printed in greyscale.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "document_histogram",
			Description: "Count the pixels of each grey shade (0 black to 255 white) in a document or region, and report the background peak and threshold the cleaner would use.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path":   pathProperty(),
					"region": regionProperty(),
					"group_every": map[string]interface{}{
						"type":        "integer",
						"description": "Sum counts over groups of this many shades. Default 1",
						"default":     1,
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "document_row_shades",
			Description: "Return the ink value (255 minus luminance) of each pixel in one row of the greyscale document.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"row": map[string]interface{}{
						"type":        "integer",
						"description": "Row (y coordinate, 0 is the top)",
					},
					"min_col": map[string]interface{}{
						"type":        "integer",
						"description": "First column. Default 0",
						"default":     0,
					},
					"max_col": map[string]interface{}{
						"type":        "integer",
						"description": "Column after the last one. 0 means the image width",
						"default":     0,
					},
				},
				"required": []string{"path", "row"},
			},
		},

		// Cleaning Operations
		{
			Name:        "document_remove_background",
			Description: "Whiten the paper background of a scanned document using histogram thresholding and write the greyscale result as BMP. Zoned modes adapt to uneven lighting.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path":   pathProperty(),
					"output": outputProperty("greyscale BMP"),
					"mode": map[string]interface{}{
						"type":        "string",
						"description": "global: one threshold for the region; zones: square zones of zone_size pixels; zone-count: about zones square zones",
						"enum":        []string{"global", "zones", "zone-count"},
						"default":     "zones",
					},
					"zone_size": map[string]interface{}{
						"type":        "integer",
						"description": "Zone side in pixels for mode zones. Default 100",
						"default":     100,
					},
					"zones": map[string]interface{}{
						"type":        "integer",
						"description": "Number of zones for mode zone-count. Default 10000",
						"default":     10000,
					},
					"fraction": map[string]interface{}{
						"type":        "number",
						"description": "Threshold walks toward black while a shade holds more than this fraction of the peak count. Default 0.15",
						"default":     0.15,
					},
					"peak_low": map[string]interface{}{
						"type":        "integer",
						"description": "Lowest shade searched for the background peak. Default 150",
						"default":     150,
					},
					"peak_high": map[string]interface{}{
						"type":        "integer",
						"description": "Shade after the highest one searched for the peak (exclusive). Default 250",
						"default":     250,
					},
					"region": regionProperty(),
				},
				"required": []string{"path", "output"},
			},
		},
		{
			Name:        "document_cut_out_greys",
			Description: "Whiten every greyscale pixel whose shade lies in [min, max] and write the greyscale result as BMP.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path":   pathProperty(),
					"output": outputProperty("greyscale BMP"),
					"min":    shadeProperty("Darkest shade to remove"),
					"max":    shadeProperty("Lightest shade to remove"),
					"region": regionProperty(),
				},
				"required": []string{"path", "output", "min", "max"},
			},
		},
		{
			Name:        "document_cut_out_colour",
			Description: "Replace every pixel of exactly one colour with white and write the colour result as BMP.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path":   pathProperty(),
					"output": outputProperty("colour BMP"),
					"r":      shadeProperty("Red component"),
					"g":      shadeProperty("Green component"),
					"b":      shadeProperty("Blue component"),
					"region": regionProperty(),
				},
				"required": []string{"path", "output", "r", "g", "b"},
			},
		},
		{
			Name:        "document_crop",
			Description: "Crop a rectangular region of the colour document and write it as BMP.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path":   pathProperty(),
					"output": outputProperty("cropped BMP"),
					"x1": map[string]interface{}{
						"type":        "integer",
						"description": "Left edge X coordinate (0-based)",
					},
					"y1": map[string]interface{}{
						"type":        "integer",
						"description": "Top edge Y coordinate (0-based)",
					},
					"x2": map[string]interface{}{
						"type":        "integer",
						"description": "Right edge X coordinate (exclusive)",
					},
					"y2": map[string]interface{}{
						"type":        "integer",
						"description": "Bottom edge Y coordinate (exclusive)",
					},
				},
				"required": []string{"path", "output", "x1", "y1", "x2", "y2"},
			},
		},

		// Reports
		{
			Name:        "document_histogram_csv",
			Description: "Write the grey shade histogram of a document as CSV, optionally with a second column for the document after zoned background removal.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path":   pathProperty(),
					"output": outputProperty("CSV file"),
					"group_every": map[string]interface{}{
						"type":        "integer",
						"description": "Shades per CSV row. Default 1",
						"default":     1,
					},
					"compare_background": map[string]interface{}{
						"type":        "boolean",
						"description": "Add a Count column for the background-removed document",
						"default":     false,
					},
				},
				"required": []string{"path", "output"},
			},
		},
		{
			Name:        "document_preview",
			Description: "Return a downscaled greyscale preview of the document as base64-encoded PNG, optionally after zoned background removal.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"max_side": map[string]interface{}{
						"type":        "integer",
						"description": "Longest side of the preview in pixels. Default 1024",
						"default":     1024,
					},
					"remove_background": map[string]interface{}{
						"type":        "boolean",
						"description": "Preview the document after background removal",
						"default":     false,
					},
				},
				"required": []string{"path"},
			},
		},
	}
}

// handleToolsList responds with every tool definition.
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return reply(req.ID, map[string]interface{}{
		"tools": GetToolDefinitions(),
	})
}
