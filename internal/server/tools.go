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
		"description": "Absolute path to the image file",
	}
}

func colorsProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "array",
		"items":       map[string]interface{}{"type": "string"},
		"description": "Palette as #RRGGBB strings",
	}
}

// mappingProperties are the inputs shared by every tool that maps an image
// onto a palette.
func mappingProperties() map[string]interface{} {
	return map[string]interface{}{
		"path":   pathProperty(),
		"colors": colorsProperty(),
		"metric": map[string]interface{}{
			"type":        "string",
			"enum":        []string{"rgb", "hsl"},
			"description": "Color distance used to snap pixels. Default rgb",
			"default":     "rgb",
		},
		"max_size": map[string]interface{}{
			"type":        "integer",
			"description": "Downscale so the longer side is at most this many pixels. 0 keeps the original size",
		},
		"denoise_radius": map[string]interface{}{
			"type":        "number",
			"description": "Median filter radius applied before mapping. 0 disables",
		},
		"blur_sigma": map[string]interface{}{
			"type":        "number",
			"description": "Gaussian blur sigma applied before mapping. 0 disables",
		},
		"island_size": map[string]interface{}{
			"type":        "integer",
			"description": "Absorb single-color regions of at most this many pixels into their surroundings. 0 disables",
		},
	}
}

func withProperties(base map[string]interface{}, extra map[string]interface{}) map[string]interface{} {
	for k, v := range extra {
		base[k] = v
	}
	return base
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Image Information
		{
			Name:        "image_load",
			Description: "Load an image file and return its dimensions, format and channel count (3 for opaque images, 4 when it has transparency).",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
				},
				"required": []string{"path"},
			},
		},

		// Palette Operations
		{
			Name:        "palette_suggest",
			Description: "Suggest a palette of distinct colors for an image, sorted darkest to brightest. Use this to pick layer colors before mapping.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"count": map[string]interface{}{
						"type":        "integer",
						"description": "Number of colors to suggest. Default 4",
						"default":     4,
					},
					"method": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"dominant", "kmeans"},
						"description": "Extraction method. Default dominant",
						"default":     "dominant",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "palette_swatch",
			Description: "Render a palette legend as base64-encoded PNG, one labeled block per color. With a path, each row also shows the color's pixel count after mapping.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": withProperties(mappingProperties(), map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Optional image to count pixels in",
					},
				}),
				"required": []string{"colors"},
			},
		},

		// Mapping Operations
		{
			Name:        "image_map_colors",
			Description: "Snap every pixel of an image to its nearest palette color and return the result as base64-encoded PNG, with a pixel count per color. Use this to preview how an image splits into layers.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": withProperties(mappingProperties(), map[string]interface{}{
					"output_path": map[string]interface{}{
						"type":        "string",
						"description": "Optional path to also save the mapped image to",
					},
				}),
				"required": []string{"path", "colors"},
			},
		},

		// Layer Export
		{
			Name:        "image_color_layer_stl",
			Description: "Map an image to a palette, then extrude the pixels of one color into a closed mesh and write it as ASCII STL.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": withProperties(mappingProperties(), map[string]interface{}{
					"color": map[string]interface{}{
						"type":        "string",
						"description": "Layer color as #RRGGBB; must be in colors",
					},
					"output_path": map[string]interface{}{
						"type":        "string",
						"description": "STL file to write. Default <output dir>/<RRGGBB>.stl",
					},
				}),
				"required": []string{"path", "colors", "color"},
			},
		},
		{
			Name:        "image_export_layers",
			Description: "Map an image to a palette and write one STL per palette color that received pixels. Colors with no pixels are reported as skipped.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": withProperties(mappingProperties(), map[string]interface{}{
					"output_dir": map[string]interface{}{
						"type":        "string",
						"description": "Directory for the STL files. Default is the server's output directory",
					},
					"prefix": map[string]interface{}{
						"type":        "string",
						"description": "File name prefix; files are named <prefix>_<RRGGBB>.stl. Default is the image file name",
					},
				}),
				"required": []string{"path", "colors"},
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
