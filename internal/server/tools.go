package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// pathProperty is the schema shared by every tool's "path" argument.
func pathProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Absolute path to the source image file",
	}
}

// samplesProperty is the schema of the optional output pixel samples.
func samplesProperty() map[string]interface{} {
	return map[string]interface{}{
		"type": "array",
		"items": map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"x":     map[string]interface{}{"type": "integer"},
				"y":     map[string]interface{}{"type": "integer"},
				"label": map[string]interface{}{"type": "string"},
			},
			"required": []string{"x", "y"},
		},
		"description": "Output pixels to report exactly, alongside the encoded image",
	}
}

// stageSchema describes one entry of a pipeline stage list.
func stageSchema() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"type": map[string]interface{}{
				"type":        "string",
				"enum":        []string{"grayscale", "box_blur", "convolve", "edge_detect"},
				"description": "Stage to apply",
			},
			"policy": map[string]interface{}{
				"type":        "string",
				"enum":        []string{"average", "luminance", "lightness"},
				"description": "Grayscale policy (grayscale only). Default luminance",
			},
			"size": map[string]interface{}{
				"type":        "integer",
				"description": "Odd kernel side length (box_blur only). Default 3",
			},
			"value": map[string]interface{}{
				"type":        "number",
				"description": "Kernel cell value (box_blur only). Default 1.0",
			},
			"weights": map[string]interface{}{
				"type":        "array",
				"items":       map[string]interface{}{"type": "array", "items": map[string]interface{}{"type": "number"}},
				"description": "Square, odd-sided kernel rows (convolve only)",
			},
			"threshold": map[string]interface{}{
				"type":        "number",
				"description": "Gradient magnitude an edge must exceed (edge_detect only). Default 90",
			},
			"highlight": map[string]interface{}{
				"type":        "integer",
				"description": "Gray level of edge pixels, 0-255 (edge_detect only). Default 234",
			},
			"margin": map[string]interface{}{
				"type":        "integer",
				"description": "Border width forced to black (edge_detect only). Default 3",
			},
		},
		"required": []string{"type"},
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Basic Image Information
		{
			Name:        "image_load",
			Description: "Load an image file and return its dimensions and format. The decoded image is cached for subsequent operations.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_dimensions",
			Description: "Get the width and height of an image file.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
				},
				"required": []string{"path"},
			},
		},

		// Single Stage Operations
		{
			Name:        "raster_grayscale",
			Description: "Reduce an image to grayscale and return it as base64-encoded PNG. Alpha is forced opaque.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path":    pathProperty(),
					"samples": samplesProperty(),
					"policy": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"average", "luminance", "lightness"},
						"description": "average: (R+G+B)/3. luminance: 0.299R+0.587G+0.114B. lightness: CIE L*. Default luminance",
						"default":     "luminance",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "raster_box_blur",
			Description: "Blur an image with a uniform square kernel. Border pixels come out darker because out-of-bounds samples are skipped.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path":    pathProperty(),
					"samples": samplesProperty(),
					"size": map[string]interface{}{
						"type":        "integer",
						"description": "Odd kernel side length. Default 5",
						"default":     5,
					},
					"value": map[string]interface{}{
						"type":        "number",
						"description": "Value of every kernel cell; 1.0 is a plain mean. Default 1.0",
						"default":     1.0,
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "raster_convolve",
			Description: "Convolve an image with a custom square kernel. The weighted sum is divided by the number of kernel cells and clamped to 0-254.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path":    pathProperty(),
					"samples": samplesProperty(),
					"weights": map[string]interface{}{
						"type":        "array",
						"items":       map[string]interface{}{"type": "array", "items": map[string]interface{}{"type": "number"}},
						"description": "Kernel rows; must be square with an odd side length",
					},
				},
				"required": []string{"path", "weights"},
			},
		},
		{
			Name:        "raster_edge_detect",
			Description: "Detect edges with Sobel gradients and a single threshold. Returns a binary image: edges in light gray, everything else black.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path":    pathProperty(),
					"samples": samplesProperty(),
					"prepare": map[string]interface{}{
						"type":        "boolean",
						"description": "Apply luminance grayscale and a 3x3 box blur before detection. Default true",
						"default":     true,
					},
					"threshold": map[string]interface{}{
						"type":        "number",
						"description": "Gradient magnitude an edge must exceed. Default 90",
						"default":     90,
					},
					"highlight": map[string]interface{}{
						"type":        "integer",
						"description": "Gray level of edge pixels (0-255). Default 234",
						"default":     234,
					},
					"margin": map[string]interface{}{
						"type":        "integer",
						"description": "Border width in pixels forced to black. Default 3",
						"default":     3,
					},
				},
				"required": []string{"path"},
			},
		},

		// Pipelines
		{
			Name:        "raster_pipeline",
			Description: "Apply a list of stages in order and return the final image as base64-encoded PNG.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path":    pathProperty(),
					"samples": samplesProperty(),
					"stages": map[string]interface{}{
						"type":        "array",
						"items":       stageSchema(),
						"description": "Stages to apply, first to last",
					},
				},
				"required": []string{"path", "stages"},
			},
		},
		{
			Name:        "raster_render_variants",
			Description: "Render pipeline variants of an image to files. Without variants, renders gray_naive, gray_luminance, blurred and edge_detection.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"output_dir": map[string]interface{}{
						"type":        "string",
						"description": "Directory receiving the rendered files",
					},
					"variants": map[string]interface{}{
						"type": "array",
						"items": map[string]interface{}{
							"type": "object",
							"properties": map[string]interface{}{
								"name":   map[string]interface{}{"type": "string"},
								"output": map[string]interface{}{"type": "string", "description": "File name; default <name>.png"},
								"stages": map[string]interface{}{"type": "array", "items": stageSchema()},
							},
							"required": []string{"name", "stages"},
						},
						"description": "Optional variants replacing the configured ones",
					},
				},
				"required": []string{"path", "output_dir"},
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
