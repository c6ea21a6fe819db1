package server

import (
	"github.com/ironsheep/image-analysis-mcp/internal/edge"
	"github.com/ironsheep/image-analysis-mcp/internal/imaging"
	"github.com/ironsheep/image-analysis-mcp/internal/morphology"
)

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

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Basic Image Information
		{
			Name:        "image_load",
			Description: "Load an image file and return its dimensions and format. The image stays cached for the other tools.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"reload": map[string]interface{}{
						"type":        "boolean",
						"description": "Drop the cached copy and read the file again. Default false",
						"default":     false,
					},
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

		// Engines
		{
			Name: "image_edge_detect",
			Description: "Run a gradient operator over the grayscale image, normalize to 0-255 and apply double thresholding. " +
				"Returns the edge map as base64 PNG. Repeating a call with only new thresholds reuses the kernel pass.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"kind": map[string]interface{}{
						"type":        "string",
						"description": "Gradient operator. Defaults to the configured kind (sobel)",
						"enum":        names(edge.Kinds()),
					},
					"threshold_min": map[string]interface{}{
						"type":        "integer",
						"description": "Normalized responses below this are dropped (0-254)",
						"minimum":     0,
						"maximum":     254,
					},
					"threshold_max": map[string]interface{}{
						"type":        "integer",
						"description": "Normalized responses at or above this are kept; weaker ones survive only next to a strong raw response (1-255)",
						"minimum":     1,
						"maximum":     255,
					},
					"monochrome": map[string]interface{}{
						"type":        "boolean",
						"description": "Set every surviving pixel to 255",
					},
					"alpha": map[string]interface{}{
						"type":        "number",
						"description": "Deriche filter width, used by the deriche kinds only",
						"minimum":     0,
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name: "image_morphology",
			Description: "Binarize the image at 128 and apply a morphological operation with a square structuring element " +
				"of half-width 'dimension' shaped by 'neighborhood'. Thinning uses 'dimension' as its iteration count.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"operation": map[string]interface{}{
						"type":        "string",
						"description": "Operation to apply",
						"enum":        names(morphology.Operations()),
					},
					"dimension": map[string]interface{}{
						"type":        "integer",
						"description": "Structuring element half-width. Defaults to the configured dimension (1)",
						"minimum":     0,
						"maximum":     morphology.MaxDimension,
					},
					"neighborhood": map[string]interface{}{
						"type":        "string",
						"description": "Active cells of the structuring element. Defaults to connectivity8",
						"enum":        names(morphology.Neighborhoods()),
					},
				},
				"required": []string{"path", "operation"},
			},
		},
		{
			Name: "image_line_votes",
			Description: "Binarize the image and let every foreground pixel vote for the lines y = a*x + b through it. " +
				"Returns the vote map as base64 PNG and the strongest line.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"max_dimension": map[string]interface{}{
						"type":        "integer",
						"description": "Downscale the image so no side exceeds this before voting. 0 disables. Defaults to the configured value (64)",
						"minimum":     0,
					},
					"colormap": map[string]interface{}{
						"type":        "string",
						"description": "Vote map rendering",
						"enum":        []string{string(imaging.ColormapGray), string(imaging.ColormapHeat)},
					},
				},
				"required": []string{"path"},
			},
		},

		// Catalogue
		{
			Name:        "image_list_operations",
			Description: "List the edge operators, morphological operations, neighborhoods and colormaps the server accepts.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
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
