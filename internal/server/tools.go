package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// engineProperties are the arguments every recognition tool accepts.
func engineProperties() map[string]interface{} {
	return map[string]interface{}{
		"path": map[string]interface{}{
			"type":        "string",
			"description": "Absolute path to the image file",
		},
		"lang": map[string]interface{}{
			"type":        "string",
			"description": "Tesseract language code(s), e.g. 'eng' or 'eng+fra'. Defaults to the server setting",
		},
		"config": map[string]interface{}{
			"type":        "string",
			"description": "Extra tesseract arguments, e.g. '--psm 6' or '-c tessedit_char_whitelist=0123456789'",
		},
	}
}

func withProperties(base map[string]interface{}, extra map[string]interface{}) map[string]interface{} {
	for k, v := range extra {
		base[k] = v
	}
	return base
}

func pathSchema() map[string]interface{} {
	return map[string]interface{}{
		"type":       "object",
		"properties": engineProperties(),
		"required":   []string{"path"},
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Recognition
		{
			Name:        "ocr_text",
			Description: "Extract all text from an image with tesseract. Returns the recognized text with trailing whitespace removed.",
			InputSchema: pathSchema(),
		},
		{
			Name:        "ocr_boxes",
			Description: "Recognize characters and return their bounding boxes as columns char, left, bottom, right, top and page. Box coordinates use a bottom-left origin.",
			InputSchema: pathSchema(),
		},
		{
			Name:        "ocr_data",
			Description: "Return word-level TSV data as columns: level, page_num, block_num, par_num, line_num, word_num, left, top, width, height, conf and text. Requires tesseract 3.05 or newer.",
			InputSchema: pathSchema(),
		},
		{
			Name:        "ocr_osd",
			Description: "Detect page orientation and script. Returns page_num, orientation, rotate, orientation_conf, script and script_conf.",
			InputSchema: pathSchema(),
		},
		{
			Name:        "ocr_hocr",
			Description: "Recognize text and return an hOCR (HTML) document with layout and word boxes.",
			InputSchema: pathSchema(),
		},
		{
			Name:        "ocr_alto",
			Description: "Recognize text and return an ALTO XML document. Requires tesseract 4.1.0 or newer.",
			InputSchema: pathSchema(),
		},

		// Region Operations
		{
			Name:        "ocr_region",
			Description: "Extract text from a rectangular region of an image. Returns the text and word boxes whose left/top are in full-image coordinates.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": withProperties(engineProperties(), map[string]interface{}{
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
				}),
				"required": []string{"path", "x1", "y1", "x2", "y2"},
			},
		},

		// Engine Information
		{
			Name:        "tesseract_version",
			Description: "Report the installed tesseract version.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},
		{
			Name:        "tesseract_languages",
			Description: "List the installed tesseract language packs.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"config": map[string]interface{}{
						"type":        "string",
						"description": "Extra arguments for --list-langs, e.g. '--tessdata-dir /opt/tessdata'",
					},
					"refresh": map[string]interface{}{
						"type":        "boolean",
						"description": "Query the engine again instead of using the cached list",
						"default":     false,
					},
				},
			},
		},

		// Image Information
		{
			Name:        "image_info",
			Description: "Report an image's width, height, native format, the format used when it is staged for tesseract, and whether it has transparency. Use the dimensions to choose ocr_region coordinates.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
				},
				"required": []string{"path"},
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
