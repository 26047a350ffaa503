package server

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ironsheep/tessbridge/internal/imaging"
	"github.com/ironsheep/tessbridge/internal/ocr"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "ocr_text", "ocr_region").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(ctx context.Context, req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(ctx, params.Name, params.Arguments)
	if err != nil {
		s.logger.Warn("tool failed", "tool", params.Name, "error", err)
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
//
// Each recognition handler:
//  1. Unmarshals arguments from JSON
//  2. Merges lang and config over the server defaults
//  3. Calls the matching ocr.Client method
//  4. Returns the result or error
func (s *Server) executeTool(ctx context.Context, name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Recognition
	case "ocr_text":
		return s.handleOCRText(ctx, args)
	case "ocr_boxes":
		return s.handleOCRBoxes(ctx, args)
	case "ocr_data":
		return s.handleOCRData(ctx, args)
	case "ocr_osd":
		return s.handleOCROSD(ctx, args)
	case "ocr_hocr":
		return s.handleOCRHOCR(ctx, args)
	case "ocr_alto":
		return s.handleOCRALTO(ctx, args)

	// Region Operations
	case "ocr_region":
		return s.handleOCRRegion(ctx, args)

	// Engine Information
	case "tesseract_version":
		return s.handleTesseractVersion(ctx)
	case "tesseract_languages":
		return s.handleTesseractLanguages(ctx, args)

	// Image Information
	case "image_info":
		return s.handleImageInfo(args)

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// === Recognition Handlers ===

type ocrArgs struct {
	Path   string `json:"path"`
	Lang   string `json:"lang"`
	Config string `json:"config"`
}

// parseOCRArgs decodes args and returns the options for the call.
func (s *Server) parseOCRArgs(args json.RawMessage, dst interface{}, a *ocrArgs) (ocr.Options, error) {
	if err := json.Unmarshal(args, dst); err != nil {
		return ocr.Options{}, err
	}
	if a.Path == "" {
		return ocr.Options{}, fmt.Errorf("path is required")
	}
	opts := s.opts
	if a.Lang != "" {
		opts.Lang = a.Lang
	}
	if a.Config != "" {
		opts.Config = a.Config
	}
	return opts, nil
}

// TextResult is returned by ocr_text.
type TextResult struct {
	Text string `json:"text"`
}

func (s *Server) handleOCRText(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a ocrArgs
	opts, err := s.parseOCRArgs(args, &a, &a)
	if err != nil {
		return nil, err
	}
	out, err := s.client.ImageToString(ctx, a.Path, opts)
	if err != nil {
		return nil, err
	}
	return &TextResult{Text: out.Text}, nil
}

func (s *Server) handleOCRBoxes(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a ocrArgs
	opts, err := s.parseOCRArgs(args, &a, &a)
	if err != nil {
		return nil, err
	}
	opts.Type = ocr.OutputDict
	out, err := s.client.ImageToBoxes(ctx, a.Path, opts)
	if err != nil {
		return nil, err
	}
	return out.Dict, nil
}

func (s *Server) handleOCRData(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a ocrArgs
	opts, err := s.parseOCRArgs(args, &a, &a)
	if err != nil {
		return nil, err
	}
	opts.Type = ocr.OutputDict
	out, err := s.client.ImageToData(ctx, a.Path, opts)
	if err != nil {
		return nil, err
	}
	return out.Dict, nil
}

func (s *Server) handleOCROSD(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a ocrArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Path == "" {
		return nil, fmt.Errorf("path is required")
	}
	// Detection uses the osd pack unless a language is named explicitly.
	opts := s.opts
	opts.Lang = a.Lang
	if a.Config != "" {
		opts.Config = a.Config
	}
	opts.Type = ocr.OutputDict
	out, err := s.client.ImageToOSD(ctx, a.Path, opts)
	if err != nil {
		return nil, err
	}
	return out.Fields, nil
}

// DocumentResult is returned by ocr_hocr and ocr_alto.
type DocumentResult struct {
	Format   string `json:"format"`
	Document string `json:"document"`
}

func (s *Server) handleOCRHOCR(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a ocrArgs
	opts, err := s.parseOCRArgs(args, &a, &a)
	if err != nil {
		return nil, err
	}
	data, err := s.client.ImageToPDFOrHOCR(ctx, a.Path, ocr.KindHOCR, opts)
	if err != nil {
		return nil, err
	}
	return &DocumentResult{Format: "hocr", Document: string(data)}, nil
}

func (s *Server) handleOCRALTO(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a ocrArgs
	opts, err := s.parseOCRArgs(args, &a, &a)
	if err != nil {
		return nil, err
	}
	data, err := s.client.ImageToALTOXML(ctx, a.Path, opts)
	if err != nil {
		return nil, err
	}
	return &DocumentResult{Format: "alto", Document: string(data)}, nil
}

// === Region Operation Handlers ===

type ocrRegionArgs struct {
	ocrArgs
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
	X2 int `json:"x2"`
	Y2 int `json:"y2"`
}

// Region is a rectangle in full-image pixel coordinates.
type Region struct {
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
	X2 int `json:"x2"`
	Y2 int `json:"y2"`
}

// RegionResult is returned by ocr_region.
type RegionResult struct {
	Text   string    `json:"text"`
	Region Region    `json:"region"`
	Words  *ocr.Dict `json:"words"`
}

func (s *Server) handleOCRRegion(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a ocrRegionArgs
	opts, err := s.parseOCRArgs(args, &a, &a.ocrArgs)
	if err != nil {
		return nil, err
	}

	pic, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	cropped, err := imaging.CropRegion(pic, a.X1, a.Y1, a.X2, a.Y2)
	if err != nil {
		return nil, err
	}

	outs, err := s.client.RunMultipleOutput(ctx, cropped, []ocr.OutputKind{ocr.KindText, ocr.KindTSV}, opts)
	if err != nil {
		return nil, err
	}

	words := ocr.FileToDict(outs[1].Text, "\t", -1)
	offsetColumn(words, "left", a.X1)
	offsetColumn(words, "top", a.Y1)

	return &RegionResult{
		Text:   outs[0].Text,
		Region: Region{X1: a.X1, Y1: a.Y1, X2: a.X2, Y2: a.Y2},
		Words:  words,
	}, nil
}

// offsetColumn shifts the integer cells of key by delta.
func offsetColumn(d *ocr.Dict, key string, delta int) {
	for i, v := range d.Column(key) {
		if n, ok := v.(int); ok {
			d.Values[key][i] = n + delta
		}
	}
}

// === Engine Information Handlers ===

// VersionResult is returned by tesseract_version.
type VersionResult struct {
	Version string `json:"version"`
	Command string `json:"command"`
}

func (s *Server) handleTesseractVersion(ctx context.Context) (interface{}, error) {
	v, err := s.client.Version(ctx, false)
	if err != nil {
		return nil, err
	}
	return &VersionResult{Version: v.String(), Command: s.client.Command()}, nil
}

type languagesArgs struct {
	Config  string `json:"config"`
	Refresh bool   `json:"refresh"`
}

// LanguagesResult is returned by tesseract_languages.
type LanguagesResult struct {
	Languages []string `json:"languages"`
	Count     int      `json:"count"`
}

func (s *Server) handleTesseractLanguages(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a languagesArgs
	if len(args) > 0 {
		if err := json.Unmarshal(args, &a); err != nil {
			return nil, err
		}
	}
	langs, err := s.client.Languages(ctx, a.Config, a.Refresh)
	if err != nil {
		return nil, err
	}
	return &LanguagesResult{Languages: langs, Count: len(langs)}, nil
}

// === Image Information Handlers ===

type imageInfoArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleImageInfo(args json.RawMessage) (interface{}, error) {
	var a imageInfoArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Path == "" {
		return nil, fmt.Errorf("path is required")
	}
	return imaging.LoadImageInfo(s.cache, a.Path)
}
