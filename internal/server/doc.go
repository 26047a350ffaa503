// Package server implements the MCP (Model Context Protocol) server for tesseract OCR.
//
// This package provides a JSON-RPC 2.0 server that exposes the ocr package
// through the MCP protocol, so MCP-compatible clients can read text out of
// images on the host without linking against libtesseract.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Recognition:
//   - ocr_text: Extract all text
//   - ocr_boxes: Character boxes
//   - ocr_data: Word-level TSV columns (tesseract >= 3.05)
//   - ocr_osd: Orientation and script detection
//   - ocr_hocr: hOCR document
//   - ocr_alto: ALTO XML document (tesseract >= 4.1.0)
//
// Region Operations:
//   - ocr_region: Text and word boxes from a rectangle, in full-image coordinates
//
// Engine Information:
//   - tesseract_version: Installed engine version
//   - tesseract_languages: Installed language packs
//
// Image Information:
//   - image_info: Dimensions and formats of an image file
//
// # Image Caching
//
// ocr_region and image_info decode images through an in-memory cache keyed
// by path. The whole-image tools hand the path straight to tesseract and never
// decode it.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: Additional error details (typically the Go error string)
//
// # Usage
//
//	client := ocr.NewClient(ocr.ClientConfig{})
//	srv := server.New(client, ocr.Options{Lang: "eng"}, nil)
//	if err := srv.Run(ctx); err != nil {
//	    log.Fatal(err)
//	}
package server
