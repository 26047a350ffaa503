package server

import (
	"testing"
)

var expectedTools = []string{
	"ocr_text",
	"ocr_boxes",
	"ocr_data",
	"ocr_osd",
	"ocr_hocr",
	"ocr_alto",
	"ocr_region",
	"tesseract_version",
	"tesseract_languages",
	"image_info",
}

func TestGetToolDefinitions(t *testing.T) {
	tools := GetToolDefinitions()

	if len(tools) != len(expectedTools) {
		t.Fatalf("expected %d tools, got %d", len(expectedTools), len(tools))
	}

	toolMap := make(map[string]Tool)
	for _, tool := range tools {
		if _, dup := toolMap[tool.Name]; dup {
			t.Errorf("duplicate tool %s", tool.Name)
		}
		toolMap[tool.Name] = tool
	}

	// Check all expected tools exist
	for _, name := range expectedTools {
		if _, ok := toolMap[name]; !ok {
			t.Errorf("Expected tool %s not found", name)
		}
	}
}

func TestToolDefinitions_Structure(t *testing.T) {
	tools := GetToolDefinitions()

	for _, tool := range tools {
		t.Run(tool.Name, func(t *testing.T) {
			if tool.Description == "" {
				t.Error("Tool description is empty")
			}

			// InputSchema should be an object type
			if schemaType := tool.InputSchema["type"]; schemaType != "object" {
				t.Errorf("InputSchema type: got %v, want 'object'", schemaType)
			}

			// InputSchema should have properties
			if _, ok := tool.InputSchema["properties"].(map[string]interface{}); !ok {
				t.Error("InputSchema missing 'properties' map")
			}
		})
	}
}

func TestToolDefinitions_RequiredPath(t *testing.T) {
	toolMap := make(map[string]Tool)
	for _, tool := range GetToolDefinitions() {
		toolMap[tool.Name] = tool
	}

	for _, name := range expectedTools[:7] {
		t.Run(name, func(t *testing.T) {
			required, ok := toolMap[name].InputSchema["required"].([]string)
			if !ok {
				t.Fatal("'required' should be a string slice")
			}

			hasPath := false
			for _, r := range required {
				if r == "path" {
					hasPath = true
				}
			}
			if !hasPath {
				t.Error("'path' should be required")
			}

			props := toolMap[name].InputSchema["properties"].(map[string]interface{})
			for _, p := range []string{"path", "lang", "config"} {
				if _, ok := props[p]; !ok {
					t.Errorf("missing property %s", p)
				}
			}
		})
	}
}

func TestToolDefinitions_RegionCoordinates(t *testing.T) {
	for _, tool := range GetToolDefinitions() {
		if tool.Name != "ocr_region" {
			continue
		}
		props := tool.InputSchema["properties"].(map[string]interface{})
		for _, p := range []string{"x1", "y1", "x2", "y2"} {
			prop, ok := props[p].(map[string]interface{})
			if !ok {
				t.Errorf("missing property %s", p)
				continue
			}
			if prop["type"] != "integer" {
				t.Errorf("%s type: got %v, want integer", p, prop["type"])
			}
		}
		return
	}
	t.Fatal("ocr_region not defined")
}

func TestEngineProperties_Independent(t *testing.T) {
	a := engineProperties()
	a["extra"] = true
	if _, leaked := engineProperties()["extra"]; leaked {
		t.Error("engineProperties must return a fresh map")
	}
}
