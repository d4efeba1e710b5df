package server

import (
	"testing"
)

var allTools = []string{
	"document_load",
	"document_histogram",
	"document_row_shades",
	"document_remove_background",
	"document_cut_out_greys",
	"document_cut_out_colour",
	"document_crop",
	"document_histogram_csv",
	"document_preview",
}

func toolsByName() map[string]Tool {
	toolMap := make(map[string]Tool)
	for _, tool := range GetToolDefinitions() {
		toolMap[tool.Name] = tool
	}
	return toolMap
}

func TestGetToolDefinitions(t *testing.T) {
	tools := GetToolDefinitions()

	if len(tools) != len(allTools) {
		t.Fatalf("GetToolDefinitions returned %d tools, want %d", len(tools), len(allTools))
	}

	toolMap := toolsByName()
	for _, name := range allTools {
		if _, ok := toolMap[name]; !ok {
			t.Errorf("Expected tool %s not found", name)
		}
	}
}

func TestToolDefinitions_Structure(t *testing.T) {
	tools := GetToolDefinitions()

	for _, tool := range tools {
		t.Run(tool.Name, func(t *testing.T) {
			if tool.Name == "" {
				t.Error("Tool name is empty")
			}
			if tool.Description == "" {
				t.Error("Tool description is empty")
			}
			if tool.InputSchema == nil {
				t.Fatal("Tool InputSchema is nil")
			}

			if schemaType := tool.InputSchema["type"]; schemaType != "object" {
				t.Errorf("InputSchema type: got %v, want 'object'", schemaType)
			}

			props, ok := tool.InputSchema["properties"].(map[string]interface{})
			if !ok || props == nil {
				t.Fatal("InputSchema properties should be a map")
			}

			// Every required parameter is described.
			required, ok := tool.InputSchema["required"].([]string)
			if !ok {
				t.Fatal("'required' should be a string slice")
			}
			for _, r := range required {
				if _, ok := props[r]; !ok {
					t.Errorf("required parameter %s has no property", r)
				}
			}
		})
	}
}

func TestToolDefinitions_RequiredPath(t *testing.T) {
	for name, tool := range toolsByName() {
		t.Run(name, func(t *testing.T) {
			requiredList, _ := tool.InputSchema["required"].([]string)
			hasPath := false
			for _, r := range requiredList {
				if r == "path" {
					hasPath = true
					break
				}
			}
			if !hasPath {
				t.Error("Tool should require 'path' parameter")
			}
		})
	}
}

func TestToolDefinitions_WritingToolsRequireOutput(t *testing.T) {
	writers := []string{
		"document_remove_background",
		"document_cut_out_greys",
		"document_cut_out_colour",
		"document_crop",
		"document_histogram_csv",
	}
	toolMap := toolsByName()

	for _, name := range writers {
		t.Run(name, func(t *testing.T) {
			requiredList, _ := toolMap[name].InputSchema["required"].([]string)
			for _, r := range requiredList {
				if r == "output" {
					return
				}
			}
			t.Error("Tool should require 'output' parameter")
		})
	}
}

func TestToolDefinitions_OptionalDefaults(t *testing.T) {
	toolDefaults := map[string]map[string]interface{}{
		"document_histogram":  {"group_every": 1},
		"document_row_shades": {"min_col": 0, "max_col": 0},
		"document_remove_background": {
			"mode":      "zones",
			"zone_size": 100,
			"zones":     10000,
			"fraction":  0.15,
			"peak_low":  150,
			"peak_high": 250,
		},
		"document_histogram_csv": {"group_every": 1, "compare_background": false},
		"document_preview":       {"max_side": 1024, "remove_background": false},
	}

	toolMap := toolsByName()

	for toolName, expectedDefaults := range toolDefaults {
		tool, ok := toolMap[toolName]
		if !ok {
			t.Errorf("Tool %s not found", toolName)
			continue
		}

		props, ok := tool.InputSchema["properties"].(map[string]interface{})
		if !ok {
			t.Errorf("%s: properties should be a map", toolName)
			continue
		}

		for paramName, expectedDefault := range expectedDefaults {
			param, ok := props[paramName].(map[string]interface{})
			if !ok {
				t.Errorf("%s.%s: parameter not found or not a map", toolName, paramName)
				continue
			}

			actualDefault, ok := param["default"]
			if !ok {
				t.Errorf("%s.%s: missing default value", toolName, paramName)
				continue
			}

			if actualDefault != expectedDefault {
				t.Errorf("%s.%s: default got %v (%T), want %v (%T)", toolName, paramName, actualDefault, actualDefault, expectedDefault, expectedDefault)
			}
		}
	}
}

func TestToolDefinitions_ModeEnum(t *testing.T) {
	props := toolsByName()["document_remove_background"].InputSchema["properties"].(map[string]interface{})
	mode := props["mode"].(map[string]interface{})
	enum, ok := mode["enum"].([]string)
	if !ok || len(enum) != 3 {
		t.Fatalf("mode enum: got %v", mode["enum"])
	}
	for i, want := range []string{"global", "zones", "zone-count"} {
		if enum[i] != want {
			t.Errorf("enum[%d]: got %s, want %s", i, enum[i], want)
		}
	}
}

func TestHandleToolsList(t *testing.T) {
	s := newTestServer(t)
	req := &MCPRequest{
		JSONRPC: "2.0",
		ID:      1,
	}

	resp := s.handleToolsList(req)

	if resp == nil {
		t.Fatal("handleToolsList returned nil")
	}
	if resp.Error != nil {
		t.Fatalf("Unexpected error: %v", resp.Error)
	}

	result, ok := resp.Result.(map[string]interface{})
	if !ok {
		t.Fatal("Result should be a map")
	}

	toolsList, ok := result["tools"].([]Tool)
	if !ok {
		t.Fatal("tools should be a slice of Tool")
	}

	if len(toolsList) != len(GetToolDefinitions()) {
		t.Errorf("Tool count: got %d, want %d", len(toolsList), len(GetToolDefinitions()))
	}
}
