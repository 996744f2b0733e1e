package mcpserver

import (
	"strings"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func TestServerCreation(t *testing.T) {
	server := NewServer("1.0.0-test")
	if server == nil {
		t.Fatal("NewServer() returned nil")
	}
	if server.server == nil {
		t.Fatal("NewServer().server is nil")
	}
}

func TestServerCreationEmptyVersion(t *testing.T) {
	if NewServer("") == nil {
		t.Fatal("NewServer(\"\") returned nil")
	}
}

func TestToolDescriptions(t *testing.T) {
	descriptions := map[string]func() string{
		"findOrphans":     describeFindOrphans,
		"dependencyGraph": describeDependencyGraph,
		"findDuplicates":  describeFindDuplicates,
		"listBarrels":     describeListBarrels,
		"scanDynamicRefs": describeScanDynamicRefs,
	}

	for name, fn := range descriptions {
		t.Run(name, func(t *testing.T) {
			desc := fn()
			if desc == "" {
				t.Errorf("%s description is empty", name)
			}
			if !strings.Contains(desc, "USE WHEN:") {
				t.Errorf("%s description missing USE WHEN section", name)
			}
			if !strings.Contains(desc, "INTERPRETING RESULTS:") {
				t.Errorf("%s description missing INTERPRETING RESULTS section", name)
			}
		})
	}
}

func TestGetPath(t *testing.T) {
	tests := []struct {
		name     string
		input    AnalyzeInput
		expected string
	}{
		{"empty defaults to current dir", AnalyzeInput{}, "."},
		{"path returned as-is", AnalyzeInput{Path: "/foo/bar"}, "/foo/bar"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := getPath(tt.input); got != tt.expected {
				t.Errorf("getPath() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestFormatOutput(t *testing.T) {
	data := map[string]any{"key": "value"}

	jsonOut, err := formatOutput(data, "json")
	if err != nil {
		t.Fatalf("formatOutput(json) error: %v", err)
	}
	if !strings.Contains(jsonOut, `"key": "value"`) {
		t.Errorf("json output = %q", jsonOut)
	}

	toonOut, err := formatOutput(data, "")
	if err != nil {
		t.Fatalf("formatOutput(toon) error: %v", err)
	}
	if !strings.Contains(toonOut, "key") {
		t.Errorf("toon output = %q", toonOut)
	}
}

func TestToolError(t *testing.T) {
	result, _, err := toolError("test error message")
	if err != nil {
		t.Fatalf("toolError returned unexpected error: %v", err)
	}
	if result == nil || !result.IsError {
		t.Fatal("toolError result should be marked IsError")
	}
	textContent, ok := result.Content[0].(*mcp.TextContent)
	if !ok {
		t.Fatalf("toolError content is not TextContent: %T", result.Content[0])
	}
	if textContent.Text != "Error: test error message" {
		t.Errorf("toolError text = %q", textContent.Text)
	}
}

func TestToolResult(t *testing.T) {
	result, _, err := toolResult(map[string]any{"orphans": 3}, "json")
	if err != nil {
		t.Fatalf("toolResult returned error: %v", err)
	}
	if result == nil || result.IsError {
		t.Fatal("toolResult should not be an error result")
	}
	textContent, ok := result.Content[0].(*mcp.TextContent)
	if !ok {
		t.Fatalf("toolResult content is not TextContent: %T", result.Content[0])
	}
	if !strings.Contains(textContent.Text, "orphans") {
		t.Errorf("toolResult text = %q", textContent.Text)
	}
}
