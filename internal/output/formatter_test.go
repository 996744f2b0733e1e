package output

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input string
		want  Format
	}{
		{"text", FormatText},
		{"TEXT", FormatText},
		{"json", FormatJSON},
		{"JSON", FormatJSON},
		{"markdown", FormatMarkdown},
		{"md", FormatMarkdown},
		{"", FormatText},
		{"invalid", FormatText},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParseFormat(tt.input); got != tt.want {
				t.Errorf("ParseFormat(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNewFormatterStdout(t *testing.T) {
	f, err := NewFormatter(FormatText, "", true)
	if err != nil {
		t.Fatalf("NewFormatter() error: %v", err)
	}
	defer f.Close()

	if f.file != nil {
		t.Error("file should be nil for stdout")
	}
	if !f.Colored() {
		t.Error("Colored() = false, want true")
	}
	if f.Format() != FormatText {
		t.Errorf("Format() = %q, want text", f.Format())
	}
	if err := f.Close(); err != nil {
		t.Errorf("Close() should not error for stdout: %v", err)
	}
}

func TestNewFormatterWithFile(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "out.json")

	f, err := NewFormatter(FormatJSON, outputPath, true)
	if err != nil {
		t.Fatalf("NewFormatter() error: %v", err)
	}

	if f.file == nil {
		t.Error("file should not be nil for file output")
	}
	if f.Colored() {
		t.Error("colored should be false when writing to file")
	}
	if err := f.Close(); err != nil {
		t.Errorf("Close() error: %v", err)
	}
	if _, err := os.Stat(outputPath); os.IsNotExist(err) {
		t.Error("output file should exist")
	}
}

func TestNewFormatterInvalidPath(t *testing.T) {
	_, err := NewFormatter(FormatText, "/nonexistent/directory/file.txt", false)
	if err == nil {
		t.Error("NewFormatter() should error for invalid path")
	}
}

func TestFormatterOutputJSON(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "out.json")
	f, err := NewFormatter(FormatJSON, outputPath, false)
	if err != nil {
		t.Fatalf("NewFormatter() error: %v", err)
	}

	data := map[string]any{"orphans": []string{"a.ts", "b.ts"}, "total": 2}
	if err := f.Output(data); err != nil {
		t.Fatalf("Output() error: %v", err)
	}
	f.Close()

	content, err := os.ReadFile(outputPath)
	if err != nil {
		t.Fatal(err)
	}
	var result map[string]any
	if err := json.Unmarshal(content, &result); err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}
	if result["total"].(float64) != 2 {
		t.Errorf("total = %v, want 2", result["total"])
	}
}

func TestFormatterMarkdownRawData(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "out.md")
	f, err := NewFormatter(FormatMarkdown, outputPath, false)
	if err != nil {
		t.Fatalf("NewFormatter() error: %v", err)
	}

	if err := f.Output(map[string]string{"key": "value"}); err != nil {
		t.Fatalf("Output() error: %v", err)
	}
	f.Close()

	content, err := os.ReadFile(outputPath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(content), "```json") {
		t.Error("markdown output for raw data should use a json code block")
	}
}

func TestTableRenderText(t *testing.T) {
	tests := []struct {
		name  string
		table *Table
		want  []string
	}{
		{
			name: "simple_table",
			table: NewTable(
				"Orphan Candidates",
				[]string{"File", "Imports"},
				[][]string{
					{"src/unused.ts", "2"},
					{"src/Old.tsx", "0"},
				},
				nil,
				nil,
			),
			want: []string{"Orphan Candidates", "FILE", "IMPORTS", "src/unused.ts", "src/Old.tsx"},
		},
		{
			name: "table_with_footer",
			table: NewTable(
				"Summary",
				[]string{"Metric", "Value"},
				[][]string{{"Total", "10"}},
				[]string{"10 files analyzed"},
				nil,
			),
			want: []string{"Summary", "Total", "10 files analyzed"},
		},
		{
			name: "no_title",
			table: NewTable(
				"",
				[]string{"A", "B"},
				[][]string{{"1", "2"}},
				nil,
				nil,
			),
			want: []string{"A", "B", "1", "2"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := tt.table.RenderText(&buf, false); err != nil {
				t.Fatalf("RenderText() error: %v", err)
			}
			output := buf.String()
			for _, want := range tt.want {
				if !strings.Contains(output, want) {
					t.Errorf("RenderText() missing %q in output:\n%s", want, output)
				}
			}
		})
	}
}

func TestTableRenderMarkdown(t *testing.T) {
	table := NewTable(
		"Duplicates",
		[]string{"Name", "Copies"},
		[][]string{{"utils.ts", "3"}},
		[]string{"1 duplicate group"},
		nil,
	)

	var buf bytes.Buffer
	if err := table.RenderMarkdown(&buf); err != nil {
		t.Fatalf("RenderMarkdown() error: %v", err)
	}

	output := buf.String()
	want := []string{"## Duplicates", "| Name | Copies |", "| --- | --- |", "| utils.ts | 3 |", "- 1 duplicate group"}
	for _, w := range want {
		if !strings.Contains(output, w) {
			t.Errorf("RenderMarkdown() missing %q in output:\n%s", w, output)
		}
	}
}

func TestTableRenderData(t *testing.T) {
	t.Run("with_data_field", func(t *testing.T) {
		data := map[string]any{"custom": "data"}
		table := NewTable("Title", []string{"H1"}, [][]string{{"R1"}}, nil, data)

		result, ok := table.RenderData().(map[string]any)
		if !ok || result["custom"] != "data" {
			t.Errorf("RenderData() = %v, want the Data field back", table.RenderData())
		}
	})

	t.Run("without_data_field", func(t *testing.T) {
		table := NewTable(
			"Test",
			[]string{"Name", "Value"},
			[][]string{{"foo", "100"}},
			nil,
			nil,
		)

		rows, ok := table.RenderData().([]map[string]string)
		if !ok {
			t.Fatalf("RenderData() should return []map[string]string, got %T", table.RenderData())
		}
		if len(rows) != 1 || rows[0]["Name"] != "foo" || rows[0]["Value"] != "100" {
			t.Errorf("RenderData() rows = %v", rows)
		}
	})

	t.Run("mismatched_columns", func(t *testing.T) {
		table := NewTable("Test", []string{"A", "B", "C"}, [][]string{{"1", "2"}}, nil, nil)
		rows := table.RenderData().([]map[string]string)
		if len(rows[0]) != 2 {
			t.Errorf("RenderData() should handle missing columns, got %v", rows[0])
		}
	})
}

func TestFormatterOutputRenderable(t *testing.T) {
	table := NewTable("Test", []string{"A"}, [][]string{{"1"}}, nil, nil)

	for _, format := range []Format{FormatText, FormatJSON, FormatMarkdown} {
		t.Run(string(format), func(t *testing.T) {
			outputPath := filepath.Join(t.TempDir(), "out."+string(format))
			f, err := NewFormatter(format, outputPath, false)
			if err != nil {
				t.Fatalf("NewFormatter() error: %v", err)
			}
			defer f.Close()

			if err := f.Output(table); err != nil {
				t.Errorf("Output() error: %v", err)
			}
			f.Close()

			content, err := os.ReadFile(outputPath)
			if err != nil {
				t.Fatal(err)
			}
			if len(content) == 0 {
				t.Errorf("output file for %s should not be empty", format)
			}
		})
	}
}
