package cli

import (
	"reflect"
	"testing"
)

func TestOutputPath(t *testing.T) {
	tests := []struct {
		name   string
		output string
		input  string
		format string
		want   string
	}{
		{
			name:   "derived from input",
			input:  "designs/core.toml",
			format: "svg",
			want:   "designs/core.svg",
		},
		{
			name:   "explicit output with extension",
			output: "out/diff.svg",
			input:  "core.toml",
			format: "svg",
			want:   "out/diff.svg",
		},
		{
			name:   "explicit output without extension",
			output: "out/diff",
			input:  "core.toml",
			format: "png",
			want:   "out/diff.png",
		},
		{
			name:   "input without extension",
			input:  "core",
			format: "svg",
			want:   "core.svg",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := outputPath(tt.output, tt.input, tt.format)
			if got != tt.want {
				t.Errorf("outputPath(%q, %q, %q) = %q, want %q",
					tt.output, tt.input, tt.format, got, tt.want)
			}
		})
	}
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{name: "empty defaults to svg", input: "", want: []string{"svg"}},
		{name: "single", input: "png", want: []string{"png"}},
		{name: "multiple", input: "svg,pdf,json", want: []string{"svg", "pdf", "json"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseFormats(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("parseFormats(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestDisplayName(t *testing.T) {
	if got := displayName("core", "core.toml"); got != "core" {
		t.Errorf("displayName = %q, want design name", got)
	}
	if got := displayName("", "core.toml"); got != "core.toml" {
		t.Errorf("displayName = %q, want input path fallback", got)
	}
}
