package errors

import (
	stderrors "errors"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidGrid, "grid height must be positive, got %g", -5.0)

	if err.Code != ErrCodeInvalidGrid {
		t.Errorf("Code = %q, want %q", err.Code, ErrCodeInvalidGrid)
	}
	if !strings.Contains(err.Error(), "INVALID_GRID") {
		t.Errorf("Error() = %q, want code prefix", err.Error())
	}
	if !strings.Contains(err.Error(), "-5") {
		t.Errorf("Error() = %q, want formatted message", err.Error())
	}
}

func TestWrap(t *testing.T) {
	cause := stderrors.New("no such file")
	err := Wrap(ErrCodeFileNotFound, cause, "open design %s", "chip.toml")

	if !stderrors.Is(err, cause) {
		t.Error("wrapped error should match cause via errors.Is")
	}
	if !strings.Contains(err.Error(), "no such file") {
		t.Errorf("Error() = %q, want cause included", err.Error())
	}
}

func TestIs(t *testing.T) {
	err := New(ErrCodeInvalidBoundary, "x_min exceeds x_max")

	if !Is(err, ErrCodeInvalidBoundary) {
		t.Error("Is() = false for matching code")
	}
	if Is(err, ErrCodeInvalidGrid) {
		t.Error("Is() = true for non-matching code")
	}
	if Is(stderrors.New("plain"), ErrCodeInvalidGrid) {
		t.Error("Is() = true for non-structured error")
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(New(ErrCodeInvalidCell, "bad")); got != ErrCodeInvalidCell {
		t.Errorf("GetCode() = %q, want %q", got, ErrCodeInvalidCell)
	}
	if got := GetCode(stderrors.New("plain")); got != "" {
		t.Errorf("GetCode() = %q, want empty", got)
	}
}

func TestUserMessage(t *testing.T) {
	err := New(ErrCodeInvalidGrid, "grid height must be positive")
	if got := UserMessage(err); got != "grid height must be positive" {
		t.Errorf("UserMessage() = %q", got)
	}
	if got := UserMessage(stderrors.New("plain")); got != "plain" {
		t.Errorf("UserMessage() = %q, want %q", got, "plain")
	}
}

func TestValidateGrid(t *testing.T) {
	if err := ValidateGrid(20); err != nil {
		t.Errorf("ValidateGrid(20) = %v, want nil", err)
	}
	if err := ValidateGrid(0); !Is(err, ErrCodeInvalidGrid) {
		t.Errorf("ValidateGrid(0) = %v, want INVALID_GRID", err)
	}
	if err := ValidateGrid(-1); !Is(err, ErrCodeInvalidGrid) {
		t.Errorf("ValidateGrid(-1) = %v, want INVALID_GRID", err)
	}
}

func TestValidateCellID(t *testing.T) {
	tests := []struct {
		name string
		id   string
		ok   bool
	}{
		{name: "simple", id: "cell_42", ok: true},
		{name: "hierarchical", id: "top/alu/add0", ok: true},
		{name: "empty", id: "", ok: false},
		{name: "whitespace", id: "cell 42", ok: false},
		{name: "control char", id: "cell\x00", ok: false},
		{name: "too long", id: strings.Repeat("a", 200), ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCellID(tt.id)
			if (err == nil) != tt.ok {
				t.Errorf("ValidateCellID(%q) = %v, want ok=%v", tt.id, err, tt.ok)
			}
		})
	}
}

func TestValidateOutputFormat(t *testing.T) {
	valid := []string{"svg", "png"}
	if err := ValidateOutputFormat("svg", valid); err != nil {
		t.Errorf("ValidateOutputFormat(svg) = %v, want nil", err)
	}
	if err := ValidateOutputFormat("bmp", valid); !Is(err, ErrCodeInvalidFormat) {
		t.Errorf("ValidateOutputFormat(bmp) = %v, want INVALID_FORMAT", err)
	}
}
