package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNameError(t *testing.T) {
	tests := []struct {
		name     string
		err      *NameError
		wantMsg  string
		wantBase error
	}{
		{
			name:     "variable",
			err:      &NameError{Kind: KindVariable, Index: 3, Name: "x y", Reason: "contains forbidden character ' '"},
			wantMsg:  `invalid name for variable 3: "x y": contains forbidden character ' '`,
			wantBase: ErrInvalidName,
		},
		{
			name:     "constraint",
			err:      &NameError{Kind: KindConstraint, Index: 0, Name: "", Reason: "empty"},
			wantMsg:  `invalid name for constraint 0: "": empty`,
			wantBase: ErrInvalidName,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", got, tt.wantMsg)
			}
			if got := tt.err.Unwrap(); !errors.Is(got, tt.wantBase) {
				t.Errorf("Unwrap() = %v, want %v", got, tt.wantBase)
			}
		})
	}

	// Test with underlying error separately
	t.Run("with underlying error", func(t *testing.T) {
		underlyingErr := fmt.Errorf("registry rejected name")
		err := &NameError{Kind: KindVariable, Index: 1, Name: "$x", Reason: "bad first character", Err: underlyingErr}
		if got := err.Unwrap(); got != underlyingErr {
			t.Errorf("Unwrap() = %v, want %v", got, underlyingErr)
		}
	})
}

func TestIndexError(t *testing.T) {
	err := NewIndex(2, 5, 9, 4)
	wantMsg := "constraint 2 term 5 references variable 9, model has 4"
	if got := err.Error(); got != wantMsg {
		t.Errorf("Error() = %q, want %q", got, wantMsg)
	}
	if !errors.Is(err, ErrBadIndex) {
		t.Errorf("errors.Is(err, ErrBadIndex) = false, want true")
	}
}

func TestRowError(t *testing.T) {
	tests := []struct {
		name    string
		err     *RowError
		wantMsg string
	}{
		{
			name:    "named constraint",
			err:     NewRow(7, "capacity"),
			wantMsg: "constraint 7 (capacity) has no finite bound",
		},
		{
			name:    "unnamed constraint",
			err:     NewRow(0, ""),
			wantMsg: "constraint 0 has no finite bound",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", got, tt.wantMsg)
			}
			if !errors.Is(tt.err, ErrUnboundedRow) {
				t.Errorf("errors.Is(err, ErrUnboundedRow) = false, want true")
			}
		})
	}
}

func TestValidationError(t *testing.T) {
	tests := []struct {
		name     string
		err      *ValidationError
		wantMsg  string
		wantBase error
	}{
		{
			name:     "with field",
			err:      &ValidationError{Field: "variables[0].lower", Message: "must not be NaN"},
			wantMsg:  "validation failed for variables[0].lower: must not be NaN",
			wantBase: ErrInvalidInput,
		},
		{
			name:     "without field",
			err:      &ValidationError{Message: "invalid model"},
			wantMsg:  "validation failed: invalid model",
			wantBase: ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", got, tt.wantMsg)
			}
			if got := tt.err.Unwrap(); !errors.Is(got, tt.wantBase) {
				t.Errorf("Unwrap() = %v, want %v", got, tt.wantBase)
			}
		})
	}
}

func TestNotFoundError(t *testing.T) {
	tests := []struct {
		name    string
		err     *NotFoundError
		wantMsg string
	}{
		{
			name:    "with ID",
			err:     NewNotFound("model", "9f1c2d"),
			wantMsg: "model not found: 9f1c2d",
		},
		{
			name:    "without ID",
			err:     &NotFoundError{Resource: "entry"},
			wantMsg: "entry not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", got, tt.wantMsg)
			}
			if !errors.Is(tt.err, ErrNotFound) {
				t.Errorf("errors.Is(err, ErrNotFound) = false, want true")
			}
		})
	}
}

func TestParseError(t *testing.T) {
	err := NewParse("definition", "model.mpdef", "unexpected token")
	wantMsg := "failed to parse definition at model.mpdef: unexpected token"
	if got := err.Error(); got != wantMsg {
		t.Errorf("Error() = %q, want %q", got, wantMsg)
	}
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("errors.Is(err, ErrInvalidInput) = false, want true")
	}
}

func TestUnsupportedError(t *testing.T) {
	err := NewUnsupported("extension .lp", "no reader for solver formats")
	wantMsg := "unsupported extension .lp: no reader for solver formats"
	if got := err.Error(); got != wantMsg {
		t.Errorf("Error() = %q, want %q", got, wantMsg)
	}
	if !errors.Is(err, ErrUnsupported) {
		t.Errorf("errors.Is(err, ErrUnsupported) = false, want true")
	}
}

func TestIOError(t *testing.T) {
	baseErr := fmt.Errorf("permission denied")
	err := NewIO("write", "/tmp/out.lp", baseErr)
	wantMsg := "failed to write /tmp/out.lp: permission denied"
	if got := err.Error(); got != wantMsg {
		t.Errorf("Error() = %q, want %q", got, wantMsg)
	}
	if got := err.Unwrap(); got != baseErr {
		t.Errorf("Unwrap() = %v, want %v", got, baseErr)
	}
}

func TestWrap(t *testing.T) {
	t.Run("nil error", func(t *testing.T) {
		if got := Wrap(nil, "context"); got != nil {
			t.Errorf("Wrap(nil) = %v, want nil", got)
		}
	})

	t.Run("wraps with context", func(t *testing.T) {
		base := errors.New("base failure")
		got := Wrap(base, "while exporting")
		if got == nil {
			t.Fatal("Wrap() = nil, want error")
		}
		if got.Error() != "while exporting: base failure" {
			t.Errorf("Wrap() = %q, want %q", got.Error(), "while exporting: base failure")
		}
		if !errors.Is(got, base) {
			t.Error("wrapped error does not match base via errors.Is")
		}
	})
}

func TestWrapf(t *testing.T) {
	t.Run("nil error", func(t *testing.T) {
		if got := Wrapf(nil, "context %d", 1); got != nil {
			t.Errorf("Wrapf(nil) = %v, want nil", got)
		}
	})

	t.Run("formats context", func(t *testing.T) {
		got := Wrapf(ErrBadIndex, "constraint %d", 4)
		if got.Error() != "constraint 4: variable index out of range" {
			t.Errorf("Wrapf() = %q", got.Error())
		}
		if !Is(got, ErrBadIndex) {
			t.Error("Is(got, ErrBadIndex) = false, want true")
		}
	})
}

func TestAs(t *testing.T) {
	var nameErr *NameError
	err := fmt.Errorf("outer: %w", NewName(KindVariable, 2, "0x", "starts with a digit"))
	if !As(err, &nameErr) {
		t.Fatal("As() = false, want true")
	}
	if nameErr.Index != 2 {
		t.Errorf("nameErr.Index = %d, want 2", nameErr.Index)
	}
}
