// Cinerec - Movie Recommendations from Viewing History
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinerec

package validation

import (
	"errors"
	"strings"
	"testing"
)

func TestGetValidator_Singleton(t *testing.T) {
	v1 := GetValidator()
	v2 := GetValidator()

	if v1 != v2 {
		t.Error("GetValidator() should return the same singleton instance")
	}
	if v1 == nil {
		t.Error("GetValidator() should not return nil")
	}
}

type testConfig struct {
	Trees  int     `koanf:"trees" validate:"min=1,max=10000"`
	Layout string  `koanf:"layout" validate:"oneof=legacy dedicated"`
	Name   string  `validate:"required"`
	Ratio  float64 `koanf:"ratio" validate:"gte=0,lte=1"`
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name      string
		input     testConfig
		wantErr   bool
		wantMsgs  []string
		wantCount int
	}{
		{
			name:  "all valid fields",
			input: testConfig{Trees: 100, Layout: "dedicated", Name: "forest", Ratio: 0.5},
		},
		{
			name:      "uses koanf tag as field name",
			input:     testConfig{Trees: 0, Layout: "legacy", Name: "forest"},
			wantErr:   true,
			wantMsgs:  []string{"trees must be at least 1"},
			wantCount: 1,
		},
		{
			name:      "falls back to go field name",
			input:     testConfig{Trees: 1, Layout: "legacy"},
			wantErr:   true,
			wantMsgs:  []string{"Name is required"},
			wantCount: 1,
		},
		{
			name:      "collects multiple errors",
			input:     testConfig{Trees: 20000, Layout: "sparse", Name: "x", Ratio: 2},
			wantErr:   true,
			wantMsgs:  []string{"trees must be at most 10000", "layout must be one of: legacy dedicated", "ratio must be less than or equal to 1"},
			wantCount: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStruct(&tt.input)
			if !tt.wantErr {
				if err != nil {
					t.Fatalf("ValidateStruct() unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("ValidateStruct() expected error, got nil")
			}

			var structErr *StructValidationError
			if !errors.As(err, &structErr) {
				t.Fatalf("expected *StructValidationError, got %T", err)
			}
			if len(structErr.Errors()) != tt.wantCount {
				t.Errorf("got %d errors, want %d: %v", len(structErr.Errors()), tt.wantCount, err)
			}
			for _, msg := range tt.wantMsgs {
				if !strings.Contains(err.Error(), msg) {
					t.Errorf("error %q does not contain %q", err.Error(), msg)
				}
			}
		})
	}
}

func TestValidationError_Accessors(t *testing.T) {
	err := ValidateStruct(&testConfig{Trees: 0, Layout: "legacy", Name: "x"})

	var structErr *StructValidationError
	if !errors.As(err, &structErr) {
		t.Fatalf("expected *StructValidationError, got %T", err)
	}

	fe := structErr.Errors()[0]
	if fe.Field() != "trees" {
		t.Errorf("Field() = %q, want trees", fe.Field())
	}
	if fe.Tag() != "min" {
		t.Errorf("Tag() = %q, want min", fe.Tag())
	}
	if fe.Param() != "1" {
		t.Errorf("Param() = %q, want 1", fe.Param())
	}
	if fe.Value() != 0 {
		t.Errorf("Value() = %v, want 0", fe.Value())
	}
}

func TestStructValidationError_Empty(t *testing.T) {
	err := &StructValidationError{}
	if err.Error() != "validation failed" {
		t.Errorf("Error() = %q, want 'validation failed'", err.Error())
	}
}
