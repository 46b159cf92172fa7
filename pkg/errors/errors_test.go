// Copyright (c) 2025, The Agro24 Authors.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeNotFound, "State not found")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if err.Code != ErrCodeNotFound {
		t.Errorf("expected code %s, got %s", ErrCodeNotFound, err.Code)
	}
	if err.Message != "State not found" {
		t.Errorf("expected message 'State not found', got %s", err.Message)
	}
	if err.Cause != nil {
		t.Errorf("expected nil cause, got %v", err.Cause)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := Wrap(ErrCodeInference, "inference failed", cause)

	if err.Code != ErrCodeInference {
		t.Errorf("expected code %s, got %s", ErrCodeInference, err.Code)
	}
	if !errors.Is(err, cause) {
		t.Errorf("expected cause to be wrapped")
	}
}

func TestWrapWithContext(t *testing.T) {
	cause := errors.New("connection refused")
	ctx := map[string]any{
		"model":    "plant-disease",
		"endpoint": "http://localhost:8000",
	}

	err := WrapWithContext(ErrCodeUnavailable, "model not ready", cause, ctx)

	if err.Code != ErrCodeUnavailable {
		t.Errorf("expected code %s, got %s", ErrCodeUnavailable, err.Code)
	}
	if err.Context == nil {
		t.Fatal("expected context to be set")
	}
	if err.Context["model"] != "plant-disease" {
		t.Errorf("expected model to be plant-disease")
	}
}

func TestNewWithContext(t *testing.T) {
	err := NewWithContext(ErrCodeColumnNotFound, "column missing", map[string]any{"column": "RICE AREA"})
	if err.Cause != nil {
		t.Errorf("expected nil cause, got %v", err.Cause)
	}
	if err.Context["column"] != "RICE AREA" {
		t.Errorf("expected column context, got %v", err.Context)
	}
}

func TestError(t *testing.T) {
	tests := []struct {
		name     string
		err      *StructuredError
		expected string
	}{
		{
			name:     "error without cause",
			err:      New(ErrCodeNotFound, "not found"),
			expected: "[NOT_FOUND] not found",
		},
		{
			name:     "error with cause",
			err:      Wrap(ErrCodeInternal, "failed", errors.New("root cause")),
			expected: "[INTERNAL] failed: root cause",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.err.Error()
			if got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestCodeOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorCode
	}{
		{"nil", nil, ErrCodeInternal},
		{"plain error", errors.New("boom"), ErrCodeInternal},
		{"structured", New(ErrCodeColumnNotFound, "x"), ErrCodeColumnNotFound},
		{"wrapped structured", fmt.Errorf("outer: %w", New(ErrCodeInvalidImage, "x")), ErrCodeInvalidImage},
		{"structured wrapping structured", Wrap(ErrCodeInference, "outer", New(ErrCodeNotFound, "inner")), ErrCodeInference},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CodeOf(tt.err); got != tt.want {
				t.Errorf("CodeOf() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestIsCode(t *testing.T) {
	err := fmt.Errorf("ctx: %w", New(ErrCodeNotFound, "No data"))
	if !IsCode(err, ErrCodeNotFound) {
		t.Error("expected NOT_FOUND")
	}
	if IsCode(err, ErrCodeColumnNotFound) {
		t.Error("did not expect COLUMN_NOT_FOUND")
	}
	if IsCode(nil, ErrCodeInternal) {
		t.Error("nil error should not match any code")
	}
}
