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

package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cnserrors "github.com/agro24/agrod/pkg/errors"
)

func TestHTTPStatusFromCode(t *testing.T) {
	tests := []struct {
		code cnserrors.ErrorCode
		want int
	}{
		{cnserrors.ErrCodeInvalidRequest, http.StatusBadRequest},
		{cnserrors.ErrCodeUnsupportedFormat, http.StatusBadRequest},
		{cnserrors.ErrCodeNotFound, http.StatusNotFound},
		{cnserrors.ErrCodeColumnNotFound, http.StatusNotFound},
		{cnserrors.ErrCodeMethodNotAllowed, http.StatusMethodNotAllowed},
		{cnserrors.ErrCodeRateLimitExceeded, http.StatusTooManyRequests},
		{cnserrors.ErrCodeUnavailable, http.StatusServiceUnavailable},
		{cnserrors.ErrCodeTimeout, http.StatusGatewayTimeout},
		{cnserrors.ErrCodeInvalidImage, http.StatusInternalServerError},
		{cnserrors.ErrCodeInference, http.StatusInternalServerError},
		{cnserrors.ErrCodeInternal, http.StatusInternalServerError},
		{cnserrors.ErrorCode("SOMETHING_ELSE"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatusFromCode(tt.code))
		})
	}
}

func TestWriteError_BodyShape(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/market/insights", nil)

	WriteError(rec, req, http.StatusNotFound, cnserrors.ErrCodeNotFound, "State not found")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, "NOT_FOUND", rec.Header().Get(ErrorCodeHeader))

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, map[string]any{"error": "State not found"}, body)
}

func TestWriteErrorFromErr(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		fallback   string
		wantStatus int
		wantCode   string
		wantMsg    string
	}{
		{
			name:       "structured error",
			err:        cnserrors.New(cnserrors.ErrCodeColumnNotFound, "Crop type not available"),
			wantStatus: http.StatusNotFound,
			wantCode:   "COLUMN_NOT_FOUND",
			wantMsg:    "Crop type not available",
		},
		{
			name:       "wrapped structured error",
			err:        fmt.Errorf("outer: %w", cnserrors.New(cnserrors.ErrCodeInvalidRequest, "bad")),
			wantStatus: http.StatusBadRequest,
			wantCode:   "INVALID_REQUEST",
			wantMsg:    "bad",
		},
		{
			name:       "structured error without message uses fallback",
			err:        cnserrors.New(cnserrors.ErrCodeInternal, ""),
			fallback:   "something failed",
			wantStatus: http.StatusInternalServerError,
			wantCode:   "INTERNAL",
			wantMsg:    "something failed",
		},
		{
			name:       "plain error",
			err:        fmt.Errorf("strconv: invalid syntax"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   "INTERNAL",
			wantMsg:    "strconv: invalid syntax",
		},
		{
			name:       "nil error uses fallback",
			fallback:   "unknown",
			wantStatus: http.StatusInternalServerError,
			wantCode:   "INTERNAL",
			wantMsg:    "unknown",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/", nil)

			WriteErrorFromErr(rec, req, tt.err, tt.fallback)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantCode, rec.Header().Get(ErrorCodeHeader))

			var body ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantMsg, body.Error)
		})
	}
}
