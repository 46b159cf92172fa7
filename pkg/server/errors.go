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
	"errors"
	"log/slog"
	"net/http"

	cnserrors "github.com/agro24/agrod/pkg/errors"
	"github.com/agro24/agrod/pkg/serializer"
)

// ErrorCodeHeader carries the internal error code alongside the JSON body.
const ErrorCodeHeader = "X-Error-Code"

// ErrorResponse is the body of every error response.
type ErrorResponse struct {
	Error string `json:"error" yaml:"error"`
}

// HTTPStatusFromCode maps an error code to its HTTP status.
func HTTPStatusFromCode(code cnserrors.ErrorCode) int {
	switch code {
	case cnserrors.ErrCodeInvalidRequest, cnserrors.ErrCodeUnsupportedFormat:
		return http.StatusBadRequest
	case cnserrors.ErrCodeNotFound, cnserrors.ErrCodeColumnNotFound:
		return http.StatusNotFound
	case cnserrors.ErrCodeMethodNotAllowed:
		return http.StatusMethodNotAllowed
	case cnserrors.ErrCodeRateLimitExceeded:
		return http.StatusTooManyRequests
	case cnserrors.ErrCodeUnavailable:
		return http.StatusServiceUnavailable
	case cnserrors.ErrCodeTimeout:
		return http.StatusGatewayTimeout
	case cnserrors.ErrCodeInvalidImage, cnserrors.ErrCodeInference, cnserrors.ErrCodeInternal:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// WriteError writes an error response with an explicit status and code.
func WriteError(w http.ResponseWriter, r *http.Request, statusCode int,
	code cnserrors.ErrorCode, message string) {

	level := slog.LevelWarn
	if statusCode >= http.StatusInternalServerError {
		level = slog.LevelError
	}
	slog.Log(r.Context(), level, "request failed",
		"requestID", RequestID(r.Context()),
		"method", r.Method,
		"path", r.URL.Path,
		"status", statusCode,
		"code", code,
		"error", message,
	)

	w.Header().Set(ErrorCodeHeader, string(code))
	serializer.RespondJSON(w, statusCode, ErrorResponse{Error: message})
}

// WriteErrorFromErr writes an error response derived from err.
// A StructuredError supplies the code and message; anything else is
// reported as INTERNAL with its error text, or fallback when err has none.
func WriteErrorFromErr(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	var se *cnserrors.StructuredError
	if errors.As(err, &se) {
		msg := se.Message
		if msg == "" {
			msg = fallback
		}
		WriteError(w, r, HTTPStatusFromCode(se.Code), se.Code, msg)
		return
	}

	msg := fallback
	if err != nil && err.Error() != "" {
		msg = err.Error()
	}
	WriteError(w, r, http.StatusInternalServerError, cnserrors.ErrCodeInternal, msg)
}
