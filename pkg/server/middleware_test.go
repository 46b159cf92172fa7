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
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

func TestRequestIDMiddleware_GeneratesNewID(t *testing.T) {
	s := &Server{
		config:      NewConfig(),
		rateLimiter: rate.NewLimiter(rate.Inf, 0),
	}

	var capturedRequestID string
	handler := s.requestIDMiddleware(func(w http.ResponseWriter, r *http.Request) {
		capturedRequestID = RequestID(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	rec := httptest.NewRecorder()

	handler(rec, req)

	if capturedRequestID == "" {
		t.Error("expected request ID to be generated")
	}
	if _, err := uuid.Parse(capturedRequestID); err != nil {
		t.Errorf("expected valid UUID, got: %s", capturedRequestID)
	}
	if rec.Header().Get("X-Request-Id") != capturedRequestID {
		t.Errorf("expected X-Request-Id header to be %s, got %s",
			capturedRequestID, rec.Header().Get("X-Request-Id"))
	}
}

func TestRequestIDMiddleware_UsesProvidedID(t *testing.T) {
	s := &Server{config: NewConfig()}

	providedID := uuid.New().String()
	var capturedRequestID string
	handler := s.requestIDMiddleware(func(w http.ResponseWriter, r *http.Request) {
		capturedRequestID = RequestID(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("X-Request-Id", providedID)
	rec := httptest.NewRecorder()

	handler(rec, req)

	if capturedRequestID != providedID {
		t.Errorf("expected request ID %s, got %s", providedID, capturedRequestID)
	}
}

func TestRequestIDMiddleware_ReplacesInvalidID(t *testing.T) {
	s := &Server{config: NewConfig()}

	var capturedRequestID string
	handler := s.requestIDMiddleware(func(w http.ResponseWriter, r *http.Request) {
		capturedRequestID = RequestID(r.Context())
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("X-Request-Id", "not-a-uuid")
	handler(httptest.NewRecorder(), req)

	if capturedRequestID == "not-a-uuid" {
		t.Error("expected invalid request ID to be replaced")
	}
	if _, err := uuid.Parse(capturedRequestID); err != nil {
		t.Errorf("expected valid UUID, got: %s", capturedRequestID)
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	tests := []struct {
		name       string
		limiter    *rate.Limiter
		limit      rate.Limit
		wantStatus int
		wantHeader bool
	}{
		{
			name:       "unlimited passes without headers",
			limiter:    rate.NewLimiter(rate.Inf, 0),
			wantStatus: http.StatusOK,
		},
		{
			name:       "allowed sets headers",
			limiter:    rate.NewLimiter(10, 10),
			limit:      10,
			wantStatus: http.StatusOK,
			wantHeader: true,
		},
		{
			name:       "exhausted bucket rejects",
			limiter:    rate.NewLimiter(1, 0),
			limit:      1,
			wantStatus: http.StatusTooManyRequests,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfig()
			cfg.RateLimit = tt.limit
			s := &Server{config: cfg, rateLimiter: tt.limiter}

			handler := s.rateLimitMiddleware(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			})

			rec := httptest.NewRecorder()
			handler(rec, httptest.NewRequest(http.MethodGet, "/test", nil))

			if rec.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, rec.Code)
			}
			if got := rec.Header().Get("X-RateLimit-Limit") != ""; got != tt.wantHeader {
				t.Errorf("expected rate limit header present=%v, got %v", tt.wantHeader, got)
			}
			if tt.wantStatus == http.StatusTooManyRequests {
				if rec.Header().Get("Retry-After") == "" {
					t.Error("expected Retry-After header")
				}
				if rec.Header().Get(ErrorCodeHeader) != "RATE_LIMIT_EXCEEDED" {
					t.Errorf("unexpected error code %q", rec.Header().Get(ErrorCodeHeader))
				}
			}
		})
	}
}

func TestPanicRecoveryMiddleware(t *testing.T) {
	s := &Server{config: NewConfig()}

	handler := s.panicRecoveryMiddleware(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})

	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodGet, "/test", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("expected status 500, got %d", rec.Code)
	}
	if body := rec.Body.String(); body != "{\"error\":\"Internal server error\"}\n" {
		t.Errorf("unexpected body %q", body)
	}
}

func TestResponseWriter_FirstStatusWins(t *testing.T) {
	rec := httptest.NewRecorder()
	rw := newResponseWriter(rec)

	rw.WriteHeader(http.StatusAccepted)
	rw.WriteHeader(http.StatusInternalServerError)

	if rw.Status() != http.StatusAccepted {
		t.Errorf("expected status %d, got %d", http.StatusAccepted, rw.Status())
	}

	rw2 := newResponseWriter(httptest.NewRecorder())
	if _, err := rw2.Write([]byte("ok")); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if rw2.Status() != http.StatusOK {
		t.Errorf("expected implicit 200, got %d", rw2.Status())
	}
	if rw2.Bytes() != 2 {
		t.Errorf("expected 2 bytes written, got %d", rw2.Bytes())
	}
}
