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

package serializer

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"
)

type testData struct {
	Message string `json:"message"`
	Code    int    `json:"code"`
}

func TestRespondJSON_Success(t *testing.T) {
	w := httptest.NewRecorder()
	data := testData{
		Message: "success",
		Code:    200,
	}

	RespondJSON(w, http.StatusOK, data)

	if w.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, w.Code)
	}

	contentType := w.Header().Get("Content-Type")
	if contentType != "application/json" {
		t.Errorf("expected Content-Type application/json, got %s", contentType)
	}

	var result testData
	if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if result != data {
		t.Errorf("expected %+v, got %+v", data, result)
	}
}

func TestRespondJSON_DifferentStatusCodes(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
	}{
		{"OK", http.StatusOK},
		{"BadRequest", http.StatusBadRequest},
		{"NotFound", http.StatusNotFound},
		{"InternalServerError", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			RespondJSON(w, tt.statusCode, map[string]string{"error": "x"})
			if w.Code != tt.statusCode {
				t.Errorf("expected status %d, got %d", tt.statusCode, w.Code)
			}
		})
	}
}

func TestRespondJSON_EncodingFailure(t *testing.T) {
	w := httptest.NewRecorder()

	// channels cannot be encoded; nothing partial should be written
	RespondJSON(w, http.StatusOK, map[string]any{"bad": make(chan int)})

	if w.Code != http.StatusInternalServerError {
		t.Errorf("expected status %d, got %d", http.StatusInternalServerError, w.Code)
	}
}

func TestHttpReader_ReadWithContext(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.UserAgent()
		if r.URL.Path == "/missing" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte("State Name,Dist Name,Year\n"))
	}))
	defer srv.Close()

	r := NewHttpReader(WithClient(srv.Client()), WithTotalTimeout(5*time.Second))

	data, err := r.ReadWithContext(context.Background(), srv.URL+"/data.csv")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(data) != "State Name,Dist Name,Year\n" {
		t.Errorf("unexpected body %q", data)
	}
	if gotUA != HttpReaderUserAgent {
		t.Errorf("expected user agent %s, got %q", HttpReaderUserAgent, gotUA)
	}

	if _, err := r.ReadWithContext(context.Background(), srv.URL+"/missing"); err == nil {
		t.Error("expected error for 404")
	}
	if _, err := r.ReadWithContext(context.Background(), ""); err == nil {
		t.Error("expected error for empty url")
	}
}

func TestReadSource_LocalFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "crops.csv")
	if err := os.WriteFile(path, []byte("N,P,K\n"), 0600); err != nil {
		t.Fatal(err)
	}

	got, err := ReadSource(context.Background(), path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(got) != "N,P,K\n" {
		t.Errorf("unexpected content %q", got)
	}

	if _, err := ReadSource(context.Background(), filepath.Join(t.TempDir(), "nope.csv")); err == nil {
		t.Error("expected error for missing file")
	}
}
