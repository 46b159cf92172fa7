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
	"log/slog"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	cnserrors "github.com/agro24/agrod/pkg/errors"
	"github.com/agro24/agrod/pkg/serializer"
)

// IndexResponse describes the running service and its routes.
type IndexResponse struct {
	Name      string   `json:"name" yaml:"name"`
	Version   string   `json:"version" yaml:"version"`
	Ready     bool     `json:"ready" yaml:"ready"`
	Timestamp string   `json:"timestamp" yaml:"timestamp"`
	Routes    []string `json:"routes" yaml:"routes"`
}

// setupRoutes configures all HTTP routes and middleware
func (s *Server) setupRoutes() http.Handler {
	r := mux.NewRouter()

	// System endpoints (no rate limiting)
	s.handle(r, http.MethodGet, "/health", http.HandlerFunc(s.handleHealth))
	s.handle(r, http.MethodGet, "/ready", http.HandlerFunc(s.handleReady))
	s.handle(r, http.MethodGet, "/metrics", promhttp.Handler())
	s.handle(r, http.MethodGet, "/", http.HandlerFunc(s.handleDefault))

	// Application endpoints with middleware
	for _, route := range s.config.Routes {
		s.handle(r, route.Method, route.Path, s.withMiddleware(route.Path, route.Handler))
	}

	r.NotFoundHandler = s.withMiddleware("unmatched", s.handleNotFound)
	r.MethodNotAllowedHandler = s.withMiddleware("unmatched", s.handleMethodNotAllowed)

	return r
}

func (s *Server) handle(r *mux.Router, method, path string, h http.Handler) {
	r.Handle(path, h).Methods(method)
	s.allowed[path] = append(s.allowed[path], method)
}

func (s *Server) handleDefault(w http.ResponseWriter, r *http.Request) {
	slog.Debug("handling default route",
		"path", r.URL.Path,
		"method", r.Method,
		"remote_addr", r.RemoteAddr,
		"user_agent", r.UserAgent(),
	)

	resp := IndexResponse{
		Name:      s.config.Name,
		Version:   s.config.Version,
		Ready:     s.IsReady(),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Routes:    s.routeList(),
	}

	serializer.RespondJSON(w, http.StatusOK, resp)
}

func (s *Server) routeList() []string {
	list := make([]string, 0, len(s.allowed))
	for path, methods := range s.allowed {
		for _, m := range methods {
			list = append(list, m+" "+path)
		}
	}
	sort.Strings(list)
	return list
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	WriteError(w, r, http.StatusNotFound, cnserrors.ErrCodeNotFound, "Not found")
}

func (s *Server) handleMethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	if methods, ok := s.allowed[r.URL.Path]; ok {
		w.Header().Set("Allow", strings.Join(methods, ", "))
	}
	WriteError(w, r, http.StatusMethodNotAllowed, cnserrors.ErrCodeMethodNotAllowed,
		"Method not allowed")
}
