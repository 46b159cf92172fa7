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

// Package server provides the HTTP server shared by the agrod API.
//
// The server owns the transport concerns: routing (gorilla/mux), CORS
// (rs/cors), request ID propagation, panic recovery, optional token-bucket
// rate limiting, structured request logging, Prometheus metrics, and
// graceful shutdown with systemd readiness notification. Application
// packages contribute plain http.HandlerFunc values through Route.
//
// # Usage
//
//	s := server.New(
//	    server.WithName("agrod"),
//	    server.WithVersion(version),
//	    server.WithRoutes(
//	        server.Route{Method: http.MethodGet, Path: "/market/insights", Handler: engine.HandleInsights},
//	    ),
//	)
//	if err := s.Run(ctx); err != nil {
//	    return err
//	}
//
// # System Endpoints
//
//	GET /         - service name, version, readiness, and registered routes
//	GET /health   - liveness, always 200
//	GET /ready    - readiness, 200 once listening and 503 during startup or shutdown
//	GET /metrics  - Prometheus exposition
//
// # Error Handling
//
// Every error response has the body
//
//	{"error": "<message>"}
//
// The internal error code is returned in the X-Error-Code header and the
// request ID in X-Request-Id. HTTPStatusFromCode maps codes to statuses.
//
// # Configuration
//
// PORT overrides the listen port and SHUTDOWN_TIMEOUT_SECONDS the drain
// window. Rate limiting is disabled unless WithRateLimit sets a positive limit.
package server
