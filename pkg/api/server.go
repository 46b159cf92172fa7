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

package api

import (
	"context"
	"log/slog"
	"net/http"

	"golang.org/x/time/rate"

	"github.com/agro24/agrod/pkg/config"
	"github.com/agro24/agrod/pkg/server"
)

const (
	name           = "agrod"
	versionDefault = "dev"
)

var (
	// overridden during build with ldflags to reflect actual version info
	// e.g., -X "github.com/agro24/agrod/pkg/api.version=1.0.0"
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"
)

// Routes returns the application routes served by agrod.
func Routes(s *Services) []server.Route {
	return []server.Route{
		{Method: http.MethodGet, Path: "/crop_recommendation", Handler: s.Recommender.HandleCropRecommendation},
		{Method: http.MethodPost, Path: "/detect_disease", Handler: s.Disease.HandleDetectDisease},
		{Method: http.MethodGet, Path: "/market_insights", Handler: s.Market.HandleInsights},
		{Method: http.MethodGet, Path: "/market_prize", Handler: s.Market.HandlePrices},
		{Method: http.MethodGet, Path: "/market/states", Handler: s.Market.HandleStates},
		{Method: http.MethodGet, Path: "/market/districts", Handler: s.Market.HandleDistricts},
		{Method: http.MethodGet, Path: "/market/crops", Handler: s.Market.HandleCrops},
	}
}

// NewServer builds the HTTP server for the given services.
func NewServer(cfg *config.Config, s *Services) *server.Server {
	return server.New(
		server.WithName(name),
		server.WithVersion(version),
		server.WithAddress(cfg.Server.Address, cfg.Server.Port),
		server.WithRateLimit(rate.Limit(cfg.Server.RateLimit), cfg.Server.RateLimitBurst),
		server.WithAllowedOrigins(cfg.Server.AllowedOrigins...),
		server.WithRoutes(Routes(s)...),
	)
}

// Serve loads every service, then starts the API server and blocks until
// shutdown. Startup failures are returned before the listener opens.
func Serve(ctx context.Context, cfg *config.Config) error {
	slog.Info("starting",
		"name", name,
		"version", version,
		"commit", commit,
		"date", date,
	)

	s, err := Bootstrap(ctx, cfg)
	if err != nil {
		slog.Error("startup failed", "error", err)
		return err
	}

	if err := NewServer(cfg, s).Run(ctx); err != nil {
		slog.Error("server exited with error", "error", err)
		return err
	}

	return nil
}

// Version returns the build version.
func Version() string { return version }
