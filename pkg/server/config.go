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
	"fmt"
	"net/http"
	"os"
	"time"

	"golang.org/x/time/rate"

	"github.com/agro24/agrod/pkg/defaults"
)

// Route binds a handler to a method and path.
type Route struct {
	Method  string
	Path    string
	Handler http.HandlerFunc
}

// Config holds server configuration
type Config struct {
	// Server identity
	Name    string
	Version string

	// Application routes, served behind the middleware chain
	Routes []Route

	// Server configuration
	Address string
	Port    int

	// Rate limiting configuration. A RateLimit of zero disables limiting.
	RateLimit      rate.Limit // requests per second
	RateLimitBurst int        // burst size

	// CORS origins; "*" allows any origin
	AllowedOrigins []string

	// Timeouts
	ReadTimeout       time.Duration
	ReadHeaderTimeout time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
	ShutdownTimeout   time.Duration
}

// Option configures a Server.
type Option func(*Config)

// WithName sets the server name reported by the route index and logs.
func WithName(name string) Option {
	return func(c *Config) {
		c.Name = name
	}
}

// WithVersion sets the version reported by the route index and logs.
func WithVersion(version string) Option {
	return func(c *Config) {
		c.Version = version
	}
}

// WithRoutes appends application routes.
func WithRoutes(routes ...Route) Option {
	return func(c *Config) {
		c.Routes = append(c.Routes, routes...)
	}
}

// WithAddress sets the bind address and port. A zero port keeps the current value.
func WithAddress(address string, port int) Option {
	return func(c *Config) {
		c.Address = address
		if port > 0 {
			c.Port = port
		}
	}
}

// WithRateLimit enables the server-wide token bucket.
func WithRateLimit(limit rate.Limit, burst int) Option {
	return func(c *Config) {
		c.RateLimit = limit
		c.RateLimitBurst = burst
	}
}

// WithAllowedOrigins replaces the CORS origin list.
func WithAllowedOrigins(origins ...string) Option {
	return func(c *Config) {
		if len(origins) > 0 {
			c.AllowedOrigins = origins
		}
	}
}

// NewConfig returns a new Config with sensible defaults.
// Use this when you want to customize config programmatically.
func NewConfig() *Config {
	return parseConfig()
}

// parseConfig returns sensible defaults
func parseConfig() *Config {
	cfg := &Config{
		Name:              "server",
		Version:           "undefined",
		Address:           "",
		Port:              8080,
		AllowedOrigins:    []string{"*"},
		ReadTimeout:       defaults.ServerReadTimeout,
		ReadHeaderTimeout: defaults.ServerReadHeaderTimeout,
		WriteTimeout:      defaults.ServerWriteTimeout,
		IdleTimeout:       defaults.ServerIdleTimeout,
		ShutdownTimeout:   defaults.ServerShutdownTimeout,
	}

	// Override with environment variables if set
	if portStr := os.Getenv("PORT"); portStr != "" {
		var port int
		if _, err := fmt.Sscanf(portStr, "%d", &port); err == nil && port > 0 {
			cfg.Port = port
		}
	}

	// Allow customization of shutdown timeout to match the supervisor's stop timeout
	if shutdownStr := os.Getenv("SHUTDOWN_TIMEOUT_SECONDS"); shutdownStr != "" {
		var seconds int
		if _, err := fmt.Sscanf(shutdownStr, "%d", &seconds); err == nil && seconds > 0 {
			cfg.ShutdownTimeout = time.Duration(seconds) * time.Second
		}
	}

	return cfg
}
