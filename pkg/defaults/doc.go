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

// Package defaults provides centralized configuration constants for agrod.
//
// This package defines timeout values, request limits, dataset column names
// and model preprocessing defaults used across the codebase. Centralizing
// these values ensures consistency and makes tuning easier.
//
// # Categories
//
//   - Handler timeouts: For HTTP request processing
//   - Server timeouts: For HTTP server configuration
//   - Startup timeouts: For dataset loading and model readiness
//   - HTTP client timeouts: For outbound requests (remote datasets, model server)
//   - Limits: Top-N, upload size, holdout split
//   - Dataset: Key column names and the price sentinel
//
// # Usage
//
//	import "github.com/agro24/agrod/pkg/defaults"
//
//	ctx, cancel := context.WithTimeout(ctx, defaults.InferenceTimeout)
//	defer cancel()
//
// # Timeout Guidelines
//
//   - Market and recommendation handlers: 10s, pure in-memory work
//   - Disease handler: 60s, includes upload and remote inference
//   - Server shutdown: 30s for graceful shutdown
package defaults
