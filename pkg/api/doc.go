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

// Package api wires the agrod services into the HTTP server.
//
// Bootstrap establishes every process-wide object once: the district tables,
// the trained crop classifier, the disease labels, and a ready model server.
// Loading runs in parallel and is all-or-nothing; Serve returns the first
// failure without opening the listener.
//
// # Endpoints
//
//	GET  /crop_recommendation?n=&p=&k=&temperature=&humidity=&ph=&rainfall=
//	POST /detect_disease                      multipart field "image"
//	GET  /market_insights?state=&city=&crop_type=
//	GET  /market_prize?state=&city=&crop_type=
//	GET  /market/states
//	GET  /market/districts?state=
//	GET  /market/crops?state=&city=
//
// System endpoints (/, /health, /ready, /metrics) come from package server.
//
// # Usage
//
//	cfg, err := config.Load(ctx, "agrod.yaml")
//	if err != nil {
//	    return err
//	}
//	return api.Serve(ctx, cfg)
package api
