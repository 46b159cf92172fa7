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

// Package cli implements the agrod command-line interface.
//
// # Commands
//
// serve - Start the HTTP API (default when no command is given):
//
//	agrod serve [--config agrod.yaml] [--address 0.0.0.0] [--port 8080]
//
// recommend - Rank crops for one measurement:
//
//	agrod recommend --n 90 --p 42 --k 43 --temperature 20.8 --humidity 82 --ph 6.5 --rainfall 202.9 [--top 3]
//
// states, districts, crops - Browse the production dataset:
//
//	agrod districts --state Chhattisgarh
//	agrod crops --state Chhattisgarh --city Durg
//
// insights, prices - Print a yearly series:
//
//	agrod insights -s Chhattisgarh -d Durg --crop "RICE PRODUCTION (1000 tons)"
//	agrod prices -s Chhattisgarh -d Durg --crop "RICE HARVEST PRICE (Rs per Quintal)"
//
// detect - Classify a leaf image with the remote disease model:
//
//	agrod detect --image leaf.jpg [--endpoint http://localhost:8081]
//
// # Global Flags
//
//	--config, -c   Config file path or URL (env AGROD_CONFIG)
//	--log-level    Logging verbosity (env LOG_LEVEL)
//
// Query commands also accept --output/-o and --format/-t (json, yaml, table).
//
// Version information is embedded at build time using ldflags:
//
//	go build -ldflags="-X 'github.com/agro24/agrod/pkg/cli.version=1.0.0'"
package cli
