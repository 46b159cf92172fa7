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

package main

import (
	"context"
	"log"
	"os"

	"github.com/agro24/agrod/pkg/api"
	"github.com/agro24/agrod/pkg/config"
	"github.com/agro24/agrod/pkg/logging"
)

func main() {
	logging.SetDefaultStructuredLogger("agrodd", api.Version())

	ctx := context.Background()
	cfg, err := config.Load(ctx, os.Getenv("AGROD_CONFIG"))
	if err != nil {
		log.Fatal(err)
	}

	if err := api.Serve(ctx, cfg); err != nil {
		log.Fatal(err)
	}
}
