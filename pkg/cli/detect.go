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

package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"

	"github.com/agro24/agrod/pkg/api"
)

func detectCmd() *cli.Command {
	return &cli.Command{
		Name:                  "detect",
		EnableShellCompletion: true,
		Usage:                 "Classify a leaf image against the disease model.",
		Description: `Sends a PNG or JPEG image through the same preprocessing and remote
inference as POST /detect_disease and prints the predicted label.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "image",
				Aliases:  []string{"i"},
				Usage:    "Path to a PNG or JPEG image",
				Required: true,
			},
			&cli.StringFlag{
				Name:    "endpoint",
				Usage:   "Inference endpoint (overrides config)",
				Sources: cli.EnvVars("AGROD_DISEASE_ENDPOINT"),
			},
			outputFlag,
			formatFlag,
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if _, err := parseOutputFormat(cmd); err != nil {
				return err
			}

			cfg, err := loadConfig(ctx, cmd)
			if err != nil {
				return err
			}
			if cmd.IsSet("endpoint") {
				cfg.Disease.Endpoint = cmd.String("endpoint")
			}

			path := cmd.String("image")
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("failed to read image %s: %w", path, err)
			}

			clf, err := api.NewDiseaseClassifier(ctx, cfg.Disease, false)
			if err != nil {
				return err
			}

			pred, err := clf.Classify(ctx, filepath.Base(path), data)
			if err != nil {
				return err
			}

			return writeOutput(ctx, cmd, pred)
		},
	}
}
