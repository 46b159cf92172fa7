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

	"github.com/urfave/cli/v3"

	"github.com/agro24/agrod/pkg/api"
	"github.com/agro24/agrod/pkg/dataset"
	"github.com/agro24/agrod/pkg/recommend"
)

func recommendCmd() *cli.Command {
	flags := make([]cli.Flag, 0, len(recommend.QueryParams)+3)
	for _, p := range recommend.QueryParams {
		flags = append(flags, &cli.FloatFlag{
			Name:     p,
			Usage:    fmt.Sprintf("Measured %s", p),
			Required: true,
		})
	}
	flags = append(flags,
		&cli.IntFlag{
			Name:  "top",
			Usage: "Number of crops to return (default: config recommend.topN)",
		},
		outputFlag,
		formatFlag,
	)

	return &cli.Command{
		Name:                  "recommend",
		EnableShellCompletion: true,
		Usage:                 "Rank crops for a soil and climate measurement.",
		Description: `Trains the crop model from the configured dataset and prints the most
likely crops for the given measurement, highest probability first.

Example:

  agrod recommend --n 90 --p 42 --k 43 --temperature 20.8 \
    --humidity 82 --ph 6.5 --rainfall 202.9`,
		Flags: flags,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if _, err := parseOutputFormat(cmd); err != nil {
				return err
			}

			cfg, err := loadConfig(ctx, cmd)
			if err != nil {
				return err
			}

			var x dataset.Features
			for i, p := range recommend.QueryParams {
				x[i] = cmd.Float(p)
			}

			crops, err := dataset.LoadCropRecords(ctx, cfg.Data.Crops)
			if err != nil {
				return fmt.Errorf("failed to load crop dataset: %w", err)
			}

			rc, err := api.NewRecommender(cfg.Recommend, crops)
			if err != nil {
				return err
			}

			n := rc.TopN()
			if cmd.IsSet("top") {
				n = int(cmd.Int("top"))
			}

			preds, err := rc.RecommendN(x, n)
			if err != nil {
				return err
			}

			return writeOutput(ctx, cmd, preds)
		},
	}
}
