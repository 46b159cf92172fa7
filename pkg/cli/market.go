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

	"github.com/agro24/agrod/pkg/dataset"
	"github.com/agro24/agrod/pkg/defaults"
	"github.com/agro24/agrod/pkg/market"
)

var (
	stateFlag = &cli.StringFlag{
		Name:     "state",
		Aliases:  []string{"s"},
		Usage:    "State name as it appears in the dataset",
		Required: true,
	}

	cityFlag = &cli.StringFlag{
		Name:     "city",
		Aliases:  []string{"district", "d"},
		Usage:    "District name as it appears in the dataset",
		Required: true,
	}

	columnFlag = &cli.StringFlag{
		Name:     "crop",
		Usage:    "Metric column, e.g. \"RICE PRODUCTION (1000 tons)\"",
		Required: true,
	}
)

// loadEngine builds a market engine over the configured production table,
// and the price table when withPrices is set.
func loadEngine(ctx context.Context, cmd *cli.Command, withPrices bool) (*market.Engine, error) {
	cfg, err := loadConfig(ctx, cmd)
	if err != nil {
		return nil, err
	}

	if withPrices {
		prices, err := dataset.LoadTable(ctx, "prices", cfg.Data.Prices,
			dataset.WithSentinel(defaults.PriceSentinel))
		if err != nil {
			return nil, fmt.Errorf("failed to load price dataset: %w", err)
		}
		return market.NewEngine(nil, prices), nil
	}

	production, err := dataset.LoadTable(ctx, "production", cfg.Data.Production)
	if err != nil {
		return nil, fmt.Errorf("failed to load production dataset: %w", err)
	}
	return market.NewEngine(production, nil), nil
}

func statesCmd() *cli.Command {
	return &cli.Command{
		Name:                  "states",
		EnableShellCompletion: true,
		Usage:                 "List states in the production dataset.",
		Flags:                 []cli.Flag{outputFlag, formatFlag},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if _, err := parseOutputFormat(cmd); err != nil {
				return err
			}
			e, err := loadEngine(ctx, cmd, false)
			if err != nil {
				return err
			}
			states := e.States()
			if len(states) == 0 {
				return fmt.Errorf("no states available")
			}
			return writeOutput(ctx, cmd, states)
		},
	}
}

func districtsCmd() *cli.Command {
	return &cli.Command{
		Name:                  "districts",
		EnableShellCompletion: true,
		Usage:                 "List districts of a state.",
		Flags:                 []cli.Flag{stateFlag, outputFlag, formatFlag},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if _, err := parseOutputFormat(cmd); err != nil {
				return err
			}
			e, err := loadEngine(ctx, cmd, false)
			if err != nil {
				return err
			}
			state := cmd.String(stateFlag.Name)
			districts := e.Districts(state)
			if len(districts) == 0 {
				return fmt.Errorf("state not found: %s", state)
			}
			return writeOutput(ctx, cmd, districts)
		},
	}
}

func cropsCmd() *cli.Command {
	return &cli.Command{
		Name:                  "crops",
		EnableShellCompletion: true,
		Usage:                 "List the metric columns with data for a district.",
		Flags:                 []cli.Flag{stateFlag, cityFlag, outputFlag, formatFlag},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if _, err := parseOutputFormat(cmd); err != nil {
				return err
			}
			e, err := loadEngine(ctx, cmd, false)
			if err != nil {
				return err
			}
			state, district := cmd.String(stateFlag.Name), cmd.String(cityFlag.Name)
			metrics := e.AvailableMetrics(state, district)
			if len(metrics) == 0 {
				return fmt.Errorf("no crop data available for %s, %s", district, state)
			}
			return writeOutput(ctx, cmd, metrics)
		},
	}
}

func insightsCmd() *cli.Command {
	return &cli.Command{
		Name:                  "insights",
		EnableShellCompletion: true,
		Usage:                 "Print the yearly series of a production metric.",
		Flags:                 []cli.Flag{stateFlag, cityFlag, columnFlag, outputFlag, formatFlag},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if _, err := parseOutputFormat(cmd); err != nil {
				return err
			}
			e, err := loadEngine(ctx, cmd, false)
			if err != nil {
				return err
			}
			points, err := e.Insights(cmd.String(stateFlag.Name),
				cmd.String(cityFlag.Name), cmd.String(columnFlag.Name))
			if err != nil {
				return err
			}
			return writeOutput(ctx, cmd, points)
		},
	}
}

func pricesCmd() *cli.Command {
	return &cli.Command{
		Name:                  "prices",
		EnableShellCompletion: true,
		Usage:                 "Print the yearly price series of a crop.",
		Flags:                 []cli.Flag{stateFlag, cityFlag, columnFlag, outputFlag, formatFlag},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if _, err := parseOutputFormat(cmd); err != nil {
				return err
			}
			e, err := loadEngine(ctx, cmd, true)
			if err != nil {
				return err
			}
			points, err := e.ExtractPriceSeries(cmd.String(stateFlag.Name),
				cmd.String(cityFlag.Name), cmd.String(columnFlag.Name))
			if err != nil {
				return err
			}
			return writeOutput(ctx, cmd, points)
		},
	}
}
