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

package dataset

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/agro24/agrod/pkg/defaults"
)

// Sources names where each dataset is read from.
type Sources struct {
	Crops      string `json:"crops" yaml:"crops"`
	Production string `json:"production" yaml:"production"`
	Prices     string `json:"prices" yaml:"prices"`
}

// Validate checks that every source is set.
func (s Sources) Validate() error {
	switch {
	case s.Crops == "":
		return fmt.Errorf("data.crops is required")
	case s.Production == "":
		return fmt.Errorf("data.production is required")
	case s.Prices == "":
		return fmt.Errorf("data.prices is required")
	}
	return nil
}

// Store is the full set of read-only tables.
type Store struct {
	Crops      []CropRecord
	Production *Table
	Prices     *Table
}

// Load reads all sources in parallel. Any failure fails the whole load.
func Load(ctx context.Context, src Sources) (*Store, error) {
	if err := src.Validate(); err != nil {
		return nil, err
	}

	s := &Store{}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		recs, err := LoadCropRecords(gctx, src.Crops)
		s.Crops = recs
		return err
	})
	g.Go(func() error {
		t, err := LoadTable(gctx, "production", src.Production)
		s.Production = t
		return err
	})
	g.Go(func() error {
		t, err := LoadTable(gctx, "prices", src.Prices, WithSentinel(defaults.PriceSentinel))
		s.Prices = t
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return s, nil
}
