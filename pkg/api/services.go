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
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/agro24/agrod/pkg/config"
	"github.com/agro24/agrod/pkg/dataset"
	"github.com/agro24/agrod/pkg/defaults"
	"github.com/agro24/agrod/pkg/disease"
	"github.com/agro24/agrod/pkg/market"
	"github.com/agro24/agrod/pkg/recommend"
)

// Services are the immutable objects shared by every request.
type Services struct {
	Market      *market.Engine
	Recommender *recommend.Recommender
	Disease     *disease.Classifier
}

// Bootstrap builds every service in parallel. Any failure aborts the whole
// startup; no partial Services is returned.
func Bootstrap(ctx context.Context, cfg *config.Config) (*Services, error) {
	ctx, cancel := context.WithTimeout(ctx, defaults.StartupTimeout)
	defer cancel()

	start := time.Now()
	s := &Services{}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		store, err := dataset.Load(gctx, cfg.Data)
		if err != nil {
			return fmt.Errorf("failed to load datasets: %w", err)
		}
		s.Market = market.NewEngine(store.Production, store.Prices)

		rc, err := NewRecommender(cfg.Recommend, store.Crops)
		if err != nil {
			return err
		}
		s.Recommender = rc
		return nil
	})

	g.Go(func() error {
		c, err := NewDiseaseClassifier(gctx, cfg.Disease, true)
		if err != nil {
			return err
		}
		s.Disease = c
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	slog.Info("services ready", "duration", time.Since(start).String())
	return s, nil
}

// NewRecommender trains the crop classifier and reports holdout accuracy.
func NewRecommender(cfg config.Recommend, crops []dataset.CropRecord) (*recommend.Recommender, error) {
	model, report, err := recommend.Train(crops,
		recommend.WithHoldout(cfg.Holdout),
		recommend.WithSeed(cfg.Seed),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to train crop classifier: %w", err)
	}

	recommend.RecordReport(report)
	slog.Info("crop classifier trained",
		"samples", report.Samples,
		"train", report.TrainSize,
		"test", report.TestSize,
		"classes", report.Classes,
		"accuracy", report.Accuracy,
	)

	return recommend.NewRecommender(model, cfg.TopN), nil
}

// NewDiseaseClassifier loads labels and connects to the model server. When
// waitReady is set the model must report ready within defaults.ModelReadyTimeout.
func NewDiseaseClassifier(ctx context.Context, cfg config.Disease, waitReady bool) (*disease.Classifier, error) {
	model, err := disease.NewRemoteModel(cfg.Endpoint, cfg.Model,
		disease.WithInputName(cfg.InputName),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to configure disease model: %w", err)
	}

	var labels disease.Labels
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var lerr error
		labels, lerr = disease.LoadLabels(gctx, cfg.Labels)
		return lerr
	})
	if waitReady {
		g.Go(func() error {
			pctx, cancel := context.WithTimeout(gctx, defaults.ModelReadyTimeout)
			defer cancel()
			return model.Ready(pctx)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to initialize disease classifier: %w", err)
	}

	return disease.NewClassifier(model, labels, cfg.Image)
}
