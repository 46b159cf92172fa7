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

package recommend

import (
	"fmt"
	"math"
	"math/rand/v2"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/agro24/agrod/pkg/dataset"
	"github.com/agro24/agrod/pkg/defaults"
)

// varSmoothing is the share of the largest feature variance added to every
// class variance for stability.
const varSmoothing = 1e-9

// Classifier produces a class distribution for a feature vector.
type Classifier interface {
	// Classes returns class labels in index order.
	Classes() []string
	// PredictProba returns one probability per class, in index order.
	PredictProba(x dataset.Features) (Distribution, error)
}

// GaussianNB is a Gaussian naive Bayes classifier. It is immutable once
// trained and safe for concurrent use.
type GaussianNB struct {
	classes  []string
	logPrior []float64
	mean     [][dataset.NumFeatures]float64
	variance [][dataset.NumFeatures]float64
}

// Report summarizes a training run.
type Report struct {
	Samples   int     `json:"samples" yaml:"samples"`
	TrainSize int     `json:"trainSize" yaml:"trainSize"`
	TestSize  int     `json:"testSize" yaml:"testSize"`
	Classes   int     `json:"classes" yaml:"classes"`
	Accuracy  float64 `json:"accuracy" yaml:"accuracy"`
}

// TrainOption configures training.
type TrainOption func(*trainConfig)

type trainConfig struct {
	holdout float64
	seed    uint64
}

// WithHoldout sets the share of records held out for accuracy. Zero trains
// on every record and skips evaluation.
func WithHoldout(fraction float64) TrainOption {
	return func(c *trainConfig) {
		c.holdout = fraction
	}
}

// WithSeed sets the shuffle seed of the holdout split.
func WithSeed(seed uint64) TrainOption {
	return func(c *trainConfig) {
		c.seed = seed
	}
}

// Train shuffles records with a fixed seed, holds out a share for
// evaluation, and fits a GaussianNB on the remainder.
func Train(records []dataset.CropRecord, opts ...TrainOption) (*GaussianNB, Report, error) {
	cfg := trainConfig{
		holdout: defaults.HoldoutFraction,
		seed:    defaults.SplitSeed,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.holdout < 0 || cfg.holdout >= 1 {
		return nil, Report{}, fmt.Errorf("holdout fraction must be in [0, 1), got %v", cfg.holdout)
	}

	report := Report{Samples: len(records)}

	shuffled := make([]dataset.CropRecord, len(records))
	copy(shuffled, records)
	rng := rand.New(rand.NewPCG(cfg.seed, cfg.seed))
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	testSize := int(math.Ceil(float64(len(shuffled)) * cfg.holdout))
	if testSize >= len(shuffled) {
		testSize = 0
	}
	test, train := shuffled[:testSize], shuffled[testSize:]

	model, err := Fit(train)
	if err != nil {
		return nil, report, err
	}

	report.TrainSize = len(train)
	report.TestSize = len(test)
	report.Classes = len(model.classes)
	report.Accuracy = math.NaN()
	if len(test) > 0 {
		report.Accuracy = model.Accuracy(test)
	}
	return model, report, nil
}

// Fit estimates per-class priors, means and variances from records.
func Fit(records []dataset.CropRecord) (*GaussianNB, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("no training records")
	}

	byClass := make(map[string][]dataset.Features)
	for _, r := range records {
		byClass[r.Label] = append(byClass[r.Label], r.Features)
	}

	m := &GaussianNB{classes: make([]string, 0, len(byClass))}
	for c := range byClass {
		m.classes = append(m.classes, c)
	}
	sort.Strings(m.classes)

	col := make([]float64, len(records))
	var maxVar float64
	for j := 0; j < dataset.NumFeatures; j++ {
		for i, r := range records {
			col[i] = r.Features[j]
		}
		maxVar = math.Max(maxVar, stat.PopVariance(col, nil))
	}
	epsilon := varSmoothing * maxVar
	if epsilon == 0 {
		epsilon = varSmoothing
	}

	total := float64(len(records))
	m.logPrior = make([]float64, len(m.classes))
	m.mean = make([][dataset.NumFeatures]float64, len(m.classes))
	m.variance = make([][dataset.NumFeatures]float64, len(m.classes))

	for ci, c := range m.classes {
		rows := byClass[c]
		m.logPrior[ci] = math.Log(float64(len(rows)) / total)

		xs := make([]float64, len(rows))
		for j := 0; j < dataset.NumFeatures; j++ {
			for i, f := range rows {
				xs[i] = f[j]
			}
			mean, variance := stat.PopMeanVariance(xs, nil)
			m.mean[ci][j] = mean
			m.variance[ci][j] = variance + epsilon
		}
	}

	return m, nil
}

// Classes returns class labels in index order.
func (m *GaussianNB) Classes() []string {
	out := make([]string, len(m.classes))
	copy(out, m.classes)
	return out
}

// PredictProba returns the posterior of every class.
func (m *GaussianNB) PredictProba(x dataset.Features) (Distribution, error) {
	for j, v := range x {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("feature %s is not finite", dataset.FeatureNames[j])
		}
	}

	jll := make([]float64, len(m.classes))
	for ci := range m.classes {
		ll := m.logPrior[ci]
		for j := 0; j < dataset.NumFeatures; j++ {
			v := m.variance[ci][j]
			d := x[j] - m.mean[ci][j]
			ll -= 0.5 * (math.Log(2*math.Pi*v) + d*d/v)
		}
		// -Inf is a zero posterior for this class and is kept.
		if math.IsNaN(ll) || math.IsInf(ll, 1) {
			return nil, fmt.Errorf("features are out of range for class %s", m.classes[ci])
		}
		jll[ci] = ll
	}

	norm := floats.LogSumExp(jll)
	if math.IsNaN(norm) || math.IsInf(norm, 0) {
		return nil, fmt.Errorf("features are out of range for every class")
	}
	dist := make(Distribution, len(m.classes))
	for ci, c := range m.classes {
		dist[ci] = ClassProbability{Class: c, Probability: math.Exp(jll[ci] - norm)}
	}
	return dist, nil
}

// Accuracy returns the share of records whose most probable class matches
// the label.
func (m *GaussianNB) Accuracy(records []dataset.CropRecord) float64 {
	if len(records) == 0 {
		return math.NaN()
	}
	var hits int
	for _, r := range records {
		dist, err := m.PredictProba(r.Features)
		if err != nil {
			continue
		}
		top, err := RankTopN(dist, 1)
		if err == nil && len(top) == 1 && top[0].Crop == r.Label {
			hits++
		}
	}
	return float64(hits) / float64(len(records))
}
