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

package disease

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	cnserrors "github.com/agro24/agrod/pkg/errors"
)

// MsgInferenceFailed is returned to clients when the model call fails. The
// cause is logged, not echoed, since it names the model endpoint.
const MsgInferenceFailed = "inference failed"

// Prediction is the most probable disease class.
type Prediction struct {
	Label      string  `json:"disease" yaml:"disease"`
	Confidence float64 `json:"confidence" yaml:"confidence"`
}

// Classifier runs the validation, preprocessing and inference pipeline.
// It holds no mutable state and is safe for concurrent use.
type Classifier struct {
	model  Model
	labels Labels
	pre    PreprocessConfig
}

// NewClassifier creates a Classifier.
func NewClassifier(model Model, labels Labels, pre PreprocessConfig) (*Classifier, error) {
	if model == nil {
		return nil, fmt.Errorf("model is required")
	}
	if err := pre.Validate(); err != nil {
		return nil, fmt.Errorf("invalid preprocess config: %w", err)
	}
	if labels == nil {
		labels = Labels{}
	}
	return &Classifier{model: model, labels: labels, pre: pre}, nil
}

// Classify validates filename and data, then returns the argmax class with
// its softmax probability.
func (c *Classifier) Classify(ctx context.Context, filename string, data []byte) (Prediction, error) {
	if err := CheckExtension(filename); err != nil {
		return Prediction{}, err
	}

	img, err := Decode(data)
	if err != nil {
		return Prediction{}, err
	}

	tensor, err := Preprocess(FlattenRGB(img), c.pre)
	if err != nil {
		return Prediction{}, err
	}

	start := time.Now()
	logits, err := c.model.Infer(ctx, tensor)
	inferenceDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		inferenceErrors.Inc()
		slog.Error("model inference failed", "error", err)
		return Prediction{}, cnserrors.Wrap(cnserrors.ErrCodeInference, MsgInferenceFailed, err)
	}

	idx, p := Argmax(Softmax(logits))
	if idx < 0 {
		inferenceErrors.Inc()
		return Prediction{}, cnserrors.New(cnserrors.ErrCodeInference, "inference returned no logits")
	}

	pred := Prediction{Label: c.labels.Label(idx), Confidence: p}
	slog.Debug("disease classified",
		"filename", filename,
		"label", pred.Label,
		"confidence", pred.Confidence,
	)
	return pred, nil
}

// Softmax converts logits to probabilities.
func Softmax(logits []float32) []float64 {
	if len(logits) == 0 {
		return nil
	}
	maxv := math.Inf(-1)
	for _, v := range logits {
		maxv = math.Max(maxv, float64(v))
	}

	out := make([]float64, len(logits))
	var sum float64
	for i, v := range logits {
		out[i] = math.Exp(float64(v) - maxv)
		sum += out[i]
	}
	for i := range out {
		out[i] /= sum
	}
	return out
}

// Argmax returns the index and value of the largest element; the first wins
// on ties. It returns -1 for an empty slice.
func Argmax(p []float64) (int, float64) {
	idx, best := -1, math.Inf(-1)
	for i, v := range p {
		if v > best {
			idx, best = i, v
		}
	}
	if idx < 0 {
		return -1, 0
	}
	return idx, best
}
