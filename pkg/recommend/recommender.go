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
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/agro24/agrod/pkg/dataset"
	"github.com/agro24/agrod/pkg/defaults"
	cnserrors "github.com/agro24/agrod/pkg/errors"
	"github.com/agro24/agrod/pkg/serializer"
	"github.com/agro24/agrod/pkg/server"
)

// QueryParams are the /crop_recommendation parameters in feature order.
var QueryParams = [dataset.NumFeatures]string{"n", "p", "k", "temperature", "humidity", "ph", "rainfall"}

// Recommender binds a classifier to a fixed result size.
type Recommender struct {
	clf  Classifier
	topN int
}

// NewRecommender creates a Recommender. A non-positive topN uses the default.
func NewRecommender(clf Classifier, topN int) *Recommender {
	if topN <= 0 {
		topN = defaults.TopCrops
	}
	return &Recommender{clf: clf, topN: topN}
}

// TopN returns the configured result size.
func (rc *Recommender) TopN() int { return rc.topN }

// Recommend returns the top crops for x.
func (rc *Recommender) Recommend(x dataset.Features) ([]Prediction, error) {
	return rc.RecommendN(x, rc.topN)
}

// RecommendN returns the n most probable crops for x.
func (rc *Recommender) RecommendN(x dataset.Features, n int) ([]Prediction, error) {
	dist, err := rc.clf.PredictProba(x)
	if err != nil {
		return nil, cnserrors.Wrap(cnserrors.ErrCodeInference, err.Error(), err)
	}
	for _, p := range dist {
		if math.IsNaN(p.Probability) || math.IsInf(p.Probability, 0) {
			return nil, cnserrors.NewWithContext(cnserrors.ErrCodeInference,
				"classifier returned a non-finite probability", map[string]any{"crop": p.Class})
		}
	}

	top, err := RankTopN(dist, n)
	if err != nil {
		return nil, err
	}
	if len(top) > 0 {
		cropPredictions.WithLabelValues(top[0].Crop).Inc()
	}
	return top, nil
}

// ParseFeatures reads the feature vector from query values. A missing or
// non-numeric parameter is an INVALID_REQUEST error naming the parameter.
func ParseFeatures(get func(string) string) (dataset.Features, error) {
	var x dataset.Features
	for i, name := range QueryParams {
		raw := strings.TrimSpace(get(name))
		if raw == "" {
			return x, cnserrors.New(cnserrors.ErrCodeInvalidRequest,
				fmt.Sprintf("missing parameter: %s", name))
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return x, cnserrors.Wrap(cnserrors.ErrCodeInvalidRequest,
				fmt.Sprintf("could not convert %s to float: %q", name, raw), err)
		}
		x[i] = v
	}
	return x, nil
}

// HandleCropRecommendation serves GET /crop_recommendation. Every failure,
// including a malformed parameter, is reported as 500 with the failure text.
func (rc *Recommender) HandleCropRecommendation(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	x, err := ParseFeatures(q.Get)
	if err != nil {
		var se *cnserrors.StructuredError
		msg := err.Error()
		if errors.As(err, &se) {
			msg = se.Message
		}
		server.WriteError(w, r, http.StatusInternalServerError, cnserrors.CodeOf(err), msg)
		return
	}

	slog.Debug("crop recommendation",
		"requestID", server.RequestID(r.Context()),
		"features", x,
	)

	top, err := rc.Recommend(x)
	if err != nil {
		server.WriteErrorFromErr(w, r, err, "Prediction failed")
		return
	}

	serializer.RespondJSON(w, http.StatusOK, top)
}
