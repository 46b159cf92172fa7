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
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	cropPredictions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "agrod_crop_predictions_total",
			Help: "Total number of crop recommendations by top-ranked crop",
		},
		[]string{"crop"},
	)

	holdoutAccuracy = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "agrod_crop_model_holdout_accuracy",
			Help: "Accuracy of the crop classifier on the held-out split at startup",
		},
	)
)

// RecordReport exports the training report.
func RecordReport(r Report) {
	if r.TestSize > 0 {
		holdoutAccuracy.Set(r.Accuracy)
	}
}
