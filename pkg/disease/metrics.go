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
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	inferenceDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "agrod_disease_inference_duration_seconds",
			Help:    "Latency of disease model inference calls in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	inferenceErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "agrod_disease_inference_errors_total",
			Help: "Total number of failed disease model inference calls",
		},
	)
)
