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
	"sort"

	cnserrors "github.com/agro24/agrod/pkg/errors"
)

// ClassProbability is the probability of one class.
type ClassProbability struct {
	Class       string
	Probability float64
}

// Distribution is a full class distribution in class index order.
type Distribution []ClassProbability

// Prediction is one ranked crop.
type Prediction struct {
	Crop        string  `json:"crop" yaml:"crop"`
	Probability float64 `json:"probability" yaml:"probability"`
}

// RankTopN returns the n most probable classes of dist, most probable first.
// Equal probabilities keep their class index order. When n exceeds the
// number of classes every class is returned.
func RankTopN(dist Distribution, n int) ([]Prediction, error) {
	if n <= 0 {
		return nil, cnserrors.NewWithContext(cnserrors.ErrCodeInvalidRequest,
			"top-N must be a positive integer", map[string]any{"n": n})
	}

	ranked := make(Distribution, len(dist))
	copy(ranked, dist)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Probability > ranked[j].Probability
	})

	if n > len(ranked) {
		n = len(ranked)
	}

	out := make([]Prediction, n)
	for i := range out {
		out[i] = Prediction{Crop: ranked[i].Class, Probability: ranked[i].Probability}
	}
	return out, nil
}
