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

// Package recommend ranks crops for a soil and climate measurement.
//
// Ranking is split from inference. A Classifier turns dataset.Features into
// a Distribution, one probability per class in the classifier's class index
// order; RankTopN then orders that distribution without touching the model:
//
//	dist, err := clf.PredictProba(features)
//	top, err := recommend.RankTopN(dist, 5)
//
// RankTopN sorts by probability descending and keeps class index order for
// ties. It does not renormalize.
//
// GaussianNB is the built-in classifier. It is trained once at startup from
// the crop records; a seeded holdout split reports accuracy on unseen rows
// before the model starts serving.
package recommend
