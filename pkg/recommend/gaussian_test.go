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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agro24/agrod/pkg/dataset"
)

// centroids are well separated soil/climate profiles.
var centroids = map[string]dataset.Features{
	"rice":        {80, 48, 40, 23.7, 82.3, 6.4, 236.2},
	"maize":       {77, 48, 20, 22.4, 65.1, 6.2, 84.8},
	"chickpea":    {40, 68, 80, 18.9, 16.9, 7.3, 80.1},
	"kidneybeans": {21, 67, 20, 20.1, 21.6, 5.7, 105.9},
	"banana":      {100, 82, 50, 27.4, 80.4, 6.0, 104.6},
	"cotton":      {118, 46, 20, 24.0, 79.8, 6.9, 80.4},
}

// syntheticRecords returns perClass samples around each centroid with a
// deterministic spread.
func syntheticRecords(perClass int) []dataset.CropRecord {
	var out []dataset.CropRecord
	for label, c := range centroids {
		for i := 0; i < perClass; i++ {
			var f dataset.Features
			for j := range f {
				// spread of about 2% of the value
				offset := math.Sin(float64(i*7+j*3)) * 0.02 * c[j]
				f[j] = c[j] + offset
			}
			out = append(out, dataset.CropRecord{Features: f, Label: label})
		}
	}
	return out
}

func TestFit_ClassesSorted(t *testing.T) {
	m, err := Fit(syntheticRecords(5))
	require.NoError(t, err)

	assert.Equal(t, []string{"banana", "chickpea", "cotton", "kidneybeans", "maize", "rice"}, m.Classes())
}

func TestFit_Empty(t *testing.T) {
	_, err := Fit(nil)
	assert.Error(t, err)
}

func TestGaussianNB_PredictProba(t *testing.T) {
	m, err := Fit(syntheticRecords(20))
	require.NoError(t, err)

	for label, c := range centroids {
		t.Run(label, func(t *testing.T) {
			d, err := m.PredictProba(c)
			require.NoError(t, err)
			require.Len(t, d, len(centroids))

			var sum float64
			for _, cp := range d {
				assert.GreaterOrEqual(t, cp.Probability, 0.0)
				sum += cp.Probability
			}
			assert.InDelta(t, 1.0, sum, 1e-9)

			top, err := RankTopN(d, 1)
			require.NoError(t, err)
			assert.Equal(t, label, top[0].Crop)
		})
	}
}

func TestGaussianNB_PredictProbaRejectsNonFinite(t *testing.T) {
	m, err := Fit(syntheticRecords(3))
	require.NoError(t, err)

	x := centroids["rice"]
	x[2] = math.NaN()
	_, err = m.PredictProba(x)
	assert.Error(t, err)
}

func TestGaussianNB_PredictProbaRejectsOverflow(t *testing.T) {
	m, err := Fit(syntheticRecords(3))
	require.NoError(t, err)

	x := centroids["rice"]
	x[0] = 1e200
	dist, err := m.PredictProba(x)
	require.Error(t, err)
	assert.Nil(t, dist)
}

func TestGaussianNB_ConstantFeatures(t *testing.T) {
	recs := []dataset.CropRecord{
		{Features: dataset.Features{1, 1, 1, 1, 1, 1, 1}, Label: "a"},
		{Features: dataset.Features{1, 1, 1, 1, 1, 1, 1}, Label: "b"},
	}
	m, err := Fit(recs)
	require.NoError(t, err)

	d, err := m.PredictProba(dataset.Features{1, 1, 1, 1, 1, 1, 1})
	require.NoError(t, err)
	assert.InDelta(t, 0.5, d[0].Probability, 1e-9)
	assert.InDelta(t, 0.5, d[1].Probability, 1e-9)
}

func TestTrain_Holdout(t *testing.T) {
	recs := syntheticRecords(20)

	m, report, err := Train(recs, WithHoldout(0.3), WithSeed(0))
	require.NoError(t, err)

	assert.Equal(t, len(recs), report.Samples)
	assert.Equal(t, 36, report.TestSize)
	assert.Equal(t, 84, report.TrainSize)
	assert.GreaterOrEqual(t, report.Accuracy, 0.95)
	assert.Equal(t, len(m.Classes()), report.Classes)

	// same seed, same split
	_, again, err := Train(recs, WithHoldout(0.3), WithSeed(0))
	require.NoError(t, err)
	assert.Equal(t, report, again)
}

func TestTrain_NoHoldout(t *testing.T) {
	recs := syntheticRecords(2)

	_, report, err := Train(recs, WithHoldout(0))
	require.NoError(t, err)
	assert.Equal(t, len(recs), report.TrainSize)
	assert.Zero(t, report.TestSize)
	assert.True(t, math.IsNaN(report.Accuracy))
}

func TestTrain_InvalidHoldout(t *testing.T) {
	for _, h := range []float64{-0.1, 1, 2} {
		t.Run(fmt.Sprint(h), func(t *testing.T) {
			_, _, err := Train(syntheticRecords(2), WithHoldout(h))
			assert.Error(t, err)
		})
	}
}
