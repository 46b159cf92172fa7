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
	"errors"
	"image/color"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cnserrors "github.com/agro24/agrod/pkg/errors"
)

type fakeModel struct {
	logits []float32
	err    error
	calls  int
	shape  []int
}

func (f *fakeModel) Infer(_ context.Context, input Tensor) ([]float32, error) {
	f.calls++
	f.shape = input.Shape
	return f.logits, f.err
}

func newTestClassifier(t *testing.T, m Model) *Classifier {
	t.Helper()
	c, err := NewClassifier(m, Labels{0: "Healthy", 1: "Leaf Rust"}, DefaultPreprocessConfig())
	require.NoError(t, err)
	return c
}

func TestNewClassifier_Validation(t *testing.T) {
	_, err := NewClassifier(nil, nil, DefaultPreprocessConfig())
	assert.Error(t, err)

	bad := DefaultPreprocessConfig()
	bad.CropSize = 0
	_, err = NewClassifier(&fakeModel{}, nil, bad)
	assert.Error(t, err)
}

func TestClassify(t *testing.T) {
	m := &fakeModel{logits: []float32{0.5, 3.0, -2}}
	c := newTestClassifier(t, m)

	data := encodePNG(t, solidImage(50, 80, color.NRGBA{R: 20, G: 160, B: 30, A: 128}))
	pred, err := c.Classify(context.Background(), "leaf.PNG", data)
	require.NoError(t, err)

	assert.Equal(t, "Leaf Rust", pred.Label)
	want := math.Exp(3.0) / (math.Exp(0.5) + math.Exp(3.0) + math.Exp(-2))
	assert.InDelta(t, want, pred.Confidence, 1e-6)
	assert.Equal(t, []int{1, 3, 224, 224}, m.shape)
}

func TestClassify_UnmappedLabel(t *testing.T) {
	c := newTestClassifier(t, &fakeModel{logits: []float32{0, 0, 9}})

	pred, err := c.Classify(context.Background(), "leaf.jpg",
		encodeJPEG(t, solidImage(8, 8, color.NRGBA{A: 255})))
	require.NoError(t, err)
	assert.Equal(t, "LABEL_2", pred.Label)
}

func TestClassify_Errors(t *testing.T) {
	png := encodePNG(t, solidImage(4, 4, color.NRGBA{A: 255}))

	tests := []struct {
		name      string
		model     *fakeModel
		filename  string
		data      []byte
		wantCode  cnserrors.ErrorCode
		wantCalls int
	}{
		{
			name:     "extension rejected before decode",
			model:    &fakeModel{},
			filename: "leaf.gif",
			data:     png,
			wantCode: cnserrors.ErrCodeUnsupportedFormat,
		},
		{
			name:     "mislabeled content fails at decode",
			model:    &fakeModel{},
			filename: "leaf.png",
			data:     []byte("GIF89a"),
			wantCode: cnserrors.ErrCodeInvalidImage,
		},
		{
			name:      "model failure",
			model:     &fakeModel{err: errors.New("connection refused")},
			filename:  "leaf.png",
			data:      png,
			wantCode:  cnserrors.ErrCodeInference,
			wantCalls: 1,
		},
		{
			name:      "no logits",
			model:     &fakeModel{},
			filename:  "leaf.png",
			data:      png,
			wantCode:  cnserrors.ErrCodeInference,
			wantCalls: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClassifier(t, tt.model)
			_, err := c.Classify(context.Background(), tt.filename, tt.data)
			require.Error(t, err)
			assert.Equal(t, tt.wantCode, cnserrors.CodeOf(err))
			assert.Equal(t, tt.wantCalls, tt.model.calls)
		})
	}
}

func TestSoftmaxArgmax(t *testing.T) {
	p := Softmax([]float32{1000, 1000, 999})
	var sum float64
	for _, v := range p {
		assert.False(t, math.IsNaN(v))
		sum += v
	}
	assert.InDelta(t, 1.0, sum, 1e-12)

	idx, best := Argmax(p)
	assert.Equal(t, 0, idx, "first index wins ties")
	assert.InDelta(t, p[0], best, 1e-12)

	assert.Nil(t, Softmax(nil))
	idx, _ = Argmax(nil)
	assert.Equal(t, -1, idx)
}
