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
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/agro24/agrod/pkg/serializer"
)

// Labels maps class indices to names.
type Labels map[int]string

// Label returns the name of class i, or LABEL_<i> when unmapped.
func (l Labels) Label(i int) string {
	if name, ok := l[i]; ok {
		return name
	}
	return fmt.Sprintf("LABEL_%d", i)
}

// modelConfig is the subset of a Hugging Face config.json used here.
type modelConfig struct {
	ID2Label map[string]string `json:"id2label"`
}

// ParseLabels reads the id2label map of a model config.
func ParseLabels(data []byte) (Labels, error) {
	var cfg modelConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse model config: %w", err)
	}

	labels := make(Labels, len(cfg.ID2Label))
	for k, v := range cfg.ID2Label {
		i, err := strconv.Atoi(k)
		if err != nil || i < 0 {
			return nil, fmt.Errorf("invalid class index %q in id2label", k)
		}
		labels[i] = v
	}
	return labels, nil
}

// LoadLabels reads labels from a local config.json or URL. An empty source
// yields no labels, so every class falls back to LABEL_<i>.
func LoadLabels(ctx context.Context, source string) (Labels, error) {
	if source == "" {
		slog.Warn("no disease label source configured, using generic labels")
		return Labels{}, nil
	}

	data, err := serializer.ReadSource(ctx, source)
	if err != nil {
		return nil, fmt.Errorf("failed to read labels from %s: %w", source, err)
	}

	labels, err := ParseLabels(data)
	if err != nil {
		return nil, err
	}

	slog.Info("disease labels loaded", "source", source, "count", len(labels))
	return labels, nil
}
