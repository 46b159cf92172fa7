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

package dataset

import (
	"fmt"
	"strings"

	"github.com/agro24/agrod/pkg/defaults"
)

// FeatureNames are the crop recommendation inputs in model order.
var FeatureNames = []string{"N", "P", "K", "temperature", "humidity", "ph", "rainfall"}

// NumFeatures is the length of a feature vector.
const NumFeatures = 7

// Features is a soil/climate measurement vector ordered as FeatureNames.
type Features [NumFeatures]float64

// CropRecord is one labeled training sample.
type CropRecord struct {
	Features Features
	Label    string
}

// NewCropRecords parses labeled feature rows. Every feature column and the
// label column must be present; every feature cell must be numeric.
func NewCropRecords(header []string, records [][]string) ([]CropRecord, error) {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))] = i
	}

	var cols [NumFeatures]int
	for i, name := range FeatureNames {
		c, ok := idx[name]
		if !ok {
			return nil, fmt.Errorf("crop records: missing column %q", name)
		}
		cols[i] = c
	}
	li, ok := idx[defaults.LabelColumn]
	if !ok {
		return nil, fmt.Errorf("crop records: missing column %q", defaults.LabelColumn)
	}

	out := make([]CropRecord, 0, len(records))
	for n, rec := range records {
		if len(rec) == 0 {
			continue
		}
		var r CropRecord
		for i, c := range cols {
			v := ParseValue(cell(rec, c))
			if !v.Valid {
				return nil, fmt.Errorf("crop records: row %d: %s is not numeric", n+1, FeatureNames[i])
			}
			r.Features[i] = v.Num
		}
		r.Label = cell(rec, li)
		if r.Label == "" {
			return nil, fmt.Errorf("crop records: row %d: empty label", n+1)
		}
		out = append(out, r)
	}

	if len(out) == 0 {
		return nil, fmt.Errorf("crop records: no rows")
	}
	return out, nil
}
