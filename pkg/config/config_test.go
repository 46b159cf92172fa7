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

package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDefault_Valid(t *testing.T) {
	assert.NoError(t, Default().Validate())
}

func TestLoad_EmptyPath(t *testing.T) {
	cfg, err := Load(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_OverlaysDefaults(t *testing.T) {
	path := writeConfig(t, "agrod.yaml", `
server:
  port: 9000
data:
  production: https://data.example.com/ICRISAT.xlsx
recommend:
  holdout: 0
disease:
  endpoint: http://models:8080
  image:
    mean: [0.485, 0.456, 0.406]
    std: [0.229, 0.224, 0.225]
`)

	cfg, err := Load(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, []string{"*"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, "https://data.example.com/ICRISAT.xlsx", cfg.Data.Production)
	assert.Equal(t, "./models/Crop_recommendation.csv", cfg.Data.Crops)
	assert.Zero(t, cfg.Recommend.Holdout)
	assert.Equal(t, 5, cfg.Recommend.TopN)
	assert.Equal(t, "http://models:8080", cfg.Disease.Endpoint)
	assert.Equal(t, "plant-disease", cfg.Disease.Model)
	assert.Equal(t, 224, cfg.Disease.Image.CropSize)
	assert.InDelta(t, 0.229, cfg.Disease.Image.Std[0], 1e-6)
}

func TestLoad_JSON(t *testing.T) {
	path := writeConfig(t, "agrod.json", `{"recommend": {"topN": 3}}`)

	cfg, err := Load(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Recommend.TopN)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"unknown field", "server:\n  bogus: 1\n"},
		{"bad topN", "recommend:\n  topN: 0\n"},
		{"bad holdout", "recommend:\n  holdout: 1.5\n"},
		{"empty data source", "data:\n  prices: \"\"\n"},
		{"crop larger than edge", "disease:\n  image:\n    cropSize: 512\n"},
		{"negative rate", "server:\n  rateLimit: -1\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(context.Background(), writeConfig(t, "agrod.yaml", tt.content))
			assert.Error(t, err)
		})
	}

	_, err := Load(context.Background(), filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
