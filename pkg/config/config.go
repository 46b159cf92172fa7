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

// Package config defines the agrod configuration file.
//
// The file is YAML (or JSON, by extension) with four sections:
//
//	server:
//	  address: ""
//	  port: 8080
//	  rateLimit: 0          # requests per second, 0 disables limiting
//	  rateLimitBurst: 0
//	  allowedOrigins: ["*"]
//	data:
//	  crops: ./models/Crop_recommendation.csv
//	  production: ./models/ICRISAT.csv
//	  prices: ./models/ICRISAT_PRIZE.csv
//	recommend:
//	  topN: 5
//	  holdout: 0.3
//	  seed: 0
//	disease:
//	  endpoint: http://localhost:8081
//	  model: plant-disease
//	  inputName: pixel_values
//	  labels: ./models/config.json
//	  image:
//	    shortestEdge: 256
//	    cropSize: 224
//	    mean: [0.5, 0.5, 0.5]
//	    std: [0.5, 0.5, 0.5]
//
// Fields left out of the file keep their defaults. Data sources and the
// label source may be local paths or HTTP(S) URLs.
package config

import (
	"context"
	"fmt"

	"github.com/agro24/agrod/pkg/dataset"
	"github.com/agro24/agrod/pkg/defaults"
	"github.com/agro24/agrod/pkg/disease"
	"github.com/agro24/agrod/pkg/serializer"
)

// Config is the root of the configuration file.
type Config struct {
	Server    Server          `json:"server" yaml:"server"`
	Data      dataset.Sources `json:"data" yaml:"data"`
	Recommend Recommend       `json:"recommend" yaml:"recommend"`
	Disease   Disease         `json:"disease" yaml:"disease"`
}

// Server configures the HTTP listener.
type Server struct {
	Address string `json:"address" yaml:"address"`
	// Port zero keeps the server default, which honors PORT.
	Port           int      `json:"port" yaml:"port"`
	RateLimit      float64  `json:"rateLimit" yaml:"rateLimit"`
	RateLimitBurst int      `json:"rateLimitBurst" yaml:"rateLimitBurst"`
	AllowedOrigins []string `json:"allowedOrigins" yaml:"allowedOrigins"`
}

// Recommend configures the crop classifier.
type Recommend struct {
	TopN    int     `json:"topN" yaml:"topN"`
	Holdout float64 `json:"holdout" yaml:"holdout"`
	Seed    uint64  `json:"seed" yaml:"seed"`
}

// Disease configures the remote image model.
type Disease struct {
	Endpoint  string                   `json:"endpoint" yaml:"endpoint"`
	Model     string                   `json:"model" yaml:"model"`
	InputName string                   `json:"inputName" yaml:"inputName"`
	Labels    string                   `json:"labels" yaml:"labels"`
	Image     disease.PreprocessConfig `json:"image" yaml:"image"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Server: Server{
			AllowedOrigins: []string{"*"},
		},
		Data: dataset.Sources{
			Crops:      "./models/Crop_recommendation.csv",
			Production: "./models/ICRISAT.csv",
			Prices:     "./models/ICRISAT_PRIZE.csv",
		},
		Recommend: Recommend{
			TopN:    defaults.TopCrops,
			Holdout: defaults.HoldoutFraction,
			Seed:    defaults.SplitSeed,
		},
		Disease: Disease{
			Endpoint:  "http://localhost:8081",
			Model:     "plant-disease",
			InputName: disease.DefaultInputName,
			Labels:    "./models/config.json",
			Image:     disease.DefaultPreprocessConfig(),
		},
	}
}

// Load reads path over the defaults. An empty path returns the defaults.
func Load(ctx context.Context, path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	if err := serializer.DecodeFile(ctx, path, cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks values that cannot be corrected at startup.
func (c *Config) Validate() error {
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", c.Server.Port)
	}
	if c.Server.RateLimit < 0 {
		return fmt.Errorf("server.rateLimit must not be negative")
	}
	if err := c.Data.Validate(); err != nil {
		return err
	}
	if c.Recommend.TopN <= 0 {
		return fmt.Errorf("recommend.topN must be positive")
	}
	if c.Recommend.Holdout < 0 || c.Recommend.Holdout >= 1 {
		return fmt.Errorf("recommend.holdout must be in [0, 1)")
	}
	if c.Disease.Endpoint == "" || c.Disease.Model == "" {
		return fmt.Errorf("disease.endpoint and disease.model are required")
	}
	if err := c.Disease.Image.Validate(); err != nil {
		return fmt.Errorf("disease.image: %w", err)
	}
	return nil
}
