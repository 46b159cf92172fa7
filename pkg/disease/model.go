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
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/agro24/agrod/pkg/defaults"
	"github.com/agro24/agrod/pkg/serializer"
)

// DefaultInputName is the input tensor name of exported image classifiers.
const DefaultInputName = "pixel_values"

// Model produces class logits for a preprocessed image tensor.
type Model interface {
	Infer(ctx context.Context, input Tensor) ([]float32, error)
}

// RemoteModel calls a model server over the KServe v2 REST protocol.
type RemoteModel struct {
	endpoint string
	name     string
	input    string
	client   *http.Client
}

// RemoteOption configures a RemoteModel.
type RemoteOption func(*RemoteModel)

// WithInputName overrides the input tensor name.
func WithInputName(name string) RemoteOption {
	return func(m *RemoteModel) {
		if name != "" {
			m.input = name
		}
	}
}

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(c *http.Client) RemoteOption {
	return func(m *RemoteModel) {
		if c != nil {
			m.client = c
		}
	}
}

// NewRemoteModel creates a client for model name served at endpoint.
func NewRemoteModel(endpoint, name string, opts ...RemoteOption) (*RemoteModel, error) {
	if endpoint == "" {
		return nil, fmt.Errorf("model endpoint is required")
	}
	if name == "" {
		return nil, fmt.Errorf("model name is required")
	}
	if _, err := url.ParseRequestURI(endpoint); err != nil {
		return nil, fmt.Errorf("invalid model endpoint %q: %w", endpoint, err)
	}

	m := &RemoteModel{
		endpoint: strings.TrimRight(endpoint, "/"),
		name:     name,
		input:    DefaultInputName,
		client:   serializer.NewHTTPClient(defaults.InferenceTimeout),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

func (m *RemoteModel) modelURL(suffix string) string {
	return m.endpoint + "/v2/models/" + url.PathEscape(m.name) + suffix
}

// Ready returns nil when the model server reports the model ready.
func (m *RemoteModel) Ready(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, m.modelURL("/ready"), nil)
	if err != nil {
		return fmt.Errorf("failed to create readiness request: %w", err)
	}

	resp, err := m.client.Do(req)
	if err != nil {
		return fmt.Errorf("model %s readiness check failed: %w", m.name, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("model %s not ready: status %d", m.name, resp.StatusCode)
	}
	return nil
}

type inferTensor struct {
	Name     string    `json:"name"`
	Shape    []int     `json:"shape"`
	Datatype string    `json:"datatype"`
	Data     []float32 `json:"data"`
}

type inferRequest struct {
	Inputs []inferTensor `json:"inputs"`
}

type inferResponse struct {
	ModelName string        `json:"model_name"`
	Outputs   []inferTensor `json:"outputs"`
}

type inferError struct {
	Error string `json:"error"`
}

// Infer sends the tensor and returns the first output, flattened.
func (m *RemoteModel) Infer(ctx context.Context, input Tensor) ([]float32, error) {
	body, err := json.Marshal(inferRequest{Inputs: []inferTensor{{
		Name:     m.input,
		Shape:    input.Shape,
		Datatype: "FP32",
		Data:     input.Data,
	}}})
	if err != nil {
		return nil, fmt.Errorf("failed to encode inference request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.modelURL("/infer"), bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create inference request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("inference request failed: %w", err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read inference response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var ie inferError
		if json.Unmarshal(payload, &ie) == nil && ie.Error != "" {
			return nil, fmt.Errorf("model server returned %d: %s", resp.StatusCode, ie.Error)
		}
		return nil, fmt.Errorf("model server returned %d", resp.StatusCode)
	}

	var out inferResponse
	if err := json.Unmarshal(payload, &out); err != nil {
		return nil, fmt.Errorf("failed to decode inference response: %w", err)
	}
	if len(out.Outputs) == 0 || len(out.Outputs[0].Data) == 0 {
		return nil, fmt.Errorf("inference response has no outputs")
	}
	return out.Outputs[0].Data, nil
}
