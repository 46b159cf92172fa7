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

package serializer

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

type point struct {
	Year  int     `json:"year" yaml:"year"`
	Value float64 `json:"value" yaml:"value"`
}

func TestWriter_JSON(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(FormatJSON, &buf)

	require.NoError(t, w.Serialize(context.Background(), []point{{2001, 5}}))

	var got []point
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, []point{{2001, 5}}, got)
}

func TestWriter_YAML(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(FormatYAML, &buf)

	require.NoError(t, w.Serialize(context.Background(), []point{{2002, 7}}))

	var got []point
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, []point{{2002, 7}}, got)
}

func TestWriter_TableStructRows(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(FormatTable, &buf)

	require.NoError(t, w.Serialize(context.Background(), []point{{2001, 5}, {2002, 7.5}}))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, []string{"Year", "Value"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{"2001", "5"}, strings.Fields(lines[1]))
	assert.Equal(t, []string{"2002", "7.5"}, strings.Fields(lines[2]))
}

func TestWriter_TableScalars(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(FormatTable, &buf)

	require.NoError(t, w.Serialize(context.Background(), []string{"Bihar", "Punjab"}))

	assert.Equal(t, "Value\nBihar\nPunjab\n", buf.String())
}

func TestWriter_TableEmpty(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(FormatTable, &buf)

	require.NoError(t, w.Serialize(context.Background(), []point{}))
	assert.Equal(t, "<empty>\n", buf.String())
}

func TestWriter_TableFlattensStruct(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(FormatTable, &buf)

	v := struct {
		Disease    string  `json:"disease"`
		Confidence float64 `json:"confidence"`
	}{"Tomato with Late Blight", 0.9}
	require.NoError(t, w.Serialize(context.Background(), v))

	out := buf.String()
	assert.Contains(t, out, "FIELD")
	assert.Contains(t, out, "disease")
	assert.Contains(t, out, "Tomato with Late Blight")
}

func TestNewWriter_UnknownFormatDefaultsToJSON(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(Format("xml"), &buf)
	require.NoError(t, w.Serialize(context.Background(), map[string]int{"a": 1}))
	assert.JSONEq(t, `{"a":1}`, buf.String())
}
