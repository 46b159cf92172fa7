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
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"path"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/agro24/agrod/pkg/serializer"
)

// ReadRecords reads a header and records from a CSV or XLSX source.
// The source may be a local path or an HTTP(S) URL; the format is chosen by
// extension (.xlsx reads the first sheet, anything else is CSV).
func ReadRecords(ctx context.Context, source string) ([]string, [][]string, error) {
	data, err := serializer.ReadSource(ctx, source)
	if err != nil {
		return nil, nil, err
	}

	var rows [][]string
	if isXLSX(source) {
		rows, err = readXLSX(bytes.NewReader(data))
	} else {
		rows, err = readCSV(bytes.NewReader(data))
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse %s: %w", path.Base(source), err)
	}
	if len(rows) == 0 {
		return nil, nil, fmt.Errorf("%s: no header", path.Base(source))
	}
	return rows[0], rows[1:], nil
}

func isXLSX(source string) bool {
	s := strings.ToLower(source)
	if i := strings.IndexAny(s, "?#"); i >= 0 && serializer.IsRemote(source) {
		s = s[:i]
	}
	return strings.HasSuffix(s, ".xlsx")
}

func readCSV(r io.Reader) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	return cr.ReadAll()
}

func readXLSX(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			slog.Warn("failed to close workbook", "error", cerr)
		}
	}()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	return f.GetRows(sheets[0])
}

// LoadTable reads and indexes a district table.
func LoadTable(ctx context.Context, name, source string, opts ...Option) (*Table, error) {
	header, records, err := ReadRecords(ctx, source)
	if err != nil {
		return nil, fmt.Errorf("load %s table: %w", name, err)
	}
	t, err := NewTable(name, header, records, opts...)
	if err != nil {
		return nil, err
	}
	datasetRows.WithLabelValues(name).Set(float64(t.Len()))
	slog.Info("table loaded", "table", name, "rows", t.Len(), "columns", len(header), "states", len(t.states))
	return t, nil
}

// LoadCropRecords reads the crop recommendation training data.
func LoadCropRecords(ctx context.Context, source string) ([]CropRecord, error) {
	header, records, err := ReadRecords(ctx, source)
	if err != nil {
		return nil, fmt.Errorf("load crop records: %w", err)
	}
	out, err := NewCropRecords(header, records)
	if err != nil {
		return nil, err
	}
	datasetRows.WithLabelValues("crops").Set(float64(len(out)))
	slog.Info("crop records loaded", "rows", len(out))
	return out, nil
}
