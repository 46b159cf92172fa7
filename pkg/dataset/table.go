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
	"math"
	"strconv"
	"strings"

	"github.com/agro24/agrod/pkg/defaults"
)

// missingTokens are cell values read as missing, in addition to the empty string.
var missingTokens = map[string]struct{}{
	"NA": {}, "N/A": {}, "n/a": {}, "NaN": {}, "nan": {}, "-NaN": {},
	"null": {}, "NULL": {}, "None": {}, "#N/A": {},
}

// Value is a numeric cell that may be missing.
type Value struct {
	Num   float64
	Valid bool
}

// Missing is the zero Value.
var Missing = Value{}

// Num returns a present Value.
func Num(v float64) Value {
	return Value{Num: v, Valid: true}
}

// ParseValue parses a cell. Missing tokens, non-numeric text and non-finite
// numbers are missing.
func ParseValue(s string) Value {
	s = strings.TrimSpace(s)
	if s == "" {
		return Missing
	}
	if _, ok := missingTokens[s]; ok {
		return Missing
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return Missing
	}
	return Num(f)
}

// Row is one (state, district, year) record of a district table.
type Row struct {
	State    string
	District string
	Year     Value
	values   []Value
}

// Value returns the cell for the column at index i.
func (r Row) Value(i int) Value {
	if i < 0 || i >= len(r.values) {
		return Missing
	}
	return r.values[i]
}

type regionKey struct {
	state    string
	district string
}

// Table is an immutable district-level table.
type Table struct {
	name      string
	columns   []string
	colIndex  map[string]int
	rows      []Row
	states    []string
	districts map[string][]string
	byRegion  map[regionKey][]int
	hasYear   bool
	sentinel  Value
}

// Option configures a Table.
type Option func(*Table)

// WithSentinel declares a value that means "no data" in this table.
func WithSentinel(v float64) Option {
	return func(t *Table) {
		t.sentinel = Num(v)
	}
}

// NewTable builds a table from a header and raw string records.
// The state and district columns are required; the year column is optional
// so that a schema without it can still be served (series extraction
// reports it as a missing column).
func NewTable(name string, header []string, records [][]string, opts ...Option) (*Table, error) {
	t := &Table{
		name:      name,
		colIndex:  make(map[string]int, len(header)),
		districts: make(map[string][]string),
		byRegion:  make(map[regionKey][]int),
	}
	for _, opt := range opts {
		opt(t)
	}

	t.columns = make([]string, len(header))
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		t.columns[i] = h
		if _, dup := t.colIndex[h]; !dup {
			t.colIndex[h] = i
		}
	}

	si, ok := t.colIndex[defaults.StateColumn]
	if !ok {
		return nil, fmt.Errorf("table %s: missing column %q", name, defaults.StateColumn)
	}
	di, ok := t.colIndex[defaults.DistrictColumn]
	if !ok {
		return nil, fmt.Errorf("table %s: missing column %q", name, defaults.DistrictColumn)
	}
	yi, hasYear := t.colIndex[defaults.YearColumn]
	t.hasYear = hasYear

	seenState := make(map[string]struct{})
	seenRegion := make(map[regionKey]struct{})

	t.rows = make([]Row, 0, len(records))
	for n, rec := range records {
		if len(rec) == 0 {
			continue
		}
		if len(rec) > len(header) {
			return nil, fmt.Errorf("table %s: record %d has %d fields, header has %d", name, n+1, len(rec), len(header))
		}

		row := Row{
			State:    cell(rec, si),
			District: cell(rec, di),
			values:   make([]Value, len(header)),
		}
		for i := range header {
			if i == si || i == di {
				continue
			}
			row.values[i] = ParseValue(cell(rec, i))
		}
		if hasYear {
			row.Year = row.values[yi]
		}

		idx := len(t.rows)
		t.rows = append(t.rows, row)

		if _, ok := seenState[row.State]; !ok {
			seenState[row.State] = struct{}{}
			t.states = append(t.states, row.State)
		}
		key := regionKey{row.State, row.District}
		if _, ok := seenRegion[key]; !ok {
			seenRegion[key] = struct{}{}
			t.districts[row.State] = append(t.districts[row.State], row.District)
		}
		t.byRegion[key] = append(t.byRegion[key], idx)
	}

	return t, nil
}

func cell(rec []string, i int) string {
	if i >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[i])
}

// Name returns the table name used in logs and metrics.
func (t *Table) Name() string { return t.name }

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.rows) }

// Columns returns the schema in source order.
func (t *Table) Columns() []string {
	out := make([]string, len(t.columns))
	copy(out, t.columns)
	return out
}

// ColumnIndex returns the index of a column and whether it exists.
// Lookups are exact and case-sensitive.
func (t *Table) ColumnIndex(name string) (int, bool) {
	i, ok := t.colIndex[name]
	return i, ok
}

// HasYear reports whether the schema has a year column.
func (t *Table) HasYear() bool { return t.hasYear }

// Sentinel returns the table's "no data" value; it is not Valid when unset.
func (t *Table) Sentinel() Value { return t.sentinel }

// IsSentinel reports whether v equals the table's "no data" sentinel.
func (t *Table) IsSentinel(v Value) bool {
	return t.sentinel.Valid && v.Valid && v.Num == t.sentinel.Num
}

// States returns distinct states in first-appearance order.
func (t *Table) States() []string {
	out := make([]string, len(t.states))
	copy(out, t.states)
	return out
}

// Districts returns distinct districts of a state in first-appearance order.
func (t *Table) Districts(state string) []string {
	d := t.districts[state]
	out := make([]string, len(d))
	copy(out, d)
	return out
}

// Rows returns the rows matching state and district exactly, in source order.
func (t *Table) Rows(state, district string) []Row {
	idx := t.byRegion[regionKey{state, district}]
	out := make([]Row, len(idx))
	for i, j := range idx {
		out[i] = t.rows[j]
	}
	return out
}
