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

package market

import (
	"log/slog"
	"slices"
	"sort"
	"strings"

	"github.com/patrickmn/go-cache"

	"github.com/agro24/agrod/pkg/dataset"
	cnserrors "github.com/agro24/agrod/pkg/errors"
)

// Error messages returned to clients.
const (
	MsgSeriesColumnNotFound = "Year column or selected crop not found in dataset."
	MsgSeriesNoData         = "No data available for the selected crop."
	MsgPriceYearNotFound    = "Year column not found in dataset."
	MsgPriceCropNotFound    = "Selected crop not found in dataset."
	MsgPriceNoData          = "No data available for the selected crop in this district."
	MsgStateNotFound        = "State not found"
	MsgDistrictNotFound     = "District not found"
	MsgCropNotAvailable     = "Crop type not available"
)

// metricMarkers identify metric columns by substring.
var metricMarkers = []string{"AREA", "PRODUCTION", "YIELD"}

// Point is one year of a production metric.
type Point struct {
	Year  int     `json:"year" yaml:"year"`
	Value float64 `json:"value" yaml:"value"`
}

// PricePoint is one year of a price series.
type PricePoint struct {
	Year  int     `json:"year" yaml:"year"`
	Price float64 `json:"price" yaml:"price"`
}

// Engine serves filter and series queries over the production and price
// tables. It is safe for concurrent use.
type Engine struct {
	production *dataset.Table
	prices     *dataset.Table
	metrics    *cache.Cache
}

// NewEngine creates an Engine. Either table may be nil, in which case the
// queries against it return empty results or COLUMN_NOT_FOUND.
func NewEngine(production, prices *dataset.Table) *Engine {
	return &Engine{
		production: production,
		prices:     prices,
		// tables never change after load, so entries never expire
		metrics: cache.New(cache.NoExpiration, 0),
	}
}

// States returns distinct state names in first-appearance order.
func (e *Engine) States() []string {
	if e.production == nil {
		return nil
	}
	return e.production.States()
}

// Districts returns the distinct districts of a state, empty when the state
// is unknown.
func (e *Engine) Districts(state string) []string {
	if e.production == nil {
		return nil
	}
	return e.production.Districts(state)
}

// IsMetricColumn reports whether a column name denotes a metric.
func IsMetricColumn(name string) bool {
	for _, m := range metricMarkers {
		if strings.Contains(name, m) {
			return true
		}
	}
	return false
}

// AvailableMetrics returns the metric columns with at least one present value
// for the (state, district) subset, in schema order.
func (e *Engine) AvailableMetrics(state, district string) []string {
	if e.production == nil {
		return nil
	}

	key := state + "\x00" + district
	if v, ok := e.metrics.Get(key); ok {
		metricCacheHits.Inc()
		return append([]string(nil), v.([]string)...)
	}

	rows := e.production.Rows(state, district)
	var out []string
	if len(rows) > 0 {
		for i, col := range e.production.Columns() {
			if !IsMetricColumn(col) {
				continue
			}
			for _, row := range rows {
				if row.Value(i).Valid {
					out = append(out, col)
					break
				}
			}
		}
	}

	e.metrics.Set(key, out, cache.NoExpiration)
	slog.Debug("metric availability computed",
		"state", state,
		"district", district,
		"count", len(out),
	)
	return append([]string(nil), out...)
}

// HasMetric reports whether column is available for the subset.
func (e *Engine) HasMetric(state, district, column string) bool {
	for _, m := range e.AvailableMetrics(state, district) {
		if m == column {
			return true
		}
	}
	return false
}

// Insights validates the selection level by level, state then district then
// metric, and returns the metric's series. Each missing level is a NOT_FOUND
// error with its own message.
func (e *Engine) Insights(state, district, column string) ([]Point, error) {
	if !slices.Contains(e.States(), state) {
		return nil, cnserrors.NewWithContext(cnserrors.ErrCodeNotFound, MsgStateNotFound,
			map[string]any{"state": state})
	}
	if !slices.Contains(e.Districts(state), district) {
		return nil, cnserrors.NewWithContext(cnserrors.ErrCodeNotFound, MsgDistrictNotFound,
			map[string]any{"state": state, "district": district})
	}
	if !e.HasMetric(state, district, column) {
		return nil, noData(MsgCropNotAvailable, state, district, column)
	}
	return e.ExtractSeries(state, district, column)
}

// ExtractSeries returns the (year, value) points of a production metric for
// the subset, sorted ascending by year.
func (e *Engine) ExtractSeries(state, district, column string) ([]Point, error) {
	t := e.production
	if t == nil || !t.HasYear() {
		return nil, columnNotFound(MsgSeriesColumnNotFound, column)
	}
	ci, ok := t.ColumnIndex(column)
	if !ok {
		return nil, columnNotFound(MsgSeriesColumnNotFound, column)
	}

	var points []Point
	for _, row := range t.Rows(state, district) {
		v := row.Value(ci)
		if !row.Year.Valid || !v.Valid {
			continue
		}
		points = append(points, Point{Year: int(row.Year.Num), Value: v.Num})
	}

	if len(points) == 0 {
		return nil, noData(MsgSeriesNoData, state, district, column)
	}

	sort.SliceStable(points, func(i, j int) bool {
		return points[i].Year < points[j].Year
	})
	return points, nil
}

// ExtractPriceSeries returns the (year, price) points for the subset with the
// price table's sentinel removed before emptiness is evaluated.
func (e *Engine) ExtractPriceSeries(state, district, column string) ([]PricePoint, error) {
	t := e.prices
	if t == nil || !t.HasYear() {
		return nil, columnNotFound(MsgPriceYearNotFound, column)
	}
	ci, ok := t.ColumnIndex(column)
	if !ok {
		return nil, columnNotFound(MsgPriceCropNotFound, column)
	}

	var points []PricePoint
	for _, row := range t.Rows(state, district) {
		v := row.Value(ci)
		if !row.Year.Valid || !v.Valid || t.IsSentinel(v) {
			continue
		}
		points = append(points, PricePoint{Year: int(row.Year.Num), Price: v.Num})
	}

	if len(points) == 0 {
		return nil, noData(MsgPriceNoData, state, district, column)
	}

	sort.SliceStable(points, func(i, j int) bool {
		return points[i].Year < points[j].Year
	})
	return points, nil
}

func columnNotFound(msg, column string) error {
	return cnserrors.NewWithContext(cnserrors.ErrCodeColumnNotFound, msg, map[string]any{
		"column": column,
	})
}

func noData(msg, state, district, column string) error {
	return cnserrors.NewWithContext(cnserrors.ErrCodeNotFound, msg, map[string]any{
		"state":    state,
		"district": district,
		"column":   column,
	})
}
