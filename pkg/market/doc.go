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

// Package market answers hierarchical queries over the district tables.
//
// Queries narrow state → district → metric column → year series. Names are
// matched exactly and case-sensitively against the loaded values. A metric
// column is any column whose name contains AREA, PRODUCTION or YIELD; it is
// "available" for a district when at least one of its cells there is present.
//
// Two series flavors are exposed:
//
//	ExtractSeries       production metrics, rows with a missing year or value dropped
//	ExtractPriceSeries  prices, additionally dropping the table's "no data" sentinel (-1)
//
// Both return points sorted ascending by year. Schema problems are reported
// with errors.ErrCodeColumnNotFound and empty selections with
// errors.ErrCodeNotFound, so callers can tell them apart even though both
// are served as 404.
//
// The HTTP handlers on Engine translate query parameters into these calls and
// serialize the result as JSON.
package market
