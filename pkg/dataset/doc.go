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

// Package dataset holds the static tables agrod serves from.
//
// Tables are loaded once at startup from CSV or XLSX sources (local paths
// or HTTP(S) URLs) and are read-only afterwards, so they can be shared by
// every request without locking.
//
// Two kinds of data are loaded:
//
//   - Crop records: soil and climate measurements labeled with a crop,
//     used to train the recommendation classifier.
//   - District tables: rows keyed by state, district and year, holding
//     metric columns such as "RICE AREA (1000 ha)" or
//     "WHEAT HARVEST PRICE (Rs per Quintal)".
//
// District tables are indexed by state and by (state, district) at load
// time. Cells that are empty, a recognized NA token, or not numeric are
// stored as missing. A table can declare a sentinel value (the price table
// uses -1) that the series extractor treats as "no data".
package dataset
