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

// Package serializer encodes and decodes agrod data in JSON, YAML and table form.
//
// # Writing
//
// Writer renders any value to a file or stdout. The CLI uses it for command
// output:
//
//	w := serializer.NewFileWriterOrStdout(serializer.FormatYAML, "")
//	defer w.Close()
//	if err := w.Serialize(ctx, points); err != nil {
//	    return err
//	}
//
// The table format flattens slices of structs into one row per element and
// everything else into key/value rows. It cannot be read back.
//
// HTTP handlers use RespondJSON, which sets the content type, writes the
// status and encodes the body in one call.
//
// # Reading
//
// Reader decodes JSON or YAML from any io.Reader. NewFileReader and the
// generic FromFile accept local paths as well as http(s) URLs, in which case
// the content is fetched with HttpReader. DecodeFile decodes over a value that
// already holds defaults, so fields missing from the file keep their values:
//
//	cfg := config.Default()
//	if err := serializer.DecodeFile(ctx, "agrod.yaml", cfg); err != nil {
//	    return err
//	}
//
// ReadSource returns the raw bytes of a local or remote source. The dataset
// loader uses it for CSV and XLSX files; the disease package uses it for the
// model's label map.
//
// # Format Detection
//
// FormatFromPath maps .json to JSON, .yaml/.yml to YAML and .table/.txt to
// table. Anything else is treated as JSON.
package serializer
