// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
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

// Package serializer writes capture reports and measurement sets to files,
// stdout and HTTP responses, and reads snapshot documents back.
//
// Three output formats are supported:
//   - json: indented JSON
//   - yaml: YAML with two space indentation
//   - table: two column text for terminals
//
// Values implementing Tabular control their own table rows. Anything else is
// flattened by reflection into dotted field paths.
//
//	w := serializer.NewFileWriterOrStdout(serializer.FormatYAML, path)
//	defer serializer.Close(w)
//	if err := w.Serialize(ctx, report); err != nil {
//		return err
//	}
//
// Readers decode JSON or YAML from any io.Reader; FromFile picks the format
// from the file extension:
//
//	snapshot, err := serializer.FromFile[measurement.Value]("metrics.json")
//
// RespondJSON buffers the encoded body before writing headers so a failed
// encode never produces a partial response.
package serializer
