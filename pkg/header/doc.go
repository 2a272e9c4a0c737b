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

// Package header provides the common envelope header for documents emitted by
// the collector.
//
// Every serialized document starts with a Kind, an APIVersion and a small
// string metadata map carrying the creation timestamp and tool version:
//
//	kind: Capture
//	apiVersion: ethmetrics.splunk.com/v1alpha1
//	metadata:
//	  timestamp: "2026-01-02T15:04:05Z"
//	  version: v0.3.0
//
// Use New with options for ad hoc headers, or Init on an embedded Header.
package header
