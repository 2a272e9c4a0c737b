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

// Package output defines the envelopes a capture produces and the report that
// groups them.
//
// Each Message carries a type tag and the capture time in epoch
// milliseconds plus exactly one payload:
//
//	node:metrics  Metrics, a flat map of dotted keys to numbers
//	geth:peer     Peer, one admin_peers entry as received
//	node:info     Info, client identification collected at initialization
//
// A Report wraps the messages of one capture with a document header, a
// capture ID and the node description.
package output
