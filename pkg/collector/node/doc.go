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

// Package node implements the client independent part of a capture: chain
// head, peer count, gas price and sync progress read through the standard
// eth and net namespaces.
//
// Adapter is embedded by client specific adapters (see package geth) which
// add their own sources on top. Each source runs on its own and a failing
// source only removes its own measurements from the capture.
package node
