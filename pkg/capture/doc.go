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

// Package capture turns adapter captures into reports and drives them on a
// fixed interval.
//
// A Runner initializes its adapter lazily, so a node that is down at startup
// is retried on the next tick instead of failing the process:
//
//	r := &capture.Runner{
//		Adapter:  adapter,
//		Sink:     serializer.NewStdoutWriter(serializer.FormatJSON),
//		Interval: 15 * time.Second,
//		Version:  version,
//	}
//	if err := r.Run(ctx); err != nil {
//		return err
//	}
//
// The first report after a successful initialization starts with a
// node:info message describing the node.
package capture
