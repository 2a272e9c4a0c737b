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

// Package version parses node release versions and client identification strings.
//
// Ethereum clients identify themselves through web3_clientVersion with a
// slash separated string such as:
//
//	Geth/v1.9.25-stable-e7872729/linux-amd64/go1.15.6
//	Geth/my-node/v1.10.1-stable/linux-amd64/go1.16
//
// ParseClientVersion splits that string into the client name, an optional
// operator supplied identity, the release Version, platform and runtime.
//
// Version holds up to three numeric components plus any trailing metadata
// ("-stable-e7872729"). Comparisons respect the precision of the versions
// involved, so a requirement of "1.10" is met by any 1.10.x release:
//
//	current, _ := version.ParseVersion("v1.10.3")
//	if !current.EqualsOrNewer(version.MustParseVersion("1.9")) {
//	    // warn
//	}
package version
