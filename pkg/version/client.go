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

package version

import (
	"errors"
	"strings"
)

// ErrInvalidClientVersion is returned for identification strings without a release version.
var ErrInvalidClientVersion = errors.New("client version has no release component")

// ClientVersion is a parsed web3_clientVersion string.
type ClientVersion struct {
	// Name is the client implementation, e.g. "Geth".
	Name string `json:"name" yaml:"name"`

	// Identity is the optional operator supplied node name.
	Identity string `json:"identity,omitempty" yaml:"identity,omitempty"`

	// Release is the version token as reported, e.g. "v1.9.25-stable-e7872729".
	Release string `json:"release" yaml:"release"`

	Version  Version `json:"version" yaml:"version"`
	Platform string  `json:"platform,omitempty" yaml:"platform,omitempty"`
	Runtime  string  `json:"runtime,omitempty" yaml:"runtime,omitempty"`
}

// ParseClientVersion parses strings like "Geth/v1.9.25-stable-e7872729/linux-amd64/go1.15.6".
// The release is the first component after the name that starts with "v"
// followed by a digit. Components between the name and the release form the identity.
func ParseClientVersion(s string) (ClientVersion, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return ClientVersion{}, ErrEmptyVersion
	}

	parts := strings.Split(s, "/")
	release := -1
	for i := 1; i < len(parts); i++ {
		p := parts[i]
		if len(p) > 1 && p[0] == 'v' && p[1] >= '0' && p[1] <= '9' {
			release = i
			break
		}
	}
	if release < 0 {
		return ClientVersion{}, ErrInvalidClientVersion
	}

	v, err := ParseVersion(parts[release])
	if err != nil {
		return ClientVersion{}, err
	}

	cv := ClientVersion{
		Name:     parts[0],
		Identity: strings.Join(parts[1:release], "/"),
		Release:  parts[release],
		Version:  v,
	}
	if len(parts) > release+1 {
		cv.Platform = parts[release+1]
	}
	if len(parts) > release+2 {
		cv.Runtime = parts[release+2]
	}
	return cv, nil
}

// String reassembles the identification string.
func (c ClientVersion) String() string {
	parts := []string{c.Name}
	if c.Identity != "" {
		parts = append(parts, c.Identity)
	}
	parts = append(parts, c.Release)
	for _, p := range []string{c.Platform, c.Runtime} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, "/")
}
