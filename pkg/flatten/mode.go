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

package flatten

import (
	"fmt"
	"strings"

	"github.com/splunk/ethmetrics/pkg/measurement"
)

// Mode selects the formatter applied to a snapshot.
type Mode string

const (
	// ModeMetrics flattens an arbitrary metrics tree with Flatten.
	ModeMetrics Mode = "metrics"
	// ModeMemStats formats runtime memory statistics with FormatMemStats.
	ModeMemStats Mode = "memstats"
)

// SupportedModes returns the accepted mode names.
func SupportedModes() []string {
	return []string{string(ModeMetrics), string(ModeMemStats)}
}

// ParseMode returns the mode named s. The empty string selects ModeMetrics.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ModeMetrics:
		return ModeMetrics, nil
	case ModeMemStats:
		return ModeMemStats, nil
	default:
		return "", fmt.Errorf("unknown mode %q, supported values: %s", s, strings.Join(SupportedModes(), ", "))
	}
}

// DefaultPrefix is the key namespace geth snapshots of this mode use.
func (m Mode) DefaultPrefix() string {
	if m == ModeMemStats {
		return GethMemStatsPrefix
	}
	return GethMetricsPrefix
}

// Apply runs the mode's formatter over v.
func (m Mode) Apply(v measurement.Value, prefix string) measurement.Set {
	if m == ModeMemStats {
		return FormatMemStats(v, prefix)
	}
	return Flatten(v, prefix)
}
