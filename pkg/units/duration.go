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

package units

import (
	"math"
	"strconv"
	"strings"
)

// durationUnit converts a mantissa to milliseconds as n * multiplier / divisor.
type durationUnit struct {
	symbol     string
	multiplier float64
	divisor    float64
}

// durationUnits is ordered by match priority. Two-letter units come before the
// single-letter ones so "ms" is never read as "m".
var durationUnits = []durationUnit{
	{symbol: "ns", multiplier: 1, divisor: 1e6},
	{symbol: "us", multiplier: 1, divisor: 1e3},
	{symbol: "µs", multiplier: 1, divisor: 1e3}, // micro sign
	{symbol: "μs", multiplier: 1, divisor: 1e3}, // greek small mu
	{symbol: "ms", multiplier: 1, divisor: 1},
	{symbol: "s", multiplier: 1000, divisor: 1},
	{symbol: "m", multiplier: 60_000, divisor: 1},
	{symbol: "h", multiplier: 3_600_000, divisor: 1},
}

// DurationToMillis parses a Go formatted duration string such as "1h2m3.4s",
// "500µs" or "-2ms" and returns its length in milliseconds.
// Returns NaN and false for empty input, a missing mantissa, a mantissa
// without unit or an unknown unit. There is no partial result.
func DurationToMillis(s string) (float64, bool) {
	if s == "" {
		return math.NaN(), false
	}

	i, neg := 0, false
	switch s[0] {
	case '-':
		neg = true
		i++
	case '+':
		i++
	}
	if i == len(s) {
		return math.NaN(), false
	}

	var total float64
	for i < len(s) {
		start := i
		dot := false
		for i < len(s) {
			c := s[i]
			if c >= '0' && c <= '9' {
				i++
				continue
			}
			if c == '.' && !dot {
				dot = true
				i++
				continue
			}
			break
		}
		if i == start {
			return math.NaN(), false
		}

		n, err := strconv.ParseFloat(s[start:i], 64)
		if err != nil {
			return math.NaN(), false
		}

		u, ok := matchUnit(s[i:])
		if !ok {
			return math.NaN(), false
		}
		total += n * u.multiplier / u.divisor
		i += len(u.symbol)
	}

	if neg {
		total = -total
	}
	return total, true
}

// matchUnit returns the highest priority unit that prefixes rest.
func matchUnit(rest string) (durationUnit, bool) {
	for _, u := range durationUnits {
		if strings.HasPrefix(rest, u.symbol) {
			return u, true
		}
	}
	return durationUnit{}, false
}
