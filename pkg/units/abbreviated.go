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
)

// magnitudes maps the single trailing unit letter to its multiplier.
// Lower-case letters are not units.
var magnitudes = map[byte]float64{
	'K': 1e3,
	'M': 1e6,
	'G': 1e9,
	'T': 1e12,
}

// ParseAbbreviated parses a decimal number optionally suffixed with one of the
// magnitude units K, M, G or T, e.g. "1.5K" is 1500.
// Returns NaN and false if the remainder is not a plain decimal literal.
func ParseAbbreviated(token string) (float64, bool) {
	rest, factor := token, 1.0
	if n := len(token); n > 0 {
		if f, ok := magnitudes[token[n-1]]; ok {
			rest, factor = token[:n-1], f
		}
	}

	if !isDecimal(rest) {
		return math.NaN(), false
	}

	f, err := strconv.ParseFloat(rest, 64)
	if err != nil {
		return math.NaN(), false
	}

	return f * factor, true
}

// isDecimal reports whether s is an optionally signed run of digits with at
// most one decimal point and at least one digit. Exponents are rejected.
func isDecimal(s string) bool {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}

	digits, dot := 0, false
	for ; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= '0' && c <= '9':
			digits++
		case c == '.' && !dot:
			dot = true
		default:
			return false
		}
	}

	return digits > 0
}
