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

package ethrpc

import (
	"fmt"
	"math/big"
	"strings"
)

// ParseQuantity decodes a hex quantity such as "0x1b4" into a float64.
// Values wider than 64 bits lose precision but keep their magnitude.
func ParseQuantity(s string) (float64, error) {
	digits, ok := strings.CutPrefix(s, "0x")
	if !ok {
		digits, ok = strings.CutPrefix(s, "0X")
	}
	if !ok {
		return 0, fmt.Errorf("quantity %q lacks 0x prefix", s)
	}
	if digits == "" || strings.ContainsAny(digits, "+-") {
		return 0, fmt.Errorf("quantity %q has no hex digits", s)
	}

	n, ok := new(big.Int).SetString(digits, 16)
	if !ok {
		return 0, fmt.Errorf("quantity %q is not hex", s)
	}
	f, _ := new(big.Float).SetInt(n).Float64()
	return f, nil
}
