// Copyright 2023-2024
// SPDX-License-Identifier: Apache-2.0
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package portfolio

import "math"

// CAGR converts a cumulative return in percent over the elapsed period into
// the constant annual rate that would produce it, rounded to 2 decimal
// places. years must be positive.
func CAGR(totalReturnPercent float64, years float64) (float64, error) {
	if years <= 0 {
		return 0, ErrNonPositiveYears
	}
	return round2((math.Pow(totalReturnPercent/100+1, 1/years) - 1) * 100), nil
}
