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

import "time"

// checkDateDescending verifies that dates never increase from one row to the
// next. Equal dates are allowed; multiple transactions may share a day.
func checkDateDescending(dates []time.Time) error {
	for idx := 1; idx < len(dates); idx++ {
		if dates[idx].After(dates[idx-1]) {
			return ErrUnsorted
		}
	}
	return nil
}

// HoldingQuantities computes the held quantity per day for a single
// instrument from its transaction quantities and split factors. The input
// must be date-descending; the recurrence itself runs oldest to newest:
//
//	qty[today] = txnQty[today] + qty[yesterday] * split[today]
//
// with the oldest day holding only its own transaction quantity. A split is
// applied on the day it is reported, per the market-data convention that the
// factor is effective the day it already occurred. Returns a new series; the
// input is not modified.
func HoldingQuantities(days []PositionDay) ([]PositionDay, error) {
	dates := make([]time.Time, len(days))
	for idx := range days {
		dates[idx] = days[idx].Date
	}
	if err := checkDateDescending(dates); err != nil {
		return nil, err
	}

	out := make([]PositionDay, len(days))
	copy(out, days)

	for idx := len(out) - 1; idx >= 0; idx-- {
		if idx == len(out)-1 {
			out[idx].Quantity = out[idx].TransactionQty
			continue
		}
		out[idx].Quantity = out[idx].TransactionQty + out[idx+1].Quantity*out[idx].Split
	}

	return out, nil
}
