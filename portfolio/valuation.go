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

import "sort"

// Valuations computes the daily position value, qty * unadjusted close.
// Returns a new series; the input is not modified.
func Valuations(days []PositionDay) []PositionDay {
	out := make([]PositionDay, len(days))
	copy(out, days)
	for idx := range out {
		out[idx].Value = out[idx].Quantity * out[idx].Close
	}
	return out
}

// CollapseDailyDuplicates reduces a position series to one row per
// (ticker, date). The series is stably sorted ticker ascending / date
// descending first; within a duplicate group the newest-written row (the
// first in descending order, which carries the fully accumulated quantity
// for the day) wins. Returns a new series.
func CollapseDailyDuplicates(days []PositionDay) []PositionDay {
	out := make([]PositionDay, len(days))
	copy(out, days)

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Ticker != out[j].Ticker {
			return out[i].Ticker < out[j].Ticker
		}
		return out[i].Date.After(out[j].Date)
	})

	collapsed := make([]PositionDay, 0, len(out))
	for idx := range out {
		if idx > 0 && out[idx].Ticker == out[idx-1].Ticker && out[idx].Date.Equal(out[idx-1].Date) {
			continue
		}
		collapsed = append(collapsed, out[idx])
	}

	return collapsed
}
