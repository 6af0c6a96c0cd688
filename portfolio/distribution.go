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

import (
	"math"
	"sort"
	"time"
)

// Distribution computes each instrument's weight in the portfolio at the
// end date, by value and as a percentage of the total. Instruments fully
// liquidated by the end date are excluded. Rows are sorted by value
// descending.
func Distribution(days []PositionDay, endDate time.Time) []DistributionRow {
	snapshot := make([]PositionDay, 0, 10)
	total := 0.0
	for _, day := range days {
		if !day.Date.Equal(endDate) {
			continue
		}
		if math.Abs(day.Quantity) < liquidationEpsilon {
			continue
		}
		snapshot = append(snapshot, day)
		total += day.Value
	}

	rows := make([]DistributionRow, 0, len(snapshot))
	for _, day := range snapshot {
		percent := 0.0
		if total != 0 {
			percent = round2(day.Value / total * 100)
		}
		rows = append(rows, DistributionRow{
			Ticker:  day.Ticker,
			Value:   round2(day.Value),
			Percent: percent,
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Value > rows[j].Value
	})

	return rows
}
