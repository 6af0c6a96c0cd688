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

import "gonum.org/v1/gonum/floats"

// TimeWeightedReturns computes the time-weighted return per period. Within a
// period the series is walked oldest to newest, closing a sub-period at
// every nonzero cash flow with the value just before the flow so that market
// movement is isolated from the flow's effect. The period TWR is the chained
// product of sub-period returns, minus one, as a percentage rounded to 2
// decimal places. All-time rows are tagged with the elapsed period in years.
// The input must be date-descending.
func TimeWeightedReturns(points []ReturnPoint, freq Frequency) ([]ReturnSummary, error) {
	if err := checkPointsDescending(points); err != nil {
		return nil, err
	}

	summaries := make([]ReturnSummary, 0, 10)

	for _, group := range groupByPeriod(points, freq) {
		// oldest to newest
		vals := make([]float64, len(group.points))
		flows := make([]float64, len(group.points))
		for idx := range group.points {
			p := group.points[len(group.points)-1-idx]
			vals[idx] = p.Value
			flows[idx] = p.TransactionVal
		}

		subPeriods := make([]float64, 0, len(vals))
		var initVal float64
		for idx := range vals {
			switch {
			case idx == 0:
				initVal = vals[idx]
			case idx == len(vals)-1:
				subPeriods = append(subPeriods, vals[idx]/initVal)
			case flows[idx] != 0:
				subPeriods = append(subPeriods, vals[idx-1]/initVal)
				initVal = vals[idx]
			}
		}

		twr := round2((floats.Prod(subPeriods) - 1) * 100)

		summary := ReturnSummary{Year: group.label, Metric: MetricTWR, Unit: UnitPerc, Value: twr}
		if freq == FreqAll {
			summary.Years = ElapsedYears(group.points)
		}
		summaries = append(summaries, summary)
	}

	return summaries, nil
}
