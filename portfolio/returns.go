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
	"strconv"
	"time"
)

// DailyReturns computes the money-weighted return since inception for every
// day of a date-descending {cash flow, value} series. Processed oldest to
// newest:
//
//	moneyOut[day] = moneyOut[yesterday] + min(cashFlow[day], 0)
//	moneyIn[day]  = value[day] + cumulative positive cash flow up to day
//
// Absolute gain is moneyOut + moneyIn and percentage gain is
// (|moneyIn / moneyOut| - 1) * 100, both rounded to 2 decimal places at
// emission. A zero moneyOut basis yields a zero percentage gain rather than
// an error. Duplicate dates are collapsed keeping the first occurrence, and
// the earliest day's gains are forced to zero: there is no prior basis to
// compare against. Returns a new series.
func DailyReturns(points []ReturnPoint) ([]ReturnPoint, error) {
	if err := checkPointsDescending(points); err != nil {
		return nil, err
	}

	out := make([]ReturnPoint, len(points))
	copy(out, points)

	cumPositive := 0.0
	for idx := len(out) - 1; idx >= 0; idx-- {
		prevOut := 0.0
		if idx < len(out)-1 {
			prevOut = out[idx+1].MoneyOut
		}
		out[idx].MoneyOut = prevOut + math.Min(out[idx].TransactionVal, 0)

		cumPositive += math.Max(0, out[idx].TransactionVal)
		out[idx].MoneyIn = out[idx].Value + cumPositive

		out[idx].AbsoluteGain = round2(out[idx].MoneyOut + out[idx].MoneyIn)
		if out[idx].MoneyOut != 0 {
			out[idx].PercentGain = round2((math.Abs(out[idx].MoneyIn/out[idx].MoneyOut) - 1) * 100)
		} else {
			out[idx].PercentGain = 0
		}
	}

	deduped := make([]ReturnPoint, 0, len(out))
	for idx := range out {
		if idx > 0 && out[idx].Date.Equal(out[idx-1].Date) {
			continue
		}
		deduped = append(deduped, out[idx])
	}

	if len(deduped) > 0 {
		deduped[len(deduped)-1].AbsoluteGain = 0
		deduped[len(deduped)-1].PercentGain = 0
	}

	return deduped, nil
}

// checkPointsDescending verifies a return series is date-descending before
// any period arithmetic runs
func checkPointsDescending(points []ReturnPoint) error {
	dates := make([]time.Time, len(points))
	for idx := range points {
		dates[idx] = points[idx].Date
	}
	return checkDateDescending(dates)
}

// SimpleReturns summarizes a daily return series into per-period simple
// returns, one absolute and one percentage row per period. The basis for a
// period is the money in at its start plus any additional capital committed
// during the period. The input must be date-descending.
func SimpleReturns(points []ReturnPoint, freq Frequency) ([]ReturnSummary, error) {
	if err := checkPointsDescending(points); err != nil {
		return nil, err
	}

	summaries := make([]ReturnSummary, 0, 2*len(points))

	for _, group := range groupByPeriod(points, freq) {
		newest := group.points[0]
		oldest := group.points[len(group.points)-1]

		basis := oldest.MoneyIn + (math.Abs(newest.MoneyOut) - math.Abs(oldest.MoneyOut))

		absGain := round2(newest.MoneyIn - basis)
		percGain := 0.0
		if basis != 0 {
			percGain = round2((newest.MoneyIn/basis - 1) * 100)
		}

		summaries = append(summaries,
			ReturnSummary{Year: group.label, Metric: MetricSimpleReturn, Unit: UnitAbs, Value: absGain},
			ReturnSummary{Year: group.label, Metric: MetricSimpleReturn, Unit: UnitPerc, Value: percGain},
		)
	}

	return summaries, nil
}

type periodGroup struct {
	label  string
	points []ReturnPoint
}

// groupByPeriod splits a date-descending series into calendar-year groups
// (newest first) or a single all-time group.
func groupByPeriod(points []ReturnPoint, freq Frequency) []periodGroup {
	if len(points) == 0 {
		return nil
	}

	if freq == FreqAll {
		return []periodGroup{{label: AllTime, points: points}}
	}

	groups := make([]periodGroup, 0, 10)
	start := 0
	for idx := 1; idx <= len(points); idx++ {
		if idx == len(points) || points[idx].Date.Year() != points[start].Date.Year() {
			groups = append(groups, periodGroup{
				label:  strconv.Itoa(points[start].Date.Year()),
				points: points[start:idx],
			})
			start = idx
		}
	}

	return groups
}

// ElapsedYears returns the length of a date-descending series in years,
// days between the newest and oldest dates divided by 365 and rounded to 2
// decimal places.
func ElapsedYears(points []ReturnPoint) float64 {
	if len(points) == 0 {
		return 0
	}
	newest := points[0].Date
	oldest := points[len(points)-1].Date
	return round2(newest.Sub(oldest).Hours() / 24 / 365)
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
