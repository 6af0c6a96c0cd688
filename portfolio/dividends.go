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
	"sort"
	"time"
)

// Dividends attributes dividend cash to the quantity held the calendar day
// before each ex-dividend date and aggregates it per instrument and per
// calendar year. The input holds the daily position series of every
// instrument concatenated; each instrument's rows must be date-descending
// and gap-free, so the prior day's quantity is the next row of the same
// instrument. A missing prior day counts as zero. When an instrument carries
// several rows on the same date, each row pays against the row below it, so
// a duplicated ex-dividend day contributes once per row. Totals are rounded
// to cents.
func Dividends(days []PositionDay) ([]DividendTotal, []YearlyDividend, error) {
	byTicker := make(map[string][]PositionDay)
	tickers := make([]string, 0, 10)
	for _, day := range days {
		if _, ok := byTicker[day.Ticker]; !ok {
			tickers = append(tickers, day.Ticker)
		}
		byTicker[day.Ticker] = append(byTicker[day.Ticker], day)
	}
	sort.Strings(tickers)

	totals := make([]DividendTotal, 0, len(tickers))
	perYear := make(map[int]float64)

	for _, ticker := range tickers {
		series := byTicker[ticker]

		dates := make([]time.Time, len(series))
		for idx := range series {
			dates[idx] = series[idx].Date
		}
		if err := checkDateDescending(dates); err != nil {
			return nil, nil, err
		}

		total := 0.0
		for idx := range series {
			if series[idx].Dividend == 0 {
				continue
			}
			priorQty := 0.0
			if idx+1 < len(series) {
				priorQty = series[idx+1].Quantity
			}
			cash := priorQty * series[idx].Dividend
			total += cash
			perYear[series[idx].Date.Year()] += cash
		}

		totals = append(totals, DividendTotal{Ticker: ticker, Total: round2(total)})
	}

	years := make([]int, 0, len(perYear))
	for year := range perYear {
		years = append(years, year)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(years)))

	yearly := make([]YearlyDividend, 0, len(years))
	for _, year := range years {
		yearly = append(yearly, YearlyDividend{Year: year, Total: round2(perYear[year])})
	}

	return totals, yearly, nil
}
