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
	"time"
)

// ComparisonDay is one row of the merged per-instrument/benchmark series
// fed to the proportional simulator. AssetQuantity is the already
// accumulated held quantity for the day.
type ComparisonDay struct {
	Date                time.Time
	AssetTicker         string
	AssetClose          float64
	AssetSplit          float64
	AssetTransactionQty float64
	AssetTransactionVal float64
	AssetQuantity       float64
	AssetValue          float64
	BenchmarkTicker     string
	BenchmarkClose      float64
	BenchmarkSplit      float64
}

// simState tracks whether the synthetic benchmark position currently holds
// shares. The transition rules differ: entering from noPosition uses the
// cash-equivalent rule, scaling while holding uses the proportional rule.
type simState int

const (
	noPosition simState = iota
	holding
)

// SimulateAbsolute synthesizes a benchmark transaction series as if every
// cash flow in the ledger, regardless of instrument, had been invested in
// the benchmark instead: quantity = -cashFlow / benchmarkPrice on the flow
// date. The result feeds the same quantity and valuation recurrences as a
// real instrument.
func SimulateAbsolute(benchmark []MarketDay, transactions []Transaction) ([]PositionDay, error) {
	dates := make([]time.Time, len(benchmark))
	for idx := range benchmark {
		dates[idx] = benchmark[idx].Date
	}
	if err := checkDateDescending(dates); err != nil {
		return nil, err
	}

	byDate := make(map[time.Time][]Transaction, len(transactions))
	for _, trx := range transactions {
		byDate[trx.Date] = append(byDate[trx.Date], trx)
	}

	out := make([]PositionDay, 0, len(benchmark))
	for _, day := range benchmark {
		base := PositionDay{
			Date:   day.Date,
			Ticker: day.Ticker,
			Close:  day.Close,
			Split:  day.Split,
		}

		trxs, ok := byDate[day.Date]
		if !ok {
			out = append(out, base)
			continue
		}

		for _, trx := range trxs {
			if day.Close == 0 {
				return nil, ErrMissingBenchmarkPrice
			}
			row := base
			row.TransactionQty = -trx.Value / day.Close
			row.TransactionVal = trx.Value
			out = append(out, row)
		}
	}

	return out, nil
}

// SimulateProportional synthesizes a benchmark position that mirrors the
// relative size changes of one instrument's position rather than its cash
// amounts. The series must be date-descending; the simulation runs oldest
// to newest as an explicit two-state machine:
//
//   - noPosition -> holding on the first nonzero transaction, or on any
//     transaction after full liquidation; sized by the cash-equivalent rule
//     since no proportional basis exists yet.
//   - holding -> holding applies the instrument's split-adjusted fractional
//     change in holdings to the running synthetic quantity.
//   - holding -> noPosition whenever the running synthetic quantity returns
//     to zero (within liquidationEpsilon).
//
// Benchmark split factors scale the running quantity on the day they are
// reported, independent of the instrument's own splits. Days without a
// transaction carry a zero synthetic quantity; accumulation happens in
// HoldingQuantities.
func SimulateProportional(rows []ComparisonDay) ([]PositionDay, error) {
	dates := make([]time.Time, len(rows))
	for idx := range rows {
		dates[idx] = rows[idx].Date
	}
	if err := checkDateDescending(dates); err != nil {
		return nil, err
	}

	out := make([]PositionDay, len(rows))
	for idx := range rows {
		out[idx] = PositionDay{
			Date:   rows[idx].Date,
			Ticker: rows[idx].BenchmarkTicker,
			Close:  rows[idx].BenchmarkClose,
			Split:  rows[idx].BenchmarkSplit,
		}
	}

	state := noPosition
	latestQty := 0.0

	for idx := len(rows) - 1; idx >= 0; idx-- {
		row := rows[idx]
		latestQty *= row.BenchmarkSplit

		if row.AssetTransactionQty == 0 {
			continue
		}

		switch state {
		case noPosition:
			if row.BenchmarkClose == 0 {
				return nil, ErrMissingBenchmarkPrice
			}
			qty := -row.AssetTransactionVal / row.BenchmarkClose
			out[idx].TransactionQty = qty
			latestQty += qty
			state = holding

		case holding:
			yesterdayQty := rows[idx+1].AssetQuantity * row.AssetSplit
			qty := ((row.AssetTransactionQty+yesterdayQty)/yesterdayQty - 1) * latestQty
			out[idx].TransactionQty = qty
			latestQty += qty

			if math.Abs(latestQty) < liquidationEpsilon {
				latestQty = 0
				state = noPosition
			}
		}

		out[idx].TransactionVal = -row.BenchmarkClose * out[idx].TransactionQty
	}

	return out, nil
}
