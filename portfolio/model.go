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

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// PortfolioData groups the engine's input: the full transaction ledger and
// the portfolio configuration. Market data is supplied separately, one
// complete gap-free date-descending series per instrument and one for the
// benchmark, all in portfolio currency.
type PortfolioData struct {
	Transactions    []Transaction
	Currency        string
	BenchmarkTicker string
	StartDate       time.Time
	EndDate         time.Time
}

// Result is the full output of a modelling run, everything the reporting
// layer consumes. All display values are already rounded to 2 decimal
// places.
type Result struct {
	ID                uuid.UUID         `json:"id"`
	ComputedOn        time.Time         `json:"computedOn"`
	Currency          string            `json:"currency"`
	Evolution         []EvolutionPoint  `json:"evolution"`
	Distribution      []DistributionRow `json:"distribution"`
	AssetsVsBenchmark []ComparisonRow   `json:"assetsVsBenchmark"`
	DividendsByTicker []DividendTotal   `json:"dividendsByTicker"`
	DividendsByYear   []YearlyDividend  `json:"dividendsByYear"`
	PortfolioReturns  []ReturnSummary   `json:"portfolioReturns"`
	BenchmarkReturns  []ReturnSummary   `json:"benchmarkReturns"`
}

// BuildPositionSeries merges one instrument's market series with its
// transactions. Every market day yields one row; a day with transactions
// yields one row per transaction, in ledger order, so same-day entries are
// preserved for the recurrences to accumulate. Days without a transaction
// carry zero quantity and value.
func BuildPositionSeries(market []MarketDay, transactions []Transaction) []PositionDay {
	byDate := make(map[time.Time][]Transaction, len(transactions))
	for _, trx := range transactions {
		byDate[trx.Date] = append(byDate[trx.Date], trx)
	}

	out := make([]PositionDay, 0, len(market))
	for _, day := range market {
		base := PositionDay{
			Date:     day.Date,
			Ticker:   day.Ticker,
			Close:    day.Close,
			Split:    day.Split,
			Dividend: day.Dividend,
		}

		trxs, ok := byDate[day.Date]
		if !ok {
			out = append(out, base)
			continue
		}

		for _, trx := range trxs {
			row := base
			row.TransactionQty = trx.Quantity
			row.TransactionVal = trx.Value
			out = append(out, row)
		}
	}

	return out
}

// Model runs the complete pipeline: per-instrument position series,
// portfolio aggregation, dividend attribution, benchmark simulation,
// per-instrument benchmark comparison, and the return summaries for both
// the portfolio and the benchmark.
func Model(data PortfolioData, market map[string][]MarketDay, benchmark []MarketDay) (*Result, error) {
	if len(data.Transactions) == 0 {
		return nil, ErrNoTransactions
	}

	ledger := SortTransactions(data.Transactions)

	log.Info().Int("NumTransactions", len(ledger)).Int("NumInstruments", len(market)).Msg("modelling portfolio")
	model, portfolioPoints, portfolioReturns, err := modelPortfolio(ledger, market)
	if err != nil {
		return nil, err
	}

	divTotals, divYears, err := Dividends(model)
	if err != nil {
		return nil, err
	}

	log.Info().Str("Benchmark", data.BenchmarkTicker).Msg("modelling benchmark")
	benchmarkPoints, benchmarkReturns, err := modelBenchmark(ledger, benchmark)
	if err != nil {
		return nil, err
	}

	log.Info().Msg("modelling instruments vs benchmark")
	comparison, err := AssetsVsBenchmark(model, benchmark)
	if err != nil {
		return nil, err
	}

	result := &Result{
		ID:                uuid.New(),
		ComputedOn:        time.Now(),
		Currency:          data.Currency,
		Evolution:         mergeEvolution(portfolioPoints, benchmarkPoints),
		Distribution:      Distribution(CollapseDailyDuplicates(model), data.EndDate),
		AssetsVsBenchmark: comparison,
		DividendsByTicker: divTotals,
		DividendsByYear:   divYears,
		PortfolioReturns:  portfolioReturns,
		BenchmarkReturns:  benchmarkReturns,
	}

	return result, nil
}

// modelPortfolio computes every instrument's position series and collapses
// them into the portfolio's daily value and return series.
func modelPortfolio(ledger []Transaction, market map[string][]MarketDay) ([]PositionDay, []ReturnPoint, []ReturnSummary, error) {
	tickers := make([]string, 0, len(market))
	for ticker := range market {
		tickers = append(tickers, ticker)
	}
	sort.Strings(tickers)

	model := make([]PositionDay, 0, 1024)
	for _, ticker := range tickers {
		trxs := make([]Transaction, 0, len(ledger))
		for _, trx := range ledger {
			if trx.Ticker == ticker {
				trxs = append(trxs, trx)
			}
		}

		series, err := HoldingQuantities(BuildPositionSeries(market[ticker], trxs))
		if err != nil {
			return nil, nil, nil, err
		}
		model = append(model, Valuations(series)...)
	}

	values := sumValuesByDate(CollapseDailyDuplicates(model))
	points, err := DailyReturns(joinTransactionValues(values, ledger))
	if err != nil {
		return nil, nil, nil, err
	}

	summaries, err := OverallReturns(points)
	if err != nil {
		return nil, nil, nil, err
	}

	return model, points, summaries, nil
}

// modelBenchmark simulates the cash-equivalent benchmark position and
// computes its daily value and return series.
func modelBenchmark(ledger []Transaction, benchmark []MarketDay) ([]ReturnPoint, []ReturnSummary, error) {
	synthetic, err := SimulateAbsolute(benchmark, ledger)
	if err != nil {
		return nil, nil, err
	}

	series, err := HoldingQuantities(synthetic)
	if err != nil {
		return nil, nil, err
	}

	values := sumValuesByDate(CollapseDailyDuplicates(Valuations(series)))
	points, err := DailyReturns(joinTransactionValues(values, ledger))
	if err != nil {
		return nil, nil, err
	}

	summaries, err := OverallReturns(points)
	if err != nil {
		return nil, nil, err
	}

	return points, summaries, nil
}

// AssetsVsBenchmark compares each instrument's money-weighted percentage
// gain against a proportionally simulated benchmark position over the same
// trade history. Rows are tagged open or closed by whether the instrument
// still holds shares on the newest date, and sorted by gain difference
// descending.
func AssetsVsBenchmark(model []PositionDay, benchmark []MarketDay) ([]ComparisonRow, error) {
	benchByDate := make(map[time.Time]MarketDay, len(benchmark))
	for _, day := range benchmark {
		benchByDate[day.Date] = day
	}

	byTicker := make(map[string][]PositionDay)
	tickers := make([]string, 0, 10)
	for _, day := range model {
		if _, ok := byTicker[day.Ticker]; !ok {
			tickers = append(tickers, day.Ticker)
		}
		byTicker[day.Ticker] = append(byTicker[day.Ticker], day)
	}
	sort.Strings(tickers)

	rows := make([]ComparisonRow, 0, len(tickers))
	for _, ticker := range tickers {
		series := byTicker[ticker]

		merged := make([]ComparisonDay, 0, len(series))
		for _, day := range series {
			bench, ok := benchByDate[day.Date]
			if !ok {
				return nil, ErrMissingBenchmarkPrice
			}
			merged = append(merged, ComparisonDay{
				Date:                day.Date,
				AssetTicker:         day.Ticker,
				AssetClose:          day.Close,
				AssetSplit:          day.Split,
				AssetTransactionQty: day.TransactionQty,
				AssetTransactionVal: day.TransactionVal,
				AssetQuantity:       day.Quantity,
				AssetValue:          day.Value,
				BenchmarkTicker:     bench.Ticker,
				BenchmarkClose:      bench.Close,
				BenchmarkSplit:      bench.Split,
			})
		}

		synthetic, err := SimulateProportional(merged)
		if err != nil {
			return nil, err
		}

		syntheticQty, err := HoldingQuantities(synthetic)
		if err != nil {
			return nil, err
		}
		syntheticVal := Valuations(syntheticQty)

		benchPoints := make([]ReturnPoint, len(syntheticVal))
		assetPoints := make([]ReturnPoint, len(series))
		for idx := range syntheticVal {
			benchPoints[idx] = ReturnPoint{
				Date:           syntheticVal[idx].Date,
				TransactionVal: syntheticVal[idx].TransactionVal,
				Value:          syntheticVal[idx].Value,
			}
			assetPoints[idx] = ReturnPoint{
				Date:           series[idx].Date,
				TransactionVal: series[idx].TransactionVal,
				Value:          series[idx].Value,
			}
		}

		benchGains, err := DailyReturns(benchPoints)
		if err != nil {
			return nil, err
		}
		assetGains, err := DailyReturns(assetPoints)
		if err != nil {
			return nil, err
		}

		status := StatusClosed
		if math.Abs(series[0].Quantity) >= liquidationEpsilon {
			status = StatusOpen
		}

		row := ComparisonRow{
			Ticker:               ticker,
			AssetPercentGain:     assetGains[0].PercentGain,
			BenchmarkPercentGain: benchGains[0].PercentGain,
			Status:               status,
		}
		row.Diff = round2(row.AssetPercentGain - row.BenchmarkPercentGain)
		log.Debug().Object("Row", &row).Msg("compared instrument against benchmark")
		rows = append(rows, row)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Diff > rows[j].Diff
	})

	return rows, nil
}

// OverallReturns assembles the yearly and all-time summary table for one
// entity: simple returns in absolute and percentage units, time-weighted
// returns, and the CAGR of both all-time percentage figures.
func OverallReturns(points []ReturnPoint) ([]ReturnSummary, error) {
	if err := checkPointsDescending(points); err != nil {
		return nil, err
	}

	summaries := make([]ReturnSummary, 0, 16)
	for _, freq := range []Frequency{FreqAll, FreqYearly} {
		simple, err := SimpleReturns(points, freq)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, simple...)
	}
	for _, freq := range []Frequency{FreqAll, FreqYearly} {
		twr, err := TimeWeightedReturns(points, freq)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, twr...)
	}

	age := ElapsedYears(points)

	var simpleAll, twrAll float64
	for _, summary := range summaries {
		if summary.Year != AllTime || summary.Unit != UnitPerc {
			continue
		}
		switch summary.Metric {
		case MetricSimpleReturn:
			simpleAll = summary.Value
		case MetricTWR:
			twrAll = summary.Value
		}
	}

	simpleCAGR, err := CAGR(simpleAll, age)
	if err != nil {
		return nil, err
	}
	twrCAGR, err := CAGR(twrAll, age)
	if err != nil {
		return nil, err
	}

	summaries = append(summaries,
		ReturnSummary{Year: AllTime, Metric: MetricSimpleReturn, Unit: UnitCAGR, Value: simpleCAGR},
		ReturnSummary{Year: AllTime, Metric: MetricTWR, Unit: UnitCAGR, Value: twrCAGR},
	)

	for idx := range summaries {
		log.Debug().Object("Summary", &summaries[idx]).Msg("computed return summary")
	}

	return summaries, nil
}

// sumValuesByDate collapses a multi-instrument position series into one
// total value per date, rounded to 2 decimal places, date-descending.
func sumValuesByDate(days []PositionDay) []ReturnPoint {
	totals := make(map[time.Time]float64, len(days))
	dates := make([]time.Time, 0, len(days))
	for _, day := range days {
		if _, ok := totals[day.Date]; !ok {
			dates = append(dates, day.Date)
		}
		totals[day.Date] += day.Value
	}

	sort.Slice(dates, func(i, j int) bool { return dates[i].After(dates[j]) })

	points := make([]ReturnPoint, 0, len(dates))
	for _, date := range dates {
		points = append(points, ReturnPoint{Date: date, Value: round2(totals[date])})
	}
	return points
}

// joinTransactionValues expands a one-row-per-date value series with the
// ledger's cash flows: a date with transactions yields one row per
// transaction, mirroring how same-day flows enter the daily return scan.
func joinTransactionValues(points []ReturnPoint, ledger []Transaction) []ReturnPoint {
	byDate := make(map[time.Time][]Transaction, len(ledger))
	for _, trx := range ledger {
		byDate[trx.Date] = append(byDate[trx.Date], trx)
	}

	out := make([]ReturnPoint, 0, len(points))
	for _, point := range points {
		trxs, ok := byDate[point.Date]
		if !ok {
			out = append(out, point)
			continue
		}
		for _, trx := range trxs {
			row := point
			row.TransactionVal = trx.Value
			out = append(out, row)
		}
	}

	return out
}

// mergeEvolution joins the portfolio and benchmark daily return series on
// date and adds the difference columns.
func mergeEvolution(portfolio []ReturnPoint, benchmark []ReturnPoint) []EvolutionPoint {
	benchByDate := make(map[time.Time]ReturnPoint, len(benchmark))
	for _, point := range benchmark {
		benchByDate[point.Date] = point
	}

	out := make([]EvolutionPoint, 0, len(portfolio))
	for _, point := range portfolio {
		row := EvolutionPoint{
			Date:              point.Date,
			PortfolioValue:    point.Value,
			PortfolioAbsGain:  point.AbsoluteGain,
			PortfolioPercGain: point.PercentGain,
		}
		if bench, ok := benchByDate[point.Date]; ok {
			row.BenchmarkValue = bench.Value
			row.BenchmarkAbsGain = bench.AbsoluteGain
			row.BenchmarkPercGain = bench.PercentGain
		}
		row.ValueDiff = round2(row.PortfolioValue - row.BenchmarkValue)
		row.AbsoluteGainDiff = round2(row.PortfolioAbsGain - row.BenchmarkAbsGain)
		row.PercentGainDiff = round2(row.PortfolioPercGain - row.BenchmarkPercGain)
		out = append(out, row)
	}

	return out
}
