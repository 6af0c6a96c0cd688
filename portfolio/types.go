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
	"errors"
	"time"
)

var (
	ErrUnsorted              = errors.New("series is not in date-descending order")
	ErrNonPositiveYears      = errors.New("elapsed years must be greater than zero")
	ErrNoTransactions        = errors.New("portfolio has no transactions")
	ErrMissingBenchmarkPrice = errors.New("benchmark price not available for date")
	ErrGenerateHash          = errors.New("could not create a new hash")
)

const (
	SourceName = "FT"
)

// Frequency selects how return summaries are grouped
type Frequency string

const (
	FreqYearly Frequency = "yearly"
	FreqAll    Frequency = "all"
)

// Metric and unit tags used in return summary rows
const (
	MetricSimpleReturn = "simple_return"
	MetricTWR          = "twr"

	UnitAbs  = "abs"
	UnitPerc = "perc"
	UnitCAGR = "cagr"

	AllTime = "all_time"
)

const (
	StatusOpen   = "open"
	StatusClosed = "closed"
)

// liquidationEpsilon bounds the quantity below which a position counts as
// fully liquidated. Quantities are accumulated floats; testing against an
// exact zero breaks on the first fractional share.
const liquidationEpsilon = 1e-9

// Transaction is a single ledger entry. Quantity is the signed inventory
// change (purchases positive) and Value the signed investor cash flow
// (purchases negative).
type Transaction struct {
	Date     time.Time `json:"date"`
	Ticker   string    `json:"ticker"`
	Quantity float64   `json:"quantity"`
	Value    float64   `json:"value"`
	Source   string    `json:"source"`
	SourceID string    `json:"sourceID"`
}

// MarketDay is one day of market data for a single instrument. Close is the
// unadjusted closing price in portfolio currency. Split is the multiplicative
// factor reported effective the day it occurred (1.0 = no split). Dividend is
// the per-share amount on the ex-dividend date (0 otherwise).
type MarketDay struct {
	Date     time.Time `json:"date"`
	Ticker   string    `json:"ticker"`
	Close    float64   `json:"close"`
	Split    float64   `json:"split"`
	Dividend float64   `json:"dividend"`
}

// PositionDay is one row of a per-instrument position series: the market
// data for the day, any transaction placed that day, and the derived held
// quantity and position value.
type PositionDay struct {
	Date           time.Time `json:"date"`
	Ticker         string    `json:"ticker"`
	Close          float64   `json:"close"`
	Split          float64   `json:"split"`
	Dividend       float64   `json:"dividend"`
	TransactionQty float64   `json:"transactionQty"`
	TransactionVal float64   `json:"transactionVal"`
	Quantity       float64   `json:"quantity"`
	Value          float64   `json:"value"`
}

// ReturnPoint is one day of a money-weighted return series.
type ReturnPoint struct {
	Date           time.Time `json:"date"`
	TransactionVal float64   `json:"transactionVal"`
	Value          float64   `json:"value"`
	MoneyOut       float64   `json:"moneyOut"`
	MoneyIn        float64   `json:"moneyIn"`
	AbsoluteGain   float64   `json:"absoluteGain"`
	PercentGain    float64   `json:"percentGain"`
}

// ReturnSummary is one row of a period return table. Year is either a
// calendar year ("2023") or the AllTime tag. Years carries the elapsed
// period for all-time rows and is zero otherwise.
type ReturnSummary struct {
	Year   string  `json:"year"`
	Metric string  `json:"metric"`
	Unit   string  `json:"unit"`
	Value  float64 `json:"value"`
	Years  float64 `json:"years,omitempty"`
}

// EvolutionPoint joins portfolio and benchmark daily values and gains.
type EvolutionPoint struct {
	Date              time.Time `json:"date"`
	PortfolioValue    float64   `json:"portfolioValue"`
	PortfolioAbsGain  float64   `json:"portfolioAbsGain"`
	PortfolioPercGain float64   `json:"portfolioPercGain"`
	BenchmarkValue    float64   `json:"benchmarkValue"`
	BenchmarkAbsGain  float64   `json:"benchmarkAbsGain"`
	BenchmarkPercGain float64   `json:"benchmarkPercGain"`
	ValueDiff         float64   `json:"valueDiff"`
	AbsoluteGainDiff  float64   `json:"absoluteGainDiff"`
	PercentGainDiff   float64   `json:"percentGainDiff"`
}

// ComparisonRow compares one instrument's percentage gain against the
// proportionally simulated benchmark position.
type ComparisonRow struct {
	Ticker               string  `json:"ticker"`
	AssetPercentGain     float64 `json:"assetPercentGain"`
	BenchmarkPercentGain float64 `json:"benchmarkPercentGain"`
	Diff                 float64 `json:"diff"`
	Status               string  `json:"status"`
}

// DividendTotal is the lifetime dividend cash attributed to one instrument.
type DividendTotal struct {
	Ticker string  `json:"ticker"`
	Total  float64 `json:"total"`
}

// YearlyDividend is the dividend cash attributed to one calendar year.
type YearlyDividend struct {
	Year  int     `json:"year"`
	Total float64 `json:"total"`
}

// DistributionRow is one instrument's weight in the portfolio at end date.
type DistributionRow struct {
	Ticker  string  `json:"ticker"`
	Value   float64 `json:"value"`
	Percent float64 `json:"percent"`
}
