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

package portfolio_test

import (
	"time"

	"github.com/folio-track/ftrack/portfolio"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("SimulateAbsolute", func() {
	var benchmark []portfolio.MarketDay

	BeforeEach(func() {
		benchmark = []portfolio.MarketDay{
			{Date: day(2023, time.January, 3), Ticker: "SPY", Close: 60, Split: 1},
			{Date: day(2023, time.January, 2), Ticker: "SPY", Close: 50, Split: 1},
		}
	})

	It("converts each cash flow into benchmark shares at that day's close", func() {
		transactions := []portfolio.Transaction{
			{Date: day(2023, time.January, 2), Ticker: "MSFT", Quantity: 10, Value: -100},
		}

		out, err := portfolio.SimulateAbsolute(benchmark, transactions)
		Expect(err).To(BeNil())
		Expect(out).To(HaveLen(2))
		Expect(out[1].TransactionQty).To(Equal(2.0))
		Expect(out[1].TransactionVal).To(Equal(-100.0))
		Expect(out[0].TransactionQty).To(Equal(0.0))
	})

	It("emits one row per transaction on multi-transaction days", func() {
		transactions := []portfolio.Transaction{
			{Date: day(2023, time.January, 2), Ticker: "MSFT", Value: -100},
			{Date: day(2023, time.January, 2), Ticker: "AAPL", Value: -50},
		}

		out, err := portfolio.SimulateAbsolute(benchmark, transactions)
		Expect(err).To(BeNil())
		Expect(out).To(HaveLen(3))
		Expect(out[1].TransactionQty).To(Equal(2.0))
		Expect(out[2].TransactionQty).To(Equal(1.0))
	})

	It("errors when the benchmark has no price on a flow date", func() {
		benchmark[1].Close = 0
		transactions := []portfolio.Transaction{
			{Date: day(2023, time.January, 2), Ticker: "MSFT", Value: -100},
		}

		_, err := portfolio.SimulateAbsolute(benchmark, transactions)
		Expect(err).To(MatchError(portfolio.ErrMissingBenchmarkPrice))
	})

	It("errors on a date-ascending benchmark series", func() {
		ascending := []portfolio.MarketDay{
			{Date: day(2023, time.January, 2), Ticker: "SPY", Close: 50, Split: 1},
			{Date: day(2023, time.January, 3), Ticker: "SPY", Close: 60, Split: 1},
		}

		_, err := portfolio.SimulateAbsolute(ascending, nil)
		Expect(err).To(MatchError(portfolio.ErrUnsorted))
	})
})

var _ = Describe("SimulateProportional", func() {
	Context("over a buy, a scale-up, a benchmark split, and a full liquidation", func() {
		var rows []portfolio.ComparisonDay

		BeforeEach(func() {
			rows = []portfolio.ComparisonDay{
				{Date: day(2023, time.January, 6), AssetTicker: "MSFT", AssetSplit: 1, AssetTransactionQty: 5, AssetTransactionVal: -80, AssetQuantity: 5, BenchmarkTicker: "SPY", BenchmarkClose: 80, BenchmarkSplit: 1},
				{Date: day(2023, time.January, 5), AssetTicker: "MSFT", AssetSplit: 1, AssetTransactionQty: -20, AssetTransactionVal: 300, AssetQuantity: 0, BenchmarkTicker: "SPY", BenchmarkClose: 75, BenchmarkSplit: 1},
				{Date: day(2023, time.January, 4), AssetTicker: "MSFT", AssetSplit: 1, AssetQuantity: 20, BenchmarkTicker: "SPY", BenchmarkClose: 70, BenchmarkSplit: 2},
				{Date: day(2023, time.January, 3), AssetTicker: "MSFT", AssetSplit: 1, AssetTransactionQty: 10, AssetTransactionVal: -120, AssetQuantity: 20, BenchmarkTicker: "SPY", BenchmarkClose: 60, BenchmarkSplit: 1},
				{Date: day(2023, time.January, 2), AssetTicker: "MSFT", AssetSplit: 1, AssetTransactionQty: 10, AssetTransactionVal: -100, AssetQuantity: 10, BenchmarkTicker: "SPY", BenchmarkClose: 50, BenchmarkSplit: 1},
			}
		})

		It("opens the position with the cash-equivalent rule", func() {
			out, err := portfolio.SimulateProportional(rows)
			Expect(err).To(BeNil())
			Expect(out[4].TransactionQty).To(Equal(2.0))
			Expect(out[4].TransactionVal).To(Equal(-100.0))
		})

		It("scales the position by the asset's fractional change while holding", func() {
			out, err := portfolio.SimulateProportional(rows)
			Expect(err).To(BeNil())
			// holdings went from 10 to 20 shares, so the synthetic position doubles
			Expect(out[3].TransactionQty).To(Equal(2.0))
			Expect(out[3].TransactionVal).To(Equal(-120.0))
		})

		It("applies benchmark splits to the running quantity", func() {
			out, err := portfolio.SimulateProportional(rows)
			Expect(err).To(BeNil())
			// full liquidation the day after the 2-for-1 benchmark split
			Expect(out[1].TransactionQty).To(Equal(-8.0))
			Expect(out[1].TransactionVal).To(Equal(600.0))
		})

		It("re-enters with the cash-equivalent rule after a full liquidation", func() {
			out, err := portfolio.SimulateProportional(rows)
			Expect(err).To(BeNil())
			Expect(out[0].TransactionQty).To(Equal(1.0))
			Expect(out[0].TransactionVal).To(Equal(-80.0))
		})

		It("carries benchmark market data on every row", func() {
			out, err := portfolio.SimulateProportional(rows)
			Expect(err).To(BeNil())
			Expect(out[2].Ticker).To(Equal("SPY"))
			Expect(out[2].Close).To(Equal(70.0))
			Expect(out[2].Split).To(Equal(2.0))
			Expect(out[2].TransactionQty).To(Equal(0.0))
		})
	})

	It("errors when the benchmark has no price on an opening day", func() {
		rows := []portfolio.ComparisonDay{
			{Date: day(2023, time.January, 2), AssetTicker: "MSFT", AssetSplit: 1, AssetTransactionQty: 10, AssetTransactionVal: -100, AssetQuantity: 10, BenchmarkTicker: "SPY", BenchmarkClose: 0, BenchmarkSplit: 1},
		}

		_, err := portfolio.SimulateProportional(rows)
		Expect(err).To(MatchError(portfolio.ErrMissingBenchmarkPrice))
	})

	It("errors on a date-ascending series", func() {
		rows := []portfolio.ComparisonDay{
			{Date: day(2023, time.January, 2), BenchmarkSplit: 1},
			{Date: day(2023, time.January, 3), BenchmarkSplit: 1},
		}

		_, err := portfolio.SimulateProportional(rows)
		Expect(err).To(MatchError(portfolio.ErrUnsorted))
	})
})
