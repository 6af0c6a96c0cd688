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

var _ = Describe("SortTransactions", func() {
	It("orders the ledger date-descending keeping same-day order stable", func() {
		ledger := []portfolio.Transaction{
			{Date: day(2023, time.January, 2), Ticker: "MSFT"},
			{Date: day(2023, time.June, 1), Ticker: "AAPL"},
			{Date: day(2023, time.June, 1), Ticker: "NVDA"},
		}

		out := portfolio.SortTransactions(ledger)
		Expect(out[0].Ticker).To(Equal("AAPL"))
		Expect(out[1].Ticker).To(Equal("NVDA"))
		Expect(out[2].Ticker).To(Equal("MSFT"))
		Expect(ledger[0].Ticker).To(Equal("MSFT"))
	})
})

var _ = Describe("ComputeSourceID", func() {
	var trx portfolio.Transaction

	BeforeEach(func() {
		trx = portfolio.Transaction{
			Date:     day(2023, time.January, 2),
			Ticker:   "MSFT",
			Quantity: 10,
			Value:    -100,
			Source:   portfolio.SourceName,
		}
	})

	It("produces a 16-byte hex identity", func() {
		Expect(portfolio.ComputeSourceID(&trx)).To(Succeed())
		Expect(trx.SourceID).To(HaveLen(32))
	})

	It("is stable across runs", func() {
		other := trx
		Expect(portfolio.ComputeSourceID(&trx)).To(Succeed())
		Expect(portfolio.ComputeSourceID(&other)).To(Succeed())
		Expect(other.SourceID).To(Equal(trx.SourceID))
	})

	It("changes when the transaction changes", func() {
		other := trx
		other.Value = -101
		Expect(portfolio.ComputeSourceID(&trx)).To(Succeed())
		Expect(portfolio.ComputeSourceID(&other)).To(Succeed())
		Expect(other.SourceID).ToNot(Equal(trx.SourceID))
	})
})
