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

var _ = Describe("TimeWeightedReturns", func() {
	Context("with no cash flows after inception", func() {
		It("equals the value growth", func() {
			points := []portfolio.ReturnPoint{
				{Date: day(2023, time.January, 3), Value: 110},
				{Date: day(2023, time.January, 2), TransactionVal: -100, Value: 100},
			}

			out, err := portfolio.TimeWeightedReturns(points, portfolio.FreqAll)
			Expect(err).To(BeNil())
			Expect(out).To(HaveLen(1))
			Expect(out[0].Year).To(Equal("all_time"))
			Expect(out[0].Metric).To(Equal("twr"))
			Expect(out[0].Value).To(Equal(10.0))
		})
	})

	Context("with a cash flow mid-period", func() {
		It("chains sub-period returns so the flow does not distort the result", func() {
			// 10% growth, then a further deposit, then 10% growth again
			points := []portfolio.ReturnPoint{
				{Date: day(2023, time.January, 5), Value: 242},
				{Date: day(2023, time.January, 4), TransactionVal: -110, Value: 220},
				{Date: day(2023, time.January, 3), Value: 110},
				{Date: day(2023, time.January, 2), TransactionVal: -100, Value: 100},
			}

			out, err := portfolio.TimeWeightedReturns(points, portfolio.FreqAll)
			Expect(err).To(BeNil())
			Expect(out[0].Value).To(Equal(21.0))
		})
	})

	Context("with a single day", func() {
		It("has no completed sub-periods and returns zero", func() {
			points := []portfolio.ReturnPoint{
				{Date: day(2023, time.January, 2), TransactionVal: -100, Value: 100},
			}

			out, err := portfolio.TimeWeightedReturns(points, portfolio.FreqAll)
			Expect(err).To(BeNil())
			Expect(out[0].Value).To(Equal(0.0))
		})
	})

	Context("with the all-time frequency", func() {
		It("tags the row with the elapsed years", func() {
			points := []portfolio.ReturnPoint{
				{Date: day(2025, time.January, 2), Value: 110},
				{Date: day(2023, time.January, 2), TransactionVal: -100, Value: 100},
			}

			out, err := portfolio.TimeWeightedReturns(points, portfolio.FreqAll)
			Expect(err).To(BeNil())
			Expect(out[0].Years).To(Equal(2.0))
		})
	})

	Context("with the yearly frequency", func() {
		It("emits one row per calendar year and no elapsed years", func() {
			points := []portfolio.ReturnPoint{
				{Date: day(2024, time.March, 1), Value: 121},
				{Date: day(2024, time.January, 10), Value: 110},
				{Date: day(2023, time.June, 1), Value: 110},
				{Date: day(2023, time.January, 2), TransactionVal: -100, Value: 100},
			}

			out, err := portfolio.TimeWeightedReturns(points, portfolio.FreqYearly)
			Expect(err).To(BeNil())
			Expect(out).To(HaveLen(2))
			Expect(out[0].Year).To(Equal("2024"))
			Expect(out[0].Value).To(Equal(10.0))
			Expect(out[0].Years).To(Equal(0.0))
			Expect(out[1].Year).To(Equal("2023"))
			Expect(out[1].Value).To(Equal(10.0))
		})
	})

	Context("with a date-ascending series", func() {
		It("errors instead of chaining misordered sub-periods", func() {
			ascending := []portfolio.ReturnPoint{
				{Date: day(2023, time.January, 2), TransactionVal: -100, Value: 100},
				{Date: day(2023, time.January, 3), Value: 110},
			}

			_, err := portfolio.TimeWeightedReturns(ascending, portfolio.FreqAll)
			Expect(err).To(MatchError(portfolio.ErrUnsorted))
		})
	})
})

var _ = Describe("CAGR", func() {
	It("annualizes a multi-year return", func() {
		rate, err := portfolio.CAGR(21.0, 2)
		Expect(err).To(BeNil())
		Expect(rate).To(Equal(10.0))
	})

	It("is the identity over one year", func() {
		rate, err := portfolio.CAGR(10.0, 1)
		Expect(err).To(BeNil())
		Expect(rate).To(Equal(10.0))
	})

	It("handles negative returns", func() {
		rate, err := portfolio.CAGR(-19.0, 2)
		Expect(err).To(BeNil())
		Expect(rate).To(Equal(-10.0))
	})

	It("rejects a non-positive period", func() {
		_, err := portfolio.CAGR(10.0, 0)
		Expect(err).To(MatchError(portfolio.ErrNonPositiveYears))
	})
})
