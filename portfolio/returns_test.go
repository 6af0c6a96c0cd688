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

var _ = Describe("DailyReturns", func() {
	Context("with a 1000 investment valued at 1200", func() {
		var points []portfolio.ReturnPoint

		BeforeEach(func() {
			points = []portfolio.ReturnPoint{
				{Date: day(2023, time.June, 1), Value: 1200},
				{Date: day(2023, time.January, 2), TransactionVal: -1000, Value: 1000},
			}
		})

		It("reports a 20 percent gain on the newest day", func() {
			out, err := portfolio.DailyReturns(points)
			Expect(err).To(BeNil())
			Expect(out[0].AbsoluteGain).To(Equal(200.0))
			Expect(out[0].PercentGain).To(Equal(20.0))
		})

		It("forces the earliest day's gains to zero", func() {
			out, err := portfolio.DailyReturns(points)
			Expect(err).To(BeNil())
			Expect(out[1].AbsoluteGain).To(Equal(0.0))
			Expect(out[1].PercentGain).To(Equal(0.0))
		})

		It("tracks money out and money in", func() {
			out, err := portfolio.DailyReturns(points)
			Expect(err).To(BeNil())
			Expect(out[0].MoneyOut).To(Equal(-1000.0))
			Expect(out[0].MoneyIn).To(Equal(1200.0))
		})
	})

	Context("with a zero money-out basis", func() {
		It("reports a zero percentage gain instead of dividing by zero", func() {
			points := []portfolio.ReturnPoint{
				{Date: day(2023, time.June, 1), Value: 50},
				{Date: day(2023, time.January, 2), TransactionVal: 100, Value: 0},
			}

			out, err := portfolio.DailyReturns(points)
			Expect(err).To(BeNil())
			Expect(out[0].PercentGain).To(Equal(0.0))
		})
	})

	Context("with duplicate dates", func() {
		It("keeps the first row of each date", func() {
			points := []portfolio.ReturnPoint{
				{Date: day(2023, time.June, 1), Value: 1250},
				{Date: day(2023, time.January, 2), TransactionVal: -500, Value: 1000},
				{Date: day(2023, time.January, 2), TransactionVal: -500, Value: 1000},
			}

			out, err := portfolio.DailyReturns(points)
			Expect(err).To(BeNil())
			Expect(out).To(HaveLen(2))
			Expect(out[0].MoneyOut).To(Equal(-1000.0))
			Expect(out[0].AbsoluteGain).To(Equal(250.0))
			Expect(out[0].PercentGain).To(Equal(25.0))
		})
	})

	Context("with a date-ascending series", func() {
		It("errors", func() {
			points := []portfolio.ReturnPoint{
				{Date: day(2023, time.January, 2)},
				{Date: day(2023, time.June, 1)},
			}

			_, err := portfolio.DailyReturns(points)
			Expect(err).To(MatchError(portfolio.ErrUnsorted))
		})
	})
})

var _ = Describe("SimpleReturns", func() {
	var points []portfolio.ReturnPoint

	BeforeEach(func() {
		raw := []portfolio.ReturnPoint{
			{Date: day(2024, time.March, 1), Value: 1400},
			{Date: day(2024, time.January, 10), Value: 1320},
			{Date: day(2023, time.June, 1), Value: 1200},
			{Date: day(2023, time.January, 2), TransactionVal: -1000, Value: 1000},
		}

		var err error
		points, err = portfolio.DailyReturns(raw)
		Expect(err).To(BeNil())
	})

	Context("with the all-time frequency", func() {
		It("returns one absolute and one percentage row", func() {
			out, err := portfolio.SimpleReturns(points, portfolio.FreqAll)
			Expect(err).To(BeNil())
			Expect(out).To(HaveLen(2))

			Expect(out[0].Year).To(Equal("all_time"))
			Expect(out[0].Unit).To(Equal("abs"))
			Expect(out[0].Value).To(Equal(400.0))

			Expect(out[1].Unit).To(Equal("perc"))
			Expect(out[1].Value).To(Equal(40.0))
		})
	})

	Context("with the yearly frequency", func() {
		It("uses each year's starting money in as the basis", func() {
			out, err := portfolio.SimpleReturns(points, portfolio.FreqYearly)
			Expect(err).To(BeNil())
			Expect(out).To(HaveLen(4))

			Expect(out[0].Year).To(Equal("2024"))
			Expect(out[0].Value).To(Equal(80.0))
			Expect(out[1].Value).To(Equal(6.06))

			Expect(out[2].Year).To(Equal("2023"))
			Expect(out[2].Value).To(Equal(200.0))
			Expect(out[3].Value).To(Equal(20.0))
		})
	})

	Context("with no points", func() {
		It("returns no summaries", func() {
			out, err := portfolio.SimpleReturns(nil, portfolio.FreqAll)
			Expect(err).To(BeNil())
			Expect(out).To(HaveLen(0))
		})
	})

	Context("with a date-ascending series", func() {
		It("errors before computing any period", func() {
			ascending := []portfolio.ReturnPoint{
				{Date: day(2023, time.January, 2), TransactionVal: -100, Value: 100},
				{Date: day(2023, time.June, 1), Value: 110},
			}

			_, err := portfolio.SimpleReturns(ascending, portfolio.FreqAll)
			Expect(err).To(MatchError(portfolio.ErrUnsorted))
		})
	})
})

var _ = Describe("ElapsedYears", func() {
	It("measures the series span in years", func() {
		points := []portfolio.ReturnPoint{
			{Date: day(2025, time.January, 2)},
			{Date: day(2023, time.January, 2)},
		}

		Expect(portfolio.ElapsedYears(points)).To(Equal(2.0))
	})

	It("is zero for an empty series", func() {
		Expect(portfolio.ElapsedYears(nil)).To(Equal(0.0))
	})
})
