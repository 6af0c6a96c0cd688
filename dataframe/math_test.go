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

package dataframe_test

import (
	"time"

	"github.com/folio-track/ftrack/dataframe"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("DataFrame math", func() {
	var df *dataframe.DataFrame

	BeforeEach(func() {
		df = dataframe.New("Portfolio", "Benchmark")
		Expect(df.InsertRow(time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC), 100, 90)).To(Succeed())
		Expect(df.InsertRow(time.Date(2021, 1, 2, 0, 0, 0, 0, time.UTC), 110, 95)).To(Succeed())
		Expect(df.InsertRow(time.Date(2021, 1, 3, 0, 0, 0, 0, time.UTC), 120, 100)).To(Succeed())
	})

	Describe("Sub", func() {
		It("subtracts matching columns and returns a new frame", func() {
			other := dataframe.New("Portfolio")
			Expect(other.InsertRow(time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC), 90)).To(Succeed())
			Expect(other.InsertRow(time.Date(2021, 1, 2, 0, 0, 0, 0, time.UTC), 95)).To(Succeed())
			Expect(other.InsertRow(time.Date(2021, 1, 3, 0, 0, 0, 0, time.UTC), 100)).To(Succeed())

			diff := df.Sub(other)
			Expect(diff.Vals[0]).To(Equal([]float64{10, 15, 20}))
			// columns without a match are untouched
			Expect(diff.Vals[1]).To(Equal([]float64{90, 95, 100}))
			// original is untouched
			Expect(df.Vals[0][0]).To(Equal(100.0))
		})
	})
})
