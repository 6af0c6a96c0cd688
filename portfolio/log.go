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

import "github.com/rs/zerolog"

func (trx *Transaction) MarshalZerologObject(e *zerolog.Event) {
	e.Time("Date", trx.Date).
		Str("Ticker", trx.Ticker).
		Float64("Quantity", trx.Quantity).
		Float64("Value", trx.Value).
		Str("Source", trx.Source).
		Str("SourceID", trx.SourceID)
}

func (summary *ReturnSummary) MarshalZerologObject(e *zerolog.Event) {
	e.Str("Year", summary.Year).
		Str("Metric", summary.Metric).
		Str("Unit", summary.Unit).
		Float64("Value", summary.Value)
	if summary.Years != 0 {
		e.Float64("Years", summary.Years)
	}
}

func (row *ComparisonRow) MarshalZerologObject(e *zerolog.Event) {
	e.Str("Ticker", row.Ticker).
		Float64("AssetPercentGain", row.AssetPercentGain).
		Float64("BenchmarkPercentGain", row.BenchmarkPercentGain).
		Float64("Diff", row.Diff).
		Str("Status", row.Status)
}
