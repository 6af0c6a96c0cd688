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

package data

import (
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog/log"
)

// PortfolioFile is the on-disk portfolio document, e.g.:
//
//	currency  = "EUR"
//	benchmark = "SXR8.DE"
//	end_date  = "2024-06-28"
type PortfolioFile struct {
	Currency  string `toml:"currency"`
	Benchmark string `toml:"benchmark"`
	EndDate   string `toml:"end_date"`
}

// Config is the parsed portfolio configuration handed to the engine
type Config struct {
	Currency  string
	Benchmark string
	EndDate   time.Time
}

// ReadPortfolioFile parses the portfolio toml document at fn
func ReadPortfolioFile(fn string) (*Config, error) {
	doc, err := os.ReadFile(fn)
	if err != nil {
		log.Error().Stack().Err(err).Str("FileName", fn).Msg("could not read portfolio file")
		return nil, err
	}

	var file PortfolioFile
	if err := toml.Unmarshal(doc, &file); err != nil {
		log.Error().Stack().Err(err).Str("FileName", fn).Msg("could not parse portfolio file")
		return nil, err
	}

	if file.Benchmark == "" {
		return nil, ErrNoBenchmark
	}
	if file.EndDate == "" {
		return nil, ErrNoEndDate
	}

	endDate, err := time.Parse("2006-01-02", file.EndDate)
	if err != nil {
		log.Error().Stack().Err(err).Str("EndDate", file.EndDate).Msg("could not parse end date")
		return nil, err
	}

	currency := file.Currency
	if currency == "" {
		currency = "USD"
	}

	return &Config{
		Currency:  currency,
		Benchmark: file.Benchmark,
		EndDate:   endDate,
	}, nil
}
