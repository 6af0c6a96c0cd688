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
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/folio-track/ftrack/portfolio"
	lru "github.com/hashicorp/golang-lru"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// Manager reads per-ticker market series from the configured data
// directory and memoizes them in a local LRU cache. Series are returned
// date-descending, the order every engine recurrence expects.
type Manager struct {
	dataDir string
	cache   *lru.Cache
}

// NewManager creates a market data manager rooted at viper's data.dir
func NewManager() *Manager {
	size := viper.GetInt("cache.local_size")
	if size <= 0 {
		size = 64
	}

	cache, err := lru.New(size)
	if err != nil {
		log.Panic().Err(err).Msg("could not create LRU cache")
	}

	return &Manager{
		dataDir: viper.GetString("data.dir"),
		cache:   cache,
	}
}

// Market returns the daily market series for ticker, loading
// <dataDir>/marketdata/<TICKER>.csv on first use
func (m *Manager) Market(ticker string) ([]portfolio.MarketDay, error) {
	ticker = strings.ToUpper(ticker)

	if cached, ok := m.cache.Get(ticker); ok {
		return cached.([]portfolio.MarketDay), nil
	}

	fn := filepath.Join(m.dataDir, "marketdata", ticker+".csv")
	fh, err := os.Open(fn)
	if err != nil {
		log.Error().Stack().Err(err).Str("Ticker", ticker).Str("FileName", fn).Msg("could not open market data")
		return nil, fmt.Errorf("%w: %s", ErrNotFound, ticker)
	}
	defer fh.Close()

	series, err := parseMarketSeries(fh, ticker)
	if err != nil {
		return nil, err
	}

	m.cache.Add(ticker, series)
	return series, nil
}

// parseMarketSeries reads a csv with columns date,close,split,dividend.
// split and dividend may be blank (1.0 and 0 respectively). Rows are sorted
// date-descending before returning.
func parseMarketSeries(r io.Reader, ticker string) ([]portfolio.MarketDay, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, err
	}
	cols, err := columnIndex(header, "date", "close")
	if err != nil {
		log.Error().Stack().Err(err).Str("Ticker", ticker).Msg("market data header is invalid")
		return nil, err
	}

	series := make([]portfolio.MarketDay, 0, 2520)
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		date, err := time.Parse("2006-01-02", record[cols["date"]])
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrMalformedRecord, record[cols["date"]])
		}

		closePrice, err := strconv.ParseFloat(record[cols["close"]], 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrMalformedRecord, record[cols["close"]])
		}

		split := 1.0
		if idx, ok := cols["split"]; ok && record[idx] != "" {
			if split, err = strconv.ParseFloat(record[idx], 64); err != nil {
				return nil, fmt.Errorf("%w: %s", ErrMalformedRecord, record[idx])
			}
		}

		dividend := 0.0
		if idx, ok := cols["dividend"]; ok && record[idx] != "" {
			if dividend, err = strconv.ParseFloat(record[idx], 64); err != nil {
				return nil, fmt.Errorf("%w: %s", ErrMalformedRecord, record[idx])
			}
		}

		series = append(series, portfolio.MarketDay{
			Date:     date,
			Ticker:   ticker,
			Close:    closePrice,
			Split:    split,
			Dividend: dividend,
		})
	}

	if len(series) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptySeries, ticker)
	}

	sort.SliceStable(series, func(i, j int) bool {
		return series[i].Date.After(series[j].Date)
	})

	return series, nil
}

// MarketMap loads the market series for every ticker in the list
func (m *Manager) MarketMap(tickers []string) (map[string][]portfolio.MarketDay, error) {
	market := make(map[string][]portfolio.MarketDay, len(tickers))
	for _, ticker := range tickers {
		series, err := m.Market(ticker)
		if err != nil {
			return nil, err
		}
		market[strings.ToUpper(ticker)] = series
	}
	return market, nil
}
