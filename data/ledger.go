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
	"strconv"
	"strings"
	"time"

	"github.com/folio-track/ftrack/portfolio"
	"github.com/rs/zerolog/log"
)

// ReadLedger parses a transaction csv with the columns
// date,ticker,quantity,value. Purchases carry positive quantity and negative
// value, sales the reverse. Rows may appear in any order; the engine re-sorts
// as needed. A header row is required.
func ReadLedger(fn string) ([]portfolio.Transaction, error) {
	fh, err := os.Open(fn)
	if err != nil {
		log.Error().Stack().Err(err).Str("FileName", fn).Msg("could not open ledger")
		return nil, err
	}
	defer fh.Close()

	return parseLedger(fh, fn)
}

func parseLedger(r io.Reader, fn string) ([]portfolio.Transaction, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, err
	}
	cols, err := columnIndex(header, "date", "ticker", "quantity", "value")
	if err != nil {
		log.Error().Stack().Err(err).Str("FileName", fn).Msg("ledger header is invalid")
		return nil, err
	}

	transactions := make([]portfolio.Transaction, 0, 128)
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
			log.Error().Stack().Err(err).Str("FileName", fn).Strs("Record", record).Msg("could not parse transaction date")
			return nil, fmt.Errorf("%w: %s", ErrMalformedRecord, record[cols["date"]])
		}

		qty, err := strconv.ParseFloat(record[cols["quantity"]], 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrMalformedRecord, record[cols["quantity"]])
		}

		val, err := strconv.ParseFloat(record[cols["value"]], 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrMalformedRecord, record[cols["value"]])
		}

		trx := portfolio.Transaction{
			Date:     date,
			Ticker:   strings.ToUpper(record[cols["ticker"]]),
			Quantity: qty,
			Value:    val,
			Source:   portfolio.SourceName,
		}
		if err := portfolio.ComputeSourceID(&trx); err != nil {
			return nil, err
		}

		log.Debug().Object("Transaction", &trx).Msg("parsed ledger row")
		transactions = append(transactions, trx)
	}

	return transactions, nil
}

// columnIndex maps required column names to their positions in the header
func columnIndex(header []string, required ...string) (map[string]int, error) {
	cols := make(map[string]int, len(header))
	for idx, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = idx
	}
	for _, name := range required {
		if _, ok := cols[name]; !ok {
			return nil, fmt.Errorf("%w: missing column %s", ErrMalformedRecord, name)
		}
	}
	return cols, nil
}
