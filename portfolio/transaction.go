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
	"encoding/hex"
	"fmt"
	"sort"

	"github.com/rs/zerolog/log"
	"github.com/zeebo/blake3"
)

// SortTransactions orders a ledger date-descending, keeping the relative
// order of same-day entries stable. Returns a new slice.
func SortTransactions(transactions []Transaction) []Transaction {
	out := make([]Transaction, len(transactions))
	copy(out, transactions)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})
	return out
}

// ComputeSourceID calculates a 16-byte blake3 hash over the date, source,
// ticker, quantity, and value of the transaction so ledger rows keep a
// stable identity across runs
func ComputeSourceID(trx *Transaction) error {
	h := blake3.New()

	d, err := trx.Date.UTC().MarshalText()
	if err != nil {
		return err
	}

	if _, err := h.Write(d); err != nil {
		log.Error().Stack().Err(err).Msg("could not write date to blake3 hasher")
		return err
	}

	if _, err := h.Write([]byte(trx.Source)); err != nil {
		log.Error().Stack().Err(err).Msg("could not write source to blake3 hasher")
		return err
	}

	if _, err := h.Write([]byte(trx.Ticker)); err != nil {
		log.Error().Stack().Err(err).Msg("could not write ticker to blake3 hasher")
		return err
	}

	if _, err := h.Write([]byte(fmt.Sprintf("%.5f", trx.Quantity))); err != nil {
		log.Error().Stack().Err(err).Msg("could not write quantity to blake3 hasher")
		return err
	}

	if _, err := h.Write([]byte(fmt.Sprintf("%.5f", trx.Value))); err != nil {
		log.Error().Stack().Err(err).Msg("could not write value to blake3 hasher")
		return err
	}

	digest := h.Digest()
	buf := make([]byte, 16)
	n, err := digest.Read(buf)
	if err != nil {
		return err
	}
	if n != 16 {
		return ErrGenerateHash
	}

	trx.SourceID = hex.EncodeToString(buf)
	return nil
}
