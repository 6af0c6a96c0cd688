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

package cmd

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/folio-track/ftrack/common"
	"github.com/folio-track/ftrack/data"
	"github.com/folio-track/ftrack/portfolio"
	"github.com/folio-track/ftrack/reporting"
	"github.com/rs/zerolog/log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(analyzeCmd)
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze the portfolio and print performance tables",
	Long: `Load the transaction ledger and market data from the data directory,
model the portfolio against its benchmark, and print the evolution,
return, comparison, distribution and dividend tables.`,
	Run: func(cmd *cobra.Command, args []string) {
		common.SetupLogging()

		dataDir := viper.GetString("data.dir")

		cfg, err := data.ReadPortfolioFile(filepath.Join(dataDir, "portfolio.toml"))
		if err != nil {
			log.Fatal().Stack().Err(err).Msg("could not load portfolio configuration")
		}

		ledger, err := data.ReadLedger(filepath.Join(dataDir, "transactions.csv"))
		if err != nil {
			log.Fatal().Stack().Err(err).Msg("could not load transaction ledger")
		}

		var begin, end time.Time
		for _, trx := range ledger {
			begin = common.MinTime(begin, trx.Date)
			end = common.MaxTime(end, trx.Date)
		}
		log.Info().Int("NumTransactions", len(ledger)).Time("Begin", begin).Time("End", end).Msg("loaded ledger")

		manager := data.NewManager()

		tickers := make(map[string]bool, len(ledger))
		for _, trx := range ledger {
			tickers[trx.Ticker] = true
		}
		tickerList := make([]string, 0, len(tickers))
		for ticker := range tickers {
			tickerList = append(tickerList, ticker)
		}

		market, err := manager.MarketMap(tickerList)
		if err != nil {
			log.Fatal().Stack().Err(err).Msg("could not load market data")
		}

		benchmark, err := manager.Market(cfg.Benchmark)
		if err != nil {
			log.Fatal().Stack().Err(err).Str("Benchmark", cfg.Benchmark).Msg("could not load benchmark data")
		}

		result, err := portfolio.Model(portfolio.PortfolioData{
			Transactions:    ledger,
			Currency:        cfg.Currency,
			BenchmarkTicker: cfg.Benchmark,
			EndDate:         cfg.EndDate,
		}, market, benchmark)
		if err != nil {
			log.Fatal().Stack().Err(err).Msg("could not model portfolio")
		}

		fmt.Println(reporting.Render(result))

		if artifactDir := viper.GetString("report.artifact_dir"); artifactDir != "" {
			if err := reporting.WriteArtifacts(result, artifactDir); err != nil {
				log.Fatal().Stack().Err(err).Str("Dir", artifactDir).Msg("could not write artifacts")
			}
			log.Info().Str("Dir", artifactDir).Msg("wrote artifacts")
		}
	},
}
