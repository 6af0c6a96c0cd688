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

// Package reporting converts engine results into tables a human can read
// and json artifacts downstream tools can consume. The engine pre-rounds
// every display value; nothing here re-rounds.
package reporting

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/folio-track/ftrack/dataframe"
	"github.com/folio-track/ftrack/portfolio"
	"github.com/goccy/go-json"
	"github.com/olekukonko/tablewriter"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// Evolution builds the date-indexed portfolio vs benchmark value table.
// The diff columns are recomputed from the value columns rather than read
// off the engine's pre-rounded diffs.
func Evolution(result *portfolio.Result) *dataframe.DataFrame {
	df := dataframe.New(
		"Portfolio Value", "Portfolio Gain %",
		"Benchmark Value", "Benchmark Gain %",
	)
	pf := dataframe.New("Value", "Gain %")
	bench := dataframe.New("Value", "Gain %")

	// evolution is date-descending; the dataframe wants ascending inserts
	for idx := len(result.Evolution) - 1; idx >= 0; idx-- {
		point := result.Evolution[idx]
		if err := df.InsertRow(point.Date,
			point.PortfolioValue, point.PortfolioPercGain,
			point.BenchmarkValue, point.BenchmarkPercGain); err != nil {
			log.Error().Stack().Err(err).Time("Date", point.Date).Msg("could not insert evolution row")
			continue
		}

		// same dates as df, cannot be out of order
		if err := pf.InsertRow(point.Date, point.PortfolioValue, point.PortfolioPercGain); err != nil {
			log.Error().Stack().Err(err).Time("Date", point.Date).Msg("could not insert portfolio row")
		}
		if err := bench.InsertRow(point.Date, point.BenchmarkValue, point.BenchmarkPercGain); err != nil {
			log.Error().Stack().Err(err).Time("Date", point.Date).Msg("could not insert benchmark row")
		}
	}

	diff := pf.Sub(bench)
	df.Insert("Value Diff", diff.Vals[0])
	df.Insert("Gain % Diff", diff.Vals[1])

	return df
}

// Render produces the full ASCII report
func Render(result *portfolio.Result) string {
	s := &strings.Builder{}

	fmt.Fprintf(s, "Portfolio evolution (%s)\n\n", result.Currency)
	s.WriteString(evolutionTable(result))
	s.WriteString("\nReturn summary\n\n")
	s.WriteString(summaryTable(result))
	s.WriteString("\nInstruments vs benchmark\n\n")
	s.WriteString(comparisonTable(result))
	s.WriteString("\nDistribution at end date\n\n")
	s.WriteString(distributionTable(result))
	s.WriteString("\nDividends\n\n")
	s.WriteString(dividendTable(result))

	return s.String()
}

func evolutionTable(result *portfolio.Result) string {
	df := Evolution(result)

	// limit the printed table to the most recent days when configured;
	// the json artifact always carries the full history
	if days := viper.GetInt("report.evolution_days"); days > 0 && df.Len() > days {
		begin := df.Dates[df.Len()-days]
		df = df.Trim(begin, df.End())
	}

	return df.Table()
}

func summaryTable(result *portfolio.Result) string {
	s := &strings.Builder{}
	table := tablewriter.NewWriter(s)
	table.SetHeader([]string{"Year", "Metric", "Unit", "Portfolio", "Benchmark"})
	table.SetBorder(false)

	benchmark := make(map[string]float64, len(result.BenchmarkReturns))
	for _, summary := range result.BenchmarkReturns {
		benchmark[summary.Year+"|"+summary.Metric+"|"+summary.Unit] = summary.Value
	}

	for _, summary := range result.PortfolioReturns {
		benchVal := benchmark[summary.Year+"|"+summary.Metric+"|"+summary.Unit]
		table.Append([]string{
			summary.Year,
			summary.Metric,
			summary.Unit,
			fmt.Sprintf("%.2f", summary.Value),
			fmt.Sprintf("%.2f", benchVal),
		})
	}

	table.Render()
	return s.String()
}

func comparisonTable(result *portfolio.Result) string {
	s := &strings.Builder{}
	table := tablewriter.NewWriter(s)
	table.SetHeader([]string{"Ticker", "Gain %", "Benchmark Gain %", "Diff", "Status"})
	table.SetBorder(false)

	for _, row := range result.AssetsVsBenchmark {
		table.Append([]string{
			row.Ticker,
			fmt.Sprintf("%.2f", row.AssetPercentGain),
			fmt.Sprintf("%.2f", row.BenchmarkPercentGain),
			fmt.Sprintf("%.2f", row.Diff),
			row.Status,
		})
	}

	table.Render()
	return s.String()
}

func distributionTable(result *portfolio.Result) string {
	s := &strings.Builder{}
	table := tablewriter.NewWriter(s)
	table.SetHeader([]string{"Ticker", "Value", "Percent"})

	total := 0.0
	totalPercent := 0.0
	for _, row := range result.Distribution {
		total += row.Value
		totalPercent += row.Percent
		table.Append([]string{
			row.Ticker,
			fmt.Sprintf("%.2f", row.Value),
			fmt.Sprintf("%.2f", row.Percent),
		})
	}

	table.SetFooter([]string{"Total", fmt.Sprintf("%.2f", total), fmt.Sprintf("%.2f", totalPercent)})
	table.SetBorder(false)
	table.Render()
	return s.String()
}

func dividendTable(result *portfolio.Result) string {
	s := &strings.Builder{}
	table := tablewriter.NewWriter(s)
	table.SetHeader([]string{"Ticker / Year", "Total"})
	table.SetBorder(false)

	for _, row := range result.DividendsByTicker {
		table.Append([]string{row.Ticker, fmt.Sprintf("%.2f", row.Total)})
	}
	for _, row := range result.DividendsByYear {
		table.Append([]string{fmt.Sprintf("%d", row.Year), fmt.Sprintf("%.2f", row.Total)})
	}

	table.Render()
	return s.String()
}

// WriteArtifacts serializes the result to json files under dir
func WriteArtifacts(result *portfolio.Result, dir string) error {
	if err := os.MkdirAll(dir, 0750); err != nil {
		log.Error().Stack().Err(err).Str("Dir", dir).Msg("could not create artifact directory")
		return err
	}

	artifacts := map[string]any{
		"result.json":       result,
		"evolution.json":    result.Evolution,
		"distribution.json": result.Distribution,
		"comparison.json":   result.AssetsVsBenchmark,
		"dividends.json": map[string]any{
			"byTicker": result.DividendsByTicker,
			"byYear":   result.DividendsByYear,
		},
		"returns.json": map[string]any{
			"portfolio": result.PortfolioReturns,
			"benchmark": result.BenchmarkReturns,
		},
	}

	for fn, doc := range artifacts {
		raw, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			log.Error().Stack().Err(err).Str("FileName", fn).Msg("could not serialize artifact")
			return err
		}
		if err := os.WriteFile(filepath.Join(dir, fn), raw, 0600); err != nil {
			log.Error().Stack().Err(err).Str("FileName", fn).Msg("could not write artifact")
			return err
		}
	}

	return nil
}
