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
	"os"

	"github.com/folio-track/ftrack/common"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Data directory
	viper.BindEnv("data.dir", "FTRACK_DATA_DIR")
	rootCmd.PersistentFlags().String("data-dir", ".", "Directory holding transactions.csv, portfolio.toml and marketdata/")
	viper.BindPFlag("data.dir", rootCmd.PersistentFlags().Lookup("data-dir"))

	// Artifacts
	viper.BindEnv("report.artifact_dir", "FTRACK_ARTIFACT_DIR")
	rootCmd.PersistentFlags().String("artifact-dir", "", "Directory to write json artifacts to, if blank don't write artifacts")
	viper.BindPFlag("report.artifact_dir", rootCmd.PersistentFlags().Lookup("artifact-dir"))

	rootCmd.PersistentFlags().Int("evolution-days", 0, "Limit the printed evolution table to the most recent N days, 0 prints all")
	viper.BindPFlag("report.evolution_days", rootCmd.PersistentFlags().Lookup("evolution-days"))

	// Logging configuration
	viper.BindEnv("log.level", "FTRACK_LOG_LEVEL")
	rootCmd.PersistentFlags().String("log-level", "warning", "Logging level")
	viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))

	viper.BindEnv("log.report_caller", "FTRACK_LOG_REPORT_CALLER")
	rootCmd.PersistentFlags().Bool("log-report-caller", false, "Log function name that called log statement")
	viper.BindPFlag("log.report_caller", rootCmd.PersistentFlags().Lookup("log-report-caller"))

	viper.BindEnv("log.output", "FTRACK_LOG_OUTPUT")
	rootCmd.PersistentFlags().String("log-output", "stdout", "Write logs to specified output one of: file path, `stdout`, or `stderr`")
	viper.BindPFlag("log.output", rootCmd.PersistentFlags().Lookup("log-output"))

	viper.BindEnv("log.pretty", "FTRACK_LOG_PRETTY")
	rootCmd.PersistentFlags().Bool("log-pretty", false, "Print logs in a human readable console format")
	viper.BindPFlag("log.pretty", rootCmd.PersistentFlags().Lookup("log-pretty"))
}

var rootCmd = &cobra.Command{
	Use:     "ftrack",
	Version: common.CurrentVersion.String(),
	Short:   "ftrack analyzes investment portfolio performance",
	Long:    `A portfolio analysis tool that computes money-weighted and time-weighted returns, compares each holding against a benchmark, and aggregates dividends.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
