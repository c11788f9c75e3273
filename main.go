/*
Copyright 2021.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/kyma-project/telemetry-testkit/internal/build"
	"github.com/kyma-project/telemetry-testkit/internal/check"
	"github.com/kyma-project/telemetry-testkit/internal/cliflags"
	"github.com/kyma-project/telemetry-testkit/internal/config"
	"github.com/kyma-project/telemetry-testkit/internal/errortypes"
	"github.com/kyma-project/telemetry-testkit/internal/logger"
	"github.com/kyma-project/telemetry-testkit/test/testkit/logdata"
)

const (
	exitOK    = 0
	exitUnmet = 1
	exitUsage = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	var (
		inputFile        string
		expectationsFile string
		logLevel         string
		showVersion      bool
		selectors        cliflags.Map
	)

	flags := pflag.NewFlagSet("logcheck", pflag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.StringVarP(&inputFile, "file", "f", "", "OTLP JSON Lines file written by the collector file exporter")
	flags.StringVarP(&expectationsFile, "expectations", "e", "", "YAML file with the expected log records")
	flags.Var(&selectors, "select", "Only check records whose resource has the given attribute value (repeatable)")
	flags.StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flags.BoolVar(&showVersion, "version", false, "Print version information and exit")

	if err := flags.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return exitOK
		}

		return exitUsage
	}

	if showVersion {
		fmt.Fprintln(stdout, build.Summary())
		return exitOK
	}

	atomicLevel, err := logger.ParseLevel(logLevel)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitUsage
	}

	log := logger.New(atomicLevel)
	defer log.Sync() //nolint:errcheck // stderr sync fails on some terminals

	cfg := config.NewGlobal(
		config.WithInputFile(inputFile),
		config.WithExpectationsFile(expectationsFile),
		config.WithSelectors(selectors),
		config.WithVersion(build.GitTag()),
	)

	if err := cfg.Validate(); err != nil {
		log.Error("Invalid configuration", zap.Error(err))
		return exitUsage
	}

	log.Debug("Starting logcheck", zap.String("version", cfg.Version()), zap.Any("build", build.InfoMap()))

	err = runCheck(log, cfg)

	switch {
	case err == nil:
		log.Info("All expectations met")
		return exitOK
	case errortypes.IsUnmetExpectation(err):
		log.Error("Expectations not met", zap.Error(err))
		return exitUnmet
	default:
		log.Error("Check failed", zap.Error(err))
		return exitUsage
	}
}

func runCheck(log *zap.Logger, cfg config.Global) error {
	data, err := os.ReadFile(cfg.InputFile())
	if err != nil {
		return &errortypes.InputError{Path: cfg.InputFile(), Err: err}
	}

	records, err := logdata.UnmarshalJSONL(data)
	if err != nil {
		return &errortypes.InputError{Path: cfg.InputFile(), Err: err}
	}

	expectations, err := config.LoadExpectations(cfg.ExpectationsFile())
	if err != nil {
		return &errortypes.InputError{Path: cfg.ExpectationsFile(), Err: err}
	}

	selected := check.Select(records, cfg.Selectors())
	log.Info("Loaded log records",
		zap.Int("total", len(records)),
		zap.Int("selected", len(selected)),
		zap.Int("expectations", len(expectations)))

	results, err := check.Verify(selected, expectations)

	for _, result := range results {
		fields := []zap.Field{
			zap.String("expectation", result.Name),
			zap.Int("matched", result.Matched),
			zap.Int("required", result.Required),
		}

		if result.Met() {
			log.Info("Expectation met", fields...)
			continue
		}

		log.Warn("Expectation not met", append(fields, zap.Strings("firstMismatch", result.Failures))...)
	}

	return err
}
