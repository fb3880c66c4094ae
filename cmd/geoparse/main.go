// Package main contains a simple command line tool for the geoparse
// Workflow, in the shape of googlemaps-go's examples/*/cmdline tools:
// flag-parsed input, one request, one printed result.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/geoparse-go/geoparse/config"
	"github.com/geoparse-go/geoparse/metrics"
	"github.com/geoparse-go/geoparse/tokenizer"
	"github.com/geoparse-go/geoparse/workflow"
)

var (
	text    = flag.String("text", "", "The Japanese text to geoparse.")
	verbose = flag.Bool("verbose", false, "Log pipeline-stage timing and debug detail.")
)

func usageAndExit(msg string) {
	fmt.Fprintln(os.Stderr, msg)
	fmt.Println("Flags:")
	flag.PrintDefaults()
	os.Exit(2)
}

func main() {
	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("geoparse: failed")
	}
}

func run() error {
	flag.Parse()
	if *text == "" {
		usageAndExit("Please specify -text.")
	}

	level := zerolog.InfoLevel
	if *verbose {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger().Level(level)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	tk, err := tokenizer.New()
	if err != nil {
		return err
	}

	reporter := metrics.LoggingReporter{Observe: func(name string, duration time.Duration, stageErr error) {
		logger.Debug().Str("stage", name).Dur("duration", duration).Err(stageErr).Msg("geoparse: stage complete")
	}}

	w, err := workflow.New(
		workflow.WithTokenizer(tk),
		workflow.WithConfig(config.Defaults()),
		workflow.WithLogger(logger),
		workflow.WithReporter(reporter),
	)
	if err != nil {
		return err
	}

	result, err := w.Parse(ctx)(*text)
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(result.GeoJSON, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	logger.Info().
		Str("request_id", result.RequestID).
		Int("num_geowords", result.Statistics.NumGeowords).
		Int("num_addresses", result.Statistics.NumAddresses).
		Msg("geoparse: done")
	return nil
}
