package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"

	"github.com/cametumbling/scrapey/internal/platform/htmlparser"
	"github.com/cametumbling/scrapey/internal/platform/httpclient"
	"github.com/cametumbling/scrapey/internal/tracer"
)

// version is set at build time via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	fs := pflag.NewFlagSet("scrapey", pflag.ContinueOnError)
	fs.SetOutput(os.Stdout)

	url := fs.StringP("url", "u", "", "root URL to trace (required)")
	logLevel := fs.StringP("log-level", "l", "", "log filter: debug|info|warn|error (absent = logging disabled)")
	workers := fs.IntP("workers", "w", 8, "worker pool size")
	maxRetries := fs.IntP("max-retries", "r", 3, "max retries per URL after the first attempt")
	retryDelayMs := fs.IntP("retry-delay-ms", "d", 200, "base retry delay in milliseconds")
	showVersion := fs.Bool("version", false, "print build version and exit")

	if err := fs.Parse(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stdout, err)
		os.Exit(1)
	}

	if *showVersion {
		fmt.Fprintln(os.Stdout, version)
		os.Exit(0)
	}

	if *url == "" {
		fmt.Fprintln(os.Stdout, "error: -u/--url is required")
		os.Exit(1)
	}

	logger := newLogger(*logLevel)

	httpClient := httpclient.New(httpclient.Config{
		UserAgent: "scrapey/1.0",
	})

	engine := tracer.NewEngine(tracer.Config{
		StartURL:            *url,
		Workers:             *workers,
		MaxRetries:          uint8(*maxRetries),
		InitialRetryDelayMs: int64(*retryDelayMs),
		Fetcher:             httpClient,
		Extractor:           htmlparser.Extractor{},
		Logger:              logger,
		Progress:            tracer.NewTerminalProgress(os.Stdout, *url),
	})

	linkMap := engine.Run(context.Background())

	fmt.Fprintln(os.Stdout)
	fmt.Fprint(os.Stdout, tracer.Render(linkMap))
}

// newLogger builds the structured logger for a trace run. An empty level
// disables logging entirely, matching the spec's "absent = disabled"
// default for -l/--log-level.
func newLogger(level string) zerolog.Logger {
	if level == "" {
		return zerolog.Nop()
	}

	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()

	switch level {
	case "debug":
		logger = logger.Level(zerolog.DebugLevel)
	case "info":
		logger = logger.Level(zerolog.InfoLevel)
	case "warn":
		logger = logger.Level(zerolog.WarnLevel)
	case "error":
		logger = logger.Level(zerolog.ErrorLevel)
	default:
		logger = logger.Level(zerolog.InfoLevel)
	}

	return logger
}
