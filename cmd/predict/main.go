// predict - запуск потока предсказания цены из терминала.
//
// Usage:
//
//	predict --endpoint http://localhost:8080 --overall-qual 7 --gr-liv-area 1800 \
//	        --total-bath 2.5 --total-sf 2600 --house-age 12 --remodel-age 5
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/urfave/cli/v2"

	logger_adapter "listing-portal/internal/adapters/logger"
	"listing-portal/internal/adapters/pagestate"
	"listing-portal/internal/adapters/prediction_client"
	"listing-portal/internal/contextkeys"
	"listing-portal/internal/core/domain"
	"listing-portal/internal/core/port"
	"listing-portal/internal/core/usecase"
)

// флаг -> поле формы
var fieldFlags = []struct {
	flag  string
	field domain.FieldID
	usage string
}{
	{"overall-qual", domain.FieldOverallQual, "Overall quality (1-10)"},
	{"gr-liv-area", domain.FieldGrLivArea, "Above ground living area"},
	{"total-bath", domain.FieldTotalBath, "Total bathrooms"},
	{"total-sf", domain.FieldTotalSF, "Total square feet"},
	{"house-age", domain.FieldHouseAge, "House age in years"},
	{"remodel-age", domain.FieldRemodelAge, "Years since remodel"},
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newApp(os.Stdout, os.Stderr).RunContext(ctx, os.Args); err != nil {
		if exitErr, ok := err.(cli.ExitCoder); ok {
			os.Exit(exitErr.ExitCode())
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newApp(stdout, stderr io.Writer) *cli.App {
	flags := []cli.Flag{
		&cli.StringFlag{
			Name:    "endpoint",
			Value:   "http://localhost:8080",
			Usage:   "Base URL of the service exposing /predict_price",
			EnvVars: []string{"PREDICTION_SERVICE_URL"},
		},
		&cli.DurationFlag{
			Name:    "timeout",
			Usage:   "Request timeout, 0 disables it",
			EnvVars: []string{"PREDICTION_CLIENT_TIMEOUT"},
		},
		&cli.StringFlag{
			Name:  "price",
			Usage: "Current value of the listing price field",
		},
		&cli.StringFlag{
			Name:  "log-level",
			Value: "warn",
			Usage: "Log level (debug, info, warn, error)",
		},
	}
	for _, f := range fieldFlags {
		flags = append(flags, &cli.StringFlag{Name: f.flag, Usage: f.usage})
	}

	return &cli.App{
		Name:      "predict",
		Usage:     "Request an AI price prediction for a house",
		Flags:     flags,
		Writer:    stdout,
		ErrWriter: stderr,
		// код выхода выставляет main, а не библиотека
		ExitErrHandler: func(*cli.Context, error) {},
		Action: func(c *cli.Context) error {
			return runPrediction(c, stdout, stderr)
		},
	}
}

func runPrediction(c *cli.Context, stdout, stderr io.Writer) error {
	logger := logger_adapter.NewSlogAdapter(logger_adapter.SlogConfig{
		Writer: stderr,
		Level:  parseLogLevel(c.String("log-level")),
	}).WithFields(port.Fields{"component": "predict_cli"})
	ctx := contextkeys.ContextWithLogger(c.Context, logger)

	inputs := map[domain.FieldID]string{domain.FieldPrice: c.String("price")}
	for _, f := range fieldFlags {
		inputs[f.field] = c.String(f.flag)
	}

	page := pagestate.New(inputs, pagestate.WithNoticeHook(func(msg string) {
		fmt.Fprintln(stderr, msg)
	}))

	flow := usecase.NewRequestPredictionUseCase(prediction_client.NewClient(c.String("endpoint"), c.Duration("timeout")))
	_, err := flow.Execute(ctx, page)

	snap := page.Snapshot()
	if snap.ResultBox != nil && snap.ResultBox.Visible {
		fmt.Fprintln(stdout, snap.ResultBox.Text)
		fmt.Fprintf(stdout, "price: %s\n", snap.Inputs[string(domain.FieldPrice)])
	}

	if err != nil {
		// уведомление уже напечатано в stderr
		return cli.Exit("", 1)
	}
	return nil
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}
