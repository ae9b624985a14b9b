// Command bookchat is a terminal client for the appointment booking backend.
//
// Usage:
//
//	bookchat [flags]
//
// Flags:
//
//	-base-url string   Backend base URL (default: BOOKCHAT_BASE_URL env var, config file, or http://localhost:8000/api)
//	-booking string    Look up a booking by ID, print it, and exit
//	-debug-log string  Append diagnostics to this file
//
// Configuration may also be placed in .bookchat/config.yaml; flags and
// environment variables take precedence over the file.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/citomed/bookchat"
	"github.com/citomed/bookchat/backend"
	bt "github.com/citomed/bookchat/bubbletea"
	"github.com/citomed/bookchat/config"
	"github.com/citomed/bookchat/controller"
	"github.com/citomed/bookchat/format"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "bookchat: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		baseURL   = flag.String("base-url", "", "Backend base URL")
		bookingID = flag.String("booking", "", "Look up a booking by ID, print it, and exit")
		debugLog  = flag.String("debug-log", "", "Append diagnostics to this file")
	)
	flag.Parse()

	// .env is optional; a missing file is fine.
	_ = godotenv.Load()

	cfg, err := config.Load(".")
	if err != nil {
		return err
	}
	logPath := *debugLog
	if logPath == "" {
		logPath = cfg.DebugLog
	}

	logger, err := newLogger(logPath)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	url := resolveBaseURL(*baseURL, os.Getenv("BOOKCHAT_BASE_URL"), cfg)
	client := backend.New(url,
		backend.WithLogger(logger),
		backend.WithHTTPClient(&http.Client{Timeout: time.Duration(cfg.RequestTimeout) * time.Second}),
	)

	// Handle OS signals for graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if *bookingID != "" {
		b, err := client.Booking(ctx, *bookingID)
		if err != nil {
			return err
		}
		fmt.Print(bookingSummary(b))
		return nil
	}

	// Reachability probe. Failure is a warning, not fatal: the user can keep
	// the TUI open and resend once the backend is up.
	probeCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	if err := client.Health(probeCtx); err != nil {
		fmt.Fprintf(os.Stderr, "bookchat: warning: backend not reachable at %s: %v\n", url, err)
		logger.Warn("health probe failed", zap.String("base_url", url), zap.Error(err))
	}
	cancel()

	opts := []controller.Option{controller.WithLogger(logger)}
	if cfg.Greeting != "" {
		opts = append(opts, controller.WithGreeting(cfg.Greeting))
	}
	ctrl := controller.New(client, opts...)

	if err := bt.Run(ctx, bt.New(ctrl, bookchat.DefaultTheme())); err != nil {
		return fmt.Errorf("TUI: %w", err)
	}
	return nil
}

// resolveBaseURL applies precedence: flag, then environment, then config file.
func resolveBaseURL(flagVal, envVal string, cfg *config.Config) string {
	switch {
	case flagVal != "":
		return flagVal
	case envVal != "":
		return envVal
	case cfg.BaseURL != "":
		return cfg.BaseURL
	default:
		return backend.DefaultBaseURL
	}
}

func newLogger(path string) (*zap.Logger, error) {
	if path == "" {
		return zap.NewNop(), nil
	}
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{path}
	cfg.ErrorOutputPaths = []string{path}
	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("debug log: %w", err)
	}
	return logger, nil
}

// bookingSummary renders a booking for the -booking lookup flag.
func bookingSummary(b bookchat.Booking) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Booking %s\n", b.BookingID)
	if b.Status != "" {
		fmt.Fprintf(&sb, "Status: %s\n", b.Status)
	}
	if b.AppointmentTypeName != "" {
		fmt.Fprintf(&sb, "Type: %s (%s)\n", b.AppointmentTypeName, format.Duration(b.Duration))
	}
	if b.Date != "" {
		fmt.Fprintf(&sb, "Date: %s\n", format.Date(b.Date))
	}
	if b.StartTime != "" {
		fmt.Fprintf(&sb, "Time: %s\n", format.TimeRange(b.StartTime, b.EndTime))
	}
	if b.Patient.Name != "" {
		fmt.Fprintf(&sb, "Patient: %s\n", b.Patient.Name)
	}
	if b.ConfirmationCode != "" {
		fmt.Fprintf(&sb, "Confirmation code: %s\n", b.ConfirmationCode)
	}
	return sb.String()
}
