package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sunugal/releves/internal/stubrecords"
	"github.com/sunugal/releves/pkg/logger"
)

// Default configuration constants.
const (
	defaultAddr       = ":8081"
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 10 * time.Second
)

func main() {
	var (
		addr     = flag.String("addr", defaultAddr, "Listen address of the stub records service")
		email    = flag.String("email", "", "Accepted login email (default: built-in fixture account)")
		password = flag.String("password", "", "Accepted login password")
		token    = flag.String("token", "", "Bearer token the stub issues")
		help     = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		showHelp()
		return
	}

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}
	defer func() {
		_ = logger.Sync()
	}()
	log := logger.Get()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	mux := http.NewServeMux()
	stub := stubrecords.New(
		stubrecords.WithCredentials(*email, *password),
		stubrecords.WithToken(*token),
		stubrecords.WithLogger(log),
	)
	stub.Register(ctx, mux)

	srv := &http.Server{
		Addr:              *addr,
		Handler:           mux,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		log.Info(ctx, "starting stub records service", logger.String("addr", *addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			os.Stderr.WriteString("stub records server failed: " + err.Error() + "\n")
			return
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "stub records shutdown failed", logger.Error(err))
	}
}

func showHelp() {
	os.Stdout.WriteString(`Stub Records Service
====================

A fixture academic records service for running the portal locally without
the real records backend.

Usage:
  go run cmd/stub-records/main.go [options]

Options:
  -addr string
        Listen address (default ":8081")
  -email string
        Accepted login email (default: built-in fixture account)
  -password string
        Accepted login password
  -token string
        Bearer token the stub issues and requires
  -help
        Show this help message

Examples:
  # Run with the built-in fixture account
  go run cmd/stub-records/main.go

  # Point the portal at the stub
  RELEVES_API_BASE_URL=http://localhost:8081 go run cmd/main.go
`)
}
