package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"ledger/internal/cli"
	"ledger/internal/display"
	"ledger/internal/log"
	"ledger/internal/services"
	"ledger/internal/storage"
)

func main() {
	cli.LoadEnvFile()
	cfg := cli.LoadAndValidateConfig()
	logger := cli.SetupLogger(cfg.LogLevel)

	backend, closer := cli.InitBackend(logger, cfg)
	defer closer.Close()
	classifier := cli.InitCategorizer(logger, cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx = log.WithContext(ctx, logger)

	store := storage.New(backend, storage.WithLogger(logger))
	svc := services.NewTrackerService(store, classifier, services.WithLogger(logger))
	svc.Open(ctx)

	app := &App{
		svc:   svc,
		money: display.INR(),
		in:    bufio.NewReader(os.Stdin),
		out:   os.Stdout,
	}
	if err := app.Run(ctx, os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		closer.Close()
		os.Exit(1)
	}
}
