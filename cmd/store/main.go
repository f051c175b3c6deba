package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/Lexv0lk/vending-machine/internal/pkg/logging"
	"github.com/Lexv0lk/vending-machine/internal/store/bootstrap"
)

func main() {
	mainCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	defaultLogger := logging.StdoutLogger

	cfg, err := bootstrap.LoadStoreConfig()
	if err != nil {
		defaultLogger.Error("failed to load config", "error", err.Error())
		os.Exit(1)
	}

	app := bootstrap.NewStoreApp(cfg, defaultLogger)
	if err := app.Run(mainCtx); err != nil {
		defaultLogger.Error("store app stopped with error", "error", err.Error())
		os.Exit(1)
	}

	defaultLogger.Info("store app stopped")
}
