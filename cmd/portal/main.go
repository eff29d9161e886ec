package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/medexpertise/portal/internal/client/cli"
	"github.com/medexpertise/portal/internal/client/config"
	"github.com/medexpertise/portal/internal/logging"
)

func main() {
	cfg := config.LoadConfig()
	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	app, err := cli.NewApp(cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer app.Close()

	app.Run(context.Background())
}
