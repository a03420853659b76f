package main

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/dmitrijs2005/caffetrack/internal/client/cli"
	"github.com/dmitrijs2005/caffetrack/internal/client/config"
	"github.com/dmitrijs2005/caffetrack/internal/logging"
)

func main() {

	// A missing .env file is fine; the environment still applies.
	_ = godotenv.Load()

	cfg := config.LoadConfig()
	logger := logging.NewTextLogger(os.Stderr, cfg.Debug)

	app, err := cli.NewApp(cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	if err := app.Run(context.Background()); err != nil {
		log.Fatalf("%v", err)
	}
}
