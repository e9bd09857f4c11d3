package main

import (
	"context"
	"errors"
	"os"

	"github.com/desertthunder/fluentctl/internal/services"
	"github.com/desertthunder/fluentctl/internal/shared"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)

	config := shared.DefaultConfig()
	if _, err := os.Stat("config.toml"); err == nil {
		if loadedConfig, err := shared.LoadConfig("config.toml"); err == nil {
			config = loadedConfig
		}
	}
	config.ApplyEnv()

	var crm services.Service
	if config.ValidateCredentials() == nil {
		if svc, err := services.NewFluentService(config, nil); err == nil {
			crm = svc
		}
	}

	runner := NewRunner(RunnerOpts{
		Config: config,
		CRM:    crm,
		Logger: logger,
	})

	app := &cli.Command{
		Name:     "fluentctl",
		Usage:    "Manage FluentCRM contacts, tags and lists from the command line",
		Version:  "0.3.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		if errors.Is(err, shared.ErrContactNotFound) {
			logger.Fatalf("%v", err)
		}
		logger.Fatalf("application error: %v", err)
	}
}
