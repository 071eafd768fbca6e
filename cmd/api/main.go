// Package main provides the main entry point for the Savory API server
package main

import (
	"flag"
	"os"

	"go.uber.org/fx"

	"github.com/savory/api/internal/infrastructure/container"
)

func main() {
	configPath := flag.String("config", os.Getenv("SAVORY_CONFIG"), "path to the config file")
	flag.Parse()

	fx.New(
		fx.NopLogger,
		fx.Supply(container.ConfigPath(*configPath)),
		container.Module,
	).Run()
}
