package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/shelfhq/shelf/internal/buildinfo"
	"github.com/shelfhq/shelf/internal/client/cli"
	"github.com/shelfhq/shelf/internal/client/config"
	"github.com/shelfhq/shelf/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()
	logger := logging.NewTextLogger(os.Stderr, slog.LevelInfo)

	app, err := cli.NewApp(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	app.Run(ctx)
}
