package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/aws/aws-lambda-go/lambda"

	"perfdash/internal/app/server"
	"perfdash/internal/transport/event"
)

func main() {
	cfg, logger, err := server.Setup()
	if err != nil {
		slog.Error("invalid configuration", "err", err)
		os.Exit(1)
	}

	app, err := server.New(context.Background(), cfg, logger)
	if err != nil {
		logger.Error("startup failed", "err", err)
		os.Exit(1)
	}
	defer app.Close()

	lambda.Start(event.NewAdapter(app.Router).Handle)
}
