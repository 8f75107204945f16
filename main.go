package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/shandysiswandi/aquarium/internal/app"
)

const shutdownTimeout = 10 * time.Second

// @title           Aquarium API
// @version         1.0
// @description     Aquarium inventory form validation and record management APIs.
// @license.name    MIT
// @license.url     https://mit-license.org/
// @server          http://localhost:8080
func main() {
	application, err := app.New()
	if err != nil {
		slog.Error("failed to start aquarium service", "error", err)
		os.Exit(1)
	}

	<-application.Start()

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	application.Stop(ctx)
}
