package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"skillsync-backend/cmd/skillsync-cli/commands"
	"skillsync-backend/lib/telemetry"
)

func main() {
	ctx := context.Background()

	tel, err := telemetry.SetupFromEnv(ctx, "skillsync-cli")
	if err != nil {
		slog.Warn("failed to setup telemetry", "err", err)
	}

	err = commands.ExecuteContext(ctx)

	// flush spans before exiting, even for a failed run
	if shutdownErr := tel.Shutdown(context.Background()); shutdownErr != nil {
		slog.Warn("failed to shutdown telemetry", "err", shutdownErr)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
