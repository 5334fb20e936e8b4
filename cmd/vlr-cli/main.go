package main

import (
	"context"
	"log/slog"
	"vlrdata-backend/cmd/vlr-cli/commands"
	"vlrdata-backend/lib/telemetry"

	"github.com/joho/godotenv"
)

func main() {
	godotenv.Load()

	ctx := context.Background()
	telemetry.InitSlog(false)
	tel, err := telemetry.SetupFromEnv(ctx, "vlr-cli")
	if err != nil {
		slog.Debug("telemetry disabled", "err", err)
	} else {
		defer tel.Shutdown(ctx)
	}

	commands.ExecuteContext(ctx)
}
