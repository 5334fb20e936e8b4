package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"vlrdata-backend/lib/cachestore"
	vlr "vlrdata-backend/lib/scrapers/vlr"
	"vlrdata-backend/services/playerstats"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "vlr-cli",
	Short: "vlr-cli fetches player and match statistics from vlr.gg.",
}

func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func fatal(msg string, err error) {
	slog.Error(msg, "err", err)
	os.Exit(1)
}

// newService wires the scraper to the cache backend selected by the
// environment (REDIS_URL, VLR_CACHE_DIR, or process-local).
func newService(ctx context.Context) (playerstats.Service, func()) {
	cache, err := cachestore.NewFromEnv(ctx)
	if err != nil {
		fatal("failed to initialize cache", err)
	}
	scraper, err := vlr.NewClient(vlr.ClientOptions{})
	if err != nil {
		fatal("failed to initialize vlr client", err)
	}
	cleanup := func() {
		err := cache.Close()
		if err != nil {
			slog.Warn("failed to close cache", "err", err)
		}
	}
	return playerstats.NewService(scraper, cache), cleanup
}
