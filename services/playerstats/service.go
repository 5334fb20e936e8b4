package playerstats

import (
	"context"
	"fmt"
	"log/slog"
	"time"
	"vlrdata-backend/lib/cachestore"
	vlr "vlrdata-backend/lib/scrapers/vlr"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("services/playerstats")

// cache key-value pairs expire after a day
const statsLifetime = time.Hour * 24

type Scraper interface {
	PlayerAgentStats(ctx context.Context, id int, window vlr.Window) (vlr.PlayerAgentStats, error)
	PlayerMatchStats(ctx context.Context, id int, username string) (vlr.PlayerMatchStats, error)
}

// Service fronts the scraper with the cache so repeat queries for the
// same player stay off the network until the entry expires.
type Service struct {
	scraper Scraper
	cache   cachestore.Store
}

func NewService(scraper Scraper, cache cachestore.Store) Service {
	return Service{
		scraper: scraper,
		cache:   cache,
	}
}

func agentStatsKey(id int) string {
	return fmt.Sprintf("player_agent %d", id)
}

func matchStatsKey(id int) string {
	return fmt.Sprintf("player_matches_stats %d", id)
}

// PlayerAgentStats returns the player's per-agent statistics over the
// given history window. One cache entry per player holds a sub-entry
// for each window, so a hit on any window skips the fetch while a miss
// refreshes only that window.
func (s Service) PlayerAgentStats(ctx context.Context, id int, window vlr.Window) (vlr.PlayerAgentStats, error) {
	ctx, span := tracer.Start(ctx, "PlayerAgentStats")
	defer span.End()

	if err := window.Validate(); err != nil {
		return vlr.PlayerAgentStats{}, err
	}

	key := agentStatsKey(id)
	byWindow := map[vlr.Window]vlr.PlayerAgentStats{}
	err := s.cache.Get(ctx, key, &byWindow)
	if err != nil && err != cachestore.ErrNotFound {
		slog.WarnContext(ctx, "failed to read cache", "key", key, "err", err)
		byWindow = map[vlr.Window]vlr.PlayerAgentStats{}
	}
	if cached, ok := byWindow[window]; ok {
		span.SetStatus(codes.Ok, "CACHE HIT")
		return cached, nil
	}

	stats, err := s.scraper.PlayerAgentStats(ctx, id, window)
	if err != nil {
		return vlr.PlayerAgentStats{}, err
	}

	byWindow[window] = stats
	err = s.cache.Set(ctx, key, byWindow, statsLifetime)
	if err != nil {
		slog.WarnContext(ctx, "failed to write cache", "key", key, "err", err)
	}
	return stats, nil
}

// PlayerMatchStats returns per-map, per-phase statistics for every
// match in the player's history. The player's username is resolved
// through PlayerAgentStats first, which is itself cached.
func (s Service) PlayerMatchStats(ctx context.Context, id int) (vlr.PlayerMatchStats, error) {
	ctx, span := tracer.Start(ctx, "PlayerMatchStats")
	defer span.End()

	key := matchStatsKey(id)
	var cached vlr.PlayerMatchStats
	err := s.cache.Get(ctx, key, &cached)
	if err == nil {
		span.SetStatus(codes.Ok, "CACHE HIT")
		return cached, nil
	}
	if err != cachestore.ErrNotFound {
		slog.WarnContext(ctx, "failed to read cache", "key", key, "err", err)
	}

	profile, err := s.PlayerAgentStats(ctx, id, vlr.DefaultWindow)
	if err != nil {
		return vlr.PlayerMatchStats{}, err
	}

	stats, err := s.scraper.PlayerMatchStats(ctx, id, profile.Username)
	if err != nil {
		return vlr.PlayerMatchStats{}, err
	}

	err = s.cache.Set(ctx, key, stats, statsLifetime)
	if err != nil {
		slog.WarnContext(ctx, "failed to write cache", "key", key, "err", err)
	}
	return stats, nil
}
