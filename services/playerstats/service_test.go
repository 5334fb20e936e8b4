package playerstats

import (
	"context"
	"testing"
	"vlrdata-backend/lib/cachestore"
	vlr "vlrdata-backend/lib/scrapers/vlr"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

type fakeScraper struct {
	agentCalls map[vlr.Window]int
	matchCalls int
	lastId     int
	lastName   string
}

func newFakeScraper() *fakeScraper {
	return &fakeScraper{agentCalls: map[vlr.Window]int{}}
}

func agentStatsFor(id int, window vlr.Window) vlr.PlayerAgentStats {
	return vlr.PlayerAgentStats{
		Id:       id,
		Username: "TenZ",
		Name:     "Tyson Ngo",
		Team:     "Sentinels",
		Agents: map[string]vlr.AgentUsage{
			"jett": {Use: "(10) 45%", Rounds: "182", Rating: "1.24", KAST: "74%"},
			// the window tags the payload so sub-entries can be told apart
			string(window): {Rounds: "1"},
		},
	}
}

var matchStats = vlr.PlayerMatchStats{
	Maps: []vlr.MapStats{
		{
			Username: "TenZ", Team: "SEN", EnemyTeam: "100T",
			Map: "Ascent", Agent: "Jett",
			All:    vlr.PhaseStat{Rating: "1.24", ACS: "250"},
			Attack: vlr.PhaseStat{Rating: "1.30", ACS: "260"},
			Defend: vlr.PhaseStat{Rating: "1.18", ACS: "240"},
		},
	},
}

func (f *fakeScraper) PlayerAgentStats(ctx context.Context, id int, window vlr.Window) (vlr.PlayerAgentStats, error) {
	f.agentCalls[window]++
	f.lastId = id
	return agentStatsFor(id, window), nil
}

func (f *fakeScraper) PlayerMatchStats(ctx context.Context, id int, username string) (vlr.PlayerMatchStats, error) {
	f.matchCalls++
	f.lastId = id
	f.lastName = username
	return matchStats, nil
}

func newTestService(t *testing.T) (Service, *fakeScraper) {
	scraper := newFakeScraper()
	cache := cachestore.NewMemory()
	t.Cleanup(func() { cache.Close() })
	return NewService(scraper, cache), scraper
}

func TestAgentStatsCached(t *testing.T) {
	service, scraper := newTestService(t)
	ctx := context.Background()

	first, err := service.PlayerAgentStats(ctx, 15500, vlr.Window60Days)
	require.Nil(t, err)
	require.Equal(t, 1, scraper.agentCalls[vlr.Window60Days])

	// the repeat query is served from the cache without a fetch and
	// returns the identical structure
	second, err := service.PlayerAgentStats(ctx, 15500, vlr.Window60Days)
	require.Nil(t, err)
	require.Equal(t, 1, scraper.agentCalls[vlr.Window60Days])
	require.Empty(t, cmp.Diff(first, second))
}

func TestAgentStatsWindowSubKeys(t *testing.T) {
	service, scraper := newTestService(t)
	ctx := context.Background()

	_, err := service.PlayerAgentStats(ctx, 15500, vlr.Window60Days)
	require.Nil(t, err)

	// a sub-key miss on a populated entry fetches exactly once for
	// that window
	thirty, err := service.PlayerAgentStats(ctx, 15500, vlr.Window30Days)
	require.Nil(t, err)
	require.Equal(t, 1, scraper.agentCalls[vlr.Window30Days])
	_, ok := thirty.Agents["30d"]
	require.True(t, ok)

	// and leaves the sibling window untouched
	sixty, err := service.PlayerAgentStats(ctx, 15500, vlr.Window60Days)
	require.Nil(t, err)
	require.Equal(t, 1, scraper.agentCalls[vlr.Window60Days])
	_, ok = sixty.Agents["60d"]
	require.True(t, ok)
}

func TestAgentStatsInvalidWindow(t *testing.T) {
	service, scraper := newTestService(t)

	_, err := service.PlayerAgentStats(context.Background(), 15500, vlr.Window("45d"))
	require.ErrorIs(t, err, vlr.ErrInvalidWindow)
	require.Empty(t, scraper.agentCalls)
}

func TestMatchStatsCached(t *testing.T) {
	service, scraper := newTestService(t)
	ctx := context.Background()

	first, err := service.PlayerMatchStats(ctx, 15500)
	require.Nil(t, err)
	require.Equal(t, 1, scraper.matchCalls)
	// the profile resolves through the agent-stat path on the default window
	require.Equal(t, 1, scraper.agentCalls[vlr.DefaultWindow])
	require.Equal(t, "TenZ", scraper.lastName)
	require.Empty(t, cmp.Diff(matchStats, first))

	second, err := service.PlayerMatchStats(ctx, 15500)
	require.Nil(t, err)
	require.Equal(t, 1, scraper.matchCalls)
	require.Equal(t, 1, scraper.agentCalls[vlr.DefaultWindow])
	require.Empty(t, cmp.Diff(first, second))
}

func TestMatchStatsReusesCachedProfile(t *testing.T) {
	service, scraper := newTestService(t)
	ctx := context.Background()

	_, err := service.PlayerAgentStats(ctx, 15500, vlr.DefaultWindow)
	require.Nil(t, err)

	_, err = service.PlayerMatchStats(ctx, 15500)
	require.Nil(t, err)
	require.Equal(t, 1, scraper.agentCalls[vlr.DefaultWindow])
	require.Equal(t, 1, scraper.matchCalls)
}
