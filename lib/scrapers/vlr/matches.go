package vlr

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"strings"
	"vlrdata-backend/lib/htmlutil"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel/attribute"
)

type MapStats struct {
	Username  string    `json:"username"`
	Team      string    `json:"team"`
	EnemyTeam string    `json:"enemy_team"`
	Map       string    `json:"map"`
	Agent     string    `json:"agent"`
	All       PhaseStat `json:"all"`
	Attack    PhaseStat `json:"attack"`
	Defend    PhaseStat `json:"defend"`
}

type PlayerMatchStats struct {
	// one record per map played, in match discovery order,
	// not guaranteed chronological
	Maps []MapStats `json:"maps"`
	// set when a match or map record had to be skipped
	Partial bool `json:"partial,omitempty"`
}

// playerMatchRefs walks the match-history listing and collects every
// match link, deduplicated, in first-appearance order. The page count
// is read once upfront so the walk is a bounded loop; matches added
// mid-crawl are picked up on the next query.
func (c *Client) playerMatchRefs(ctx context.Context, id int) ([]string, error) {
	ctx, span := tracer.Start(ctx, "playerMatchRefs")
	defer span.End()

	path := fmt.Sprintf("/player/matches/%d", id)
	doc, err := c.getDocument(ctx, path, nil)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, fmt.Errorf("%w: player with id %d does not exist", ErrNotFound, id)
		}
		return nil, err
	}

	pageCount := 1
	pagerText := strings.TrimSpace(doc.Find("div.action-container-pages a").Last().Text())
	if pagerText != "" {
		pages, err := strconv.Atoi(pagerText)
		if err == nil {
			pageCount = pages
		}
	}
	span.SetAttributes(attribute.Int("page_count", pageCount))

	seen := map[string]struct{}{}
	var refs []string
	collect := func(doc *goquery.Document) {
		for _, anchor := range htmlutil.GetAnchors(ctx, doc.Find("a.wf-card.fc-flex.m-item")) {
			if anchor.Href == "" {
				continue
			}
			if _, ok := seen[anchor.Href]; ok {
				continue
			}
			seen[anchor.Href] = struct{}{}
			refs = append(refs, anchor.Href)
		}
	}

	collect(doc)
	for page := 2; page <= pageCount; page++ {
		query := url.Values{}
		query.Set("page", strconv.Itoa(page))
		doc, err := c.getDocument(ctx, path, query)
		if err != nil {
			return nil, err
		}
		collect(doc)
	}

	return refs, nil
}

// PlayerMatchStats fetches per-map, per-phase statistics for the
// player across every match discovered in their match history.
// A match or map that fails extraction is skipped and marks the
// result partial, already-collected records are kept.
func (c *Client) PlayerMatchStats(ctx context.Context, id int, username string) (PlayerMatchStats, error) {
	ctx, span := tracer.Start(ctx, "PlayerMatchStats")
	defer span.End()
	span.SetAttributes(attribute.Int("player_id", id))

	if err := validateId(id); err != nil {
		return PlayerMatchStats{}, err
	}

	refs, err := c.playerMatchRefs(ctx, id)
	if err != nil {
		return PlayerMatchStats{}, err
	}

	result := PlayerMatchStats{}
	for _, ref := range refs {
		records, skipped, err := c.matchMapStats(ctx, ref, username)
		if err != nil {
			slog.WarnContext(ctx, "skipping match", "ref", ref, "err", err)
			result.Partial = true
			continue
		}
		if skipped {
			result.Partial = true
		}
		result.Maps = append(result.Maps, records...)
	}

	return result, nil
}

// each team side's scoreboard wrapper carries no class, only this
// exact inline style
const sideTableSelector = `div[style='overflow-x: auto; margin-top: 15px; padding-bottom: 5px;']`

func (c *Client) matchMapStats(ctx context.Context, ref string, username string) ([]MapStats, bool, error) {
	ctx, span := tracer.Start(ctx, "matchMapStats")
	defer span.End()
	span.SetAttributes(
		attribute.String("ref", ref),
		attribute.Int("schema_version", statSchemaVersion),
	)

	doc, err := c.getDocument(ctx, ref, nil)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, false, fmt.Errorf("%w: match %s does not exist", ErrNotFound, ref)
		}
		return nil, false, err
	}

	var records []MapStats
	skipped := false
	container := doc.Find("div.vm-stats-container").First()
	container.Find("div[data-game-id]").Each(func(_ int, game *goquery.Selection) {
		// the "all" pseudo-map aggregates the whole match
		if game.AttrOr("data-game-id", "") == "all" {
			return
		}
		record, ok := mapStatsFromGame(game, username)
		if !ok {
			skipped = true
			return
		}
		records = append(records, record)
	})

	return records, skipped, nil
}

// mapStatsFromGame extracts one map record. An incomplete extraction
// discards the whole record, partial phases are never emitted.
func mapStatsFromGame(game *goquery.Selection, username string) (MapStats, bool) {
	header := game.Find("div.vm-stats-game-header").First()
	sides := game.Find(sideTableSelector)

	sideIdx := -1
	sides.EachWithBreak(func(i int, side *goquery.Selection) bool {
		if strings.Contains(side.Text(), username) {
			sideIdx = i
			return false
		}
		return true
	})
	// team side is a binary choice, index 0 or 1
	if sideIdx < 0 || sideIdx > 1 {
		return MapStats{}, false
	}
	side := sides.Eq(sideIdx)

	agent := agentForPlayer(side, username)
	if agent == "" {
		return MapStats{}, false
	}

	tokens := strings.Fields(side.Text())
	window, ok := statWindow(tokens, username)
	if !ok {
		return MapStats{}, false
	}
	all, ok := phaseFromWindow(window, PhaseAll)
	if !ok {
		return MapStats{}, false
	}
	attack, ok := phaseFromWindow(window, PhaseAttack)
	if !ok {
		return MapStats{}, false
	}
	defend, ok := phaseFromWindow(window, PhaseDefend)
	if !ok {
		return MapStats{}, false
	}

	mapName := mapNameFromHeader(header)
	if mapName == "" {
		return MapStats{}, false
	}

	var teamNames []string
	header.Find("div.team-name").Each(func(_ int, s *goquery.Selection) {
		teamNames = append(teamNames, strings.TrimSpace(s.Text()))
	})
	if len(teamNames) < 2 {
		return MapStats{}, false
	}

	return MapStats{
		Username:  window[0],
		Team:      teamNames[sideIdx],
		EnemyTeam: teamNames[1-sideIdx],
		Map:       mapName,
		Agent:     agent,
		All:       all,
		Attack:    attack,
		Defend:    defend,
	}, true
}

// agentForPlayer finds the player's row in the side's scoreboard and
// reads the agent name off the companion portrait's title attribute.
func agentForPlayer(side *goquery.Selection, username string) string {
	lowered := strings.ToLower(username)
	var row *goquery.Selection
	side.Find("td.mod-player").EachWithBreak(func(_ int, cell *goquery.Selection) bool {
		if strings.Contains(strings.ToLower(cell.Text()), lowered) {
			row = cell.Closest("tr")
			return false
		}
		return true
	})
	if row == nil {
		return ""
	}
	return row.Find("td.mod-agents img").First().AttrOr("title", "")
}

// the header shows "<map> PICK" or "PICK <map>" depending on which
// team picked it
func mapNameFromHeader(header *goquery.Selection) string {
	tokens := strings.Fields(header.Find("div.map").First().Text())
	if len(tokens) > 2 {
		tokens = tokens[:2]
	}
	for _, token := range tokens {
		if token != "PICK" {
			return token
		}
	}
	return ""
}
