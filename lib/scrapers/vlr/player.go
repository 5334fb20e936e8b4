package vlr

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel/attribute"
)

type AgentUsage struct {
	Use     string `json:"use"`
	Rounds  string `json:"rounds"`
	Rating  string `json:"rating"`
	ACS     string `json:"acs"`
	KD      string `json:"kd"`
	ADR     string `json:"adr"`
	KAST    string `json:"kast"`
	KPR     string `json:"kpr"`
	APR     string `json:"apr"`
	FKPR    string `json:"fkpr"`
	FDPR    string `json:"fdpr"`
	Kills   string `json:"kills"`
	Deaths  string `json:"deaths"`
	Assists string `json:"assists"`
	FK      string `json:"fk"`
	FD      string `json:"fd"`
}

type PlayerAgentStats struct {
	Id       int    `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
	// empty when the profile page carries no team card
	Team   string                `json:"team,omitempty"`
	Agents map[string]AgentUsage `json:"agents"`
}

// PlayerAgentStats fetches a player's per-agent statistics over the
// given history window by the id assigned to the player by vlr.gg.
func (c *Client) PlayerAgentStats(ctx context.Context, id int, window Window) (PlayerAgentStats, error) {
	ctx, span := tracer.Start(ctx, "PlayerAgentStats")
	defer span.End()
	span.SetAttributes(
		attribute.Int("player_id", id),
		attribute.String("window", string(window)),
	)

	if err := validateId(id); err != nil {
		return PlayerAgentStats{}, err
	}
	if err := window.Validate(); err != nil {
		return PlayerAgentStats{}, err
	}

	query := url.Values{}
	query.Set("timespan", string(window))
	doc, err := c.getDocument(ctx, fmt.Sprintf("/player/%d/", id), query)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return PlayerAgentStats{}, fmt.Errorf("%w: player with id %d does not exist", ErrNotFound, id)
		}
		return PlayerAgentStats{}, err
	}

	stats := PlayerAgentStats{
		Id:     id,
		Agents: map[string]AgentUsage{},
	}

	usernameTag := doc.Find("h1.wf-title").First()
	if usernameTag.Length() == 0 {
		return PlayerAgentStats{}, fmt.Errorf("%w: player with id %d has no username associated with them", ErrMissingName, id)
	}
	stats.Username = strings.TrimSpace(usernameTag.Text())

	nameTag := doc.Find("h2.player-real-name.ge-text-light").First()
	if nameTag.Length() == 0 {
		return PlayerAgentStats{}, fmt.Errorf("%w: player with id %d has no name associated with them", ErrMissingName, id)
	}
	stats.Name = strings.TrimSpace(nameTag.Text())

	// the team card is the third wf-card on the profile, some players
	// have none and that is not an error
	teamTag := doc.Find("div.wf-card").Eq(2).Find(`div[style='font-weight: 500;']`).First()
	stats.Team = strings.TrimSpace(teamTag.Text())

	doc.Find("tr").Each(func(i int, row *goquery.Selection) {
		// the first tr is the column header
		if i == 0 {
			return
		}
		agent := row.Find("img").First().AttrOr("alt", "")
		if agent == "" {
			return
		}

		var cells []string
		row.Find("td").Each(func(j int, td *goquery.Selection) {
			// the leading td holds the agent portrait
			if j == 0 {
				return
			}
			cells = append(cells, strings.TrimSpace(td.Text()))
		})
		stats.Agents[agent] = agentUsageFromCells(cells)
	})

	return stats, nil
}

func agentUsageFromCells(cells []string) AgentUsage {
	cell := func(i int) string {
		if i < len(cells) {
			return cells[i]
		}
		return ""
	}
	return AgentUsage{
		Use:     cell(0),
		Rounds:  cell(1),
		Rating:  cell(2),
		ACS:     cell(3),
		KD:      cell(4),
		ADR:     cell(5),
		KAST:    cell(6),
		KPR:     cell(7),
		APR:     cell(8),
		FKPR:    cell(9),
		FDPR:    cell(10),
		Kills:   cell(11),
		Deaths:  cell(12),
		Assists: cell(13),
		FK:      cell(14),
		FD:      cell(15),
	}
}
