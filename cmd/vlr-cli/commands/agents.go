package commands

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	vlr "vlrdata-backend/lib/scrapers/vlr"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var agentsWindow *string

func init() {
	agentsWindow = agentsCmd.Flags().String(
		"window", string(vlr.DefaultWindow),
		"history window, one of 30d, 60d, 90d or all",
	)
	rootCmd.AddCommand(agentsCmd)
}

var agentsCmd = &cobra.Command{
	Use:   "agents <player id> [--window 60d]",
	Short: "Shows a player's per-agent statistics.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			fatal("player id must be an integer", err)
		}

		service, cleanup := newService(cmd.Context())
		defer cleanup()

		stats, err := service.PlayerAgentStats(cmd.Context(), id, vlr.Window(*agentsWindow))
		if err != nil {
			fatal("failed to fetch agent stats", err)
		}

		if stats.Team != "" {
			fmt.Printf("%s (%s) - %s\n", stats.Username, stats.Name, stats.Team)
		} else {
			fmt.Printf("%s (%s)\n", stats.Username, stats.Name)
		}

		agents := make([]string, 0, len(stats.Agents))
		for agent := range stats.Agents {
			agents = append(agents, agent)
		}
		sort.Strings(agents)

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{
			"Agent", "Use", "Rounds", "Rating", "ACS", "K/D", "ADR", "KAST",
			"Kills", "Deaths", "Assists", "FK", "FD",
		})
		for _, agent := range agents {
			u := stats.Agents[agent]
			t.AppendRow(table.Row{
				agent, u.Use, u.Rounds, u.Rating, u.ACS, u.KD, u.ADR, u.KAST,
				u.Kills, u.Deaths, u.Assists, u.FK, u.FD,
			})
		}
		t.Render()
	},
}
