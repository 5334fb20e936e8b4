package commands

import (
	"fmt"
	"os"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(matchesCmd)
}

var matchesCmd = &cobra.Command{
	Use:   "matches <player id>",
	Short: "Shows a player's per-map statistics across their match history.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			fatal("player id must be an integer", err)
		}

		service, cleanup := newService(cmd.Context())
		defer cleanup()

		stats, err := service.PlayerMatchStats(cmd.Context(), id)
		if err != nil {
			fatal("failed to fetch match stats", err)
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{
			"Map", "Agent", "Team", "Enemy", "Rating", "ACS", "K", "D", "A", "KAST", "ADR",
		})
		for _, m := range stats.Maps {
			t.AppendRow(table.Row{
				m.Map, m.Agent, m.Team, m.EnemyTeam,
				m.All.Rating, m.All.ACS, m.All.Kills, m.All.Deaths, m.All.Assists,
				m.All.KAST, m.All.ADR,
			})
		}
		t.Render()

		if stats.Partial {
			fmt.Println("some matches or maps could not be extracted, results are partial")
		}
	},
}
