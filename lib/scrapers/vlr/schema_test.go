package vlr

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

// numberedTokens returns a window where every slot holds its own
// offset, so any cross-phase bleed shows up as a wrong number.
func numberedTokens(username string, length int) []string {
	tokens := make([]string, length)
	tokens[0] = username
	for i := 1; i < length; i++ {
		tokens[i] = fmt.Sprintf("t%d", i)
	}
	return tokens
}

func TestPhaseOffsets(t *testing.T) {
	window, ok := statWindow(numberedTokens("TenZ", statTokenWindow), "TenZ")
	require.True(t, ok)

	testCases := []struct {
		phase  Phase
		expect PhaseStat
	}{
		{
			phase: PhaseAll,
			expect: PhaseStat{
				Rating: "t2", ACS: "t5", Kills: "t8", Deaths: "t12", Assists: "t16",
				KAST: "t22", ADR: "t25", HS: "t28", FK: "t31", FD: "t34",
			},
		},
		{
			phase: PhaseAttack,
			expect: PhaseStat{
				Rating: "t3", ACS: "t6", Kills: "t9", Deaths: "t13", Assists: "t17",
				KAST: "t23", ADR: "t26", HS: "t29", FK: "t32", FD: "t35",
			},
		},
		{
			phase: PhaseDefend,
			expect: PhaseStat{
				Rating: "t4", ACS: "t7", Kills: "t10", Deaths: "t14", Assists: "t18",
				KAST: "t24", ADR: "t27", HS: "t30", FK: "t33", FD: "t36",
			},
		},
	}

	for _, test := range testCases {
		stat, ok := phaseFromWindow(window, test.phase)
		require.True(t, ok)
		diff := cmp.Diff(test.expect, stat)
		require.Empty(t, diff)
	}
}

func TestStatWindowAnchoring(t *testing.T) {
	// the anchor does not have to sit at the start of the row
	tokens := append([]string{"SEN", "4", "13"}, numberedTokens("TenZ", statTokenWindow)...)
	window, ok := statWindow(tokens, "TenZ")
	require.True(t, ok)
	require.Equal(t, "TenZ", window[0])
	require.Len(t, window, statTokenWindow)
}

func TestStatWindowFailsClosed(t *testing.T) {
	// username absent
	_, ok := statWindow(numberedTokens("TenZ", statTokenWindow), "Zekken")
	require.False(t, ok)

	// row too short to cover every offset
	_, ok = statWindow(numberedTokens("TenZ", statTokenMin-1), "TenZ")
	require.False(t, ok)

	// exactly the minimum is usable
	window, ok := statWindow(numberedTokens("TenZ", statTokenMin), "TenZ")
	require.True(t, ok)
	_, ok = phaseFromWindow(window, PhaseDefend)
	require.True(t, ok)
}
