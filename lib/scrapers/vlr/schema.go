package vlr

import "slices"

// Phase is one of the three situational buckets per-round statistics
// are reported under.
type Phase string

const (
	PhaseAll    Phase = "all"
	PhaseAttack Phase = "attack"
	PhaseDefend Phase = "defend"
)

type PhaseStat struct {
	Rating  string `json:"rating"`
	ACS     string `json:"acs"`
	Kills   string `json:"kills"`
	Deaths  string `json:"deaths"`
	Assists string `json:"assists"`
	KAST    string `json:"kast"`
	ADR     string `json:"adr"`
	HS      string `json:"hs"`
	FK      string `json:"fk"`
	FD      string `json:"fd"`
}

// The scoreboard renders each metric as three adjacent columns
// (all/attack/defend) but collapses into one flat text run with no
// per-cell markup around the numbers. statSchema pins every metric to
// a fixed token offset relative to the player's username token.
//
// The offsets target scoreboard layout v1. They have no self-verifying
// structure, so a column shift on the site silently invalidates them;
// the token-count check in statWindow is the only guard, and any
// misalignment drops the record rather than misassigning values.
const statSchemaVersion = 1

const (
	// tokens taken after the username anchor
	statTokenWindow = 40
	// highest schema offset + 1, the least tokens a usable window can have
	statTokenMin = 37
)

type phaseOffsets struct {
	Rating, ACS, Kills, Deaths, Assists, KAST, ADR, HS, FK, FD int
}

var statSchema = map[Phase]phaseOffsets{
	PhaseAll:    {Rating: 2, ACS: 5, Kills: 8, Deaths: 12, Assists: 16, KAST: 22, ADR: 25, HS: 28, FK: 31, FD: 34},
	PhaseAttack: {Rating: 3, ACS: 6, Kills: 9, Deaths: 13, Assists: 17, KAST: 23, ADR: 26, HS: 29, FK: 32, FD: 35},
	PhaseDefend: {Rating: 4, ACS: 7, Kills: 10, Deaths: 14, Assists: 18, KAST: 24, ADR: 27, HS: 30, FK: 33, FD: 36},
}

// statWindow anchors the token window at the player's username.
// ok is false when the username is absent or the row is too short to
// cover every schema offset.
func statWindow(tokens []string, username string) ([]string, bool) {
	idx := slices.Index(tokens, username)
	if idx < 0 {
		return nil, false
	}
	end := min(idx+statTokenWindow, len(tokens))
	window := tokens[idx:end]
	if len(window) < statTokenMin {
		return nil, false
	}
	return window, true
}

func phaseFromWindow(window []string, phase Phase) (PhaseStat, bool) {
	if len(window) < statTokenMin {
		return PhaseStat{}, false
	}
	off, ok := statSchema[phase]
	if !ok {
		return PhaseStat{}, false
	}
	return PhaseStat{
		Rating:  window[off.Rating],
		ACS:     window[off.ACS],
		Kills:   window[off.Kills],
		Deaths:  window[off.Deaths],
		Assists: window[off.Assists],
		KAST:    window[off.KAST],
		ADR:     window[off.ADR],
		HS:      window[off.HS],
		FK:      window[off.FK],
		FD:      window[off.FD],
	}, true
}
