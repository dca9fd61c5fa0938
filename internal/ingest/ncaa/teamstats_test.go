package ncaa

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTeamStats(t *testing.T) {
	away, home, err := ParseTeamStats(teamStatsPage)
	require.NoError(t, err)
	assert.Equal(t, TeamTotals{Points: 72, FGA: 60, OffRebounds: 10, Turnovers: 12, FreeThrowAtts: 20}, away)
	assert.Equal(t, TeamTotals{Points: 68, FGA: 62, OffRebounds: 12, Turnovers: 11, FreeThrowAtts: 15}, home)

	// 60 - 10 + 12 + 8.8 = 70.8 possessions
	assert.InDelta(t, 70.8, away.Possessions(), 1e-9)
	assert.Equal(t, 1.02, away.PPP())
	// 62 - 12 + 11 + 6.6 = 67.6 possessions
	assert.Equal(t, 1.01, home.PPP())
}

func TestTeamTotalsZeroPossessions(t *testing.T) {
	assert.Zero(t, TeamTotals{Points: 10}.PPP())
}

func TestParseTeamStatsLayout(t *testing.T) {
	_, _, err := ParseTeamStats(individualStatsPage)
	assert.ErrorIs(t, err, ErrUnexpectedLayout)
}
