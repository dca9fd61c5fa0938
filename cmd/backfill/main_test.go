package main

import (
	"testing"
	"time"

	"github.com/fortuna/ceres/internal/backfill"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildSpec(t *testing.T) {
	tests := []struct {
		name                       string
		season, start, end, gameID string
		want                       backfill.JobType
		wantErr                    bool
	}{
		{name: "game", gameID: "5254071", want: backfill.JobTypeGame},
		{name: "season", season: "2023-24", want: backfill.JobTypeSeason},
		{name: "range", start: "2024-01-01", end: "2024-01-07", want: backfill.JobTypeDateRange},
		{name: "bad range", start: "2024-01-01", end: "Jan 7", wantErr: true},
		{name: "bad season", season: "last", wantErr: true},
		{name: "nothing", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec, err := buildSpec(tt.season, tt.start, tt.end, tt.gameID)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, spec.Type)
		})
	}

	spec, err := buildSpec("2023-24", "", "", "")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2023, time.November, 1, 0, 0, 0, 0, time.UTC), spec.Start)
}

func TestParseDivisions(t *testing.T) {
	ds, err := parseDivisions("1, 3")
	require.NoError(t, err)
	assert.Equal(t, []int{1, 3}, ds)

	_, err = parseDivisions("one")
	assert.Error(t, err)
}
