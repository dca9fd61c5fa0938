package app

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/fortuna/ceres/internal/config"
	"github.com/fortuna/ceres/internal/store/csvstore"
	"github.com/fortuna/ceres/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_CSVStore(t *testing.T) {
	cfg := config.New()
	cfg.CheckpointDir = t.TempDir()

	a, err := New(context.Background(), cfg, logger.Discard())
	require.NoError(t, err)
	defer a.Close()

	assert.IsType(t, &csvstore.Store{}, a.Store)
	assert.Nil(t, a.Database)
	assert.Nil(t, a.Cache)
	assert.Nil(t, a.Publisher)
	assert.NotNil(t, a.Runner)
	assert.NotNil(t, a.Ratings)
	assert.Equal(t, "MBB", a.Scraper.Sport())
}

func TestNew_WithRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := config.New()
	cfg.CheckpointDir = t.TempDir()
	cfg.RedisURL = "redis://" + mr.Addr()
	cfg.Sport = "WBB"

	a, err := New(context.Background(), cfg, logger.Discard())
	require.NoError(t, err)
	defer a.Close()

	require.NotNil(t, a.Cache)
	require.NotNil(t, a.Publisher)
	assert.NoError(t, a.Cache.HealthCheck(context.Background()))
}

func TestNew_BadSport(t *testing.T) {
	cfg := config.New()
	cfg.CheckpointDir = t.TempDir()
	cfg.Sport = "FBS"

	_, err := New(context.Background(), cfg, logger.Discard())
	assert.Error(t, err)
}
