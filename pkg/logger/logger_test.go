package logger

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestInit(t *testing.T) {
	log := Init("debug", "text")
	assert.Equal(t, logrus.DebugLevel, log.GetLevel())
	assert.IsType(t, &logrus.TextFormatter{}, log.Formatter)
	assert.Same(t, log, Get())

	log = Init("loud", "json")
	assert.Equal(t, logrus.InfoLevel, log.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, log.Formatter)
}

func TestWithHelpers(t *testing.T) {
	Init("info", "json")
	assert.Equal(t, "pbp", WithComponent("pbp").Data["component"])
	assert.Equal(t, "123", WithGame("123").Data["game_id"])
	assert.Equal(t, "abc", WithRun("abc").Data["run_id"])
}
