package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/horror-bot/internal/config"
)

type LoggerTestSuite struct {
	suite.Suite
	previous *slog.Logger
}

func TestLoggerSuite(t *testing.T) {
	suite.Run(t, new(LoggerTestSuite))
}

func (s *LoggerTestSuite) SetupTest() {
	s.previous = slog.Default()
}

func (s *LoggerTestSuite) TearDownTest() {
	slog.SetDefault(s.previous)
}

func (s *LoggerTestSuite) TestProductionUsesJSON() {
	var buf bytes.Buffer
	log := setup(&buf, &config.Config{
		Environment: config.EnvironmentProduction,
		LogLevel:    slog.LevelInfo,
		ServiceName: "horror-bot",
	})

	WithGame(log, "game_1").Info("turn started", "turn", 2)

	var line map[string]any
	s.Require().NoError(json.Unmarshal(buf.Bytes(), &line))
	s.Equal("turn started", line["msg"])
	s.Equal("game_1", line["game_id"])
	s.Equal("horror-bot", line["service"])
}

func (s *LoggerTestSuite) TestLevelFilters() {
	var buf bytes.Buffer
	log := setup(&buf, &config.Config{
		Environment: config.EnvironmentDevelopment,
		LogLevel:    slog.LevelWarn,
	})

	log.Info("hidden")
	s.Empty(buf.String())

	log.Warn("shown")
	s.Contains(buf.String(), "shown")
}
