package config

import "go.uber.org/zap"

// NewTestConfig returns a config populated with stub values for use in tests.
func NewTestConfig() *Config {
	logger, _ := zap.NewDevelopment()
	return &Config{
		Logger:        logger,
		OpenAIKey:     "test-key",
		GuessModel:    DefaultGuessModel,
		ScoreModel:    DefaultScoreModel,
		ProfilesTable: "profiles-test",
		DuelsTable:    "duels-test",
		ExpoPushUrl:   DefaultExpoPushUrl,
	}
}
