package config

import (
	"os"

	"go.uber.org/zap"

	customError "doodle-functions/pkg/errors"
)

const (
	EnvOpenAIKey     = "OPENAI_API_KEY"
	EnvGuessModel    = "GUESS_MODEL"
	EnvScoreModel    = "SCORE_MODEL"
	EnvProfilesTable = "PROFILES_TABLE"
	EnvDuelsTable    = "DUELS_TABLE"
	EnvExpoPushUrl   = "EXPO_PUSH_URL"
	EnvArchiveBucket = "DRAWING_ARCHIVE_BUCKET"

	DefaultGuessModel  = "gpt-4-vision-preview"
	DefaultScoreModel  = "gpt-4o"
	DefaultExpoPushUrl = "https://exp.host/--/api/v2/push/send"
)

type Config struct {
	Logger *zap.Logger

	// External model
	OpenAIKey  string
	GuessModel string
	ScoreModel string

	// Store
	ProfilesTable string
	DuelsTable    string

	// Push gateway
	ExpoPushUrl string

	// Optional drawing archive, disabled when empty
	ArchiveBucket string
}

func New() *Config {
	return &Config{
		Logger: NewLogger(),
	}
}

func NewLogger() *zap.Logger {
	logCfg := zap.NewProductionConfig()
	logCfg.DisableStacktrace = true
	logger, _ := logCfg.Build()
	return logger
}

// Load reads configuration from env variables. Model names and the push
// gateway URL fall back to defaults when unset.
func (c *Config) Load() error {
	c.OpenAIKey = os.Getenv(EnvOpenAIKey)
	c.ProfilesTable = os.Getenv(EnvProfilesTable)
	c.DuelsTable = os.Getenv(EnvDuelsTable)
	if c.OpenAIKey == "" || c.ProfilesTable == "" || c.DuelsTable == "" {
		return customError.MissingEnvErr{EnvMap: map[string]string{
			EnvOpenAIKey:     c.OpenAIKey,
			EnvProfilesTable: c.ProfilesTable,
			EnvDuelsTable:    c.DuelsTable,
		}}
	}

	c.GuessModel = envOrDefault(EnvGuessModel, DefaultGuessModel)
	c.ScoreModel = envOrDefault(EnvScoreModel, DefaultScoreModel)
	c.ExpoPushUrl = envOrDefault(EnvExpoPushUrl, DefaultExpoPushUrl)
	c.ArchiveBucket = os.Getenv(EnvArchiveBucket)

	return nil
}

func envOrDefault(key string, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
