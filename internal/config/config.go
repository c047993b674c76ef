// internal/config/config.go
//
// Environment-driven configuration.
// Load reads an optional .env file (godotenv) and then the process environment.
//
// Environment variables (defaults in parentheses):
//   PORT              (5175)    HTTP listen port
//   LOG_LEVEL         (info)    zerolog level
//   LOG_FORMAT        (json)    "console" for human-readable output
//   CORPUS_FILE       ()        YAML corpus; empty → embedded default
//   CORPUS_DB         ()        SQLite corpus; takes precedence over CORPUS_FILE
//   DAILY_SALT        ()        namespaces daily seeds per deployment
//   DAILY_LENGTH      (5)       word count of the daily puzzle
//   LEVEL_MIN         (2)       first ladder length
//   LEVEL_MAX         (12)      last ladder length
//   SESSION_SECRET    (dev_secret_change_me) HS256 key for session tokens
//   SESSION_TTL_HOURS (24)      sessions older than this are swept
//   CLIENT_ORIGIN     (http://localhost:5173) CORS origin

package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds every runtime setting.
type Config struct {
	Port         string
	LogLevel     string
	LogFormat    string
	CorpusFile   string
	CorpusDB     string
	DailySalt    string
	DailyLength  int
	LevelMin     int
	LevelMax     int
	Secret       string
	SessionTTL   time.Duration
	ClientOrigin string
}

// Load reads .env (if present) and the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	c := &Config{
		Port:         getEnv("PORT", "5175"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		LogFormat:    getEnv("LOG_FORMAT", "json"),
		CorpusFile:   os.Getenv("CORPUS_FILE"),
		CorpusDB:     os.Getenv("CORPUS_DB"),
		DailySalt:    os.Getenv("DAILY_SALT"),
		Secret:       getEnv("SESSION_SECRET", "dev_secret_change_me"),
		ClientOrigin: getEnv("CLIENT_ORIGIN", "http://localhost:5173"),
	}
	var err error
	if c.DailyLength, err = envInt("DAILY_LENGTH", 5); err != nil {
		return nil, err
	}
	if c.LevelMin, err = envInt("LEVEL_MIN", 2); err != nil {
		return nil, err
	}
	if c.LevelMax, err = envInt("LEVEL_MAX", 12); err != nil {
		return nil, err
	}
	ttl, err := envInt("SESSION_TTL_HOURS", 24)
	if err != nil {
		return nil, err
	}
	c.SessionTTL = time.Duration(ttl) * time.Hour
	return c, c.Validate()
}

// Validate checks ranges.
func (c *Config) Validate() error {
	if c.DailyLength < 1 {
		return errors.New("config: DAILY_LENGTH must be >= 1")
	}
	if c.LevelMin < 1 || c.LevelMax < c.LevelMin {
		return fmt.Errorf("config: invalid level range %d..%d", c.LevelMin, c.LevelMax)
	}
	if c.SessionTTL <= 0 {
		return errors.New("config: SESSION_TTL_HOURS must be > 0")
	}
	if c.Secret == "" {
		return errors.New("config: SESSION_SECRET is empty")
	}
	return nil
}

// getEnv returns the value of k or def if unset/empty.
func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func envInt(k string, def int) (int, error) {
	v := os.Getenv(k)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("config: %s: %w", k, err)
	}
	return n, nil
}
