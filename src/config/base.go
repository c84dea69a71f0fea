package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"github.com/stake-plus/stackbuddy/src/data"
	"github.com/stake-plus/stackbuddy/src/stackup"
)

// Config holds everything the bot needs at startup.
type Config struct {
	Token              string
	APIURL             string
	DefaultUserID      int
	MySQLDSN           string
	RedisURL           string
	StatusAddr         string
	StatusAllowOrigins []string
	TextsPath          string
	FailureReply       string
	LogLevel           string
	LogFormat          string
	RateLimit          float64
	HTTPTimeout        time.Duration
}

// LoadEnvFile loads .env style files into the process environment.
// Missing files are ignored; variables already set win.
func LoadEnvFile(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			return fmt.Errorf("load %s: %w", p, err)
		}
	}
	return nil
}

// Load reads configuration from the settings table (when db is non-nil) with
// environment fallbacks and defaults.
func Load(db *gorm.DB) (Config, error) {
	if err := data.LoadSettings(db); err != nil {
		return Config{}, fmt.Errorf("load settings: %w", err)
	}

	userID, err := getIntSetting("default_user_id", "DEFAULT_USER_ID", 1)
	if err != nil {
		return Config{}, err
	}
	rateLimit, err := getFloatSetting("stackup_rate_limit", "STACKUP_RATE_LIMIT", 0)
	if err != nil {
		return Config{}, err
	}
	timeoutSeconds, err := getIntSetting("http_timeout_seconds", "HTTP_TIMEOUT_SECONDS", 0)
	if err != nil {
		return Config{}, err
	}

	return Config{
		Token:              GetSetting("discord_token", "DISCORD_TOKEN", ""),
		APIURL:             GetSetting("stackup_api_url", "STACKUP_API_URL", stackup.DefaultBaseURL),
		DefaultUserID:      userID,
		MySQLDSN:           data.GetMySQLDSN(),
		RedisURL:           GetSetting("redis_url", "REDIS_URL", ""),
		StatusAddr:         GetSetting("status_addr", "STATUS_ADDR", ""),
		StatusAllowOrigins: splitList(GetSetting("status_allow_origins", "STATUS_ALLOW_ORIGINS", "")),
		TextsPath:          GetSetting("texts_path", "STACKBUDDY_TEXTS", ""),
		FailureReply:       GetSetting("failure_reply", "FAILURE_REPLY", ""),
		LogLevel:           GetSetting("log_level", "LOG_LEVEL", "info"),
		LogFormat:          GetSetting("log_format", "LOG_FORMAT", "json"),
		RateLimit:          rateLimit,
		HTTPTimeout:        time.Duration(timeoutSeconds) * time.Second,
	}, nil
}

// Validate checks the values required to connect to Discord.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Token) == "" {
		return errors.New("config: DISCORD_TOKEN is not set")
	}
	if c.DefaultUserID <= 0 {
		return fmt.Errorf("config: DEFAULT_USER_ID must be positive, got %d", c.DefaultUserID)
	}
	return nil
}

// GetSetting retrieves a setting with env fallback
func GetSetting(name, envKey, defaultValue string) string {
	val := data.GetSetting(name)
	if val == "" {
		val = os.Getenv(envKey)
	}
	if val == "" {
		val = defaultValue
	}
	return strings.TrimSpace(val)
}

func getIntSetting(name, envKey string, def int) (int, error) {
	raw := GetSetting(name, envKey, "")
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("config: %s: %w", envKey, err)
	}
	return v, nil
}

func getFloatSetting(name, envKey string, def float64) (float64, error) {
	raw := GetSetting(name, envKey, "")
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("config: %s: %w", envKey, err)
	}
	return v, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
