package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Explanation selection modes.
const (
	ExplanationRandom   = "random"
	ExplanationPriority = "priority"
)

// Config holds all application configuration.
type Config struct {
	Server struct {
		Addr        string   `yaml:"addr"`
		CORSOrigins []string `yaml:"cors_origins"`
	} `yaml:"server"`
	Data struct {
		Dir               string `yaml:"dir"`
		GenerateIfMissing bool   `yaml:"generate_if_missing"`
		Clients           int    `yaml:"clients"`
		Seed              uint64 `yaml:"seed"`
	} `yaml:"data"`
	Engine struct {
		// Seed restarts the jitter sequence for every request; 0 shares one
		// clock-seeded generator across all requests.
		Seed uint64 `yaml:"seed"`
		// Deterministic disables jitter and samples explanations by precedence.
		Deterministic   bool   `yaml:"deterministic"`
		ExplanationMode string `yaml:"explanation_mode"`
	} `yaml:"engine"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Digest struct {
		Cron      string   `yaml:"cron"`
		ClientIDs []string `yaml:"client_ids"`
	} `yaml:"digest"`
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	Log struct {
		Level  string `yaml:"level"`
		Pretty bool   `yaml:"pretty"`
	} `yaml:"log"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable
// overrides and defaults. A .env file in the working directory, if present,
// is loaded into the environment first; variables already set win.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("ADVISOR_ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv("ADVISOR_CORS_ORIGINS"); v != "" {
		c.Server.CORSOrigins = splitList(v)
	}
	if v := os.Getenv("ADVISOR_DATA_DIR"); v != "" {
		c.Data.Dir = v
	}
	if v := os.Getenv("ADVISOR_ENGINE_SEED"); v != "" {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return fmt.Errorf("ADVISOR_ENGINE_SEED: %w", err)
		}
		c.Engine.Seed = seed
	}
	if v := os.Getenv("ADVISOR_DETERMINISTIC"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("ADVISOR_DETERMINISTIC: %w", err)
		}
		c.Engine.Deterministic = b
	}
	if v := os.Getenv("ADVISOR_EXPLANATION_MODE"); v != "" {
		c.Engine.ExplanationMode = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		c.Database.SQLitePath = v
	}
	if v := os.Getenv("CRON_DIGEST"); v != "" {
		c.Digest.Cron = v
	}
	if v := os.Getenv("DIGEST_CLIENTS"); v != "" {
		c.Digest.ClientIDs = splitList(v)
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		c.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		c.Telegram.ChatID = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		c.Proxy = v
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if len(c.Server.CORSOrigins) == 0 {
		c.Server.CORSOrigins = []string{"*"}
	}
	if c.Data.Dir == "" {
		c.Data.Dir = "data"
	}
	if c.Data.Clients == 0 {
		c.Data.Clients = 100
	}
	if c.Engine.ExplanationMode == "" {
		c.Engine.ExplanationMode = ExplanationRandom
	}
	if c.Digest.Cron == "" {
		c.Digest.Cron = "0 0 8 * * 1"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}

// TelegramEnabled reports whether both Telegram credentials are set.
func (c *Config) TelegramEnabled() bool {
	return c.Telegram.BotToken != "" && c.Telegram.ChatID != ""
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	switch c.Engine.ExplanationMode {
	case ExplanationRandom, ExplanationPriority:
	default:
		return fmt.Errorf("engine.explanation_mode must be %q or %q, got %q",
			ExplanationRandom, ExplanationPriority, c.Engine.ExplanationMode)
	}
	if c.Data.Clients < 0 {
		return fmt.Errorf("data.clients must not be negative")
	}
	if (c.Telegram.BotToken == "") != (c.Telegram.ChatID == "") {
		return fmt.Errorf("telegram.bot_token and telegram.chat_id must be set together")
	}
	if len(c.Digest.ClientIDs) > 0 && !c.TelegramEnabled() {
		return fmt.Errorf("digest.client_ids requires telegram credentials")
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
