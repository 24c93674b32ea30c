package config

import (
	"fmt"
	"time"

	"github.com/alexanderramin/parley/internal/llm"
)

// Config is the root application configuration.
type Config struct {
	Database DatabaseConfig `yaml:"database"`
	Log      LogConfig      `yaml:"log"`
	Oracle   OracleConfig   `yaml:"oracle"`
	Server   ServerConfig   `yaml:"server"`
	Accounts AccountsConfig `yaml:"accounts"`
	Session  SessionConfig  `yaml:"session"`
}

// DatabaseConfig points at the SQLite file. ":memory:" keeps everything in process.
type DatabaseConfig struct {
	Path string `yaml:"path" env:"PARLEY_DB_PATH" env-default:"~/.parley/parley.db"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"text"`
}

// OracleConfig configures the optional model-backed classifier.
type OracleConfig struct {
	Enabled       bool    `yaml:"enabled"        env:"PARLEY_ORACLE_ENABLED"        env-default:"false"`
	Provider      string  `yaml:"provider"       env:"PARLEY_ORACLE_PROVIDER"       env-default:"gemini"`
	APIKey        string  `yaml:"api_key"        env:"GEMINI_API_KEY"`
	Model         string  `yaml:"model"          env:"PARLEY_ORACLE_MODEL"          env-default:"gemini-1.5-flash"`
	Endpoint      string  `yaml:"endpoint"       env:"PARLEY_ORACLE_ENDPOINT"       env-default:"http://localhost:11434"`
	TimeoutMs     int     `yaml:"timeout_ms"     env:"PARLEY_ORACLE_TIMEOUT_MS"     env-default:"8000"`
	Temperature   float64 `yaml:"temperature"    env:"PARLEY_ORACLE_TEMPERATURE"    env-default:"0.1"`
	MaxTokens     int     `yaml:"max_tokens"     env:"PARLEY_ORACLE_MAX_TOKENS"     env-default:"512"`
	HistoryWindow int     `yaml:"history_window" env:"PARLEY_ORACLE_HISTORY_WINDOW" env-default:"12"`
	LogCalls      bool    `yaml:"log_calls"      env:"PARLEY_ORACLE_LOG_CALLS"      env-default:"true"`
}

// ClientConfig converts the section into the llm package's client settings.
func (o OracleConfig) ClientConfig() llm.Config {
	return llm.Config{
		Provider:    llm.Provider(o.Provider),
		Endpoint:    o.Endpoint,
		Model:       o.Model,
		APIKey:      o.APIKey,
		Timeout:     time.Duration(o.TimeoutMs) * time.Millisecond,
		Temperature: o.Temperature,
		MaxTokens:   o.MaxTokens,
	}
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"127.0.0.1"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"5000"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// Addr returns host:port for net/http.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// AccountsConfig tunes account creation.
type AccountsConfig struct {
	PasswordHashCost int    `yaml:"password_hash_cost" env:"PARLEY_PASSWORD_HASH_COST" env-default:"10"`
	DefaultRole      string `yaml:"default_role"       env:"PARLEY_DEFAULT_ROLE"       env-default:"user"`
}

// SessionConfig locates the file `parley say` keeps between invocations.
type SessionConfig struct {
	Path string `yaml:"path" env:"PARLEY_SESSION_PATH" env-default:"~/.parley/session.json"`
}
