package config

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/parley/internal/domain"
	"github.com/alexanderramin/parley/internal/llm"
	"golang.org/x/crypto/bcrypt"
)

// Validate performs business-rule validation on the loaded configuration.
// Load calls it automatically.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Database.Path) == "" {
		return fmt.Errorf("database.path is required")
	}
	if err := c.Log.validate(); err != nil {
		return fmt.Errorf("log: %w", err)
	}
	if err := c.Oracle.validate(); err != nil {
		return fmt.Errorf("oracle: %w", err)
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in 1..65535 (got %d)", c.Server.Port)
	}
	if err := c.Accounts.validate(); err != nil {
		return fmt.Errorf("accounts: %w", err)
	}
	return nil
}

func (l *LogConfig) validate() error {
	switch strings.ToLower(l.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("level must be debug, info, warn or error (got %q)", l.Level)
	}
	switch strings.ToLower(l.Format) {
	case "json", "text":
	default:
		return fmt.Errorf("format must be json or text (got %q)", l.Format)
	}
	return nil
}

func (o *OracleConfig) validate() error {
	if o.HistoryWindow < 0 {
		return fmt.Errorf("history_window must be >= 0 (got %d)", o.HistoryWindow)
	}
	if !o.Enabled {
		return nil
	}
	switch llm.Provider(o.Provider) {
	case llm.ProviderGemini:
		if o.APIKey == "" {
			return fmt.Errorf("api_key is required for the gemini provider")
		}
	case llm.ProviderOllama:
		if o.Endpoint == "" {
			return fmt.Errorf("endpoint is required for the ollama provider")
		}
	default:
		return fmt.Errorf("provider must be gemini or ollama (got %q)", o.Provider)
	}
	if o.TimeoutMs <= 0 {
		return fmt.Errorf("timeout_ms must be > 0 (got %d)", o.TimeoutMs)
	}
	return nil
}

func (a *AccountsConfig) validate() error {
	if a.PasswordHashCost < bcrypt.MinCost || a.PasswordHashCost > bcrypt.MaxCost {
		return fmt.Errorf("password_hash_cost must be in %d..%d (got %d)", bcrypt.MinCost, bcrypt.MaxCost, a.PasswordHashCost)
	}
	a.DefaultRole = strings.ToLower(strings.TrimSpace(a.DefaultRole))
	if !domain.ValidRoles[domain.Role(a.DefaultRole)] {
		return fmt.Errorf("default_role must be user or admin (got %q)", a.DefaultRole)
	}
	return nil
}
