// Package config loads run settings from an optional YAML file and the
// environment.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/talgya/pawnshop/internal/customers"
	"github.com/talgya/pawnshop/internal/engine"
	"github.com/talgya/pawnshop/internal/llm"
)

// EnvPrefix prefixes every environment override, e.g. PAWNSIM_GAME_MAX_DAYS.
const EnvPrefix = "PAWNSIM"

// Owner and customer decision sources.
const (
	OwnerRandom    = "random"
	OwnerLLM       = "llm"
	CustomerHaggle = "haggle"
	CustomerLLM    = "llm"
	DriverSQLite   = "sqlite"
	DriverPostgres = "pgx"
)

type Config struct {
	Game     GameConfig     `mapstructure:"game"`
	Agents   AgentsConfig   `mapstructure:"agents"`
	LLM      LLMConfig      `mapstructure:"llm"`
	Entropy  EntropyConfig  `mapstructure:"entropy"`
	Database DatabaseConfig `mapstructure:"database"`
	API      APIConfig      `mapstructure:"api"`
	Log      LogConfig      `mapstructure:"log"`
}

type GameConfig struct {
	StartingMoney     int           `mapstructure:"starting_money"`
	MaxDays           int           `mapstructure:"max_days"`
	CustomersPerDay   int           `mapstructure:"customers_per_day"`
	MinInterests      int           `mapstructure:"min_interests"`
	MaxInterests      int           `mapstructure:"max_interests"`
	MaxTicks          int           `mapstructure:"max_ticks"`
	TicksPerDay       int           `mapstructure:"ticks_per_day"`
	Seed              int64         `mapstructure:"seed"`
	TickInterval      time.Duration `mapstructure:"tick_interval"`
	StopOnOracleError bool          `mapstructure:"stop_on_oracle_error"`
}

type AgentsConfig struct {
	Owner    string `mapstructure:"owner"`    // random | llm
	Customer string `mapstructure:"customer"` // haggle | llm
}

type LLMConfig struct {
	APIKey            string        `mapstructure:"api_key"`
	BaseURL           string        `mapstructure:"base_url"`
	Model             string        `mapstructure:"model"`
	Timeout           time.Duration `mapstructure:"timeout"`
	RequestsPerMinute int           `mapstructure:"requests_per_minute"`
}

type EntropyConfig struct {
	RandomOrgKey string `mapstructure:"random_org_key"` // Empty uses the seeded source
}

type DatabaseConfig struct {
	Driver string `mapstructure:"driver"` // sqlite | pgx
	DSN    string `mapstructure:"dsn"`    // Empty disables the run archive
}

type APIConfig struct {
	Port int `mapstructure:"port"` // 0 disables the HTTP API
}

type LogConfig struct {
	Debug bool `mapstructure:"debug"`
}

// Load reads config from the given YAML file path, or from defaults and
// the environment alone when path is empty.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("game.starting_money", 10000)
	v.SetDefault("game.max_days", 7)
	v.SetDefault("game.customers_per_day", 5)
	v.SetDefault("game.min_interests", 15)
	v.SetDefault("game.max_interests", 15)
	v.SetDefault("game.max_ticks", 200)
	v.SetDefault("game.ticks_per_day", 0)
	v.SetDefault("game.seed", 42)
	v.SetDefault("game.tick_interval", "0s")
	v.SetDefault("game.stop_on_oracle_error", true)
	v.SetDefault("agents.owner", OwnerRandom)
	v.SetDefault("agents.customer", CustomerHaggle)
	v.SetDefault("llm.api_key", "")
	v.SetDefault("llm.base_url", "")
	v.SetDefault("llm.model", "")
	v.SetDefault("llm.timeout", "30s")
	v.SetDefault("llm.requests_per_minute", 20)
	v.SetDefault("entropy.random_org_key", "")
	v.SetDefault("database.driver", DriverSQLite)
	v.SetDefault("database.dsn", "data/pawnshop.db")
	v.SetDefault("api.port", 0)
	v.SetDefault("log.debug", false)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// Conventional key variables work without the prefix.
	if err := v.BindEnv("llm.api_key", EnvPrefix+"_LLM_API_KEY", "ANTHROPIC_API_KEY"); err != nil {
		return nil, err
	}
	if err := v.BindEnv("entropy.random_org_key", EnvPrefix+"_ENTROPY_RANDOM_ORG_KEY", "RANDOM_ORG_API_KEY"); err != nil {
		return nil, err
	}

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the game cannot run with.
func (c *Config) Validate() error {
	g := c.Game
	switch {
	case g.StartingMoney < 0:
		return fmt.Errorf("game.starting_money must not be negative, got %d", g.StartingMoney)
	case g.MaxDays < 1:
		return fmt.Errorf("game.max_days must be at least 1, got %d", g.MaxDays)
	case g.CustomersPerDay < 0:
		return fmt.Errorf("game.customers_per_day must not be negative, got %d", g.CustomersPerDay)
	case g.MinInterests < 0 || g.MaxInterests < g.MinInterests:
		return fmt.Errorf("game interests range [%d, %d] is invalid", g.MinInterests, g.MaxInterests)
	case g.MaxTicks < 0 || g.TicksPerDay < 0:
		return fmt.Errorf("game tick limits must not be negative")
	}

	if c.Agents.Owner != OwnerRandom && c.Agents.Owner != OwnerLLM {
		return fmt.Errorf("agents.owner must be %q or %q, got %q", OwnerRandom, OwnerLLM, c.Agents.Owner)
	}
	if c.Agents.Customer != CustomerHaggle && c.Agents.Customer != CustomerLLM {
		return fmt.Errorf("agents.customer must be %q or %q, got %q", CustomerHaggle, CustomerLLM, c.Agents.Customer)
	}
	if c.UsesLLM() && c.LLM.APIKey == "" {
		return fmt.Errorf("llm agents need llm.api_key (or ANTHROPIC_API_KEY)")
	}

	if c.Database.DSN != "" && c.Database.Driver != DriverSQLite && c.Database.Driver != DriverPostgres {
		return fmt.Errorf("database.driver must be %q or %q, got %q", DriverSQLite, DriverPostgres, c.Database.Driver)
	}
	return nil
}

// UsesLLM reports whether either side is played by the language model.
func (c *Config) UsesLLM() bool {
	return c.Agents.Owner == OwnerLLM || c.Agents.Customer == CustomerLLM
}

// Engine returns the progression rules.
func (c *Config) Engine() engine.Config {
	return engine.Config{
		StartingMoney:     c.Game.StartingMoney,
		MaxDays:           c.Game.MaxDays,
		MaxTicks:          c.Game.MaxTicks,
		TicksPerDay:       c.Game.TicksPerDay,
		TickInterval:      c.Game.TickInterval,
		StopOnOracleError: c.Game.StopOnOracleError,
	}
}

// Customers returns the roster generator settings.
func (c *Config) Customers() customers.Config {
	return customers.Config{
		PerDay:       c.Game.CustomersPerDay,
		MinInterests: c.Game.MinInterests,
		MaxInterests: c.Game.MaxInterests,
	}
}

// Client returns the language-model client settings.
func (c *Config) Client() llm.Config {
	return llm.Config{
		APIKey:            c.LLM.APIKey,
		BaseURL:           c.LLM.BaseURL,
		Model:             c.LLM.Model,
		Timeout:           c.LLM.Timeout,
		RequestsPerMinute: c.LLM.RequestsPerMinute,
	}
}
