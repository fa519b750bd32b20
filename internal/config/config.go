package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Auth      AuthConfig      `yaml:"auth"`
	Tailscale TailscaleConfig `yaml:"tailscale"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"sslmode"`
}

type AuthConfig struct {
	APIKey string `yaml:"api_key"`
}

type TailscaleConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Hostname string `yaml:"hostname"`
	StateDir string `yaml:"state_dir"`
}

// DSN builds the Postgres connection URL for pgx and golang-migrate.
// sslmode defaults to disable, which suits local and tailnet-only setups.
func (d DatabaseConfig) DSN() string {
	sslmode := d.SSLMode
	if sslmode == "" {
		sslmode = "disable"
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, sslmode)
}

// Load reads the YAML file at path and layers LIFTLOG_* environment
// variables on top, so a container can override single values without
// editing the file. applyEnvOverrides lists the recognized variables.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	envStr("LIFTLOG_SERVER_HOST", &cfg.Server.Host)
	envInt("LIFTLOG_SERVER_PORT", &cfg.Server.Port)
	envStr("LIFTLOG_DB_HOST", &cfg.Database.Host)
	envInt("LIFTLOG_DB_PORT", &cfg.Database.Port)
	envStr("LIFTLOG_DB_NAME", &cfg.Database.Name)
	envStr("LIFTLOG_DB_USER", &cfg.Database.User)
	envStr("LIFTLOG_DB_PASSWORD", &cfg.Database.Password)
	envStr("LIFTLOG_DB_SSLMODE", &cfg.Database.SSLMode)
	envStr("LIFTLOG_AUTH_API_KEY", &cfg.Auth.APIKey)
	envStr("LIFTLOG_TS_HOSTNAME", &cfg.Tailscale.Hostname)
	envStr("LIFTLOG_TS_STATE_DIR", &cfg.Tailscale.StateDir)
}

func envStr(key string, dst *string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

// envInt ignores unparseable values; a bad port in the environment falls
// back to whatever the file said.
func envInt(key string, dst *int) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func (c *Config) validate() error {
	// On a tailnet the listener binds the tsnet interface directly, so no
	// server.port is needed.
	if c.Server.Port == 0 && !c.Tailscale.Enabled {
		return fmt.Errorf("server.port is required")
	}
	if c.Database.Host == "" {
		return fmt.Errorf("database.host is required")
	}
	if c.Database.Port == 0 {
		return fmt.Errorf("database.port is required")
	}
	if c.Database.Name == "" {
		return fmt.Errorf("database.name is required")
	}
	if c.Database.User == "" {
		return fmt.Errorf("database.user is required")
	}
	if c.Auth.APIKey == "" {
		return fmt.Errorf("auth.api_key is required")
	}
	if c.Tailscale.Enabled && c.Tailscale.Hostname == "" {
		return fmt.Errorf("tailscale.hostname is required when tailscale is enabled")
	}
	return nil
}
