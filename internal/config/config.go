package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Backend modes. The choice is made once per process.
const (
	ModeLive       = "live"
	ModeSimulation = "simulation"
)

const envPrefix = "SMARTHOME"

// Config is the full client configuration.
type Config struct {
	Port       string           `mapstructure:"port"`
	Log        LogConfig        `mapstructure:"log"`
	DB         DBConfig         `mapstructure:"db"`
	Backend    BackendConfig    `mapstructure:"backend"`
	Simulation SimulationConfig `mapstructure:"simulation"`
	Polling    PollingConfig    `mapstructure:"polling"`
	Theme      ThemeConfig      `mapstructure:"theme"`
	Camera     CameraConfig     `mapstructure:"camera"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

type DBConfig struct {
	Path string `mapstructure:"path"`
}

type BackendConfig struct {
	Mode     string      `mapstructure:"mode"`
	BaseURL  string      `mapstructure:"base_url"`
	Fallback bool        `mapstructure:"fallback"`
	Retry    RetryConfig `mapstructure:"retry"`
}

type RetryConfig struct {
	MaxAttempts  int           `mapstructure:"max_attempts"`
	InitialDelay time.Duration `mapstructure:"initial_delay"`
}

type SimulationConfig struct {
	Latency    time.Duration `mapstructure:"latency"`
	SigningKey string        `mapstructure:"signing_key"`
	TokenTTL   time.Duration `mapstructure:"token_ttl"`
	Seed       int64         `mapstructure:"seed"`
}

type PollingConfig struct {
	Interval time.Duration `mapstructure:"interval"`
}

type ThemeConfig struct {
	Default string `mapstructure:"default"`
}

type CameraConfig struct {
	Warmup time.Duration `mapstructure:"warmup"`
	Width  int           `mapstructure:"width"`
	Height int           `mapstructure:"height"`
}

// Load reads the config file at path (optional), applies SMARTHOME_* env
// overrides and defaults, and validates the result.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config %q: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "8080")
	v.SetDefault("log.level", "info")
	v.SetDefault("db.path", "client.db")
	v.SetDefault("backend.mode", ModeSimulation)
	v.SetDefault("backend.base_url", "http://localhost:5000")
	v.SetDefault("backend.fallback", true)
	v.SetDefault("backend.retry.max_attempts", 3)
	v.SetDefault("backend.retry.initial_delay", 100*time.Millisecond)
	v.SetDefault("simulation.latency", 300*time.Millisecond)
	v.SetDefault("simulation.signing_key", "change-me-in-production")
	v.SetDefault("simulation.token_ttl", 24*time.Hour)
	v.SetDefault("simulation.seed", 0)
	v.SetDefault("polling.interval", 2*time.Second)
	v.SetDefault("theme.default", "light")
	v.SetDefault("camera.warmup", 500*time.Millisecond)
	v.SetDefault("camera.width", 640)
	v.SetDefault("camera.height", 480)
}

var (
	errInvalidMode     = errors.New("invalid backend.mode: must be live or simulation")
	errMissingBaseURL  = errors.New("backend.base_url is required in live mode")
	errInvalidInterval = errors.New("polling.interval must be > 0")
	errInvalidTheme    = errors.New("invalid theme.default: must be light or dark")
)

// Validate checks cross-field constraints.
func (c *Config) Validate() error {
	switch c.Backend.Mode {
	case ModeLive:
		if strings.TrimSpace(c.Backend.BaseURL) == "" {
			return errMissingBaseURL
		}
	case ModeSimulation:
	default:
		return errInvalidMode
	}
	if c.Polling.Interval <= 0 {
		return errInvalidInterval
	}
	if c.Theme.Default != "light" && c.Theme.Default != "dark" {
		return errInvalidTheme
	}
	return nil
}

// Simulated reports whether the in-memory backend is selected.
func (c *Config) Simulated() bool {
	return c.Backend.Mode == ModeSimulation
}
