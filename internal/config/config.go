package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/udisondev/statfx/internal/effect"
	"github.com/udisondev/statfx/internal/model"
)

// Definition sources.
const (
	SourceYAML     = "yaml"
	SourcePostgres = "postgres"
)

// Config holds all configuration for the effect simulator.
type Config struct {
	LogLevel       string `yaml:"log_level"`
	TicksPerSecond int    `yaml:"ticks_per_second"`

	Definitions    Definitions `yaml:"definitions"`
	AnimationsFile string      `yaml:"animations_file"`

	// Layout overrides the built-in stat layout when set.
	Layout *model.StatLayout `yaml:"layout"`

	// Database is used when Definitions.Source is postgres.
	Database DatabaseConfig `yaml:"database"`

	Simulation Simulation `yaml:"simulation"`
}

// Definitions selects where effect definitions come from.
type Definitions struct {
	Source string `yaml:"source"` // yaml | postgres
	Dir    string `yaml:"dir"`
	Watch  bool   `yaml:"watch"` // reload the yaml dir on change

	// Seed upserts the yaml dir into postgres before loading.
	Seed bool `yaml:"seed"`
}

// DatabaseConfig holds PostgreSQL connection parameters.
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
	SSLMode  string `yaml:"sslmode"`
	MaxConns int32  `yaml:"max_conns"` // 0 keeps the pgx default
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

// Simulation drives the scripted actor in cmd/effectsim.
type Simulation struct {
	Ticks        int            `yaml:"ticks"` // <= 0 runs until interrupted
	TickInterval time.Duration  `yaml:"tick_interval"`
	BaseStats    map[string]int `yaml:"base_stats"`
	Steps        []Step         `yaml:"steps"`
}

// Step is one scripted action applied at a given tick.
type Step struct {
	Tick      int    `yaml:"tick"`
	Action    string `yaml:"action"` // add | add_item | trigger | remove | remove_type | remove_passive | clear_negative | clear_items | clear_trigger | clear | damage
	Effect    string `yaml:"effect"`
	Type      string `yaml:"type"`
	Duration  int    `yaml:"duration"`
	Magnitude int    `yaml:"magnitude"`
	Source    string `yaml:"source"`
	Power     uint32 `yaml:"power"`
	Trigger   string `yaml:"trigger"`
	Count     int    `yaml:"count"`
}

// Default returns Config with sensible defaults.
func Default() Config {
	return Config{
		LogLevel:       "info",
		TicksPerSecond: 60,
		Definitions: Definitions{
			Source: SourceYAML,
			Dir:    "data/effects",
		},
		AnimationsFile: "data/animations.yaml",
		Database: DatabaseConfig{
			Host:     "127.0.0.1",
			Port:     5432,
			User:     "statfx",
			Password: "statfx",
			DBName:   "statfx",
			SSLMode:  "disable",
			MaxConns: 4,
		},
		Simulation: Simulation{
			Ticks:        600,
			TickInterval: time.Second / 60,
			BaseStats: map[string]int{
				"hp": 100,
				"mp": 50,
			},
		},
	}
}

// Load loads config from a YAML file.
// If the file doesn't exist, returns defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}

	return cfg, nil
}

// StatLayout returns the configured layout or the built-in one.
func (c Config) StatLayout() model.StatLayout {
	if c.Layout != nil {
		return *c.Layout
	}
	return model.DefaultLayout()
}

func (c Config) validate() error {
	if c.TicksPerSecond <= 0 {
		return fmt.Errorf("ticks_per_second must be positive, got %d", c.TicksPerSecond)
	}
	switch c.Definitions.Source {
	case SourceYAML, SourcePostgres:
	default:
		return fmt.Errorf("unknown definitions source %q", c.Definitions.Source)
	}
	if c.Simulation.TickInterval <= 0 {
		return fmt.Errorf("simulation.tick_interval must be positive, got %s", c.Simulation.TickInterval)
	}
	if c.Layout != nil {
		if err := effect.ValidateLayout(*c.Layout); err != nil {
			return err
		}
	}
	return nil
}
