package internal

import (
	"fmt"
	"log/slog"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/starford/bodygraph/internal/design"
	"github.com/starford/bodygraph/internal/houses"
	"github.com/starford/bodygraph/internal/models"
)

// Config represents the application configuration.
type Config struct {
	App      ApplicationConfig `yaml:"app"`
	Engine   EngineConfig      `yaml:"engine"`
	Defaults DefaultsConfig    `yaml:"defaults"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.App.Validate(); err != nil {
		return fmt.Errorf("app: %w", err)
	}
	if err := c.Engine.Validate(); err != nil {
		return fmt.Errorf("engine: %w", err)
	}
	if err := c.Defaults.Validate(); err != nil {
		return fmt.Errorf("defaults: %w", err)
	}
	return nil
}

// ApplicationConfig holds application-level configuration.
type ApplicationConfig struct {
	LogLevel        slog.Level    `yaml:"log_level"`
	HTTP            HTTPConfig    `yaml:"http"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// Validate validates the application configuration.
func (c *ApplicationConfig) Validate() error {
	if err := validation.ValidateStruct(c,
		validation.Field(&c.ShutdownTimeout, validation.Required, validation.Min(time.Second)),
	); err != nil {
		return err
	}
	return c.HTTP.Validate()
}

// HTTPConfig holds HTTP server configuration.
type HTTPConfig struct {
	Port         int   `yaml:"port"`
	MaxBodyBytes int64 `yaml:"max_body_bytes"`
}

// Address returns HTTP server address.
func (c *HTTPConfig) Address() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Validate validates the HTTP configuration.
func (c *HTTPConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Port, validation.Required, validation.Min(1), validation.Max(65535)),
		validation.Field(&c.MaxBodyBytes, validation.Required, validation.Min(int64(256))),
	)
}

// EngineConfig tunes the iterative solvers.
type EngineConfig struct {
	DesignTolerance     float64 `yaml:"design_tolerance"`
	DesignMaxIterations int     `yaml:"design_max_iterations"`
	HouseTolerance      float64 `yaml:"house_tolerance"`
	HouseMaxIterations  int     `yaml:"house_max_iterations"`
}

// Validate validates the engine configuration.
func (c *EngineConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.DesignTolerance, validation.Required, validation.Min(1e-12), validation.Max(0.1)),
		validation.Field(&c.DesignMaxIterations, validation.Required, validation.Min(1), validation.Max(100)),
		validation.Field(&c.HouseTolerance, validation.Required, validation.Min(1e-12), validation.Max(0.1)),
		validation.Field(&c.HouseMaxIterations, validation.Required, validation.Min(1), validation.Max(1000)),
	)
}

// DefaultsConfig fills request fields the caller leaves out.
type DefaultsConfig struct {
	BirthTime string  `yaml:"birth_time"`
	UTCOffset float64 `yaml:"utc_offset"`
}

// Validate validates the defaults.
func (c *DefaultsConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.BirthTime, validation.Required, validation.Date(models.ClockLayout)),
		validation.Field(&c.UTCOffset, validation.Min(-14.0), validation.Max(14.0)),
	)
}

// NewDefaultConfig returns a new Config with sensible default values.
func NewDefaultConfig() *Config {
	return &Config{
		App: ApplicationConfig{
			LogLevel: slog.LevelInfo,
			HTTP: HTTPConfig{
				Port:         8080,
				MaxBodyBytes: 64 << 10,
			},
			ShutdownTimeout: 10 * time.Second,
		},
		Engine: EngineConfig{
			DesignTolerance:     design.DefaultTolerance,
			DesignMaxIterations: design.DefaultMaxIterations,
			HouseTolerance:      houses.DefaultTolerance,
			HouseMaxIterations:  houses.DefaultMaxIterations,
		},
		Defaults: DefaultsConfig{
			BirthTime: "12:00",
		},
	}
}
