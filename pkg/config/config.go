// pkg/config/config.go
package config

import (
	"fmt"
	"strings"
	"time"
)

// Config is the top-level application configuration.
type Config struct {
	App         AppConfig         `koanf:"app"`
	Log         LogConfig         `koanf:"log"`
	Metrics     MetricsConfig     `koanf:"metrics"`
	Cache       CacheConfig       `koanf:"cache"`
	Scheduling  SchedulingConfig  `koanf:"scheduling"`
	ClassAssign ClassAssignConfig `koanf:"class_assign"`
}

// AppConfig holds general application settings.
type AppConfig struct {
	Name        string `koanf:"name"`
	Version     string `koanf:"version"`
	Environment string `koanf:"environment"` // development, staging, production
	Debug       bool   `koanf:"debug"`
}

// LogConfig configures the logger.
type LogConfig struct {
	Level      string `koanf:"level"`       // debug, info, warn, error
	Format     string `koanf:"format"`      // json, text
	Output     string `koanf:"output"`      // stdout, stderr, file
	FilePath   string `koanf:"file_path"`   // path for output=file
	MaxSize    int    `koanf:"max_size"`    // MB
	MaxBackups int    `koanf:"max_backups"` // number of rotated backups kept
	MaxAge     int    `koanf:"max_age"`     // days
	Compress   bool   `koanf:"compress"`
}

// MetricsConfig configures the Prometheus registry.
type MetricsConfig struct {
	Enabled   bool   `koanf:"enabled"`
	Namespace string `koanf:"namespace"`
	Subsystem string `koanf:"subsystem"`
}

// CacheConfig configures the solve-result cache.
type CacheConfig struct {
	Enabled    bool          `koanf:"enabled"`
	Driver     string        `koanf:"driver"` // memory, redis
	Host       string        `koanf:"host"`
	Port       int           `koanf:"port"`
	Password   string        `koanf:"password"`
	DB         int           `koanf:"db"`
	DefaultTTL time.Duration `koanf:"default_ttl"`
	MaxEntries int           `koanf:"max_entries"` // in-memory backend only
}

// Address returns the cache backend's network address.
func (c CacheConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// SchedulingConfig holds the tunables for the conference-scheduling core (spec.md §6).
type SchedulingConfig struct {
	// PreferredReward is the bonus subtracted from cost when a meeting lands
	// on one of the parent's preferred slots.
	PreferredReward int64 `koanf:"preferred_reward"`
	// DropPenalty is the cost charged per unit of flow that escapes via a
	// drop edge instead of being scheduled.
	DropPenalty int64 `koanf:"drop_penalty"`
	// ReschedulePenalty is the aggregator-only cost charged when a meeting
	// is placed off the parent's single preferred slot.
	ReschedulePenalty int64 `koanf:"reschedule_penalty"`
	// ParentBonus is the aggregator-only reward for placing a parent's
	// meetings on consecutive slots.
	ParentBonus int64 `koanf:"parent_bonus"`
}

// DefaultSchedulingConfig returns the tunables named in spec.md §6.
func DefaultSchedulingConfig() SchedulingConfig {
	return SchedulingConfig{
		PreferredReward:   10,
		DropPenalty:       1000,
		ReschedulePenalty: 50,
		ParentBonus:       20,
	}
}

// ClassAssignConfig holds the tunables for the class-assignment core.
type ClassAssignConfig struct {
	// TimeLimitSeconds bounds the preprocessed-formulation ILP solve; 0 means
	// no limit.
	TimeLimitSeconds float64 `koanf:"time_limit_seconds"`
	// ClusterThreshold is the reciprocal-preference-density cutoff (spec.md
	// §4.8) above which the dataset is classified Clustered.
	ClusterThreshold float64 `koanf:"cluster_threshold"`
}

// DefaultClassAssignConfig returns the strategy-selector default of spec.md §4.8.
func DefaultClassAssignConfig() ClassAssignConfig {
	return ClassAssignConfig{
		TimeLimitSeconds: 30,
		ClusterThreshold: 0.75,
	}
}

// Validate checks the configuration for internal consistency.
func (c *Config) Validate() error {
	var errs []string

	if c.App.Name == "" {
		errs = append(errs, "app.name is required")
	}

	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(c.Log.Level)] {
		errs = append(errs, fmt.Sprintf("log.level must be one of: debug, info, warn, error, got %s", c.Log.Level))
	}

	if c.Scheduling.DropPenalty < 0 {
		errs = append(errs, "scheduling.drop_penalty must be non-negative")
	}
	if c.Scheduling.PreferredReward < 0 {
		errs = append(errs, "scheduling.preferred_reward must be non-negative")
	}

	if c.ClassAssign.ClusterThreshold < 0 || c.ClassAssign.ClusterThreshold > 1 {
		errs = append(errs, "class_assign.cluster_threshold must be in [0,1]")
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}

	return nil
}

// IsDevelopment reports whether the app is configured for local development.
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development" || c.App.Environment == "dev"
}

// IsProduction reports whether the app is configured for production.
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production" || c.App.Environment == "prod"
}
