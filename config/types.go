package config

import "time"

// Config represents the complete configuration structure
type Config struct {
	TomTom  TomTomConfig  `mapstructure:"tomtom"`
	Filter  FilterConfig  `mapstructure:"filter"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// TomTomConfig holds search API settings. The API key may also come from the
// TOMTOM_API_KEY environment variable.
type TomTomConfig struct {
	APIKey     string        `mapstructure:"api_key"`
	Limit      int           `mapstructure:"limit"`
	RetryDelay time.Duration `mapstructure:"retry_delay"`
	Timeout    time.Duration `mapstructure:"timeout"`
}

// FilterConfig contains the default filter expression and named presets
type FilterConfig struct {
	DefaultExpression string            `mapstructure:"default_expression"`
	Presets           map[string]string `mapstructure:"presets"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Color  bool   `mapstructure:"color"`
}
