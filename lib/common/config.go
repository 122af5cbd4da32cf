package common

import (
	"fmt"
	"strings"
)

// Config holds the runtime configuration of the bookstore
type Config struct {
	// DataDir is the directory holding the record files
	DataDir string
	// LogLevel is one of debug, info, warn, error
	LogLevel string
	// Prompt enables the interactive "> " prompt
	Prompt bool
	// Metrics writes the engine metrics to stderr on exit
	Metrics bool
}

// DefaultConfig returns the configuration used when no flag or variable is set
func DefaultConfig() Config {
	return Config{
		DataDir:  "data",
		LogLevel: "warn",
	}
}

// Validate checks that all fields hold usable values
func (c *Config) Validate() error {
	if strings.TrimSpace(c.DataDir) == "" {
		return fmt.Errorf("data directory must not be empty")
	}
	if _, err := ParseLogLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// String returns a formatted string representation of the configuration
func (c *Config) String() string {
	var sb strings.Builder

	addSection := func(title string) {
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("%s\n", strings.ToUpper(title)))
	}

	addField := func(name, value string) {
		sb.WriteString(fmt.Sprintf("  %-22s: %s\n", name, value))
	}

	addSection("Storage")
	addField("Data Directory", c.DataDir)

	addSection("Console")
	addField("Prompt", fmt.Sprintf("%t", c.Prompt))
	addField("Metrics", fmt.Sprintf("%t", c.Metrics))

	addSection("Logging")
	addField("Log Level", c.LogLevel)

	return sb.String()
}
