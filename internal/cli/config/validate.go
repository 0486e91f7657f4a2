package config

import (
	"fmt"
	"os"
)

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.NewsDir == "" {
		return fmt.Errorf("news_dir is required")
	}
	if c.History != nil {
		switch c.History.Backend {
		case "", "sqlite", "postgres":
		default:
			return fmt.Errorf("unknown history backend %q (expected sqlite or postgres)", c.History.Backend)
		}
	}

	// Only validate directory existence if we're running a command that needs it
	// This allows help commands to work without a valid directory
	return nil
}

// ValidateDirectories checks if required directories exist.
func (c *Config) ValidateDirectories() error {
	if _, err := os.Stat(c.NewsDir); os.IsNotExist(err) {
		return fmt.Errorf("news directory does not exist: %s\nHint: Run 'newsroom init' or use --news-dir to specify a different path", c.NewsDir)
	}
	return nil
}
