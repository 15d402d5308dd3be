package zotero

import (
	"errors"
	"fmt"
)

// Config holds configuration for the Zotero Web API connection.
type Config struct {
	// LibraryID is the numeric Zotero library identifier.
	LibraryID string `mapstructure:"library_id" yaml:"library_id" default:""`
	// APIKey is the Zotero Web API key.
	APIKey string `mapstructure:"api_key" yaml:"api_key" default:""`
	// LibraryType is "user" or "group".
	LibraryType string `mapstructure:"library_type" yaml:"library_type" default:"user"`
	// BaseURL is the API endpoint, overridable for testing.
	BaseURL string `mapstructure:"base_url" yaml:"base_url" default:"https://api.zotero.org"`
	// TimeoutSeconds bounds connection setup and response header waits.
	TimeoutSeconds int `mapstructure:"timeout_seconds" yaml:"timeout_seconds" default:"30"`
}

// Validate checks that the connection can be attempted at all.
// Missing credentials are a fatal configuration error.
func (c Config) Validate() error {
	if c.LibraryID == "" {
		return errors.New("zotero library ID required (set ZOTERO_LIBRARY_ID or --library-id)")
	}
	if c.APIKey == "" {
		return errors.New("zotero API key required (set ZOTERO_API_KEY or --api-key)")
	}
	if c.LibraryType != "user" && c.LibraryType != "group" {
		return fmt.Errorf("invalid library type %q (must be user or group)", c.LibraryType)
	}
	return nil
}
