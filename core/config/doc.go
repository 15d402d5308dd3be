// Package config provides centralized configuration loading for the application.
//
// Configuration is assembled from three layers, in increasing precedence:
// struct-tag defaults, a local .env file, and process environment variables.
// Command-line flags override individual values on top of the loaded config
// (handled in cmd).
//
// Nested keys map to environment variables by replacing dots with
// underscores, e.g. zotero.library_id becomes ZOTERO_LIBRARY_ID and
// bbt.db_path becomes BBT_DB_PATH.
package config
