package bibtex

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ErrNoDatabase is returned when no lookup database path is configured.
var ErrNoDatabase = errors.New("better bibtex database path required")

// Record mirrors one row of the Better BibTeX citationkey table.
type Record struct {
	ItemID      int64   `gorm:"column:itemID;primaryKey" json:"itemID"`
	ItemKey     string  `gorm:"column:itemKey" json:"itemKey"`
	LibraryID   int64   `gorm:"column:libraryID" json:"libraryID"`
	CitationKey string  `gorm:"column:citationKey" json:"citationKey"`
	Pinned      bool    `gorm:"column:pinned" json:"pinned"`
	LastPinned  *string `gorm:"column:lastPinned" json:"lastPinned"`
}

// TableName maps the model onto the Better BibTeX schema.
func (Record) TableName() string { return "citationkey" }

// Open establishes a read-only connection to the Better BibTeX database.
// A missing path or unreadable file is a fatal configuration error,
// distinct from a citation key that simply is not in the table.
func Open(cfg Config) (*gorm.DB, error) {
	if cfg.DBPath == "" {
		return nil, ErrNoDatabase
	}
	if _, err := os.Stat(cfg.DBPath); err != nil {
		return nil, fmt.Errorf("better bibtex database not found: %s: %w", cfg.DBPath, err)
	}

	// mode=ro: this table is externally maintained and never written here.
	dsn := fmt.Sprintf("file:%s?mode=ro", cfg.DBPath)

	// Suppress GORM logging; the caller owns user-facing output
	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	}

	db, err := gorm.Open(sqlite.Open(dsn), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to open better bibtex database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	// Verify the file is actually a reachable database before first query
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping better bibtex database: %w", err)
	}

	return db, nil
}

// ReadAll loads every citation key record from the lookup table.
func ReadAll(ctx context.Context, db *gorm.DB) ([]Record, error) {
	var records []Record
	if err := db.WithContext(ctx).Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to read citationkey table: %w", err)
	}
	return records, nil
}
