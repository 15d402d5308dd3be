package bibtex

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// seedDatabase writes a Better BibTeX shaped database to a temp file.
func seedDatabase(t *testing.T, records []Record) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "better-bibtex.sqlite")

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.Exec(`CREATE TABLE citationkey (
		itemID INTEGER PRIMARY KEY,
		itemKey TEXT NOT NULL,
		libraryID INTEGER NOT NULL,
		citationKey TEXT NOT NULL,
		pinned INTEGER NOT NULL DEFAULT 0,
		lastPinned TEXT
	)`).Error)

	for _, rec := range records {
		require.NoError(t, db.Create(&rec).Error)
	}

	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())
	return path
}

// TestOpen_MissingConfig tests that an unset database path is rejected.
func TestOpen_MissingConfig(t *testing.T) {
	_, err := Open(Config{})
	assert.ErrorIs(t, err, ErrNoDatabase)
}

// TestOpen_MissingFile tests that a nonexistent file is a fatal error,
// not an empty lookup table.
func TestOpen_MissingFile(t *testing.T) {
	_, err := Open(Config{DBPath: filepath.Join(t.TempDir(), "absent.sqlite")})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

// TestReadAll tests loading the seeded lookup table through a read-only
// connection.
func TestReadAll(t *testing.T) {
	path := seedDatabase(t, []Record{
		{ItemID: 1, ItemKey: "AAAA1111", LibraryID: 1, CitationKey: "smith2023evolution"},
		{ItemID: 2, ItemKey: "BBBB2222", LibraryID: 1, CitationKey: "jones2021methods", Pinned: true},
	})

	db, err := Open(Config{DBPath: path})
	require.NoError(t, err)

	records, err := ReadAll(context.Background(), db)
	assert.NoError(t, err)
	assert.Len(t, records, 2)
	assert.Equal(t, "smith2023evolution", records[0].CitationKey)
	assert.True(t, records[1].Pinned)
}

// TestReadAll_EmptyTable tests that an empty table yields zero records
// without error.
func TestReadAll_EmptyTable(t *testing.T) {
	path := seedDatabase(t, nil)

	db, err := Open(Config{DBPath: path})
	require.NoError(t, err)

	records, err := ReadAll(context.Background(), db)
	assert.NoError(t, err)
	assert.Empty(t, records)
}

// TestOpen_ReadOnly tests that the connection refuses writes.
func TestOpen_ReadOnly(t *testing.T) {
	path := seedDatabase(t, nil)

	db, err := Open(Config{DBPath: path})
	require.NoError(t, err)

	err = db.Exec(`INSERT INTO citationkey (itemID, itemKey, libraryID, citationKey, pinned)
		VALUES (99, 'XXXX9999', 1, 'rogue2024write', 0)`).Error
	assert.Error(t, err)
}

// TestResolveKeys tests the read-and-resolve round trip against a real
// database file.
func TestResolveKeys(t *testing.T) {
	path := seedDatabase(t, []Record{
		{ItemID: 1, ItemKey: "AAAA1111", LibraryID: 1, CitationKey: "smith2023evolution"},
		{ItemID: 2, ItemKey: "BBBB2222", LibraryID: 2, CitationKey: "doe2019survey"},
	})

	cfg := Config{DBPath: path, LibraryID: 1}
	db, err := Open(cfg)
	require.NoError(t, err)

	records, err := ResolveKeys(context.Background(), db, cfg, []string{"smith2023evolution", "doe2019survey"})
	assert.NoError(t, err)
	require.Len(t, records, 2)
	assert.True(t, records[0].Found)
	// doe2019survey sits in another library, filtered out by config
	assert.False(t, records[1].Found)
}
