package msximg

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// Cache stores generated tables keyed by the SHA-1 of the input image and
// the parameters they were generated with.
type Cache struct {
	db *sql.DB
}

// Artifact is a table found in the cache.
type Artifact struct {
	Compressor string
	Data       []byte
}

// OpenCache opens the cache stored in file, creating it if needed.
func OpenCache(file string) (*Cache, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("%s?_busy_timeout=5000", file))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS artifact (id INTEGER PRIMARY KEY NOT NULL, sha1 TEXT NOT NULL, params TEXT NOT NULL, compressor TEXT NOT NULL, data BLOB NOT NULL, UNIQUE(sha1, params))"); err != nil {
		db.Close()
		return nil, err
	}

	return &Cache{
		db: db,
	}, nil
}

// Lookup returns the artifact generated from the image with the given
// SHA-1 and parameters, or nil if there is none.
func (c *Cache) Lookup(sha, params string) (*Artifact, error) {
	var a Artifact
	switch err := c.db.QueryRow("SELECT compressor, data FROM artifact WHERE sha1 = ? AND params = ?", sha, params).Scan(&a.Compressor, &a.Data); err {
	case sql.ErrNoRows:
		return nil, nil
	case nil:
		return &a, nil
	default:
		return nil, err
	}
}

// Store records the artifact generated from the image with the given SHA-1
// and parameters, replacing any previous one.
func (c *Cache) Store(sha, params string, a *Artifact) error {
	if _, err := c.db.Exec("INSERT OR REPLACE INTO artifact (sha1, params, compressor, data) VALUES (?, ?, ?, ?)", sha, params, a.Compressor, a.Data); err != nil {
		return err
	}
	return nil
}

// Close closes the cache.
func (c *Cache) Close() error {
	return c.db.Close()
}
