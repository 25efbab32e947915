// Package cache stores fetched source payloads in a local SQLite database,
// keyed by URL. Re-running the pipeline against cached payloads skips the
// network entirely, which matters when replaying a merge against sources
// that have since changed or disappeared.
package cache

import (
	"database/sql"
	"time"

	_ "modernc.org/sqlite"

	"github.com/siamvotes/votemerge/pkg/errors"
	"github.com/siamvotes/votemerge/pkg/logging"
)

// PayloadCache is a URL-keyed payload store backed by SQLite.
type PayloadCache struct {
	db *sql.DB
}

// Open creates or opens a payload cache at path.
func Open(path string) (*PayloadCache, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.WrapIO("open", path, err)
	}

	c := &PayloadCache{db: db}
	if err := c.init(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return c, nil
}

// init creates the schema.
func (c *PayloadCache) init() error {
	_, err := c.db.Exec(`
		CREATE TABLE IF NOT EXISTS payloads (
			url        TEXT PRIMARY KEY,
			body       BLOB NOT NULL,
			fetched_at TEXT NOT NULL
		)
	`)
	if err != nil {
		return errors.WrapIO("create", "payloads table", err)
	}
	return nil
}

// Get returns the cached payload for url, if present.
func (c *PayloadCache) Get(url string) ([]byte, bool) {
	var body []byte
	err := c.db.QueryRow("SELECT body FROM payloads WHERE url = ?", url).Scan(&body)
	if err != nil {
		if err != sql.ErrNoRows {
			logging.Warn().Err(err).Str("url", url).Msg("Cache read failed")
		}
		return nil, false
	}
	return body, true
}

// Put stores a payload for url, replacing any previous entry.
func (c *PayloadCache) Put(url string, body []byte) error {
	_, err := c.db.Exec(
		"INSERT OR REPLACE INTO payloads (url, body, fetched_at) VALUES (?, ?, ?)",
		url, body, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return errors.WrapIO("write", url, err)
	}
	return nil
}

// FetchedAt returns when the payload for url was stored.
func (c *PayloadCache) FetchedAt(url string) (time.Time, bool) {
	var stamp string
	err := c.db.QueryRow("SELECT fetched_at FROM payloads WHERE url = ?", url).Scan(&stamp)
	if err != nil {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339, stamp)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Purge removes entries older than the cutoff. Returns how many were removed.
func (c *PayloadCache) Purge(olderThan time.Time) (int64, error) {
	res, err := c.db.Exec(
		"DELETE FROM payloads WHERE fetched_at < ?",
		olderThan.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return 0, errors.WrapIO("delete", "payloads", err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}

// Close releases the underlying database handle.
func (c *PayloadCache) Close() error {
	return c.db.Close()
}
