package upload

import (
	"fmt"
	"time"

	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

// cacheEntry is what a finished upload leaves behind: the remote address plus
// the natural pixel size of the prepared image.
type cacheEntry struct {
	URL    string
	Width  int
	Height int
}

// cache maps content hashes of prepared images to previously uploaded
// addresses so repeated renders of the same deck do not hammer the object
// store. All methods are safe to call on a nil receiver.
type cache struct {
	conn *sqlite.Conn
}

const cacheSchema = `
CREATE TABLE IF NOT EXISTS assets (
	hash    TEXT PRIMARY KEY,
	url     TEXT NOT NULL,
	width   INTEGER NOT NULL,
	height  INTEGER NOT NULL,
	created INTEGER NOT NULL
);
`

func openCache(path string) (*cache, error) {

	conn, err := sqlite.OpenConn(path)
	if err != nil {
		return nil, fmt.Errorf("unable to open upload cache: %w", err)
	}
	if err := sqlitex.ExecuteScript(conn, cacheSchema, nil); err != nil {
		conn.Close()
		return nil, fmt.Errorf("unable to prepare upload cache: %w", err)
	}
	return &cache{conn: conn}, nil
}

// lookup returns the cached entry for hash or nil when there is none.
func (c *cache) lookup(hash string) (*cacheEntry, error) {

	if c == nil {
		return nil, nil
	}

	var ent *cacheEntry
	err := sqlitex.Execute(c.conn, `SELECT url, width, height FROM assets WHERE hash = ?`, &sqlitex.ExecOptions{
		Args: []any{hash},
		ResultFunc: func(stmt *sqlite.Stmt) error {
			ent = &cacheEntry{
				URL:    stmt.ColumnText(0),
				Width:  stmt.ColumnInt(1),
				Height: stmt.ColumnInt(2),
			}
			return nil
		},
	})
	if err != nil {
		return nil, err
	}
	return ent, nil
}

func (c *cache) store(hash string, ent *cacheEntry) error {

	if c == nil {
		return nil
	}

	return sqlitex.Execute(c.conn, `INSERT OR REPLACE INTO assets (hash, url, width, height, created) VALUES (?, ?, ?, ?, ?)`, &sqlitex.ExecOptions{
		Args: []any{hash, ent.URL, ent.Width, ent.Height, time.Now().Unix()},
	})
}

func (c *cache) close() error {
	if c == nil {
		return nil
	}
	return c.conn.Close()
}
