// recorder.go
//
// Recorder is an offline companion tool: it appends a time series of
// Snapshot rows to a local SQLite file so growth (page count over time,
// table rebuild frequency) can be studied after the fact. It never sits on
// the Intern/TryLookup hot path and owns no state the interner depends on
// to function — deleting the database file loses history, not
// correctness. Adapted from the sql.Open("sqlite3", ...) / CREATE TABLE IF
// NOT EXISTS bootstrap in syncharvester.go.

package diag

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Recorder appends Snapshot rows to a SQLite database.
type Recorder struct {
	db *sql.DB
}

// OpenRecorder opens (creating if necessary) a SQLite file at path and
// ensures its schema exists.
func OpenRecorder(path string) (*Recorder, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	const schema = `
	CREATE TABLE IF NOT EXISTS snapshots (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		recorded_at INTEGER NOT NULL,
		arena_pages INTEGER NOT NULL,
		arena_bytes_used INTEGER NOT NULL,
		arena_bytes_capacity INTEGER NOT NULL,
		table_len INTEGER NOT NULL,
		table_capacity INTEGER NOT NULL,
		load_factor REAL NOT NULL,
		registry_size INTEGER NOT NULL
	);`

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("diag: bootstrap schema: %w", err)
	}

	return &Recorder{db: db}, nil
}

// Record appends one Snapshot row stamped with the given time.
func (r *Recorder) Record(at time.Time, s Snapshot) error {
	const insert = `
	INSERT INTO snapshots (
		recorded_at, arena_pages, arena_bytes_used, arena_bytes_capacity,
		table_len, table_capacity, load_factor, registry_size
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.Exec(insert, at.Unix(), s.ArenaPages, s.ArenaBytesUsed,
		s.ArenaBytesCap, s.TableLen, s.TableCapacity, s.LoadFactor, s.RegistrySize)
	return err
}

// Close releases the underlying database handle.
func (r *Recorder) Close() error {
	return r.db.Close()
}
