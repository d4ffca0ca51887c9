package sqlite

import (
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/maildeck/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/maildeck/internal/core/domain"
	"github.com/custodia-labs/maildeck/internal/core/ports/driven"
	"github.com/custodia-labs/maildeck/internal/logger"
)

// Ensure Store implements the interface.
var _ driven.ConfigStore = (*Store)(nil)

// Store is a SQLite-backed driven.ConfigStore. Every mutation is
// written through to the database; reads query it directly.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite config store at the specified data
// directory. If dataDir is empty, defaults to ~/.maildeck/data/config.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".maildeck", "data")
	}

	// Ensure directory exists
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "config.db")

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	// Run migrations
	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// Get retrieves the entry for a key.
func (s *Store) Get(key string) (domain.Entry, bool) {
	row := s.db.QueryRow(`SELECT kind, value FROM config WHERE key = ?`, key)

	var kind, value string
	if err := row.Scan(&kind, &value); err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			logger.Warn("config get %q: %v", key, err)
		}
		return domain.Entry{}, false
	}

	entry, err := decodeEntry(kind, value)
	if err != nil {
		logger.Warn("config get %q: %v", key, err)
		return domain.Entry{}, false
	}
	return entry, true
}

// Set inserts a new entry or replaces the existing one in place.
func (s *Store) Set(key string, entry domain.Entry) error {
	kind, value, err := encodeEntry(entry)
	if err != nil {
		return err
	}

	_, err = s.db.Exec(`
		INSERT INTO config (key, kind, value, updated_at)
		VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET
			kind = excluded.kind,
			value = excluded.value,
			updated_at = excluded.updated_at
	`, key, kind, value)
	if err != nil {
		return fmt.Errorf("storing config entry: %w", err)
	}
	return nil
}

// Delete removes a key. Deleting an absent key is a no-op.
func (s *Store) Delete(key string) error {
	if _, err := s.db.Exec(`DELETE FROM config WHERE key = ?`, key); err != nil {
		return fmt.Errorf("deleting config entry: %w", err)
	}
	return nil
}

// Keys returns all currently-defined key names, sorted.
func (s *Store) Keys() []string {
	rows, err := s.db.Query(`SELECT key FROM config`)
	if err != nil {
		logger.Warn("config keys: %v", err)
		return nil
	}
	defer rows.Close()

	var keys []string //nolint:prealloc // size unknown from query
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			logger.Warn("config keys: %v", err)
			return nil
		}
		keys = append(keys, key)
	}
	if err := rows.Err(); err != nil {
		logger.Warn("config keys: %v", err)
		return nil
	}

	sort.Strings(keys)
	return keys
}

// Save is a no-op: every Set writes through immediately.
func (s *Store) Save() error {
	return nil
}

// Load is a no-op: reads always query the database.
func (s *Store) Load() error {
	return nil
}

// migrate applies embedded schema migrations in version order.
func (s *Store) migrate(fsys embed.FS) error {
	// Ensure schema_migrations table exists
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	// Get current version
	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	// Find all up migrations
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_config.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}

		if version <= currentVersion {
			continue // Already applied
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}

		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// encodeEntry renders an entry as its kind tag and a text payload.
// List payloads are JSON-encoded.
func encodeEntry(entry domain.Entry) (kind, value string, err error) {
	switch entry.Kind() {
	case domain.KindString:
		v, _ := entry.StringValue()
		return domain.KindString.String(), v, nil
	case domain.KindInteger:
		v, _ := entry.IntegerValue()
		return domain.KindInteger.String(), strconv.FormatInt(v, 10), nil
	case domain.KindList:
		v, _ := entry.ListValue()
		data, err := json.Marshal(v)
		if err != nil {
			return "", "", fmt.Errorf("marshalling list payload: %w", err)
		}
		return domain.KindList.String(), string(data), nil
	default:
		return "", "", fmt.Errorf("%w: kind %q", domain.ErrUnsupportedType, entry.Kind())
	}
}

// decodeEntry reverses encodeEntry.
func decodeEntry(kind, value string) (domain.Entry, error) {
	switch domain.Kind(kind) {
	case domain.KindString:
		return domain.StringEntry(value), nil
	case domain.KindInteger:
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return domain.Entry{}, fmt.Errorf("parsing integer payload: %w", err)
		}
		return domain.IntegerEntry(n), nil
	case domain.KindList:
		var items []string
		if err := json.Unmarshal([]byte(value), &items); err != nil {
			return domain.Entry{}, fmt.Errorf("unmarshalling list payload: %w", err)
		}
		return domain.ListEntry(items), nil
	default:
		return domain.Entry{}, fmt.Errorf("%w: kind %q", domain.ErrUnsupportedType, kind)
	}
}
