// Package catalog persists normalized standards tables in a SQLite database
// so part generators and users can query sizes without re-parsing raw
// datasheet tables. Every imported source is checksummed so a re-import of
// unchanged data is a no-op.
package catalog

import (
	"bytes"
	"database/sql"
	"encoding/csv"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/crypto/blake2b"
	_ "modernc.org/sqlite"

	"pwh/internal/errors"
	"pwh/internal/logging"
	"pwh/internal/reindex"
)

// Store provides persistence for the parts catalog in a SQLite database
type Store struct {
	conn   *sql.DB
	logger *logging.Logger
	dbPath string
}

// Open opens or creates the catalog database at the given path
func Open(dbPath string, logger *logging.Logger) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create catalog directory: %w", err)
	}

	dbExists := fileExists(dbPath)

	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog database: %w", err)
	}

	// Set pragmas for performance
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA foreign_keys=ON",
		"PRAGMA busy_timeout=5000",
		"PRAGMA cache_size=-16000", // 16MB cache
	}
	for _, pragma := range pragmas {
		if _, err := conn.Exec(pragma); err != nil {
			_ = conn.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	store := &Store{conn: conn, logger: logger, dbPath: dbPath}
	if !dbExists {
		logger.Info("Creating catalog database", map[string]interface{}{
			"path": dbPath,
		})
	}
	if err := store.initializeSchema(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to initialize catalog schema: %w", err)
	}
	return store, nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func (s *Store) initializeSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS parts (
			family TEXT NOT NULL,
			size TEXT NOT NULL,
			fields TEXT NOT NULL,
			source TEXT NOT NULL,
			imported_at TEXT NOT NULL,
			PRIMARY KEY (family, size)
		);
		CREATE INDEX IF NOT EXISTS idx_parts_family ON parts(family);

		CREATE TABLE IF NOT EXISTS sources (
			name TEXT PRIMARY KEY,
			checksum TEXT NOT NULL,
			imported_at TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY
		);
		INSERT OR REPLACE INTO schema_version (version) VALUES (1);
	`
	_, err := s.conn.Exec(schema)
	return err
}

// Close closes the database connection
func (s *Store) Close() error {
	if s.conn != nil {
		return s.conn.Close()
	}
	return nil
}

// Checksum returns the hex BLAKE2b-256 digest of a raw source table
func Checksum(raw []byte) string {
	sum := blake2b.Sum256(raw)
	return hex.EncodeToString(sum[:])
}

// Part is one catalog entry
type Part struct {
	Family     string   `json:"family"`
	Size       string   `json:"size"`
	Fields     []string `json:"fields"`
	Source     string   `json:"source"`
	ImportedAt string   `json:"importedAt"`
}

// Import stores the records of a normalized table under the given family.
// The raw source bytes are checksummed; when the source was already imported
// with the same checksum the import is skipped and Import reports false.
func (s *Store) Import(family, sourceName string, raw []byte, records []reindex.Record) (bool, error) {
	checksum := Checksum(raw)

	var existing string
	err := s.conn.QueryRow(`SELECT checksum FROM sources WHERE name = ?`, sourceName).Scan(&existing)
	if err == nil && existing == checksum {
		s.logger.Debug("Source unchanged, skipping import", map[string]interface{}{
			"source":   sourceName,
			"checksum": checksum,
		})
		return false, nil
	}
	if err != nil && err != sql.ErrNoRows {
		return false, fmt.Errorf("failed to query source checksum: %w", err)
	}

	tx, err := s.conn.Begin()
	if err != nil {
		return false, fmt.Errorf("failed to begin import: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	now := time.Now().UTC().Format(time.RFC3339)
	for _, record := range records {
		fields, err := json.Marshal(record.Fields)
		if err != nil {
			return false, fmt.Errorf("failed to encode record %s: %w", record.Size, err)
		}
		if _, err := tx.Exec(`
			INSERT INTO parts (family, size, fields, source, imported_at)
			VALUES (?, ?, ?, ?, ?)
			ON CONFLICT (family, size) DO UPDATE SET
				fields = excluded.fields,
				source = excluded.source,
				imported_at = excluded.imported_at
		`, family, record.Size, string(fields), sourceName, now); err != nil {
			return false, fmt.Errorf("failed to insert record %s: %w", record.Size, err)
		}
	}

	if _, err := tx.Exec(`
		INSERT INTO sources (name, checksum, imported_at) VALUES (?, ?, ?)
		ON CONFLICT (name) DO UPDATE SET
			checksum = excluded.checksum,
			imported_at = excluded.imported_at
	`, sourceName, checksum, now); err != nil {
		return false, fmt.Errorf("failed to record source: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit import: %w", err)
	}

	s.logger.Info("Imported standards table", map[string]interface{}{
		"family":   family,
		"source":   sourceName,
		"records":  len(records),
		"checksum": checksum,
	})
	return true, nil
}

// ImportCSV imports a header-row csv standards table. The size designator is
// taken from sizeColumn; every other column becomes a name=value field using
// the header names. Returns whether the source changed since its last import
// and the record count.
func (s *Store) ImportCSV(family, sourceName string, raw []byte, sizeColumn int) (bool, int, error) {
	rows, err := csv.NewReader(bytes.NewReader(raw)).ReadAll()
	if err != nil {
		return false, 0, errors.Wrap(errors.MalformedTable,
			fmt.Sprintf("table %s is not readable csv", sourceName), err)
	}
	if len(rows) < 2 {
		return false, 0, errors.Newf(errors.MalformedTable, "table %s has no records", sourceName)
	}
	header := rows[0]
	if sizeColumn < 0 || sizeColumn >= len(header) {
		return false, 0, errors.Newf(errors.MalformedTable,
			"table %s has no column %d", sourceName, sizeColumn)
	}

	records := make([]reindex.Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		fields := make([]string, 0, len(row)-1)
		for col := 0; col < len(row) && col < len(header); col++ {
			if col == sizeColumn {
				continue
			}
			fields = append(fields, header[col]+"="+row[col])
		}
		records = append(records, reindex.Record{Size: row[sizeColumn], Fields: fields})
	}

	imported, err := s.Import(family, sourceName, raw, records)
	return imported, len(records), err
}

// Families returns the known part families
func (s *Store) Families() ([]string, error) {
	rows, err := s.conn.Query(`SELECT DISTINCT family FROM parts ORDER BY family`)
	if err != nil {
		return nil, fmt.Errorf("failed to list families: %w", err)
	}
	defer rows.Close()

	var families []string
	for rows.Next() {
		var family string
		if err := rows.Scan(&family); err != nil {
			return nil, err
		}
		families = append(families, family)
	}
	return families, rows.Err()
}

// Sizes returns the sizes stored for a family
func (s *Store) Sizes(family string) ([]string, error) {
	rows, err := s.conn.Query(`SELECT size FROM parts WHERE family = ? ORDER BY size`, family)
	if err != nil {
		return nil, fmt.Errorf("failed to list sizes: %w", err)
	}
	defer rows.Close()

	var all []string
	for rows.Next() {
		var size string
		if err := rows.Scan(&size); err != nil {
			return nil, err
		}
		all = append(all, size)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(all) == 0 {
		return nil, errors.Newf(errors.TypeNotFound, "no catalog entries for family %q", family)
	}
	return all, nil
}

// Lookup returns one catalog entry
func (s *Store) Lookup(family, size string) (*Part, error) {
	var part Part
	var fields string
	err := s.conn.QueryRow(`
		SELECT family, size, fields, source, imported_at
		FROM parts WHERE family = ? AND size = ?
	`, family, size).Scan(&part.Family, &part.Size, &fields, &part.Source, &part.ImportedAt)
	if err == sql.ErrNoRows {
		return nil, errors.Newf(errors.SizeNotFound, "size %q not in catalog family %q", size, family)
	}
	if err != nil {
		return nil, errors.Wrap(errors.CatalogUnavailable, "catalog lookup failed", err)
	}
	if err := json.Unmarshal([]byte(fields), &part.Fields); err != nil {
		return nil, errors.Wrap(errors.InternalError, "corrupt catalog record", err)
	}
	return &part, nil
}
