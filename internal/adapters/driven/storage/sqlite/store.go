package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/emsal-labs/emsal-cli/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/emsal-labs/emsal-cli/internal/core/domain"
	"github.com/emsal-labs/emsal-cli/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.MetadataIndex = (*Store)(nil)

// Store is the embedded MetadataIndex backed by a single SQLite file.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates an embedded index in dataDir.
// If dataDir is empty, defaults to ~/.emsal/data.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".emsal", "data")
	}

	// Ensure directory exists
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "decisions.db")

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

// migrate runs all pending migrations.
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

	// Sort and run migrations
	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_decisions.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}

		if version <= currentVersion {
			continue // Already applied
		}

		// Read and execute migration
		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
	}

	return nil
}

// UpsertMetadata inserts or fully replaces rows by id in one
// transaction. INSERT OR REPLACE carries the no-merge semantics: a
// replacement row with NULL fields loses the old values.
func (s *Store) UpsertMetadata(ctx context.Context, entries []domain.IndexEntry) (int, error) {
	if len(entries) == 0 {
		return 0, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR REPLACE INTO decisions (id, daire, esas_no, karar_no, karar_tarihi, ozet, full_text_url)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("preparing upsert: %w", err)
	}
	defer stmt.Close()

	for i := range entries {
		e := &entries[i]
		_, err := stmt.ExecContext(ctx,
			e.ID, e.Daire, e.EsasNo, e.KararNo, e.KararTarihi, e.Ozet, e.FullTextURL)
		if err != nil {
			return 0, fmt.Errorf("upserting decision %d: %w", e.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing upsert: %w", err)
	}
	return len(entries), nil
}

// SearchDecisions returns up to domain.SearchLimit rows matching all
// supplied filters.
func (s *Store) SearchDecisions(ctx context.Context, f domain.SearchFilters) ([]domain.IndexEntry, error) {
	query := "SELECT id, daire, esas_no, karar_no, karar_tarihi, ozet, full_text_url FROM decisions WHERE 1=1"
	var args []any

	if f.ID != 0 {
		query += " AND id = ?"
		args = append(args, f.ID)
	}
	if f.Daire != "" {
		query += " AND daire LIKE ?"
		args = append(args, "%"+f.Daire+"%")
	}
	if f.EsasNo != "" {
		query += " AND esas_no = ?"
		args = append(args, f.EsasNo)
	}
	if f.KararNo != "" {
		query += " AND karar_no = ?"
		args = append(args, f.KararNo)
	}
	if f.Keyword != "" {
		// No full-text index in the metadata file; summary and chamber
		// stand in for it.
		query += " AND (ozet LIKE ? OR daire LIKE ?)"
		term := "%" + f.Keyword + "%"
		args = append(args, term, term)
	}
	if f.Year != 0 {
		query += " AND strftime('%Y', karar_tarihi) = ?"
		args = append(args, strconv.Itoa(f.Year))
	}
	if f.StartDate != "" {
		query += " AND karar_tarihi >= ?"
		args = append(args, f.StartDate)
	}
	if f.EndDate != "" {
		query += " AND karar_tarihi <= ?"
		args = append(args, f.EndDate)
	}

	query += fmt.Sprintf(" LIMIT %d", domain.SearchLimit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying decisions: %w", err)
	}
	defer rows.Close()

	var out []domain.IndexEntry
	for rows.Next() {
		var e domain.IndexEntry
		var daire, esas, karar, tarih, ozet, url sql.NullString
		if err := rows.Scan(&e.ID, &daire, &esas, &karar, &tarih, &ozet, &url); err != nil {
			return nil, fmt.Errorf("scanning decision row: %w", err)
		}
		e.Daire = nullable(daire)
		e.EsasNo = nullable(esas)
		e.KararNo = nullable(karar)
		e.KararTarihi = nullable(tarih)
		e.Ozet = ozet.String
		e.FullTextURL = url.String
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating decision rows: %w", err)
	}
	return out, nil
}

// nullable converts a NullString to the domain's pointer form.
func nullable(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	return &ns.String
}
