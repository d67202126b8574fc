package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"reelmatch/internal/similarity"
)

// Store manages the local catalog cache backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the catalog cache database under dir.
func Open(dir string) (*Store, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, errors.New("cache directory required")
	}

	dbPath := filepath.Join(dir, "catalog.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: dbPath}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

const entryColumns = "id, kind, title, title_cn, original_title, release_date, popularity, overview, poster_path"

// SearchByTitle returns up to limit entries whose primary, Chinese, or
// original title contains the query as a substring, ranked by popularity
// descending. Both the query and the stored titles are compared in their
// normalized forms (see similarity.Normalize) so punctuation and case
// differences don't defeat the substring match.
func (s *Store) SearchByTitle(ctx context.Context, kind Kind, query string, limit int) ([]Entry, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("invalid kind %q", kind)
	}
	normalized := similarity.Normalize(query)
	if normalized == "" {
		return nil, nil
	}
	if limit <= 0 {
		limit = 20
	}

	pattern := "%" + escapeLike(normalized) + "%"
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+entryColumns+` FROM catalog_entries
         WHERE kind = ?
           AND (norm_title LIKE ? ESCAPE '\'
             OR norm_title_cn LIKE ? ESCAPE '\'
             OR norm_original LIKE ? ESCAPE '\')
         ORDER BY popularity DESC, id ASC
         LIMIT ?`,
		string(kind), pattern, pattern, pattern, limit)
	if err != nil {
		return nil, fmt.Errorf("search by title: %w", err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

// GetByID fetches a single entry, returning nil when absent.
func (s *Store) GetByID(ctx context.Context, kind Kind, id int64) (*Entry, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("invalid kind %q", kind)
	}
	row := s.db.QueryRowContext(ctx,
		`SELECT `+entryColumns+` FROM catalog_entries WHERE kind = ? AND id = ?`,
		string(kind), id)

	entry, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get by id: %w", err)
	}
	return &entry, nil
}

// Upsert inserts or replaces an entry, idempotent by (kind, id).
func (s *Store) Upsert(ctx context.Context, entry Entry) error {
	if !entry.Kind.Valid() {
		return fmt.Errorf("invalid kind %q", entry.Kind)
	}
	if entry.ID <= 0 {
		return errors.New("entry id must be positive")
	}

	now := time.Now().UTC().Format(time.RFC3339Nano)
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO catalog_entries (
            id, kind, title, title_cn, original_title,
            release_date, popularity, overview, poster_path,
            norm_title, norm_title_cn, norm_original, updated_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
        ON CONFLICT (kind, id) DO UPDATE SET
            title = excluded.title,
            title_cn = excluded.title_cn,
            original_title = excluded.original_title,
            release_date = excluded.release_date,
            popularity = excluded.popularity,
            overview = excluded.overview,
            poster_path = excluded.poster_path,
            norm_title = excluded.norm_title,
            norm_title_cn = excluded.norm_title_cn,
            norm_original = excluded.norm_original,
            updated_at = excluded.updated_at`,
		entry.ID, string(entry.Kind), entry.Title, entry.TitleCN, entry.OriginalTitle,
		entry.ReleaseDate, entry.Popularity, entry.Overview, entry.PosterPath,
		similarity.Normalize(entry.Title), similarity.Normalize(entry.TitleCN),
		similarity.Normalize(entry.OriginalTitle), now)
	if err != nil {
		return fmt.Errorf("upsert entry %d: %w", entry.ID, err)
	}
	return nil
}

// Count returns the number of cached entries for the kind.
func (s *Store) Count(ctx context.Context, kind Kind) (int64, error) {
	if !kind.Valid() {
		return 0, fmt.Errorf("invalid kind %q", kind)
	}
	var count int64
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM catalog_entries WHERE kind = ?`, string(kind)).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count entries: %w", err)
	}
	return count, nil
}

func escapeLike(s string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return replacer.Replace(s)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (Entry, error) {
	var entry Entry
	var kind string
	err := row.Scan(&entry.ID, &kind, &entry.Title, &entry.TitleCN, &entry.OriginalTitle,
		&entry.ReleaseDate, &entry.Popularity, &entry.Overview, &entry.PosterPath)
	if err != nil {
		return Entry{}, err
	}
	entry.Kind = Kind(kind)
	return entry, nil
}

func scanEntries(rows *sql.Rows) ([]Entry, error) {
	var entries []Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate entries: %w", err)
	}
	return entries, nil
}
