package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/nao1215/xreport/internal/report"
)

// FileName is the name of the database file inside the catalog directory.
const FileName = "catalog.db"

// timestampFormat is the layout of stored timestamps. The fixed width
// keeps ORDER BY created_at chronological.
const timestampFormat = "2006-01-02T15:04:05.000000000Z07:00"

// ErrBuildNotFound is returned when no build matches a lookup.
var ErrBuildNotFound = errors.New("build not found")

// Catalog provides SQLite-based storage of report builds.
type Catalog struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string

	// now returns the build timestamp.
	now func() time.Time
}

// Options configures Catalog behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging for better concurrent performance.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates the catalog in dbDir.
// If CreateIfNotExists is false and the database doesn't exist, an error is returned.
func Open(dbDir string, opts Options) (*Catalog, error) {
	dbPath := filepath.Join(dbDir, FileName)

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("catalog not found at %s (use CreateIfNotExists option to create)", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check catalog path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create catalog directory: %w", err)
		}
	}

	// mode=rw refuses to create a missing file, mode=rwc allows it.
	dsn := dbPath + "?mode=rw"
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog: %w", err)
	}

	// SQLite only supports one writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	c := &Catalog{
		db:     db,
		dbPath: dbPath,
		now:    time.Now,
	}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := c.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return c, nil
}

// Path returns the database file path.
func (c *Catalog) Path() string { return c.dbPath }

// Close closes the database connection.
func (c *Catalog) Close() error {
	return c.db.Close()
}

// createTables creates the database schema if it doesn't exist.
func (c *Catalog) createTables() error {
	schema := `
	-- One row per report build
	CREATE TABLE IF NOT EXISTS builds (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		title TEXT NOT NULL,
		dir TEXT NOT NULL,
		created_at TEXT NOT NULL,
		pages INTEGER NOT NULL,
		pictures INTEGER NOT NULL,
		size INTEGER NOT NULL,
		elapsed_ms INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_builds_name ON builds(name);
	CREATE INDEX IF NOT EXISTS idx_builds_created ON builds(created_at);

	-- Pages written by a build
	CREATE TABLE IF NOT EXISTS build_pages (
		build_id TEXT NOT NULL REFERENCES builds(id) ON DELETE CASCADE,
		position INTEGER NOT NULL,
		name TEXT NOT NULL,
		title TEXT NOT NULL,
		file TEXT NOT NULL,
		pictures INTEGER NOT NULL,
		size INTEGER NOT NULL,
		PRIMARY KEY (build_id, position)
	);
	`

	_, err := c.db.ExecContext(context.Background(), schema)
	return err
}

// Build is a stored report build.
type Build struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	Title     string        `json:"title"`
	Dir       string        `json:"dir"`
	CreatedAt time.Time     `json:"created_at"`
	Pages     int           `json:"pages"`
	Pictures  int           `json:"pictures"`
	Size      int64         `json:"size"`
	Elapsed   time.Duration `json:"elapsed_ns"`

	// PageList is filled by GetBuild only.
	PageList []Page `json:"page_list,omitempty"`
}

// Page is a page written by a build.
type Page struct {
	Name     string `json:"name"`
	Title    string `json:"title"`
	File     string `json:"file"`
	Pictures int    `json:"pictures"`
	Size     int64  `json:"size"`
}

// RecordBuild stores res and returns the new build ID.
func (c *Catalog) RecordBuild(ctx context.Context, res *report.Result) (id string, err error) {
	id = uuid.NewString()

	dir, err := filepath.Abs(res.Dir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve report directory: %w", err)
	}

	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	createdAt := res.CreatedAt
	if createdAt.IsZero() {
		createdAt = c.now()
	}

	_, err = tx.ExecContext(ctx, `
	INSERT INTO builds (id, name, title, dir, created_at, pages, pictures, size, elapsed_ms)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		id,
		res.Name,
		res.Title,
		dir,
		createdAt.UTC().Format(timestampFormat),
		len(res.Pages),
		res.PictureCount(),
		res.TotalSize(),
		res.Elapsed.Milliseconds(),
	)
	if err != nil {
		return "", fmt.Errorf("failed to insert build: %w", err)
	}

	for i, p := range res.Pages {
		_, err = tx.ExecContext(ctx, `
		INSERT INTO build_pages (build_id, position, name, title, file, pictures, size)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		`, id, i, p.Name, p.Title, p.File, len(p.Pictures), p.Size+p.PictureSize)
		if err != nil {
			return "", fmt.Errorf("failed to insert page %s: %w", p.Name, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit build: %w", err)
	}
	return id, nil
}

const buildColumns = `id, name, title, dir, created_at, pages, pictures, size, elapsed_ms`

// ListBuilds returns builds newest first. A non-empty name restricts the
// list to builds of that report; limit <= 0 returns all.
func (c *Catalog) ListBuilds(ctx context.Context, name string, limit int) ([]Build, error) {
	query := `SELECT ` + buildColumns + ` FROM builds WHERE 1=1`
	args := make([]any, 0, 2)

	if name != "" {
		query += " AND name = ?"
		args = append(args, name)
	}
	query += " ORDER BY created_at DESC"
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := c.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list builds: %w", err)
	}
	defer rows.Close()

	var builds []Build
	for rows.Next() {
		b, err := scanBuild(rows)
		if err != nil {
			return nil, err
		}
		builds = append(builds, *b)
	}
	return builds, rows.Err()
}

// LatestBuild returns the newest build of the named report.
func (c *Catalog) LatestBuild(ctx context.Context, name string) (*Build, error) {
	builds, err := c.ListBuilds(ctx, name, 1)
	if err != nil {
		return nil, err
	}
	if len(builds) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrBuildNotFound, name)
	}
	return c.GetBuild(ctx, builds[0].ID)
}

// GetBuild returns a build with its pages.
func (c *Catalog) GetBuild(ctx context.Context, id string) (*Build, error) {
	row := c.db.QueryRowContext(ctx, `SELECT `+buildColumns+` FROM builds WHERE id = ?`, id)
	b, err := scanBuild(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrBuildNotFound, id)
	}
	if err != nil {
		return nil, err
	}

	rows, err := c.db.QueryContext(ctx, `
	SELECT name, title, file, pictures, size
	FROM build_pages
	WHERE build_id = ?
	ORDER BY position
	`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get build pages: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var p Page
		if err := rows.Scan(&p.Name, &p.Title, &p.File, &p.Pictures, &p.Size); err != nil {
			return nil, fmt.Errorf("failed to scan page: %w", err)
		}
		b.PageList = append(b.PageList, p)
	}
	return b, rows.Err()
}

// DeleteBuild removes a build and its pages. Files on disk are untouched.
func (c *Catalog) DeleteBuild(ctx context.Context, id string) error {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM build_pages WHERE build_id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete build pages: %w", err)
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM builds WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete build: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: %s", ErrBuildNotFound, id)
	}
	return tx.Commit()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanBuild(s scanner) (*Build, error) {
	var (
		b         Build
		createdAt string
		elapsedMS int64
	)
	err := s.Scan(&b.ID, &b.Name, &b.Title, &b.Dir, &createdAt, &b.Pages, &b.Pictures, &b.Size, &elapsedMS)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan build: %w", err)
	}
	b.CreatedAt = parseTimestamp(createdAt)
	b.Elapsed = time.Duration(elapsedMS) * time.Millisecond
	return &b, nil
}

// timestampFormats contains the timestamp formats that may be stored.
// The order matters: more specific formats should come first.
var timestampFormats = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
}

// parseTimestamp attempts to parse a timestamp string using multiple formats.
// If parsing fails with all formats, returns zero time.
func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
