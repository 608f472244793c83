package viewdex

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// The scan manifest is an optional on-disk record of the most recent scan,
// kept purely for inspection and tooling. The request path never reads it.

// OpenManifest opens or creates a SQLite manifest at the provided path and
// ensures the schema is available.
func OpenManifest(ctx context.Context, path string) (*sql.DB, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create manifest directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open manifest: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping manifest: %w", err)
	}

	if err := EnsureManifestSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

// EnsureManifestSchema creates the required tables if they do not already
// exist.
func EnsureManifestSchema(ctx context.Context, db *sql.DB) error {
	const schema = `
CREATE TABLE IF NOT EXISTS views (
    lookup_key TEXT NOT NULL PRIMARY KEY,
    resource_path TEXT NOT NULL,
    extension TEXT NOT NULL,
    scanned_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_views_extension ON views(extension);
`

	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("ensure manifest schema: %w", err)
	}
	return nil
}

// RecordScan replaces the manifest contents with the given scan result in
// one transaction.
func RecordScan(ctx context.Context, db *sql.DB, set *ViewSet) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM views`); err != nil {
		tx.Rollback()
		return fmt.Errorf("clear manifest: %w", err)
	}

	for key, resourcePath := range set.Views {
		if _, err := tx.ExecContext(ctx, `
INSERT INTO views (lookup_key, resource_path, extension)
VALUES (?, ?, ?)
`, key, resourcePath, Extension(resourcePath)); err != nil {
			tx.Rollback()
			return fmt.Errorf("insert view %s: %w", key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// StoredView is a manifest row describing one discovered view.
type StoredView struct {
	LookupKey    string
	ResourcePath string
	Extension    string
	ScannedAt    string
}

// StoredViews returns every manifest row ordered by lookup key.
func StoredViews(ctx context.Context, db *sql.DB) ([]StoredView, error) {
	rows, err := db.QueryContext(ctx, `
SELECT lookup_key, resource_path, extension, scanned_at
FROM views
ORDER BY lookup_key
`)
	if err != nil {
		return nil, fmt.Errorf("query stored views: %w", err)
	}
	defer rows.Close()

	var views []StoredView
	for rows.Next() {
		var view StoredView
		if err := rows.Scan(&view.LookupKey, &view.ResourcePath, &view.Extension, &view.ScannedAt); err != nil {
			return nil, fmt.Errorf("scan stored view: %w", err)
		}
		views = append(views, view)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate stored views: %w", err)
	}

	return views, nil
}

// ExtensionCounts returns the number of manifest rows per extension,
// ordered by extension.
func ExtensionCounts(ctx context.Context, db *sql.DB) (map[string]int, error) {
	rows, err := db.QueryContext(ctx, `
SELECT extension, COUNT(*) FROM views GROUP BY extension
`)
	if err != nil {
		return nil, fmt.Errorf("count extensions: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var extension string
		var count int
		if err := rows.Scan(&extension, &count); err != nil {
			return nil, fmt.Errorf("scan extension count: %w", err)
		}
		counts[extension] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate extension counts: %w", err)
	}

	return counts, nil
}

// SortedExtensions lists the distinct extensions in the manifest.
func SortedExtensions(ctx context.Context, db *sql.DB) ([]string, error) {
	counts, err := ExtensionCounts(ctx, db)
	if err != nil {
		return nil, err
	}

	extensions := make([]string, 0, len(counts))
	for extension := range counts {
		extensions = append(extensions, extension)
	}
	sort.Strings(extensions)
	return extensions, nil
}
