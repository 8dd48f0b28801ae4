package migration

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// MigrationFile describes a generated up/down migration pair
type MigrationFile struct {
	Version     string
	Name        string
	Description string
	Timestamp   string
	UpPath      string
	DownPath    string
}

// CreateMigration writes a new up/down migration pair under migrationsDir.
// The version prefix is the creation time formatted as YYYYMMDDHHMMSS so
// files sort in application order.
func CreateMigration(migrationsDir, name, description string) (*MigrationFile, error) {
	if err := os.MkdirAll(migrationsDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create migrations directory: %w", err)
	}

	now := time.Now()
	version := now.Format("20060102150405")
	baseName := version + "_" + sanitizeName(name)

	mf := &MigrationFile{
		Version:     version,
		Name:        name,
		Description: description,
		Timestamp:   now.Format(time.RFC3339),
		UpPath:      filepath.Join(migrationsDir, baseName+".up.sql"),
		DownPath:    filepath.Join(migrationsDir, baseName+".down.sql"),
	}

	upHeader := fmt.Sprintf("-- Migration: %s\n-- Created: %s\n-- Description: %s\n\n-- Write your UP migration SQL here\n\n",
		mf.Name, mf.Timestamp, mf.Description)
	if err := os.WriteFile(mf.UpPath, []byte(upHeader), 0644); err != nil {
		return nil, fmt.Errorf("failed to create up migration: %w", err)
	}

	downHeader := fmt.Sprintf("-- Migration: %s (Rollback)\n-- Created: %s\n-- Description: Rollback for %s\n\n-- Write your DOWN migration SQL here\n\n",
		mf.Name, mf.Timestamp, mf.Description)
	if err := os.WriteFile(mf.DownPath, []byte(downHeader), 0644); err != nil {
		// Keep the pair consistent
		_ = os.Remove(mf.UpPath)
		return nil, fmt.Errorf("failed to create down migration: %w", err)
	}

	return mf, nil
}

// sanitizeName lowercases a migration name and collapses separators and
// runs of unsafe characters into single underscores
func sanitizeName(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c >= 'A' && c <= 'Z':
			b.WriteByte(c + 'a' - 'A')
		case (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9'):
			b.WriteByte(c)
		case c == ' ' || c == '-' || c == '_':
			s := b.String()
			if len(s) > 0 && s[len(s)-1] != '_' {
				b.WriteByte('_')
			}
		}
	}
	return strings.TrimSuffix(b.String(), "_")
}

// ListMigrations returns the base names of migration pairs found in
// migrationsDir. A missing directory yields an empty list.
func ListMigrations(migrationsDir string) ([]string, error) {
	entries, err := os.ReadDir(migrationsDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to read migrations directory: %w", err)
	}

	migrations := make([]string, 0)
	seen := make(map[string]bool)
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".up.sql") {
			continue
		}
		baseName := strings.TrimSuffix(entry.Name(), ".up.sql")
		if !seen[baseName] {
			seen[baseName] = true
			migrations = append(migrations, baseName)
		}
	}

	return migrations, nil
}
