package migration

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	upSuffix   = ".up.sql"
	downSuffix = ".down.sql"
)

// MigrationFile describes a newly created up/down migration pair.
type MigrationFile struct {
	Version  string
	Name     string
	UpPath   string
	DownPath string
}

// CreateMigration writes an empty up/down SQL pair into migrationsDir.
// The version prefix is the creation time in YYYYMMDDHHMMSS form so
// lexical order matches creation order.
func CreateMigration(migrationsDir, name, description string) (*MigrationFile, error) {
	if err := os.MkdirAll(migrationsDir, 0755); err != nil {
		return nil, fmt.Errorf("create migrations directory: %w", err)
	}

	now := time.Now()
	version := now.Format("20060102150405")
	baseName := version + "_" + sanitizeName(name)

	mf := &MigrationFile{
		Version:  version,
		Name:     name,
		UpPath:   filepath.Join(migrationsDir, baseName+upSuffix),
		DownPath: filepath.Join(migrationsDir, baseName+downSuffix),
	}

	header := func(kind string) string {
		var b strings.Builder
		fmt.Fprintf(&b, "-- %s (%s)\n", name, kind)
		fmt.Fprintf(&b, "-- Created: %s\n", now.Format(time.RFC3339))
		if description != "" {
			fmt.Fprintf(&b, "-- %s\n", description)
		}
		b.WriteString("\n")
		return b.String()
	}

	if err := os.WriteFile(mf.UpPath, []byte(header("up")), 0644); err != nil {
		return nil, fmt.Errorf("write up migration: %w", err)
	}
	if err := os.WriteFile(mf.DownPath, []byte(header("down")), 0644); err != nil {
		_ = os.Remove(mf.UpPath)
		return nil, fmt.Errorf("write down migration: %w", err)
	}

	return mf, nil
}

// sanitizeName lowercases the name and collapses separators so the
// result is a safe snake_case file name segment.
func sanitizeName(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '_':
			s := b.String()
			if s != "" && !strings.HasSuffix(s, "_") {
				b.WriteByte('_')
			}
		}
	}
	return strings.TrimSuffix(b.String(), "_")
}

// ListMigrations returns the base names of the migration pairs found in
// migrationsDir, one entry per pair. A missing directory lists empty.
func ListMigrations(migrationsDir string) ([]string, error) {
	entries, err := os.ReadDir(migrationsDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("read migrations directory: %w", err)
	}

	migrations := make([]string, 0, len(entries))
	seen := make(map[string]bool)
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), upSuffix) {
			continue
		}
		baseName := strings.TrimSuffix(entry.Name(), upSuffix)
		if !seen[baseName] {
			seen[baseName] = true
			migrations = append(migrations, baseName)
		}
	}
	return migrations, nil
}
