package migration

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"text/template"
	"time"
)

// versionLayout orders migration files by creation time
const versionLayout = "20060102150405"

var (
	upTemplate = template.Must(template.New("up").Parse(`-- Migration: {{.Name}}
-- Created: {{.Created}}
{{- if .Description}}
-- Description: {{.Description}}
{{- end}}

`))
	downTemplate = template.Must(template.New("down").Parse(`-- Migration: {{.Name}} (Rollback)
-- Created: {{.Created}}

`))
)

// ErrEmptyName is returned when a migration name has no usable characters
var ErrEmptyName = errors.New("migration name must contain letters or digits")

// File is one up/down migration pair on disk
type File struct {
	Version     string
	Number      uint64
	Name        string
	Description string
	Created     string
	UpPath      string
	DownPath    string
}

// BaseName is the shared file name without the direction suffix
func (f File) BaseName() string {
	return f.Version + "_" + f.Name
}

// CreateMigration writes an empty up/down pair stamped with now
func CreateMigration(dir, name, description string, now time.Time) (*File, error) {
	clean := sanitizeName(name)
	if clean == "" {
		return nil, ErrEmptyName
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create migrations directory: %w", err)
	}

	version := now.UTC().Format(versionLayout)
	number, _ := strconv.ParseUint(version, 10, 64)
	f := &File{
		Version:     version,
		Number:      number,
		Name:        clean,
		Description: strings.TrimSpace(description),
		Created:     now.UTC().Format(time.RFC3339),
	}
	f.UpPath = filepath.Join(dir, f.BaseName()+".up.sql")
	f.DownPath = filepath.Join(dir, f.BaseName()+".down.sql")

	if err := writeTemplate(f.UpPath, upTemplate, f); err != nil {
		return nil, err
	}
	if err := writeTemplate(f.DownPath, downTemplate, f); err != nil {
		_ = os.Remove(f.UpPath)
		return nil, err
	}
	return f, nil
}

func writeTemplate(path string, tmpl *template.Template, f *File) error {
	out, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", filepath.Base(path), err)
	}
	defer out.Close()
	if err := tmpl.Execute(out, f); err != nil {
		return fmt.Errorf("failed to render %s: %w", filepath.Base(path), err)
	}
	return nil
}

// sanitizeName lowercases name and joins its words with single underscores
func sanitizeName(name string) string {
	var b strings.Builder
	pendingSep := false
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			if pendingSep && b.Len() > 0 {
				b.WriteByte('_')
			}
			pendingSep = false
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '_':
			pendingSep = true
		}
	}
	return b.String()
}

// ListMigrations returns the migration pairs in dir, oldest first. A missing
// directory yields an empty list; an up file without its down file is an error.
func ListMigrations(dir string) ([]File, error) {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, os.ErrNotExist) {
		return []File{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read migrations directory: %w", err)
	}

	names := make(map[string]bool, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			names[e.Name()] = true
		}
	}

	files := make([]File, 0, len(entries)/2)
	for n := range names {
		base, ok := strings.CutSuffix(n, ".up.sql")
		if !ok {
			continue
		}
		if !names[base+".down.sql"] {
			return nil, fmt.Errorf("migration %s has no down file", base)
		}
		version, title, ok := strings.Cut(base, "_")
		if !ok {
			return nil, fmt.Errorf("migration %s is not named <version>_<name>", base)
		}
		number, err := strconv.ParseUint(version, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("migration %s has a non-numeric version", base)
		}
		files = append(files, File{
			Version:  version,
			Number:   number,
			Name:     title,
			UpPath:   filepath.Join(dir, n),
			DownPath: filepath.Join(dir, base+".down.sql"),
		})
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Number < files[j].Number })
	return files, nil
}
