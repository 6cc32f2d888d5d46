// Package migrations embeds the Spanner DDL of the special price schema.
package migrations

import (
	"embed"
	"fmt"
	"io/fs"
	"sort"
)

//go:embed *.sql
var files embed.FS

// File is one migration script.
type File struct {
	Name    string
	Content string
}

// Embedded returns the scripts compiled into the binary.
func Embedded() fs.FS {
	return files
}

// Load reads every *.sql file of fsys in lexical order.
func Load(fsys fs.FS) ([]File, error) {
	names, err := fs.Glob(fsys, "*.sql")
	if err != nil {
		return nil, fmt.Errorf("failed to list migrations: %w", err)
	}
	sort.Strings(names)

	out := make([]File, 0, len(names))
	for _, name := range names {
		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("failed to read migration %s: %w", name, err)
		}
		out = append(out, File{Name: name, Content: string(content)})
	}
	return out, nil
}
