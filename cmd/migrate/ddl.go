package main

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/light-bringer/specialprice-service/migrations"
)

var databasePath = regexp.MustCompile(`^projects/([^/]+)/instances/([^/]+)/databases/([^/]+)$`)

// spannerTarget is a database addressed by its full resource name.
type spannerTarget struct {
	Project  string
	Instance string
	Database string
}

func parseDatabasePath(path string) (spannerTarget, error) {
	m := databasePath.FindStringSubmatch(path)
	if m == nil {
		return spannerTarget{}, fmt.Errorf("invalid Spanner database %q, want projects/P/instances/I/databases/D", path)
	}
	return spannerTarget{Project: m[1], Instance: m[2], Database: m[3]}, nil
}

func (t spannerTarget) ProjectPath() string {
	return "projects/" + t.Project
}

func (t spannerTarget) InstancePath() string {
	return t.ProjectPath() + "/instances/" + t.Instance
}

func (t spannerTarget) DatabasePath() string {
	return t.InstancePath() + "/databases/" + t.Database
}

// plannedStatements flattens the scripts into DDL statements, in order.
func plannedStatements(files []migrations.File) []string {
	var out []string
	for _, f := range files {
		out = append(out, splitDDL(f.Content)...)
	}
	return out
}

// splitDDL drops "--" comments and splits on semicolons.
func splitDDL(content string) []string {
	var b strings.Builder
	for _, line := range strings.Split(content, "\n") {
		if i := strings.Index(line, "--"); i >= 0 {
			line = line[:i]
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}

	var out []string
	for _, stmt := range strings.Split(b.String(), ";") {
		if stmt = strings.TrimSpace(stmt); stmt != "" {
			out = append(out, stmt)
		}
	}
	return out
}

var createPattern = regexp.MustCompile("(?is)^CREATE\\s+(?:UNIQUE\\s+)?(?:NULL_FILTERED\\s+)?(TABLE|INDEX)\\s+(?:IF\\s+NOT\\s+EXISTS\\s+)?`?(\\w+)`?")

// objectKey names what a CREATE statement creates, e.g. "INDEX idx_products_sku".
func objectKey(stmt string) (string, bool) {
	m := createPattern.FindStringSubmatch(strings.TrimSpace(stmt))
	if m == nil {
		return "", false
	}
	return strings.ToUpper(m[1]) + " " + strings.ToLower(m[2]), true
}

func normalizeDDL(stmt string) string {
	return strings.ToLower(strings.Join(strings.Fields(stmt), " "))
}

// pendingStatements returns the planned statements the database does not have
// yet. CREATE statements match on the object they create, anything else on
// its normalized text.
func pendingStatements(applied, planned []string) []string {
	seen := make(map[string]struct{}, len(applied))
	for _, stmt := range applied {
		if key, ok := objectKey(stmt); ok {
			seen[key] = struct{}{}
			continue
		}
		seen[normalizeDDL(stmt)] = struct{}{}
	}

	var pending []string
	for _, stmt := range planned {
		key, ok := objectKey(stmt)
		if !ok {
			key = normalizeDDL(stmt)
		}
		if _, done := seen[key]; done {
			continue
		}
		seen[key] = struct{}{}
		pending = append(pending, stmt)
	}
	return pending
}
