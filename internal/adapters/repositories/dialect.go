package repositories

import (
	"fmt"
	"strings"

	"outreach-route-service/internal/platform/db"
)

// Dialect covers the placeholder syntax that differs between the supported
// drivers. SQLite takes "?", Postgres takes "$1", "$2", ...
type Dialect struct {
	numbered bool
}

// DialectFor returns the dialect for a database/sql driver name.
func DialectFor(driver string) (Dialect, error) {
	switch driver {
	case db.DriverSQLite:
		return Dialect{}, nil
	case db.DriverPostgres:
		return Dialect{numbered: true}, nil
	default:
		return Dialect{}, fmt.Errorf("dialect: unsupported driver %q", driver)
	}
}

// Placeholder returns the bind marker for the n-th argument, counting from 1.
func (d Dialect) Placeholder(n int) string {
	if d.numbered {
		return fmt.Sprintf("$%d", n)
	}
	return "?"
}

// Placeholders returns a comma-separated list of n bind markers.
func (d Dialect) Placeholders(n int) string {
	ph := make([]string, 0, n)
	for i := 1; i <= n; i++ {
		ph = append(ph, d.Placeholder(i))
	}
	return strings.Join(ph, ", ")
}
