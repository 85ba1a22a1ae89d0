package db

import (
	"strconv"

	"github.com/russross/meddler"
)

// Dialect bundles what differs between the supported SQL backends.
type Dialect struct {
	Name string

	// Migrate is the sql-migrate dialect name.
	Migrate string

	// Meddler maps rows with the backend's placeholder and quoting rules.
	Meddler *meddler.Database

	numbered bool
}

var (
	SQLite   = Dialect{Name: "sqlite", Migrate: "sqlite3", Meddler: meddler.SQLite}
	Postgres = Dialect{Name: "postgres", Migrate: "postgres", Meddler: meddler.PostgreSQL, numbered: true}
)

// Placeholder returns the bind parameter for the 1-based argument position.
func (d Dialect) Placeholder(pos int) string {
	if d.numbered {
		return "$" + strconv.Itoa(pos)
	}
	return "?"
}

// Rebind rewrites a query written with ? placeholders for this dialect.
func (d Dialect) Rebind(query string) string {
	if !d.numbered {
		return query
	}

	out := make([]byte, 0, len(query)+8)
	pos := 0
	for i := 0; i < len(query); i++ {
		if query[i] == '?' {
			pos++
			out = append(out, d.Placeholder(pos)...)
			continue
		}
		out = append(out, query[i])
	}
	return string(out)
}
