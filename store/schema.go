package store

import (
	"context"
	"strings"

	"github.com/uptrace/bun/dialect"

	"github.com/goliatone/go-cache-store/mapper"
)

// EnsureSchema materializes the mapper's declared schema: the entry table
// and its secondary indexes, created idempotently. DDL is generated from the
// store-agnostic schema declaration and the handle's dialect; nothing beyond
// the declared layout is created.
func (s *EntryStore[T]) EnsureSchema(ctx context.Context) error {
	sch := s.mapper.Schema()

	if _, err := s.db.ExecContext(ctx, createTableSQL(sch, s.db.Dialect().Name())); err != nil {
		return err
	}
	for _, idx := range sch.Indexes {
		if _, err := s.db.ExecContext(ctx, createIndexSQL(sch.Table, idx)); err != nil {
			return err
		}
	}
	return nil
}

func createTableSQL(sch mapper.Schema, name dialect.Name) string {
	var b strings.Builder
	b.WriteString("CREATE TABLE IF NOT EXISTS ")
	b.WriteString(quoteIdent(sch.Table))
	b.WriteString(" (\n")

	for _, col := range sch.Columns {
		b.WriteString("  ")
		b.WriteString(quoteIdent(col.Name))
		b.WriteByte(' ')
		b.WriteString(sqlType(col.Type, name))
		if !col.Nullable {
			b.WriteString(" NOT NULL")
		}
		if col.Default != "" {
			b.WriteString(" DEFAULT ")
			b.WriteString(col.Default)
		}
		b.WriteString(",\n")
	}

	quoted := make([]string, len(sch.PrimaryKey))
	for i, col := range sch.PrimaryKey {
		quoted[i] = quoteIdent(col)
	}
	b.WriteString("  PRIMARY KEY (")
	b.WriteString(strings.Join(quoted, ", "))
	b.WriteString(")\n)")
	return b.String()
}

func createIndexSQL(table string, idx mapper.Index) string {
	var b strings.Builder
	b.WriteString("CREATE ")
	if idx.Unique {
		b.WriteString("UNIQUE ")
	}
	b.WriteString("INDEX IF NOT EXISTS ")
	b.WriteString(quoteIdent(idx.Name))
	b.WriteString(" ON ")
	b.WriteString(quoteIdent(table))
	b.WriteString(" (")

	cols := make([]string, len(idx.Columns))
	for i, col := range idx.Columns {
		// Preserve an ordering suffix ("last_access_time DESC").
		if name, order, ok := strings.Cut(col, " "); ok {
			cols[i] = quoteIdent(name) + " " + order
		} else {
			cols[i] = quoteIdent(col)
		}
	}
	b.WriteString(strings.Join(cols, ", "))
	b.WriteString(")")
	return b.String()
}

func sqlType(t mapper.ColumnType, name dialect.Name) string {
	switch t {
	case mapper.ColumnText:
		return "TEXT"
	case mapper.ColumnBytes:
		if name == dialect.PG {
			return "BYTEA"
		}
		return "BLOB"
	case mapper.ColumnInt:
		return "BIGINT"
	case mapper.ColumnBool:
		return "BOOLEAN"
	}
	return "TEXT"
}

func quoteIdent(name string) string {
	return `"` + name + `"`
}
