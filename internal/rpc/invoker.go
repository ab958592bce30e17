// Package rpc invokes the remote stored-procedure layer that owns all
// business rules, and translates its failures into the HTTP error taxonomy.
package rpc

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Arg is a single procedure argument. An empty Name renders positionally;
// named arguments must follow all positional ones.
type Arg struct {
	Name  string
	Value any
}

// Named builds a named argument.
func Named(name string, value any) Arg {
	return Arg{Name: name, Value: value}
}

// Positional builds a positional argument.
func Positional(value any) Arg {
	return Arg{Value: value}
}

// Row is one raw result row keyed by the remote column name.
type Row map[string]any

// Invoker executes a named remote procedure with an argument bag.
type Invoker interface {
	Invoke(ctx context.Context, procedure string, args []Arg) ([]Row, error)
}

type dbtx interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// PgInvoker invokes stored procedures over a pgx pool.
type PgInvoker struct {
	db     dbtx
	logger *slog.Logger
}

// NewPgInvoker constructs a PgInvoker.
func NewPgInvoker(pool *pgxpool.Pool, logger *slog.Logger) *PgInvoker {
	return &PgInvoker{db: pool, logger: logger}
}

// Invoke runs SELECT * FROM <procedure>(...) and collects all rows. Procedure
// names come from in-code chain definitions, never from request input.
func (inv *PgInvoker) Invoke(ctx context.Context, procedure string, args []Arg) ([]Row, error) {
	var sql strings.Builder
	sql.WriteString("SELECT * FROM ")
	sql.WriteString(procedure)
	sql.WriteString("(")
	values := make([]any, 0, len(args))
	for i, a := range args {
		if i > 0 {
			sql.WriteString(", ")
		}
		if a.Name != "" {
			sql.WriteString(a.Name)
			sql.WriteString(" => ")
		}
		fmt.Fprintf(&sql, "$%d", i+1)
		values = append(values, a.Value)
	}
	sql.WriteString(")")

	rows, err := inv.db.Query(ctx, sql.String(), values...)
	if err != nil {
		return nil, fmt.Errorf("rpc: %s: %w", procedure, err)
	}
	defer rows.Close()

	fields := rows.FieldDescriptions()
	var out []Row
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, fmt.Errorf("rpc: %s: read row: %w", procedure, err)
		}
		row := make(Row, len(fields))
		for i, field := range fields {
			row[field.Name] = values[i]
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rpc: %s: %w", procedure, err)
	}
	return out, nil
}
