// Package pgquery holds the SQL and row types used by the repositories and read stores.
// Every method takes the DBTX to run on, so the same Queries value serves the pool and transactions.
package pgquery

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type DBTX interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

type Queries struct{}

func New() *Queries {
	return &Queries{}
}
