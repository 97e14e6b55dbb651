package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/petswap/internal/dbx"
	"github.com/dmitrijs2005/petswap/internal/server/repositories/bookings"
	"github.com/dmitrijs2005/petswap/internal/server/repositories/properties"
	"github.com/dmitrijs2005/petswap/internal/server/repositories/users"
)

// RepositoryManager vends repositories bound to a *sql.DB or *sql.Tx, so a
// service can run several of them inside one dbx.WithTx.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Properties(db dbx.DBTX) properties.Repository
	Bookings(db dbx.DBTX) bookings.Repository
}
