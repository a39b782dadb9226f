// Package sqlstore implementa los puertos de persistencia sobre database/sql.
// Dos dialectos: SQLite (archivo local, por defecto) y PostgreSQL (pgx vía stdlib).
// Las consultas usan placeholders $1..$n en orden, válidos en ambos drivers.
package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"time"

	pgxdecimal "github.com/jackc/pgx-shopspring-decimal"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"

	"github.com/jhoicas/facturacion-lite/pkg/config"
)

// Querier abstrae *sql.DB y *sql.Tx para que los repositorios funcionen dentro o fuera de una transacción.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

var (
	_ Querier = (*sql.DB)(nil)
	_ Querier = (*sql.Tx)(nil)
)

// Open abre la base según cfg.Driver, verifica la conexión y aplica el esquema (idempotente).
func Open(ctx context.Context, cfg config.DBConfig) (*sql.DB, error) {
	var (
		db  *sql.DB
		err error
	)
	switch cfg.Driver {
	case config.DriverSQLite, "":
		db, err = openSQLite(cfg.Path)
	case config.DriverPostgres:
		db, err = openPostgres(cfg.ConnectionString())
	default:
		return nil, fmt.Errorf("driver no soportado: %q", cfg.Driver)
	}
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping DB: %w", err)
	}
	if err := Migrate(ctx, db, dialectOf(cfg.Driver)); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// openSQLite abre (o crea) el archivo con claves foráneas activas en cada conexión.
// SQLite admite un solo escritor: una conexión evita SQLITE_BUSY.
func openSQLite(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", sqliteDSN(path))
	if err != nil {
		return nil, fmt.Errorf("abrir sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	return db, nil
}

func sqliteDSN(path string) string {
	q := url.Values{}
	q.Set("_foreign_keys", "on")
	q.Set("_busy_timeout", "5000")
	q.Set("_journal_mode", "WAL")
	return "file:" + path + "?" + q.Encode()
}

// openPostgres usa pgx como driver de database/sql y registra el codec NUMERIC -> shopspring/decimal
// en todas las conexiones.
func openPostgres(dsn string) (*sql.DB, error) {
	connConfig, err := pgx.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse DSN: %w", err)
	}
	db := stdlib.OpenDB(*connConfig, stdlib.OptionAfterConnect(func(_ context.Context, conn *pgx.Conn) error {
		pgxdecimal.Register(conn.TypeMap())
		return nil
	}))
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(time.Hour)
	db.SetConnMaxIdleTime(30 * time.Minute)
	return db, nil
}
