package sqlstore

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"strings"

	"github.com/jhoicas/facturacion-lite/pkg/config"
)

//go:embed schema/*.sql
var schemaFS embed.FS

// Dialect identifica el DDL a aplicar.
type Dialect string

const (
	DialectSQLite   Dialect = "sqlite"
	DialectPostgres Dialect = "postgres"
)

func dialectOf(driver string) Dialect {
	if driver == config.DriverPostgres {
		return DialectPostgres
	}
	return DialectSQLite
}

// Migrate crea las tablas e índices si no existen. Ejecutarlo sobre un esquema existente no cambia nada.
// Sin versionado: cada sentencia es CREATE ... IF NOT EXISTS.
func Migrate(ctx context.Context, db *sql.DB, dialect Dialect) error {
	ddl, err := schemaFS.ReadFile("schema/" + string(dialect) + ".sql")
	if err != nil {
		return fmt.Errorf("leer esquema %s: %w", dialect, err)
	}
	for _, stmt := range splitStatements(string(ddl)) {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("aplicar esquema: %w", err)
		}
	}
	return nil
}

// splitStatements separa el DDL por ';'. Los archivos de esquema no contienen ';' dentro de literales.
func splitStatements(ddl string) []string {
	var out []string
	for _, part := range strings.Split(ddl, ";") {
		lines := make([]string, 0)
		for _, line := range strings.Split(part, "\n") {
			if strings.HasPrefix(strings.TrimSpace(line), "--") {
				continue
			}
			lines = append(lines, line)
		}
		if stmt := strings.TrimSpace(strings.Join(lines, "\n")); stmt != "" {
			out = append(out, stmt)
		}
	}
	return out
}
