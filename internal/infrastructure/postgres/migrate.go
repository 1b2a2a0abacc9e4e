package postgres

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/pressly/goose/v3/lock"
	"github.com/rs/zerolog/log"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Migrate aplica con goose las migraciones pendientes de migrations/. La versión queda en
// goose_db_version y un advisory lock evita que dos instancias migren a la vez.
// Devuelve los archivos aplicados en esta llamada (vacío si el esquema ya estaba al día).
func Migrate(ctx context.Context, pool *pgxpool.Pool) ([]string, error) {
	// cerrar db no cierra el pool
	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	provider, err := newMigrationProvider(db)
	if err != nil {
		return nil, err
	}
	results, err := provider.Up(ctx)
	if err != nil {
		return nil, fmt.Errorf("aplicar migraciones: %w", err)
	}
	applied := make([]string, 0, len(results))
	for _, r := range results {
		applied = append(applied, r.Source.Path)
	}
	return applied, nil
}

func newMigrationProvider(db *sql.DB) (*goose.Provider, error) {
	fsys, err := fs.Sub(migrationsFS, "migrations")
	if err != nil {
		return nil, fmt.Errorf("migraciones embebidas: %w", err)
	}
	locker, err := lock.NewPostgresSessionLocker()
	if err != nil {
		return nil, fmt.Errorf("lock de migraciones: %w", err)
	}
	provider, err := goose.NewProvider(goose.DialectPostgres, db, fsys,
		goose.WithSessionLocker(locker),
		goose.WithLogger(gooseLogger{}),
	)
	if err != nil {
		return nil, fmt.Errorf("goose: %w", err)
	}
	return provider, nil
}

// gooseLogger manda la salida de goose al logger global de zerolog.
type gooseLogger struct{}

func (gooseLogger) Printf(format string, v ...any) {
	log.Info().Str("component", "migrations").Msgf(strings.TrimSpace(format), v...)
}

func (gooseLogger) Fatalf(format string, v ...any) {
	log.Fatal().Str("component", "migrations").Msgf(strings.TrimSpace(format), v...)
}
