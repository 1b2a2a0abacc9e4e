package postgres

import (
	"database/sql"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sql.Open no conecta: alcanza para que goose recoja las migraciones embebidas.
func TestMigrationProvider_VersionaLasMigracionesEmbebidas(t *testing.T) {
	db, err := sql.Open("pgx", "postgres://localhost:1/maize_point")
	require.NoError(t, err)
	defer db.Close()

	provider, err := newMigrationProvider(db)
	require.NoError(t, err)

	sources := provider.ListSources()
	require.NotEmpty(t, sources)
	assert.Equal(t, int64(1), sources[0].Version)
	assert.True(t, strings.HasSuffix(sources[0].Path, "001_init.sql"), sources[0].Path)
	for i := 1; i < len(sources); i++ {
		assert.Greater(t, sources[i].Version, sources[i-1].Version)
	}
}

func TestMigraciones_TienenAnotacionesDeGoose(t *testing.T) {
	script, err := migrationsFS.ReadFile("migrations/001_init.sql")
	require.NoError(t, err)
	body := string(script)
	assert.Contains(t, body, "-- +goose Up")
	assert.Contains(t, body, "-- +goose Down")
	// la función plpgsql lleva $$ y necesita ir como una sola sentencia
	assert.Contains(t, body, "-- +goose StatementBegin")
	assert.Contains(t, body, "-- +goose StatementEnd")
}
