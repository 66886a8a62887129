package services

import (
	"context"
	"testing"

	"github.com/oppabier/cardapio-server/src/database"
	"github.com/oppabier/cardapio-server/src/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigServiceDB_DefaultsOnEmptyTable(t *testing.T) {
	database.WithTestDB(t, func(tdb *database.TestDB) {
		ctx := context.Background()
		service := NewConfigService(tdb.Pool)

		cfg, err := service.PublicConfig(ctx)
		require.NoError(t, err)
		assert.Equal(t, models.DefaultTempoEntrega, cfg.TempoEntrega)
		assert.Equal(t, models.DefaultTempoRetirada, cfg.TempoRetirada)
	})
}

func TestConfigServiceDB_SeedAndUpdate(t *testing.T) {
	database.WithTestDB(t, func(tdb *database.TestDB) {
		ctx := context.Background()
		service := NewConfigService(tdb.Pool)

		require.NoError(t, service.Seed(ctx))

		entries, err := service.ListAll(ctx)
		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.Equal(t, models.ConfigTempoEntrega, entries[0].Chave)
		assert.Equal(t, models.DefaultTempoEntrega, entries[0].Valor)
		assert.NotEmpty(t, entries[0].Descricao)

		require.NoError(t, service.Update(ctx, "90", "30"))

		cfg, err := service.PublicConfig(ctx)
		require.NoError(t, err)
		assert.Equal(t, "90", cfg.TempoEntrega)
		assert.Equal(t, "30", cfg.TempoRetirada)

		// Re-seeding must not roll back admin changes
		require.NoError(t, service.Seed(ctx))
		cfg, err = service.PublicConfig(ctx)
		require.NoError(t, err)
		assert.Equal(t, "90", cfg.TempoEntrega)
	})
}
