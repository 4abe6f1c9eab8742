package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnv_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/sales")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, "5000", cfg.Port)
	assert.Equal(t, ":5000", cfg.Addr())
	assert.Equal(t, StorePostgres, cfg.StoreKind)
	assert.Equal(t, 30*time.Second, cfg.QueryTimeout)
	assert.Equal(t, 1000, cfg.ImportBatchSize)
	assert.Equal(t, "./data/sales.csv", cfg.ImportFile)
	assert.False(t, cfg.ImportStrict)
	assert.Equal(t, ',', cfg.Delimiter())
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("STORE_KIND", "memory")
	t.Setenv("PORT", "8080")
	t.Setenv("IMPORT_BATCH_SIZE", "250")
	t.Setenv("IMPORT_STRICT", "true")
	t.Setenv("IMPORT_DELIMITER", ";")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, StoreMemory, cfg.StoreKind)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, 250, cfg.ImportBatchSize)
	assert.True(t, cfg.ImportStrict)
	assert.Equal(t, ';', cfg.Delimiter())
}

func TestValidate(t *testing.T) {
	base := Config{StoreKind: StoreMemory, ImportBatchSize: 1000, ImportDelimiter: ","}
	require.NoError(t, base.Validate())

	noURL := base
	noURL.StoreKind = StorePostgres
	assert.ErrorContains(t, noURL.Validate(), "DATABASE_URL is not set")

	badKind := base
	badKind.StoreKind = "mongo"
	assert.ErrorContains(t, badKind.Validate(), `unknown STORE_KIND "mongo"`)

	badBatch := base
	badBatch.ImportBatchSize = 0
	assert.ErrorContains(t, badBatch.Validate(), "IMPORT_BATCH_SIZE")

	badDelim := base
	badDelim.ImportDelimiter = "||"
	assert.ErrorContains(t, badDelim.Validate(), "IMPORT_DELIMITER")
}
