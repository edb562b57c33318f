package config_test

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Catalogo-atributos/pkg/config"
)

// ─────────────────────────────────────────────────────────────────────────────
// Valores por defecto
// ─────────────────────────────────────────────────────────────────────────────

func TestFromViper_Defaults(t *testing.T) {
	cfg, err := config.FromViper(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "catalogo-atributos", cfg.App.Name)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, config.DriverBadger, cfg.Store.Driver)
	assert.Equal(t, "./data/catalog", cfg.Badger.Path)
	assert.False(t, cfg.Badger.InMemory)
	assert.True(t, cfg.Badger.SyncWrites)
	assert.Equal(t, 10, cfg.DB.MaxConns)
	assert.Equal(t, int64(1000), cfg.Catalog.SKURange)
	assert.Equal(t, 5, cfg.Catalog.SKUMaxAttempts)
	assert.Equal(t, 4, cfg.Catalog.ResolveConcurrency)
	assert.Empty(t, cfg.Metrics.File)
	assert.Equal(t, "utf-8", cfg.Import.Encoding)
}

// ─────────────────────────────────────────────────────────────────────────────
// Valores desde env (strings)
// ─────────────────────────────────────────────────────────────────────────────

func TestFromViper_Overrides(t *testing.T) {
	v := viper.New()
	v.Set("STORE_DRIVER", "POSTGRES")
	v.Set("BADGER_IN_MEMORY", "true")
	v.Set("SKU_RANGE", "50")
	v.Set("DB_PORT", "6543")
	v.Set("IMPORT_ENCODING", "latin1")

	cfg, err := config.FromViper(v)
	require.NoError(t, err)

	assert.Equal(t, config.DriverPostgres, cfg.Store.Driver)
	assert.True(t, cfg.Badger.InMemory)
	assert.Equal(t, int64(50), cfg.Catalog.SKURange)
	assert.Equal(t, 6543, cfg.DB.Port)
	assert.Equal(t, "latin1", cfg.Import.Encoding)
}

func TestFromViper_Invalid(t *testing.T) {
	// Caso 1: driver desconocido
	v := viper.New()
	v.Set("STORE_DRIVER", "neo4j")
	_, err := config.FromViper(v)
	require.Error(t, err)

	// Caso 2: rango de SKU no positivo
	v = viper.New()
	v.Set("SKU_RANGE", "0")
	_, err = config.FromViper(v)
	require.Error(t, err)
}

// ─────────────────────────────────────────────────────────────────────────────
// DSN
// ─────────────────────────────────────────────────────────────────────────────

func TestDBConfig_ConnectionString(t *testing.T) {
	c := config.DBConfig{Host: "db", Port: 5432, User: "cat", Password: "p@ss:word", DBName: "catalogo", SSLMode: "disable"}
	assert.Equal(t, "postgres://cat:p%40ss%3Aword@db:5432/catalogo?sslmode=disable", c.ConnectionString())

	c.DatabaseURL = "postgresql://x@y/z"
	assert.Equal(t, "postgresql://x@y/z", c.ConnectionString(), "DATABASE_URL tiene prioridad")
}
