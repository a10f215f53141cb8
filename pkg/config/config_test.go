package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViper_ValoresPorDefecto(t *testing.T) {
	cfg, err := fromViper(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, StorePostgres, cfg.Ledger.Store)
	assert.Equal(t, ReturnToFirstStorage, cfg.Ledger.SaleReturnPolicy)
	assert.False(t, cfg.Ledger.ReverseSupplyOnDelete)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
}

func TestFromViper_LedgerDesdeEnv(t *testing.T) {
	v := viper.New()
	v.Set("LEDGER_STORE", "MEMORY")
	v.Set("LEDGER_SALE_RETURN_POLICY", "source_storages")
	v.Set("LEDGER_REVERSE_SUPPLY_ON_DELETE", "true")
	v.Set("HTTP_PORT", "9090")

	cfg, err := fromViper(v)
	require.NoError(t, err)

	assert.Equal(t, StoreMemory, cfg.Ledger.Store)
	assert.Equal(t, ReturnToSourceStorages, cfg.Ledger.SaleReturnPolicy)
	assert.True(t, cfg.Ledger.ReverseSupplyOnDelete)
	assert.Equal(t, 9090, cfg.HTTP.Port)
}

func TestFromViper_PoliticaInvalida(t *testing.T) {
	v := viper.New()
	v.Set("LEDGER_SALE_RETURN_POLICY", "random")

	_, err := fromViper(v)
	assert.Error(t, err)
}

// La contraseña con caracteres especiales debe quedar escapada en el DSN.
func TestDBConfig_DSNEscapaPassword(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss:w/rd", DBName: "ledger", SSLMode: "disable"}

	dsn := c.DSN()
	assert.Contains(t, dsn, "p%40ss%3Aw%2Frd")
	assert.Equal(t, dsn, c.ConnectionString())

	c.DatabaseURL = "postgres://x"
	assert.Equal(t, "postgres://x", c.ConnectionString())
}
