package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "branchpos-backend", cfg.App.Name)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, 0.08, cfg.Sales.TaxRate)
	assert.Equal(t, "JC", cfg.Sales.ReceiptPrefix)
	assert.Equal(t, time.Second, cfg.Sales.FulfillmentDelay)
	assert.Equal(t, 1.5, cfg.Payroll.OvertimeMultiplier)
	assert.Equal(t, 0.25, cfg.Payroll.TaxRate)
	assert.Equal(t, 200.00, cfg.EndOfDay.OpeningFloat)
	assert.Equal(t, 0.50, cfg.EndOfDay.CashTolerance)
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("POS_SALES_TAX_RATE", "0.1")
	t.Setenv("POS_SALES_RECEIPT_PREFIX", "BP")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 0.1, cfg.Sales.TaxRate)
	assert.Equal(t, "BP", cfg.Sales.ReceiptPrefix)
}

func TestValidate(t *testing.T) {
	t.Run("rejects unknown driver", func(t *testing.T) {
		cfg := &Config{}
		applyDefaults(cfg)
		cfg.Database.Driver = "oracle"
		assert.Error(t, cfg.validate())
	})

	t.Run("production requires a jwt secret", func(t *testing.T) {
		cfg := &Config{}
		applyDefaults(cfg)
		cfg.App.Env = "production"
		assert.Error(t, cfg.validate())

		cfg.JWT.Secret = "0123456789abcdef0123456789abcdef"
		assert.NoError(t, cfg.validate())
	})

	t.Run("rejects out of range tax rate", func(t *testing.T) {
		cfg := &Config{}
		applyDefaults(cfg)
		cfg.Sales.TaxRate = 1.5
		assert.Error(t, cfg.validate())
	})
}

func TestPostgresDSN(t *testing.T) {
	d := &DatabaseConfig{
		Host:     "db.internal",
		Port:     5432,
		User:     "pos",
		Password: "p@ss/word",
		DBName:   "branchpos",
		SSLMode:  "require",
	}
	dsn := d.DSN()
	assert.Contains(t, dsn, "postgres://")
	assert.Contains(t, dsn, "db.internal:5432")
	assert.Contains(t, dsn, "sslmode=require")
	// special characters survive escaping
	assert.NotContains(t, dsn, "p@ss/word")
}
