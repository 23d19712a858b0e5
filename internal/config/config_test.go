package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew_Defaults(t *testing.T) {
	for _, k := range []string{
		"APP_ENV", "DB_DRIVER", "MYSQL_DSN",
		"DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME",
		"SEED_BCRYPT_COST", "SEED_TRANSACTIONAL", "SEED_RECONCILE_COUNTERS", "SEED_PRIME_CACHE",
		"LOG_COMPONENT",
	} {
		t.Setenv(k, "")
	}

	cfg := New()

	assert.Equal(t, "development", cfg.App.ENV)
	assert.False(t, cfg.IsProduction())
	assert.Equal(t, "mysql", cfg.DB.Driver)
	assert.Equal(t, "root:root@tcp(localhost:3306)/vidshare?parseTime=true&charset=utf8mb4&loc=UTC", cfg.DB.DSN)
	assert.Equal(t, "seeder", cfg.Log.Component)
	assert.Equal(t, 8, cfg.Seed.BcryptCost)
	assert.True(t, cfg.Seed.Transactional)
	assert.False(t, cfg.Seed.ReconcileCounters)
	assert.False(t, cfg.Seed.PrimeCache)
}

func TestNew_SQLiteDriver(t *testing.T) {
	t.Setenv("DB_DRIVER", "SQLite")
	t.Setenv("SQLITE_PATH", "/tmp/fixtures.db")

	cfg := New()

	assert.Equal(t, "sqlite", cfg.DB.Driver)
	assert.Equal(t, "/tmp/fixtures.db?_foreign_keys=on", cfg.DB.DSN)
}

func TestNew_PostgresDriver(t *testing.T) {
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("POSTGRES_DSN", "")
	t.Setenv("DB_HOST", "pg")
	t.Setenv("DB_PORT", "")
	t.Setenv("DB_USER", "")
	t.Setenv("DB_PASSWORD", "")
	t.Setenv("DB_NAME", "")

	cfg := New()

	assert.Equal(t, "host=pg port=5432 user=postgres password=postgres dbname=vidshare sslmode=disable TimeZone=UTC", cfg.DB.DSN)
}

func TestNew_SeedOverrides(t *testing.T) {
	t.Setenv("APP_ENV", "Production")
	t.Setenv("SEED_BCRYPT_COST", "4")
	t.Setenv("SEED_TRANSACTIONAL", "off")
	t.Setenv("SEED_RECONCILE_COUNTERS", "yes")
	t.Setenv("SEED_PRIME_CACHE", "1")

	cfg := New()

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, 4, cfg.Seed.BcryptCost)
	assert.False(t, cfg.Seed.Transactional)
	assert.True(t, cfg.Seed.ReconcileCounters)
	assert.True(t, cfg.Seed.PrimeCache)
}

func TestSQLiteDSN(t *testing.T) {
	assert.Equal(t, ":memory:?_foreign_keys=on", SQLiteDSN(":memory:"))
	assert.Equal(t, "file:x?mode=memory&cache=shared&_foreign_keys=on", SQLiteDSN("file:x?mode=memory&cache=shared"))
}
