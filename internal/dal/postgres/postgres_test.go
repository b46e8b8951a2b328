package postgres

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestConnString(t *testing.T) {
	t.Setenv("SHOP_PG_HOST", "db")
	t.Setenv("SHOP_PG_USER", "shop")
	t.Setenv("SHOP_PG_PASSWORD", "secret")
	t.Setenv("SHOP_PG_DB", "orders")

	viper.Reset()
	t.Cleanup(viper.Reset)

	assert.Equal(t, "host=db port=5432 user=shop password=secret dbname=orders sslmode=disable", connString())

	viper.Set("postgres.port", 6543)
	viper.Set("postgres.sslmode", "require")

	assert.Equal(t, "host=db port=6543 user=shop password=secret dbname=orders sslmode=require", connString())
}

func TestMigrationsAreEmbedded(t *testing.T) {
	entries, err := migrations.ReadDir("migrations")
	assert.NoError(t, err)
	assert.Len(t, entries, 3)
}
