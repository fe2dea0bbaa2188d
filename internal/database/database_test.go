package database

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetConfig(t *testing.T) {
	viper.Reset()
	defer viper.Reset()

	t.Run("defaults", func(t *testing.T) {
		cfg := GetConfig()
		assert.Equal(t, "localhost", cfg.Host)
		assert.Equal(t, "zakat_ledger", cfg.Name)
		assert.Equal(t, 25, cfg.MaxOpenConns)
		assert.Equal(t,
			"host=localhost port=5432 user=postgres password=password dbname=zakat_ledger sslmode=disable",
			cfg.DSN())
	})

	t.Run("overrides", func(t *testing.T) {
		viper.Set("database.host", "db.internal")
		viper.Set("database.ssl_mode", "require")

		cfg := GetConfig()
		assert.Equal(t, "db.internal", cfg.Host)
		assert.Equal(t, "require", cfg.SSLMode)
	})
}

func TestMigrate(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	t.Run("applies every statement in one transaction", func(t *testing.T) {
		mock.ExpectBegin()
		for range schema {
			mock.ExpectExec(".+").WillReturnResult(sqlmock.NewResult(0, 0))
		}
		mock.ExpectCommit()

		assert.NoError(t, Migrate(context.Background(), db))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("statement failure rolls back", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec("CREATE TABLE IF NOT EXISTS campaigns").
			WillReturnError(errors.New("permission denied"))
		mock.ExpectRollback()

		assert.Error(t, Migrate(context.Background(), db))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
