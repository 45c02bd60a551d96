package database

import (
	"context"
	"database/sql"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/schooladmin/core"
)

func TestPostgresURL(t *testing.T) {
	conf := &core.Config{Database: core.DatabaseConfig{
		Host: "db", Port: "5432", User: "admin", Password: "s3cret", Name: "school",
	}}
	assert.Equal(t, "postgres://admin:s3cret@db:5432/school?sslmode=require&timezone=utc", postgresURL(conf))

	conf.Database.DisableTLS = true
	assert.Contains(t, postgresURL(conf), "sslmode=disable")
}

func TestOpen(t *testing.T) {
	t.Run("memory is not a SQL engine", func(t *testing.T) {
		_, err := Open(&core.Config{Database: core.DatabaseConfig{Engine: EngineMemory}})
		assert.Error(t, err)
	})

	t.Run("sqlite migrates twice", func(t *testing.T) {
		db, err := Open(&core.Config{Database: core.DatabaseConfig{Engine: EngineSQLite, Path: ":memory:"}})
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		ctx := context.Background()
		require.NoError(t, Ping(ctx, db))
		require.NoError(t, Migrate(ctx, db))
		require.NoError(t, Migrate(ctx, db))

		version, err := goose.GetDBVersionContext(ctx, db.DB)
		require.NoError(t, err)
		assert.Equal(t, int64(1), version)

		var n int
		require.NoError(t, db.Get(&n, `SELECT COUNT(*) FROM records`))
		assert.Zero(t, n)
	})
}

func TestPrepareMigrations(t *testing.T) {
	err := PrepareMigrations(sqlx.NewDb(&sql.DB{}, "mysql"))
	assert.EqualError(t, err, `no migration dialect for driver "mysql"`)
}
