package sqlxrepos

import (
	"context"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/schooladmin/core"
	"github.com/trezcool/schooladmin/core/school"
	"github.com/trezcool/schooladmin/storage/database"
	"github.com/trezcool/schooladmin/storage/database/dbtest"
)

func openSQLite(t *testing.T) *sqlx.DB {
	conf := &core.Config{Database: core.DatabaseConfig{Engine: database.EngineSQLite, Path: ":memory:"}}
	db, err := database.Open(conf)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, database.Migrate(context.Background(), db))
	return db
}

func TestRecordRepository(t *testing.T) {
	dbtest.RunRepositoryTests(t, func(t *testing.T) school.Repository {
		return NewRecordRepository(openSQLite(t))
	})
}

func TestIsUniqueViolation(t *testing.T) {
	db := openSQLite(t)
	insert := `INSERT INTO records (resource, id, seq, data) VALUES ('course', '1', 1, '{}')`
	_, err := db.Exec(insert)
	require.NoError(t, err)
	_, dupErr := db.Exec(insert)
	require.Error(t, dupErr)

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "sqlite primary key", err: dupErr, want: true},
		{name: "postgres unique violation", err: errors.Wrap(&pq.Error{Code: "23505"}, "inserting"), want: true},
		{name: "postgres foreign key violation", err: &pq.Error{Code: "23503"}},
		{name: "other", err: errors.New("connection reset")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isUniqueViolation(tt.err))
		})
	}
}
