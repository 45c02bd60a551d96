package inmemdb

import (
	"testing"

	"github.com/trezcool/schooladmin/core/school"
	"github.com/trezcool/schooladmin/storage/database/dbtest"
)

func TestRecordRepository(t *testing.T) {
	dbtest.RunRepositoryTests(t, func(*testing.T) school.Repository {
		return NewRecordRepository(Open())
	})
}
