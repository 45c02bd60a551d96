package sqlxrepos

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/trezcool/schooladmin/core/school"
)

const pgUniqueViolation = pq.ErrorCode("23505")

type recordRepository struct {
	db *sqlx.DB
}

// NewRecordRepository returns a school.Repository on the `records` table.
func NewRecordRepository(db *sqlx.DB) school.Repository {
	return &recordRepository{db: db}
}

func (repo *recordRepository) List(ctx context.Context, resource string) ([][]byte, error) {
	var rows []string
	q := repo.db.Rebind(`SELECT data FROM records WHERE resource = ? ORDER BY seq, id`)
	if err := repo.db.SelectContext(ctx, &rows, q, resource); err != nil {
		return nil, errors.Wrap(err, "selecting records")
	}
	docs := make([][]byte, 0, len(rows))
	for _, row := range rows {
		docs = append(docs, []byte(row))
	}
	return docs, nil
}

func (repo *recordRepository) Get(ctx context.Context, resource, id string) ([]byte, error) {
	var data string
	q := repo.db.Rebind(`SELECT data FROM records WHERE resource = ? AND id = ?`)
	if err := repo.db.GetContext(ctx, &data, q, resource, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, school.ErrNotFound
		}
		return nil, errors.Wrap(err, "selecting record")
	}
	return []byte(data), nil
}

func (repo *recordRepository) exists(ctx context.Context, tx *sqlx.Tx, resource, id string) (bool, error) {
	var n int
	q := tx.Rebind(`SELECT COUNT(*) FROM records WHERE resource = ? AND id = ?`)
	if err := tx.GetContext(ctx, &n, q, resource, id); err != nil {
		return false, errors.Wrap(err, "checking record")
	}
	return n > 0, nil
}

func (repo *recordRepository) Insert(ctx context.Context, resource, id string, data []byte) (err error) {
	tx, err := repo.db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "beginning transaction")
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	exists, err := repo.exists(ctx, tx, resource, id)
	if err != nil {
		return err
	}
	if exists {
		return school.ErrIDExists
	}

	var seq int64
	if err = tx.GetContext(ctx, &seq, `SELECT COALESCE(MAX(seq), 0) + 1 FROM records`); err != nil {
		return errors.Wrap(err, "computing sequence")
	}
	q := tx.Rebind(`INSERT INTO records (resource, id, seq, data) VALUES (?, ?, ?, ?)`)
	if _, err = tx.ExecContext(ctx, q, resource, id, seq, string(data)); err != nil {
		// a concurrent insert of the same id got in after the check
		if isUniqueViolation(err) {
			return school.ErrIDExists
		}
		return errors.Wrap(err, "inserting record")
	}
	if err = tx.Commit(); err != nil {
		return errors.Wrap(err, "committing record")
	}
	return nil
}

func (repo *recordRepository) Update(ctx context.Context, resource, id string, data []byte) error {
	q := repo.db.Rebind(`UPDATE records SET data = ? WHERE resource = ? AND id = ?`)
	res, err := repo.db.ExecContext(ctx, q, string(data), resource, id)
	if err != nil {
		return errors.Wrap(err, "updating record")
	}
	return affectedOne(res)
}

func (repo *recordRepository) Delete(ctx context.Context, resource, id string) error {
	q := repo.db.Rebind(`DELETE FROM records WHERE resource = ? AND id = ?`)
	res, err := repo.db.ExecContext(ctx, q, resource, id)
	if err != nil {
		return errors.Wrap(err, "deleting record")
	}
	return affectedOne(res)
}

func (repo *recordRepository) Count(ctx context.Context, resource string) (int, error) {
	var n int
	q := repo.db.Rebind(`SELECT COUNT(*) FROM records WHERE resource = ?`)
	if err := repo.db.GetContext(ctx, &n, q, resource); err != nil {
		return 0, errors.Wrap(err, "counting records")
	}
	return n, nil
}

func affectedOne(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "reading affected rows")
	}
	if n == 0 {
		return school.ErrNotFound
	}
	return nil
}

// isUniqueViolation reports whether err is a primary key or unique constraint failure.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == pgUniqueViolation
	}
	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		switch liteErr.Code() {
		case sqlite3.SQLITE_CONSTRAINT, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3.SQLITE_CONSTRAINT_UNIQUE:
			return true
		}
	}
	return false
}
