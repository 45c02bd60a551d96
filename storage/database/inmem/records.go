package inmemdb

import (
	"context"

	"github.com/trezcool/schooladmin/core/school"
)

type recordRepository struct {
	db *DB
}

func NewRecordRepository(db *DB) school.Repository {
	return &recordRepository{db: db}
}

func clone(data []byte) []byte {
	return append([]byte(nil), data...)
}

func (repo *recordRepository) List(_ context.Context, resource string) ([][]byte, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	tbl, ok := repo.db.tables[resource]
	if !ok {
		return [][]byte{}, nil
	}
	docs := make([][]byte, 0, len(tbl.order))
	for _, id := range tbl.order {
		docs = append(docs, clone(tbl.rows[id]))
	}
	return docs, nil
}

func (repo *recordRepository) Get(_ context.Context, resource, id string) ([]byte, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if tbl, ok := repo.db.tables[resource]; ok {
		if data, ok := tbl.rows[id]; ok {
			return clone(data), nil
		}
	}
	return nil, school.ErrNotFound
}

func (repo *recordRepository) Insert(_ context.Context, resource, id string, data []byte) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	tbl := repo.db.table(resource)
	if _, ok := tbl.rows[id]; ok {
		return school.ErrIDExists
	}
	tbl.rows[id] = clone(data)
	tbl.order = append(tbl.order, id)
	return nil
}

func (repo *recordRepository) Update(_ context.Context, resource, id string, data []byte) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	tbl, ok := repo.db.tables[resource]
	if !ok {
		return school.ErrNotFound
	}
	if _, ok = tbl.rows[id]; !ok {
		return school.ErrNotFound
	}
	tbl.rows[id] = clone(data)
	return nil
}

func (repo *recordRepository) Delete(_ context.Context, resource, id string) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	tbl, ok := repo.db.tables[resource]
	if !ok {
		return school.ErrNotFound
	}
	if _, ok = tbl.rows[id]; !ok {
		return school.ErrNotFound
	}
	delete(tbl.rows, id)
	for i, oid := range tbl.order {
		if oid == id {
			tbl.order = append(tbl.order[:i], tbl.order[i+1:]...)
			break
		}
	}
	return nil
}

func (repo *recordRepository) Count(_ context.Context, resource string) (int, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if tbl, ok := repo.db.tables[resource]; ok {
		return len(tbl.rows), nil
	}
	return 0, nil
}
