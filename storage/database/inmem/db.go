package inmemdb

import "sync"

type (
	DB struct {
		mutex  sync.RWMutex
		tables map[string]*table
	}

	// table keeps its rows in insertion order.
	table struct {
		order []string
		rows  map[string][]byte
	}
)

func Open() *DB {
	return &DB{tables: make(map[string]*table)}
}

// table returns the table of resource, creating it if needed. The caller holds the write lock.
func (db *DB) table(resource string) *table {
	tbl, ok := db.tables[resource]
	if !ok {
		tbl = &table{rows: make(map[string][]byte)}
		db.tables[resource] = tbl
	}
	return tbl
}
