package collection

// Store holds the last fetched snapshot of a collection, ordered and keyed by record id.
// None of its operations perform I/O. Store is not safe for concurrent use; View guards it.
type Store[T Record] struct {
	records []T
}

func NewStore[T Record](records ...T) *Store[T] {
	s := &Store[T]{}
	s.SetAll(records)
	return s
}

// SetAll replaces the entire snapshot. When an id appears more than once, the first record wins.
func (s *Store[T]) SetAll(records []T) {
	seen := make(map[string]struct{}, len(records))
	snap := make([]T, 0, len(records))
	for _, rec := range records {
		id := rec.RecordID()
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		snap = append(snap, rec)
	}
	s.records = snap
}

// ReplaceByID replaces the record with the given id, keeping its position.
// It never appends: when no record matches, the snapshot is left unchanged and false is returned.
func (s *Store[T]) ReplaceByID(id string, rec T) bool {
	i := s.IndexOf(id)
	if i < 0 {
		return false
	}
	snap := make([]T, len(s.records))
	copy(snap, s.records)
	snap[i] = rec
	s.records = snap
	return true
}

// RemoveByID removes the record with the given id. It is a no-op (false) when absent.
func (s *Store[T]) RemoveByID(id string) bool {
	i := s.IndexOf(id)
	if i < 0 {
		return false
	}
	snap := make([]T, 0, len(s.records)-1)
	snap = append(snap, s.records[:i]...)
	snap = append(snap, s.records[i+1:]...)
	s.records = snap
	return true
}

// Append adds rec at the end. A record whose id is already present is refused (false).
func (s *Store[T]) Append(rec T) bool {
	if s.IndexOf(rec.RecordID()) >= 0 {
		return false
	}
	snap := make([]T, 0, len(s.records)+1)
	snap = append(snap, s.records...)
	snap = append(snap, rec)
	s.records = snap
	return true
}

// IndexOf returns the position of id in the snapshot, or -1.
func (s *Store[T]) IndexOf(id string) int {
	for i, rec := range s.records {
		if rec.RecordID() == id {
			return i
		}
	}
	return -1
}

func (s *Store[T]) Get(id string) (T, bool) {
	if i := s.IndexOf(id); i >= 0 {
		return s.records[i], true
	}
	var zero T
	return zero, false
}

func (s *Store[T]) Len() int { return len(s.records) }

// All returns a copy of the snapshot.
func (s *Store[T]) All() []T {
	snap := make([]T, len(s.records))
	copy(snap, s.records)
	return snap
}
