package school

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/trezcool/schooladmin/core/collection"
)

var (
	// errors
	ErrNotFound = errors.New("record not found")
	ErrIDExists = errors.New("a record with this id already exists")
)

type (
	// Repository stores the records of every resource as JSON documents keyed by resource and id.
	// List returns the documents in insertion order.
	Repository interface {
		List(ctx context.Context, resource string) ([][]byte, error)
		Get(ctx context.Context, resource, id string) ([]byte, error)
		Insert(ctx context.Context, resource, id string, data []byte) error
		Update(ctx context.Context, resource, id string, data []byte) error
		Delete(ctx context.Context, resource, id string) error
		Count(ctx context.Context, resource string) (int, error)
	}

	// entity is the pointer side of a record.
	entity[T any] interface {
		*T
		SetID(id string)
	}

	// Service stores the records of one resource.
	Service[T collection.Record, PT entity[T]] struct {
		repo Repository
		res  collection.Resource[T]
		val  *Validator
	}
)

func NewService[T collection.Record, PT entity[T]](repo Repository, res collection.Resource[T], val *Validator) *Service[T, PT] {
	return &Service[T, PT]{repo: repo, res: res, val: val}
}

func (svc *Service[T, PT]) Resource() collection.Resource[T] { return svc.res }

func (svc *Service[T, PT]) decode(data []byte) (T, error) {
	var rec T
	if err := json.Unmarshal(data, &rec); err != nil {
		return rec, errors.Wrapf(err, "decoding %s", svc.res.Name)
	}
	return rec, nil
}

func (svc *Service[T, PT]) validate(rec T) error {
	if svc.val == nil {
		return nil
	}
	return svc.val.Struct(rec)
}

func (svc *Service[T, PT]) QueryAll(ctx context.Context) ([]T, error) {
	docs, err := svc.repo.List(ctx, svc.res.Name)
	if err != nil {
		return nil, errors.Wrapf(err, "listing %s", svc.res.Plural)
	}
	recs := make([]T, 0, len(docs))
	for _, doc := range docs {
		rec, err := svc.decode(doc)
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
	return recs, nil
}

func (svc *Service[T, PT]) GetByID(ctx context.Context, id string) (T, error) {
	doc, err := svc.repo.Get(ctx, svc.res.Name, id)
	if err != nil {
		var zero T
		return zero, err
	}
	return svc.decode(doc)
}

// Create validates rec, assigns it a new id and stores it.
func (svc *Service[T, PT]) Create(ctx context.Context, rec T) (T, error) {
	var zero T
	if err := svc.validate(rec); err != nil {
		return zero, err
	}
	id := uuid.NewString()
	PT(&rec).SetID(id)
	data, err := json.Marshal(rec)
	if err != nil {
		return zero, errors.Wrapf(err, "encoding %s", svc.res.Name)
	}
	if err = svc.repo.Insert(ctx, svc.res.Name, id, data); err != nil {
		return zero, err
	}
	return rec, nil
}

// Update replaces the whole record stored under id; the id in rec is ignored.
func (svc *Service[T, PT]) Update(ctx context.Context, id string, rec T) (T, error) {
	var zero T
	if err := svc.validate(rec); err != nil {
		return zero, err
	}
	PT(&rec).SetID(id)
	data, err := json.Marshal(rec)
	if err != nil {
		return zero, errors.Wrapf(err, "encoding %s", svc.res.Name)
	}
	if err = svc.repo.Update(ctx, svc.res.Name, id, data); err != nil {
		return zero, err
	}
	return rec, nil
}

func (svc *Service[T, PT]) Delete(ctx context.Context, id string) error {
	return svc.repo.Delete(ctx, svc.res.Name, id)
}

// Seed stores records with their own ids, skipping the ids already present.
func (svc *Service[T, PT]) Seed(ctx context.Context, recs ...T) error {
	for _, rec := range recs {
		data, err := json.Marshal(rec)
		if err != nil {
			return errors.Wrapf(err, "encoding %s", svc.res.Name)
		}
		err = svc.repo.Insert(ctx, svc.res.Name, rec.RecordID(), data)
		if err != nil && !errors.Is(err, ErrIDExists) {
			return errors.Wrapf(err, "seeding %s %s", svc.res.Name, rec.RecordID())
		}
	}
	return nil
}

// QueryStats counts the students, teachers and courses.
func QueryStats(ctx context.Context, repo Repository) (Stats, error) {
	var (
		stats Stats
		err   error
	)
	if stats.Students, err = repo.Count(ctx, StudentResource); err != nil {
		return Stats{}, errors.Wrap(err, "counting students")
	}
	if stats.Teachers, err = repo.Count(ctx, TeacherResource); err != nil {
		return Stats{}, errors.Wrap(err, "counting teachers")
	}
	if stats.Courses, err = repo.Count(ctx, CourseResource); err != nil {
		return Stats{}, errors.Wrap(err, "counting courses")
	}
	return stats, nil
}
