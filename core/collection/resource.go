// Package collection implements the client-side synchronization of one remote collection:
// a local snapshot, the filtered view derived from it, and the editor that reconciles
// confirmed mutations back into the snapshot.
package collection

import "context"

// Record is one entity of a collection.
type Record interface {
	// RecordID is the server-assigned identifier.
	RecordID() string
	// Field returns the display value of the field with the given key ("" if unknown).
	Field(key string) string
}

// Field describes one field of a resource.
type Field struct {
	Key   string
	Label string
}

// Resource configures a collection for one entity type.
type Resource[T Record] struct {
	Name   string // singular, eg. "course"
	Plural string // list envelope key, eg. "courses"
	Title  string // eg. "Course"

	// NameField names a record in prompts (eg. "course_name"); the id is used when empty.
	NameField string

	// endpoint templates; `{id}` is replaced by the escaped record id
	ListPath   string
	CreatePath string
	UpdatePath string
	DeletePath string

	// Fields are the searchable fields in display order. The id field must be included.
	Fields []Field
	// Filters lists the field keys offered as equality filters.
	Filters []string
	// EditFields lists the field keys an editor may change.
	EditFields []string

	// Set assigns a form value to a field of the working copy.
	Set func(rec *T, key, value string) error
	// Validate checks a working copy before it is submitted. Optional.
	Validate func(rec T) error
	// Clone copies a record deep enough that edits never reach the snapshot. Optional:
	// records made only of value fields are copied by assignment.
	Clone func(rec T) T
}

func (res Resource[T]) clone(rec T) T {
	if res.Clone != nil {
		return res.Clone(rec)
	}
	return rec
}

// Label returns the label of a field key, or the key itself.
func (res Resource[T]) Label(key string) string {
	for _, f := range res.Fields {
		if f.Key == key {
			return f.Label
		}
	}
	return key
}

// HasField reports whether key is one of the resource fields.
func (res Resource[T]) HasField(key string) bool {
	for _, f := range res.Fields {
		if f.Key == key {
			return true
		}
	}
	return false
}

func (res Resource[T]) editable(key string) bool {
	for _, k := range res.EditFields {
		if k == key {
			return true
		}
	}
	return false
}

// Remote is the remote store of one collection.
type Remote[T Record] interface {
	List(ctx context.Context) ([]T, error)
	Create(ctx context.Context, rec T) (T, error)
	Update(ctx context.Context, id string, rec T) (T, error)
	Delete(ctx context.Context, id string) error
}

// ConfirmFunc asks the user a yes/no question; only an affirmative answer lets a delete proceed.
type ConfirmFunc func(ctx context.Context, prompt string) (bool, error)
