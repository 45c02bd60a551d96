package collection

import (
	"context"

	"github.com/pkg/errors"

	"github.com/trezcool/schooladmin/core"
)

var (
	ErrBusy          = errors.New("another request is still in progress")
	ErrStale         = errors.New("result discarded: the view has moved on")
	ErrClosed        = errors.New("view is closed")
	ErrNotOpen       = errors.New("no record is being edited")
	ErrReadOnlyField = errors.New("field cannot be edited")
)

// State of an Editor.
type State int

const (
	Closed State = iota
	Open
	Submitting
)

func (s State) String() string {
	switch s {
	case Open:
		return "open"
	case Submitting:
		return "submitting"
	default:
		return "closed"
	}
}

type editMode int

const (
	modeUpdate editMode = iota
	modeCreate
)

// submission is the request an Editor hands out when it enters Submitting.
type submission[T Record] struct {
	mode editMode
	id   string
	rec  T
}

// Editor manages the open → submit → close life cycle of one record at a time.
// The store is only written after the remote call acknowledges success.
type Editor[T Record] struct {
	res    Resource[T]
	store  *Store[T]
	remote Remote[T]

	state    State
	mode     editMode
	id       string
	working  T
	defaults T
	err      error
}

func NewEditor[T Record](res Resource[T], store *Store[T], remote Remote[T]) *Editor[T] {
	return &Editor[T]{res: res, store: store, remote: remote}
}

// SetDefaults sets the draft used by OpenNew.
func (e *Editor[T]) SetDefaults(defaults T) { e.defaults = defaults }

func (e *Editor[T]) State() State { return e.state }

// Err is the error surfaced by the last failed submit, cleared on open/cancel.
func (e *Editor[T]) Err() error { return e.err }

// Working returns the working copy; ok is false when the editor is closed.
func (e *Editor[T]) Working() (rec T, ok bool) {
	return e.working, e.state != Closed
}

// IsCreating reports whether the current session creates a new record.
func (e *Editor[T]) IsCreating() bool { return e.state != Closed && e.mode == modeCreate }

// EditingID is the id of the record being edited ("" when closed or creating).
func (e *Editor[T]) EditingID() string {
	if e.state == Closed || e.mode == modeCreate {
		return ""
	}
	return e.id
}

// Open starts editing rec, discarding any previous working copy.
func (e *Editor[T]) Open(rec T) error {
	if e.state == Submitting {
		return ErrBusy
	}
	e.state = Open
	e.mode = modeUpdate
	e.id = rec.RecordID()
	e.working = e.res.clone(rec)
	e.err = nil
	return nil
}

// OpenNew starts a create session from the defaults.
func (e *Editor[T]) OpenNew() error {
	if e.state == Submitting {
		return ErrBusy
	}
	e.state = Open
	e.mode = modeCreate
	e.id = ""
	e.working = e.res.clone(e.defaults)
	e.err = nil
	return nil
}

// Set assigns a form value to the working copy.
func (e *Editor[T]) Set(key, value string) error {
	if e.state != Open {
		return ErrNotOpen
	}
	if len(e.res.EditFields) > 0 && !e.res.editable(key) {
		return errors.Wrap(ErrReadOnlyField, key)
	}
	if e.res.Set == nil {
		return errors.Wrap(ErrReadOnlyField, key)
	}
	return e.res.Set(&e.working, key, value)
}

// Cancel closes the editor without touching the store. It fails while submitting.
func (e *Editor[T]) Cancel() error {
	if e.state == Submitting {
		return ErrBusy
	}
	e.reset()
	return nil
}

func (e *Editor[T]) reset() {
	var zero T
	e.state = Closed
	e.id = ""
	e.working = zero
	e.err = nil
}

// Submit sends the working copy and merges the server's record into the store on success.
// On failure the editor stays open, the store is untouched and the error is returned (and kept in Err).
func (e *Editor[T]) Submit(ctx context.Context) error {
	sub, err := e.prepare()
	if err != nil {
		return err
	}
	res, err := e.send(ctx, sub)
	return e.complete(sub, res, err)
}

// prepare validates the working copy and moves to Submitting.
func (e *Editor[T]) prepare() (submission[T], error) {
	switch e.state {
	case Closed:
		return submission[T]{}, ErrNotOpen
	case Submitting:
		return submission[T]{}, ErrBusy
	}
	if e.res.Validate != nil {
		if err := e.res.Validate(e.working); err != nil {
			e.err = err
			return submission[T]{}, err
		}
	}
	e.state = Submitting
	return submission[T]{mode: e.mode, id: e.id, rec: e.res.clone(e.working)}, nil
}

func (e *Editor[T]) send(ctx context.Context, sub submission[T]) (T, error) {
	if sub.mode == modeCreate {
		return e.remote.Create(ctx, sub.rec)
	}
	return e.remote.Update(ctx, sub.id, sub.rec)
}

// complete applies the outcome of a submission.
func (e *Editor[T]) complete(sub submission[T], res T, err error) error {
	if err != nil {
		e.state = Open
		e.err = err
		return err
	}

	if sub.mode == modeCreate {
		if !e.store.Append(res) {
			e.store.ReplaceByID(res.RecordID(), res)
		}
		e.reset()
		return nil
	}

	if res.RecordID() != sub.id {
		e.reset()
		return errors.Wrapf(core.ErrLocalMismatch, "updating %s %s: server returned %s %s",
			e.res.Name, sub.id, e.res.Name, res.RecordID())
	}
	// the server's record, not the working copy, picks up server-side normalization
	if !e.store.ReplaceByID(sub.id, res) {
		e.reset()
		return errors.Wrapf(core.ErrLocalMismatch, "updating %s %s", e.res.Name, sub.id)
	}
	e.reset()
	return nil
}

// abandon closes a submitted session whose result could not be merged locally.
func (e *Editor[T]) abandon() { e.reset() }
