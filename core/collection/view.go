package collection

import (
	"context"
	"fmt"
	"sync"

	"github.com/pkg/errors"

	"github.com/trezcool/schooladmin/core"
)

type ViewOptions struct {
	// Confirm gates deletes. A nil Confirm declines every delete.
	Confirm ConfirmFunc
	Logger  core.Logger
}

// View ties a Store, an Editor and a Query to one remote collection, like one admin page.
//
// At most one mutation (submit or delete) is in flight at a time; a second one fails with ErrBusy.
// Results that arrive after Close are discarded with ErrStale, and so are lists sent before
// a newer Load or before a mutation was reconciled into the snapshot.
// The lock is never held across a remote call.
type View[T Record] struct {
	mu sync.Mutex

	res     Resource[T]
	remote  Remote[T]
	confirm ConfirmFunc
	logger  core.Logger

	store  *Store[T]
	editor *Editor[T]
	query  Query

	epoch   uint64 // bumped by Close
	loadSeq uint64 // bumped by every Load and every reconciled mutation
	closed  bool
	pending bool
	loaded  bool
}

func NewView[T Record](res Resource[T], remote Remote[T], opts ViewOptions) *View[T] {
	if opts.Confirm == nil {
		opts.Confirm = func(context.Context, string) (bool, error) { return false, nil }
	}
	if opts.Logger == nil {
		opts.Logger = core.NopLogger{}
	}
	store := NewStore[T]()
	return &View[T]{
		res:     res,
		remote:  remote,
		confirm: opts.Confirm,
		logger:  opts.Logger,
		store:   store,
		editor:  NewEditor(res, store, remote),
	}
}

func (v *View[T]) Resource() Resource[T] { return v.res }

// Load fetches the collection and replaces the snapshot.
// On failure the previous snapshot is kept.
func (v *View[T]) Load(ctx context.Context) error {
	v.mu.Lock()
	if v.closed {
		v.mu.Unlock()
		return ErrClosed
	}
	v.loadSeq++
	seq, epoch := v.loadSeq, v.epoch
	v.mu.Unlock()

	recs, err := v.remote.List(ctx)

	v.mu.Lock()
	defer v.mu.Unlock()
	if epoch != v.epoch || seq != v.loadSeq {
		v.logger.Debug(fmt.Sprintf("discarding stale %s list", v.res.Name))
		return ErrStale
	}
	if err != nil {
		v.logger.Warn(fmt.Sprintf("listing %s failed", v.res.Plural), err)
		return errors.Wrapf(err, "listing %s", v.res.Plural)
	}
	v.store.SetAll(recs)
	v.loaded = true
	return nil
}

// Loaded reports whether a Load has succeeded.
func (v *View[T]) Loaded() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.loaded
}

// Snapshot returns a copy of the local snapshot.
func (v *View[T]) Snapshot() []T {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.store.All()
}

// Visible derives the filtered records from the current snapshot and query.
func (v *View[T]) Visible() []T {
	v.mu.Lock()
	defer v.mu.Unlock()
	return Apply(v.store.All(), v.res.Fields, v.query)
}

func (v *View[T]) Query() Query {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.query.clone()
}

func (v *View[T]) SetSearch(text string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.query.Search = text
}

// SetFilter sets the expected value of a field filter; an empty value deactivates it.
func (v *View[T]) SetFilter(key, value string) error {
	if !v.res.HasField(key) {
		return errors.Errorf("%s has no field %q", v.res.Name, key)
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.query.Filters == nil {
		v.query.Filters = make(map[string]string)
	}
	v.query.Filters[key] = value
	return nil
}

func (v *View[T]) ClearFilters() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.query = Query{}
}

// FilterOptions lists the distinct values of key in the snapshot.
func (v *View[T]) FilterOptions(key string) []string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return Options(v.store.All(), key)
}

// EditorState returns the editor state, the working copy and the last surfaced error.
func (v *View[T]) EditorState() (State, T, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	rec, _ := v.editor.Working()
	return v.editor.State(), rec, v.editor.Err()
}

// SetCreateDefaults sets the draft used by BeginCreate.
func (v *View[T]) SetCreateDefaults(defaults T) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.editor.SetDefaults(defaults)
}

// BeginEdit opens the editor on the record with the given id.
func (v *View[T]) BeginEdit(id string) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		return ErrClosed
	}
	rec, ok := v.store.Get(id)
	if !ok {
		return errors.Wrapf(core.ErrLocalMismatch, "editing %s %s", v.res.Name, id)
	}
	return v.editor.Open(rec)
}

// BeginCreate opens the editor on a new draft.
func (v *View[T]) BeginCreate() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		return ErrClosed
	}
	return v.editor.OpenNew()
}

func (v *View[T]) Set(key, value string) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.editor.Set(key, value)
}

func (v *View[T]) Cancel() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.editor.Cancel()
}

// Submit sends the editor's working copy (create or update) and reconciles the result.
func (v *View[T]) Submit(ctx context.Context) error {
	v.mu.Lock()
	if v.closed {
		v.mu.Unlock()
		return ErrClosed
	}
	if v.pending {
		v.mu.Unlock()
		return ErrBusy
	}
	sub, err := v.editor.prepare()
	if err != nil {
		v.mu.Unlock()
		return err
	}
	v.pending = true
	epoch := v.epoch
	v.mu.Unlock()

	res, err := v.editor.send(ctx, sub)

	v.mu.Lock()
	v.pending = false
	if epoch != v.epoch {
		v.mu.Unlock()
		v.logger.Debug(fmt.Sprintf("discarding stale %s submit", v.res.Name))
		return ErrStale
	}
	if errors.Is(err, core.ErrNoRecord) {
		// accepted, but without a record to merge: fetch the list again
		v.editor.abandon()
		v.mu.Unlock()
		return v.Load(ctx)
	}
	if err = v.editor.complete(sub, res, err); err == nil {
		v.loadSeq++
	}
	v.mu.Unlock()

	if err != nil {
		v.logger.Warn(fmt.Sprintf("saving %s failed", v.res.Name), err)
	}
	return err
}

// Delete asks for confirmation, then deletes the record remotely and, on success, locally.
// deleted is false when the user declined or the request failed.
func (v *View[T]) Delete(ctx context.Context, id string) (deleted bool, err error) {
	v.mu.Lock()
	if v.closed {
		v.mu.Unlock()
		return false, ErrClosed
	}
	if v.pending || v.editor.State() == Submitting {
		v.mu.Unlock()
		return false, ErrBusy
	}
	rec, ok := v.store.Get(id)
	if !ok {
		v.mu.Unlock()
		return false, errors.Wrapf(core.ErrLocalMismatch, "deleting %s %s", v.res.Name, id)
	}
	v.pending = true
	epoch := v.epoch
	v.mu.Unlock()

	release := func() {
		v.mu.Lock()
		v.pending = false
		v.mu.Unlock()
	}

	yes, err := v.confirm(ctx, fmt.Sprintf("Are you sure you want to delete %s?", v.displayName(rec)))
	if err != nil {
		release()
		return false, errors.Wrap(err, "asking for confirmation")
	}
	if !yes {
		release()
		return false, nil
	}

	err = v.remote.Delete(ctx, id)

	v.mu.Lock()
	defer v.mu.Unlock()
	v.pending = false
	if epoch != v.epoch {
		return false, ErrStale
	}
	if err != nil {
		v.logger.Warn(fmt.Sprintf("deleting %s %s failed", v.res.Name, id), err)
		return false, errors.Wrapf(err, "deleting %s", v.res.Name)
	}
	if !v.store.RemoveByID(id) {
		return false, errors.Wrapf(core.ErrLocalMismatch, "deleting %s %s", v.res.Name, id)
	}
	v.loadSeq++
	if v.editor.EditingID() == id {
		v.editor.abandon()
	}
	return true, nil
}

// Close discards the view; results of requests still in flight will be ignored.
func (v *View[T]) Close() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.closed = true
	v.epoch++
	v.editor.reset()
}

func (v *View[T]) displayName(rec T) string {
	if v.res.NameField != "" {
		if name := rec.Field(v.res.NameField); name != "" {
			return name
		}
	}
	return rec.RecordID()
}
