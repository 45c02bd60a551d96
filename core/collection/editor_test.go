package collection

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/schooladmin/core"
)

func newTestEditor(remote Remote[item]) (*Editor[item], *Store[item]) {
	store := NewStore(sampleItems()...)
	return NewEditor(itemResource, store, remote), store
}

func TestEditor_UpdateSuccess(t *testing.T) {
	remote := &fakeRemote{}
	e, store := newTestEditor(remote)

	rec, _ := store.Get("2")
	require.NoError(t, e.Open(rec))
	assert.Equal(t, Open, e.State())
	assert.Equal(t, "2", e.EditingID())

	require.NoError(t, e.Set("name", "Data Structures II"))
	// the snapshot is untouched until the server confirms
	stored, _ := store.Get("2")
	assert.Equal(t, "IT102", stored.Name)

	require.NoError(t, e.Submit(context.Background()))
	assert.Equal(t, Closed, e.State())
	assert.Equal(t, []string{"update 2"}, remote.Calls())
	assert.Equal(t, []item{
		{ID: "1", Name: "CS101", Program: "CS"},
		{ID: "2", Name: "Data Structures II", Program: "IT"},
		{ID: "3", Name: "CS201", Program: "CS"},
	}, store.All())
}

func TestEditor_StoresTheServerRecord(t *testing.T) {
	remote := &fakeRemote{updateFn: func(id string, it item) (item, error) {
		it.Name = it.Name + " (normalized)"
		return it, nil
	}}
	e, store := newTestEditor(remote)

	rec, _ := store.Get("1")
	require.NoError(t, e.Open(rec))
	require.NoError(t, e.Set("name", "Intro"))
	require.NoError(t, e.Submit(context.Background()))

	stored, _ := store.Get("1")
	assert.Equal(t, "Intro (normalized)", stored.Name)
}

func TestEditor_UpdateFailure(t *testing.T) {
	remote := &fakeRemote{updateFn: func(string, item) (item, error) {
		return item{}, core.NewHTTPError(500, "")
	}}
	e, store := newTestEditor(remote)
	before := store.All()

	rec, _ := store.Get("2")
	require.NoError(t, e.Open(rec))
	require.NoError(t, e.Set("name", "Data Structures II"))

	err := e.Submit(context.Background())
	require.Error(t, err)
	assert.Equal(t, "Internal Server Error (500)", core.Message(err))

	assert.Equal(t, before, store.All())
	assert.Equal(t, Open, e.State())
	assert.Equal(t, err, e.Err())
	working, ok := e.Working()
	assert.True(t, ok)
	assert.Equal(t, "Data Structures II", working.Name, "the draft survives for a retry")
}

func TestEditor_UpdateMissingLocally(t *testing.T) {
	e, store := newTestEditor(&fakeRemote{})

	rec, _ := store.Get("2")
	require.NoError(t, e.Open(rec))
	require.True(t, store.RemoveByID("2"))
	before := store.All()

	err := e.Submit(context.Background())
	assert.ErrorIs(t, err, core.ErrLocalMismatch)
	assert.Equal(t, before, store.All())
	assert.Equal(t, Closed, e.State())
}

func TestEditor_UpdateAnsweredWithAnotherID(t *testing.T) {
	remote := &fakeRemote{updateFn: func(id string, it item) (item, error) {
		it.ID = "3"
		return it, nil
	}}
	e, store := newTestEditor(remote)
	before := store.All()

	rec, _ := store.Get("2")
	require.NoError(t, e.Open(rec))
	require.NoError(t, e.Set("name", "x"))

	err := e.Submit(context.Background())
	assert.ErrorIs(t, err, core.ErrLocalMismatch)
	assert.Equal(t, before, store.All())
	assert.Equal(t, Closed, e.State())
}

func TestEditor_Validation(t *testing.T) {
	remote := &fakeRemote{}
	res := itemResource
	res.Validate = func(it item) error {
		if it.Name == "" {
			return core.NewValidationError(nil, core.FieldError{Field: "name", Error: "this field is required"})
		}
		return nil
	}
	store := NewStore(sampleItems()...)
	e := NewEditor(res, store, remote)

	rec, _ := store.Get("1")
	require.NoError(t, e.Open(rec))
	require.NoError(t, e.Set("name", ""))

	err := e.Submit(context.Background())
	var verr *core.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "name: this field is required", err.Error())
	assert.Empty(t, remote.Calls(), "nothing is sent")
	assert.Equal(t, Open, e.State())
}

func TestEditor_Cancel(t *testing.T) {
	e, store := newTestEditor(&fakeRemote{})

	rec, _ := store.Get("1")
	require.NoError(t, e.Open(rec))
	require.NoError(t, e.Set("name", "changed"))
	require.NoError(t, e.Cancel())

	assert.Equal(t, Closed, e.State())
	assert.Equal(t, sampleItems(), store.All())
	_, ok := e.Working()
	assert.False(t, ok)
}

func TestEditor_OpenDiscardsPreviousDraft(t *testing.T) {
	e, store := newTestEditor(&fakeRemote{})

	first, _ := store.Get("1")
	second, _ := store.Get("2")
	require.NoError(t, e.Open(first))
	require.NoError(t, e.Set("name", "draft"))
	require.NoError(t, e.Open(second))

	working, _ := e.Working()
	assert.Equal(t, second, working)
	assert.Equal(t, "2", e.EditingID())
}

func TestEditor_Set(t *testing.T) {
	e, store := newTestEditor(&fakeRemote{})

	assert.ErrorIs(t, e.Set("name", "x"), ErrNotOpen)

	rec, _ := store.Get("1")
	require.NoError(t, e.Open(rec))
	assert.ErrorIs(t, e.Set("id", "99"), ErrReadOnlyField)
	assert.NoError(t, e.Set("program", "IT"))
}

func TestEditor_SubmitClosed(t *testing.T) {
	e, _ := newTestEditor(&fakeRemote{})
	assert.ErrorIs(t, e.Submit(context.Background()), ErrNotOpen)
}

func TestEditor_Create(t *testing.T) {
	t.Run("appends the created record and resets the draft", func(t *testing.T) {
		remote := &fakeRemote{}
		e, store := newTestEditor(remote)
		e.SetDefaults(item{Program: "CS"})

		require.NoError(t, e.OpenNew())
		assert.True(t, e.IsCreating())
		assert.Equal(t, "", e.EditingID())
		require.NoError(t, e.Set("name", "CS301"))
		require.NoError(t, e.Submit(context.Background()))

		assert.Equal(t, []string{"create"}, remote.Calls())
		assert.Equal(t, Closed, e.State())
		assert.Equal(t, 4, store.Len())
		created, ok := store.Get("new")
		require.True(t, ok)
		assert.Equal(t, item{ID: "new", Name: "CS301", Program: "CS"}, created)

		require.NoError(t, e.OpenNew())
		working, _ := e.Working()
		assert.Equal(t, item{Program: "CS"}, working)
	})

	t.Run("server id already listed replaces it", func(t *testing.T) {
		remote := &fakeRemote{createFn: func(it item) (item, error) {
			it.ID = "1"
			return it, nil
		}}
		e, store := newTestEditor(remote)

		require.NoError(t, e.OpenNew())
		require.NoError(t, e.Set("name", "again"))
		require.NoError(t, e.Submit(context.Background()))

		assert.Equal(t, 3, store.Len())
		rec, _ := store.Get("1")
		assert.Equal(t, "again", rec.Name)
	})

	t.Run("failure keeps the draft open", func(t *testing.T) {
		remote := &fakeRemote{createFn: func(item) (item, error) {
			return item{}, &core.NetworkError{Op: "POST /items", Err: errors.New("connection refused")}
		}}
		e, store := newTestEditor(remote)

		require.NoError(t, e.OpenNew())
		require.NoError(t, e.Set("name", "CS301"))
		err := e.Submit(context.Background())

		var nerr *core.NetworkError
		require.ErrorAs(t, err, &nerr)
		assert.Equal(t, Open, e.State())
		assert.True(t, e.IsCreating())
		assert.Equal(t, sampleItems(), store.All())
	})
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "closed", Closed.String())
	assert.Equal(t, "open", Open.String())
	assert.Equal(t, "submitting", Submitting.String())
}
