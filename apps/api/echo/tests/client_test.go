package tests

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/schooladmin/core"
	"github.com/trezcool/schooladmin/core/collection"
	"github.com/trezcool/schooladmin/core/school"
	apisvc "github.com/trezcool/schooladmin/services/api"
)

func yes(context.Context, string) (bool, error) { return true, nil }

// newStudentsView returns a students view talking to a live server.
func newStudentsView(t *testing.T) (*collection.View[school.Student], testApp) {
	app := setup(t)
	srv := httptest.NewServer(app)
	t.Cleanup(srv.Close)

	res := school.Students(school.NewValidator())
	client := apisvc.NewClient(apisvc.New(srv.URL, apisvc.Options{}), res)
	view := collection.NewView(res, client, collection.ViewOptions{Confirm: yes})
	require.NoError(t, view.Load(context.Background()))
	return view, app
}

func TestView_AgainstServer(t *testing.T) {
	ctx := context.Background()
	view, _ := newStudentsView(t)
	require.Len(t, view.Snapshot(), 1)

	// create
	require.NoError(t, view.BeginCreate())
	require.NoError(t, view.Set("name", "Ada Reyes"))
	require.NoError(t, view.Set("email", "ada@example.com"))
	require.NoError(t, view.Set("year_level", "2"))
	require.NoError(t, view.Submit(ctx))

	snap := view.Snapshot()
	require.Len(t, snap, 2)
	created := snap[1]
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "Ada Reyes", created.Name)

	// update
	require.NoError(t, view.BeginEdit(created.ID))
	require.NoError(t, view.Set("status", school.StatusGraduated))
	require.NoError(t, view.Submit(ctx))
	state, _, _ := view.EditorState()
	assert.Equal(t, collection.Closed, state)
	assert.Equal(t, school.StatusGraduated, view.Snapshot()[1].Status)

	// search and filter run locally
	view.SetSearch("ada")
	assert.Len(t, view.Visible(), 1)
	view.SetSearch("")
	require.NoError(t, view.SetFilter("status", school.StatusActive))
	assert.Equal(t, []school.Student{school.SampleStudents[0]}, view.Visible())
	view.ClearFilters()

	// delete
	deleted, err := view.Delete(ctx, "S001")
	require.NoError(t, err)
	assert.True(t, deleted)
	snap = view.Snapshot()
	require.Len(t, snap, 1)
	assert.Equal(t, created.ID, snap[0].ID)
}

func TestView_ServerRejections(t *testing.T) {
	ctx := context.Background()
	view, app := newStudentsView(t)

	t.Run("invalid draft keeps the editor open", func(t *testing.T) {
		require.NoError(t, view.BeginEdit("S001"))
		require.NoError(t, view.Set("status", "Dropped"))
		err := view.Submit(ctx)

		var verr *core.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "status", verr.Fields[0].Field)
		state, draft, _ := view.EditorState()
		assert.Equal(t, collection.Open, state)
		assert.Equal(t, "Dropped", draft.Status)
		require.NoError(t, view.Cancel())
	})

	t.Run("record deleted elsewhere", func(t *testing.T) {
		require.NoError(t, app.repo.Delete(ctx, school.StudentResource, "S001"))

		deleted, err := view.Delete(ctx, "S001")
		assert.False(t, deleted)
		assert.True(t, core.IsNotFound(err))
		assert.Equal(t, "Student not found", core.Message(err))
		assert.Len(t, view.Snapshot(), 1)

		require.NoError(t, view.Load(ctx))
		assert.Empty(t, view.Snapshot())
	})
}
