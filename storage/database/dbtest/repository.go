// Package dbtest checks school.Repository implementations against one shared behaviour.
package dbtest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/schooladmin/core/school"
)

// RunRepositoryTests runs the shared repository tests; newRepo must return an empty repository.
func RunRepositoryTests(t *testing.T, newRepo func(t *testing.T) school.Repository) {
	ctx := context.Background()

	t.Run("insert then list keeps insertion order", func(t *testing.T) {
		repo := newRepo(t)
		require.NoError(t, repo.Insert(ctx, "course", "b", []byte(`{"course_id":"b"}`)))
		require.NoError(t, repo.Insert(ctx, "course", "a", []byte(`{"course_id":"a"}`)))
		require.NoError(t, repo.Insert(ctx, "student", "a", []byte(`{"student_id":"a"}`)))

		docs, err := repo.List(ctx, "course")
		require.NoError(t, err)
		require.Len(t, docs, 2)
		assert.JSONEq(t, `{"course_id":"b"}`, string(docs[0]))
		assert.JSONEq(t, `{"course_id":"a"}`, string(docs[1]))
	})

	t.Run("list of an unknown resource is empty", func(t *testing.T) {
		docs, err := newRepo(t).List(ctx, "course")
		require.NoError(t, err)
		assert.Empty(t, docs)
	})

	t.Run("insert refuses an existing id", func(t *testing.T) {
		repo := newRepo(t)
		require.NoError(t, repo.Insert(ctx, "course", "a", []byte(`{}`)))
		assert.ErrorIs(t, repo.Insert(ctx, "course", "a", []byte(`{}`)), school.ErrIDExists)
	})

	t.Run("get", func(t *testing.T) {
		repo := newRepo(t)
		require.NoError(t, repo.Insert(ctx, "course", "a", []byte(`{"course_id":"a"}`)))

		doc, err := repo.Get(ctx, "course", "a")
		require.NoError(t, err)
		assert.JSONEq(t, `{"course_id":"a"}`, string(doc))

		_, err = repo.Get(ctx, "student", "a")
		assert.ErrorIs(t, err, school.ErrNotFound)
	})

	t.Run("update replaces in place", func(t *testing.T) {
		repo := newRepo(t)
		require.NoError(t, repo.Insert(ctx, "course", "a", []byte(`{"n":1}`)))
		require.NoError(t, repo.Insert(ctx, "course", "b", []byte(`{"n":2}`)))
		require.NoError(t, repo.Update(ctx, "course", "a", []byte(`{"n":3}`)))

		docs, err := repo.List(ctx, "course")
		require.NoError(t, err)
		require.Len(t, docs, 2)
		assert.JSONEq(t, `{"n":3}`, string(docs[0]))

		assert.ErrorIs(t, repo.Update(ctx, "course", "zz", []byte(`{}`)), school.ErrNotFound)
	})

	t.Run("delete", func(t *testing.T) {
		repo := newRepo(t)
		require.NoError(t, repo.Insert(ctx, "course", "a", []byte(`{}`)))
		require.NoError(t, repo.Insert(ctx, "course", "b", []byte(`{}`)))
		require.NoError(t, repo.Delete(ctx, "course", "a"))

		n, err := repo.Count(ctx, "course")
		require.NoError(t, err)
		assert.Equal(t, 1, n)
		assert.ErrorIs(t, repo.Delete(ctx, "course", "a"), school.ErrNotFound)
	})

	t.Run("count per resource", func(t *testing.T) {
		repo := newRepo(t)
		require.NoError(t, repo.Insert(ctx, "teacher", "a", []byte(`{}`)))
		require.NoError(t, repo.Insert(ctx, "teacher", "b", []byte(`{}`)))
		require.NoError(t, repo.Insert(ctx, "course", "a", []byte(`{}`)))

		n, err := repo.Count(ctx, "teacher")
		require.NoError(t, err)
		assert.Equal(t, 2, n)

		n, err = repo.Count(ctx, "student")
		require.NoError(t, err)
		assert.Equal(t, 0, n)
	})
}
