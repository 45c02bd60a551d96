package school_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/schooladmin/core"
	"github.com/trezcool/schooladmin/core/school"
	inmemdb "github.com/trezcool/schooladmin/storage/database/inmem"
)

func newServices(t *testing.T) (*school.Services, school.Repository) {
	repo := inmemdb.NewRecordRepository(inmemdb.Open())
	svcs := school.NewServices(repo, school.NewValidator())
	require.NoError(t, svcs.SeedSamples(context.Background()))
	return svcs, repo
}

func TestService(t *testing.T) {
	ctx := context.Background()
	svcs, repo := newServices(t)

	t.Run("query all", func(t *testing.T) {
		courses, err := svcs.Courses.QueryAll(ctx)
		require.NoError(t, err)
		assert.Equal(t, school.SampleCourses, courses)
	})

	t.Run("create assigns an id", func(t *testing.T) {
		created, err := svcs.Programs.Create(ctx, school.Program{Name: "Nursing", ReqCredits: 120})
		require.NoError(t, err)
		assert.NotEmpty(t, created.ID)

		got, err := svcs.Programs.GetByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, created, got)
	})

	t.Run("create validates", func(t *testing.T) {
		_, err := svcs.Programs.Create(ctx, school.Program{})
		var verr *core.ValidationError
		assert.ErrorAs(t, err, &verr)
	})

	t.Run("update replaces the whole record", func(t *testing.T) {
		upd := school.SampleTeachers[0]
		upd.ID = "ignored"
		upd.Phone = ""
		upd.Department = "Computing"

		saved, err := svcs.Teachers.Update(ctx, school.SampleTeachers[0].ID, upd)
		require.NoError(t, err)
		assert.Equal(t, school.SampleTeachers[0].ID, saved.ID)

		got, err := svcs.Teachers.GetByID(ctx, saved.ID)
		require.NoError(t, err)
		assert.Equal(t, "Computing", got.Department)
		assert.Empty(t, got.Phone)
	})

	t.Run("update unknown id", func(t *testing.T) {
		_, err := svcs.Sections.Update(ctx, "nope", school.SampleSections[0])
		assert.ErrorIs(t, err, school.ErrNotFound)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, svcs.Students.Delete(ctx, school.SampleStudents[0].ID))
		_, err := svcs.Students.GetByID(ctx, school.SampleStudents[0].ID)
		assert.ErrorIs(t, err, school.ErrNotFound)
		assert.ErrorIs(t, svcs.Students.Delete(ctx, school.SampleStudents[0].ID), school.ErrNotFound)
	})

	t.Run("stats", func(t *testing.T) {
		stats, err := school.QueryStats(ctx, repo)
		require.NoError(t, err)
		assert.Equal(t, school.Stats{Students: 0, Teachers: 1, Courses: 2}, stats)
	})

	t.Run("seeding twice is a no-op", func(t *testing.T) {
		require.NoError(t, svcs.SeedSamples(ctx))
		n, err := repo.Count(ctx, school.CourseResource)
		require.NoError(t, err)
		assert.Equal(t, len(school.SampleCourses), n)
	})
}
