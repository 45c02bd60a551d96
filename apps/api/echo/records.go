package echoapi

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/schooladmin/core/collection"
	"github.com/trezcool/schooladmin/core/school"
)

type (
	recordService[T collection.Record] interface {
		Resource() collection.Resource[T]
		QueryAll(ctx context.Context) ([]T, error)
		GetByID(ctx context.Context, id string) (T, error)
		Create(ctx context.Context, rec T) (T, error)
		Update(ctx context.Context, id string, rec T) (T, error)
		Delete(ctx context.Context, id string) error
	}

	// expandFunc fills the derived fields of records before they are sent.
	expandFunc[T collection.Record] func(ctx context.Context, recs []T) error

	recordApi[T collection.Record] struct {
		svc    recordService[T]
		res    collection.Resource[T]
		expand expandFunc[T]
	}
)

// echoPath turns a `{id}` path template into an echo route.
func echoPath(tmpl string) string {
	return strings.ReplaceAll(tmpl, "{id}", ":id")
}

func registerRecordAPI[T collection.Record](e *echo.Echo, svc recordService[T], expand expandFunc[T]) {
	api := recordApi[T]{svc: svc, res: svc.Resource(), expand: expand}

	e.GET(api.res.ListPath, api.query)
	e.POST(api.res.CreatePath, api.create)
	e.GET(echoPath(api.res.UpdatePath), api.retrieve)
	e.PUT(echoPath(api.res.UpdatePath), api.update)
	e.DELETE(echoPath(api.res.DeletePath), api.destroy)
}

func (api *recordApi[T]) notFound(err error) error {
	if errors.Is(err, school.ErrNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, api.res.Title+" not found")
	}
	return err
}

func (api *recordApi[T]) expanded(ctx context.Context, recs ...T) ([]T, error) {
	if api.expand == nil {
		return recs, nil
	}
	if err := api.expand(ctx, recs); err != nil {
		return nil, errors.Wrapf(err, "expanding %s", api.res.Plural)
	}
	return recs, nil
}

func (api *recordApi[T]) bind(ctx echo.Context) (T, error) {
	var rec T
	if err := ctx.Bind(&rec); err != nil {
		return rec, err
	}
	return rec, nil
}

// Handlers

func (api *recordApi[T]) query(ctx echo.Context) error {
	c := ctx.Request().Context()
	recs, err := api.svc.QueryAll(c)
	if err != nil {
		return err
	}
	recs = collection.Apply(recs, api.res.Fields, bindQuery(ctx, api.res))
	if recs, err = api.expanded(c, recs...); err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, echo.Map{api.res.Plural: recs})
}

func (api *recordApi[T]) retrieve(ctx echo.Context) error {
	rec, err := api.svc.GetByID(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return api.notFound(err)
	}
	recs, err := api.expanded(ctx.Request().Context(), rec)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, echo.Map{api.res.Name: recs[0]})
}

func (api *recordApi[T]) create(ctx echo.Context) error {
	rec, err := api.bind(ctx)
	if err != nil {
		return err
	}
	if rec, err = api.svc.Create(ctx.Request().Context(), rec); err != nil {
		return errors.Wrapf(err, "creating %s", api.res.Name)
	}
	recs, err := api.expanded(ctx.Request().Context(), rec)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, recs[0])
}

func (api *recordApi[T]) update(ctx echo.Context) error {
	rec, err := api.bind(ctx)
	if err != nil {
		return err
	}
	if rec, err = api.svc.Update(ctx.Request().Context(), ctx.Param("id"), rec); err != nil {
		return api.notFound(err)
	}
	recs, err := api.expanded(ctx.Request().Context(), rec)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, recs[0])
}

func (api *recordApi[T]) destroy(ctx echo.Context) error {
	if err := api.svc.Delete(ctx.Request().Context(), ctx.Param("id")); err != nil {
		return api.notFound(err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// programNames sets the program name of courses from their program id.
func programNames(programs recordService[school.Program]) expandFunc[school.Course] {
	return func(ctx context.Context, courses []school.Course) error {
		progs, err := programs.QueryAll(ctx)
		if err != nil {
			return err
		}
		names := collection.Labels(progs, "program_id", "program_name")
		for i := range courses {
			if name, ok := names[courses[i].ProgramID]; ok {
				courses[i].ProgramName = name
			}
		}
		return nil
	}
}

func registerStatsAPI(e *echo.Echo, repo school.Repository) {
	e.GET(school.StatsPath, func(ctx echo.Context) error {
		stats, err := school.QueryStats(ctx.Request().Context(), repo)
		if err != nil {
			return err
		}
		return ctx.JSON(http.StatusOK, stats)
	})
}
