package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/pkg/errors"
	"github.com/pmezard/go-difflib/difflib"

	"github.com/trezcool/schooladmin/core/collection"
	"github.com/trezcool/schooladmin/core/school"
	apisvc "github.com/trezcool/schooladmin/services/api"
)

// suggestionRatio is the minimum similarity for a resource name to be suggested.
const suggestionRatio = 0.6

type recordCommands interface {
	list(ctx context.Context, search string, filters pairs) error
	create(ctx context.Context, sets pairs) error
	edit(ctx context.Context, id string, sets pairs) error
	remove(ctx context.Context, id string) error
}

// recordCmd runs one command on a collection view, the way an admin page would.
type recordCmd[T collection.Record] struct {
	view *collection.View[T]
	out  io.Writer
}

func newRecordCmd[T collection.Record](cli *commandLine, res collection.Resource[T], confirm collection.ConfirmFunc) *recordCmd[T] {
	client := apisvc.NewClient(cli.api, res)
	view := collection.NewView(res, client, collection.ViewOptions{Confirm: confirm, Logger: cli.logger})
	return &recordCmd[T]{view: view, out: cli.out}
}

// records returns the commands of the resource called name (singular or plural).
func (cli *commandLine) records(name string, confirm collection.ConfirmFunc) (recordCommands, error) {
	switch strings.TrimSuffix(strings.ToLower(name), "s") {
	case school.CourseResource:
		return newRecordCmd(cli, school.Courses(cli.val), confirm), nil
	case school.StudentResource:
		return newRecordCmd(cli, school.Students(cli.val), confirm), nil
	case school.TeacherResource:
		return newRecordCmd(cli, school.Teachers(cli.val), confirm), nil
	case school.SectionResource:
		return newRecordCmd(cli, school.Sections(cli.val), confirm), nil
	case school.ProgramResource:
		return newRecordCmd(cli, school.Programs(cli.val), confirm), nil
	}
	return nil, unknownResource(name)
}

func unknownResource(name string) error {
	var (
		best      string
		bestRatio float64
	)
	for _, res := range school.ResourceNames {
		ratio := difflib.NewMatcher(strings.Split(strings.ToLower(name), ""), strings.Split(res, "")).Ratio()
		if ratio > bestRatio {
			best, bestRatio = res, ratio
		}
	}
	if bestRatio >= suggestionRatio {
		return errors.Errorf("unknown resource %q, did you mean %q?", name, best)
	}
	return errors.Errorf("unknown resource %q", name)
}

func (c *recordCmd[T]) list(ctx context.Context, search string, filters pairs) error {
	if err := c.view.Load(ctx); err != nil {
		return err
	}
	c.view.SetSearch(search)
	for _, f := range filters {
		if err := c.view.SetFilter(f.key, f.value); err != nil {
			return err
		}
	}

	visible := c.view.Visible()
	if err := c.print(visible...); err != nil {
		return err
	}
	_, err := fmt.Fprintf(c.out, "%d of %d %s\n", len(visible), len(c.view.Snapshot()), c.view.Resource().Plural)
	return err
}

func (c *recordCmd[T]) setAll(sets pairs) error {
	for _, kv := range sets {
		if err := c.view.Set(kv.key, kv.value); err != nil {
			return err
		}
	}
	return nil
}

func (c *recordCmd[T]) create(ctx context.Context, sets pairs) error {
	if err := c.view.BeginCreate(); err != nil {
		return err
	}
	if err := c.setAll(sets); err != nil {
		return err
	}
	if err := c.view.Submit(ctx); err != nil {
		return err
	}

	fmt.Fprintf(c.out, "%s created.\n", c.view.Resource().Title)
	snap := c.view.Snapshot()
	if len(snap) == 0 {
		return nil
	}
	return c.print(snap[len(snap)-1])
}

func (c *recordCmd[T]) edit(ctx context.Context, id string, sets pairs) error {
	if err := c.view.Load(ctx); err != nil {
		return err
	}
	if err := c.view.BeginEdit(id); err != nil {
		return err
	}
	if err := c.setAll(sets); err != nil {
		return err
	}
	if err := c.view.Submit(ctx); err != nil {
		return err
	}

	fmt.Fprintf(c.out, "%s updated.\n", c.view.Resource().Title)
	for _, rec := range c.view.Snapshot() {
		if rec.RecordID() == id {
			return c.print(rec)
		}
	}
	return nil
}

func (c *recordCmd[T]) remove(ctx context.Context, id string) error {
	if err := c.view.Load(ctx); err != nil {
		return err
	}
	deleted, err := c.view.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		_, err = fmt.Fprintln(c.out, "Cancelled.")
		return err
	}
	_, err = fmt.Fprintf(c.out, "%s %s deleted.\n", c.view.Resource().Title, id)
	return err
}

// print renders recs as a table of the resource fields.
func (c *recordCmd[T]) print(recs ...T) error {
	fields := c.view.Resource().Fields
	w := tabwriter.NewWriter(c.out, 0, 0, 2, ' ', 0)

	cols := make([]string, 0, len(fields))
	for _, f := range fields {
		cols = append(cols, f.Label)
	}
	fmt.Fprintln(w, strings.Join(cols, "\t"))

	for _, rec := range recs {
		cols = cols[:0]
		for _, f := range fields {
			cols = append(cols, rec.Field(f.Key))
		}
		fmt.Fprintln(w, strings.Join(cols, "\t"))
	}
	return w.Flush()
}
