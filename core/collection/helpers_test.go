package collection

import (
	"context"
	"sync"

	"github.com/pkg/errors"
)

type item struct {
	ID      string
	Name    string
	Program string
}

func (it item) RecordID() string { return it.ID }

func (it item) Field(key string) string {
	switch key {
	case "id":
		return it.ID
	case "name":
		return it.Name
	case "program":
		return it.Program
	}
	return ""
}

func setItem(it *item, key, value string) error {
	switch key {
	case "name":
		it.Name = value
	case "program":
		it.Program = value
	default:
		return errors.Errorf("unknown field %s", key)
	}
	return nil
}

var itemResource = Resource[item]{
	Name:       "item",
	Plural:     "items",
	NameField:  "name",
	ListPath:   "/items",
	CreatePath: "/items",
	UpdatePath: "/items/{id}",
	DeletePath: "/items/{id}",
	Fields: []Field{
		{Key: "id", Label: "ID"},
		{Key: "name", Label: "Name"},
		{Key: "program", Label: "Program"},
	},
	Filters:    []string{"program"},
	EditFields: []string{"name", "program"},
	Set:        setItem,
}

func sampleItems() []item {
	return []item{
		{ID: "1", Name: "CS101", Program: "CS"},
		{ID: "2", Name: "IT102", Program: "IT"},
		{ID: "3", Name: "CS201", Program: "CS"},
	}
}

// fakeRemote answers from its fields. When gate is set, every call signals started and
// then waits for gate before answering.
type fakeRemote struct {
	mu    sync.Mutex
	calls []string

	list      []item
	listErr   error
	createFn  func(item) (item, error)
	updateFn  func(id string, it item) (item, error)
	deleteErr error

	gate    chan struct{}
	started chan struct{}
}

func (r *fakeRemote) call(name string) {
	r.mu.Lock()
	r.calls = append(r.calls, name)
	gate, started := r.gate, r.started
	r.mu.Unlock()

	if gate != nil {
		if started != nil {
			started <- struct{}{}
		}
		<-gate
	}
}

func (r *fakeRemote) Calls() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.calls...)
}

func (r *fakeRemote) List(context.Context) ([]item, error) {
	r.call("list")
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]item(nil), r.list...), r.listErr
}

func (r *fakeRemote) Create(_ context.Context, it item) (item, error) {
	r.call("create")
	if r.createFn != nil {
		return r.createFn(it)
	}
	it.ID = "new"
	return it, nil
}

func (r *fakeRemote) Update(_ context.Context, id string, it item) (item, error) {
	r.call("update " + id)
	if r.updateFn != nil {
		return r.updateFn(id, it)
	}
	return it, nil
}

func (r *fakeRemote) Delete(_ context.Context, id string) error {
	r.call("delete " + id)
	return r.deleteErr
}

func confirmWith(answer bool, asked *[]string) ConfirmFunc {
	return func(_ context.Context, prompt string) (bool, error) {
		if asked != nil {
			*asked = append(*asked, prompt)
		}
		return answer, nil
	}
}
