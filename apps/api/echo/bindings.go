package echoapi

import (
	"github.com/labstack/echo/v4"

	"github.com/trezcool/schooladmin/core/collection"
)

var searchParam = "search"

// bindQuery reads `?search=` and one equality filter per resource filter key (eg. `?program=CS`).
func bindQuery[T collection.Record](ctx echo.Context, res collection.Resource[T]) collection.Query {
	var q collection.Query
	data := ctx.QueryParams()
	if len(data) == 0 {
		return q
	}
	q.Search = data.Get(searchParam)
	for _, key := range res.Filters {
		if val := data.Get(key); val != "" {
			if q.Filters == nil {
				q.Filters = make(map[string]string, len(res.Filters))
			}
			q.Filters[key] = val
		}
	}
	return q
}
