package apisvc

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/trezcool/schooladmin/core"
)

// detailItem is one entry of a FastAPI validation error list.
type detailItem struct {
	Loc []interface{} `json:"loc"`
	Msg string        `json:"msg"`
}

// decodeError turns a non-2xx response into a *core.ValidationError (field details)
// or a *core.HTTPError carrying the server message.
func decodeError(status int, body []byte) error {
	body = bytes.TrimSpace(body)
	var obj map[string]json.RawMessage
	if len(body) == 0 || json.Unmarshal(body, &obj) != nil {
		return core.NewHTTPError(status, "")
	}

	for _, key := range []string{"detail", "error", "message"} {
		raw, ok := obj[key]
		if !ok {
			continue
		}
		var msg string
		if json.Unmarshal(raw, &msg) == nil {
			return core.NewHTTPError(status, msg)
		}
		var items []detailItem
		if json.Unmarshal(raw, &items) == nil && len(items) > 0 {
			return core.NewValidationError(nil, detailFields(items)...)
		}
	}

	if status == http.StatusBadRequest || status == http.StatusUnprocessableEntity {
		if flds := mapFields(obj); len(flds) > 0 {
			return core.NewValidationError(nil, flds...)
		}
	}
	return core.NewHTTPError(status, "")
}

// detailFields names each item after the last element of its location.
func detailFields(items []detailItem) []core.FieldError {
	flds := make([]core.FieldError, 0, len(items))
	for _, it := range items {
		var field string
		if n := len(it.Loc); n > 0 && !(n == 1 && it.Loc[0] == "body") {
			field = fmt.Sprint(it.Loc[n-1])
		}
		flds = append(flds, core.FieldError{Field: field, Error: it.Msg})
	}
	return flds
}

// mapFields reads `{"field": "msg"}` or `{"field": ["msg", ...]}` bodies, sorted by field.
func mapFields(obj map[string]json.RawMessage) []core.FieldError {
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	flds := make([]core.FieldError, 0, len(keys))
	for _, k := range keys {
		var msg string
		if json.Unmarshal(obj[k], &msg) == nil {
			flds = append(flds, core.FieldError{Field: k, Error: msg})
			continue
		}
		var msgs []string
		if json.Unmarshal(obj[k], &msgs) == nil && len(msgs) > 0 {
			flds = append(flds, core.FieldError{Field: k, Error: strings.Join(msgs, ", ")})
			continue
		}
		return nil // not a field map
	}
	return flds
}
