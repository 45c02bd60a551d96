package collection

import "strings"

// Query holds the free-text search and the field equality filters of a view.
// A filter with an empty value is inactive.
type Query struct {
	Search  string
	Filters map[string]string
}

// IsEmpty reports whether q imposes no constraint.
func (q Query) IsEmpty() bool {
	if q.Search != "" {
		return false
	}
	for _, v := range q.Filters {
		if v != "" {
			return false
		}
	}
	return true
}

func (q Query) clone() Query {
	c := Query{Search: q.Search}
	if q.Filters != nil {
		c.Filters = make(map[string]string, len(q.Filters))
		for k, v := range q.Filters {
			c.Filters[k] = v
		}
	}
	return c
}

// Matches reports whether rec satisfies the search text and every active filter.
func (q Query) Matches(rec Record, fields []Field) bool {
	for key, want := range q.Filters {
		if want != "" && rec.Field(key) != want {
			return false
		}
	}
	if q.Search == "" {
		return true
	}
	return strings.Contains(strings.ToLower(searchText(rec, fields)), strings.ToLower(q.Search))
}

// searchText joins all field values of rec with a single space.
func searchText(rec Record, fields []Field) string {
	var sb strings.Builder
	for i, f := range fields {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(rec.Field(f.Key))
	}
	return sb.String()
}

// Apply returns the records of snapshot matching q, in snapshot order.
// snapshot is never modified.
func Apply[T Record](snapshot []T, fields []Field, q Query) []T {
	out := make([]T, 0, len(snapshot))
	for _, rec := range snapshot {
		if q.Matches(rec, fields) {
			out = append(out, rec)
		}
	}
	return out
}

// Options returns the distinct non-empty values of key, in first-seen order.
func Options[T Record](records []T, key string) []string {
	seen := make(map[string]struct{})
	var opts []string
	for _, rec := range records {
		v := rec.Field(key)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		opts = append(opts, v)
	}
	return opts
}

// Labels maps the idKey value of every record to its labelKey value.
// Used to render reference ids (eg. program_id) as names.
func Labels[T Record](records []T, idKey, labelKey string) map[string]string {
	labels := make(map[string]string, len(records))
	for _, rec := range records {
		labels[rec.Field(idKey)] = rec.Field(labelKey)
	}
	return labels
}
