package core

import "strings"

// CleanString trims all leading and trailing whitespace in `s` and optionally lowers it.
func CleanString(s string, lower ...bool) string {
	s = strings.TrimSpace(s)
	if len(lower) > 0 && lower[0] {
		return strings.ToLower(s)
	}
	return s
}

// FillPath replaces the `{id}` placeholder of a resource path template.
func FillPath(tmpl, id string) string {
	return strings.ReplaceAll(tmpl, "{id}", id)
}
