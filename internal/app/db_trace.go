package app

import "strings"

const maxTracedQueryLen = 512

// formatDBQueryForTrace collapses whitespace and caps the statement so
// the querybuilder's multi-line SQL stays readable as a span attribute.
func formatDBQueryForTrace(query string) string {
	compact := strings.Join(strings.Fields(query), " ")
	if len(compact) > maxTracedQueryLen {
		return compact[:maxTracedQueryLen] + "..."
	}
	return compact
}
