// Package table parses the dashboard's delimited-text datasets.
//
// The format is deliberately the simplest positional comma split: there is
// no quoting and no escaping, so an embedded comma always starts a new column.
package table

import (
	"strings"
	"unicode"

	"allocation-dashboard/internal/domain"
)

// Parse converts delimited text into a RawTable.
// Empty input yields an empty table rather than an error.
func Parse(text string) *domain.RawTable {
	trimmed := trim(text)
	if trimmed == "" {
		return &domain.RawTable{}
	}

	lines := splitLines(trimmed)
	fields := splitTrimmed(lines[0])

	records := make([]domain.Record, 0, len(lines)-1)
	for _, line := range lines[1:] {
		records = append(records, parseRow(fields, line))
	}

	return &domain.RawTable{
		Fields:  fields,
		Records: records,
	}
}

// parseRow maps columns onto fields by position.
// Missing trailing columns become "", extra columns are dropped,
// and a repeated field name keeps the value of its last column.
func parseRow(fields []string, line string) domain.Record {
	cols := strings.Split(line, ",")
	rec := make(domain.Record, len(fields))
	for idx, f := range fields {
		v := ""
		if idx < len(cols) {
			v = trim(cols[idx])
		}
		rec[f] = v
	}
	return rec
}

// splitLines splits on "\n" and "\r\n". A lone "\r" is not a line break.
func splitLines(s string) []string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}

func splitTrimmed(line string) []string {
	parts := strings.Split(line, ",")
	for i, p := range parts {
		parts[i] = trim(p)
	}
	return parts
}

// trim strips surrounding whitespace. A byte order mark counts as
// whitespace, so a BOM-prefixed file keeps its first header name intact.
func trim(s string) string {
	return strings.TrimFunc(s, isSpace)
}

func isSpace(r rune) bool {
	return r == '\ufeff' || unicode.IsSpace(r)
}
