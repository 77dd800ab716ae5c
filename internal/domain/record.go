package domain

import (
	"math"
	"strconv"
	"strings"
)

// Record is one data row keyed by field name.
// Values are trimmed raw strings; numeric reads go through Num.
type Record map[string]string

// Get returns the raw value for field, or "" if the field is absent.
func (r Record) Get(field string) string {
	return r[field]
}

// Num reads field as a number using the coerce-or-zero rule.
func (r Record) Num(field string) float64 {
	return Coerce(r[field])
}

// RawTable is the parsed form of one delimited-text dataset.
type RawTable struct {
	Fields  []string // header order, as declared in the first line
	Records []Record // input row order
}

// Len returns the number of data records.
func (t *RawTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Records)
}

// HasField reports whether the header declares field.
func (t *RawTable) HasField(field string) bool {
	if t == nil {
		return false
	}
	for _, f := range t.Fields {
		if f == field {
			return true
		}
	}
	return false
}

// Coerce interprets s as a float using its longest leading numeric prefix.
// Empty, non-numeric, NaN and infinite results all yield exactly 0.
func Coerce(s string) float64 {
	prefix := numericPrefix(strings.TrimSpace(s))
	if prefix == "" {
		return 0
	}
	v, err := strconv.ParseFloat(prefix, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// numericPrefix returns the longest prefix of s shaped like
// [+-]digits[.digits][(e|E)[+-]digits], or "" if there is none.
func numericPrefix(s string) string {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}

	mantissa := 0
	for i < len(s) && isDigit(s[i]) {
		i++
		mantissa++
	}
	if i < len(s) && s[i] == '.' {
		j := i + 1
		frac := 0
		for j < len(s) && isDigit(s[j]) {
			j++
			frac++
		}
		if mantissa > 0 || frac > 0 {
			i = j
			mantissa += frac
		}
	}
	if mantissa == 0 {
		return ""
	}

	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		exp := 0
		for j < len(s) && isDigit(s[j]) {
			j++
			exp++
		}
		if exp > 0 {
			i = j
		}
	}
	return s[:i]
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
