package validation

import (
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Violations maps a field to the message describing why it was rejected.
type Violations map[string]string

func (v Violations) Empty() bool { return len(v) == 0 }

// Add records msg for field. The first violation recorded for a field wins.
func (v Violations) Add(field, msg string) {
	if _, ok := v[field]; !ok {
		v[field] = msg
	}
}

// First returns the message of the first field in order that has a violation.
func (v Violations) First(order ...string) string {
	for _, f := range order {
		if msg, ok := v[f]; ok {
			return msg
		}
	}
	for _, msg := range v {
		return msg
	}
	return ""
}

var validate = validator.New()

// check records msg for field when value fails the validator tag.
func check(field string, value any, tag, msg string, v Violations) {
	if err := validate.Var(value, tag); err != nil {
		v.Add(field, msg)
	}
}

// Basic validators
func Required(field, value, msg string, v Violations) {
	check(field, strings.TrimSpace(value), "required", msg, v)
}

// MinLen counts runes of the trimmed value.
func MinLen(field, value string, n int, msg string, v Violations) {
	check(field, strings.TrimSpace(value), "min="+strconv.Itoa(n), msg, v)
}

func MaxLen(field, value string, n int, msg string, v Violations) {
	check(field, value, "max="+strconv.Itoa(n), msg, v)
}

func PositiveFloat(field string, val float64, msg string, v Violations) {
	check(field, val, "gt=0", msg, v)
}

func Email(field, value, msg string, v Violations) {
	check(field, value, "required,email", msg, v)
}
