// Package toolutil provides shared helpers for the go_blog MCP tools.
package toolutil

import (
	"errors"
	"strings"
)

// ErrRequired is wrapped by Required for every missing field.
var ErrRequired = errors.New("required")

// Field is a named tool input.
type Field struct {
	Name  string
	Value string
}

// Required returns one error naming every blank field, e.g.
// "video_url and repo are required".
func Required(fields ...Field) error {
	var missing []string
	for _, f := range fields {
		if strings.TrimSpace(f.Value) == "" {
			missing = append(missing, f.Name)
		}
	}
	switch len(missing) {
	case 0:
		return nil
	case 1:
		return &requiredError{msg: missing[0] + " is required"}
	default:
		last := len(missing) - 1
		return &requiredError{msg: strings.Join(missing[:last], ", ") + " and " + missing[last] + " are required"}
	}
}

type requiredError struct{ msg string }

func (e *requiredError) Error() string { return e.msg }
func (e *requiredError) Unwrap() error { return ErrRequired }
