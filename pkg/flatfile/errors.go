package flatfile

import (
	"errors"
	"fmt"
)

// ErrNotText marks input that cannot be interpreted as lines of text at all
// (NUL bytes or invalid UTF-8). It is always wrapped in a *LoadError.
var ErrNotText = errors.New("input is not line-oriented text")

// ErrFieldNotFound is returned by Record.Select when a requested field name
// does not exist in the record.
var ErrFieldNotFound = errors.New("field name not found")

// ConfigError reports an invalid field definition or definition set. It is
// returned at construction time and never during a successful load.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("invalid field definitions: %s", e.Reason)
	}
	return fmt.Sprintf("invalid field definition %q: %s", e.Field, e.Reason)
}

// LoadError is the single fatal error type of the load engine: the source
// could not be opened or read, its content is not text, or the definition
// set was invalid. No partial DataFile accompanies a LoadError.
type LoadError struct {
	Path string // source path, empty for reader-backed loads
	Line int    // 1-based line where the failure surfaced, 0 if not line-bound
	Err  error
}

func (e *LoadError) Error() string {
	switch {
	case e.Path != "" && e.Line > 0:
		return fmt.Sprintf("load %s: line %d: %v", e.Path, e.Line, e.Err)
	case e.Path != "":
		return fmt.Sprintf("load %s: %v", e.Path, e.Err)
	case e.Line > 0:
		return fmt.Sprintf("load: line %d: %v", e.Line, e.Err)
	default:
		return fmt.Sprintf("load: %v", e.Err)
	}
}

func (e *LoadError) Unwrap() error { return e.Err }
