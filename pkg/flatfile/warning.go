package flatfile

import "fmt"

// Warning is a non-fatal issue recorded while loading: the 1-based line it
// occurred on, the field it concerns (empty for line-level issues) and a
// human-readable message. Warnings never abort a load.
type Warning struct {
	Line    int
	Field   string
	Message string
}

func (w Warning) String() string {
	if w.Field == "" {
		return fmt.Sprintf("line %d: %s", w.Line, w.Message)
	}
	return fmt.Sprintf("line %d: field %q: %s", w.Line, w.Field, w.Message)
}
