package flatfile

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"unicode/utf8"
)

// Options control the load policies the layout itself cannot decide.
type Options struct {
	// KeepEmptyLines makes empty input lines produce an all-placeholder
	// record (every field warned as missing). When false, empty lines are
	// skipped entirely. Default: skip.
	KeepEmptyLines bool

	// RuneSlicing switches field offsets from byte positions to rune
	// positions, for layouts measured in characters over non-ASCII content.
	// Default: byte offsets, matching ASCII fixed-width files.
	RuneSlicing bool
}

// maxLineSize bounds a single input line; flat files from legacy systems stay
// far below this.
const maxLineSize = 1024 * 1024

// Loader is the load engine: a validated field definition set plus options.
// A Loader is immutable and safe for concurrent use on disjoint sources.
type Loader struct {
	defs []FieldDef
	opts Options
}

// NewLoader validates the definition set and builds a Loader. Violations are
// reported as a *ConfigError before any file is touched.
func NewLoader(defs []FieldDef, opts Options) (*Loader, error) {
	if err := ValidateDefs(defs); err != nil {
		return nil, err
	}
	copied := make([]FieldDef, len(defs))
	copy(copied, defs)
	return &Loader{defs: copied, opts: opts}, nil
}

// TryLoad opens path and extracts one record per line using defs, with
// default options. It is the one-call entry point; use NewLoader directly to
// control empty-line or slicing policy.
func TryLoad(defs []FieldDef, path string) (*DataFile, error) {
	loader, err := NewLoader(defs, Options{})
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	return loader.Load(path)
}

// Load opens the file at path and processes it line by line. The file handle
// is released before Load returns, on success and failure alike. On fatal
// conditions a *LoadError is returned and no partial DataFile is produced.
func (l *Loader) Load(path string) (*DataFile, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	defer file.Close()

	df, err := l.LoadReader(file)
	if err != nil {
		if le, ok := err.(*LoadError); ok {
			le.Path = path
		}
		return nil, err
	}
	return df, nil
}

// LoadReader processes an abstracted line source. The source is consumed in
// a single synchronous pass and never restarted.
func (l *Loader) LoadReader(r io.Reader) (*DataFile, error) {
	// Defensive re-check; NewLoader already validated the set.
	if err := ValidateDefs(l.defs); err != nil {
		return nil, &LoadError{Err: err}
	}

	df := &DataFile{}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		raw := scanner.Bytes()
		if bytes.IndexByte(raw, 0) >= 0 || !utf8.Valid(raw) {
			return nil, &LoadError{Line: lineNo, Err: ErrNotText}
		}

		line := scanner.Text()
		if line == "" && !l.opts.KeepEmptyLines {
			continue
		}
		record, warnings := l.parseLine(lineNo, line)
		df.records = append(df.records, record)
		df.warnings = append(df.warnings, warnings...)
	}
	if err := scanner.Err(); err != nil {
		return nil, &LoadError{Line: lineNo, Err: err}
	}

	return df, nil
}

// parseLine extracts every defined field from one line. Field problems are
// recovered locally: the record always carries an entry per definition, with
// an empty placeholder and a warning where extraction or processing failed.
func (l *Loader) parseLine(lineNo int, line string) (Record, []Warning) {
	var runes []rune
	size := len(line)
	if l.opts.RuneSlicing {
		runes = []rune(line)
		size = len(runes)
	}

	fields := make([]Field, 0, len(l.defs))
	var warnings []Warning

	for _, def := range l.defs {
		if def.end() > size {
			fields = append(fields, Field{Name: def.name})
			warnings = append(warnings, Warning{
				Line:    lineNo,
				Field:   def.name,
				Message: fmt.Sprintf("truncated or missing: line has %d characters, field needs [%d, %d)", size, def.start, def.end()),
			})
			continue
		}

		var raw string
		if l.opts.RuneSlicing {
			raw = string(runes[def.start:def.end()])
		} else {
			raw = line[def.start:def.end()]
		}

		if def.proc == nil {
			fields = append(fields, Field{Name: def.name, Value: raw})
			continue
		}

		result := def.proc.Process(raw)
		switch {
		case result.Err != nil:
			fields = append(fields, Field{Name: def.name})
			warnings = append(warnings, Warning{
				Line:    lineNo,
				Field:   def.name,
				Message: fmt.Sprintf("rejected value %q: %v", raw, result.Err),
			})
		case result.Warning != "":
			fields = append(fields, Field{Name: def.name, Value: result.Value})
			warnings = append(warnings, Warning{Line: lineNo, Field: def.name, Message: result.Warning})
		default:
			fields = append(fields, Field{Name: def.name, Value: result.Value})
		}
	}

	return newRecord(lineNo, fields), warnings
}
