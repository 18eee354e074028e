package flatfile

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Field is one extracted name/value pair within a Record.
type Field struct {
	Name  string
	Value string
}

// Record is one parsed line: a mapping from field name to extracted value.
// Field order follows the FieldDef sequence the Loader was built with, not
// map iteration order.
type Record struct {
	line   int
	fields []Field
	index  map[string]int
}

func newRecord(line int, fields []Field) Record {
	index := make(map[string]int, len(fields))
	for i, f := range fields {
		index[f.Name] = i
	}
	return Record{line: line, fields: fields, index: index}
}

// Line returns the 1-based line number the record was parsed from.
func (r Record) Line() int { return r.line }

// Len returns the number of fields in the record.
func (r Record) Len() int { return len(r.fields) }

// Fields returns the record's fields in definition order.
func (r Record) Fields() []Field { return r.fields }

// Get looks up a field value by name.
func (r Record) Get(name string) (string, bool) {
	i, ok := r.index[name]
	if !ok {
		return "", false
	}
	return r.fields[i].Value, true
}

// Select returns a copy of the named fields in the order requested. Useful
// for building column-ordered output such as CSV. A name that is not part of
// the record fails with ErrFieldNotFound.
func (r Record) Select(names ...string) ([]Field, error) {
	out := make([]Field, 0, len(names))
	for _, name := range names {
		i, ok := r.index[name]
		if !ok {
			return nil, fmt.Errorf("select %q: %w", name, ErrFieldNotFound)
		}
		out = append(out, r.fields[i])
	}
	return out, nil
}

// MarshalJSON renders the record as a JSON object with keys in definition
// order, so serialized output is deterministic.
func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range r.fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(f.Name)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(f.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
