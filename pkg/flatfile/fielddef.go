// Package flatfile extracts structured records from fixed-width flat text
// files. Callers describe where each field lives with a FieldDef set, then
// load a file with a Loader (or the TryLoad convenience). Per-field problems
// are accumulated as warnings on the returned DataFile; only source-level
// failures abort a load.
package flatfile

// FieldDef describes one field of a fixed-width layout: its name, the
// zero-based offset where it starts, how many characters it spans, and an
// optional post-processing hook. FieldDefs are immutable once constructed and
// may be shared across concurrent loads.
type FieldDef struct {
	name   string
	start  int
	length int
	proc   Processor
}

// NewFieldDef validates and builds a FieldDef. The processor may be nil, in
// which case the raw substring is stored verbatim. Returns a *ConfigError if
// the name is empty, start is negative or length is not positive.
func NewFieldDef(name string, start, length int, proc Processor) (FieldDef, error) {
	def := FieldDef{name: name, start: start, length: length, proc: proc}
	if err := def.validate(); err != nil {
		return FieldDef{}, err
	}
	return def, nil
}

// Name returns the field's identifier.
func (d FieldDef) Name() string { return d.name }

// Start returns the zero-based offset where the field begins.
func (d FieldDef) Start() int { return d.start }

// Length returns the number of characters the field spans.
func (d FieldDef) Length() int { return d.length }

func (d FieldDef) end() int { return d.start + d.length }

func (d FieldDef) validate() error {
	if d.name == "" {
		return &ConfigError{Field: d.name, Reason: "field name must not be empty"}
	}
	if d.start < 0 {
		return &ConfigError{Field: d.name, Reason: "start offset must not be negative"}
	}
	if d.length <= 0 {
		return &ConfigError{Field: d.name, Reason: "length must be greater than zero"}
	}
	return nil
}

// ValidateDefs checks a whole definition set: it must be non-empty, every
// definition must satisfy the per-field invariants, and no two definitions
// may share a name. The first violation is returned as a *ConfigError.
// NewLoader calls this on construction; the load engine re-checks it before
// reading any line.
func ValidateDefs(defs []FieldDef) error {
	if len(defs) == 0 {
		return &ConfigError{Reason: "field definition set must not be empty"}
	}
	seen := make(map[string]bool, len(defs))
	for _, def := range defs {
		if err := def.validate(); err != nil {
			return err
		}
		if seen[def.name] {
			return &ConfigError{Field: def.name, Reason: "duplicate field name"}
		}
		seen[def.name] = true
	}
	return nil
}
