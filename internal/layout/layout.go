// Package layout reads fixed-width layout descriptions from YAML and turns
// them into field definition sets for the load engine. A layout names each
// field's position and, optionally, one of the built-in processors from
// pkg/flatfile/process.
package layout

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/maxwell-fr/ffreader/pkg/flatfile"
	"github.com/maxwell-fr/ffreader/pkg/flatfile/process"
)

type fieldSpec struct {
	Name      string   `yaml:"name"`
	Start     int      `yaml:"start"`
	Length    int      `yaml:"length"`
	Processor string   `yaml:"processor"`
	Values    []string `yaml:"values"`
}

type optionsSpec struct {
	KeepEmptyLines bool `yaml:"keep_empty_lines"`
	RuneSlicing    bool `yaml:"rune_slicing"`
}

type layoutSpec struct {
	Options optionsSpec `yaml:"options"`
	Fields  []fieldSpec `yaml:"fields"`
}

// ParseFile reads a YAML layout from path.
func ParseFile(path string) ([]flatfile.FieldDef, flatfile.Options, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, flatfile.Options{}, fmt.Errorf("failed to open layout file %s: %w", path, err)
	}
	defer file.Close()

	defs, opts, err := Parse(file)
	if err != nil {
		return nil, flatfile.Options{}, fmt.Errorf("layout file %s: %w", path, err)
	}
	return defs, opts, nil
}

// Parse decodes a YAML layout and builds the field definition set. Field
// bounds and name uniqueness are validated the same way direct NewFieldDef
// construction is.
func Parse(r io.Reader) ([]flatfile.FieldDef, flatfile.Options, error) {
	var spec layoutSpec
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&spec); err != nil {
		return nil, flatfile.Options{}, fmt.Errorf("failed to decode layout: %w", err)
	}

	defs := make([]flatfile.FieldDef, 0, len(spec.Fields))
	for _, fs := range spec.Fields {
		proc, err := lookupProcessor(fs)
		if err != nil {
			return nil, flatfile.Options{}, err
		}
		def, err := flatfile.NewFieldDef(fs.Name, fs.Start, fs.Length, proc)
		if err != nil {
			return nil, flatfile.Options{}, err
		}
		defs = append(defs, def)
	}
	if err := flatfile.ValidateDefs(defs); err != nil {
		return nil, flatfile.Options{}, err
	}

	opts := flatfile.Options{
		KeepEmptyLines: spec.Options.KeepEmptyLines,
		RuneSlicing:    spec.Options.RuneSlicing,
	}
	return defs, opts, nil
}

func lookupProcessor(fs fieldSpec) (flatfile.Processor, error) {
	switch fs.Processor {
	case "":
		return nil, nil
	case "trim":
		return process.Trim(), nil
	case "nonblank":
		return process.NonBlank(), nil
	case "digits":
		return process.Digits(), nil
	case "decimal":
		return process.Decimal(), nil
	case "oneof":
		if len(fs.Values) == 0 {
			return nil, fmt.Errorf("field %q: processor oneof requires a values list", fs.Name)
		}
		return process.OneOf(fs.Values...), nil
	default:
		return nil, fmt.Errorf("field %q: unknown processor %q", fs.Name, fs.Processor)
	}
}
