// Package process provides ready-made field processors for the common
// clean-up and validation rules found in legacy fixed-width files: padding
// removal, numeric checks and enumerated values. All of them return
// flatfile.ProcessorFunc so they can be attached to a FieldDef directly or
// composed with Chain.
package process

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/maxwell-fr/ffreader/pkg/flatfile"
)

// Trim strips leading and trailing whitespace padding. Always accepts.
func Trim() flatfile.ProcessorFunc {
	return func(raw string) flatfile.Result {
		return flatfile.Accept(strings.TrimSpace(raw))
	}
}

// NonBlank accepts any value that contains at least one non-whitespace
// character and rejects blank ones.
func NonBlank() flatfile.ProcessorFunc {
	return func(raw string) flatfile.Result {
		if strings.TrimSpace(raw) == "" {
			return flatfile.Reject(fmt.Errorf("value is blank"))
		}
		return flatfile.Accept(raw)
	}
}

// Digits trims padding and requires the remainder to be all decimal digits.
// An empty (all-padding) value is accepted with a warning rather than
// rejected, since legacy files routinely leave numeric columns blank.
func Digits() flatfile.ProcessorFunc {
	return func(raw string) flatfile.Result {
		v := strings.TrimSpace(raw)
		if v == "" {
			return flatfile.AcceptWarning(v, "numeric field is blank")
		}
		for _, c := range v {
			if c < '0' || c > '9' {
				return flatfile.Reject(fmt.Errorf("not a digit string: %q", v))
			}
		}
		return flatfile.Accept(v)
	}
}

// Decimal trims padding and requires the remainder to parse as a decimal
// number. The parsed-and-reformatted text is not substituted; the trimmed
// original is kept so no precision is lost.
func Decimal() flatfile.ProcessorFunc {
	return func(raw string) flatfile.Result {
		v := strings.TrimSpace(raw)
		if v == "" {
			return flatfile.AcceptWarning(v, "decimal field is blank")
		}
		if _, err := strconv.ParseFloat(v, 64); err != nil {
			return flatfile.Reject(fmt.Errorf("not a decimal number: %q", v))
		}
		return flatfile.Accept(v)
	}
}

// OneOf trims padding and requires the remainder to be one of the allowed
// values. Anything else is rejected.
func OneOf(allowed ...string) flatfile.ProcessorFunc {
	set := make(map[string]bool, len(allowed))
	for _, a := range allowed {
		set[a] = true
	}
	return func(raw string) flatfile.Result {
		v := strings.TrimSpace(raw)
		if !set[v] {
			return flatfile.Reject(fmt.Errorf("value %q not in allowed set %v", v, allowed))
		}
		return flatfile.Accept(v)
	}
}

// Chain runs processors left to right, feeding each one the previous
// accepted value. The first rejection stops the chain; warnings from
// intermediate steps are kept, joined with "; ".
func Chain(procs ...flatfile.Processor) flatfile.ProcessorFunc {
	return func(raw string) flatfile.Result {
		value := raw
		var warnings []string
		for _, p := range procs {
			result := p.Process(value)
			if result.Err != nil {
				return result
			}
			if result.Warning != "" {
				warnings = append(warnings, result.Warning)
			}
			value = result.Value
		}
		if len(warnings) > 0 {
			return flatfile.AcceptWarning(value, strings.Join(warnings, "; "))
		}
		return flatfile.Accept(value)
	}
}
