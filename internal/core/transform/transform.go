// Package transform implements the stem rewriting rules.
//
// Every rule is a pure function from the old stem to a new stem. Rules never
// see the extension; the caller reattaches it unchanged.
package transform

import (
	"fmt"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/Ning0612/fdname/internal/core/namehash"
	"github.com/Ning0612/fdname/internal/domain"
)

// Prefix returns p + stem
func Prefix(stem, p string) string {
	return p + stem
}

// Suffix returns stem + s
func Suffix(stem, s string) string {
	return stem + s
}

// Replace substitutes every non-overlapping literal occurrence of old, left to right
func Replace(stem, old, new string) string {
	return strings.ReplaceAll(stem, old, new)
}

// Remove deletes every occurrence of sub
func Remove(stem, sub string) string {
	return Replace(stem, sub, "")
}

// Hash returns the decimal 64-bit hash of the stem text
func Hash(stem string, calc namehash.Calculator) string {
	return calc.Calculate(stem)
}

// Lowercase applies simple lower case mapping
func Lowercase(stem string) string {
	return strings.ToLower(stem)
}

// Uppercase applies simple upper case mapping
func Uppercase(stem string) string {
	return strings.ToUpper(stem)
}

// Whitespace deletes every whitespace rune
func Whitespace(stem string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, stem)
}

// Transformer rewrites stems
type Transformer interface {
	// Apply returns the new stem, or ok=false when the result is not a legal stem
	Apply(stem string) (newStem string, ok bool)
}

// Rule dispatches a domain.Transform over the closed set of kinds
type Rule struct {
	spec domain.Transform
	hash namehash.Calculator
}

// New creates a rule from a validated transform.
// calc is only used by the hash kind; nil selects the default algorithm.
func New(t domain.Transform, calc namehash.Calculator) (*Rule, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	if calc == nil {
		calc = namehash.NewDefaultCalculator()
	}
	return &Rule{spec: t, hash: calc}, nil
}

// Kind returns the transform kind of the rule
func (r *Rule) Kind() domain.TransformKind {
	return r.spec.Kind
}

// Apply implements the Transformer interface
func (r *Rule) Apply(stem string) (string, bool) {
	var out string
	switch r.spec.Kind {
	case domain.TransformPrefix:
		out = Prefix(stem, r.spec.New)
	case domain.TransformSuffix:
		out = Suffix(stem, r.spec.New)
	case domain.TransformReplace:
		out = Replace(stem, r.spec.Old, r.spec.New)
	case domain.TransformRemove:
		out = Remove(stem, r.spec.Old)
	case domain.TransformHash:
		out = Hash(stem, r.hash)
	case domain.TransformLowercase:
		out = Lowercase(stem)
	case domain.TransformUppercase:
		out = Uppercase(stem)
	case domain.TransformWhitespace:
		out = Whitespace(stem)
	default:
		panic(fmt.Sprintf("transform: unhandled kind %q", r.spec.Kind))
	}
	return out, isLegalStem(out)
}

// isLegalStem rejects results that cannot be used as the stem of a sibling
func isLegalStem(stem string) bool {
	return stem != "" && !strings.ContainsAny(stem, "/\x00"+string(filepath.Separator))
}
