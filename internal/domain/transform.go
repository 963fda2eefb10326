package domain

import (
	"fmt"
	"path/filepath"
	"strings"
)

// TransformKind selects the naming rule applied to each entry
type TransformKind string

const (
	TransformPrefix     TransformKind = "prefix"
	TransformSuffix     TransformKind = "suffix"
	TransformReplace    TransformKind = "replace"
	TransformRemove     TransformKind = "remove"
	TransformHash       TransformKind = "hash"
	TransformLowercase  TransformKind = "lowercase"
	TransformUppercase  TransformKind = "uppercase"
	TransformWhitespace TransformKind = "whitespace"
)

// TransformKinds lists every kind in command order
var TransformKinds = []TransformKind{
	TransformPrefix,
	TransformSuffix,
	TransformReplace,
	TransformRemove,
	TransformHash,
	TransformLowercase,
	TransformUppercase,
	TransformWhitespace,
}

// IsValid checks if the transform kind is a known value
func (k TransformKind) IsValid() bool {
	switch k {
	case TransformPrefix, TransformSuffix, TransformReplace, TransformRemove,
		TransformHash, TransformLowercase, TransformUppercase, TransformWhitespace:
		return true
	}
	return false
}

// Arity returns the minimum and maximum number of string arguments
func (k TransformKind) Arity() (min, max int) {
	switch k {
	case TransformPrefix, TransformSuffix, TransformRemove:
		return 1, 1
	case TransformReplace:
		return 1, 2
	default:
		return 0, 0
	}
}

// Transform is the selected naming rule and its arguments
type Transform struct {
	Kind TransformKind

	// Old is the substring searched for by replace and remove
	Old string

	// New is the text inserted by prefix, suffix and replace
	New string
}

// NewTransform builds a transform from a kind and its positional arguments
func NewTransform(kind TransformKind, args ...string) (Transform, error) {
	if !kind.IsValid() {
		return Transform{}, fmt.Errorf("%w: unknown kind %q", ErrInvalidTransform, kind)
	}
	min, max := kind.Arity()
	if len(args) < min || len(args) > max {
		return Transform{}, fmt.Errorf("%w: %s takes %d to %d arguments, got %d",
			ErrInvalidTransform, kind, min, max, len(args))
	}

	t := Transform{Kind: kind}
	switch kind {
	case TransformPrefix, TransformSuffix:
		t.New = args[0]
	case TransformRemove:
		t.Old = args[0]
	case TransformReplace:
		t.Old = args[0]
		if len(args) == 2 {
			t.New = args[1]
		}
	}
	return t, t.Validate()
}

// Validate checks if the transform can produce sibling names
func (t Transform) Validate() error {
	if !t.Kind.IsValid() {
		return fmt.Errorf("%w: unknown kind %q", ErrInvalidTransform, t.Kind)
	}
	// An empty search string would match between every rune; remove "" is a no-op instead
	if t.Kind == TransformReplace && t.Old == "" {
		return fmt.Errorf("%w: %s needs a non-empty search string", ErrInvalidTransform, t.Kind)
	}
	// A separator would move the entry instead of renaming it in place
	if containsSeparator(t.New) {
		return fmt.Errorf("%w: %q contains a path separator", ErrInvalidTransform, t.New)
	}
	return nil
}

func containsSeparator(s string) bool {
	return strings.ContainsAny(s, "/"+string(filepath.Separator))
}
