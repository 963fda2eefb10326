package logger

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"unicode"
)

// Sanitizer neutralizes logged text.
//
// Filenames are attacker controlled: a name containing a newline or an ANSI
// escape could forge log lines or rewrite the terminal. Every string value,
// and the message itself, has its control characters escaped. Additional
// regexp rules can be registered with AddRule.
type Sanitizer struct {
	mu       sync.RWMutex
	patterns []SanitizeRule
}

// SanitizeRule is a single replacement rule
type SanitizeRule struct {
	Pattern     *regexp.Regexp
	Replacement string
}

// NewSanitizer creates a sanitizer with no extra rules
func NewSanitizer() *Sanitizer {
	return &Sanitizer{}
}

// Sanitize escapes control characters and applies the registered rules
func (s *Sanitizer) Sanitize(input string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := escapeControl(input)
	for _, rule := range s.patterns {
		result = rule.Pattern.ReplaceAllString(result, rule.Replacement)
	}
	return result
}

// SanitizeArgs sanitizes the values of key-value logging arguments.
// Values that are neither strings nor errors are left as is.
func (s *Sanitizer) SanitizeArgs(args []any) []any {
	if len(args) == 0 {
		return args
	}

	result := make([]any, len(args))
	copy(result, args)

	for i := 1; i < len(result); i += 2 {
		switch v := result[i].(type) {
		case string:
			result[i] = s.Sanitize(v)
		case error:
			result[i] = s.Sanitize(v.Error())
		case fmt.Stringer:
			result[i] = s.Sanitize(v.String())
		}
	}

	return result
}

// AddRule registers a custom replacement rule
func (s *Sanitizer) AddRule(pattern string, replacement string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	re, err := regexp.Compile(pattern)
	if err != nil {
		return fmt.Errorf("invalid pattern: %w", err)
	}

	s.patterns = append(s.patterns, SanitizeRule{
		Pattern:     re,
		Replacement: replacement,
	})
	return nil
}

// escapeControl replaces control runes with their Go escape sequence
func escapeControl(input string) string {
	if strings.IndexFunc(input, unicode.IsControl) < 0 {
		return input
	}

	var b strings.Builder
	b.Grow(len(input) + 8)
	for _, r := range input {
		if !unicode.IsControl(r) {
			b.WriteRune(r)
			continue
		}
		quoted := strconv.QuoteRune(r)
		b.WriteString(quoted[1 : len(quoted)-1])
	}
	return b.String()
}
