package namehash

import (
	"fmt"
	"hash/fnv"
	"strconv"

	"github.com/cespare/xxhash/v2"
)

// Algorithm represents the 64-bit hash used for names
type Algorithm string

const (
	// XXHash64 algorithm (default, fast and well distributed)
	XXHash64 Algorithm = "xxhash"
	// FNV1a64 algorithm
	FNV1a64 Algorithm = "fnv1a"
)

// DefaultAlgorithm is used when no algorithm is configured
const DefaultAlgorithm = XXHash64

// Calculator hashes entry names.
// It never reads file content; the input is the name text only.
type Calculator interface {
	// Sum64 returns the 64-bit hash of text
	Sum64(text string) uint64
	// Calculate returns the decimal representation of Sum64
	Calculate(text string) string
}

// DefaultCalculator implements Calculator for a fixed algorithm
type DefaultCalculator struct {
	algo Algorithm
}

// NewCalculator creates a calculator for the given algorithm
func NewCalculator(algo Algorithm) (*DefaultCalculator, error) {
	if algo == "" {
		algo = DefaultAlgorithm
	}
	if !IsSupported(algo) {
		return nil, fmt.Errorf("unsupported hash algorithm: %s", algo)
	}
	return &DefaultCalculator{algo: algo}, nil
}

// NewDefaultCalculator creates a calculator with the default algorithm
func NewDefaultCalculator() *DefaultCalculator {
	return &DefaultCalculator{algo: DefaultAlgorithm}
}

// Algorithm returns the configured algorithm
func (c *DefaultCalculator) Algorithm() Algorithm {
	return c.algo
}

// Sum64 implements the Calculator interface
func (c *DefaultCalculator) Sum64(text string) uint64 {
	switch c.algo {
	case FNV1a64:
		h := fnv.New64a()
		h.Write([]byte(text))
		return h.Sum64()
	default:
		return xxhash.Sum64String(text)
	}
}

// Calculate implements the Calculator interface
func (c *DefaultCalculator) Calculate(text string) string {
	return strconv.FormatUint(c.Sum64(text), 10)
}

// IsSupported checks if the given algorithm is supported
func IsSupported(algo Algorithm) bool {
	switch algo {
	case XXHash64, FNV1a64:
		return true
	default:
		return false
	}
}
