// Package split decomposes entry names into stem and extension.
package split

import "strings"

// Split returns the stem and extension of a final path segment.
// The extension is the text after the last dot that is not the first
// character; a leading-dot name with no other dot is all stem.
// ok is false for names that have no stem ("", ".", "..").
func Split(name string) (stem, ext string, ok bool) {
	if name == "" || name == "." || name == ".." {
		return "", "", false
	}

	idx := strings.LastIndexByte(name, '.')
	if idx <= 0 {
		return name, "", true
	}
	return name[:idx], name[idx+1:], true
}

// Join reassembles a name from its components
func Join(stem, ext string) string {
	if ext == "" {
		return stem
	}
	return stem + "." + ext
}
