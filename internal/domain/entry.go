package domain

// EntryType represents the type of a filesystem entry at the moment it is visited
type EntryType int

const (
	EntryOther EntryType = iota
	EntryFile
	EntryDirectory
)

// String returns the string representation of the entry type
func (t EntryType) String() string {
	switch t {
	case EntryFile:
		return "file"
	case EntryDirectory:
		return "directory"
	default:
		return "other"
	}
}

// Entry is a path yielded by the tree walker
type Entry struct {
	// Path is the full path, joined onto the walk root
	Path string

	// Depth is the distance from the root (direct children have depth 1)
	Depth int
}

// Selection controls which entry types a run applies to
type Selection struct {
	Files bool `mapstructure:"files"`
	Dirs  bool `mapstructure:"dirs"`
}

// Normalize applies the default "both" mode when neither type is selected
func (s Selection) Normalize() Selection {
	if !s.Files && !s.Dirs {
		return Selection{Files: true, Dirs: true}
	}
	return s
}

// Matches returns true if entries of the given type should be renamed
func (s Selection) Matches(t EntryType) bool {
	switch t {
	case EntryFile:
		return s.Files
	case EntryDirectory:
		return s.Dirs
	}
	return false
}
