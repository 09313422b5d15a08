package archive

import (
	"strings"
	"time"
)

// Entry is one record of a container's entry table
type Entry struct {
	// Name is the normalized path of the entry inside its container,
	// without leading or trailing separator.
	Name string
	// IsDir is set when the archive flags the entry as a directory.
	IsDir bool
	// Size is the uncompressed size in bytes, negative when unknown.
	Size int64
	// Modified is the entry modification time, zero when unknown.
	Modified time.Time

	// raw is the name as stored in the archive, required by tools that
	// address entries verbatim.
	raw string
}

// Segments returns the ordered path segments of the entry
func (e Entry) Segments() []string {
	return strings.Split(e.Name, "/")
}

// NormalizeName converts an archive entry name to the slash separated form
// used for lookups: surrounding whitespace, leading "./" and "/" and
// trailing "/" are removed.
func NormalizeName(name string) string {
	name = strings.ReplaceAll(strings.TrimSpace(name), "\\", "/")
	for strings.HasPrefix(name, "./") {
		name = name[2:]
	}
	name = strings.TrimLeft(name, "/")
	name = strings.TrimRight(name, "/")
	if name == "." {
		return ""
	}
	return name
}

// Find returns the entry whose name equals name
func Find(entries []Entry, name string) (Entry, bool) {
	name = NormalizeName(name)
	for _, e := range entries {
		if e.Name == name {
			return e, true
		}
	}
	return Entry{}, false
}

// HasChildren reports whether any entry lives below dir. Zip archives do
// not always store explicit directory entries, so this is how implicit
// directories are detected.
func HasChildren(entries []Entry, dir string) bool {
	dir = NormalizeName(dir)
	if dir == "" {
		return len(entries) > 0
	}
	prefix := dir + "/"
	for _, e := range entries {
		if strings.HasPrefix(e.Name, prefix) {
			return true
		}
	}
	return false
}
