// Package vpath models virtual paths, the slash separated namespace that
// spans both the real filesystem below a root and the inside of archives.
package vpath

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// ErrForbidden is returned when a path resolves outside of the root
var ErrForbidden = errors.New("path escapes root")

// Path is an ordered sequence of non-empty segments relative to a root.
// The zero value is the root itself.
type Path []string

// Parse splits raw into segments. Empty and "." segments are dropped and
// ".." pops the previous segment; popping past the root fails with
// ErrForbidden.
func Parse(raw string) (Path, error) {
	raw = strings.TrimSpace(strings.ReplaceAll(raw, "\r", ""))
	var p Path
	for _, seg := range strings.Split(raw, "/") {
		switch seg {
		case "", ".":
			continue
		case "..":
			if len(p) == 0 {
				return nil, errors.Wrapf(ErrForbidden, "%q", raw)
			}
			p = p[:len(p)-1]
		default:
			p = append(p, seg)
		}
	}
	return p, nil
}

// MustParse is like Parse but panics on error
func MustParse(raw string) Path {
	p, err := Parse(raw)
	if err != nil {
		panic(err)
	}
	return p
}

// String returns the normalized slash separated form, empty for the root
func (p Path) String() string {
	return strings.Join(p, "/")
}

// IsRoot reports whether p has no segment
func (p Path) IsRoot() bool {
	return len(p) == 0
}

// Base returns the last segment, empty for the root
func (p Path) Base() string {
	if len(p) == 0 {
		return ""
	}
	return p[len(p)-1]
}

// Join returns a new path with names appended
func (p Path) Join(names ...string) Path {
	out := make(Path, 0, len(p)+len(names))
	out = append(out, p...)
	for _, name := range names {
		if name != "" {
			out = append(out, name)
		}
	}
	return out
}

// Real returns the filesystem path of p below root
func (p Path) Real(root string) string {
	return filepath.Join(append([]string{root}, p...)...)
}

// Confine fails with ErrForbidden if target, once symbolic links are
// evaluated, is not root or a descendant of root. A target that does not
// exist is checked lexically.
func Confine(root, target string) error {
	rootReal, err := filepath.EvalSymlinks(root)
	if err != nil {
		return errors.Wrapf(err, "cannot evaluate root %s", root)
	}
	targetReal, err := filepath.EvalSymlinks(target)
	if err != nil {
		if !os.IsNotExist(err) {
			return errors.Wrapf(err, "cannot evaluate %s", target)
		}
		rootReal, targetReal = filepath.Clean(root), filepath.Clean(target)
	}
	if !within(rootReal, targetReal) {
		return errors.Wrapf(ErrForbidden, "%s", target)
	}
	return nil
}

func within(root, target string) bool {
	rel, err := filepath.Rel(root, target)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}
