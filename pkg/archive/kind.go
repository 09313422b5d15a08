package archive

import "strings"

// Kind is an archive format, recognized solely by file name suffix
type Kind int

const (
	// Unknown is not a browsable archive
	Unknown Kind = iota
	// Zip is a zip archive with a random access entry table
	Zip
	// Tar is an uncompressed tarball
	Tar
	// TarGz is a gzip compressed tarball (.tar.gz or .tgz)
	TarGz
)

func (k Kind) String() string {
	switch k {
	case Zip:
		return "zip"
	case Tar:
		return "tar"
	case TarGz:
		return "tar.gz"
	default:
		return "unknown"
	}
}

// KindOf returns the archive kind of name. Suffixes are matched
// case-insensitively and .tgz is an alias of .tar.gz.
func KindOf(name string) Kind {
	low := strings.ToLower(name)
	switch {
	case strings.HasSuffix(low, ".zip"):
		return Zip
	case strings.HasSuffix(low, ".tar.gz"), strings.HasSuffix(low, ".tgz"):
		return TarGz
	case strings.HasSuffix(low, ".tar"):
		return Tar
	default:
		return Unknown
	}
}

// IsZipName reports whether name ends in .zip
func IsZipName(name string) bool {
	return KindOf(name) == Zip
}
