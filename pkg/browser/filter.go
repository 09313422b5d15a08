package browser

import (
	"slices"
	"time"
)

// categories groups file extensions by the type filters of listings
var categories = map[string][]string{
	"doc":     {"txt", "doc", "docx", "pdf", "rtf", "odt", "md"},
	"img":     {"jpg", "jpeg", "png", "gif", "webp", "bmp", "svg", "heic"},
	"audio":   {"mp3", "wav", "ogg", "flac", "aac", "m4a"},
	"video":   {"mp4", "mkv", "avi", "mov", "wmv", "webm"},
	"logs":    {"log"},
	"sheet":   {"xls", "xlsx", "csv", "ods"},
	"pres":    {"ppt", "pptx", "key", "odp"},
	"archive": {"zip", "rar", "7z", "tar", "gz"},
}

// CategoryOther matches extensions of no known category
const CategoryOther = "other"

// Filter narrows real directory listings. Zero fields match everything.
type Filter struct {
	// Types are category names such as "doc" or "img". Directories match
	// through the extensions of the files they contain.
	Types []string
	// DateFrom and DateTo bound the modification day, both inclusive.
	DateFrom time.Time
	DateTo   time.Time
}

// IsZero reports whether the filter matches everything
func (f Filter) IsZero() bool {
	return len(f.Types) == 0 && f.DateFrom.IsZero() && f.DateTo.IsZero()
}

func (f Filter) match(item EntryMetadata) bool {
	day := truncateDay(item.Modified)
	if !f.DateFrom.IsZero() && day.Before(truncateDay(f.DateFrom)) {
		return false
	}
	if !f.DateTo.IsZero() && day.After(truncateDay(f.DateTo)) {
		return false
	}
	if len(f.Types) == 0 {
		return true
	}
	if item.IsDirectory && !item.IsArchive {
		return slices.ContainsFunc(item.ContainedExtensions, f.matchExt)
	}
	return f.matchExt(extension(item.Name))
}

func (f Filter) matchExt(ext string) bool {
	for _, t := range f.Types {
		if t == CategoryOther {
			if !knownExtension(ext) {
				return true
			}
			continue
		}
		if slices.Contains(categories[t], ext) {
			return true
		}
	}
	return false
}

func knownExtension(ext string) bool {
	for _, exts := range categories {
		if slices.Contains(exts, ext) {
			return true
		}
	}
	return false
}

func truncateDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
