package archive

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

var (
	// ErrNotFound is returned when an archive or one of its entries does not exist.
	ErrNotFound = errors.New("not found")

	// ErrUnsupportedFormat is returned when an archive has a recognized
	// suffix but its content cannot be read.
	ErrUnsupportedFormat = errors.New("unsupported archive format")

	// ErrExternalTool is returned when the tar tool fails, is missing,
	// times out or exceeds its output ceiling.
	ErrExternalTool = errors.New("archive extraction failed")

	// ErrEntryTooLarge is returned when an entry read into memory exceeds
	// the configured ceiling.
	ErrEntryTooLarge = errors.New("archive entry too large")
)

// ToolError describes a failed tar invocation
type ToolError struct {
	Args   []string
	Stderr string
	Err    error
}

func (e *ToolError) Error() string {
	msg := fmt.Sprintf("%s: tar %s: %v", ErrExternalTool, strings.Join(e.Args, " "), e.Err)
	if stderr := strings.TrimSpace(e.Stderr); stderr != "" {
		msg += ": " + stderr
	}
	return msg
}

func (e *ToolError) Unwrap() error {
	return e.Err
}

// Is makes every ToolError match ErrExternalTool
func (e *ToolError) Is(target error) bool {
	return target == ErrExternalTool
}
