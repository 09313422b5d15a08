package archive

import (
	"bufio"
	"bytes"
	"context"
	"os/exec"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

const stderrLimit = 64 * 1024

// ExecTar runs an external tar binary. Every invocation is bounded by
// Timeout and its output by MaxOutput.
type ExecTar struct {
	// Binary is the tar executable, looked up in PATH when not absolute.
	Binary string
	// Timeout bounds one invocation. Zero relies on the caller context.
	Timeout time.Duration
	// MaxOutput bounds the bytes captured from stdout. Zero disables it.
	MaxOutput int64
	// Logger receives debug output.
	Logger zerolog.Logger
}

// List runs tar -tf (or -ztf) and parses one entry per line. The listing
// carries no size nor modification time.
func (t ExecTar) List(ctx context.Context, filename string, kind Kind) ([]Entry, error) {
	args := []string{"-tf", filename}
	if kind == TarGz {
		args = []string{"-ztf", filename}
	}
	out, err := t.run(ctx, args)
	if err != nil {
		return nil, err
	}

	var entries []Entry
	scanner := bufio.NewScanner(bytes.NewReader(out))
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		raw := strings.TrimRight(scanner.Text(), "\r")
		name := NormalizeName(raw)
		if name == "" {
			continue
		}
		entries = append(entries, Entry{
			Name:  name,
			IsDir: strings.HasSuffix(strings.TrimSpace(raw), "/"),
			Size:  -1,
			raw:   raw,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrapf(ErrExternalTool, "cannot parse listing of %s: %v", filename, err)
	}
	return entries, nil
}

// Extract runs tar -xf (or -zxf) with -O to stream one entry to stdout.
// The member name always follows "--" so it is never parsed as an option,
// and a directory member yields no output rather than its whole subtree.
func (t ExecTar) Extract(ctx context.Context, filename string, kind Kind, name string) ([]byte, error) {
	args := []string{"-xf", filename, "-O", "--no-recursion", "--", name}
	if kind == TarGz {
		args = []string{"-zxf", filename, "-O", "--no-recursion", "--", name}
	}
	out, err := t.run(ctx, args)
	if err != nil {
		var terr *ToolError
		if errors.As(err, &terr) && strings.Contains(terr.Stderr, "Not found in archive") {
			return nil, errors.Wrapf(ErrNotFound, "tar entry %s", name)
		}
		return nil, err
	}
	return out, nil
}

func (t ExecTar) run(ctx context.Context, args []string) ([]byte, error) {
	bin := t.Binary
	if bin == "" {
		bin = "tar"
	}
	if t.Timeout > 0 {
		var stop context.CancelFunc
		ctx, stop = context.WithTimeout(ctx, t.Timeout)
		defer stop()
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	stdout := &limitedBuffer{limit: t.MaxOutput, onExceed: cancel}
	stderr := &limitedBuffer{limit: stderrLimit}

	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	cmd.WaitDelay = time.Second

	t.Logger.Debug().Strs("args", args).Msg("Running tar")
	err := cmd.Run()
	switch {
	case stdout.exceeded:
		return nil, &ToolError{Args: args, Stderr: stderr.String(), Err: errors.Errorf("output exceeds %d bytes", t.MaxOutput)}
	case err != nil && ctx.Err() != nil:
		return nil, &ToolError{Args: args, Stderr: stderr.String(), Err: errors.Wrap(ctx.Err(), err.Error())}
	case err != nil:
		return nil, &ToolError{Args: args, Stderr: stderr.String(), Err: err}
	}
	return stdout.Bytes(), nil
}

// limitedBuffer keeps at most limit bytes. Writes past the limit fail, and
// onExceed is called so the producing process can be killed.
type limitedBuffer struct {
	bytes.Buffer
	limit    int64
	exceeded bool
	onExceed func()
}

func (b *limitedBuffer) Write(p []byte) (int, error) {
	if b.limit > 0 && int64(b.Len()+len(p)) > b.limit {
		if !b.exceeded {
			b.exceeded = true
			if b.onExceed != nil {
				b.onExceed()
			}
		}
		if b.onExceed == nil {
			// drop the overflow silently
			return len(p), nil
		}
		return 0, errors.New("output limit exceeded")
	}
	return b.Buffer.Write(p)
}
