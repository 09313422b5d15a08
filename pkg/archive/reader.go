package archive

import (
	"context"
	"io"

	"github.com/pkg/errors"
)

// errStop ends an archive walk once the wanted entry has been handled
var errStop = errors.New("stop walking")

// readAll reads r honoring ctx and fails with ErrEntryTooLarge past limit
// bytes. A limit of zero or less reads everything.
func readAll(ctx context.Context, r io.Reader, limit int64) ([]byte, error) {
	r = readerContext(ctx, r)
	if limit <= 0 {
		return io.ReadAll(r)
	}
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > limit {
		return nil, errors.Wrapf(ErrEntryTooLarge, "exceeds %d bytes", limit)
	}
	return data, nil
}

type reader struct {
	ctx context.Context
	r   io.Reader
}

func readerContext(ctx context.Context, r io.Reader) io.Reader {
	return reader{ctx, r}
}

func (r reader) Read(p []byte) (int, error) {
	err := r.ctx.Err()
	if err != nil {
		return 0, err
	}
	n, err := r.r.Read(p)
	if err != nil {
		return n, err
	}
	return n, r.ctx.Err()
}
