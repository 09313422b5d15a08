package browser

import (
	"bytes"
	"context"
	"encoding/base64"
	"io"
	"mime"
	"net/http"
	"net/url"
	"os"
	"path"
	"slices"
	"strings"

	"github.com/crazy-max/unfold/pkg/resolver"
	"github.com/opencontainers/go-digest"
	"github.com/pkg/errors"
)

// ContentKind tells how the body of a content is encoded
type ContentKind string

const (
	// ContentNone has no body, such as a directory descriptor
	ContentNone ContentKind = "none"
	// ContentText is UTF-8 text
	ContentText ContentKind = "text"
	// ContentDataURI is a base64 data URI of an image
	ContentDataURI ContentKind = "data-uri"
	// ContentMediaRef is a URL of the media endpoint
	ContentMediaRef ContentKind = "media-ref"
)

var (
	imageExts = []string{".png", ".jpg", ".jpeg", ".gif", ".webp", ".svg"}
	mediaExts = []string{
		".png", ".jpg", ".jpeg", ".gif", ".webp", ".svg", ".bmp", ".ico",
		".mp3", ".wav", ".ogg", ".m4a", ".flac",
		".mp4", ".webm", ".ogv", ".mov", ".mkv",
	}
)

// Content is what GetEntry returns for a virtual path
type Content struct {
	IsDirectory bool        `json:"isDirectory"`
	Kind        ContentKind `json:"kind"`
	Body        string      `json:"content,omitempty"`
	// Data holds the raw bytes the body was rendered from.
	Data        []byte        `json:"-"`
	ContentType string        `json:"contentType,omitempty"`
	Size        int64         `json:"size"`
	Digest      digest.Digest `json:"digest,omitempty"`
	ReadOnly    bool          `json:"readOnly"`
	IsFavorite  bool          `json:"isFavorite"`
	Icon        string        `json:"icon,omitempty"`
	Stats       *QuotaStats   `json:"stats,omitempty"`
}

// Read returns the content of a resolved file location
func (b *Browser) Read(ctx context.Context, loc *resolver.Location) (*Content, error) {
	ext := strings.ToLower(path.Ext(loc.VirtualPath.Base()))

	switch loc.Kind {
	case resolver.RealFile:
		if slices.Contains(mediaExts, ext) {
			return &Content{
				Kind:        ContentMediaRef,
				Body:        b.opts.MediaURL + url.QueryEscape(loc.VirtualPath.String()),
				ContentType: contentType(ext, nil),
				Size:        loc.SizeHint,
				ReadOnly:    true,
			}, nil
		}
		data, err := os.ReadFile(loc.RealPath)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, errors.Wrapf(ErrNotFound, "%s", loc.VirtualPath)
			}
			return nil, errors.Wrapf(err, "cannot read %s", loc.VirtualPath)
		}
		return textContent(ext, data, false), nil
	case resolver.ArchiveFile:
		data, err := loc.Container().ReadEntry(ctx, loc.InternalPath)
		if err != nil {
			return nil, err
		}
		if slices.Contains(imageExts, ext) {
			return &Content{
				Kind:        ContentDataURI,
				Body:        "data:image/" + ext[1:] + ";base64," + base64.StdEncoding.EncodeToString(data),
				Data:        data,
				ContentType: contentType(ext, data),
				Size:        int64(len(data)),
				Digest:      digest.FromBytes(data),
				ReadOnly:    true,
			}, nil
		}
		return textContent(ext, data, true), nil
	case resolver.NotFound:
		return nil, errors.Wrapf(ErrNotFound, "%s", loc.VirtualPath)
	default:
		return nil, errors.Wrapf(ErrIsDirectory, "%s", loc.VirtualPath)
	}
}

// Open returns a seekable stream over the file at virtualPath and its size
func (b *Browser) Open(ctx context.Context, virtualPath string) (io.ReadSeekCloser, int64, error) {
	loc, err := b.res.Resolve(ctx, virtualPath)
	if err != nil {
		return nil, 0, err
	}
	defer loc.Close()

	switch loc.Kind {
	case resolver.RealFile:
		f, err := os.Open(loc.RealPath)
		if err != nil {
			return nil, 0, errors.Wrapf(err, "cannot open %s", loc.VirtualPath)
		}
		fi, err := f.Stat()
		if err != nil {
			_ = f.Close()
			return nil, 0, errors.Wrapf(err, "cannot stat %s", loc.VirtualPath)
		}
		return f, fi.Size(), nil
	case resolver.ArchiveFile:
		data, err := loc.Container().ReadEntry(ctx, loc.InternalPath)
		if err != nil {
			return nil, 0, err
		}
		return nopCloser{bytes.NewReader(data)}, int64(len(data)), nil
	case resolver.NotFound:
		return nil, 0, errors.Wrapf(ErrNotFound, "%s", virtualPath)
	default:
		return nil, 0, errors.Wrapf(ErrIsDirectory, "%s", virtualPath)
	}
}

func textContent(ext string, data []byte, readOnly bool) *Content {
	return &Content{
		Kind:        ContentText,
		Body:        strings.ToValidUTF8(string(data), "�"),
		Data:        data,
		ContentType: contentType(ext, data),
		Size:        int64(len(data)),
		Digest:      digest.FromBytes(data),
		ReadOnly:    readOnly,
	}
}

func contentType(ext string, data []byte) string {
	if ct := mime.TypeByExtension(ext); ct != "" {
		return ct
	}
	if data != nil {
		return http.DetectContentType(data)
	}
	return "application/octet-stream"
}

type nopCloser struct {
	*bytes.Reader
}

func (nopCloser) Close() error { return nil }
