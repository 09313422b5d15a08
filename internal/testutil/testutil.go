// Package testutil builds archive fixtures for tests.
package testutil

import (
	"archive/tar"
	"archive/zip"
	"bytes"
	"compress/gzip"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// ModTime is the modification time stamped on fixture entries
var ModTime = time.Date(2024, time.March, 9, 14, 30, 0, 0, time.UTC)

// File is one fixture entry. A name ending in "/" is a directory entry.
type File struct {
	Name string
	Body []byte
}

// ZipBytes returns a zip archive holding files in order
func ZipBytes(tb testing.TB, files ...File) []byte {
	tb.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, f := range files {
		hdr := &zip.FileHeader{Name: f.Name, Method: zip.Deflate, Modified: ModTime}
		if strings.HasSuffix(f.Name, "/") {
			hdr.Method = zip.Store
		}
		w, err := zw.CreateHeader(hdr)
		require.NoError(tb, err)
		if !strings.HasSuffix(f.Name, "/") {
			_, err = w.Write(f.Body)
			require.NoError(tb, err)
		}
	}
	require.NoError(tb, zw.Close())
	return buf.Bytes()
}

// TarBytes returns a tarball holding files in order, gzip compressed when gz is set
func TarBytes(tb testing.TB, gz bool, files ...File) []byte {
	tb.Helper()
	var buf bytes.Buffer
	var tw *tar.Writer
	var zw *gzip.Writer
	if gz {
		zw = gzip.NewWriter(&buf)
		tw = tar.NewWriter(zw)
	} else {
		tw = tar.NewWriter(&buf)
	}
	for _, f := range files {
		hdr := &tar.Header{Name: f.Name, Mode: 0o644, Size: int64(len(f.Body)), ModTime: ModTime, Typeflag: tar.TypeReg}
		if strings.HasSuffix(f.Name, "/") {
			hdr.Mode, hdr.Size, hdr.Typeflag = 0o755, 0, tar.TypeDir
		}
		require.NoError(tb, tw.WriteHeader(hdr))
		if hdr.Size > 0 {
			_, err := tw.Write(f.Body)
			require.NoError(tb, err)
		}
	}
	require.NoError(tb, tw.Close())
	if zw != nil {
		require.NoError(tb, zw.Close())
	}
	return buf.Bytes()
}

// WriteFile writes body to dir/name, creating parent directories
func WriteFile(tb testing.TB, dir, name string, body []byte) string {
	tb.Helper()
	path := filepath.Join(dir, filepath.FromSlash(name))
	require.NoError(tb, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(tb, os.WriteFile(path, body, 0o644))
	return path
}

// Mkdir creates dir/name and its parents
func Mkdir(tb testing.TB, dir, name string) string {
	tb.Helper()
	path := filepath.Join(dir, filepath.FromSlash(name))
	require.NoError(tb, os.MkdirAll(path, 0o755))
	return path
}
