package browser

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/crazy-max/unfold/internal/testutil"
	"github.com/crazy-max/unfold/pkg/archive"
	"github.com/crazy-max/unfold/pkg/resolver"
	"github.com/crazy-max/unfold/pkg/store"
	"github.com/opencontainers/go-digest"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	now    = time.Date(2024, time.March, 10, 12, 0, 0, 0, time.UTC)
	pngBin = []byte("\x89PNG\r\n\x1a\nfake")
)

type fixture struct {
	root    string
	dataDir string
	b       *Browser
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	root := t.TempDir()
	dataDir := t.TempDir()

	inner := testutil.ZipBytes(t, testutil.File{Name: "x.txt", Body: []byte("inner x")})
	testutil.WriteFile(t, root, "Docs/notes.txt", []byte("hello"))
	testutil.WriteFile(t, root, "Docs/photo.png", pngBin)
	testutil.WriteFile(t, root, "Docs/bundle.zip", testutil.ZipBytes(t,
		testutil.File{Name: "a/b.txt", Body: []byte("bee")},
		testutil.File{Name: "a/c.txt", Body: []byte("sea")},
		testutil.File{Name: "readme.md", Body: []byte("# readme")},
		testutil.File{Name: "pic.png", Body: pngBin},
		testutil.File{Name: "inner.zip", Body: inner},
	))
	testutil.WriteFile(t, root, "Docs/src.tar.gz", testutil.TarBytes(t, true,
		testutil.File{Name: "d/"},
		testutil.File{Name: "d/e.txt", Body: []byte("original e bytes")},
		testutil.File{Name: "d/inner.zip", Body: inner},
		testutil.File{Name: "top.txt", Body: []byte("top")},
	))
	testutil.WriteFile(t, root, "Docs/Sub/x.log", []byte("log line"))
	testutil.WriteFile(t, root, "Docs/Sub/y.csv", []byte("a,b"))
	testutil.WriteFile(t, root, "Docs/corrupt.zip", []byte("garbage"))
	testutil.WriteFile(t, root, "Music/song.mp3", []byte("id3"))
	testutil.WriteFile(t, root, "Trash/notes-old.txt", []byte("old"))
	testutil.WriteFile(t, root, ".hidden/notes-secret.txt", []byte("secret"))

	ago := func(d time.Duration) time.Time { return now.Add(-d) }
	day := 24 * time.Hour
	for name, mtime := range map[string]time.Time{
		"Docs/notes.txt":           ago(1 * day),
		"Docs/photo.png":           ago(2 * day),
		"Docs/bundle.zip":          ago(3 * day),
		"Docs/src.tar.gz":          ago(4 * day),
		"Docs/corrupt.zip":         ago(30 * day),
		"Docs/Sub/x.log":           ago(6 * day),
		"Docs/Sub/y.csv":           ago(6*day + 12*time.Hour),
		"Docs/Sub":                 ago(5 * day),
		"Docs":                     ago(time.Hour),
		"Music/song.mp3":           ago(20 * day),
		"Music":                    ago(time.Hour),
		"Trash/notes-old.txt":      ago(time.Hour),
		".hidden/notes-secret.txt": ago(time.Hour),
	} {
		require.NoError(t, os.Chtimes(filepath.Join(root, filepath.FromSlash(name)), mtime, mtime))
	}

	require.NoError(t, os.WriteFile(filepath.Join(dataDir, store.FavoritesFile),
		[]byte(`{"alice":["Docs/notes.txt","Docs/gone.txt","Docs/bundle.zip/a/b.txt","General/x"]}`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dataDir, store.IconsFile),
		[]byte(`{"Docs/notes.txt":"star","Docs":"folder-blue"}`), 0o644))

	return fixture{root: root, dataDir: dataDir, b: newBrowser(t, root, dataDir)}
}

func newBrowser(t *testing.T, root, dataDir string) *Browser {
	t.Helper()
	res, err := resolver.New(resolver.Options{
		Root:         root,
		Tool:         archive.NativeTar{MaxOutput: 1 << 20},
		MaxEntrySize: 1 << 20,
	})
	require.NoError(t, err)
	return New(res, Options{
		Favorites: store.NewFavorites(dataDir, zerolog.Nop()),
		Icons:     store.NewIcons(dataDir, zerolog.Nop()),
		Limits:    store.NewLimits(dataDir, zerolog.Nop()),
		Logger:    zerolog.Nop(),
		Now:       func() time.Time { return now },
	})
}

func names(items []EntryMetadata) []string {
	res := make([]string, 0, len(items))
	for _, item := range items {
		res = append(res, item.Name)
	}
	return res
}

func byName(t *testing.T, items []EntryMetadata, name string) EntryMetadata {
	t.Helper()
	for _, item := range items {
		if item.Name == name {
			return item
		}
	}
	t.Fatalf("%s not listed in %v", name, names(items))
	return EntryMetadata{}
}

func TestListDirectoryReal(t *testing.T) {
	f := newFixture(t)
	items, err := f.b.ListDirectory(context.Background(), "Docs", ListRequest{User: "alice"})
	require.NoError(t, err)

	assert.Equal(t, []string{"notes.txt", "photo.png", "bundle.zip", "src.tar.gz", "Sub", "corrupt.zip"}, names(items))

	notes := byName(t, items, "notes.txt")
	assert.Equal(t, "Docs/notes.txt", notes.Path)
	assert.False(t, notes.IsDirectory)
	assert.False(t, notes.IsArchive)
	assert.Equal(t, "5 B", notes.Size)
	assert.Equal(t, int64(5), notes.Bytes)
	assert.Equal(t, "txt", notes.Type)
	assert.Equal(t, "alice", notes.Owner)
	assert.True(t, notes.IsFavorite)
	assert.Equal(t, "star", notes.Icon)
	assert.True(t, notes.Modified.Equal(now.Add(-24*time.Hour)))

	bundle := byName(t, items, "bundle.zip")
	assert.True(t, bundle.IsDirectory)
	assert.True(t, bundle.IsArchive)
	assert.Equal(t, "folder", bundle.Type)
	assert.NotEmpty(t, bundle.Size)

	src := byName(t, items, "src.tar.gz")
	assert.False(t, src.IsDirectory)
	assert.True(t, src.IsArchive)
	assert.Equal(t, "gz", src.Type)

	sub := byName(t, items, "Sub")
	assert.True(t, sub.IsDirectory)
	assert.False(t, sub.IsArchive)
	assert.Equal(t, "folder", sub.Type)
	assert.Empty(t, sub.Size)
	assert.ElementsMatch(t, []string{"log", "csv"}, sub.ContainedExtensions)
	assert.False(t, sub.IsFavorite)

	items, err = f.b.ListDirectory(context.Background(), "Docs", ListRequest{})
	require.NoError(t, err)
	assert.Equal(t, OwnerMe, byName(t, items, "notes.txt").Owner)
	assert.False(t, byName(t, items, "notes.txt").IsFavorite)
}

func TestListDirectoryRealRoot(t *testing.T) {
	f := newFixture(t)
	items, err := f.b.ListDirectory(context.Background(), "", ListRequest{})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Docs", "Music", "Trash", ".hidden"}, names(items))
	assert.Equal(t, "folder-blue", byName(t, items, "Docs").Icon)
	assert.Equal(t, "Docs", byName(t, items, "Docs").Path)
}

func TestListDirectorySort(t *testing.T) {
	f := newFixture(t)
	items, err := f.b.ListDirectory(context.Background(), "Docs", ListRequest{Sort: SortAsc})
	require.NoError(t, err)
	assert.Equal(t, []string{"corrupt.zip", "Sub", "src.tar.gz", "bundle.zip", "photo.png", "notes.txt"}, names(items))
}

func TestListDirectoryFilter(t *testing.T) {
	f := newFixture(t)
	testCases := []struct {
		name     string
		filter   Filter
		expected []string
	}{
		{
			name:     "doc",
			filter:   Filter{Types: []string{"doc"}},
			expected: []string{"notes.txt"},
		},
		{
			name:     "logs matches folder content",
			filter:   Filter{Types: []string{"logs"}},
			expected: []string{"Sub"},
		},
		{
			name:     "archive",
			filter:   Filter{Types: []string{"archive"}},
			expected: []string{"bundle.zip", "src.tar.gz", "corrupt.zip"},
		},
		{
			name:     "img or other",
			filter:   Filter{Types: []string{"img", "other"}},
			expected: []string{"photo.png"},
		},
		{
			name:     "unknown category",
			filter:   Filter{Types: []string{"nope"}},
			expected: []string{},
		},
		{
			name:     "date from",
			filter:   Filter{DateFrom: now.Add(-48 * time.Hour)},
			expected: []string{"notes.txt", "photo.png"},
		},
		{
			name:     "date to",
			filter:   Filter{DateTo: now.Add(-72 * time.Hour)},
			expected: []string{"bundle.zip", "src.tar.gz", "Sub", "corrupt.zip"},
		},
		{
			name:     "date range is inclusive",
			filter:   Filter{DateFrom: now.Add(-72 * time.Hour), DateTo: now.Add(-72 * time.Hour)},
			expected: []string{"bundle.zip"},
		},
	}
	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			items, err := f.b.ListDirectory(context.Background(), "Docs", ListRequest{Filter: tt.filter})
			require.NoError(t, err)
			assert.Equal(t, tt.expected, names(items))
		})
	}
}

func TestListDirectoryZip(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	items, err := f.b.ListDirectory(ctx, "Docs/bundle.zip", ListRequest{User: "alice"})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "readme.md", "pic.png", "inner.zip"}, names(items))

	a := byName(t, items, "a")
	assert.True(t, a.IsDirectory)
	assert.False(t, a.IsArchive)
	assert.Equal(t, "Docs/bundle.zip/a", a.Path)
	assert.Equal(t, OwnerArchive, a.Owner)
	assert.Equal(t, "folder", a.Type)

	readme := byName(t, items, "readme.md")
	assert.False(t, readme.IsDirectory)
	assert.Equal(t, "8 B", readme.Size)
	assert.Equal(t, "md", readme.Type)
	assert.WithinDuration(t, testutil.ModTime, readme.Modified, 2*time.Second)

	innerZip := byName(t, items, "inner.zip")
	assert.True(t, innerZip.IsDirectory)
	assert.True(t, innerZip.IsArchive)

	items, err = f.b.ListDirectory(ctx, "Docs/bundle.zip/a", ListRequest{User: "alice"})
	require.NoError(t, err)
	assert.Equal(t, []string{"b.txt", "c.txt"}, names(items))
	assert.Equal(t, "Docs/bundle.zip/a/b.txt", items[0].Path)
	assert.True(t, items[0].IsFavorite)

	items, err = f.b.ListDirectory(ctx, "Docs/bundle.zip/inner.zip", ListRequest{})
	require.NoError(t, err)
	assert.Equal(t, []string{"x.txt"}, names(items))
	assert.Equal(t, "Docs/bundle.zip/inner.zip/x.txt", items[0].Path)
}

func TestListDirectoryTar(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	items, err := f.b.ListDirectory(ctx, "Docs/src.tar.gz", ListRequest{})
	require.NoError(t, err)
	assert.Equal(t, []string{"d", "top.txt"}, names(items))
	assert.True(t, items[0].IsDirectory)
	assert.Equal(t, OwnerArchive, items[1].Owner)
	assert.Equal(t, "3 B", items[1].Size)

	items, err = f.b.ListDirectory(ctx, "Docs/src.tar.gz/d", ListRequest{})
	require.NoError(t, err)
	assert.Equal(t, []string{"e.txt", "inner.zip"}, names(items))
	assert.True(t, byName(t, items, "inner.zip").IsDirectory)

	items, err = f.b.ListDirectory(ctx, "Docs/src.tar.gz/d/inner.zip", ListRequest{})
	require.NoError(t, err)
	assert.Equal(t, []string{"x.txt"}, names(items))
}

func TestListDirectoryUnknownSizeAndTime(t *testing.T) {
	f := newFixture(t)
	loc := &resolver.Location{
		Kind:  resolver.ArchiveDirectory,
		Chain: &archive.Link{Container: fakeContainer{entries: []archive.Entry{{Name: "x.txt", Size: -1}, {Name: "y/z.txt", Size: -1}}}},
	}
	items := f.b.listArchive(context.Background(), loc, Page{}, zerolog.Nop())
	require.Len(t, items, 2)
	assert.Empty(t, items[0].Size)
	assert.Equal(t, now, items[0].Modified)
	assert.True(t, items[1].IsDirectory)
}

func TestListDirectoryDegrades(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for _, p := range []string{
		"Nope",
		"Docs/notes.txt",
		"Docs/corrupt.zip",
		"Docs/bundle.zip/readme.md",
		"Docs/bundle.zip/missing",
	} {
		t.Run(p, func(t *testing.T) {
			items, err := f.b.ListDirectory(ctx, p, ListRequest{})
			require.NoError(t, err)
			assert.NotNil(t, items)
			assert.Empty(t, items)
		})
	}

	_, err := f.b.ListDirectory(ctx, "../outside", ListRequest{})
	assert.True(t, errors.Is(err, ErrForbidden))
}

func TestListDirectoryPagination(t *testing.T) {
	root := t.TempDir()
	const n = 7
	var files []testutil.File
	for i := 0; i < n; i++ {
		testutil.WriteFile(t, root, fmt.Sprintf("Real/f%d.txt", i), []byte("x"))
		// two entries per child to exercise deduplication
		files = append(files,
			testutil.File{Name: fmt.Sprintf("c%d/a.txt", i), Body: []byte("a")},
			testutil.File{Name: fmt.Sprintf("c%d/b.txt", i), Body: []byte("b")},
		)
	}
	testutil.WriteFile(t, root, "arch.zip", testutil.ZipBytes(t, files...))
	testutil.WriteFile(t, root, "arch.tar", testutil.TarBytes(t, false, files...))
	b := newBrowser(t, root, t.TempDir())

	for _, p := range []string{"Real", "arch.zip", "arch.tar"} {
		all, err := b.ListDirectory(context.Background(), p, ListRequest{})
		require.NoError(t, err)
		require.Len(t, all, n)
		for skip := 0; skip <= n+2; skip++ {
			for limit := 1; limit <= n+2; limit++ {
				items, err := b.ListDirectory(context.Background(), p, ListRequest{Page: Page{Skip: skip, Limit: limit}})
				require.NoError(t, err)
				expected := max(0, min(limit, n-skip))
				require.Len(t, items, expected, "%s skip=%d limit=%d", p, skip, limit)
				if expected > 0 {
					assert.Equal(t, all[skip:skip+expected], items)
				}
			}
		}
	}
}

func TestListDirectoryIdempotent(t *testing.T) {
	f := newFixture(t)
	for _, p := range []string{"Docs", "Docs/bundle.zip", "Docs/src.tar.gz/d"} {
		first, err := f.b.ListDirectory(context.Background(), p, ListRequest{})
		require.NoError(t, err)
		second, err := f.b.ListDirectory(context.Background(), p, ListRequest{})
		require.NoError(t, err)
		assert.Equal(t, first, second, p)
	}
}

func TestGetEntry(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	c, err := f.b.GetEntry(ctx, "Docs/notes.txt", "alice")
	require.NoError(t, err)
	assert.False(t, c.IsDirectory)
	assert.Equal(t, ContentText, c.Kind)
	assert.Equal(t, "hello", c.Body)
	assert.Equal(t, []byte("hello"), c.Data)
	assert.Equal(t, int64(5), c.Size)
	assert.Equal(t, digest.FromString("hello"), c.Digest)
	assert.False(t, c.ReadOnly)
	assert.True(t, c.IsFavorite)
	assert.Equal(t, "star", c.Icon)

	c, err = f.b.GetEntry(ctx, "Docs/notes.txt", "bob")
	require.NoError(t, err)
	assert.False(t, c.IsFavorite)

	c, err = f.b.GetEntry(ctx, "Docs/photo.png", "")
	require.NoError(t, err)
	assert.Equal(t, ContentMediaRef, c.Kind)
	assert.Equal(t, DefaultMediaURL+"Docs%2Fphoto.png", c.Body)
	assert.Equal(t, "image/png", c.ContentType)
	assert.Equal(t, int64(len(pngBin)), c.Size)
	assert.True(t, c.ReadOnly)
	assert.Nil(t, c.Data)

	c, err = f.b.GetEntry(ctx, "Docs/bundle.zip/readme.md", "")
	require.NoError(t, err)
	assert.Equal(t, ContentText, c.Kind)
	assert.Equal(t, "# readme", c.Body)
	assert.True(t, c.ReadOnly)

	c, err = f.b.GetEntry(ctx, "Docs/bundle.zip/pic.png", "")
	require.NoError(t, err)
	assert.Equal(t, ContentDataURI, c.Kind)
	assert.Equal(t, "data:image/png;base64,"+base64.StdEncoding.EncodeToString(pngBin), c.Body)
	assert.Equal(t, pngBin, c.Data)
	assert.True(t, c.ReadOnly)

	c, err = f.b.GetEntry(ctx, "Docs/src.tar.gz/d/e.txt", "")
	require.NoError(t, err)
	assert.Equal(t, "original e bytes", c.Body)
	assert.True(t, c.ReadOnly)

	c, err = f.b.GetEntry(ctx, "Docs/bundle.zip/inner.zip/x.txt", "")
	require.NoError(t, err)
	assert.Equal(t, "inner x", c.Body)
}

func TestGetEntryDirectory(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	c, err := f.b.GetEntry(ctx, "Docs", "")
	require.NoError(t, err)
	assert.True(t, c.IsDirectory)
	assert.Equal(t, ContentNone, c.Kind)
	assert.False(t, c.ReadOnly)
	assert.Equal(t, "folder-blue", c.Icon)
	require.NotNil(t, c.Stats)
	assert.Equal(t, int64(7), c.Stats.Files)
	assert.Equal(t, int64(1), c.Stats.Folders)

	for _, p := range []string{"Docs/bundle.zip", "Docs/bundle.zip/a", "Docs/src.tar.gz/d", "Docs/bundle.zip/inner.zip"} {
		c, err = f.b.GetEntry(ctx, p, "")
		require.NoError(t, err, p)
		assert.True(t, c.IsDirectory, p)
		assert.True(t, c.ReadOnly, p)
		assert.Nil(t, c.Stats, p)
	}
}

func TestGetEntryErrors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.b.GetEntry(ctx, "Docs/missing.txt", "")
	assert.True(t, errors.Is(err, ErrNotFound))

	_, err = f.b.GetEntry(ctx, "Docs/bundle.zip/missing.txt", "")
	assert.True(t, errors.Is(err, ErrNotFound))

	_, err = f.b.GetEntry(ctx, "../etc/passwd", "")
	assert.True(t, errors.Is(err, ErrForbidden))

	_, err = f.b.GetEntry(ctx, "Docs/corrupt.zip/x", "")
	assert.True(t, errors.Is(err, archive.ErrUnsupportedFormat))
}

func TestReadRoundTrip(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	for p, expected := range map[string]string{
		"Docs/bundle.zip/a/b.txt":           "bee",
		"Docs/bundle.zip/a/c.txt":           "sea",
		"Docs/src.tar.gz/top.txt":           "top",
		"Docs/src.tar.gz/d/inner.zip/x.txt": "inner x",
	} {
		c, err := f.b.GetEntry(ctx, p, "")
		require.NoError(t, err, p)
		assert.Equal(t, []byte(expected), c.Data, p)
	}
}

func TestOpen(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for p, expected := range map[string][]byte{
		"Docs/notes.txt":          []byte("hello"),
		"Docs/photo.png":          pngBin,
		"Docs/bundle.zip/pic.png": pngBin,
		"Docs/src.tar.gz/top.txt": []byte("top"),
	} {
		t.Run(p, func(t *testing.T) {
			rc, size, err := f.b.Open(ctx, p)
			require.NoError(t, err)
			defer rc.Close()
			assert.Equal(t, int64(len(expected)), size)

			data, err := io.ReadAll(rc)
			require.NoError(t, err)
			assert.Equal(t, expected, data)

			_, err = rc.Seek(1, io.SeekStart)
			require.NoError(t, err)
			data, err = io.ReadAll(rc)
			require.NoError(t, err)
			assert.Equal(t, expected[1:], data)
		})
	}

	_, _, err := f.b.Open(ctx, "Docs")
	assert.True(t, errors.Is(err, ErrIsDirectory))
	_, _, err = f.b.Open(ctx, "Docs/bundle.zip/a")
	assert.True(t, errors.Is(err, ErrIsDirectory))
	_, _, err = f.b.Open(ctx, "Docs/none")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestSearch(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	items, err := f.b.Search(ctx, "NOTES")
	require.NoError(t, err)
	assert.Equal(t, []string{"notes.txt"}, names(items))
	assert.Equal(t, "Docs/notes.txt", items[0].Path)
	assert.Equal(t, "Docs", items[0].Owner)

	items, err = f.b.Search(ctx, "zip")
	require.NoError(t, err)
	assert.Equal(t, []string{"bundle.zip", "corrupt.zip"}, names(items))
	assert.True(t, items[0].IsDirectory)

	items, err = f.b.Search(ctx, "  ")
	require.NoError(t, err)
	assert.Empty(t, items)

	root := t.TempDir()
	for i := 0; i < SearchLimit+20; i++ {
		testutil.WriteFile(t, root, fmt.Sprintf("many/match%03d.txt", i), nil)
	}
	items, err = newBrowser(t, root, t.TempDir()).Search(ctx, "match")
	require.NoError(t, err)
	assert.Len(t, items, SearchLimit)
}

func TestRecent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	items, err := f.b.Recent(ctx, "alice", Page{})
	require.NoError(t, err)
	assert.Equal(t, []string{"notes.txt", "photo.png", "bundle.zip", "src.tar.gz", "Sub", "x.log", "y.csv"}, names(items))
	assert.Equal(t, "Docs", items[0].Owner)
	assert.True(t, items[0].IsFavorite)

	items, err = f.b.Recent(ctx, "alice", PageOf(2, 3))
	require.NoError(t, err)
	assert.Equal(t, []string{"src.tar.gz", "Sub", "x.log"}, names(items))
}

func TestFavorites(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	items, err := f.b.Favorites(ctx, "alice", Page{})
	require.NoError(t, err)
	require.Equal(t, []string{"notes.txt", "b.txt"}, names(items))
	assert.Equal(t, "Docs", items[0].Owner)
	assert.Equal(t, "star", items[0].Icon)
	assert.True(t, items[0].IsFavorite)
	assert.Equal(t, OwnerArchive, items[1].Owner)
	assert.Equal(t, "3 B", items[1].Size)
	assert.Equal(t, "Docs/bundle.zip/a/b.txt", items[1].Path)
	assert.True(t, items[1].IsFavorite)

	items, err = f.b.Favorites(ctx, "alice", Page{Skip: 1})
	require.NoError(t, err)
	assert.Equal(t, []string{"b.txt"}, names(items))

	items, err = f.b.Favorites(ctx, "nobody", Page{})
	require.NoError(t, err)
	assert.Empty(t, items)
}

type fakeContainer struct {
	entries []archive.Entry
}

func (c fakeContainer) Kind() archive.Kind { return archive.Tar }

func (c fakeContainer) Entries(context.Context) ([]archive.Entry, error) { return c.entries, nil }

func (c fakeContainer) Lookup(_ context.Context, name string) (archive.Entry, bool, error) {
	e, ok := archive.Find(c.entries, name)
	return e, ok, nil
}

func (c fakeContainer) ReadEntry(context.Context, string) ([]byte, error) {
	return nil, archive.ErrNotFound
}

func (c fakeContainer) Close() error { return nil }
