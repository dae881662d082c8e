package input

import (
	"bytes"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLocation(t *testing.T) {
	for _, tc := range []struct {
		in     string
		remote bool
		str    string
		err    bool
	}{
		{in: "enwiki.xml", str: "enwiki.xml"},
		{in: "/data/enwiki-latest-pages-articles.xml.bz2", str: "/data/enwiki-latest-pages-articles.xml.bz2"},
		{in: "https://dumps.wikimedia.org/", remote: true, str: "https://dumps.wikimedia.org/enwiki/latest"},
		{in: "http://mirror.example/dumps", remote: true, str: "http://mirror.example/dumps/enwiki/latest"},
		{in: "", err: true},
	} {
		t.Run(tc.in, func(t *testing.T) {
			check := assert.New(t)
			loc, err := ParseLocation(tc.in)
			if tc.err {
				check.Error(err)
				return
			}
			check.NoError(err)
			check.Equal(tc.remote, loc.IsRemote())
			check.Equal(tc.str, loc.String())
		})
	}

	_, err := Mirror("ftp://mirror.example/", "", "")
	assert.Error(t, err)
	loc, err := Mirror(DefaultMirror, "hr", "20240101")
	require.NoError(t, err)
	assert.Equal(t, "https://dumps.wikimedia.org/hrwiki/20240101/dumpstatus.json", loc.Remote.FileURL(StatusFile))
}

func TestFileName(t *testing.T) {
	for _, tc := range []struct {
		name FileName
		ext  string
	}{
		{name: "enwiki-pages-articles.xml.bz2", ext: "bz2"},
		{name: "dump.xml", ext: "xml"},
		{name: "README"},
	} {
		t.Run(string(tc.name), func(t *testing.T) {
			assert.Equal(t, tc.ext, tc.name.Ext())
		})
	}
}

func descriptors(names ...string) []Descriptor {
	files := make([]Descriptor, len(names))
	for i, name := range names {
		files[i] = Descriptor{Name: FileName(name)}
	}
	return files
}

func TestSortNatural(t *testing.T) {
	for _, tc := range []struct {
		name string
		in   []string
		want []string
	}{
		{
			name: "articles",
			in: []string{
				"pages-articles10.xml-p100p200.bz2",
				"pages-articles2.xml-p30p40.bz2",
				"pages-articles1.xml-p1p10.bz2",
				"pages-articles2.xml-p5p10.bz2",
				"pages-articles.xml",
				"pages-articles002.xml",
			},
			want: []string{
				"pages-articles.xml",
				"pages-articles1.xml-p1p10.bz2",
				"pages-articles002.xml",
				"pages-articles2.xml-p5p10.bz2",
				"pages-articles2.xml-p30p40.bz2",
				"pages-articles10.xml-p100p200.bz2",
			},
		},
		{name: "numbers", in: []string{"pages-10.xml", "pages-2.xml"}, want: []string{"pages-2.xml", "pages-10.xml"}},
		{name: "letters", in: []string{"b", "a"}, want: []string{"a", "b"}},
		{name: "prefix", in: []string{"x1", "x"}, want: []string{"x", "x1"}},
		{name: "empty"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			files := descriptors(tc.in...)
			SortNatural(files)
			assert.Equal(t, descriptors(tc.want...), files)
		})
	}
}

func TestLoadDumpInfoLocal(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dump.xml")
	require.NoError(t, os.WriteFile(path, []byte("<mediawiki/>"), 0o644))

	info, err := LoadDumpInfo(context.Background(), nil, LocalFile(path))
	require.NoError(t, err)
	require.Len(t, info.Files, 1)
	check := assert.New(t)
	check.Equal(FileName("dump.xml"), info.Files[0].Name)
	check.EqualValues(12, info.Files[0].Size)
	check.EqualValues(12, info.TotalSize())

	_, err = LoadDumpInfo(context.Background(), nil, LocalFile(dir))
	check.Error(err)
	_, err = LoadDumpInfo(context.Background(), nil, LocalFile(filepath.Join(dir, "missing")))
	check.Error(err)
}

const dumpStatus = `{
  "jobs": {
    "articlesdump": {
      "status": "done",
      "updated": "2024-01-02 03:04:05",
      "files": {
        "enwiki-pages-articles10.xml.gz": {"size": 30, "url": "/enwiki/20240101/enwiki-pages-articles10.xml.gz", "md5": "a"},
        "enwiki-pages-articles2.xml": {"size": 20, "sha1": "b"}
      }
    },
    "metacurrentdump": {"status": "waiting"}
  },
  "version": "0.8"
}`

func mirror(t *testing.T, files map[string][]byte) *httptest.Server {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ua := r.Header.Get("User-Agent"); ua != UserAgent {
			http.Error(w, "bad user agent "+ua, http.StatusForbidden)
			return
		}
		b, ok := files[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Write(b)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func gz(t *testing.T, s string) []byte {
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, err := zw.Write([]byte(s))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestLoadDumpInfoRemote(t *testing.T) {
	srv := mirror(t, map[string][]byte{
		"/enwiki/20240101/dumpstatus.json":                []byte(dumpStatus),
		"/enwiki/20240101/enwiki-pages-articles10.xml.gz": gz(t, "<page/>"),
		"/enwiki/20240101/enwiki-pages-articles2.xml":     []byte("<mediawiki/>"),
		"/enwiki/broken/dumpstatus.json":                  []byte(`{"jobs": {}}`),
		"/enwiki/garbage/dumpstatus.json":                 []byte(`<html>`),
	})

	loc, err := Mirror(srv.URL, "en", "20240101")
	require.NoError(t, err)
	info, err := LoadDumpInfo(context.Background(), srv.Client(), loc)
	require.NoError(t, err)

	check := assert.New(t)
	check.Equal(StatusDone, info.Status)
	check.Equal("2024-01-02 03:04:05", info.Updated)
	require.Len(t, info.Files, 2)
	check.Equal(FileName("enwiki-pages-articles2.xml"), info.Files[0].Name)
	check.Equal(FileName("enwiki-pages-articles10.xml.gz"), info.Files[1].Name)
	check.Equal(srv.URL+"/enwiki/20240101/enwiki-pages-articles2.xml", info.Files[0].URL)
	check.Equal(srv.URL+"/enwiki/20240101/enwiki-pages-articles10.xml.gz", info.Files[1].URL)
	check.Equal("a", info.Files[1].MD5)
	check.EqualValues(50, info.TotalSize())

	s, err := Open(context.Background(), srv.Client(), info.Files[1], nil)
	require.NoError(t, err)
	b, err := io.ReadAll(s)
	check.NoError(err)
	check.Equal("<page/>", string(b))
	check.NoError(s.Close())

	for _, version := range []string{"broken", "garbage", "missing"} {
		t.Run(version, func(t *testing.T) {
			loc, err := Mirror(srv.URL, "en", version)
			require.NoError(t, err)
			_, err = LoadDumpInfo(context.Background(), srv.Client(), loc)
			assert.Error(t, err)
		})
	}
}

func TestOpenLocal(t *testing.T) {
	dir := t.TempDir()
	plain := filepath.Join(dir, "plain.xml")
	require.NoError(t, os.WriteFile(plain, []byte("<mediawiki/>"), 0o644))
	gzPath := filepath.Join(dir, "c.xml.gz")
	require.NoError(t, os.WriteFile(gzPath, gz(t, "<gz/>"), 0o644))

	for _, tc := range []struct {
		path string
		want string
	}{
		{path: plain, want: "<mediawiki/>"},
		{path: gzPath, want: "<gz/>"},
		{path: "testdata/hello.txt.bz2", want: "<mediawiki>hello</mediawiki>\n"},
	} {
		t.Run(filepath.Base(tc.path), func(t *testing.T) {
			check := assert.New(t)
			info, err := LoadDumpInfo(context.Background(), nil, LocalFile(tc.path))
			require.NoError(t, err)
			var last int64
			s, err := Open(context.Background(), nil, info.Files[0], func(total int64) { last = total })
			require.NoError(t, err)
			defer s.Close()
			b, err := io.ReadAll(s)
			check.NoError(err)
			check.Equal(tc.want, string(b))
			check.Equal(info.Files[0].Size, s.Consumed())
			check.Equal(s.Consumed(), last)
		})
	}

	_, err := Open(context.Background(), nil, Descriptor{Name: "x.xml", Location: LocalFile(filepath.Join(dir, "none"))}, nil)
	assert.Error(t, err)
	bad := filepath.Join(dir, "bad.gz")
	require.NoError(t, os.WriteFile(bad, []byte("not gzip"), 0o644))
	_, err = Open(context.Background(), nil, Descriptor{Name: "bad.gz", Location: LocalFile(bad)}, nil)
	assert.Error(t, err)
}

func TestCountingReader(t *testing.T) {
	var calls []int64
	r := NewCountingReader(bytes.NewReader(make([]byte, 10)), func(total int64) { calls = append(calls, total) })
	buf := make([]byte, 4)
	for {
		if _, err := r.Read(buf); err != nil {
			break
		}
	}
	assert.Equal(t, []int64{4, 8, 10}, calls)
	assert.EqualValues(t, 10, r.Count())
	assert.Panics(t, func() { NewCountingReader(nil, nil) })
}

func ExampleSortNatural() {
	files := descriptors("p10.xml", "p9.xml")
	SortNatural(files)
	fmt.Println(files[0].Name, files[1].Name)
	// Output: p9.xml p10.xml
}
