package input

import (
	"net/url"
	"path"
	"strings"

	"github.com/pkg/errors"
)

const (
	DefaultMirror   = "https://dumps.wikimedia.org/"
	DefaultLanguage = "en"
	DefaultVersion  = "latest"
)

// Remote is a wiki dump directory on a mirror
type Remote struct {
	Base     *url.URL
	Language string
	// Version is the dump date (YYYYMMDD) or "latest"
	Version string
}

// FileURL returns the URL of name within the dump directory
func (r *Remote) FileURL(name string) string {
	u := *r.Base
	u.Path = path.Join("/", u.Path, r.Language+"wiki", r.Version, name)
	return u.String()
}

// Location is where a dump is read from: a local file when Path is set,
// a mirror otherwise.
type Location struct {
	Path   string
	Remote *Remote
}

func (l Location) IsRemote() bool { return l.Remote != nil }

func (l Location) String() string {
	if l.Remote != nil {
		return l.Remote.FileURL("")
	}
	return l.Path
}

// LocalFile returns the Location of the dump file at path
func LocalFile(path string) Location { return Location{Path: path} }

// Mirror returns the Location of a dump directory on the mirror at base.
// Empty language and version select the defaults.
func Mirror(base, language, version string) (Location, error) {
	u, err := url.Parse(base)
	if err != nil {
		return Location{}, errors.Wrapf(err, "invalid mirror url %q", base)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return Location{}, errors.Errorf("unsupported mirror url scheme %q", u.Scheme)
	}
	if language == "" {
		language = DefaultLanguage
	}
	if version == "" {
		version = DefaultVersion
	}
	return Location{Remote: &Remote{Base: u, Language: language, Version: version}}, nil
}

// ParseLocation treats s as a mirror URL if it has an http(s) scheme and
// as a local path otherwise
func ParseLocation(s string) (Location, error) {
	if strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://") {
		return Mirror(s, "", "")
	}
	if s == "" {
		return Location{}, errors.New("empty dump location")
	}
	return LocalFile(s), nil
}
