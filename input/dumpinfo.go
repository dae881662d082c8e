package input

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"os"
	"path/filepath"

	"github.com/golang/glog"
	"github.com/pkg/errors"
)

// StatusFile is the name of the mirror's per dump job index
const StatusFile = "dumpstatus.json"

// StatusDone is the job status of a complete dump
const StatusDone = "done"

// Descriptor describes one dump file
type Descriptor struct {
	Name     FileName `json:"name"`
	Size     int64    `json:"size"`
	Location Location `json:"-"`
	// URL is the file's address when the location is remote
	URL  string `json:"url,omitempty"`
	MD5  string `json:"md5,omitempty"`
	SHA1 string `json:"sha1,omitempty"`
}

// Compression returns the compression scheme implied by the file name:
// "bz2", "gz" or "" for none.
func (d Descriptor) Compression() string {
	switch ext := d.Name.Ext(); ext {
	case "bz2", "gz":
		return ext
	}
	return ""
}

// DumpInfo lists the files of a dump, in natural file name order
type DumpInfo struct {
	Status  string       `json:"status,omitempty"`
	Updated string       `json:"updated,omitempty"`
	Files   []Descriptor `json:"files"`
}

// TotalSize is the sum of the file sizes
func (di *DumpInfo) TotalSize() (total int64) {
	for _, f := range di.Files {
		total += f.Size
	}
	return total
}

// LoadDumpInfo describes the dump at loc. A local file is described by
// itself; a remote dump by the articles job of the mirror's status file.
func LoadDumpInfo(ctx context.Context, client *http.Client, loc Location) (*DumpInfo, error) {
	if !loc.IsRemote() {
		fi, err := os.Stat(loc.Path)
		if err != nil {
			return nil, errors.WithStack(err)
		}
		if fi.IsDir() {
			return nil, errors.Errorf("provided path does not point to a file: %s", loc.Path)
		}
		return &DumpInfo{Files: []Descriptor{{
			Name:     FileName(filepath.Base(loc.Path)),
			Size:     fi.Size(),
			Location: loc,
		}}}, nil
	}

	statusURL := loc.Remote.FileURL(StatusFile)
	glog.V(1).Infof("fetching %s", statusURL)
	resp, err := get(ctx, client, statusURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var status struct {
		Jobs map[string]*struct {
			Status  string `json:"status"`
			Updated string `json:"updated"`
			Files   map[string]struct {
				Size int64  `json:"size"`
				URL  string `json:"url"`
				MD5  string `json:"md5"`
				SHA1 string `json:"sha1"`
			} `json:"files"`
		} `json:"jobs"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		return nil, errors.Wrapf(err, "unsupported '%s' format", StatusFile)
	}
	job := status.Jobs["articlesdump"]
	if job == nil {
		return nil, errors.Errorf("unsupported '%s' format: no articlesdump job", StatusFile)
	}

	info := &DumpInfo{Status: job.Status, Updated: job.Updated}
	for name, f := range job.Files {
		d := Descriptor{Name: FileName(name), Size: f.Size, Location: loc, MD5: f.MD5, SHA1: f.SHA1}
		d.URL = loc.Remote.FileURL(name)
		if f.URL != "" {
			if ref, err := url.Parse(f.URL); err == nil {
				d.URL = loc.Remote.Base.ResolveReference(ref).String()
			}
		}
		info.Files = append(info.Files, d)
	}
	SortNatural(info.Files)
	return info, nil
}
