package extract

import (
	"encoding/json"
	"io"

	"github.com/pkg/errors"

	"github.com/Caellian/wiki-extractor/parseerr"
)

// ErrorReport describes an error in a Report
type ErrorReport struct {
	Message string          `json:"message"`
	Page    string          `json:"page,omitempty"`
	Detail  *parseerr.Error `json:"detail,omitempty"`
}

func newErrorReport(err error, page string) *ErrorReport {
	r := &ErrorReport{Message: err.Error(), Page: page}
	var pe *parseerr.Error
	if errors.As(err, &pe) {
		r.Detail = pe
	}
	return r
}

// FileReport is the outcome of parsing one file
type FileReport struct {
	Name      string `json:"name"`
	Pages     int    `json:"pages"`
	Redirects int    `json:"redirects"`
	// Skipped counts pages dropped under the SkipPage policy
	Skipped int            `json:"skipped"`
	Dropped []*ErrorReport `json:"dropped,omitempty"`
	Error   *ErrorReport   `json:"error,omitempty"`

	err error
}

// Err returns the error which ended the file, if any
func (f *FileReport) Err() error { return f.err }

func (f *FileReport) fail(err error) {
	f.err = err
	f.Error = newErrorReport(err, "")
}

// Report is the outcome of a run
type Report struct {
	Files []*FileReport `json:"files"`
}

// Failed returns the reports of the files which ended in error
func (r *Report) Failed() (failed []*FileReport) {
	for _, f := range r.Files {
		if f.err != nil {
			failed = append(failed, f)
		}
	}
	return failed
}

// Pages returns the number of pages parsed in every file
func (r *Report) Pages() (n int) {
	for _, f := range r.Files {
		n += f.Pages
	}
	return n
}

func (r *Report) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return errors.WithStack(enc.Encode(r))
}
