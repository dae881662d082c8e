package dump

import (
	"strconv"
	"time"

	"github.com/pkg/errors"

	"github.com/Caellian/wiki-extractor/tag"
)

// Contributor is the author of a revision. Suppressed contributors are
// written as <contributor deleted="deleted"/> and have no fields.
type Contributor struct {
	*tag.Composite

	Username *tag.Value[string]
	ID       *tag.Value[uint64]
	IP       *tag.Value[string]
}

func NewContributor() *Contributor {
	c := &Contributor{
		Username: tag.NewString("username"),
		ID:       tag.NewUint("id"),
		IP:       tag.NewString("ip"),
	}
	c.Composite = tag.NewComposite("contributor", c.Username, c.ID, c.IP)
	return c
}

// Deleted reports whether the contributor was suppressed
func (c *Contributor) Deleted() bool {
	_, ok := c.Attributes().Get("deleted")
	return ok
}

// Revision is a <revision> of a page
type Revision struct {
	*tag.Composite

	ID          *tag.Value[uint64]
	ParentID    *tag.Value[uint64]
	Timestamp   *tag.Value[string]
	Contributor *Contributor
	Minor       *tag.Value[bool]
	Comment     *tag.Value[string]
	Origin      *tag.Value[uint64]
	Model       *tag.Value[string]
	Format      *tag.Value[string]
	Text        *tag.Value[string]
	SHA1        *tag.Value[string]
}

func NewRevision() *Revision {
	r := &Revision{
		ID:          tag.NewUint("id"),
		ParentID:    tag.NewUint("parentid"),
		Timestamp:   tag.NewString("timestamp"),
		Contributor: NewContributor(),
		Minor:       tag.NewFlag("minor"),
		Comment:     tag.NewString("comment"),
		Origin:      tag.NewUint("origin"),
		Model:       tag.NewString("model"),
		Format:      tag.NewString("format"),
		Text:        tag.NewString("text"),
		SHA1:        tag.NewString("sha1"),
	}
	r.Composite = tag.NewComposite("revision",
		r.ID, r.ParentID, r.Timestamp, r.Contributor, r.Minor, r.Comment,
		r.Origin, r.Model, r.Format, r.Text, r.SHA1)
	return r
}

// Time parses the revision timestamp
func (r *Revision) Time() (time.Time, error) {
	ts, ok := r.Timestamp.Value()
	if !ok {
		return time.Time{}, errors.New("revision has no timestamp")
	}
	t, err := time.Parse(time.RFC3339, ts)
	return t, errors.Wrapf(err, "revision %d timestamp", r.ID.Get())
}

// Size returns the text length in bytes as declared by the bytes
// attribute of <text>
func (r *Revision) Size() (int64, bool) {
	v, ok := r.Text.Attributes().Get("bytes")
	if !ok {
		return 0, false
	}
	n, err := strconv.ParseInt(v, 10, 64)
	return n, err == nil
}
