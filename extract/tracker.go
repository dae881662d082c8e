package extract

import (
	"fmt"
	"time"

	"github.com/golang/glog"
)

const mib = 1 << 20

// Tracker measures progress through the compressed bytes of a run
type Tracker struct {
	total    int64
	done     int64
	current  int64
	start    time.Time
	logEvery int64
	logged   int64
	now      func() time.Time
}

// NewTracker returns a Tracker for a run of total bytes, logging progress
// every logEvery bytes (never, if zero)
func NewTracker(total, logEvery int64) *Tracker {
	return &Tracker{total: total, logEvery: logEvery, now: time.Now, start: time.Now()}
}

// Update records that consumed bytes of the current file were read
func (t *Tracker) Update(consumed int64) {
	t.current = consumed
	if t.logEvery > 0 && t.Consumed()-t.logged >= t.logEvery {
		t.logged = t.Consumed()
		glog.Info(t)
	}
}

// FileDone moves on to the next file; size is the finished file's size
func (t *Tracker) FileDone(size int64) {
	if size < t.current {
		size = t.current
	}
	t.done += size
	t.current = 0
}

func (t *Tracker) Consumed() int64 { return t.done + t.current }

// Progress returns the completed fraction of the run, in [0, 1]
func (t *Tracker) Progress() float64 {
	if t.total <= 0 {
		return 0
	}
	p := float64(t.Consumed()) / float64(t.total)
	if p > 1 {
		return 1
	}
	return p
}

// ETA estimates the time remaining from the average rate so far
func (t *Tracker) ETA() time.Duration {
	consumed := t.Consumed()
	elapsed := t.now().Sub(t.start)
	if consumed <= 0 || elapsed <= 0 || t.total <= consumed {
		return 0
	}
	rate := float64(consumed) / elapsed.Seconds()
	return time.Duration(float64(t.total-consumed) / rate * float64(time.Second)).Round(time.Second)
}

func (t *Tracker) String() string {
	return fmt.Sprintf("progress %.1f%% (%s / %s), ETA %s",
		t.Progress()*100, formatBytes(t.Consumed()), formatBytes(t.total), t.ETA())
}

func formatBytes(n int64) string {
	switch {
	case n >= 1<<30:
		return fmt.Sprintf("%.2f GiB", float64(n)/(1<<30))
	case n >= mib:
		return fmt.Sprintf("%.2f MiB", float64(n)/mib)
	case n >= 1<<10:
		return fmt.Sprintf("%.2f KiB", float64(n)/(1<<10))
	}
	return fmt.Sprintf("%d B", n)
}
