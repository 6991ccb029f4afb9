package catalog

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// ProgressTracker writes a single updating line as embedding batches complete.
// A nil writer disables output. Safe for concurrent use.
type ProgressTracker struct {
	mu        sync.Mutex
	writer    io.Writer
	total     int
	done      int
	batches   int
	startTime time.Time
}

// NewProgressTracker creates a tracker for total records and starts its clock.
func NewProgressTracker(writer io.Writer, total int) *ProgressTracker {
	return &ProgressTracker{
		writer:    writer,
		total:     total,
		startTime: time.Now(),
	}
}

// BatchDone records a finished batch of n records.
func (p *ProgressTracker) BatchDone(n int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.batches++
	p.done = min(p.done+n, p.total)
	p.report()
}

// Done returns the number of records embedded so far.
func (p *ProgressTracker) Done() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.done
}

// Finish prints the final line.
func (p *ProgressTracker) Finish() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.writer == nil {
		return
	}
	p.report()
	fmt.Fprintln(p.writer)
}

// report must be called with the lock held.
func (p *ProgressTracker) report() {
	if p.writer == nil {
		return
	}

	percentage := 100.0
	if p.total > 0 {
		percentage = float64(p.done) / float64(p.total) * 100.0
	}
	fmt.Fprintf(p.writer, "\rEmbedding media: %d/%d (%.1f%%) in %d batches, %s",
		p.done, p.total, percentage, p.batches, time.Since(p.startTime).Round(time.Millisecond))
}
