// Package progressbar implements functionality of printing a progress
// bar to the terminal window
package progressbar

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

// ProgressBar prints the progress of a fixed number of work items.
// The bar is redrawn in place each time an item completes.
//
// ProgressBar is safe for concurrent use, so that concurrent workers
// may each report their own completed items.
type ProgressBar struct {
	mu sync.Mutex

	out       io.Writer
	width     int
	max       int
	current   int
	startTime time.Time
}

// New returns a new ProgressBar which is width characters wide and is
// full after max items complete
func New(out io.Writer, width, max int) *ProgressBar {
	return &ProgressBar{
		out:       out,
		width:     width,
		max:       max,
		startTime: time.Now(),
	}
}

// Increment marks one more item as complete and redraws the bar
func (p *ProgressBar) Increment() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.current < p.max {
		p.current++
	}
	p.display()
}

// Current returns the number of completed items
func (p *ProgressBar) Current() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current
}

// Close ends the line the bar is drawn on
func (p *ProgressBar) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintln(p.out)
}

// String returns the current bar
func (p *ProgressBar) String() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.bar()
}

func (p *ProgressBar) display() {
	fmt.Fprintf(p.out, "\r\033[K%v", p.bar())
}

func (p *ProgressBar) bar() string {
	fraction := 1.0
	if p.max > 0 {
		fraction = float64(p.current) / float64(p.max)
	}
	filled := int(fraction * float64(p.width))

	var bar strings.Builder
	bar.WriteString("|")
	bar.WriteString(strings.Repeat("█", filled))
	bar.WriteString(strings.Repeat(" ", p.width-filled))
	fmt.Fprintf(&bar, "| [%d/%d %.2f%% | elapsed: %v]", p.current, p.max,
		fraction*100, time.Since(p.startTime).Truncate(time.Second))

	return bar.String()
}
