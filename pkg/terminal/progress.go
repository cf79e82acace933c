package terminal

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"
)

// ProgressBar represents a terminal progress bar
type ProgressBar struct {
	out     io.Writer
	total   int
	current int
	width   int
	prefix  string
	start   time.Time
	enabled bool
}

// NewProgressBar creates a progress bar on stdout that only renders when
// stdout is a terminal.
func NewProgressBar(total int, prefix string) *ProgressBar {
	return &ProgressBar{
		out:     os.Stdout,
		total:   total,
		width:   40,
		prefix:  prefix,
		start:   time.Now(),
		enabled: IsTerminal(),
	}
}

// Update updates the progress bar
func (p *ProgressBar) Update(current int) {
	p.current = current
	p.render()
}

// Track matches the unpacker's progress callback signature.
func (p *ProgressBar) Track(done, total int) {
	p.total = total
	p.Update(done)
}

// Increment increments the progress by 1
func (p *ProgressBar) Increment() {
	p.current++
	p.render()
}

// Finish completes the progress bar
func (p *ProgressBar) Finish() {
	p.current = p.total
	p.render()
	if p.enabled {
		fmt.Fprintln(p.out)
	}
}

func (p *ProgressBar) render() {
	if !p.enabled || p.total <= 0 {
		return
	}

	percent := float64(p.current) / float64(p.total)
	if percent > 1 {
		percent = 1
	}
	filled := int(percent * float64(p.width))

	bar := strings.Repeat("█", filled) + strings.Repeat("░", p.width-filled)

	elapsed := time.Since(p.start).Seconds()
	rate := 0.0
	if elapsed > 0 {
		rate = float64(p.current) / elapsed
	}

	fmt.Fprintf(p.out, "\r%s [%s] %d/%d (%.0f/s)", p.prefix, bar, p.current, p.total, rate)
}
