package reducer

import (
	"fmt"
	"io"
	"strings"
)

const (
	PROGRESS_BAR_WIDTH        = 50
	DEFAULT_PROGRESS_INTERVAL = 1000
)

// ProgressBar renders "\r[=====-----] 50.0%" for current out of total lines.
func ProgressBar(current, total, width int) string {
	var percent float64 = 1
	if total > 0 {
		percent = float64(current) / float64(total)
	}
	filled := int(float64(width) * percent)
	if filled > width {
		filled = width
	} else if filled < 0 {
		filled = 0
	}
	bar := strings.Repeat("=", filled) + strings.Repeat("-", width-filled)
	return fmt.Sprintf("\r[%s] %.1f%%", bar, percent*100)
}

// Progress throttles ProgressBar output for one pass. A nil *Progress
// prints nothing.
type Progress struct {
	out      io.Writer
	total    int
	interval int
	width    int
	// live redraws the bar in place; otherwise only the final state is shown.
	live    bool
	printed bool
}

func NewProgress(out io.Writer, total, interval int, live bool) *Progress {
	if interval <= 0 {
		interval = DEFAULT_PROGRESS_INTERVAL
	}
	return &Progress{
		out:      out,
		total:    total,
		interval: interval,
		width:    PROGRESS_BAR_WIDTH,
		live:     live,
	}
}

func (p *Progress) Update(line int) {
	if p == nil {
		return
	}
	if line != p.total && (!p.live || line%p.interval != 0) {
		return
	}
	fmt.Fprint(p.out, ProgressBar(line, p.total, p.width))
	p.printed = true
}

// Finish ends the bar line. An empty input draws no bar.
func (p *Progress) Finish() {
	if p == nil {
		return
	}
	if !p.printed && p.total > 0 {
		fmt.Fprint(p.out, ProgressBar(p.total, p.total, p.width))
	}
	fmt.Fprintln(p.out)
}
