package tracer

import (
	"fmt"
	"io"
)

// barWidth is the fixed width of the progress bar, per spec §6.
const barWidth = 100

// TerminalProgress renders a repeatedly-overwritten progress frame to an
// io.Writer using terminal control sequences. It is an external
// collaborator to the core trace engine (spec §1): the engine only
// calls Report with a state snapshot, it never reasons about terminal
// semantics itself.
type TerminalProgress struct {
	w        io.Writer
	root     string
	firstRun bool
}

// NewTerminalProgress returns a TerminalProgress writing frames to w.
func NewTerminalProgress(w io.Writer, root string) *TerminalProgress {
	return &TerminalProgress{w: w, root: root, firstRun: true}
}

// Report writes one progress frame. On the first call it clears the
// screen and homes the cursor; on subsequent calls it homes the cursor
// and clears below, so each frame overwrites the last in place.
func (p *TerminalProgress) Report(done, seen, queued, inFlight int) {
	if p.firstRun {
		fmt.Fprint(p.w, "\033[2J\033[H")
		p.firstRun = false
	} else {
		fmt.Fprint(p.w, "\033[f\033[0J")
	}

	fraction := 0.0
	if seen > 0 {
		fraction = float64(done) / float64(seen)
	}
	filled := int(fraction * float64(barWidth))
	if filled > barWidth {
		filled = barWidth
	}

	fmt.Fprintf(p.w, "Tracing - %s\n", p.root)
	fmt.Fprintf(p.w, "%s| %d/%d %d queued, %d in processing\n", barBlocks(filled), done, seen, queued, inFlight)
}

// barBlocks renders filled full-block characters followed by spaces to
// barWidth total runes.
func barBlocks(filled int) string {
	runes := make([]rune, barWidth)
	for i := range runes {
		if i < filled {
			runes[i] = '█'
		} else {
			runes[i] = ' '
		}
	}
	return string(runes)
}

// NopProgress discards every report. Used by tests and anywhere the
// live display is undesired.
type NopProgress struct{}

func (NopProgress) Report(int, int, int, int) {}
