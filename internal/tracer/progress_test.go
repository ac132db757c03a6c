package tracer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTerminalProgress_FirstFrameClearsScreen(t *testing.T) {
	var sb strings.Builder
	p := NewTerminalProgress(&sb, "https://example.com")

	p.Report(0, 1, 1, 0)

	out := sb.String()
	assert.True(t, strings.HasPrefix(out, "\033[2J\033[H"))
	assert.Contains(t, out, "Tracing - https://example.com")
	assert.Contains(t, out, "0/1")
}

func TestTerminalProgress_SubsequentFramesHomeAndClear(t *testing.T) {
	var sb strings.Builder
	p := NewTerminalProgress(&sb, "https://example.com")

	p.Report(0, 1, 1, 0)
	sb.Reset()
	p.Report(1, 1, 0, 0)

	assert.True(t, strings.HasPrefix(sb.String(), "\033[f\033[0J"))
}

func TestTerminalProgress_BarFillsProportionally(t *testing.T) {
	var sb strings.Builder
	p := NewTerminalProgress(&sb, "https://example.com")

	p.Report(50, 100, 0, 0)

	out := sb.String()
	assert.Equal(t, 50, strings.Count(out, "█"))
}

func TestTerminalProgress_ZeroSeenDoesNotDivideByZero(t *testing.T) {
	var sb strings.Builder
	p := NewTerminalProgress(&sb, "https://example.com")

	assert.NotPanics(t, func() { p.Report(0, 0, 0, 0) })
}

func TestNopProgress_DoesNothing(t *testing.T) {
	assert.NotPanics(t, func() { NopProgress{}.Report(1, 2, 3, 4) })
}
