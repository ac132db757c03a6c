package tracer

import (
	"fmt"
	"strconv"
	"strings"
)

// frame is one entry on the renderer's explicit DFS stack.
type frame struct {
	url     string
	level   int             // root = 0
	active  []bool          // active[i] true iff depth i+1 has a later sibling still to come
	parents map[string]bool // URLs on the path from root to this frame
}

// disposition is what Render decided to do with a popped frame.
type disposition int

const (
	dispExpand disposition = iota
	dispCycle
	dispShared
)

// Render produces the box-drawing text tree for m, rooted at m.Root.
// It is a pure function of m: identical inputs produce byte-identical
// outputs (P6).
//
// The traversal is an explicit-stack DFS (front = index 0, children
// prepended as a block in their own order so they pop in forward order).
// Each URL is expanded at most once: at the first occurrence popped while
// no other occurrence of it is still waiting on the stack, so a deeper
// occurrence yields to a shallower one that is already queued ("shallower
// wins"). Every other occurrence renders as a leaf marked either as an
// ancestor cycle (⟳) or a shared-subgraph reference (🔗).
func Render(m *LinkMap) string {
	var sb strings.Builder

	stack := []frame{{url: m.Root, level: 0, parents: map[string]bool{}}}
	pending := map[string]int{m.Root: 1}
	expanded := map[string]bool{}

	for len(stack) > 0 {
		f := stack[0]
		stack = stack[1:]
		pending[f.url]--

		disp := dispExpand
		switch {
		case f.parents[f.url]:
			disp = dispCycle
		case expanded[f.url] || pending[f.url] > 0:
			disp = dispShared
		}

		writeLine(&sb, m, f, disp, nextLevel(stack))

		if disp != dispExpand {
			continue
		}

		expanded[f.url] = true
		v, ok := m.Map[f.url]
		if !ok || v.Kind != KindLinks || len(v.Links) == 0 {
			continue
		}

		childParents := make(map[string]bool, len(f.parents)+1)
		for p := range f.parents {
			childParents[p] = true
		}
		childParents[f.url] = true

		children := make([]frame, len(v.Links))
		for i, link := range v.Links {
			active := append(append([]bool(nil), f.active...), i < len(v.Links)-1)
			children[i] = frame{
				url:     link,
				level:   f.level + 1,
				active:  active,
				parents: childParents,
			}
			pending[link]++
		}
		stack = append(children, stack...)
	}

	return sb.String()
}

// nextLevel returns the level of the new stack front, or -1 if empty.
func nextLevel(stack []frame) int {
	if len(stack) == 0 {
		return -1
	}
	return stack[0].level
}

// writeLine emits one rendered line for frame f.
func writeLine(sb *strings.Builder, m *LinkMap, f frame, disp disposition, nextLvl int) {
	sb.WriteString(indent(f))

	if f.level > 0 {
		if f.level <= nextLvl {
			sb.WriteString("├──")
		} else {
			sb.WriteString("└──")
		}
	}

	sb.WriteString(f.url)

	switch disp {
	case dispCycle:
		sb.WriteString(" ⟳")
	case dispShared:
		sb.WriteString(" \U0001F517")
	default:
		writeError(sb, m, f.url)
	}

	sb.WriteString("\n")
}

// writeError appends the error annotation for url, if any.
func writeError(sb *strings.Builder, m *LinkMap, url string) {
	v, ok := m.Map[url]
	if !ok || v.Kind != KindError {
		return
	}
	switch e := v.Err.(type) {
	case *RequestError:
		fmt.Fprintf(sb, " - \U0001F635 %d", e.Code)
	case *ContentError:
		fmt.Fprintf(sb, " - \U0001F635 %s", strconv.Quote(e.Message))
	}
}

// indent renders the continuation columns for ancestor depths
// [1, level-1]: "│  " where that ancestor still has a later sibling,
// three spaces otherwise.
func indent(f frame) string {
	if f.level == 0 {
		return ""
	}
	var sb strings.Builder
	for i := 0; i < f.level-1; i++ {
		if i < len(f.active) && f.active[i] {
			sb.WriteString("│  ")
		} else {
			sb.WriteString("   ")
		}
	}
	return sb.String()
}
