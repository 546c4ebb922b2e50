package cldt

import "strings"

const (
	conditionalEnd  = "if_end"
	conditionalElse = "if_else"
	layerApplyFlag  = "fl_layer_apply"
)

var layerOpenPrefixes = []string{"l_", "u_"}

// Step describes what one line did to the block state and where the
// formatter should render it.
type Step struct {
	// Depth is the block depth the line renders at: the depth before the
	// line's own close but after every close from preceding lines.
	Depth int
	// Indent is the indentation level to use: Depth, or Depth+1 for
	// multi-line-parameter continuations.
	Indent int
	// ClosesBlock is true for a conditional end or a layer apply. The
	// formatter inserts a blank line after such lines.
	ClosesBlock bool
	// ElseBoundary is true for the alternate-branch keyword, which closes
	// and reopens in one step (net depth change zero).
	ElseBoundary bool
	// Clamped is true when a close found no open block to match. The
	// tracker absorbs it silently; the lint pass may still flag it.
	Clamped bool
}

// BlockTracker follows conditional and layer blocks through a document.
// The zero value is ready to use; each document pass starts from depth 0.
type BlockTracker struct {
	depth int
}

// Depth returns the current nesting depth.
func (t *BlockTracker) Depth() int {
	return t.depth
}

// Reset returns the tracker to the start-of-document state.
func (t *BlockTracker) Reset() {
	t.depth = 0
}

// Advance consumes one classified line and returns its rendering step.
// Opens take effect for the next line; a line's own close does not lower
// the depth it renders at.
func (t *BlockTracker) Advance(ln Line) Step {
	st := Step{Depth: t.depth, Indent: t.depth}

	switch ln.Role {
	case RoleMultiLineCont:
		// Always nested one level inside the statement that opened the span.
		st.Indent = t.depth + 1
		return st
	case RoleBlank, RoleComment, RoleMultiLineStart, RoleVersion, RolePublicID:
		return st
	}

	text := ln.Text
	switch {
	case text == conditionalEnd:
		st.ClosesBlock = true
		st.Clamped = !t.pop()
	case text == conditionalElse || strings.HasPrefix(text, conditionalElse+"_"):
		// Close the current branch and open the alternate one.
		st.ElseBoundary = true
		st.Clamped = !t.pop()
		t.depth++
	case strings.Contains(text, layerApplyFlag):
		st.ClosesBlock = true
		st.Clamped = !t.pop()
	case strings.HasPrefix(text, conditionalPrefix):
		t.depth++
	case opensLayer(text):
		t.depth++
	}
	return st
}

// pop lowers the depth, clamping at zero. Returns false when there was
// nothing to close.
func (t *BlockTracker) pop() bool {
	if t.depth == 0 {
		return false
	}
	t.depth--
	return true
}

func opensLayer(text string) bool {
	for _, p := range layerOpenPrefixes {
		if strings.HasPrefix(text, p) {
			return true
		}
	}
	return false
}
