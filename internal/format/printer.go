package format

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"cldt/internal/cldt"
)

// Source renders content into its canonical form. A document that is a
// single decomposable delivery URL is exploded into one component per line;
// everything else is treated as a multi-line CLDT document and re-rendered.
// Formatting never fails: text the engine does not recognize comes back
// re-indented but otherwise unchanged.
func Source(content []byte, opts Options) []byte {
	opts = opts.withDefaults()
	text := strings.ReplaceAll(string(content), "\r\n", "\n")

	if u, ok := singleLineURL(text); ok {
		return renderLines(explodeURL(u), opts)
	}
	return renderLines(strings.Split(text, "\n"), opts)
}

func singleLineURL(text string) (cldt.BoundURL, bool) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" || strings.ContainsRune(trimmed, '\n') {
		return cldt.BoundURL{}, false
	}
	return cldt.DecomposeURL(trimmed)
}

type lineEntry struct {
	indent      int
	text        string
	closesBlock bool
}

// renderLines classifies every raw line, tracks block depth and emits the
// canonical document.
func renderLines(rawLines []string, opts Options) []byte {
	var (
		tracker      cldt.BlockTracker
		scan         cldt.ScanState
		entries      []lineEntry
		pendingBlank bool
	)

	for _, raw := range rawLines {
		var ln cldt.Line
		ln, scan = cldt.ClassifyLine(raw, scan)

		if ln.Role == cldt.RoleBlank {
			// Source blanks collapse to at most one, and never lead the
			// document.
			if len(entries) > 0 {
				pendingBlank = true
			}
			continue
		}

		step := tracker.Advance(ln)
		needBlank := pendingBlank || (len(entries) > 0 && entries[len(entries)-1].closesBlock)
		if needBlank && len(entries) > 0 {
			entries = append(entries, lineEntry{})
		}
		pendingBlank = false

		entries = append(entries, lineEntry{
			indent:      step.Indent,
			text:        renderLine(ln, step.Indent, opts),
			closesBlock: step.ClosesBlock,
		})
	}

	if len(entries) == 0 {
		return []byte{}
	}

	w := NewWriter(opts)
	for _, e := range entries {
		w.WriteLine(e.indent, e.text)
	}
	return w.Bytes()
}

// renderLine produces the line's text without indentation: payload plus
// normalized delimiter, with any inline comment aligned at the comment
// column.
func renderLine(ln cldt.Line, indent int, opts Options) string {
	if ln.Role == cldt.RoleComment {
		return ln.Text
	}

	body := ln.Text + delimFor(ln).String()
	if ln.Comment == "" {
		return body
	}
	if body == "" {
		return ln.Comment
	}

	visual := indent*opts.IndentWidth + runewidth.StringWidth(body)
	pad := opts.CommentColumn - visual
	if pad < 1 {
		pad = 1
	}
	return body + strings.Repeat(" ", pad) + ln.Comment
}

// delimFor preserves the line's own trailing delimiter; without one,
// transformation lines default to the pipeline separator and everything
// else stays bare.
func delimFor(ln cldt.Line) cldt.Delimiter {
	if ln.Delim != cldt.DelimNone {
		return ln.Delim
	}
	if ln.Role == cldt.RoleTransformation {
		return cldt.DelimSlash
	}
	return cldt.DelimNone
}
