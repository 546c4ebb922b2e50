package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"cldt/internal/diag"
	"cldt/internal/source"
)

// Pretty renders diagnostics in a human-readable form. It walks bag.Items()
// (call bag.Sort() first for stable output) and prints for each one:
//
//	<path>:<line>:<col>: <severity>[<code>]: <message>
//
// followed by the source line and a ^~~~ underline covering the primary
// span, then notes and fix titles when enabled.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	if bag == nil || fs == nil {
		return
	}
	for _, d := range bag.Items() {
		printDiagnostic(w, d, fs, opts)
	}
}

func printDiagnostic(w io.Writer, d diag.Diagnostic, fs *source.FileSet, opts PrettyOpts) {
	f := fs.Get(d.Primary.File)
	start, end := fs.Resolve(d.Primary)

	sev := d.Severity.String()
	if opts.Color {
		sev = severityColor(d.Severity).Sprint(sev)
	}
	fmt.Fprintf(w, "%s:%d:%d: %s[%s]: %s\n",
		pathFor(f, fs, opts.PathMode), start.Line, start.Col, sev, d.Code.ID(), d.Message)

	printUnderline(w, f, start, end, opts)

	if opts.ShowNotes {
		for _, n := range d.Notes {
			noteStart, _ := fs.Resolve(n.Span)
			fmt.Fprintf(w, "  note: %s:%d:%d: %s\n",
				pathFor(fs.Get(n.Span.File), fs, opts.PathMode), noteStart.Line, noteStart.Col, n.Msg)
		}
	}
	if opts.ShowFixes {
		for _, fix := range d.Fixes {
			fmt.Fprintf(w, "  help: %s\n", fix.Title)
		}
	}
}

// printUnderline shows the source line with a caret marker underneath. The
// underline stops at the end of the first line for multi-line spans.
func printUnderline(w io.Writer, f *source.File, start, end source.LineCol, opts PrettyOpts) {
	line := f.GetLine(start.Line)
	if line == "" && start.Col <= 1 {
		return
	}
	fmt.Fprintf(w, "  %s\n", line)

	startIdx := int(start.Col) - 1
	if startIdx > len(line) {
		startIdx = len(line)
	}
	endIdx := len(line)
	if end.Line == start.Line && int(end.Col)-1 < endIdx {
		endIdx = int(end.Col) - 1
	}
	if endIdx < startIdx {
		endIdx = startIdx
	}

	pad := runewidth.StringWidth(line[:startIdx])
	width := runewidth.StringWidth(line[startIdx:endIdx])
	marker := "^"
	if width > 1 {
		marker += strings.Repeat("~", width-1)
	}
	if opts.Color {
		marker = color.New(color.FgGreen, color.Bold).Sprint(marker)
	}
	fmt.Fprintf(w, "  %s%s\n", strings.Repeat(" ", pad), marker)
}

func severityColor(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return color.New(color.FgRed, color.Bold)
	case diag.SevWarning:
		return color.New(color.FgYellow, color.Bold)
	case diag.SevInfo:
		return color.New(color.FgCyan)
	default:
		return color.New(color.FgHiBlack)
	}
}

func pathFor(f *source.File, fs *source.FileSet, mode PathMode) string {
	if mode == PathModeRelative {
		return f.FormatPath("relative", fs.BaseDir())
	}
	return f.FormatPath(mode.formatMode(), "")
}
