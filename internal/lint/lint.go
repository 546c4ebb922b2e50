package lint

import (
	"fmt"
	"strconv"
	"strings"

	"fortio.org/safecast"

	"cldt/internal/cldt"
	"cldt/internal/diag"
	"cldt/internal/source"
)

// Run lints one document, reporting findings through r. It never fails:
// malformed values that do not parse are treated as non-matches, not
// errors.
func Run(f *source.File, r diag.Reporter) {
	if f == nil || r == nil {
		return
	}

	var (
		scan    cldt.ScanState
		tracker cldt.BlockTracker
	)

	lineCount := uint32(len(f.LineIdx) + 1)
	for lineNum := uint32(1); lineNum <= lineCount; lineNum++ {
		lineSpan := f.LineSpan(lineNum)
		raw := string(f.Content[lineSpan.Start:lineSpan.End])

		insideSpan := scan.InMultiLine
		var ln cldt.Line
		ln, scan = cldt.ClassifyLine(raw, scan)
		step := tracker.Advance(ln)

		// Lines inside an open multi-line-parameter span are free text.
		if insideSpan {
			continue
		}
		if ln.Role == cldt.RoleBlank || ln.Role == cldt.RoleComment {
			continue
		}

		if step.Clamped {
			diag.ReportWarning(r, diag.LintUnmatchedEnd, textSpan(f, lineSpan, raw, ln.Text),
				fmt.Sprintf("'%s' has no matching open block", ln.Text)).Emit()
		}

		checkMissingColon(f, lineSpan, raw, ln, r)
		checkBraces(f, lineSpan, raw, ln, r)
		checkNumericRanges(f, lineSpan, raw, ln, r)
		checkDeprecated(f, lineSpan, raw, ln, r)
	}
}

// Source is the convenience entry point over raw text: it returns a sorted,
// deduplicated bag of at most max diagnostics.
func Source(content []byte, max int) *diag.Bag {
	fs := source.NewFileSet()
	id := fs.AddVirtual("<input>", content)
	bag := diag.NewBag(max)
	Run(fs.Get(id), diag.NewDedupReporter(diag.BagReporter{Bag: bag}))
	bag.Sort()
	return bag
}

// checkMissingColon flags lines that match none of the recognized CLDT
// shapes yet read like a "property value" pair missing its colon.
func checkMissingColon(f *source.File, lineSpan source.Span, raw string, ln cldt.Line, r diag.Reporter) {
	if ln.Role != cldt.RolePublicID {
		// Transformations, versions and multi-line starts are valid shapes.
		return
	}
	if ln.Delim != cldt.DelimNone {
		return
	}
	text := ln.Text
	if strings.Contains(text, ":") {
		return
	}
	if cldt.IsDeliveryURL(text) || fileExtensionRe.MatchString(text) {
		return
	}
	if !bareWordValueRe.MatchString(text) {
		return
	}

	fields := strings.Fields(text)
	diag.ReportError(r, diag.LintMissingColon, textSpan(f, lineSpan, raw, text),
		fmt.Sprintf("missing ':' between '%s' and its value", fields[0])).Emit()
}

// checkBraces flags a per-line count mismatch for each delimiter pair. The
// check is not block-aware: it looks at one line at a time.
func checkBraces(f *source.File, lineSpan source.Span, raw string, ln cldt.Line, r diag.Reporter) {
	text := ln.Text
	for _, pair := range bracePairs {
		open := strings.Count(text, string(pair[0]))
		closed := strings.Count(text, string(pair[1]))
		if open != closed {
			diag.ReportWarning(r, diag.LintUnmatchedBraces, textSpan(f, lineSpan, raw, text),
				fmt.Sprintf("unbalanced '%c%c': %d opening, %d closing", pair[0], pair[1], open, closed)).Emit()
			return
		}
	}
}

func checkNumericRanges(f *source.File, lineSpan source.Span, raw string, ln cldt.Line, r diag.Reporter) {
	text := ln.Text
	base := strings.Index(raw, text)
	if base < 0 {
		base = 0
	}

	for _, m := range numericParamRe.FindAllStringSubmatchIndex(text, -1) {
		name := strings.ToLower(text[m[2]:m[3]])
		value, err := strconv.Atoi(text[m[4]:m[5]])
		if err != nil {
			continue
		}
		bounds, ok := numericRanges[name]
		if !ok || (value >= bounds.min && value <= bounds.max) {
			continue
		}

		sp := offsetSpan(f, lineSpan, base+m[0], base+m[1])
		switch name {
		case "quality":
			diag.ReportWarning(r, diag.LintInvalidQuality, sp,
				fmt.Sprintf("quality %d is outside the valid range 1-100", value)).Emit()
		case "opacity":
			diag.ReportWarning(r, diag.LintInvalidOpacity, sp,
				fmt.Sprintf("opacity %d is outside the valid range 0-100", value)).Emit()
		case "angle":
			diag.ReportInfo(r, diag.LintAngleOutOfRange, sp,
				fmt.Sprintf("angle %d is outside the usual range -360..360", value)).Emit()
		}
	}
}

func checkDeprecated(f *source.File, lineSpan source.Span, raw string, ln cldt.Line, r diag.Reporter) {
	text := ln.Text
	base := strings.Index(raw, text)
	if base < 0 {
		base = 0
	}

	for name, replacement := range deprecatedProperties {
		idx := strings.Index(text, name)
		if idx < 0 {
			continue
		}
		sp := offsetSpan(f, lineSpan, base+idx, base+idx+len(name))
		diag.ReportHint(r, diag.LintDeprecatedProperty, sp,
			fmt.Sprintf("'%s' is deprecated, use '%s' instead", name, replacement)).Emit()
	}
}

// textSpan covers the occurrence of text within the raw line.
func textSpan(f *source.File, lineSpan source.Span, raw, text string) source.Span {
	idx := strings.Index(raw, text)
	if idx < 0 || text == "" {
		return lineSpan
	}
	return offsetSpan(f, lineSpan, idx, idx+len(text))
}

// offsetSpan converts line-local byte offsets into a file span.
func offsetSpan(f *source.File, lineSpan source.Span, start, end int) source.Span {
	s, err := safecast.Conv[uint32](start)
	if err != nil {
		return lineSpan
	}
	e, err := safecast.Conv[uint32](end)
	if err != nil {
		return lineSpan
	}
	return source.Span{File: f.ID, Start: lineSpan.Start + s, End: lineSpan.Start + e}
}
