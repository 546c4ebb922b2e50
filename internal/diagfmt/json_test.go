package diagfmt

import (
	"encoding/json"
	"strings"
	"testing"

	"cldt/internal/diag"
	"cldt/internal/source"
)

func TestBuildDiagnosticsOutput(t *testing.T) {
	bag, fs := makeBag(t, "opacity: 150\n", func(fs *source.FileSet, id source.FileID, bag *diag.Bag) {
		bag.Add(diag.Diagnostic{
			Severity: diag.SevWarning,
			Code:     diag.LintInvalidOpacity,
			Message:  "opacity 150 is outside the valid range 0-100",
			Primary:  source.Span{File: id, Start: 0, End: 12},
		})
	})

	out := BuildDiagnosticsOutput(bag, fs, JSONOpts{IncludePositions: true})
	if out.Count != 1 || len(out.Diagnostics) != 1 {
		t.Fatalf("count = %d, diagnostics = %d", out.Count, len(out.Diagnostics))
	}

	d := out.Diagnostics[0]
	if d.Severity != "WARNING" || d.Code != "invalid-opacity" {
		t.Errorf("severity/code = %s/%s", d.Severity, d.Code)
	}
	loc := d.Location
	if loc.File != "doc.cldt" || loc.StartByte != 0 || loc.EndByte != 12 {
		t.Errorf("location = %+v", loc)
	}
	if loc.StartLine != 1 || loc.StartCol != 1 || loc.EndLine != 1 || loc.EndCol != 13 {
		t.Errorf("positions = %d:%d..%d:%d", loc.StartLine, loc.StartCol, loc.EndLine, loc.EndCol)
	}
}

func TestBuildDiagnosticsOutputMax(t *testing.T) {
	bag, fs := makeBag(t, "quality: 150\nopacity: 150\n", func(fs *source.FileSet, id source.FileID, bag *diag.Bag) {
		bag.Add(diag.Diagnostic{
			Severity: diag.SevWarning, Code: diag.LintInvalidQuality,
			Message: "quality", Primary: source.Span{File: id, Start: 0, End: 12},
		})
		bag.Add(diag.Diagnostic{
			Severity: diag.SevWarning, Code: diag.LintInvalidOpacity,
			Message: "opacity", Primary: source.Span{File: id, Start: 13, End: 25},
		})
	})

	out := BuildDiagnosticsOutput(bag, fs, JSONOpts{Max: 1})
	if out.Count != 1 {
		t.Errorf("Max=1 should keep one diagnostic, got %d", out.Count)
	}
	if bag.Len() != 2 {
		t.Errorf("the bag itself should keep both diagnostics, got %d", bag.Len())
	}
}

func TestWriteJSONRoundtrip(t *testing.T) {
	bag, fs := makeBag(t, "gravity south\n", func(fs *source.FileSet, id source.FileID, bag *diag.Bag) {
		bag.Add(diag.Diagnostic{
			Severity: diag.SevError,
			Code:     diag.LintMissingColon,
			Message:  "missing ':' between 'gravity' and its value",
			Primary:  source.Span{File: id, Start: 0, End: 13},
			Fixes: []diag.Fix{{
				Title: "insert ':' after 'gravity'",
				Edits: []diag.FixEdit{{Span: source.Span{File: id, Start: 7, End: 7}, NewText: ":"}},
			}},
		})
	})

	var sb strings.Builder
	if err := WriteJSON(&sb, bag, fs, JSONOpts{IncludeFixes: true}); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}

	var decoded DiagnosticsOutput
	if err := json.Unmarshal([]byte(sb.String()), &decoded); err != nil {
		t.Fatalf("output does not parse back: %v", err)
	}
	if decoded.Count != 1 {
		t.Fatalf("count = %d", decoded.Count)
	}
	d := decoded.Diagnostics[0]
	if len(d.Fixes) != 1 || len(d.Fixes[0].Edits) != 1 {
		t.Fatalf("fixes = %+v", d.Fixes)
	}
	if d.Fixes[0].Edits[0].NewText != ":" {
		t.Errorf("edit text = %q", d.Fixes[0].Edits[0].NewText)
	}
	if d.Location.StartLine != 0 {
		t.Errorf("positions should be omitted without IncludePositions, got line %d", d.Location.StartLine)
	}
}
