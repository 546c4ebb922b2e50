package diagfmt

import (
	"strings"
	"testing"

	"cldt/internal/diag"
	"cldt/internal/source"
)

func makeBag(t *testing.T, content string, build func(fs *source.FileSet, id source.FileID, bag *diag.Bag)) (*diag.Bag, *source.FileSet) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("doc.cldt", []byte(content))
	bag := diag.NewBag(16)
	build(fs, id, bag)
	bag.Sort()
	return bag, fs
}

func TestPrettyHeaderAndUnderline(t *testing.T) {
	bag, fs := makeBag(t, "quality: 150\nsample.jpg\n", func(fs *source.FileSet, id source.FileID, bag *diag.Bag) {
		bag.Add(diag.Diagnostic{
			Severity: diag.SevWarning,
			Code:     diag.LintInvalidQuality,
			Message:  "quality 150 is outside the valid range 1-100",
			Primary:  source.Span{File: id, Start: 0, End: 12},
		})
	})

	var sb strings.Builder
	Pretty(&sb, bag, fs, PrettyOpts{})
	out := sb.String()

	if !strings.Contains(out, "doc.cldt:1:1: WARNING[invalid-quality]: quality 150 is outside the valid range 1-100") {
		t.Errorf("missing header line in:\n%s", out)
	}
	if !strings.Contains(out, "  quality: 150\n") {
		t.Errorf("missing source line in:\n%s", out)
	}
	if !strings.Contains(out, "  ^~~~~~~~~~~~\n") {
		t.Errorf("underline should cover all 12 bytes in:\n%s", out)
	}
}

func TestPrettyUnderlineOffset(t *testing.T) {
	bag, fs := makeBag(t, "w_300/fetch_format_auto/\n", func(fs *source.FileSet, id source.FileID, bag *diag.Bag) {
		bag.Add(diag.Diagnostic{
			Severity: diag.SevHint,
			Code:     diag.LintDeprecatedProperty,
			Message:  "'fetch_format' is deprecated, use 'format' instead",
			Primary:  source.Span{File: id, Start: 6, End: 18},
		})
	})

	var sb strings.Builder
	Pretty(&sb, bag, fs, PrettyOpts{})
	out := sb.String()

	if !strings.Contains(out, "doc.cldt:1:7: HINT[deprecated-property]") {
		t.Errorf("wrong position in:\n%s", out)
	}
	if !strings.Contains(out, "        ^~~~~~~~~~~~\n") {
		t.Errorf("underline should start under byte 6 in:\n%s", out)
	}
}

func TestPrettyNotesAndFixes(t *testing.T) {
	bag, fs := makeBag(t, "gravity south\n", func(fs *source.FileSet, id source.FileID, bag *diag.Bag) {
		bag.Add(diag.Diagnostic{
			Severity: diag.SevError,
			Code:     diag.LintMissingColon,
			Message:  "missing ':' between 'gravity' and its value",
			Primary:  source.Span{File: id, Start: 0, End: 13},
			Notes:    []diag.Note{{Span: source.Span{File: id, Start: 0, End: 7}, Msg: "property name ends here"}},
			Fixes:    []diag.Fix{{Title: "insert ':' after 'gravity'"}},
		})
	})

	var sb strings.Builder
	Pretty(&sb, bag, fs, PrettyOpts{ShowNotes: true, ShowFixes: true})
	out := sb.String()

	if !strings.Contains(out, "  note: doc.cldt:1:1: property name ends here") {
		t.Errorf("missing note in:\n%s", out)
	}
	if !strings.Contains(out, "  help: insert ':' after 'gravity'") {
		t.Errorf("missing fix title in:\n%s", out)
	}

	sb.Reset()
	Pretty(&sb, bag, fs, PrettyOpts{})
	if strings.Contains(sb.String(), "note:") || strings.Contains(sb.String(), "help:") {
		t.Errorf("notes and fixes should be hidden by default:\n%s", sb.String())
	}
}

func TestPrettyNilInputs(t *testing.T) {
	var sb strings.Builder
	Pretty(&sb, nil, nil, PrettyOpts{})
	if sb.Len() != 0 {
		t.Errorf("nil inputs wrote output %q", sb.String())
	}
}
