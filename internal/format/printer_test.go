package format

import (
	"strings"
	"testing"
)

func fmtText(t *testing.T, in string, opts Options) string {
	t.Helper()
	return string(Source([]byte(in), opts))
}

func TestSourceExplodesDeliveryURL(t *testing.T) {
	got := fmtText(t, "https://res.cloudinary.com/demo/image/upload/w_300,h_200,c_fill/v1234567890/sample.jpg", Options{})
	want := strings.Join([]string{
		"https://res.cloudinary.com/demo/image/upload/",
		"w_300,",
		"h_200,",
		"c_fill/",
		"v1234567890/",
		"sample.jpg",
		"",
	}, "\n")
	if got != want {
		t.Errorf("URL explosion mismatch:\n got:\n%s\nwant:\n%s", got, want)
	}
}

func TestSourceConditionalBlock(t *testing.T) {
	in := strings.Join([]string{
		"if_w_gt_500",
		"e_sharpen",
		"if_end",
		"w_300",
	}, "\n")
	got := fmtText(t, in, Options{})
	want := strings.Join([]string{
		"if_w_gt_500/",
		"    e_sharpen/",
		"    if_end/",
		"",
		"w_300/",
		"",
	}, "\n")
	if got != want {
		t.Errorf("conditional block mismatch:\n got:\n%s\nwant:\n%s", got, want)
	}
}

func TestSourceElseBranchGetsNoBlankLine(t *testing.T) {
	in := strings.Join([]string{
		"if_w_gt_500/",
		"e_sharpen/",
		"if_else/",
		"e_blur/",
		"if_end/",
	}, "\n")
	got := fmtText(t, in, Options{})
	want := strings.Join([]string{
		"if_w_gt_500/",
		"    e_sharpen/",
		"    if_else/",
		"    e_blur/",
		"    if_end/",
		"",
	}, "\n")
	if got != want {
		t.Errorf("else rendering mismatch:\n got:\n%s\nwant:\n%s", got, want)
	}
}

func TestSourceTabsIndent(t *testing.T) {
	in := "if_w_gt_500/\ne_sharpen/\nif_end/"
	got := fmtText(t, in, Options{UseTabs: true})
	if !strings.Contains(got, "\te_sharpen/") {
		t.Errorf("expected tab indentation, got:\n%s", got)
	}
}

func TestSourceIndentWidth(t *testing.T) {
	in := "if_w_gt_500/\ne_sharpen/\nif_end/"
	got := fmtText(t, in, Options{IndentWidth: 2})
	if !strings.Contains(got, "\n  e_sharpen/") {
		t.Errorf("expected two-space indentation, got:\n%s", got)
	}
}

func TestSourceDelimiterHandling(t *testing.T) {
	in := strings.Join([]string{
		"w_300,", // comma preserved
		"h_200",  // defaulted to slash
		"v12",    // version: no delimiter added
		"sample.jpg",
	}, "\n")
	got := fmtText(t, in, Options{})
	want := strings.Join([]string{
		"w_300,",
		"h_200/",
		"v12",
		"sample.jpg",
		"",
	}, "\n")
	if got != want {
		t.Errorf("delimiter mismatch:\n got:\n%s\nwant:\n%s", got, want)
	}
}

func TestSourceCommentAlignment(t *testing.T) {
	got := fmtText(t, "w_300, # width", Options{})
	lines := strings.Split(got, "\n")
	if len(lines) == 0 {
		t.Fatal("no output")
	}
	idx := strings.Index(lines[0], "#")
	if idx != 40 {
		t.Errorf("comment starts at column %d, want 40:\n%q", idx, lines[0])
	}
}

func TestSourceCommentAfterWideBody(t *testing.T) {
	body := "l_text:Arial_60:a_rather_long_overlay_component"
	got := fmtText(t, body+"/ # note", Options{})
	line := strings.Split(got, "\n")[0]
	if !strings.HasSuffix(line, "/ # note") {
		t.Errorf("wide body should keep a single space before the comment: %q", line)
	}
}

func TestSourceCollapsesBlankLines(t *testing.T) {
	in := "w_300/\n\n\n\nh_200/"
	got := fmtText(t, in, Options{})
	want := "w_300/\n\nh_200/\n"
	if got != want {
		t.Errorf("blank collapsing mismatch: %q, want %q", got, want)
	}
}

func TestSourceMultiLineParameter(t *testing.T) {
	in := strings.Join([]string{
		"text: Summer Sale",
		"now with 50% off,",
		"w_300/",
	}, "\n")
	got := fmtText(t, in, Options{})
	want := strings.Join([]string{
		"text: Summer Sale",
		"    now with 50% off,",
		"w_300/",
		"",
	}, "\n")
	if got != want {
		t.Errorf("multi-line parameter mismatch:\n got:\n%s\nwant:\n%s", got, want)
	}
}

func TestSourcePassThroughUnrecognized(t *testing.T) {
	in := "completely opaque line\nanother one"
	got := fmtText(t, in, Options{})
	want := "completely opaque line\nanother one\n"
	if got != want {
		t.Errorf("pass-through mismatch: %q", got)
	}
}

func TestSourceNonDeliveryURLUnchanged(t *testing.T) {
	in := "https://example.com/foo"
	got := fmtText(t, in, Options{})
	if got != in+"\n" {
		t.Errorf("non-delivery URL should pass through: %q", got)
	}
}

func TestSourceEmptyInput(t *testing.T) {
	if got := fmtText(t, "", Options{}); got != "" {
		t.Errorf("empty input should stay empty, got %q", got)
	}
	if got := fmtText(t, "\n\n\n", Options{}); got != "" {
		t.Errorf("blank-only input should collapse to nothing, got %q", got)
	}
}

func TestSourceIdempotence(t *testing.T) {
	docs := []string{
		"https://res.cloudinary.com/demo/image/upload/w_300,h_200,c_fill/v1234567890/sample.jpg",
		"if_w_gt_500\ne_sharpen\nif_else\ne_blur\nif_end\nw_100/",
		"l_logo/\nw_100/\nfl_layer_apply/\nv12/\nsample.jpg",
		"w_300, # width\nh_200/ # height",
		"text: Summer Sale\nbig letters,\nw_300/",
		"# leading comment\n\n\nw_300/\n\n\nsample.jpg",
		"unrecognized stuff\nmore of it",
		"if_end/\nif_end/\nw_10/",
	}
	for i, doc := range docs {
		for _, opts := range []Options{{}, {UseTabs: true}, {IndentWidth: 2}} {
			once := fmtText(t, doc, opts)
			twice := fmtText(t, once, opts)
			if once != twice {
				t.Errorf("doc %d not idempotent with %+v:\nonce:\n%q\ntwice:\n%q", i, opts, once, twice)
			}
		}
	}
}
