package cldt

import (
	"regexp"
	"strings"
)

// LineRole classifies the structural role of one physical line.
type LineRole uint8

const (
	RoleBlank LineRole = iota
	RoleComment
	RoleTransformation
	RoleVersion
	// RolePublicID covers everything that matches no recognized pattern;
	// opaque text is passed through rather than rejected.
	RolePublicID
	RoleMultiLineStart
	RoleMultiLineCont
)

func (r LineRole) String() string {
	switch r {
	case RoleBlank:
		return "blank"
	case RoleComment:
		return "comment"
	case RoleTransformation:
		return "transformation"
	case RoleVersion:
		return "version"
	case RolePublicID:
		return "public-id"
	case RoleMultiLineStart:
		return "multiline-start"
	case RoleMultiLineCont:
		return "multiline-continuation"
	}
	return "unknown"
}

// Delimiter is a line's trailing structural punctuation.
type Delimiter uint8

const (
	DelimNone Delimiter = iota
	DelimComma
	DelimSlash
)

func (d Delimiter) String() string {
	switch d {
	case DelimComma:
		return ","
	case DelimSlash:
		return "/"
	}
	return ""
}

// Line is one classified physical line.
type Line struct {
	Raw     string    // the original text, untouched
	Text    string    // trimmed payload, without trailing delimiter or comment
	Role    LineRole
	Delim   Delimiter // trailing delimiter found on the source line
	Comment string    // trailing "# ..." suffix including the marker, or ""
}

// ScanState is the classification state threaded through ClassifyLine. The
// zero value is the state at the start of every pass.
type ScanState struct {
	// InMultiLine is true while an open multi-line-parameter span is active.
	InMultiLine bool
}

const (
	commentMarker     = "#"
	conditionalPrefix = "if_"
	variableSigil     = "$"
)

var versionRe = regexp.MustCompile(`^v\d+$`)

// multiLineParamKeys are the keyword prefixes that may open a multi-line
// parameter span when followed by a colon and no closing delimiter.
var multiLineParamKeys = []string{
	"text",
	"overlay",
	"underlay",
	"custom_function",
}

// ClassifyLine assigns raw a role given the incoming state and returns the
// updated state. It is pure: the same inputs always produce the same outputs.
func ClassifyLine(raw string, st ScanState) (Line, ScanState) {
	trimmed := strings.TrimSpace(raw)

	if st.InMultiLine {
		// The closing punctuation is structural, not a new statement: the
		// line stays a continuation even when it terminates the span.
		ln := Line{Raw: raw, Role: RoleMultiLineCont}
		ln.Text, ln.Delim = splitDelimiter(trimmed)
		if ln.Delim != DelimNone {
			st.InMultiLine = false
		}
		return ln, st
	}

	if trimmed == "" {
		return Line{Raw: raw, Role: RoleBlank}, st
	}
	if strings.HasPrefix(trimmed, commentMarker) {
		return Line{Raw: raw, Text: trimmed, Role: RoleComment}, st
	}

	body, comment := splitComment(trimmed)
	text, delim := splitDelimiter(body)
	ln := Line{Raw: raw, Text: text, Delim: delim, Comment: comment}

	switch {
	case opensMultiLineParam(text) && delim == DelimNone:
		ln.Role = RoleMultiLineStart
		st.InMultiLine = true
	case versionRe.MatchString(text):
		ln.Role = RoleVersion
	case IsTransformation(text),
		strings.HasPrefix(text, conditionalPrefix),
		strings.HasPrefix(text, variableSigil):
		ln.Role = RoleTransformation
	default:
		ln.Role = RolePublicID
	}
	return ln, st
}

// splitComment separates an inline trailing comment from the code part.
// The caller guarantees the line does not start with the marker.
func splitComment(s string) (body, comment string) {
	idx := strings.Index(s, commentMarker)
	if idx < 0 {
		return s, ""
	}
	return strings.TrimSpace(s[:idx]), strings.TrimSpace(s[idx:])
}

func splitDelimiter(s string) (string, Delimiter) {
	switch {
	case strings.HasSuffix(s, ","):
		return strings.TrimSpace(s[:len(s)-1]), DelimComma
	case strings.HasSuffix(s, "/"):
		return strings.TrimSpace(s[:len(s)-1]), DelimSlash
	}
	return s, DelimNone
}

func opensMultiLineParam(text string) bool {
	for _, key := range multiLineParamKeys {
		rest, ok := strings.CutPrefix(text, key)
		if !ok {
			continue
		}
		rest = strings.TrimLeft(rest, " \t")
		if strings.HasPrefix(rest, ":") {
			return true
		}
	}
	return false
}
