package cldt

import "strings"

// transformPrefixes lists the short-code prefixes that mark a token as a
// transformation component. The table is deliberately extensible: adding a
// new short code is a one-line change. It is a membership heuristic, not a
// grammar of the full parameter vocabulary.
var transformPrefixes = []string{
	"w_",  // width
	"h_",  // height
	"c_",  // crop mode
	"g_",  // gravity
	"q_",  // quality
	"f_",  // fetch format
	"a_",  // angle
	"bo_", // border
	"r_",  // radius
	"e_",  // effect
	"o_",  // opacity
	"l_",  // layer (overlay)
	"u_",  // underlay
	"fl_", // flag
	"co_", // color
	"b_",  // background
	"z_",  // zoom
	"ar_", // aspect ratio
	"x_",  // x coordinate
	"y_",  // y coordinate
	"if_", // conditional (covers if_else / if_end)
	"$",   // variable assignment or reference
}

// IsTransformation reports whether a single slash-delimited token looks like
// a transformation component rather than part of a public id. Positive
// signals: the token carries a comma (multi-parameter component), or it
// contains an underscore and starts with a known short-code prefix.
func IsTransformation(token string) bool {
	if token == "" {
		return false
	}
	if strings.Contains(token, ",") {
		return true
	}
	if !strings.Contains(token, "_") {
		return false
	}
	return hasTransformPrefix(token)
}

func hasTransformPrefix(token string) bool {
	for _, p := range transformPrefixes {
		if strings.HasPrefix(token, p) {
			return true
		}
	}
	return false
}
