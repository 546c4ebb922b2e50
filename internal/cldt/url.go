package cldt

import (
	"regexp"
	"strings"
)

// urlPrefixRe matches the fixed head of a delivery URL:
// scheme://domain/cloud-name/resource-type/resource-kind, with the pipeline
// and public id captured as the remainder.
var urlPrefixRe = regexp.MustCompile(`^(https?://[^/\s]+/[^/\s]+/[^/\s]+/[^/\s]+)/(\S+)$`)

// BoundURL is a decomposed delivery URL.
type BoundURL struct {
	Prefix          string
	Transformations []string
	Version         string // "v" + digits, or ""
	PublicID        []string
}

// DecomposeURL splits a single-line delivery URL into its segments. A text
// whose head does not match the delivery shape yields ok == false and the
// caller is expected to pass the input through unchanged.
//
// When a version segment is present, every segment before it belongs to the
// pipeline even if it does not look like a transformation. Without a
// version, the boundary is found by scanning backward over the trailing
// segments that do not classify as transformations.
func DecomposeURL(text string) (BoundURL, bool) {
	m := urlPrefixRe.FindStringSubmatch(strings.TrimSpace(text))
	if m == nil {
		return BoundURL{}, false
	}

	u := BoundURL{Prefix: m[1]}
	segs := strings.Split(m[2], "/")

	if vi := versionIndex(segs); vi >= 0 {
		u.Transformations = segs[:vi]
		u.Version = segs[vi]
		u.PublicID = segs[vi+1:]
		return u, true
	}

	cut := len(segs)
	for cut > 0 && !IsTransformation(segs[cut-1]) {
		cut--
	}
	// A delivery URL always ends in a public id; when even the last segment
	// classifies as a transformation, it is taken as the public id anyway.
	if cut == len(segs) {
		cut = len(segs) - 1
	}
	u.Transformations = segs[:cut]
	u.PublicID = segs[cut:]
	return u, true
}

// IsDeliveryURL reports whether text has the delivery-URL head shape.
func IsDeliveryURL(text string) bool {
	return urlPrefixRe.MatchString(strings.TrimSpace(text))
}

func versionIndex(segs []string) int {
	for i, s := range segs {
		if versionRe.MatchString(s) {
			return i
		}
	}
	return -1
}

// String re-joins the decomposed segments into a delivery URL.
func (u BoundURL) String() string {
	parts := make([]string, 0, len(u.Transformations)+len(u.PublicID)+2)
	parts = append(parts, u.Prefix)
	parts = append(parts, u.Transformations...)
	if u.Version != "" {
		parts = append(parts, u.Version)
	}
	parts = append(parts, u.PublicID...)
	return strings.Join(parts, "/")
}
