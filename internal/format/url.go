package format

import (
	"strings"

	"cldt/internal/cldt"
)

// explodeURL turns a decomposed delivery URL into the raw lines of its
// multi-line rendering: prefix, one sub-component per line (comma-separated
// components keep their commas, each segment ends on the pipeline
// separator), the version, and the joined public id.
func explodeURL(u cldt.BoundURL) []string {
	lines := make([]string, 0, len(u.Transformations)+3)
	lines = append(lines, u.Prefix+"/")

	for _, seg := range u.Transformations {
		parts := strings.Split(seg, ",")
		for i, p := range parts {
			p = strings.TrimSpace(p)
			if p == "" {
				continue
			}
			if i < len(parts)-1 {
				lines = append(lines, p+",")
			} else {
				lines = append(lines, p+"/")
			}
		}
	}

	if u.Version != "" {
		lines = append(lines, u.Version+"/")
	}
	if len(u.PublicID) > 0 {
		lines = append(lines, strings.Join(u.PublicID, "/"))
	}
	return lines
}
