package lint

import "regexp"

// numericRange bounds one named numeric parameter.
type numericRange struct {
	min, max int
}

var numericRanges = map[string]numericRange{
	"quality": {1, 100},
	"opacity": {0, 100},
	"angle":   {-360, 360},
}

// deprecatedProperties maps retired property names to their replacement.
var deprecatedProperties = map[string]string{
	"fetch_format": "format",
}

var (
	// property: value pairs the numeric checks scan for, case-insensitive.
	numericParamRe = regexp.MustCompile(`(?i)\b(quality|opacity|angle)\s*:\s*(-?\d+)`)

	// A bare "word value" pair with no separating colon.
	bareWordValueRe = regexp.MustCompile(`^[A-Za-z_][\w-]*\s+\S+`)

	// File extensions that mark a line as a plain public id.
	fileExtensionRe = regexp.MustCompile(`(?i)\.(jpe?g|png|gif|webp|avif|heic|svg|ico|bmp|tiff?|pdf|mp4|webm|mov|avi|mkv|mp3|ogg|wav)$`)
)

// bracePairs are checked independently per line.
var bracePairs = [][2]byte{
	{'{', '}'},
	{'(', ')'},
}
