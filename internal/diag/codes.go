package diag

type Code uint16

const (
	// UnknownCode is the zero value fallback.
	UnknownCode Code = 0

	// Structural lint findings.
	LintMissingColon    Code = 1001
	LintUnmatchedBraces Code = 1002
	LintUnmatchedEnd    Code = 1003

	// Value range findings.
	LintInvalidQuality  Code = 2001
	LintInvalidOpacity  Code = 2002
	LintAngleOutOfRange Code = 2003

	// Vocabulary findings.
	LintDeprecatedProperty Code = 3001
)

var codeIDs = map[Code]string{
	UnknownCode:            "unknown",
	LintMissingColon:       "missing-colon",
	LintUnmatchedBraces:    "unmatched-braces",
	LintUnmatchedEnd:       "unmatched-end",
	LintInvalidQuality:     "invalid-quality",
	LintInvalidOpacity:     "invalid-opacity",
	LintAngleOutOfRange:    "angle-out-of-range",
	LintDeprecatedProperty: "deprecated-property",
}

var codeDescription = map[Code]string{
	UnknownCode:            "Unknown finding",
	LintMissingColon:       "Property is missing a colon separator",
	LintUnmatchedBraces:    "Unbalanced braces on a single line",
	LintUnmatchedEnd:       "Conditional end without a matching open",
	LintInvalidQuality:     "Quality value outside 1-100",
	LintInvalidOpacity:     "Opacity value outside 0-100",
	LintAngleOutOfRange:    "Angle value outside -360..360",
	LintDeprecatedProperty: "Deprecated property name",
}

// ID returns the stable kebab-case identifier used in machine output.
func (c Code) ID() string {
	if id, ok := codeIDs[c]; ok {
		return id
	}
	return codeIDs[UnknownCode]
}

// Title returns a short human description of the code.
func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return c.ID()
}
