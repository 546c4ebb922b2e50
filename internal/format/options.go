package format

// Options configures document rendering.
type Options struct {
	// IndentWidth is the number of spaces per indent level, and the display
	// width assumed for a tab when UseTabs is set.
	IndentWidth int
	// UseTabs renders each indent level as one tab instead of spaces.
	UseTabs bool
	// CommentColumn is the display column inline comments are aligned at.
	CommentColumn int
}

func (o Options) withDefaults() Options {
	if o.IndentWidth == 0 {
		o.IndentWidth = 4
	}
	if o.CommentColumn == 0 {
		o.CommentColumn = 40
	}
	return o
}
