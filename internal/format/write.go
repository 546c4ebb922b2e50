package format

// Writer accumulates formatted output and provides helpers for emitting
// indented lines and canonical whitespace.
type Writer struct {
	opt         Options
	buf         []byte
	indentLevel int
	atLineStart bool
}

// NewWriter creates a new formatting writer.
func NewWriter(opt Options) *Writer {
	return &Writer{
		opt:         opt.withDefaults(),
		buf:         make([]byte, 0, 256),
		atLineStart: true,
	}
}

// Bytes returns the accumulated formatted output.
func (w *Writer) Bytes() []byte {
	return w.buf
}

func (w *Writer) writeIndent() {
	if !w.atLineStart {
		return
	}
	if w.opt.UseTabs {
		for i := 0; i < w.indentLevel; i++ {
			w.buf = append(w.buf, '\t')
		}
	} else {
		spaceCount := w.indentLevel * w.opt.IndentWidth
		for i := 0; i < spaceCount; i++ {
			w.buf = append(w.buf, ' ')
		}
	}
	w.atLineStart = false
}

// WriteString writes a string to the output, handling indentation.
func (w *Writer) WriteString(s string) {
	if s == "" {
		return
	}
	w.writeIndent()
	w.buf = append(w.buf, s...)
	w.updateLineState(s[len(s)-1])
}

func (w *Writer) updateLineState(last byte) {
	w.atLineStart = last == '\n'
}

// Newline writes a newline if the output doesn't already end with one.
func (w *Writer) Newline() {
	if len(w.buf) == 0 || w.buf[len(w.buf)-1] != '\n' {
		w.buf = append(w.buf, '\n')
	}
	w.atLineStart = true
}

// BlankLine writes a newline unconditionally, producing an empty line when
// called at line start.
func (w *Writer) BlankLine() {
	w.buf = append(w.buf, '\n')
	w.atLineStart = true
}

// SetIndent moves the indentation to an absolute level, clamped at zero.
func (w *Writer) SetIndent(level int) {
	if level < 0 {
		level = 0
	}
	w.indentLevel = level
}

// IndentPush increases the indentation level.
func (w *Writer) IndentPush() {
	w.indentLevel++
}

// IndentPop decreases the indentation level.
func (w *Writer) IndentPop() {
	if w.indentLevel > 0 {
		w.indentLevel--
	}
}

// WriteLine emits one full line at the given indentation level. Empty text
// produces an empty line with no trailing indentation.
func (w *Writer) WriteLine(level int, s string) {
	w.SetIndent(level)
	if s == "" {
		w.BlankLine()
		return
	}
	w.WriteString(s)
	w.BlankLine()
}
