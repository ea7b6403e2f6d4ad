package gen

// Writer accumulates generated text and keeps track of indentation.
type Writer struct {
	buf         []byte
	indentWidth int
	useTabs     bool
	indentLevel int
	atLineStart bool
}

// NewWriter creates a writer with the given indentation settings.
func NewWriter(indentWidth int, useTabs bool, sizeHint int) *Writer {
	if indentWidth <= 0 {
		indentWidth = 4
	}
	return &Writer{
		buf:         make([]byte, 0, sizeHint),
		indentWidth: indentWidth,
		useTabs:     useTabs,
		atLineStart: true,
	}
}

// Bytes returns the accumulated output.
func (w *Writer) Bytes() []byte {
	return w.buf
}

func (w *Writer) writeIndent() {
	if !w.atLineStart {
		return
	}
	if w.useTabs {
		for range w.indentLevel {
			w.buf = append(w.buf, '\t')
		}
	} else {
		for range w.indentLevel * w.indentWidth {
			w.buf = append(w.buf, ' ')
		}
	}
	w.atLineStart = false
}

// WriteString writes s, indenting first if a line has just started.
func (w *Writer) WriteString(s string) {
	if s == "" {
		return
	}
	w.writeIndent()
	w.buf = append(w.buf, s...)
	w.atLineStart = s[len(s)-1] == '\n'
}

// WriteByte writes a single byte to the output.
func (w *Writer) WriteByte(b byte) error {
	w.writeIndent()
	w.buf = append(w.buf, b)
	w.atLineStart = b == '\n'
	return nil
}

// Space writes a single space if the output doesn't already end with whitespace.
func (w *Writer) Space() {
	if len(w.buf) == 0 {
		return
	}
	last := w.buf[len(w.buf)-1]
	if last == ' ' || last == '\n' || last == '\t' {
		return
	}
	w.buf = append(w.buf, ' ')
}

// Newline ends the current line. Consecutive calls don't stack.
func (w *Writer) Newline() {
	if len(w.buf) > 0 && w.buf[len(w.buf)-1] != '\n' {
		w.buf = append(w.buf, '\n')
	}
	w.atLineStart = true
}

// BlankLine separates two blocks of output with exactly one empty line.
func (w *Writer) BlankLine() {
	if len(w.buf) == 0 {
		return
	}
	w.Newline()
	if n := len(w.buf); n < 2 || w.buf[n-2] != '\n' {
		w.buf = append(w.buf, '\n')
	}
}

// Line writes s as a complete line.
func (w *Writer) Line(s string) {
	w.WriteString(s)
	w.Newline()
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

// Open writes head followed by " {" and indents.
func (w *Writer) Open(head string) {
	if head != "" {
		w.WriteString(head)
		w.WriteString(" ")
	}
	w.WriteString("{")
	w.Newline()
	w.IndentPush()
}

// Close dedents and writes "}" plus tail.
func (w *Writer) Close(tail string) {
	w.IndentPop()
	w.WriteString("}")
	w.WriteString(tail)
	w.Newline()
}
