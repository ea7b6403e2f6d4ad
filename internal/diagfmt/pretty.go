package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"cinder/internal/diag"
	"cinder/internal/source"
)

type palette struct {
	err, warn, info, note, gutter, caret, bold *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:    color.New(color.FgRed, color.Bold),
		warn:   color.New(color.FgYellow, color.Bold),
		info:   color.New(color.FgCyan, color.Bold),
		note:   color.New(color.FgCyan),
		gutter: color.New(color.FgBlue),
		caret:  color.New(color.FgGreen, color.Bold),
		bold:   color.New(color.Bold),
	}
	// color.NoColor зависит от stdout; здесь решает вызывающий
	for _, c := range []*color.Color{p.err, p.warn, p.info, p.note, p.gutter, p.caret, p.bold} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(s diag.Severity) *color.Color {
	switch s {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	}
	return p.info
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
// <path>:<line>:<col>: <SEV> <CODE>: <Message>
// затем контекст строки с подчёркиванием ^~~~ по Span, затем Notes.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	if bag == nil {
		return
	}
	pal := newPalette(opts.Color)
	for i, d := range bag.Items() {
		if i > 0 {
			fmt.Fprintln(w)
		}
		prettyOne(w, d, fs, opts, pal)
	}
}

func prettyOne(w io.Writer, d diag.Diagnostic, fs *source.FileSet, opts PrettyOpts, pal palette) {
	header := fmt.Sprintf("%s %s", pal.severity(d.Severity).Sprint(d.Severity.String()), pal.bold.Sprint(d.Code.ID()))
	if !validSpan(fs, d.Primary) {
		fmt.Fprintf(w, "%s: %s\n", header, d.Message)
		return
	}
	start, _ := fs.Resolve(d.Primary)
	path := displayPath(fs, d.Primary.File, opts.PathMode)
	fmt.Fprintf(w, "%s:%d:%d: %s: %s\n", path, start.Line, start.Col, header, d.Message)
	writeSnippet(w, fs, d.Primary, opts, pal)

	if !opts.ShowNotes {
		return
	}
	for _, n := range d.Notes {
		if !validSpan(fs, n.Span) {
			fmt.Fprintf(w, "  %s: %s\n", pal.note.Sprint("note"), n.Msg)
			continue
		}
		ns, _ := fs.Resolve(n.Span)
		fmt.Fprintf(w, "  %s: %s:%d:%d: %s\n", pal.note.Sprint("note"),
			displayPath(fs, n.Span.File, opts.PathMode), ns.Line, ns.Col, n.Msg)
	}
}

// writeSnippet prints the primary line with its neighbours and the
// underline. Columns are display cells: tabs expand, wide runes count two.
func writeSnippet(w io.Writer, fs *source.FileSet, span source.Span, opts PrettyOpts, pal palette) {
	f := fs.Get(span.File)
	start, end := fs.Resolve(span)
	totalLines := uint32(len(f.LineIdx)) + 1 // #nosec G115 -- bounded by FileSet.Add

	ctx := uint32(max(opts.Context, 0)) // #nosec G115
	first := start.Line - min(ctx, start.Line-1)
	last := min(start.Line+ctx, totalLines)
	gutterWidth := len(fmt.Sprint(last))
	tab := opts.TabWidth
	if tab <= 0 {
		tab = 4
	}

	for ln := first; ln <= last; ln++ {
		line := expandTabs(f.GetLine(ln), tab)
		if opts.Width > 0 {
			line = runewidth.Truncate(line, int(opts.Width), "…")
		}
		fmt.Fprintf(w, "%s %s\n", pal.gutter.Sprintf("%*d |", gutterWidth, ln), line)
		if ln != start.Line {
			continue
		}

		raw := f.GetLine(ln)
		from := clampCol(start.Col, raw)
		to := len(raw)
		if end.Line == start.Line {
			to = max(clampCol(end.Col, raw), from)
		}
		pad := runewidth.StringWidth(expandTabs(raw[:from], tab))
		n := max(runewidth.StringWidth(expandTabs(raw[:to], tab))-pad, 1)
		if opts.Width > 0 && pad >= int(opts.Width) {
			continue
		}
		marker := "^" + strings.Repeat("~", n-1)
		fmt.Fprintf(w, "%s %s%s\n", pal.gutter.Sprintf("%*s |", gutterWidth, ""), strings.Repeat(" ", pad), pal.caret.Sprint(marker))
	}
}

// clampCol converts a 1-based byte column into an index into line.
func clampCol(col uint32, line string) int {
	return min(max(int(col)-1, 0), len(line))
}

func expandTabs(s string, width int) string {
	if !strings.Contains(s, "\t") {
		return s
	}
	var sb strings.Builder
	cells := 0
	for _, r := range s {
		if r == '\t' {
			n := width - cells%width
			sb.WriteString(strings.Repeat(" ", n))
			cells += n
			continue
		}
		sb.WriteRune(r)
		cells += runewidth.RuneWidth(r)
	}
	return sb.String()
}
