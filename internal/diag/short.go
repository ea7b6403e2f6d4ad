package diag

import (
	"fmt"
	"strings"

	"cinder/internal/source"
)

// FormatShort renders diagnostics one per line as
// "path:line:col: SEVERITY CODE: message" in bag order. Notes follow their
// diagnostic with a leading "  note:". Used for golden comparisons and the
// CLI short format.
func FormatShort(diags []Diagnostic, fs *source.FileSet, includeNotes bool) string {
	if fs == nil || len(diags) == 0 {
		return ""
	}
	var sb strings.Builder
	for _, d := range diags {
		start, _ := fs.Resolve(d.Primary)
		path := fs.Get(d.Primary.File).Path
		fmt.Fprintf(&sb, "%s:%d:%d: %s %s: %s\n", path, start.Line, start.Col, d.Severity, d.Code.ID(), d.Message)
		if !includeNotes {
			continue
		}
		for _, n := range d.Notes {
			ns, _ := fs.Resolve(n.Span)
			fmt.Fprintf(&sb, "  note: %s:%d:%d: %s\n", fs.Get(n.Span.File).Path, ns.Line, ns.Col, n.Msg)
		}
	}
	return sb.String()
}
