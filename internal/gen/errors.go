package gen

import (
	"errors"
	"fmt"

	"cinder/internal/diag"
	"cinder/internal/source"
)

var (
	// ErrSemanticErrors is returned when the analysis result carries errors.
	ErrSemanticErrors = errors.New("file has semantic errors")
	// ErrNoAnalysis is returned when the closure target is requested without
	// a capture analysis result.
	ErrNoAnalysis = errors.New("closure target requires capture analysis")
	// ErrNoFile is returned for an invalid file id.
	ErrNoFile = errors.New("no such file")
)

// Error reports a construct the selected target cannot express.
// Generation stops at the first one.
type Error struct {
	Code    diag.Code
	Span    source.Span
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code.ID(), e.Message)
}

// Report forwards the error to r as a diagnostic.
func (e *Error) Report(r diag.Reporter) {
	if e == nil || r == nil {
		return
	}
	diag.ReportError(r, e.Code, e.Span, e.Message).Emit()
}
