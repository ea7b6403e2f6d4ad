package sema

import (
	"fmt"

	"cinder/internal/diag"
	"cinder/internal/source"
)

// ErrorKind classifies a semantic error.
type ErrorKind uint8

const (
	UndefinedVariable ErrorKind = iota
	TypeMismatch
	DuplicateDefinition
	InvalidOperation
	UnsupportedFeature
)

func (k ErrorKind) String() string {
	switch k {
	case UndefinedVariable:
		return "UndefinedVariable"
	case TypeMismatch:
		return "TypeMismatch"
	case DuplicateDefinition:
		return "DuplicateDefinition"
	case InvalidOperation:
		return "InvalidOperation"
	case UnsupportedFeature:
		return "UnsupportedFeature"
	}
	return fmt.Sprintf("ErrorKind(%d)", uint8(k))
}

// Code maps the kind onto its diagnostic code.
func (k ErrorKind) Code() diag.Code {
	switch k {
	case UndefinedVariable:
		return diag.SemUndefinedVariable
	case TypeMismatch:
		return diag.SemTypeMismatch
	case DuplicateDefinition:
		return diag.SemDuplicateDefinition
	case InvalidOperation:
		return diag.SemInvalidOperation
	case UnsupportedFeature:
		return diag.SemUnsupportedFeature
	}
	return diag.UnknownCode
}

// SemanticError is one accumulated analysis error.
type SemanticError struct {
	Kind    ErrorKind
	Span    source.Span
	Message string
	Notes   []diag.Note
}

func (e SemanticError) Error() string {
	return e.Kind.String() + ": " + e.Message
}

func (cc *captureChecker) report(kind ErrorKind, sp source.Span, format string, args ...any) *SemanticError {
	cc.result.Errors = append(cc.result.Errors, SemanticError{
		Kind:    kind,
		Span:    sp,
		Message: fmt.Sprintf(format, args...),
	})
	return &cc.result.Errors[len(cc.result.Errors)-1]
}

// flush mirrors accumulated errors into the reporter once the walk is done.
func (cc *captureChecker) flush() {
	if cc.reporter == nil {
		return
	}
	for _, e := range cc.result.Errors {
		cc.reporter.Report(e.Kind.Code(), diag.SevError, e.Span, e.Message, e.Notes)
	}
}
