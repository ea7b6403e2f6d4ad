package diag

import (
	"strings"
	"testing"

	"cinder/internal/source"
)

func TestBagLimitAndErrors(t *testing.T) {
	b := NewBag(2)
	if !b.Add(New(SevWarning, SemUnsupportedFeature, source.Span{}, "w")) {
		t.Fatal("first add rejected")
	}
	if b.HasErrors() {
		t.Fatal("warning counted as error")
	}
	b.Add(NewError(SemUndefinedVariable, source.Span{Start: 1, End: 2}, "x"))
	if b.Add(NewError(SemUndefinedVariable, source.Span{}, "overflow")) {
		t.Fatal("bag exceeded its limit")
	}
	if !b.HasErrors() || b.Len() != 2 {
		t.Fatalf("HasErrors=%v Len=%d", b.HasErrors(), b.Len())
	}
}

func TestBagSortAndDedup(t *testing.T) {
	b := NewBag(10)
	late := NewError(SemTypeMismatch, source.Span{Start: 10, End: 12}, "late")
	early := NewError(SemUndefinedVariable, source.Span{Start: 1, End: 3}, "early")
	b.Add(late)
	b.Add(early)
	b.Add(early)
	b.Sort()
	b.Dedup()
	items := b.Items()
	if len(items) != 2 || items[0].Message != "early" || items[1].Message != "late" {
		t.Fatalf("unexpected order: %+v", items)
	}
}

func TestBagFilterBySeverity(t *testing.T) {
	b := NewBag(10)
	b.Add(New(SevWarning, SemUnsupportedFeature, source.Span{}, "w"))
	b.Add(NewError(SemUndefinedVariable, source.Span{Start: 1, End: 2}, "e"))
	b.Add(New(SevInfo, SemUnsupportedFeature, source.Span{}, "i"))

	errs := b.Filter(func(d Diagnostic) bool { return d.Severity.AtLeast(SevError) })
	if errs.Len() != 1 || errs.Items()[0].Message != "e" || errs.Cap() != b.Cap() {
		t.Fatalf("filtered = %+v", errs.Items())
	}
	if b.Len() != 3 {
		t.Errorf("Filter must not modify the source bag")
	}
}

func TestSeverity(t *testing.T) {
	for _, sev := range []Severity{SevInfo, SevWarning, SevError} {
		got, err := ParseSeverity(strings.ToLower(sev.String()))
		if err != nil || got != sev {
			t.Errorf("ParseSeverity(%q) = %v, %v", sev.String(), got, err)
		}
	}
	if _, err := ParseSeverity("fatal"); err == nil {
		t.Error("expected error for unknown severity")
	}
	if Severity(9).String() != "UNKNOWN" {
		t.Errorf("out of range severity = %q", Severity(9).String())
	}
	if !SevError.AtLeast(SevWarning) || SevInfo.AtLeast(SevWarning) {
		t.Error("AtLeast ordering is wrong")
	}
}

func TestCodeIDs(t *testing.T) {
	cases := map[Code]string{
		LexUnknownChar:       "LEX1001",
		SynMacroDelimiter:    "SYN2102",
		SemUndefinedVariable: "SEM3001",
		GenUnsupported:       "GEN4001",
		IOLoadFileError:      "IO5001",
	}
	for c, want := range cases {
		if got := c.ID(); got != want {
			t.Errorf("%d.ID() = %q, want %q", c, got, want)
		}
	}
	if !strings.Contains(SemTypeMismatch.String(), "Type mismatch") {
		t.Errorf("String() = %q", SemTypeMismatch.String())
	}
}

func TestReportBuilderEmitsOnce(t *testing.T) {
	bag := NewBag(10)
	rep := &BagReporter{Bag: bag}
	b := ReportError(rep, SemDuplicateDefinition, source.Span{}, "dup").WithNote(source.Span{}, "first defined here")
	b.Emit()
	b.Emit()
	if bag.Len() != 1 {
		t.Fatalf("expected single diagnostic, got %d", bag.Len())
	}
	if notes := bag.Items()[0].Notes; len(notes) != 1 || notes[0].Msg != "first defined here" {
		t.Fatalf("notes = %+v", notes)
	}
}

func TestFormatShort(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("m.cnd", []byte("int a;\nint b = c;\n"))
	d := NewError(SemUndefinedVariable, source.Span{File: id, Start: 15, End: 16}, "undefined variable 'c'")
	got := FormatShort([]Diagnostic{d}, fs, false)
	want := "m.cnd:2:9: ERROR SEM3001: undefined variable 'c'\n"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}
