package format

import (
	"bytes"
	"errors"
	"fmt"

	"cinder/internal/ast"
	"cinder/internal/diag"
	"cinder/internal/lexer"
	"cinder/internal/parser"
	"cinder/internal/source"
)

var (
	// ErrParse means the input itself does not parse.
	ErrParse = errors.New("fmt-check: initial parse failed")
	// ErrReparse means the formatted output does not parse back.
	ErrReparse = errors.New("fmt-check: reparse failed")
	// ErrStructure means the reparsed file has different top-level items.
	ErrStructure = errors.New("fmt-check: top-level items differ after round-trip")
	// ErrNotIdempotent means formatting the output again changes it.
	ErrNotIdempotent = errors.New("fmt-check: formatting is not idempotent")
)

// RoundTrip is the outcome of a successful CheckRoundTrip.
type RoundTrip struct {
	Formatted []byte
	// Changed reports whether Formatted differs from the input bytes.
	Changed bool
}

// CheckRoundTrip parses sf, formats it, re-parses the output and compares
// the top-level items (count, kind, name, visibility). The output is then
// formatted once more and must come out byte-identical.
func CheckRoundTrip(sf *source.File, opt Options) (RoundTrip, error) {
	first, firstFile, err := parseBytes(sf.Path, sf.Content)
	if err != nil {
		return RoundTrip{}, fmt.Errorf("%w: %w", ErrParse, err)
	}
	out, err := FormatFile(first, firstFile, opt)
	if err != nil {
		return RoundTrip{}, err
	}

	second, secondFile, err := parseBytes(sf.Path, out)
	if err != nil {
		return RoundTrip{}, fmt.Errorf("%w: %w", ErrReparse, err)
	}
	if diff := compareItems(first, firstFile, second, secondFile); diff != "" {
		return RoundTrip{}, fmt.Errorf("%w: %s", ErrStructure, diff)
	}

	again, err := FormatFile(second, secondFile, opt)
	if err != nil {
		return RoundTrip{}, err
	}
	if !bytes.Equal(out, again) {
		return RoundTrip{}, ErrNotIdempotent
	}
	return RoundTrip{Formatted: out, Changed: !bytes.Equal(sf.Content, out)}, nil
}

func parseBytes(path string, content []byte) (*ast.Builder, ast.FileID, error) {
	fs := source.NewFileSetWithBase("")
	id := fs.AddVirtual(path, content)
	bag := diag.NewBag(16)
	reporter := &diag.BagReporter{Bag: bag}
	lx := lexer.New(fs.Get(id), lexer.Options{Reporter: reporter})
	builder := ast.NewBuilder(ast.Hints{}, nil)
	res := parser.ParseFile(lx, builder, parser.Options{Reporter: reporter})
	if res.Err != nil {
		return nil, ast.NoFileID, res.Err
	}
	if bag.HasErrors() {
		return nil, ast.NoFileID, errors.New(bag.Items()[0].Message)
	}
	return builder, res.File, nil
}

// compareItems returns "" when both files declare the same items in the same
// order, otherwise a short description of the first difference.
func compareItems(b1 *ast.Builder, f1 ast.FileID, b2 *ast.Builder, f2 ast.FileID) string {
	items1 := b1.Files.Get(f1).Items
	items2 := b2.Files.Get(f2).Items
	if len(items1) != len(items2) {
		return fmt.Sprintf("item count %d != %d", len(items1), len(items2))
	}
	for i := range items1 {
		a, b := b1.Items.Get(items1[i]), b2.Items.Get(items2[i])
		switch {
		case a.Kind != b.Kind:
			return fmt.Sprintf("item %d: kind %s != %s", i, a.Kind, b.Kind)
		case b1.Name(a.Name) != b2.Name(b.Name):
			return fmt.Sprintf("item %d: name %q != %q", i, b1.Name(a.Name), b2.Name(b.Name))
		case a.Visibility != b.Visibility:
			return fmt.Sprintf("item %d (%s): visibility %s != %s", i, b1.Name(a.Name), a.Visibility, b.Visibility)
		}
	}
	return ""
}
