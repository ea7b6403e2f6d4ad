package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"cinder/internal/source"
	"cinder/internal/token"
)

type TokenOutput struct {
	Kind    string   `json:"kind"`
	Text    string   `json:"text,omitempty"`
	Start   uint32   `json:"start"`
	End     uint32   `json:"end"`
	Line    uint32   `json:"line,omitempty"`
	Col     uint32   `json:"col,omitempty"`
	Leading []string `json:"leading,omitempty"`
}

func leadingKinds(tok token.Token) []string {
	if len(tok.Leading) == 0 {
		return nil
	}
	kinds := make([]string, 0, len(tok.Leading))
	for _, trivia := range tok.Leading {
		kinds = append(kinds, trivia.Kind.String())
	}
	return kinds
}

// FormatTokensPretty выводит токены по одному на строку:
// номер, вид, текст, позиция начала и конца, leading trivia.
func FormatTokensPretty(w io.Writer, tokens []token.Token, fs *source.FileSet) error {
	for i, tok := range tokens {
		var sb strings.Builder
		fmt.Fprintf(&sb, "%4d: %-16s", i+1, tok.Kind.String())
		if tok.Text != "" {
			fmt.Fprintf(&sb, " %q", tok.Text)
		}
		if validSpan(fs, tok.Span) {
			startPos, endPos := fs.Resolve(tok.Span)
			fmt.Fprintf(&sb, " at %d:%d-%d:%d", startPos.Line, startPos.Col, endPos.Line, endPos.Col)
		}
		if leading := leadingKinds(tok); len(leading) > 0 {
			fmt.Fprintf(&sb, " (leading: %s)", strings.Join(leading, ", "))
		}
		sb.WriteByte('\n')
		if _, err := io.WriteString(w, sb.String()); err != nil {
			return err
		}
		if tok.Kind == token.EOF {
			break
		}
	}
	return nil
}

// FormatTokensJSON выводит токены JSON-массивом; fs может быть nil,
// тогда line/col опускаются.
func FormatTokensJSON(w io.Writer, tokens []token.Token, fs *source.FileSet) error {
	output := make([]TokenOutput, 0, len(tokens))
	for _, tok := range tokens {
		out := TokenOutput{
			Kind:    tok.Kind.String(),
			Text:    tok.Text,
			Start:   tok.Span.Start,
			End:     tok.Span.End,
			Leading: leadingKinds(tok),
		}
		if validSpan(fs, tok.Span) {
			pos, _ := fs.Resolve(tok.Span)
			out.Line, out.Col = pos.Line, pos.Col
		}
		output = append(output, out)
		if tok.Kind == token.EOF {
			break
		}
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}
