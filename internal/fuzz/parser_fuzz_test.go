package fuzztests

import (
	"context"
	"errors"
	"testing"
	"time"

	"cinder/internal/dialect"
	"cinder/internal/driver"
	"cinder/internal/format"
	"cinder/internal/source"
)

// pipelineTimeout bounds one input; longer means a loop in error recovery.
const pipelineTimeout = 5 * time.Second

// FuzzPipeline runs every input through both dialects. Output must appear
// exactly when the bag has no errors.
func FuzzPipeline(f *testing.F) {
	addCorpusSeeds(f)
	f.Add([]byte("void f() { for (int i = 0 i < 10 i++) {} }"))
	f.Add([]byte("void f() { switch (x) { case 1: case 2: } }"))
	f.Add([]byte("int f() { int g() { return g(); } }"))
	f.Add([]byte("#define __M(a) a + 1\nint f() { return __M(2); }"))
	f.Add([]byte("void f() { (T) -x; (int) -x; }"))

	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)
		ctx, cancel := context.WithTimeout(context.Background(), pipelineTimeout)
		defer cancel()

		done := make(chan struct{})
		go func() {
			defer close(done)
			for _, target := range []dialect.Target{dialect.Closure, dialect.CStyle} {
				res, err := driver.CompileSource(ctx, "fuzz.cnd", input, driver.Options{Target: target})
				if err != nil {
					if errors.Is(err, context.DeadlineExceeded) {
						return
					}
					t.Errorf("%s: unexpected error: %v", target, err)
					return
				}
				if res.OK() == res.Bag.HasErrors() {
					t.Errorf("%s: OK=%v but HasErrors=%v", target, res.OK(), res.Bag.HasErrors())
				}
			}
		}()

		select {
		case <-done:
		case <-ctx.Done():
			t.Fatalf("pipeline hang: longer than %v\ninput (%d bytes): %q",
				pipelineTimeout, len(input), truncateForLog(input, 200))
		}
	})
}

// FuzzFormatRoundTrip: whatever parses must format to text that parses back
// to the same items, and formatting must be idempotent.
func FuzzFormatRoundTrip(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)
		fs := source.NewFileSet()
		file := fs.Get(fs.AddVirtual("fuzz.cnd", input))
		_, err := format.CheckRoundTrip(file, format.Options{})
		switch {
		case err == nil, errors.Is(err, format.ErrParse):
		default:
			t.Fatalf("round trip: %v\ninput: %q", err, truncateForLog(input, 200))
		}
	})
}

func truncateForLog(input []byte, maxLen int) []byte {
	if len(input) <= maxLen {
		return input
	}
	return append(append([]byte(nil), input[:maxLen]...), "..."...)
}
