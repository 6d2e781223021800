package scanner_test

import (
	"bytes"
	"context"
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/mna/mainer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mna/nelumbo/internal/filetest"
	"github.com/mna/nelumbo/internal/maincmd"
	"github.com/mna/nelumbo/lang/scanner"
	"github.com/mna/nelumbo/lang/token"
)

var testUpdateScannerTests = flag.Bool("test.update-scanner-tests", false, "If set, replace expected scanner test results with actual results.")

func TestScanner(t *testing.T) {
	ctx := context.Background()
	srcDir, resultDir := filepath.Join("testdata", "in"), filepath.Join("testdata", "out")

	for _, name := range filetest.SourceFiles(t, srcDir, ".nel") {
		t.Run(name, func(t *testing.T) {
			var buf, ebuf bytes.Buffer
			stdio := mainer.Stdio{
				Stdout: &buf,
				Stderr: &ebuf,
			}

			// error is ignored, we just want it to be printed to ebuf
			_ = maincmd.TokenizeFiles(ctx, stdio, filepath.Join(srcDir, name))
			filetest.DiffOutput(t, name, buf.String(), resultDir, testUpdateScannerTests)
			filetest.DiffErrors(t, name, ebuf.String(), resultDir, testUpdateScannerTests)

			if t.Failed() && testing.Verbose() {
				b, err := os.ReadFile(filepath.Join(srcDir, name))
				if assert.NoError(t, err) {
					t.Logf("source file:\n%s\n", string(b))
				}
			}
		})
	}
}

func TestScanChunkTokens(t *testing.T) {
	toks, err := scanner.ScanChunk(context.Background(), "test", []byte(`var x = 1 <= 2;`))
	require.NoError(t, err)

	want := []token.Token{token.VAR, token.IDENT, token.EQ, token.NUMBER,
		token.LE, token.NUMBER, token.SEMI, token.EOF}
	require.Len(t, toks, len(want))
	for i, tv := range toks {
		assert.Equal(t, want[i], tv.Token, "token %d", i)
	}

	assert.Equal(t, "x", toks[1].Value.Str)
	assert.Equal(t, float64(1), toks[3].Value.Num)
}

func TestScanChunkString(t *testing.T) {
	toks, err := scanner.ScanChunk(context.Background(), "test", []byte(`"hello world"`))
	require.NoError(t, err)
	require.Equal(t, token.STRING, toks[0].Token)
	assert.Equal(t, "hello world", toks[0].Value.Str)
	assert.Equal(t, `"hello world"`, toks[0].Value.Raw)
}

func TestScanChunkComment(t *testing.T) {
	toks, err := scanner.ScanChunk(context.Background(), "test", []byte("// nothing here\n1 // trailing\n"))
	require.NoError(t, err)
	require.Equal(t, token.NUMBER, toks[0].Token)
	l, c := toks[0].Value.Pos.LineCol()
	assert.Equal(t, 2, l)
	assert.Equal(t, 1, c)
	assert.Equal(t, token.EOF, toks[1].Token)
}
