package interp_test

import (
	"bytes"
	"context"
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/mna/mainer"
	"github.com/stretchr/testify/assert"

	"github.com/mna/nelumbo/internal/filetest"
	"github.com/mna/nelumbo/internal/maincmd"
)

var testUpdateInterpTests = flag.Bool("test.update-interp-tests", false, "If set, replace expected interpreter test results with actual results.")

// TestInterp runs each script under testdata/in end to end - scan, parse,
// resolve, interpret - and compares stdout and stderr against the golden
// files. Scripts without a .err golden file must succeed.
func TestInterp(t *testing.T) {
	ctx := context.Background()
	srcDir, resultDir := filepath.Join("testdata", "in"), filepath.Join("testdata", "out")

	for _, name := range filetest.SourceFiles(t, srcDir, ".nel") {
		t.Run(name, func(t *testing.T) {
			var buf, ebuf bytes.Buffer
			stdio := mainer.Stdio{
				Stdout: &buf,
				Stderr: &ebuf,
			}

			code := maincmd.RunFile(ctx, stdio, nil, filepath.Join(srcDir, name))
			filetest.DiffOutput(t, name, buf.String(), resultDir, testUpdateInterpTests)
			filetest.DiffErrors(t, name, ebuf.String(), resultDir, testUpdateInterpTests)

			if ebuf.Len() == 0 {
				assert.Equal(t, mainer.Success, code)
			} else {
				assert.NotEqual(t, mainer.Success, code)
			}

			if t.Failed() && testing.Verbose() {
				b, err := os.ReadFile(filepath.Join(srcDir, name))
				if assert.NoError(t, err) {
					t.Logf("source file:\n%s\n", string(b))
				}
			}
		})
	}
}
