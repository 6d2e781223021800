package parser_test

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
	"github.com/mna/nelumbo/lang/ast"
	"github.com/mna/nelumbo/lang/parser"
	"github.com/mna/nelumbo/lang/scanner"
)

var testUpdateParserTests = flag.Bool("test.update-parser-tests", false, "If set, replace expected parser test results with actual results.")

func TestParser(t *testing.T) {
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
			_ = maincmd.ParseFiles(ctx, stdio, filepath.Join(srcDir, name))
			filetest.DiffOutput(t, name, buf.String(), resultDir, testUpdateParserTests)
			filetest.DiffErrors(t, name, ebuf.String(), resultDir, testUpdateParserTests)

			if t.Failed() && testing.Verbose() {
				b, err := os.ReadFile(filepath.Join(srcDir, name))
				if assert.NoError(t, err) {
					t.Logf("source file:\n%s\n", string(b))
				}
			}
		})
	}
}

func TestParseChunkForDesugar(t *testing.T) {
	ch, err := parser.ParseChunk(context.Background(), "test",
		[]byte(`for (var i = 0; i < 3; i = i + 1) print i;`))
	require.NoError(t, err)

	// { var i; while (cond) { print i; i = i + 1; } }
	require.Len(t, ch.Stmts, 1)
	block, ok := ch.Stmts[0].(*ast.BlockStmt)
	require.True(t, ok)
	require.Len(t, block.Stmts, 2)
	_, ok = block.Stmts[0].(*ast.VarStmt)
	assert.True(t, ok)
	loop, ok := block.Stmts[1].(*ast.WhileStmt)
	require.True(t, ok)
	body, ok := loop.Body.(*ast.BlockStmt)
	require.True(t, ok)
	require.Len(t, body.Stmts, 2)
	_, ok = body.Stmts[0].(*ast.PrintStmt)
	assert.True(t, ok)
	incr, ok := body.Stmts[1].(*ast.ExprStmt)
	require.True(t, ok)
	_, ok = incr.Expr.(*ast.AssignExpr)
	assert.True(t, ok)
}

func TestParseChunkAssignTargets(t *testing.T) {
	ch, err := parser.ParseChunk(context.Background(), "test", []byte(`a.b = 1; a = 2;`))
	require.NoError(t, err)
	require.Len(t, ch.Stmts, 2)

	set, ok := ch.Stmts[0].(*ast.ExprStmt).Expr.(*ast.SetExpr)
	require.True(t, ok)
	assert.Equal(t, "b", set.Name.Lit)

	assign, ok := ch.Stmts[1].(*ast.ExprStmt).Expr.(*ast.AssignExpr)
	require.True(t, ok)
	assert.Equal(t, "a", assign.Left.Lit)
}

func TestParseChunkInvalidAssignTarget(t *testing.T) {
	_, err := parser.ParseChunk(context.Background(), "test", []byte(`1 = 2;`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid assignment target")
}

func TestParseChunkRecovers(t *testing.T) {
	// one error per statement, both reported
	_, err := parser.ParseChunk(context.Background(), "test", []byte("var = 1;\nprint +;\n"))
	require.Error(t, err)

	list, ok := err.(scanner.ErrorList)
	require.True(t, ok)
	require.Len(t, list, 2)
	assert.Equal(t, 1, list[0].Pos.Line)
	assert.Equal(t, 5, list[0].Pos.Column)
	assert.Equal(t, 2, list[1].Pos.Line)
	assert.Equal(t, 7, list[1].Pos.Column)
}
