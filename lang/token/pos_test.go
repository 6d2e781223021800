package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPosRoundtrip(t *testing.T) {
	cases := []struct {
		line, col int
	}{
		{1, 1},
		{1, 80},
		{1234, 42},
		{MaxLines, MaxCols},
	}
	for _, c := range cases {
		p := MakePos(c.line, c.col)
		l, col := p.LineCol()
		assert.Equal(t, c.line, l)
		assert.Equal(t, c.col, col)
		assert.True(t, p.IsValid())
		assert.False(t, p.Unknown())
	}
}

func TestPosUnknown(t *testing.T) {
	var zero Pos
	assert.True(t, zero.Unknown())
	assert.False(t, zero.IsValid())

	noCol := MakePos(3, 0)
	assert.True(t, noCol.Unknown())
}

func TestPosShift(t *testing.T) {
	p := MakePos(7, 10).Shift(5)
	l, c := p.LineCol()
	assert.Equal(t, 7, l)
	assert.Equal(t, 15, c)
}

func TestToPosition(t *testing.T) {
	p := MakePos(2, 9)
	pos := p.ToPosition("x.nel")
	require.Equal(t, "x.nel", pos.Filename)
	assert.Equal(t, 2, pos.Line)
	assert.Equal(t, 9, pos.Column)
	assert.Equal(t, "x.nel:2:9", pos.String())
}

func TestFormatPos(t *testing.T) {
	p := MakePos(3, 14)
	assert.Equal(t, "3:14", FormatPos(PosLong, p))
	assert.Equal(t, "", FormatPos(PosNone, p))
}
