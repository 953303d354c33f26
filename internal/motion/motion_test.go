package motion

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/willibrandon/vex/internal/input"
)

// rows is a Lines implementation over fixed row lengths.
type rows []int

func (r rows) RowCount() int { return len(r) }

func (r rows) RowLen(i int) int {
	if i < 0 || i >= len(r) {
		return 0
	}
	return r[i]
}

func ctxFor(r rows) Context {
	return Context{Lines: r, PageRows: 5}
}

func TestResolve(t *testing.T) {
	reg := Default()
	lines := rows{3, 3, 10, 0, 6}

	tests := []struct {
		name  string
		key   input.Key
		start Position
		count int
		want  Position
	}{
		{name: "h stops at column 0", key: 'h', start: Position{0, 2}, count: 5, want: Position{0, 0}},
		{name: "l stops at row end", key: 'l', start: Position{0, 1}, count: 9, want: Position{0, 3}},
		{name: "l single", key: 'l', start: Position{2, 4}, count: 1, want: Position{2, 5}},
		{name: "j clamps column", key: 'j', start: Position{2, 8}, count: 1, want: Position{3, 0}},
		{name: "j count clamps at last row", key: 'j', start: Position{0, 0}, count: 40, want: Position{4, 0}},
		{name: "k clamps column", key: 'k', start: Position{2, 9}, count: 2, want: Position{0, 3}},
		{name: "k count clamps at first row", key: 'k', start: Position{2, 0}, count: 7, want: Position{0, 0}},
		{name: "underscore", key: '_', start: Position{2, 7}, count: 1, want: Position{2, 0}},
		{name: "underscore with count goes down", key: '_', start: Position{0, 2}, count: 3, want: Position{2, 0}},
		{name: "dollar", key: '$', start: Position{2, 1}, count: 1, want: Position{2, 10}},
		{name: "dollar with count clamps to destination", key: '$', start: Position{2, 1}, count: 2, want: Position{3, 0}},
		{name: "g ignores count", key: 'g', start: Position{4, 5}, count: 3, want: Position{0, 3}},
		{name: "G ignores count", key: 'G', start: Position{0, 2}, count: 2, want: Position{4, 2}},
		{name: "arrow right", key: input.KeyArrowRight, start: Position{0, 0}, count: 2, want: Position{0, 2}},
		{name: "home", key: input.KeyHome, start: Position{2, 5}, count: 1, want: Position{2, 0}},
		{name: "end", key: input.KeyEnd, start: Position{4, 0}, count: 1, want: Position{4, 6}},
		{name: "zero count treated as one", key: 'j', start: Position{0, 0}, count: 0, want: Position{1, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := reg.Resolve(tt.key, ctxFor(lines), tt.start, tt.count)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolve_GLandsOnLastRow(t *testing.T) {
	reg := Default()
	lines := rows{4, 1, 7, 2}
	for row := range lines {
		for col := 0; col <= lines[row]; col++ {
			got, err := reg.Resolve('G', ctxFor(lines), Position{row, col}, 1)
			require.NoError(t, err)
			assert.Equal(t, 3, got.Row)
			assert.LessOrEqual(t, got.Col, lines[3])
		}
	}
}

func TestResolve_CountExceedingRows(t *testing.T) {
	got, err := Default().Resolve('j', ctxFor(rows{3, 3}), Position{0, 0}, 3)
	require.NoError(t, err)
	assert.Equal(t, Position{1, 0}, got)
}

func TestResolve_EmptyBuffer(t *testing.T) {
	reg := Default()
	for _, key := range []input.Key{'h', 'j', 'k', 'l', '_', '$', 'g', 'G'} {
		got, err := reg.Resolve(key, ctxFor(rows{}), Position{}, 4)
		require.NoError(t, err)
		assert.Equal(t, Position{}, got, "key %s", key)
	}
}

func TestResolve_WordMotionsNotSupported(t *testing.T) {
	reg := Default()
	start := Position{1, 1}
	for _, key := range []input.Key{'w', 'b', 'W', 'B'} {
		assert.True(t, reg.Has(key))
		got, err := reg.Resolve(key, ctxFor(rows{5, 5}), start, 2)
		assert.ErrorIs(t, err, ErrNotSupported)
		assert.Equal(t, start, got)
	}
}

func TestResolve_UnknownKey(t *testing.T) {
	start := Position{0, 1}
	got, err := Default().Resolve('z', ctxFor(rows{5}), start, 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownMotion)
	assert.Contains(t, err.Error(), "'z'")
	assert.Equal(t, start, got)
}

func TestPaging(t *testing.T) {
	lines := make(rows, 30)
	for i := range lines {
		lines[i] = 4
	}
	ctx := Context{Lines: lines, PageRows: 10, RowOffset: 5}

	got := PageDown(ctx, Position{Row: 7, Col: 2}, 1)
	assert.Equal(t, Position{Row: 24, Col: 2}, got)

	got = PageUp(ctx, Position{Row: 7, Col: 2}, 1)
	assert.Equal(t, Position{Row: 0, Col: 2}, got)

	ctx.RowOffset = 20
	got = PageDown(ctx, Position{Row: 25}, 1)
	assert.Equal(t, 29, got.Row)
}

func TestRegistry_Help(t *testing.T) {
	reg := Default()
	assert.Equal(t, "Move cursor down", reg.Help('j'))
	assert.False(t, reg.Has('q'))
}
