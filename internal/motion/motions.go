package motion

// clampCol keeps col within the length of row.
func clampCol(l Lines, row, col int) int {
	return max(0, min(col, l.RowLen(row)))
}

// lastRow returns the index of the last row, or 0 for an empty buffer.
func lastRow(l Lines) int {
	return max(0, l.RowCount()-1)
}

// Left moves count columns left without leaving the row.
func Left(_ Context, p Position, count int) Position {
	p.Col = max(0, p.Col-count)
	return p
}

// Right moves count columns right, stopping at the end of the row.
func Right(ctx Context, p Position, count int) Position {
	p.Col = min(p.Col+count, ctx.Lines.RowLen(p.Row))
	return p
}

// Down moves count rows down, stopping at the last row, then clamps the
// column to the destination row.
func Down(ctx Context, p Position, count int) Position {
	p.Row = min(p.Row+count, lastRow(ctx.Lines))
	p.Col = clampCol(ctx.Lines, p.Row, p.Col)
	return p
}

// Up moves count rows up, stopping at the first row, then clamps the column
// to the destination row.
func Up(ctx Context, p Position, count int) Position {
	p.Row = max(0, p.Row-count)
	p.Col = clampCol(ctx.Lines, p.Row, p.Col)
	return p
}

// LineStart moves to column 0, then count-1 rows down.
func LineStart(ctx Context, p Position, count int) Position {
	p.Col = 0
	if count > 1 {
		p = Down(ctx, p, count-1)
	}
	return p
}

// LineEnd moves to the end of the row, then count-1 rows down. The column
// is set before moving, so it is clamped to the destination row's length.
func LineEnd(ctx Context, p Position, count int) Position {
	p.Col = ctx.Lines.RowLen(p.Row)
	if count > 1 {
		p = Down(ctx, p, count-1)
	}
	return p
}

// FirstRow jumps to the first row. count is ignored.
func FirstRow(ctx Context, p Position, _ int) Position {
	p.Row = 0
	p.Col = clampCol(ctx.Lines, p.Row, p.Col)
	return p
}

// LastRow jumps to the last row. count is ignored.
func LastRow(ctx Context, p Position, _ int) Position {
	p.Row = lastRow(ctx.Lines)
	p.Col = clampCol(ctx.Lines, p.Row, p.Col)
	return p
}

// PageUp moves to the top visible row and then one screen further up,
// count times.
func PageUp(ctx Context, p Position, count int) Position {
	page := max(1, ctx.PageRows)
	p.Row = min(ctx.RowOffset, lastRow(ctx.Lines))
	return Up(ctx, p, page*count)
}

// PageDown moves to the bottom visible row and then one screen further
// down, count times.
func PageDown(ctx Context, p Position, count int) Position {
	page := max(1, ctx.PageRows)
	p.Row = min(ctx.RowOffset+page-1, lastRow(ctx.Lines))
	return Down(ctx, p, page*count)
}
