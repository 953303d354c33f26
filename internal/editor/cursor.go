package editor

// scroll recomputes the render column and shifts the scroll offsets just
// enough to keep the cursor inside the text area.
func (e *Editor) scroll() {
	e.rx = 0
	if row := e.buf.Row(e.cy); row != nil {
		e.rx = row.RenderX(e.cx, e.buf.TabStop())
	}

	if e.cy < e.rowOffset {
		e.rowOffset = e.cy
	}
	if e.cy >= e.rowOffset+e.screenRows {
		e.rowOffset = e.cy - e.screenRows + 1
	}

	cols := e.textCols()
	if e.rx < e.colOffset {
		e.colOffset = e.rx
	}
	if e.rx >= e.colOffset+cols {
		e.colOffset = e.rx - cols + 1
	}
}

// gutterWidth is the number of cells taken by the line-number field,
// including its trailing space. The banner screen has no gutter.
func (e *Editor) gutterWidth() int {
	if !e.opts.LineNumbers || e.buf.RowCount() == 0 {
		return 0
	}
	return min(e.opts.GutterWidth+1, e.screenCols-1)
}

// textCols is the number of cells available for row content.
func (e *Editor) textCols() int {
	return max(1, e.screenCols-e.gutterWidth())
}

// Viewport returns the row and column scroll offsets.
func (e *Editor) Viewport() (rowOffset, colOffset int) {
	return e.rowOffset, e.colOffset
}
