package buffer

// Row is one line of text. chars holds the raw bytes; render holds the same
// bytes with every tab expanded to spaces up to the next tab stop.
type Row struct {
	chars  []byte
	render []byte
}

func newRow(text []byte, tabStop int) *Row {
	r := &Row{chars: append([]byte(nil), text...)}
	r.update(tabStop)
	return r
}

// Len returns the number of raw characters in the row.
func (r *Row) Len() int {
	return len(r.chars)
}

// RenderLen returns the length of the tab-expanded rendering.
func (r *Row) RenderLen() int {
	return len(r.render)
}

// Render returns the tab-expanded bytes. The slice must not be modified.
func (r *Row) Render() []byte {
	return r.render
}

// String returns the raw row content.
func (r *Row) String() string {
	return string(r.chars)
}

// update recomputes render from chars.
func (r *Row) update(tabStop int) {
	tabs := 0
	for _, c := range r.chars {
		if c == '\t' {
			tabs++
		}
	}

	render := make([]byte, 0, len(r.chars)+tabs*(tabStop-1))
	for _, c := range r.chars {
		if c != '\t' {
			render = append(render, c)
			continue
		}
		render = append(render, ' ')
		for len(render)%tabStop != 0 {
			render = append(render, ' ')
		}
	}
	r.render = render
}

// RenderX converts a raw column into a render column, accounting for tab
// expansion of every character before cx. cx is clamped to the row length.
func (r *Row) RenderX(cx, tabStop int) int {
	if cx > len(r.chars) {
		cx = len(r.chars)
	}
	rx := 0
	for _, c := range r.chars[:cx] {
		if c == '\t' {
			rx += (tabStop - 1) - (rx % tabStop)
		}
		rx++
	}
	return rx
}
