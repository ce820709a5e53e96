package state

// selectable reports whether item i can take the highlight.
func (l *Level) selectable(i int) bool {
	return i >= 0 && i < len(l.Items) && l.Items[i].Selectable()
}

// SetCursor highlights item i. Unselectable items and out-of-range indexes
// clear the highlight. It reports whether the highlight changed.
func (l *Level) SetCursor(i int) bool {
	if !l.selectable(i) {
		i = -1
	}
	if i == l.Cursor {
		return false
	}
	l.LastCursor = l.Cursor
	l.Cursor = i
	return true
}

// MoveCursorDown highlights the next selectable item, wrapping at the end.
func (l *Level) MoveCursorDown() bool {
	return l.step(1)
}

// MoveCursorUp highlights the previous selectable item, wrapping at the top.
func (l *Level) MoveCursorUp() bool {
	return l.step(-1)
}

func (l *Level) step(delta int) bool {
	n := len(l.Items)
	if n == 0 {
		return false
	}
	start := l.Cursor
	if start < 0 {
		// nothing highlighted: down starts at the top, up at the bottom
		if delta > 0 {
			start = n - 1
		} else {
			start = 0
		}
	}
	i := start
	for range n {
		i = (i + delta + n) % n
		if l.selectable(i) {
			return l.SetCursor(i)
		}
	}
	return false
}

// MoveCursorHome highlights the first selectable item.
func (l *Level) MoveCursorHome() bool {
	for i := range l.Items {
		if l.selectable(i) {
			return l.SetCursor(i)
		}
	}
	return false
}

// MoveCursorEnd highlights the last selectable item.
func (l *Level) MoveCursorEnd() bool {
	for i := len(l.Items) - 1; i >= 0; i-- {
		if l.selectable(i) {
			return l.SetCursor(i)
		}
	}
	return false
}
