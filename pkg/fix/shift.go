package fix

// ShiftOffset maps an offset in the buffer before edits to the buffer
// after them. Edits must be prepared with PrepareEdits.
//
// An offset inside a replaced range moves to the edge of the replacement:
// its end when stickRight is set, its start otherwise. The same rule
// decides which side of an insertion at the offset it lands on. Only the
// length of inserted and removed syntax moves the offset, never the text
// between edits.
func ShiftOffset(offset int, edits []TextEdit, stickRight bool) int {
	delta := 0
	for _, e := range edits {
		switch {
		case e.EndOffset < offset || (e.EndOffset == offset && e.StartOffset < offset):
			delta += e.Delta()
		case e.StartOffset == offset && e.EndOffset == offset:
			if stickRight {
				delta += len(e.NewText)
			}
		case e.StartOffset < offset:
			if stickRight {
				return e.StartOffset + delta + len(e.NewText)
			}
			return e.StartOffset + delta
		default:
			return offset + delta
		}
	}
	return offset + delta
}

// ShiftRange maps the range [start, end) through edits. The start sticks
// right and the end sticks left, so syntax inserted at the edges of the
// range stays outside it. A range that would invert collapses to start.
func ShiftRange(start, end int, edits []TextEdit) (int, int) {
	if start == end {
		shifted := ShiftOffset(start, edits, true)
		return shifted, shifted
	}
	newStart := ShiftOffset(start, edits, true)
	newEnd := ShiftOffset(end, edits, false)
	if newEnd < newStart {
		newEnd = newStart
	}
	return newStart, newEnd
}
