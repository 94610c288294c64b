package visual

// mapped is a hidden marker with its position in the transformed text.
type mapped struct {
	Marker

	tStart int
	tEnd   int
}

// OffsetMapper converts offsets between the source and the transformed
// text produced from it by hiding a set of markers.
type OffsetMapper struct {
	sourceLen int
	textLen   int
	markers   []mapped
}

// NewOffsetMapper builds a mapper for markers, which must be sorted by
// start offset and must not overlap. Zero-width insertions sort before
// markers starting at the same offset.
func NewOffsetMapper(sourceLen int, markers []Marker) *OffsetMapper {
	m := &OffsetMapper{sourceLen: sourceLen, markers: make([]mapped, 0, len(markers))}

	delta := 0
	for _, marker := range markers {
		tStart := marker.Start + delta
		tEnd := tStart + len(marker.Replacement)
		m.markers = append(m.markers, mapped{Marker: marker, tStart: tStart, tEnd: tEnd})
		delta += len(marker.Replacement) - (marker.End - marker.Start)
	}
	m.textLen = sourceLen + delta

	return m
}

// Markers returns the hidden markers in source order.
func (m *OffsetMapper) Markers() []Marker {
	out := make([]Marker, len(m.markers))
	for i := range m.markers {
		out[i] = m.markers[i].Marker
	}
	return out
}

// SourceLen returns the length of the source text.
func (m *OffsetMapper) SourceLen() int {
	return m.sourceLen
}

// TextLen returns the length of the transformed text.
func (m *OffsetMapper) TextLen() int {
	return m.textLen
}

// OriginalToTransformed maps a source offset to the transformed text.
// Offsets inside a hidden marker map to where the marker's replacement
// starts. Offsets are clamped to the source.
func (m *OffsetMapper) OriginalToTransformed(offset int) int {
	offset = min(max(offset, 0), m.sourceLen)

	delta := 0
	for i := range m.markers {
		marker := &m.markers[i]
		switch {
		case marker.Start == marker.End:
			if offset < marker.Start {
				return offset + delta
			}
			delta += len(marker.Replacement)
		case marker.End <= offset:
			delta += len(marker.Replacement) - (marker.End - marker.Start)
		case marker.Start < offset:
			return marker.tStart
		default:
			return offset + delta
		}
	}
	return offset + delta
}

// TransformedToOriginal maps a transformed offset back to the source.
// Offsets inside a replacement map to the start of its marker; an offset
// at the position of an elided marker maps past it. Offsets are clamped to
// the transformed text.
func (m *OffsetMapper) TransformedToOriginal(offset int) int {
	offset = min(max(offset, 0), m.textLen)

	delta := 0
	for i := range m.markers {
		marker := &m.markers[i]
		if offset < marker.tStart {
			break
		}
		if offset < marker.tEnd {
			return marker.Start
		}
		delta += (marker.End - marker.Start) - len(marker.Replacement)
	}
	return min(offset+delta, m.sourceLen)
}

// CursorToTransformed maps a source cursor to the transformed text.
// NoCursor is returned unchanged.
func (m *OffsetMapper) CursorToTransformed(c Cursor) Cursor {
	if !c.Valid() {
		return c
	}
	return Cursor{Start: m.OriginalToTransformed(c.Start), End: m.OriginalToTransformed(c.End)}
}

// CursorToOriginal maps a transformed cursor back to the source.
// NoCursor is returned unchanged.
func (m *OffsetMapper) CursorToOriginal(c Cursor) Cursor {
	if !c.Valid() {
		return c
	}
	return Cursor{Start: m.TransformedToOriginal(c.Start), End: m.TransformedToOriginal(c.End)}
}
