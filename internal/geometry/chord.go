package geometry

import (
	"fmt"

	"github.com/iburimskiy/tonal-tangents/internal/notes"
)

// ChordPolygon maps each chord note to its marker position. Vertex order
// follows the chord's note order, which defines the polygon's winding.
func ChordPolygon(chord notes.ChordDefinition, points []CirclePoint) ([]Point, error) {
	out := make([]Point, 0, len(chord.Notes))
	for _, n := range chord.Notes {
		idx, ok := notes.Index(n)
		if !ok || idx >= len(points) {
			return nil, fmt.Errorf("%s: %w %q", chord.Label, notes.ErrUnknownNote, n)
		}
		out = append(out, points[idx].Point)
	}
	return out, nil
}
