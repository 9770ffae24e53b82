package notes

import (
	"errors"
	"fmt"
	"strings"
)

// ChordSize is the number of notes in every chord shape.
const ChordSize = 4

// Names lists the 12 pitch classes in chromatic order starting at C.
// A note's position in this slice is its index on the circle.
var Names = []string{
	"C",
	"C♯/D♭",
	"D",
	"D♯/E♭",
	"E",
	"F",
	"F♯/G♭",
	"G",
	"G♯/A♭",
	"A",
	"A♯/B♭",
	"B",
}

// NumPoints is the number of notes on the circle.
var NumPoints = len(Names)

var nameToIndex = func() map[string]int {
	m := make(map[string]int, len(Names))
	for i, n := range Names {
		m[n] = i
	}
	return m
}()

var ErrUnknownNote = errors.New("unknown note")

// Index returns the circle index of a note name.
func Index(name string) (int, bool) {
	i, ok := nameToIndex[name]
	return i, ok
}

// Display returns an ASCII rendering of a note name, splitting enharmonic
// pairs onto two lines.
func Display(name string) string {
	r := strings.NewReplacer("♯", "#", "♭", "b", "/", "\n")
	return r.Replace(name)
}

// Lines splits an enharmonic pair onto two lines, keeping the accidentals.
func Lines(name string) string {
	return strings.ReplaceAll(name, "/", "\n")
}

// IsWide reports whether a label needs the outer (big) anchor.
func IsWide(name string) bool {
	return len([]rune(name)) > 2
}

// ChordDefinition is a static chord shape on the circle.
type ChordDefinition struct {
	Label     string
	Notes     [ChordSize]string
	ShapeType int
}

// DiatonicChords are the seventh chords built on each degree of C major.
var DiatonicChords = []ChordDefinition{
	{Label: "C Major 7th Chord", Notes: [ChordSize]string{"B", "C", "E", "G"}, ShapeType: 0},
	{Label: "D Minor 7th Chord", Notes: [ChordSize]string{"B", "D", "E", "G"}, ShapeType: 1},
	{Label: "E Minor 7th Chord", Notes: [ChordSize]string{"B", "D", "F", "G"}, ShapeType: 2},
	{Label: "F Major 7th Chord", Notes: [ChordSize]string{"C", "D", "F", "A"}, ShapeType: 1},
	{Label: "G Dominant 7th Chord", Notes: [ChordSize]string{"C", "E", "F", "A"}, ShapeType: 0},
	{Label: "A Minor 7th Chord", Notes: [ChordSize]string{"C", "E", "G", "A"}, ShapeType: 1},
	{Label: "B Half Diminished Chord", Notes: [ChordSize]string{"B", "D", "F", "A"}, ShapeType: 2},
}

// Validate checks that every chord references notes from the table.
func Validate(chords []ChordDefinition) error {
	if len(chords) == 0 {
		return errors.New("no chords defined")
	}
	for _, c := range chords {
		for _, n := range c.Notes {
			if _, ok := nameToIndex[n]; !ok {
				return fmt.Errorf("chord %q: %w %q", c.Label, ErrUnknownNote, n)
			}
		}
	}
	return nil
}

// Next returns the index after i, wrapping to 0.
func Next(i, count int) int {
	return (i + 1) % count
}

// Prev returns the index before i, wrapping to count-1.
func Prev(i, count int) int {
	if i == 0 {
		return count - 1
	}
	return i - 1
}
