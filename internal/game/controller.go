package game

import (
	"github.com/iburimskiy/tonal-tangents/internal/notes"
	"go.uber.org/zap"
)

// ChordPlayer sounds the notes of a chord.
type ChordPlayer interface {
	PlayChord(notes []string)
}

// Controller owns the active chord index. The renderer only reads it.
type Controller struct {
	log       *zap.SugaredLogger
	chords    []notes.ChordDefinition
	player    ChordPlayer
	threshold float64

	active        int
	scrollEnabled bool
}

func NewController(log *zap.SugaredLogger, chords []notes.ChordDefinition, player ChordPlayer, threshold float64) *Controller {
	return &Controller{
		log:           log,
		chords:        chords,
		player:        player,
		threshold:     threshold,
		scrollEnabled: true,
	}
}

func (c *Controller) Active() int { return c.active }

func (c *Controller) ActiveChord() notes.ChordDefinition { return c.chords[c.active] }

func (c *Controller) ScrollEnabled() bool { return c.scrollEnabled }

func (c *Controller) RotateRight() {
	c.updateChord(notes.Next(c.active, len(c.chords)))
}

func (c *Controller) RotateLeft() {
	c.updateChord(notes.Prev(c.active, len(c.chords)))
}

// HandleDrag rotates once the delta passes the threshold. Dragging left or
// up gives a positive delta and rotates left.
func (c *Controller) HandleDrag(delta float64) {
	switch {
	case delta > c.threshold:
		c.RotateLeft()
	case delta < -c.threshold:
		c.RotateRight()
	}
}

// HandleDragging locks page scrolling for the duration of a circle drag.
func (c *Controller) HandleDragging(dragging bool) {
	c.scrollEnabled = !dragging
}

func (c *Controller) updateChord(index int) {
	c.active = index
	chord := c.chords[index]
	c.log.Debugw("setting chord", "index", index, "label", chord.Label)
	if c.player != nil {
		c.player.PlayChord(chord.Notes[:])
	}
}
