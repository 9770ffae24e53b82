package game

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/iburimskiy/tonal-tangents/internal/config"
)

// pollInput feeds this tick's keyboard, touch and mouse events to the
// pointer handlers. It reports whether the user asked to quit.
func (g *Game) pollInput() bool {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft) {
		g.ctrl.RotateLeft()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowRight) {
		g.ctrl.RotateRight()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyD) {
		g.setDragEnabled(!g.translator.Enabled())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEqual) || inpututil.IsKeyJustPressed(ebiten.KeyNumpadAdd) {
		g.resize(config.SizeStep)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyMinus) || inpututil.IsKeyJustPressed(ebiten.KeyNumpadSubtract) {
		g.resize(-config.SizeStep)
	}

	// Only the first finger down drives the gesture.
	if !g.touchActive {
		g.touchIDs = inpututil.AppendJustPressedTouchIDs(g.touchIDs[:0])
		if len(g.touchIDs) > 0 {
			g.activeTouch = g.touchIDs[0]
			g.touchActive = true
			x, y := ebiten.TouchPosition(g.activeTouch)
			g.pointerMove(float64(x), float64(y))
			g.pointerDown(float64(x), float64(y))
			return false
		}
	}
	if g.touchActive {
		if inpututil.IsTouchJustReleased(g.activeTouch) {
			x, y := inpututil.TouchPositionInPreviousTick(g.activeTouch)
			g.touchActive = false
			g.pointerUp(float64(x), float64(y))
		} else {
			x, y := ebiten.TouchPosition(g.activeTouch)
			g.pointerMove(float64(x), float64(y))
		}
		return false
	}

	mx, my := ebiten.CursorPosition()
	x, y := float64(mx), float64(my)
	g.pointerMove(x, y)
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.pointerDown(x, y)
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		g.pointerUp(x, y)
	}

	_, wy := ebiten.Wheel()
	g.scroll(wy * config.ScrollFactor)
	return false
}
