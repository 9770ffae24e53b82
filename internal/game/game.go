package game

import (
	"errors"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/iburimskiy/tonal-tangents/internal/config"
	"github.com/iburimskiy/tonal-tangents/internal/drag"
	"github.com/iburimskiy/tonal-tangents/internal/geometry"
	"github.com/iburimskiy/tonal-tangents/internal/notes"
	"github.com/iburimskiy/tonal-tangents/internal/tween"
	"github.com/ncruces/zenity"
	"go.uber.org/zap"
)

// SoundBank is the audio side of the game.
type SoundBank interface {
	ChordPlayer
	Level() float64
	Load(dir string)
}

type button int

const (
	buttonNone button = iota
	buttonLeft
	buttonRight
	buttonSamples
)

// Game draws the chord circle and routes input to the controller.
type Game struct {
	cfg  config.Config
	log  *zap.SugaredLogger
	bank SoundBank

	ctrl       *Controller
	translator *drag.Translator
	layout     geometry.LayoutCache
	overlay    *tween.Overlay

	scrollY float64

	// pointer state
	pressed      button
	hovered      button
	touchIDs     []ebiten.TouchID
	activeTouch  ebiten.TouchID
	touchActive  bool
	pageDragging bool
	pageLastY    float64

	labelFace     text.Face
	unicodeLabels bool

	pickDir func(start string) (string, error)
	lastErr error
}

// New validates the chord table and builds the initial shape.
func New(cfg config.Config, log *zap.SugaredLogger, bank SoundBank) (*Game, error) {
	if err := notes.Validate(notes.DiatonicChords); err != nil {
		return nil, err
	}
	g := &Game{
		cfg:     cfg,
		log:     log,
		bank:    bank,
		pickDir: pickSamplesDir,
	}
	g.ctrl = NewController(log, notes.DiatonicChords, bank, cfg.DragThreshold)

	g.translator = drag.New(cfg.DragThrottle)
	g.translator.OnDrag = g.ctrl.HandleDrag
	g.translator.OnDragging = g.ctrl.HandleDragging
	g.translator.SetEnabled(cfg.EnableDrag)

	g.labelFace, g.unicodeLabels = loadLabelFace(cfg.FontPath, log)

	target, err := g.targetPolygon()
	if err != nil {
		return nil, err
	}
	g.overlay = tween.NewOverlay(target, cfg.TweenDuration)
	return g, nil
}

func (g *Game) layoutConfig() geometry.LayoutConfig {
	return geometry.LayoutConfig{Size: g.cfg.Size, StrokeWidth: g.cfg.StrokeWidth}
}

func (g *Game) points() []geometry.CirclePoint {
	return g.layout.Points(g.layoutConfig())
}

func (g *Game) targetPolygon() ([]geometry.Point, error) {
	return geometry.ChordPolygon(g.ctrl.ActiveChord(), g.points())
}

func (g *Game) Update() error {
	if quit := g.pollInput(); quit {
		return ebiten.Termination
	}
	return g.step(time.Second / time.Duration(ebiten.TPS()))
}

// step retargets the overlay at the active chord and advances it by dt.
func (g *Game) step(dt time.Duration) error {
	target, err := g.targetPolygon()
	if err != nil {
		return err
	}
	if err := g.overlay.Retarget(target); err != nil {
		return err
	}
	g.translator.Flush()
	g.overlay.Advance(dt)
	return nil
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.WindowWidth, config.WindowHeight
}

// circleOrigin is the top-left of the circle's bounding box on screen.
func (g *Game) circleOrigin() (float64, float64) {
	return (config.WindowWidth - g.cfg.Size) / 2, config.CircleY - g.scrollY
}

func (g *Game) circleBounds() rect {
	x, y := g.circleOrigin()
	return rect{X: x, Y: y, W: g.cfg.Size, H: g.cfg.Size}
}

func (g *Game) buttonsY() float64 {
	_, y := g.circleOrigin()
	return y + g.cfg.Size + 60
}

func (g *Game) buttonRect(b button) rect {
	y := g.buttonsY()
	switch b {
	case buttonLeft:
		return rect{X: config.ButtonMargin, Y: y, W: config.ButtonWidth, H: config.ButtonHeight}
	case buttonRight:
		return rect{X: config.WindowWidth - config.ButtonMargin - config.ButtonWidth, Y: y, W: config.ButtonWidth, H: config.ButtonHeight}
	case buttonSamples:
		return rect{X: config.ButtonMargin, Y: y + config.ButtonHeight + 16, W: config.ButtonWidth, H: config.ButtonHeight}
	}
	return rect{}
}

func (g *Game) buttonAt(x, y float64) button {
	for _, b := range []button{buttonLeft, buttonRight, buttonSamples} {
		if g.buttonRect(b).contains(x, y) {
			return b
		}
	}
	return buttonNone
}

func (g *Game) contentHeight() float64 {
	return config.CircleY + g.cfg.Size + 60 + 2*config.ButtonHeight + 16 + config.ButtonMargin
}

func (g *Game) pointerDown(x, y float64) {
	if b := g.buttonAt(x, y); b != buttonNone {
		g.pressed = b
		return
	}
	if g.circleBounds().contains(x, y) && g.translator.Enabled() {
		g.translator.Begin(x, y)
		return
	}
	g.pageDragging = true
	g.pageLastY = y
}

func (g *Game) pointerMove(x, y float64) {
	g.hovered = g.buttonAt(x, y)
	g.translator.Move(x, y)
	if g.pageDragging {
		g.scroll(y - g.pageLastY)
		g.pageLastY = y
	}
}

func (g *Game) pointerUp(x, y float64) {
	g.translator.End()
	g.pageDragging = false
	if g.pressed != buttonNone && g.buttonAt(x, y) == g.pressed {
		g.click(g.pressed)
	}
	g.pressed = buttonNone
}

func (g *Game) click(b button) {
	switch b {
	case buttonLeft:
		g.ctrl.RotateLeft()
	case buttonRight:
		g.ctrl.RotateRight()
	case buttonSamples:
		if err := g.openSamplesDialog(); err != nil {
			g.lastErr = err
			g.log.Errorw("choosing samples folder", "error", err)
		}
	}
}

// scroll moves the page content by dy pixels unless a circle drag has
// locked it.
func (g *Game) scroll(dy float64) {
	if !g.ctrl.ScrollEnabled() || dy == 0 {
		return
	}
	maxScroll := math.Max(0, g.contentHeight()-config.WindowHeight)
	g.scrollY = math.Max(0, math.Min(maxScroll, g.scrollY-dy))
}

// setDragEnabled turns circle dragging on or off. A drag cut short this
// way never reports its end, so the scroll lock is released here.
func (g *Game) setDragEnabled(enabled bool) {
	wasDragging := g.translator.State() == drag.Dragging
	g.translator.SetEnabled(enabled)
	g.cfg.EnableDrag = enabled
	if wasDragging && !enabled {
		g.ctrl.HandleDragging(false)
	}
	g.log.Debugw("circle drag toggled", "enabled", enabled)
}

// resize changes the circle diameter, which invalidates the cached layout.
func (g *Game) resize(delta float64) {
	size := g.cfg.Size + delta
	maxSize := float64(config.WindowWidth - 2*config.CircleMargin)
	if size < config.MinSize || size > maxSize || size <= 2*g.cfg.StrokeWidth {
		return
	}
	g.cfg.Size = size
	g.log.Debugw("circle resized", "size", size)
}

func (g *Game) openSamplesDialog() error {
	dir, err := g.pickDir(g.cfg.SamplesDir)
	if err != nil {
		if errors.Is(err, zenity.ErrCanceled) {
			return nil
		}
		return err
	}
	g.log.Infow("loading samples", "dir", dir)
	g.cfg.SamplesDir = dir
	g.bank.Load(dir)
	return nil
}

func pickSamplesDir(start string) (string, error) {
	return zenity.SelectFile(
		zenity.Title("Choose Samples Folder"),
		zenity.Directory(),
		zenity.Filename(start),
	)
}
