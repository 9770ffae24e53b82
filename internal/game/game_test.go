package game

import (
	"errors"
	"testing"
	"time"

	"github.com/iburimskiy/tonal-tangents/internal/config"
	"github.com/iburimskiy/tonal-tangents/internal/drag"
	"github.com/iburimskiy/tonal-tangents/internal/geometry"
	"github.com/iburimskiy/tonal-tangents/internal/logger"
	"github.com/iburimskiy/tonal-tangents/internal/notes"
	"github.com/ncruces/zenity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() config.Config {
	return config.Config{
		Size:          300,
		StrokeWidth:   10,
		DragThreshold: 2,
		TweenDuration: 100 * time.Millisecond,
		SamplesDir:    "assets/sounds",
		SampleRate:    44100,
		EnableDrag:    true,
	}
}

func newTestGame(t *testing.T) (*Game, *fakeBank) {
	t.Helper()
	return newTestGameWith(t, testConfig())
}

func newTestGameWith(t *testing.T, cfg config.Config) (*Game, *fakeBank) {
	t.Helper()
	log, _ := logger.NewTestLogger()
	bank := &fakeBank{}
	g, err := New(cfg, log, bank)
	require.NoError(t, err)
	return g, bank
}

func polygonFor(t *testing.T, g *Game, index int) []geometry.Point {
	t.Helper()
	pts := geometry.ComputePoints(g.layoutConfig())
	poly, err := geometry.ChordPolygon(notes.DiatonicChords[index], pts)
	require.NoError(t, err)
	return poly
}

func TestNewStartsAtRestOnFirstChord(t *testing.T) {
	g, _ := newTestGame(t)
	assert.Equal(t, polygonFor(t, g, 0), g.overlay.Vertices())
	assert.False(t, g.overlay.Animating())
}

func TestCircleDragRotatesAndAnimates(t *testing.T) {
	g, bank := newTestGame(t)

	// circle box starts at (90, 70)
	g.pointerDown(200, 200)
	assert.Equal(t, drag.Dragging, g.translator.State())
	assert.False(t, g.ctrl.ScrollEnabled())

	g.pointerMove(195, 199)
	assert.Equal(t, 6, g.ctrl.Active())
	require.Len(t, bank.played, 1)

	require.NoError(t, g.step(50*time.Millisecond))
	assert.True(t, g.overlay.Animating())
	assert.NotEqual(t, polygonFor(t, g, 6), g.overlay.Vertices())

	require.NoError(t, g.step(60*time.Millisecond))
	assert.Equal(t, polygonFor(t, g, 6), g.overlay.Vertices())

	g.pointerUp(195, 199)
	assert.Equal(t, drag.Idle, g.translator.State())
	assert.True(t, g.ctrl.ScrollEnabled())
}

func TestPressOutsideCircleDoesNotDrag(t *testing.T) {
	g, _ := newTestGame(t)
	g.pointerDown(10, 200)
	assert.Equal(t, drag.Idle, g.translator.State())
	g.pointerMove(0, 150)
	assert.Equal(t, 0, g.ctrl.Active())
}

func TestDisabledDragScrollsThePageInstead(t *testing.T) {
	cfg := testConfig()
	cfg.EnableDrag = false
	g, bank := newTestGameWith(t, cfg)

	g.pointerDown(200, 300)
	assert.Equal(t, drag.Idle, g.translator.State())
	assert.True(t, g.pageDragging)

	g.pointerMove(195, 290)
	assert.Equal(t, 0, g.ctrl.Active())
	assert.Empty(t, bank.played)
	assert.Equal(t, 10.0, g.scrollY)
	g.pointerUp(195, 290)
}

func TestDisablingDragMidGestureReleasesScroll(t *testing.T) {
	g, _ := newTestGame(t)

	g.pointerDown(200, 200)
	require.Equal(t, drag.Dragging, g.translator.State())
	require.False(t, g.ctrl.ScrollEnabled())

	g.setDragEnabled(false)
	assert.Equal(t, drag.Idle, g.translator.State())
	assert.True(t, g.ctrl.ScrollEnabled())
	assert.False(t, g.cfg.EnableDrag)

	g.pointerMove(150, 150)
	assert.Equal(t, 0, g.ctrl.Active())
	g.pointerUp(150, 150)

	g.setDragEnabled(true)
	g.pointerDown(200, 200)
	assert.Equal(t, drag.Dragging, g.translator.State())
}

func TestStepFlushesThrottledDrag(t *testing.T) {
	cfg := testConfig()
	cfg.DragThrottle = 50 * time.Millisecond
	g, bank := newTestGameWith(t, cfg)

	g.pointerDown(200, 200)
	g.pointerMove(195, 200)
	assert.Equal(t, 6, g.ctrl.Active())

	// held back by the throttle until the window reopens
	g.pointerMove(190, 200)
	assert.Equal(t, 6, g.ctrl.Active())

	time.Sleep(60 * time.Millisecond)
	require.NoError(t, g.step(time.Millisecond))
	assert.Equal(t, 5, g.ctrl.Active())
	assert.Len(t, bank.played, 2)
}

func TestButtonsRotate(t *testing.T) {
	g, _ := newTestGame(t)

	r := g.buttonRect(buttonRight)
	g.pointerDown(r.X+5, r.Y+5)
	g.pointerUp(r.X+10, r.Y+10)
	assert.Equal(t, 1, g.ctrl.Active())

	l := g.buttonRect(buttonLeft)
	g.pointerDown(l.X+5, l.Y+5)
	g.pointerUp(l.X+5, l.Y+5)
	g.pointerDown(l.X+5, l.Y+5)
	g.pointerUp(l.X+5, l.Y+5)
	assert.Equal(t, 6, g.ctrl.Active())

	// releasing off the button cancels the click
	g.pointerDown(r.X+5, r.Y+5)
	g.pointerUp(0, 0)
	assert.Equal(t, 6, g.ctrl.Active())
}

func TestSamplesButtonReloadsBank(t *testing.T) {
	g, bank := newTestGame(t)
	g.pickDir = func(start string) (string, error) {
		assert.Equal(t, "assets/sounds", start)
		return "/samples/steinway", nil
	}

	r := g.buttonRect(buttonSamples)
	g.pointerDown(r.X+1, r.Y+1)
	g.pointerUp(r.X+1, r.Y+1)
	assert.Equal(t, []string{"/samples/steinway"}, bank.loaded)
	assert.Equal(t, "/samples/steinway", g.cfg.SamplesDir)

	g.pickDir = func(string) (string, error) { return "", zenity.ErrCanceled }
	g.click(buttonSamples)
	assert.Len(t, bank.loaded, 1)
	assert.NoError(t, g.lastErr)

	g.pickDir = func(string) (string, error) { return "", errors.New("no display") }
	g.click(buttonSamples)
	assert.EqualError(t, g.lastErr, "no display")
}

func TestScrollIsClampedAndLockedWhileDragging(t *testing.T) {
	g, _ := newTestGame(t)
	maxScroll := g.contentHeight() - config.WindowHeight
	require.Greater(t, maxScroll, 0.0)

	g.scroll(-1000)
	assert.Equal(t, maxScroll, g.scrollY)
	g.scroll(1000)
	assert.Equal(t, 0.0, g.scrollY)

	g.pointerDown(200, 200)
	g.scroll(-10)
	assert.Equal(t, 0.0, g.scrollY)
	g.pointerUp(200, 200)

	// dragging the page outside the circle scrolls it
	g.pointerDown(10, 300)
	g.pointerMove(10, 290)
	assert.Equal(t, 10.0, g.scrollY)
	g.pointerUp(10, 290)
}

func TestResizeRetargetsPolygon(t *testing.T) {
	g, _ := newTestGame(t)
	g.resize(config.SizeStep)
	assert.Equal(t, 320.0, g.cfg.Size)

	require.NoError(t, g.step(time.Second))
	assert.Equal(t, polygonFor(t, g, 0), g.overlay.Vertices())

	g.resize(1000)
	assert.Equal(t, 320.0, g.cfg.Size)
	g.resize(-1000)
	assert.Equal(t, 320.0, g.cfg.Size)
}

func TestShapeColorWraps(t *testing.T) {
	assert.Equal(t, shapeColor(0), shapeColor(3))
	assert.NotEqual(t, shapeColor(0), shapeColor(1))
	assert.Equal(t, shapeColor(2), shapeColor(-1))
}

func TestHsvToRgb(t *testing.T) {
	r, g, b := hsvToRgb(0, 1, 1)
	assert.Equal(t, []uint8{255, 0, 0}, []uint8{r, g, b})
	r, g, b = hsvToRgb(240, 1, 1)
	assert.Equal(t, []uint8{0, 0, 255}, []uint8{r, g, b})
}
