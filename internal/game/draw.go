package game

import (
	"image"
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/iburimskiy/tonal-tangents/internal/config"
	"github.com/iburimskiy/tonal-tangents/internal/drag"
	"github.com/iburimskiy/tonal-tangents/internal/geometry"
	"github.com/iburimskiy/tonal-tangents/internal/notes"
)

const (
	circleOpacity  = 0.2
	polygonOpacity = 0.2
	// extra fill opacity at full audio level
	pulseOpacity = 0.4

	// debug font cell
	glyphWidth  = 6
	glyphHeight = 16
)

var (
	backgroundColor = color.RGBA{R: 22, G: 26, B: 36, A: 255}
	strokeColor     = color.RGBA{R: 70, G: 76, B: 92, A: 255}
	circleFill      = color.RGBA{R: 0, G: 0, B: 0, A: 255}
	dragCircleFill  = color.RGBA{R: 139, G: 0, B: 0, A: 255}
	pointsColor     = color.RGBA{R: 255, G: 255, B: 255, A: 255}
)

var whiteSubImage *ebiten.Image

func fillSource() *ebiten.Image {
	if whiteSubImage == nil {
		img := ebiten.NewImage(3, 3)
		img.Fill(color.White)
		whiteSubImage = img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	}
	return whiteSubImage
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)

	g.drawCircle(screen)
	g.drawPolygon(screen)
	g.drawLabels(screen)
	g.drawChordLabel(screen)

	g.drawButton(screen, buttonLeft, "Left")
	g.drawButton(screen, buttonRight, "Right")
	g.drawButton(screen, buttonSamples, "Samples...")

	status := "Drag the circle or use the arrow keys, +/- to resize, D toggles drag"
	if g.lastErr != nil {
		status = "Error: " + g.lastErr.Error()
	}
	ebitenutil.DebugPrintAt(screen, status, 12, 12)
}

func (g *Game) drawCircle(screen *ebiten.Image) {
	ox, oy := g.circleOrigin()
	half := g.cfg.Size / 2
	cx, cy := float32(ox+half), float32(oy+half)
	r := float32(half - g.cfg.StrokeWidth)

	fill := circleFill
	if g.translator.State() == drag.Dragging {
		fill = dragCircleFill
	}
	vector.DrawFilledCircle(screen, cx, cy, r, withOpacity(fill, circleOpacity), true)
	vector.StrokeCircle(screen, cx, cy, r, float32(g.cfg.StrokeWidth), strokeColor, true)

	markerR := float32(g.cfg.StrokeWidth/2 - 1)
	for _, p := range g.points() {
		vector.DrawFilledCircle(screen, float32(ox+p.X), float32(oy+p.Y), markerR, pointsColor, true)
	}
}

// drawPolygon rebuilds the chord outline from the overlay's current frame.
func (g *Game) drawPolygon(screen *ebiten.Image) {
	verts := g.overlay.Vertices()
	if len(verts) < 3 {
		return
	}
	ox, oy := g.circleOrigin()
	path := polygonPath(verts, ox, oy)

	var level float64
	if g.bank != nil {
		level = g.bank.Level()
	}
	fill := shapeColor(g.ctrl.ActiveChord().ShapeType)

	vs, is := path.AppendVerticesAndIndicesForFilling(nil, nil)
	paintVertices(vs, fill, clamp01(polygonOpacity+pulseOpacity*level))
	screen.DrawTriangles(vs, is, fillSource(), &ebiten.DrawTrianglesOptions{AntiAlias: true})

	vs, is = path.AppendVerticesAndIndicesForStroke(vs[:0], is[:0], &vector.StrokeOptions{
		Width:    float32(g.cfg.StrokeWidth / 2),
		LineJoin: vector.LineJoinRound,
	})
	paintVertices(vs, pointsColor, 1)
	screen.DrawTriangles(vs, is, fillSource(), &ebiten.DrawTrianglesOptions{AntiAlias: true})
}

func polygonPath(verts []geometry.Point, ox, oy float64) *vector.Path {
	var path vector.Path
	for i, v := range verts {
		x, y := float32(ox+v.X), float32(oy+v.Y)
		if i == 0 {
			path.MoveTo(x, y)
		} else {
			path.LineTo(x, y)
		}
	}
	path.Close()
	return &path
}

// paintVertices colors vertices with an opaque color at straight alpha a.
func paintVertices(vs []ebiten.Vertex, c color.RGBA, a float64) {
	for i := range vs {
		vs[i].SrcX = 1
		vs[i].SrcY = 1
		vs[i].ColorR = float32(c.R) / 0xff
		vs[i].ColorG = float32(c.G) / 0xff
		vs[i].ColorB = float32(c.B) / 0xff
		vs[i].ColorA = float32(a)
	}
}

func (g *Game) drawLabels(screen *ebiten.Image) {
	ox, oy := g.circleOrigin()
	for _, p := range g.points() {
		anchor := p.LabelAnchor()
		g.drawCentered(screen, g.labelText(p.Note), ox+anchor.X, oy+anchor.Y)
	}
}

// labelText spells a note with real accidentals when the label font has
// them.
func (g *Game) labelText(note string) string {
	if g.unicodeLabels {
		return notes.Lines(note)
	}
	return notes.Display(note)
}

func (g *Game) drawChordLabel(screen *ebiten.Image) {
	_, oy := g.circleOrigin()
	g.drawCentered(screen, g.ctrl.ActiveChord().Label, config.WindowWidth/2, oy+g.cfg.Size+24+glyphHeight/2)
}

// drawCentered centers s on (x, y) in the label face, or in the debug font
// when no face could be loaded.
func (g *Game) drawCentered(screen *ebiten.Image, s string, x, y float64) {
	if g.labelFace == nil {
		lines := strings.Split(s, "\n")
		width := 0
		for _, l := range lines {
			width = max(width, len(l))
		}
		ebitenutil.DebugPrintAt(screen, s, int(x)-width*glyphWidth/2, int(y)-len(lines)*glyphHeight/2)
		return
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(pointsColor)
	op.PrimaryAlign = text.AlignCenter
	op.SecondaryAlign = text.AlignCenter
	op.LineSpacing = labelLineSpacing
	text.Draw(screen, s, g.labelFace, op)
}

func (g *Game) drawButton(screen *ebiten.Image, b button, label string) {
	r := g.buttonRect(b)

	var bgColor color.Color
	if g.pressed == b {
		bgColor = color.RGBA{R: 60, G: 80, B: 120, A: 255} // Pressed
	} else if g.hovered == b {
		bgColor = color.RGBA{R: 80, G: 100, B: 140, A: 255} // Hovered
	} else {
		bgColor = color.RGBA{R: 100, G: 120, B: 160, A: 255} // Normal
	}
	vector.DrawFilledRect(screen, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), bgColor, false)

	borderColor := color.RGBA{R: 150, G: 170, B: 200, A: 255}
	vector.StrokeRect(screen, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), 2, borderColor, false)

	textX := int(r.X) + (int(r.W)-len(label)*glyphWidth)/2
	textY := int(r.Y) + (int(r.H)-glyphHeight)/2
	ebitenutil.DebugPrintAt(screen, label, textX, textY)
}
