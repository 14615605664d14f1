package render

import (
	"cmp"
	"fmt"
	"image"
	"image/color"
	"math"
	"slices"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/colornames"
	"golang.org/x/image/font/basicfont"

	"github.com/darkbibni/Substanz/internal/engine/ecs"
	"github.com/darkbibni/Substanz/internal/power"
)

const (
	gridStep    = 100.0
	swatchSize  = 28
	swatchGap   = 8
	hudMargin   = 16
	aimLength   = 60.0
	aimWidth    = 2
	outlineSize = 2
	tubeRing    = 10.0
	tubeSize    = 4
)

var (
	backgroundColor = color.RGBA{R: 24, G: 26, B: 30, A: 255}
	gridColor       = color.RGBA{R: 36, G: 39, B: 45, A: 255}
)

// View то, что рендерер знает об игроке в текущем кадре
type View struct {
	Focus   ecs.Vector3 // центр камеры
	Muzzle  ecs.Vector3
	Aim     ecs.Vector3 // единичное направление прицела
	Gun     power.Snapshot
	TubeYaw float64 // поворот барабана в градусах
	HasGun  bool
	Dead    bool
	Level   string
}

// Renderer отвечает за визуализацию игрового мира
type Renderer struct {
	camera Camera
	hud    *HUD
	face   text.Face

	whiteImage *ebiten.Image
	drawables  []drawable
}

type drawable struct {
	transform *ecs.TransformComponent
	render    *ecs.RenderComponent
}

// NewRenderer создает новый рендерер
func NewRenderer(width, height int, gun *power.Gun) *Renderer {
	return &Renderer{
		camera: Camera{Width: width, Height: height},
		hud:    NewHUD(gun),
		face:   text.NewGoXFace(basicfont.Face7x13),
	}
}

// Camera текущая камера
func (r *Renderer) Camera() *Camera {
	return &r.camera
}

// HUD индикаторы пушки
func (r *Renderer) HUD() *HUD {
	return r.hud
}

// Resize меняет размер области отрисовки
func (r *Renderer) Resize(width, height int) {
	r.camera.Width, r.camera.Height = width, height
}

// Render основной метод отрисовки игрового мира
func (r *Renderer) Render(screen *ebiten.Image, world *ecs.World, view View) {
	r.camera.Center = view.Focus

	// Очищаем экран
	screen.Fill(backgroundColor)

	r.renderBackground(screen)
	r.renderEntities(screen, world)
	r.renderAim(screen, view)
	r.renderUI(screen, view)
}

// renderBackground рисует сетку мира
func (r *Renderer) renderBackground(screen *ebiten.Image) {
	w, h := float64(r.camera.Width), float64(r.camera.Height)
	topLeft := r.camera.ScreenToWorld(0, 0)

	startX := math.Floor(topLeft.X/gridStep) * gridStep
	for x := startX; ; x += gridStep {
		sx, _ := r.camera.WorldToScreen(ecs.Vector3{X: x})
		if sx > w {
			break
		}
		vector.StrokeLine(screen, float32(sx), 0, float32(sx), float32(h), 1, gridColor, false)
	}
	startY := math.Floor(topLeft.Y/gridStep) * gridStep
	for y := startY; ; y += gridStep {
		_, sy := r.camera.WorldToScreen(ecs.Vector3{Y: y})
		if sy > h {
			break
		}
		vector.StrokeLine(screen, 0, float32(sy), float32(w), float32(sy), 1, gridColor, false)
	}
}

// renderEntities отрисовывает видимые сущности по слоям
func (r *Renderer) renderEntities(screen *ebiten.Image, world *ecs.World) {
	r.drawables = r.drawables[:0]
	for _, e := range world.Query(ecs.TransformComponentID, ecs.RenderComponentID) {
		tr, _ := ecs.Get[*ecs.TransformComponent](e, ecs.TransformComponentID)
		rc, _ := ecs.Get[*ecs.RenderComponent](e, ecs.RenderComponentID)
		if !rc.Visible {
			continue
		}
		r.drawables = append(r.drawables, drawable{transform: tr, render: rc})
	}
	slices.SortStableFunc(r.drawables, func(a, b drawable) int {
		return cmp.Compare(a.render.Layer, b.render.Layer)
	})

	for _, d := range r.drawables {
		size := ecs.Vector3{
			X: d.render.Size.X * d.transform.Scale.X,
			Y: d.render.Size.Y * d.transform.Scale.Y,
		}
		if !r.camera.Visible(d.transform.Position, math.Hypot(size.X, size.Y)/2) {
			continue
		}
		switch d.render.Shape {
		case ecs.ShapeCircle:
			x, y := r.camera.WorldToScreen(d.transform.Position)
			vector.DrawFilledCircle(screen, float32(x), float32(y), float32(size.X/2), d.render.Color, true)
		default:
			r.drawBox(screen, d.transform.Position, size, d.transform.Heading(), d.render.Color)
		}
	}
}

// drawBox рисует повернутый прямоугольник
func (r *Renderer) drawBox(screen *ebiten.Image, center, size ecs.Vector3, angle float64, c color.RGBA) {
	corners := boxCorners(center, size, angle)

	var path vector.Path
	for i, p := range corners {
		x, y := r.camera.WorldToScreen(p)
		if i == 0 {
			path.MoveTo(float32(x), float32(y))
		} else {
			path.LineTo(float32(x), float32(y))
		}
	}
	path.Close()

	vs, is := path.AppendVerticesAndIndicesForFilling(nil, nil)
	cr, cg, cb, ca := c.RGBA()
	for i := range vs {
		vs[i].SrcX, vs[i].SrcY = 1, 1
		vs[i].ColorR = float32(cr) / 0xffff
		vs[i].ColorG = float32(cg) / 0xffff
		vs[i].ColorB = float32(cb) / 0xffff
		vs[i].ColorA = float32(ca) / 0xffff
	}
	screen.DrawTriangles(vs, is, r.white(), &ebiten.DrawTrianglesOptions{AntiAlias: true})
}

// white однопиксельная белая текстура для DrawTriangles
func (r *Renderer) white() *ebiten.Image {
	if r.whiteImage == nil {
		img := ebiten.NewImage(3, 3)
		img.Fill(color.White)
		r.whiteImage = img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	}
	return r.whiteImage
}

// renderAim рисует направление прицела
func (r *Renderer) renderAim(screen *ebiten.Image, view View) {
	if view.Dead || !view.HasGun {
		return
	}
	x0, y0 := r.camera.WorldToScreen(view.Muzzle)
	x1, y1 := r.camera.WorldToScreen(view.Muzzle.Add(view.Aim.Multiply(aimLength)))

	c := colornames.Dimgray
	if view.Gun.Equipped && view.Gun.Selected != power.None {
		c = r.hud.Swatch(view.Gun.Selected).RGBA()
	}
	vector.StrokeLine(screen, float32(x0), float32(y0), float32(x1), float32(y1), aimWidth, c, true)

	// Барабан: выбранный ствол смотрит вдоль прицела
	for i, p := range barrelTubes(view.Muzzle, view.Aim, view.TubeYaw, tubeRing) {
		x, y := r.camera.WorldToScreen(p)
		vector.DrawFilledCircle(screen, float32(x), float32(y), tubeSize, r.hud.Swatch(i).RGBA(), true)
	}
}

// renderUI отрисовывает индикаторы пушки и подсказки
func (r *Renderer) renderUI(screen *ebiten.Image, view View) {
	if view.Level != "" {
		r.drawText(screen, view.Level, hudMargin, hudMargin, colornames.Lightgray)
	}

	if view.HasGun {
		y := float32(r.camera.Height - hudMargin - swatchSize)
		for i := 0; i < power.SlotCount; i++ {
			x := float32(hudMargin + i*(swatchSize+swatchGap))
			vector.DrawFilledRect(screen, x, y, swatchSize, swatchSize, r.hud.Swatch(i).RGBA(), false)
			if i == view.Gun.Selected {
				vector.StrokeRect(screen, x-outlineSize, y-outlineSize,
					swatchSize+2*outlineSize, swatchSize+2*outlineSize, outlineSize, colornames.White, false)
			}
		}
		if view.Gun.Selected != power.None {
			label := fmt.Sprintf("%d %s", view.Gun.Selected+1, power.Names[view.Gun.Selected])
			if !view.Gun.Equipped {
				label += " (disarmed)"
			}
			r.drawText(screen, label, hudMargin+power.SlotCount*(swatchSize+swatchGap), int(y)+swatchSize/2-7, colornames.Lightgray)
		}
	}

	if view.Dead {
		msg := "you died"
		w, _ := text.Measure(msg, r.face, 0)
		r.drawText(screen, msg, (r.camera.Width-int(w))/2, r.camera.Height/2-40, colornames.Orangered)
	}
}

// drawText вспомогательный метод для отрисовки текста
func (r *Renderer) drawText(screen *ebiten.Image, message string, x, y int, c color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(float64(x), float64(y))
	op.ColorScale.ScaleWithColor(c)
	text.Draw(screen, message, r.face, op)
}
