package render

import (
	"math"

	"github.com/darkbibni/Substanz/internal/engine/ecs"
)

// Camera вид сверху: мировая точка Center в центре экрана, ось Y вниз
type Camera struct {
	Center ecs.Vector3
	Width  int
	Height int
}

// WorldToScreen переводит мировую точку в пиксели экрана
func (c *Camera) WorldToScreen(p ecs.Vector3) (float64, float64) {
	return p.X - c.Center.X + float64(c.Width)/2,
		p.Y - c.Center.Y + float64(c.Height)/2
}

// ScreenToWorld обратное преобразование, например для курсора мыши
func (c *Camera) ScreenToWorld(x, y float64) ecs.Vector3 {
	return ecs.Vector3{
		X: x + c.Center.X - float64(c.Width)/2,
		Y: y + c.Center.Y - float64(c.Height)/2,
	}
}

// Visible пересекает ли круг радиуса r вокруг p экран
func (c *Camera) Visible(p ecs.Vector3, r float64) bool {
	x, y := c.WorldToScreen(p)
	return x+r >= 0 && y+r >= 0 && x-r <= float64(c.Width) && y-r <= float64(c.Height)
}

// boxCorners углы прямоугольника size с центром center, повернутого на angle
func boxCorners(center, size ecs.Vector3, angle float64) [4]ecs.Vector3 {
	hx, hy := size.X/2, size.Y/2
	sin, cos := math.Sincos(angle)
	local := [4][2]float64{{-hx, -hy}, {hx, -hy}, {hx, hy}, {-hx, hy}}

	var out [4]ecs.Vector3
	for i, l := range local {
		out[i] = ecs.Vector3{
			X: center.X + l[0]*cos - l[1]*sin,
			Y: center.Y + l[0]*sin + l[1]*cos,
		}
	}
	return out
}
