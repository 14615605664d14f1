package ecs

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// NearlyZeroTolerance допуск сравнения с нулем для векторов и ротаторов
const NearlyZeroTolerance = 1e-4

// Vector3 трехмерный вектор
type Vector3 struct {
	X, Y, Z float64
}

// NewVector3 создает вектор
func NewVector3(x, y, z float64) Vector3 {
	return Vector3{X: x, Y: y, Z: z}
}

// Splat вектор с одинаковыми компонентами
func Splat(v float64) Vector3 {
	return Vector3{X: v, Y: v, Z: v}
}

// Add складывает векторы
func (v Vector3) Add(o Vector3) Vector3 {
	return Vector3{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z}
}

// Sub вычитает вектор
func (v Vector3) Sub(o Vector3) Vector3 {
	return Vector3{X: v.X - o.X, Y: v.Y - o.Y, Z: v.Z - o.Z}
}

// Multiply умножает на скаляр
func (v Vector3) Multiply(s float64) Vector3 {
	return Vector3{X: v.X * s, Y: v.Y * s, Z: v.Z * s}
}

// Dot скалярное произведение
func (v Vector3) Dot(o Vector3) float64 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

// Magnitude длина вектора
func (v Vector3) Magnitude() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Normalize единичный вектор того же направления (нулевой остается нулевым)
func (v Vector3) Normalize() Vector3 {
	m := v.Magnitude()
	if m == 0 {
		return v
	}
	return v.Multiply(1 / m)
}

// Distance расстояние между точками
func (v Vector3) Distance(o Vector3) float64 {
	return v.Sub(o).Magnitude()
}

// Lerp линейная интерполяция v -> to
func (v Vector3) Lerp(to Vector3, alpha float64) Vector3 {
	return v.Add(to.Sub(v).Multiply(alpha))
}

// IsZero true, если все компоненты в пределах допуска от нуля
func (v Vector3) IsZero() bool {
	return math.Abs(v.X) <= NearlyZeroTolerance &&
		math.Abs(v.Y) <= NearlyZeroTolerance &&
		math.Abs(v.Z) <= NearlyZeroTolerance
}

// Vec3 конвертирует в mgl64
func (v Vector3) Vec3() mgl64.Vec3 {
	return mgl64.Vec3{v.X, v.Y, v.Z}
}

// Rotator ориентация в градусах: Pitch вокруг Y, Yaw вокруг Z, Roll вокруг X
type Rotator struct {
	Pitch, Yaw, Roll float64
}

// Add покомпонентная сумма
func (r Rotator) Add(o Rotator) Rotator {
	return Rotator{Pitch: r.Pitch + o.Pitch, Yaw: r.Yaw + o.Yaw, Roll: r.Roll + o.Roll}
}

// Lerp покомпонентная интерполяция, без кратчайшего пути
func (r Rotator) Lerp(to Rotator, alpha float64) Rotator {
	return Rotator{
		Pitch: r.Pitch + (to.Pitch-r.Pitch)*alpha,
		Yaw:   r.Yaw + (to.Yaw-r.Yaw)*alpha,
		Roll:  r.Roll + (to.Roll-r.Roll)*alpha,
	}
}

// IsZero true, если все углы в пределах допуска от нуля
func (r Rotator) IsZero() bool {
	return math.Abs(r.Pitch) <= NearlyZeroTolerance &&
		math.Abs(r.Yaw) <= NearlyZeroTolerance &&
		math.Abs(r.Roll) <= NearlyZeroTolerance
}

// Quat кватернион поворота: сначала Roll, потом Pitch, потом Yaw
func (r Rotator) Quat() mgl64.Quat {
	return mgl64.AnglesToQuat(
		mgl64.DegToRad(r.Yaw),
		mgl64.DegToRad(r.Pitch),
		mgl64.DegToRad(r.Roll),
		mgl64.ZYX,
	)
}

// HeadingOf угол (радианы) проекции оси X кватерниона на плоскость XY
func HeadingOf(q mgl64.Quat) float64 {
	fwd := q.Rotate(mgl64.Vec3{1, 0, 0})
	return math.Atan2(fwd.Y(), fwd.X())
}
