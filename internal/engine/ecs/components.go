package ecs

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl64"
)

// Типы компонентов. Сами компоненты геймплея (transformable, projectile,
// trigger) объявлены в своих пакетах, здесь только их ID.
var (
	TransformComponentID     = RegisterComponentType("transform")
	RenderComponentID        = RegisterComponentType("render")
	ColliderComponentID      = RegisterComponentType("collider")
	TransformableComponentID = RegisterComponentType("transformable")
	ProjectileComponentID    = RegisterComponentType("projectile")
	TriggerComponentID       = RegisterComponentType("trigger")
)

// TransformComponent позиция, ориентация и масштаб сущности
type TransformComponent struct {
	BaseComponent
	Position Vector3
	Rotation mgl64.Quat
	Scale    Vector3
}

// NewTransformComponent трансформ с единичным масштабом и без поворота
func NewTransformComponent(position Vector3) *TransformComponent {
	return &TransformComponent{
		BaseComponent: NewBaseComponent(TransformComponentID),
		Position:      position,
		Rotation:      mgl64.QuatIdent(),
		Scale:         Splat(1),
	}
}

// Heading угол поворота в плоскости XY, радианы
func (t *TransformComponent) Heading() float64 {
	return HeadingOf(t.Rotation)
}

// Shape форма отрисовки и коллизии
type Shape string

const (
	ShapeBox    Shape = "box"
	ShapeCircle Shape = "circle"
)

// RenderComponent как рисовать сущность сверху
type RenderComponent struct {
	BaseComponent
	Color   color.RGBA
	Size    Vector3 // габарит при масштабе 1 (X, Y); Z игнорируется
	Shape   Shape
	Layer   int
	Visible bool
}

// NewRenderComponent видимый рендер-компонент
func NewRenderComponent(shape Shape, size Vector3, c color.RGBA) *RenderComponent {
	return &RenderComponent{
		BaseComponent: NewBaseComponent(RenderComponentID),
		Color:         c,
		Size:          size,
		Shape:         shape,
		Visible:       true,
	}
}

// ColliderKind как тело участвует в физике
type ColliderKind int

const (
	// ColliderStatic стены и прочая неподвижная геометрия
	ColliderStatic ColliderKind = iota
	// ColliderKinematic тела, которые двигает геймплей (трансформируемые объекты)
	ColliderKinematic
)

// ColliderComponent физическая форма сущности в плоскости XY
type ColliderComponent struct {
	BaseComponent
	Kind ColliderKind
	Size Vector3 // габарит при масштабе 1
}

// NewColliderComponent коллайдер прямоугольника
func NewColliderComponent(kind ColliderKind, size Vector3) *ColliderComponent {
	return &ColliderComponent{
		BaseComponent: NewBaseComponent(ColliderComponentID),
		Kind:          kind,
		Size:          size,
	}
}
