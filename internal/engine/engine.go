package engine

import (
	"github.com/darkbibni/Substanz/internal/engine/ecs"
	"github.com/darkbibni/Substanz/internal/transformable"
)

// Engine представляет основной игровой движок
type Engine struct {
	world *ecs.World
	space *Space
	// Подсистемы движка
	blendSystem   *BlendSystem
	physicsSystem *PhysicsSystem
}

// BlendSystem продвигает смешивание трансформируемых объектов
type BlendSystem struct {
	world *ecs.World
}

// PhysicsSystem держит тела пространства в соответствии с сущностями
type PhysicsSystem struct {
	world *ecs.World
	space *Space
}

// NewEngine создает новый игровой движок
func NewEngine(world *ecs.World) *Engine {
	engine := &Engine{
		world: world,
		space: NewSpace(),
	}

	// Инициализация подсистем
	engine.initializeSystems()

	return engine
}

// initializeSystems инициализирует все системы движка.
// Смешивание идет раньше физики, чтобы тела догоняли позу в том же кадре.
func (e *Engine) initializeSystems() {
	e.blendSystem = &BlendSystem{world: e.world}
	e.world.AddSystem(e.blendSystem)

	e.physicsSystem = &PhysicsSystem{world: e.world, space: e.space}
	e.world.AddSystem(e.physicsSystem)
}

// AddSystem регистрирует дополнительную систему после встроенных
func (e *Engine) AddSystem(s ecs.System) {
	e.world.AddSystem(s)
}

// World ECS мир движка
func (e *Engine) World() *ecs.World {
	return e.world
}

// Space физическое пространство движка
func (e *Engine) Space() *Space {
	return e.space
}

// Update один кадр всех систем
func (e *Engine) Update(deltaTime float64) {
	e.world.Update(deltaTime)
}

// SyncPhysics приводит пространство в соответствие с миром вне кадра,
// например сразу после загрузки уровня
func (e *Engine) SyncPhysics() {
	e.physicsSystem.Update(0)
}

// RequiredComponents возвращает компоненты, необходимые для смешивания
func (bs *BlendSystem) RequiredComponents() []ecs.ComponentID {
	return []ecs.ComponentID{
		ecs.TransformComponentID,
		ecs.TransformableComponentID,
	}
}

// Update продвигает таймеры каналов и переносит позу в трансформ
func (bs *BlendSystem) Update(deltaTime float64) {
	for _, entity := range bs.world.Query(bs.RequiredComponents()...) {
		tr, _ := ecs.Get[*ecs.TransformComponent](entity, ecs.TransformComponentID)
		comp, _ := ecs.Get[*transformable.Component](entity, ecs.TransformableComponentID)

		comp.Props.Update(deltaTime)
		comp.Sync(tr)
	}
}

// RequiredComponents возвращает компоненты, необходимые для физики
func (ps *PhysicsSystem) RequiredComponents() []ecs.ComponentID {
	return []ecs.ComponentID{
		ecs.TransformComponentID,
		ecs.ColliderComponentID,
	}
}

// Update регистрирует новые тела, двигает кинематические и удаляет
// тела исчезнувших сущностей
func (ps *PhysicsSystem) Update(deltaTime float64) {
	alive := make(map[ecs.EntityID]bool)

	for _, entity := range ps.world.Query(ps.RequiredComponents()...) {
		tr, _ := ecs.Get[*ecs.TransformComponent](entity, ecs.TransformComponentID)
		col, _ := ecs.Get[*ecs.ColliderComponent](entity, ecs.ColliderComponentID)
		alive[entity.ID] = true

		size := footprint(col.Size, tr.Scale)
		switch {
		case col.Kind == ecs.ColliderStatic:
			if !ps.space.Has(entity.ID) {
				ps.space.AddStatic(entity.ID, tr.Position, size)
			}
		case !ps.space.Has(entity.ID):
			ps.space.AddKinematic(entity.ID, tr.Position, tr.Heading(), size)
		default:
			ps.space.Move(entity.ID, tr.Position, tr.Heading(), size)
		}
	}

	for id := range ps.space.bodies {
		if !alive[id] {
			ps.space.Remove(id)
		}
	}

	// Формы догоняют перенесенные тела
	ps.space.Step(deltaTime)
}

// footprint габарит в плоскости с учетом масштаба
func footprint(size, scale ecs.Vector3) ecs.Vector3 {
	return ecs.Vector3{X: size.X * scale.X, Y: size.Y * scale.Y}
}
