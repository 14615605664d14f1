package world

import (
	"image/color"
	"log/slog"

	"golang.org/x/image/colornames"

	"github.com/darkbibni/Substanz/internal/engine/ecs"
	"github.com/darkbibni/Substanz/internal/feedback"
	"github.com/darkbibni/Substanz/internal/power"
	"github.com/darkbibni/Substanz/internal/transformable"
)

// Actor тот, кто активирует зоны уровня
type Actor interface {
	GetPosition() ecs.Vector3
	Dead() bool
	PickUpGun()
	PickUpPower(index int)
	SetCheckpoint(position ecs.Vector3)
	PassThroughBarrier()
	ExitBarrier()
	Kill()
}

// ZoneKind тип зоны-триггера
type ZoneKind int

const (
	ZoneGun ZoneKind = iota
	ZonePower
	ZoneCheckpoint
	ZoneBarrier
	ZoneHazard
)

// TriggerComponent зона, реагирующая на вход и выход актора
type TriggerComponent struct {
	ecs.BaseComponent
	Kind     ZoneKind
	Zone     Zone
	Power    int
	Consumed bool
	Inside   bool
}

// World представляет загруженный уровень
type World struct {
	Level    *Level
	ECSWorld *ecs.World

	actor        Actor
	logger       *slog.Logger
	props        map[string]*transformable.Transformable
	onCheckpoint []func(ecs.Vector3)
}

// NewWorld создает мир уровня поверх ECS мира и спавнит его сущности
func NewWorld(level *Level, ecsWorld *ecs.World, logger *slog.Logger) *World {
	if logger == nil {
		logger = slog.Default()
	}
	w := &World{
		Level:    level,
		ECSWorld: ecsWorld,
		logger:   logger.With("component", "world", "level", level.Name),
		props:    make(map[string]*transformable.Transformable),
	}
	w.spawn()
	return w
}

// Attach задает актора, которого проверяют зоны
func (w *World) Attach(actor Actor) {
	w.actor = actor
}

// OnCheckpoint вызывает fn при каждом достигнутом чекпоинте
func (w *World) OnCheckpoint(fn func(ecs.Vector3)) {
	w.onCheckpoint = append(w.onCheckpoint, fn)
}

// SpawnPoint стартовая позиция игрока
func (w *World) SpawnPoint() ecs.Vector3 {
	return w.Level.Spawn.Vector3()
}

// Prop трансформируемый объект по имени
func (w *World) Prop(name string) (*transformable.Transformable, bool) {
	t, ok := w.props[name]
	return t, ok
}

// ConsumePickups убирает подборы, уже полученные в сохранении
func (w *World) ConsumePickups(hasGun bool, unlocked [power.SlotCount]bool) {
	for _, e := range w.ECSWorld.Query(ecs.TriggerComponentID) {
		trig, _ := ecs.Get[*TriggerComponent](e, ecs.TriggerComponentID)
		switch {
		case trig.Kind == ZoneGun && hasGun:
			w.consume(e, trig)
		case trig.Kind == ZonePower && unlocked[trig.Power]:
			w.consume(e, trig)
		}
	}
}

// RequiredComponents возвращает компоненты зон
func (w *World) RequiredComponents() []ecs.ComponentID {
	return []ecs.ComponentID{ecs.TriggerComponentID}
}

// Update проверяет вход и выход актора из зон
func (w *World) Update(deltaTime float64) {
	if w.actor == nil {
		return
	}
	pos := w.actor.GetPosition()

	for _, e := range w.ECSWorld.Query(w.RequiredComponents()...) {
		trig, _ := ecs.Get[*TriggerComponent](e, ecs.TriggerComponentID)
		if trig.Consumed {
			continue
		}
		inside := trig.Zone.Contains(pos)
		switch {
		case inside && !trig.Inside:
			trig.Inside = true
			w.enter(e, trig)
		case !inside && trig.Inside:
			trig.Inside = false
			w.exit(trig)
		}
	}
}

func (w *World) enter(e *ecs.Entity, trig *TriggerComponent) {
	switch trig.Kind {
	case ZoneGun:
		w.actor.PickUpGun()
		w.consume(e, trig)
	case ZonePower:
		w.actor.PickUpPower(trig.Power)
		w.consume(e, trig)
	case ZoneCheckpoint:
		at := trig.Zone.At.Vector3()
		w.actor.SetCheckpoint(at)
		for _, fn := range w.onCheckpoint {
			fn(at)
		}
	case ZoneBarrier:
		w.actor.PassThroughBarrier()
	case ZoneHazard:
		if !w.actor.Dead() {
			w.actor.Kill()
		}
	}
}

func (w *World) exit(trig *TriggerComponent) {
	if trig.Kind == ZoneBarrier {
		w.actor.ExitBarrier()
	}
}

func (w *World) consume(e *ecs.Entity, trig *TriggerComponent) {
	trig.Consumed = true
	if r, ok := ecs.Get[*ecs.RenderComponent](e, ecs.RenderComponentID); ok {
		r.Visible = false
	}
}

// spawn создает сущности уровня
func (w *World) spawn() {
	lvl := w.Level

	for _, b := range lvl.Walls {
		e := ecs.NewEntity()
		e.AddComponent(ecs.NewTransformComponent(b.At.Vector3()))
		e.AddComponent(ecs.NewColliderComponent(ecs.ColliderStatic, b.Size.Vector3()))
		e.AddComponent(ecs.NewRenderComponent(ecs.ShapeBox, b.Size.Vector3(), colornames.Slategray))
		e.AddTag("wall")
		w.ECSWorld.AddEntity(e)
	}

	for _, p := range lvl.Transformables {
		w.spawnProp(p)
	}

	if lvl.Gun != nil {
		w.spawnZone(ZoneGun, *lvl.Gun, power.None, colornames.Gold)
	}
	for _, p := range lvl.Powers {
		w.spawnZone(ZonePower, p.Zone, p.Index(), feedback.Channel(p.Index(), feedback.Full).RGBA())
	}
	for _, z := range lvl.Checkpoints {
		w.spawnZone(ZoneCheckpoint, z, power.None, withAlpha(colornames.Lightgreen, 0x60))
	}
	for _, z := range lvl.Barriers {
		w.spawnZone(ZoneBarrier, z, power.None, withAlpha(colornames.Lightskyblue, 0x50))
	}
	for _, z := range lvl.Hazards {
		w.spawnZone(ZoneHazard, z, power.None, withAlpha(colornames.Orangered, 0x80))
	}

	w.logger.Info("level spawned",
		"walls", len(lvl.Walls),
		"transformables", len(lvl.Transformables),
		"entities", w.ECSWorld.Len())
}

func (w *World) spawnProp(p Prop) {
	duration := transformable.DefaultDuration
	if p.Duration != nil {
		duration = *p.Duration
	}
	props := transformable.New(transformable.Config{
		Base: transformable.Pose{
			Location: p.At.Vector3(),
			Rotation: ecs.Rotator{Yaw: p.Yaw}.Quat(),
			Scale:    ecs.Splat(p.Scale),
		},
		InitialLocation: p.Offset.Location.Vector3(),
		InitialRotation: ecs.Rotator{Yaw: p.Offset.Rotation},
		InitialScale:    ecs.Splat(p.Offset.Scale),
		Duration:        duration,
	})
	w.props[p.Name] = props

	e := ecs.NewEntity()
	tr := ecs.NewTransformComponent(p.At.Vector3())
	comp := transformable.NewComponent(p.Name, props)
	comp.Sync(tr)
	e.AddComponent(tr)
	e.AddComponent(ecs.NewColliderComponent(ecs.ColliderKinematic, p.Size.Vector3()))

	render := ecs.NewRenderComponent(ecs.ShapeBox, p.Size.Vector3(), props.Color().RGBA())
	render.Layer = 1
	e.AddComponent(render)
	e.AddComponent(comp)
	e.AddTag("transformable")

	props.OnColorChanged(func(c feedback.Color) {
		render.Color = c.RGBA()
	})
	w.ECSWorld.AddEntity(e)
}

func (w *World) spawnZone(kind ZoneKind, z Zone, index int, c color.RGBA) {
	size := z.Size.Vector3()
	shape := ecs.ShapeBox
	if size.X <= 0 || size.Y <= 0 {
		size = ecs.Splat(z.Radius * 2)
		shape = ecs.ShapeCircle
	}

	e := ecs.NewEntity()
	e.AddComponent(ecs.NewTransformComponent(z.At.Vector3()))
	e.AddComponent(ecs.NewRenderComponent(shape, size, c))
	e.AddComponent(&TriggerComponent{
		BaseComponent: ecs.NewBaseComponent(ecs.TriggerComponentID),
		Kind:          kind,
		Zone:          z,
		Power:         index,
	})
	e.AddTag("trigger")
	w.ECSWorld.AddEntity(e)
}

func withAlpha(c color.RGBA, a uint8) color.RGBA {
	// RGBA в ebiten premultiplied
	scale := float64(a) / 0xff
	return color.RGBA{
		R: uint8(float64(c.R) * scale),
		G: uint8(float64(c.G) * scale),
		B: uint8(float64(c.B) * scale),
		A: a,
	}
}
