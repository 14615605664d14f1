// Package projectile implements the power-carrying shot: straight flight at a
// fixed speed, bounces off plain solids, a swap on the first transformable
// it hits, and a refund of its power to the gun when its lifespan runs out
// before it reaches one.
package projectile

import (
	"log/slog"

	"github.com/darkbibni/Substanz/internal/engine"
	"github.com/darkbibni/Substanz/internal/engine/ecs"
	"github.com/darkbibni/Substanz/internal/feedback"
	"github.com/darkbibni/Substanz/internal/transformable"
)

// Defaults for a fired shot.
const (
	DefaultSpeed    = 5000.0
	DefaultLifespan = 2.0
	Radius          = 6.0

	// bounceNudge lifts a bounced shot off the surface so the next sweep
	// does not start inside it.
	bounceNudge = 0.5
)

// Sweeper finds the first solid along a thick segment.
type Sweeper interface {
	Sweep(from, to ecs.Vector3, radius float64) (engine.Hit, bool)
}

// Toucher is told about every transformable a shot reached, so that a
// checkpoint reset can find it later.
type Toucher interface {
	Touch(t *transformable.Transformable)
}

// Spec describes one shot.
type Spec struct {
	Index     int
	Origin    ecs.Vector3
	Direction ecs.Vector3
	Speed     float64
	Lifespan  float64
	Gun       transformable.PowerHolder
	Owner     Toucher
}

// Component is the live state of a shot.
type Component struct {
	ecs.BaseComponent
	Index     int
	Direction ecs.Vector3
	Speed     float64
	Lifespan  float64
	Age       float64
	Bounces   int

	gun    transformable.PowerHolder
	owner  Toucher
	landed bool
	ended  bool
}

// Spawn adds a shot entity to w and returns it. Zero speed or lifespan
// take the defaults.
func Spawn(w *ecs.World, spec Spec) *ecs.Entity {
	if spec.Speed <= 0 {
		spec.Speed = DefaultSpeed
	}
	if spec.Lifespan <= 0 {
		spec.Lifespan = DefaultLifespan
	}

	e := ecs.NewEntity()
	e.AddComponent(ecs.NewTransformComponent(spec.Origin))
	e.AddComponent(ecs.NewRenderComponent(
		ecs.ShapeCircle,
		ecs.Splat(Radius*2),
		feedback.Channel(spec.Index, feedback.Full).RGBA(),
	))
	e.AddComponent(&Component{
		BaseComponent: ecs.NewBaseComponent(ecs.ProjectileComponentID),
		Index:         spec.Index,
		Direction:     spec.Direction.Normalize(),
		Speed:         spec.Speed,
		Lifespan:      spec.Lifespan,
		gun:           spec.Gun,
		owner:         spec.Owner,
	})
	e.AddTag("projectile")
	w.AddEntity(e)
	return e
}

// Landed reports whether the shot delivered its power to a transformable.
func (c *Component) Landed() bool { return c.landed }

// Done reports whether the shot has ended, one way or another.
func (c *Component) Done() bool { return c.ended }

// System flies every shot and resolves what it hits.
type System struct {
	world  *ecs.World
	space  Sweeper
	logger *slog.Logger
}

// NewSystem builds the shot system over w, querying space for hits.
func NewSystem(w *ecs.World, space Sweeper, logger *slog.Logger) *System {
	if logger == nil {
		logger = slog.Default()
	}
	return &System{world: w, space: space, logger: logger}
}

// RequiredComponents of a shot.
func (s *System) RequiredComponents() []ecs.ComponentID {
	return []ecs.ComponentID{ecs.TransformComponentID, ecs.ProjectileComponentID}
}

// Update moves each shot by one step. A transformable ends the shot, any
// other solid reflects it, and expiry ends it with a refund.
func (s *System) Update(dt float64) {
	for _, e := range s.world.Query(s.RequiredComponents()...) {
		tr, _ := ecs.Get[*ecs.TransformComponent](e, ecs.TransformComponentID)
		shot, _ := ecs.Get[*Component](e, ecs.ProjectileComponentID)
		if shot.Done() {
			continue
		}

		from := tr.Position
		to := from.Add(shot.Direction.Multiply(shot.Speed * dt))

		if hit, ok := s.space.Sweep(from, to, Radius); ok {
			if s.land(shot, hit) {
				tr.Position = hit.Point
				s.destroy(e, shot)
				continue
			}
			tr.Position = s.bounce(shot, hit)
		} else {
			tr.Position = to
		}

		shot.Age += dt
		if shot.Age >= shot.Lifespan {
			s.destroy(e, shot)
		}
	}
}

// land swaps the shot's power with the hit transformable. It reports false
// when the hit entity is not transformable.
func (s *System) land(shot *Component, hit engine.Hit) bool {
	target, ok := s.world.GetEntity(hit.Entity)
	if !ok {
		return false
	}
	comp, ok := ecs.Get[*transformable.Component](target, ecs.TransformableComponentID)
	if !ok {
		return false
	}
	if shot.owner != nil {
		shot.owner.Touch(comp.Props)
	}
	comp.Props.SwapEffect(shot.Index, shot.gun)
	shot.landed = true
	s.logger.Debug("shot landed", "power", shot.Index, "target", comp.Name)
	return true
}

// bounce reflects the shot's direction about the hit normal and returns
// the position it continues from.
func (s *System) bounce(shot *Component, hit engine.Hit) ecs.Vector3 {
	n := hit.Normal.Normalize()
	if n.IsZero() {
		// Sweep started inside the solid: no normal, turn back
		n = shot.Direction.Multiply(-1)
	}
	d := shot.Direction
	shot.Direction = d.Sub(n.Multiply(2 * d.Dot(n))).Normalize()
	shot.Bounces++
	s.logger.Debug("shot bounced", "power", shot.Index, "bounces", shot.Bounces)
	return hit.Point.Add(n.Multiply(bounceNudge))
}

// destroy ends the shot. A shot that expired without reaching a
// transformable gives its power back.
func (s *System) destroy(e *ecs.Entity, shot *Component) {
	shot.ended = true
	if !shot.landed && shot.gun != nil {
		shot.gun.SetAvailable(shot.Index)
		s.logger.Debug("shot refunded", "power", shot.Index)
	}
	if r, ok := ecs.Get[*ecs.RenderComponent](e, ecs.RenderComponentID); ok {
		r.Visible = false
	}
	s.world.QueueRemoval(e.ID)
}
