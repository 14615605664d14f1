// Package transformable implements props that receive transform powers:
// per-channel blending of location, rotation and scale offsets, and the
// swap exchange with a gun's payload.
package transformable

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/darkbibni/Substanz/internal/engine/ecs"
	"github.com/darkbibni/Substanz/internal/feedback"
	"github.com/darkbibni/Substanz/internal/power"
)

//go:generate mockgen -destination=mocks/mock_power_holder.go -package=mocks . PowerHolder

// PowerHolder is the side of a gun the swap exchange needs. Each Swap
// method stores the given value and returns what was held before.
type PowerHolder interface {
	SwapPosition(ecs.Vector3) ecs.Vector3
	SwapRotation(ecs.Rotator) ecs.Rotator
	SwapScale(ecs.Vector3) ecs.Vector3
	SetAvailable(index int)
}

// Pose is the resting transform of a prop, or the blended result.
type Pose struct {
	Location ecs.Vector3
	Rotation mgl64.Quat
	Scale    ecs.Vector3
}

// Deltas are what one self-applied hit adds per channel.
type Deltas struct {
	Location ecs.Vector3
	Rotation ecs.Rotator
	Scale    ecs.Vector3
}

// DefaultDeltas: +300 along X, +45 degrees of yaw, +1 uniform scale.
var DefaultDeltas = Deltas{
	Location: ecs.Vector3{X: 300},
	Rotation: ecs.Rotator{Yaw: 45},
	Scale:    ecs.Splat(1),
}

// DefaultDuration of a blend in seconds.
const DefaultDuration = 1.0

// Config is fixed at construction; Reset re-applies it.
type Config struct {
	Base            Pose
	InitialLocation ecs.Vector3
	InitialRotation ecs.Rotator
	InitialScale    ecs.Vector3
	Duration        float64
	Deltas          Deltas
}

// Transformable is one affectable prop.
type Transformable struct {
	base     Pose
	duration float64
	deltas   Deltas

	location channel[ecs.Vector3]
	rotation channel[ecs.Rotator]
	scale    channel[ecs.Vector3]

	presence [power.SlotCount]bool
	pose     Pose
	color    feedback.Color

	listeners []func(feedback.Color)
}

// New builds a prop from cfg. A negative duration is treated as zero and
// zero Deltas fall back to DefaultDeltas. A zero base scale means 1.
func New(cfg Config) *Transformable {
	if cfg.Duration < 0 {
		cfg.Duration = 0
	}
	if cfg.Deltas == (Deltas{}) {
		cfg.Deltas = DefaultDeltas
	}
	if cfg.Base.Scale.IsZero() {
		cfg.Base.Scale = ecs.Splat(1)
	}
	if cfg.Base.Rotation == (mgl64.Quat{}) {
		cfg.Base.Rotation = mgl64.QuatIdent()
	}
	t := &Transformable{
		base:     cfg.Base,
		duration: cfg.Duration,
		deltas:   cfg.Deltas,
		location: newChannel(cfg.InitialLocation),
		rotation: newChannel(cfg.InitialRotation),
		scale:    newChannel(cfg.InitialScale),
	}
	t.refreshPresence()
	t.refreshPose()
	t.color = feedback.FromPresence(t.presence)
	return t
}

// OnColorChanged registers fn for every color recomputation.
func (t *Transformable) OnColorChanged(fn func(feedback.Color)) {
	t.listeners = append(t.listeners, fn)
}

// Update advances every channel by dt seconds.
func (t *Transformable) Update(dt float64) {
	t.location.tick(dt, t.duration)
	t.rotation.tick(dt, t.duration)
	t.scale.tick(dt, t.duration)
	t.refreshPose()
}

// ApplyEffect is the prop's own reaction to a hit on channel: add the fixed
// delta to the pending value and restart the blend from where it is now.
// Unknown channels are ignored.
func (t *Transformable) ApplyEffect(ch int) {
	switch ch {
	case power.Translate:
		t.location.rebase()
		t.location.next = t.location.next.Add(t.deltas.Location)
		t.location.restart()
		t.presence[ch] = !t.location.next.IsZero()
	case power.Rotate:
		t.rotation.rebase()
		t.rotation.next = t.rotation.next.Add(t.deltas.Rotation)
		t.rotation.restart()
		t.presence[ch] = !t.rotation.next.IsZero()
	case power.Scale:
		t.scale.rebase()
		t.scale.next = t.scale.next.Add(t.deltas.Scale)
		t.scale.restart()
		t.presence[ch] = !t.scale.next.IsZero()
	default:
		return
	}
	t.changeColor()
}

// SwapEffect exchanges the pending value of channel with the gun's payload
// for the same channel. When the prop held that power before the swap and
// still holds one after, the gun is told the slot is loaded again.
// Unknown channels are ignored.
func (t *Transformable) SwapEffect(ch int, gun PowerHolder) {
	had := false
	switch ch {
	case power.Translate:
		t.location.rebase()
		t.location.next = gun.SwapPosition(t.location.next)
		t.location.restart()
		had = t.presence[ch]
		t.presence[ch] = !t.location.next.IsZero()
	case power.Rotate:
		t.rotation.rebase()
		t.rotation.next = gun.SwapRotation(t.rotation.next)
		t.rotation.restart()
		had = t.presence[ch]
		t.presence[ch] = !t.rotation.next.IsZero()
	case power.Scale:
		t.scale.rebase()
		t.scale.next = gun.SwapScale(t.scale.next)
		t.scale.restart()
		had = t.presence[ch]
		t.presence[ch] = !t.scale.next.IsZero()
	default:
		return
	}

	if had && t.presence[ch] {
		gun.SetAvailable(ch)
	}
	t.changeColor()
}

// CheckPowerPresent reports whether the prop holds a power on channel.
func (t *Transformable) CheckPowerPresent(ch int) bool {
	if ch < 0 || ch >= power.SlotCount {
		return false
	}
	return t.presence[ch]
}

// Presence copies the three presence flags.
func (t *Transformable) Presence() [power.SlotCount]bool { return t.presence }

// Reset returns every channel to its configured initial value and snaps
// the pose there with no blend in flight.
func (t *Transformable) Reset() {
	t.location.setup()
	t.rotation.setup()
	t.scale.setup()
	t.refreshPresence()
	t.changeColor()

	t.location.timer, t.rotation.timer, t.scale.timer = 0, 0, 0
	t.location.modifying, t.rotation.modifying, t.scale.modifying = false, false, false
	t.location.apply(0)
	t.rotation.apply(0)
	t.scale.apply(0)
	t.refreshPose()
}

// Pose is the blended transform to render and collide with.
func (t *Transformable) Pose() Pose { return t.pose }

// Color is the last computed feedback color.
func (t *Transformable) Color() feedback.Color { return t.color }

// Duration of a blend in seconds.
func (t *Transformable) Duration() float64 { return t.duration }

// Location exposes the location channel.
func (t *Transformable) Location() ChannelState[ecs.Vector3] { return t.location.state() }

// Rotation exposes the rotation channel.
func (t *Transformable) Rotation() ChannelState[ecs.Rotator] { return t.rotation.state() }

// Scale exposes the scale channel.
func (t *Transformable) Scale() ChannelState[ecs.Vector3] { return t.scale.state() }

// Blending reports whether any channel is mid-blend.
func (t *Transformable) Blending() bool {
	return t.location.modifying || t.rotation.modifying || t.scale.modifying
}

func (t *Transformable) refreshPresence() {
	t.presence = [power.SlotCount]bool{
		!t.location.next.IsZero(),
		!t.rotation.next.IsZero(),
		!t.scale.next.IsZero(),
	}
}

func (t *Transformable) refreshPose() {
	t.pose = Pose{
		Location: t.base.Location.Add(t.location.actual),
		Rotation: t.base.Rotation.Mul(t.rotation.actual.Quat()),
		Scale:    t.base.Scale.Add(t.scale.actual),
	}
}

func (t *Transformable) changeColor() {
	t.color = feedback.FromPresence(t.presence)
	for _, fn := range t.listeners {
		fn(t.color)
	}
}
