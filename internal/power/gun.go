// Package power implements the gun's power slots: which transform powers are
// unlocked, which hold a loaded payload, which one is selected, and the
// payload itself.
package power

import (
	"github.com/darkbibni/Substanz/internal/engine/ecs"
	"github.com/darkbibni/Substanz/internal/feedback"
)

// Slot indices.
const (
	None      = -1
	Translate = 0
	Rotate    = 1
	Scale     = 2

	SlotCount = 3
)

// Names for HUD and logs.
var Names = [SlotCount]string{"translate", "rotate", "scale"}

// Payload is the transform delta loaded in the gun.
type Payload struct {
	Position ecs.Vector3
	Rotation ecs.Rotator
	Scale    ecs.Vector3
}

// PowerChanged is broadcast whenever a slot's swatch color changes.
type PowerChanged struct {
	Index int
	Color feedback.Color
}

// Snapshot is a read-only copy of the gun state.
type Snapshot struct {
	Equipped  bool
	Selected  int
	Unlocked  [SlotCount]bool
	Available [SlotCount]bool
	Payload   Payload
}

// Gun is the power state machine of one equipped gun. It is not safe for
// concurrent use; all calls are expected from the frame update.
type Gun struct {
	equipped  bool
	selected  int
	unlocked  [SlotCount]bool
	available [SlotCount]bool
	payload   Payload

	listeners []func(PowerChanged)
}

// NewGun returns an unequipped gun with nothing unlocked.
func NewGun() *Gun {
	return &Gun{selected: None}
}

// OnPowerChanged registers fn to receive every swatch change.
func (g *Gun) OnPowerChanged(fn func(PowerChanged)) {
	g.listeners = append(g.listeners, fn)
}

func (g *Gun) emit(index int, intensity float64) {
	ev := PowerChanged{Index: index, Color: feedback.Channel(index, intensity)}
	for _, fn := range g.listeners {
		fn(ev)
	}
}

func valid(i int) bool { return i >= 0 && i < SlotCount }

// Equip makes the gun usable and grants and selects the translate power.
func (g *Gun) Equip() {
	g.equipped = true
	g.Unlock(Translate)
	g.selected = Translate
}

// SetEquipped toggles usability without touching slots. Barriers and death
// use it to disarm the player temporarily.
func (g *Gun) SetEquipped(equipped bool) {
	g.equipped = equipped
}

// Unequip disarms the gun. Unlocks, selection and payload are kept.
func (g *Gun) Unequip() { g.equipped = false }

// Equipped reports whether the gun can be used.
func (g *Gun) Equipped() bool { return g.equipped }

// Enabled reports whether the gun is equipped and has a power selected.
func (g *Gun) Enabled() bool {
	return g.equipped && g.selected != None
}

// Selected returns the selected slot or None.
func (g *Gun) Selected() int { return g.selected }

// Unlocked reports whether slot i was granted.
func (g *Gun) Unlocked(i int) bool { return valid(i) && g.unlocked[i] }

// Available reports whether slot i holds a payload ready to fire.
func (g *Gun) Available(i int) bool { return valid(i) && g.available[i] }

// Unlock grants slot i. The slot starts empty: unlocking never makes a
// power available.
func (g *Gun) Unlock(i int) {
	if !valid(i) {
		return
	}
	g.unlocked[i] = true
	g.available[i] = false
	g.emit(i, feedback.Dim)
}

// SelectPower switches to slot i when the gun is equipped and i is a
// different, unlocked slot.
func (g *Gun) SelectPower(i int) {
	if !g.equipped || !valid(i) {
		return
	}
	if !g.unlocked[i] || g.selected == i {
		return
	}
	g.selected = i
}

// CyclePower walks the slot ring in the sign of direction and selects the
// first unlocked slot found. The walk is bounded by the slot count, so it
// terminates whatever the unlock state; it may land back on the current
// slot, which leaves the selection unchanged.
func (g *Gun) CyclePower(direction int) {
	if direction == 0 {
		return
	}
	step := 1
	if direction < 0 {
		step = -1
	}

	idx := g.selected
	for probe := 0; probe < SlotCount; probe++ {
		idx += step
		switch {
		case idx < 0:
			idx = SlotCount - 1
		case idx >= SlotCount:
			idx = 0
		}
		if g.unlocked[idx] {
			g.SelectPower(idx)
			return
		}
	}
}

// TryConsume is the single gate for firing. It succeeds only when the
// selected slot holds a payload, and then empties it.
func (g *Gun) TryConsume() bool {
	if !valid(g.selected) || !g.available[g.selected] {
		return false
	}
	g.available[g.selected] = false
	g.emit(g.selected, feedback.Dim)
	return true
}

// AbsorbInto marks the selected slot loaded after a successful absorb.
func (g *Gun) AbsorbInto() {
	if g.selected == None {
		return
	}
	g.SetAvailable(g.selected)
}

// SetAvailable marks slot i loaded. Projectiles that expire without hitting
// anything give their power back through it.
func (g *Gun) SetAvailable(i int) {
	if !valid(i) {
		return
	}
	g.available[i] = true
	g.emit(i, feedback.Full)
}

// ResetAll empties every slot and the payload. Unlocks survive.
func (g *Gun) ResetAll() {
	for i := range g.available {
		g.available[i] = false
		if g.unlocked[i] {
			g.emit(i, feedback.Dim)
		}
	}
	g.payload = Payload{}
}

// Restore re-grants previously unlocked slots, e.g. from a save. The gun
// is equipped only when equipped is true, in which case the translate slot
// is selected.
func (g *Gun) Restore(unlocked [SlotCount]bool, equipped bool) {
	for i, ok := range unlocked {
		if ok {
			g.Unlock(i)
		}
	}
	if equipped {
		g.Equip()
	}
}

// Payload returns a copy of the loaded payload.
func (g *Gun) Payload() Payload { return g.payload }

// SwapPosition stores v as the translate payload and hands back the
// previous one.
func (g *Gun) SwapPosition(v ecs.Vector3) ecs.Vector3 {
	prev := g.payload.Position
	g.payload.Position = v
	return prev
}

// SwapRotation stores r as the rotate payload and hands back the previous one.
func (g *Gun) SwapRotation(r ecs.Rotator) ecs.Rotator {
	prev := g.payload.Rotation
	g.payload.Rotation = r
	return prev
}

// SwapScale stores v as the scale payload and hands back the previous one.
func (g *Gun) SwapScale(v ecs.Vector3) ecs.Vector3 {
	prev := g.payload.Scale
	g.payload.Scale = v
	return prev
}

// TubeYaw is the barrel cluster yaw in degrees for the selected slot.
func (g *Gun) TubeYaw() float64 {
	if g.selected == None {
		return 60
	}
	return 60 - float64(g.selected)*120
}

// Snapshot copies the current state.
func (g *Gun) Snapshot() Snapshot {
	return Snapshot{
		Equipped:  g.equipped,
		Selected:  g.selected,
		Unlocked:  g.unlocked,
		Available: g.available,
		Payload:   g.payload,
	}
}
