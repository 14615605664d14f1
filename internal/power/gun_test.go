package power

import (
	"testing"

	"github.com/darkbibni/Substanz/internal/engine/ecs"
	"github.com/darkbibni/Substanz/internal/feedback"
)

func recorder(g *Gun) *[]PowerChanged {
	var events []PowerChanged
	g.OnPowerChanged(func(ev PowerChanged) { events = append(events, ev) })
	return &events
}

func TestEquipUnlocksAndSelectsTranslate(t *testing.T) {
	g := NewGun()
	events := recorder(g)

	if g.Enabled() {
		t.Fatalf("fresh gun must not be enabled")
	}
	g.Equip()

	if !g.Equipped() || g.Selected() != Translate || !g.Unlocked(Translate) {
		t.Fatalf("equip: %+v", g.Snapshot())
	}
	if g.Available(Translate) {
		t.Fatalf("equip must not load a payload")
	}
	if len(*events) != 1 || (*events)[0] != (PowerChanged{Index: 0, Color: feedback.Color{R: feedback.Dim}}) {
		t.Fatalf("unexpected events %+v", *events)
	}
}

func TestUnlockDoesNotGrantAvailability(t *testing.T) {
	for i := 0; i < SlotCount; i++ {
		g := NewGun()
		g.SetEquipped(true)
		g.Unlock(i)
		g.SelectPower(i)
		if g.TryConsume() {
			t.Fatalf("slot %d: consume right after unlock must fail", i)
		}
	}
}

func TestSelectPowerNoOps(t *testing.T) {
	cases := []struct {
		name     string
		setup    func(g *Gun)
		index    int
		expected int
	}{
		{"unequipped", func(g *Gun) { g.Unlock(1) }, 1, None},
		{"invalid_high", func(g *Gun) { g.Equip() }, 3, Translate},
		{"invalid_negative", func(g *Gun) { g.Equip() }, None, Translate},
		{"locked", func(g *Gun) { g.Equip() }, 2, Translate},
		{"already_selected", func(g *Gun) { g.Equip() }, 0, Translate},
		{"ok", func(g *Gun) { g.Equip(); g.Unlock(2) }, 2, Scale},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			g := NewGun()
			c.setup(g)
			g.SelectPower(c.index)
			if g.Selected() != c.expected {
				t.Fatalf("selected %d, want %d", g.Selected(), c.expected)
			}
		})
	}
}

func TestCyclePower(t *testing.T) {
	cases := []struct {
		name      string
		unlocked  []int
		start     int
		direction int
		want      int
	}{
		{"next_wraps", []int{0, 2}, 2, +1, 0},
		{"next_skips_locked", []int{0, 2}, 0, +1, 2},
		{"prev_wraps", []int{0, 1}, 0, -1, 1},
		{"prev_skips_locked", []int{0, 2}, 2, -1, 0},
		{"single_unlocked_stays", []int{1}, 1, +1, 1},
		{"single_unlocked_stays_prev", []int{1}, 1, -1, 1},
		{"zero_direction", []int{0, 1, 2}, 0, 0, 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			g := NewGun()
			g.SetEquipped(true)
			for _, i := range c.unlocked {
				g.Unlock(i)
			}
			g.selected = c.start
			g.CyclePower(c.direction)
			if g.Selected() != c.want {
				t.Fatalf("selected %d, want %d", g.Selected(), c.want)
			}
			if !g.Unlocked(g.Selected()) {
				t.Fatalf("cycle landed on locked slot %d", g.Selected())
			}
		})
	}
}

func TestCyclePowerTerminatesWithNothingUnlocked(t *testing.T) {
	g := NewGun()
	g.SetEquipped(true)
	g.CyclePower(+1)
	g.CyclePower(-1)
	if g.Selected() != None {
		t.Fatalf("nothing unlocked, selection should stay None, got %d", g.Selected())
	}
}

func TestConsumeAbsorbRoundTrip(t *testing.T) {
	g := NewGun()
	g.Equip()
	events := recorder(g)

	if g.TryConsume() {
		t.Fatalf("consume with empty slot must fail")
	}
	if len(*events) != 0 {
		t.Fatalf("failed consume must not emit, got %+v", *events)
	}

	g.AbsorbInto()
	if !g.Available(Translate) {
		t.Fatalf("absorb should load the selected slot")
	}
	if !g.TryConsume() {
		t.Fatalf("consume of loaded slot should succeed")
	}
	if g.Available(Translate) {
		t.Fatalf("consume should empty the slot")
	}
	g.AbsorbInto()
	if !g.Available(Translate) {
		t.Fatalf("round trip should restore availability")
	}

	want := []PowerChanged{
		{0, feedback.Color{R: feedback.Full}},
		{0, feedback.Color{R: feedback.Dim}},
		{0, feedback.Color{R: feedback.Full}},
	}
	if len(*events) != len(want) {
		t.Fatalf("events %+v, want %+v", *events, want)
	}
	for i := range want {
		if (*events)[i] != want[i] {
			t.Fatalf("event %d = %+v, want %+v", i, (*events)[i], want[i])
		}
	}
}

func TestAbsorbWithNothingSelectedIsNoOp(t *testing.T) {
	g := NewGun()
	events := recorder(g)
	g.AbsorbInto()
	if len(*events) != 0 {
		t.Fatalf("unexpected events %+v", *events)
	}
	for i := 0; i < SlotCount; i++ {
		if g.Available(i) {
			t.Fatalf("slot %d became available", i)
		}
	}
}

func TestResetAllKeepsUnlocksAndZeroesPayload(t *testing.T) {
	g := NewGun()
	g.Equip()
	g.Unlock(Scale)
	g.SetAvailable(Translate)
	g.SetAvailable(Scale)
	g.SwapPosition(ecs.Vector3{X: 300})
	g.SwapRotation(ecs.Rotator{Yaw: 45})
	g.SwapScale(ecs.Splat(1))

	events := recorder(g)
	g.ResetAll()

	if g.Payload() != (Payload{}) {
		t.Fatalf("payload not cleared: %+v", g.Payload())
	}
	for i := 0; i < SlotCount; i++ {
		if g.Available(i) {
			t.Fatalf("slot %d still available", i)
		}
	}
	if !g.Unlocked(Translate) || !g.Unlocked(Scale) || g.Unlocked(Rotate) {
		t.Fatalf("unlocks changed: %+v", g.Snapshot().Unlocked)
	}
	if len(*events) != 2 || (*events)[0].Index != 0 || (*events)[1].Index != 2 {
		t.Fatalf("expected dim events for unlocked slots only, got %+v", *events)
	}
}

func TestSwapIsOwnershipTransfer(t *testing.T) {
	g := NewGun()
	prev := g.SwapPosition(ecs.Vector3{X: 1})
	if !prev.IsZero() {
		t.Fatalf("initial payload should be zero")
	}
	prev = g.SwapPosition(ecs.Vector3{X: 2})
	if prev != (ecs.Vector3{X: 1}) || g.Payload().Position != (ecs.Vector3{X: 2}) {
		t.Fatalf("swap mismatch: prev %+v now %+v", prev, g.Payload().Position)
	}
}

func TestTubeYaw(t *testing.T) {
	g := NewGun()
	g.Equip()
	g.Unlock(Scale)
	if g.TubeYaw() != 60 {
		t.Fatalf("translate yaw %v", g.TubeYaw())
	}
	g.SelectPower(Scale)
	if g.TubeYaw() != -180 {
		t.Fatalf("scale yaw %v", g.TubeYaw())
	}
}

func TestRestore(t *testing.T) {
	g := NewGun()
	g.Restore([SlotCount]bool{true, false, true}, true)
	if !g.Enabled() || !g.Unlocked(Scale) || g.Unlocked(Rotate) {
		t.Fatalf("restore: %+v", g.Snapshot())
	}
}

func TestUnequipKeepsState(t *testing.T) {
	g := NewGun()
	g.Equip()
	g.Unlock(Scale)
	g.SelectPower(Scale)
	g.AbsorbInto()
	events := recorder(g)

	g.Unequip()
	if g.Enabled() || g.Selected() != Scale || !g.Available(Scale) {
		t.Fatalf("unequip: %+v", g.Snapshot())
	}
	if len(*events) != 0 {
		t.Fatalf("unequip should not emit, got %+v", *events)
	}

	g.SelectPower(Translate)
	if g.Selected() != Scale {
		t.Fatalf("disarmed gun must not switch powers")
	}
	g.SetEquipped(true)
	if !g.Enabled() || g.Selected() != Scale {
		t.Fatalf("re-arm should keep the selection")
	}
}
