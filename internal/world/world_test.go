package world

import (
	"errors"
	"testing"

	"github.com/darkbibni/Substanz/internal/engine/ecs"
	"github.com/darkbibni/Substanz/internal/feedback"
	"github.com/darkbibni/Substanz/internal/power"
)

type fakeActor struct {
	pos         ecs.Vector3
	dead        bool
	calls       []string
	unlocked    []int
	checkpoints []ecs.Vector3
}

func (a *fakeActor) GetPosition() ecs.Vector3 { return a.pos }
func (a *fakeActor) Dead() bool { return a.dead }
func (a *fakeActor) PickUpGun() { a.calls = append(a.calls, "gun") }
func (a *fakeActor) PickUpPower(i int) {
	a.calls = append(a.calls, "power")
	a.unlocked = append(a.unlocked, i)
}
func (a *fakeActor) SetCheckpoint(p ecs.Vector3) {
	a.calls = append(a.calls, "checkpoint")
	a.checkpoints = append(a.checkpoints, p)
}
func (a *fakeActor) PassThroughBarrier() { a.calls = append(a.calls, "barrier-in") }
func (a *fakeActor) ExitBarrier() { a.calls = append(a.calls, "barrier-out") }
func (a *fakeActor) Kill() {
	a.calls = append(a.calls, "kill")
	a.dead = true
}

const testLevel = `
name: test
spawn: {x: 0, y: 0}
gun:
  at: {x: 100, y: 0}
powers:
  - power: scale
    at: {x: 200, y: 0}
    radius: 10
  - power: "1"
    at: {x: 300, y: 0}
transformables:
  - name: crate
    at: {x: 500, y: 0}
    offset:
      location: {x: 10, y: 0}
  - name: bare
    at: {x: 500, y: 300}
    size: {x: 20, y: 40}
    duration: 0
checkpoints:
  - at: {x: 0, y: 200}
    radius: 20
barriers:
  - at: {x: 0, y: -200}
    size: {x: 100, y: 20}
hazards:
  - at: {x: -300, y: 0}
    size: {x: 50, y: 50}
`

func loadTest(t *testing.T) (*World, *fakeActor) {
	t.Helper()
	lvl, err := ParseLevel([]byte(testLevel))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	w := NewWorld(lvl, ecs.NewWorld(), nil)
	actor := &fakeActor{}
	w.Attach(actor)
	return w, actor
}

func TestEmbeddedLevelLoads(t *testing.T) {
	lvl, err := LoadLevel("")
	if err != nil {
		t.Fatalf("load default level: %v", err)
	}
	if lvl.Gun == nil || len(lvl.Transformables) == 0 || len(lvl.Walls) == 0 {
		t.Fatalf("default level is incomplete: %+v", lvl)
	}
	for _, p := range lvl.Powers {
		if p.Index() < 0 || p.Index() >= power.SlotCount {
			t.Fatalf("bad power index %d", p.Index())
		}
	}
}

func TestParseLevelErrors(t *testing.T) {
	cases := []struct {
		name string
		doc  string
		want error
	}{
		{"unknown_name", "walls: [{at: {x: 0, y: 0}, size: {x: 1, y: 1}}]\npowers: [{power: shrink}]", ErrUnknownPower},
		{"index_out_of_range", "walls: [{at: {x: 0, y: 0}, size: {x: 1, y: 1}}]\npowers: [{power: \"3\"}]", ErrUnknownPower},
		{"negative_index", "walls: [{at: {x: 0, y: 0}, size: {x: 1, y: 1}}]\npowers: [{power: \"-1\"}]", ErrUnknownPower},
		{"empty", "name: nothing\n", ErrEmptyLevel},
		{"blank", "", ErrEmptyLevel},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := ParseLevel([]byte(c.doc))
			if !errors.Is(err, c.want) {
				t.Fatalf("err = %v, want %v", err, c.want)
			}
		})
	}

	if _, err := ParseLevel([]byte("walls: [oops")); err == nil {
		t.Fatalf("malformed yaml should fail")
	}
}

func TestLevelDefaults(t *testing.T) {
	w, _ := loadTest(t)
	lvl := w.Level

	if lvl.Gun.Radius != defaultZoneRadius {
		t.Fatalf("gun radius %v", lvl.Gun.Radius)
	}
	if lvl.Powers[0].Index() != power.Scale || lvl.Powers[1].Index() != power.Rotate {
		t.Fatalf("power indices %d %d", lvl.Powers[0].Index(), lvl.Powers[1].Index())
	}
	crate := lvl.Transformables[0]
	if crate.Size != (Vec{X: defaultPropSize, Y: defaultPropSize}) || crate.Scale != 1 {
		t.Fatalf("crate defaults %+v", crate)
	}
	if lvl.Transformables[1].Duration == nil || *lvl.Transformables[1].Duration != 0 {
		t.Fatalf("explicit zero duration lost")
	}
}

func TestSpawnedProps(t *testing.T) {
	w, _ := loadTest(t)

	crate, ok := w.Prop("crate")
	if !ok {
		t.Fatalf("crate not spawned")
	}
	if !crate.CheckPowerPresent(power.Translate) || crate.Color() != feedback.Red {
		t.Fatalf("crate should start holding translate")
	}
	bare, _ := w.Prop("bare")
	if bare.Duration() != 0 || bare.Color() != feedback.Black {
		t.Fatalf("bare prop config lost")
	}
	if crate.Duration() != 1 {
		t.Fatalf("default duration %v", crate.Duration())
	}

	var render *ecs.RenderComponent
	for _, e := range w.ECSWorld.Query(ecs.TransformableComponentID, ecs.RenderComponentID) {
		if e.HasTag("transformable") {
			if r, _ := ecs.Get[*ecs.RenderComponent](e, ecs.RenderComponentID); r.Color == feedback.Black.RGBA() {
				render = r
			}
		}
	}
	if render == nil {
		t.Fatalf("bare prop render not found")
	}
	bare.ApplyEffect(power.Scale)
	if render.Color != feedback.Blue.RGBA() {
		t.Fatalf("render color should follow the prop color, got %+v", render.Color)
	}
}

func TestPickupsFireOnce(t *testing.T) {
	w, actor := loadTest(t)

	actor.pos = ecs.Vector3{X: 100}
	w.Update(0.016)
	actor.pos = ecs.Vector3{X: 50}
	w.Update(0.016)
	actor.pos = ecs.Vector3{X: 100}
	w.Update(0.016)

	actor.pos = ecs.Vector3{X: 205}
	w.Update(0.016)

	want := []string{"gun", "power"}
	if len(actor.calls) != len(want) || actor.calls[0] != want[0] || actor.calls[1] != want[1] {
		t.Fatalf("calls %v, want %v", actor.calls, want)
	}
	if actor.unlocked[0] != power.Scale {
		t.Fatalf("unlocked %v", actor.unlocked)
	}
}

func TestCheckpointNotifies(t *testing.T) {
	w, actor := loadTest(t)
	var saved []ecs.Vector3
	w.OnCheckpoint(func(p ecs.Vector3) { saved = append(saved, p) })

	actor.pos = ecs.Vector3{X: 5, Y: 195}
	w.Update(0.016)
	w.Update(0.016)

	want := ecs.Vector3{Y: 200}
	if len(actor.checkpoints) != 1 || actor.checkpoints[0] != want {
		t.Fatalf("checkpoints %v", actor.checkpoints)
	}
	if len(saved) != 1 || saved[0] != want {
		t.Fatalf("listener calls %v", saved)
	}
}

func TestBarrierEnterAndExit(t *testing.T) {
	w, actor := loadTest(t)

	actor.pos = ecs.Vector3{Y: -200}
	w.Update(0.016)
	w.Update(0.016)
	actor.pos = ecs.Vector3{Y: -250}
	w.Update(0.016)

	if len(actor.calls) != 2 || actor.calls[0] != "barrier-in" || actor.calls[1] != "barrier-out" {
		t.Fatalf("calls %v", actor.calls)
	}
}

func TestHazardKillsLivingActorOnly(t *testing.T) {
	w, actor := loadTest(t)

	actor.dead = true
	actor.pos = ecs.Vector3{X: -300}
	w.Update(0.016)
	if len(actor.calls) != 0 {
		t.Fatalf("dead actor killed again: %v", actor.calls)
	}

	actor.dead = false
	actor.pos = ecs.Vector3{}
	w.Update(0.016)
	actor.pos = ecs.Vector3{X: -310, Y: 10}
	w.Update(0.016)
	if len(actor.calls) != 1 || actor.calls[0] != "kill" {
		t.Fatalf("calls %v", actor.calls)
	}
}

func TestConsumePickupsFromSave(t *testing.T) {
	w, actor := loadTest(t)
	w.ConsumePickups(true, [power.SlotCount]bool{true, false, true})

	for _, x := range []float64{100, 200, 300} {
		actor.pos = ecs.Vector3{X: x}
		w.Update(0.016)
	}
	if len(actor.calls) != 1 || actor.calls[0] != "power" || actor.unlocked[0] != power.Rotate {
		t.Fatalf("only the rotate pickup should remain, calls %v %v", actor.calls, actor.unlocked)
	}
}

func TestZoneContains(t *testing.T) {
	circle := Zone{At: Vec{X: 10, Y: 10}, Radius: 5}
	box := Zone{At: Vec{X: 0, Y: 0}, Size: Vec{X: 10, Y: 4}}

	cases := []struct {
		name string
		zone Zone
		p    ecs.Vector3
		want bool
	}{
		{"circle_center", circle, ecs.Vector3{X: 10, Y: 10}, true},
		{"circle_edge", circle, ecs.Vector3{X: 15, Y: 10}, true},
		{"circle_outside", circle, ecs.Vector3{X: 14, Y: 14}, false},
		{"box_inside", box, ecs.Vector3{X: 4, Y: -1}, true},
		{"box_outside_y", box, ecs.Vector3{X: 0, Y: 3}, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := c.zone.Contains(c.p); got != c.want {
				t.Fatalf("Contains(%+v) = %v", c.p, got)
			}
		})
	}
}
