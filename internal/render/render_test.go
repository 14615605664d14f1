package render

import (
	"math"
	"testing"

	"github.com/darkbibni/Substanz/internal/engine/ecs"
	"github.com/darkbibni/Substanz/internal/feedback"
	"github.com/darkbibni/Substanz/internal/power"
)

func TestCameraRoundTrip(t *testing.T) {
	cam := Camera{Center: ecs.Vector3{X: 500, Y: -200}, Width: 800, Height: 600}

	x, y := cam.WorldToScreen(cam.Center)
	if x != 400 || y != 300 {
		t.Fatalf("center maps to %v,%v", x, y)
	}

	p := ecs.Vector3{X: 123, Y: 456}
	x, y = cam.WorldToScreen(p)
	if got := cam.ScreenToWorld(x, y); got.Distance(p) > 1e-9 {
		t.Fatalf("round trip %+v", got)
	}
}

func TestCameraVisible(t *testing.T) {
	cam := Camera{Width: 800, Height: 600}
	cases := []struct {
		name string
		p    ecs.Vector3
		r    float64
		want bool
	}{
		{"center", ecs.Vector3{}, 1, true},
		{"far_right", ecs.Vector3{X: 1000}, 10, false},
		{"overlapping_edge", ecs.Vector3{X: 410}, 20, true},
		{"above", ecs.Vector3{Y: -400}, 50, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := cam.Visible(c.p, c.r); got != c.want {
				t.Fatalf("Visible = %v", got)
			}
		})
	}
}

func TestBoxCorners(t *testing.T) {
	corners := boxCorners(ecs.Vector3{X: 10}, ecs.Vector3{X: 4, Y: 2}, 0)
	if corners[0] != (ecs.Vector3{X: 8, Y: -1}) || corners[2] != (ecs.Vector3{X: 12, Y: 1}) {
		t.Fatalf("axis-aligned corners %+v", corners)
	}

	rotated := boxCorners(ecs.Vector3{}, ecs.Vector3{X: 4, Y: 2}, math.Pi/2)
	want := ecs.Vector3{X: 1, Y: -2}
	if rotated[0].Distance(want) > 1e-9 {
		t.Fatalf("quarter turn corner %+v, want %+v", rotated[0], want)
	}
}

func TestHUDFollowsGun(t *testing.T) {
	gun := power.NewGun()
	gun.Equip()
	gun.AbsorbInto()

	hud := NewHUD(gun)
	if hud.Swatch(power.Translate) != feedback.Channel(power.Translate, feedback.Full) {
		t.Fatalf("initial swatch should reflect the loaded slot")
	}
	if hud.Swatch(power.Scale) != feedback.Black {
		t.Fatalf("locked slot should be black")
	}

	gun.Unlock(power.Scale)
	if hud.Swatch(power.Scale) != feedback.Channel(power.Scale, feedback.Dim) {
		t.Fatalf("unlock should dim the swatch")
	}
	gun.TryConsume()
	if hud.Swatch(power.Translate) != feedback.Channel(power.Translate, feedback.Dim) {
		t.Fatalf("firing should dim the swatch")
	}
	if hud.Swatch(7) != feedback.Black {
		t.Fatalf("out of range swatch")
	}
}

func TestBarrelTubesFollowSelection(t *testing.T) {
	gun := power.NewGun()
	center := ecs.Vector3{X: 100}
	aim := ecs.Vector3{Y: 1}

	tubes := barrelTubes(center, aim, gun.TubeYaw(), 10)
	if want := center.Add(aim.Multiply(10)); tubes[0].Distance(want) > 1e-9 {
		t.Fatalf("with nothing selected tube 0 should lead, got %+v", tubes)
	}

	gun.Equip()
	gun.Unlock(power.Scale)
	gun.SelectPower(power.Scale)
	tubes = barrelTubes(center, aim, gun.TubeYaw(), 10)
	if want := center.Add(aim.Multiply(10)); tubes[power.Scale].Distance(want) > 1e-9 {
		t.Fatalf("selected tube should point along the aim, got %+v", tubes)
	}
	for i := range tubes {
		if d := tubes[i].Distance(center); math.Abs(d-10) > 1e-9 {
			t.Fatalf("tube %d off the ring: %v", i, d)
		}
		next := tubes[(i+1)%len(tubes)]
		if d := tubes[i].Distance(next); math.Abs(d-10*math.Sqrt(3)) > 1e-9 {
			t.Fatalf("tubes %d and %d not 120 degrees apart: %v", i, (i+1)%len(tubes), d)
		}
	}
}
