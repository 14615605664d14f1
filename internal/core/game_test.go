package core

import (
	"math"
	"testing"

	"github.com/darkbibni/Substanz/internal/config"
	"github.com/darkbibni/Substanz/internal/engine/ecs"
	"github.com/darkbibni/Substanz/internal/entities/player"
	"github.com/darkbibni/Substanz/internal/power"
	"github.com/darkbibni/Substanz/internal/progress"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Game.SaveDir = t.TempDir()
	cfg.Audio.Muted = true
	return cfg
}

func newTestGame(t *testing.T, cfg *config.Config) *Game {
	t.Helper()
	g, err := NewGame(cfg, nil)
	if err != nil {
		t.Fatalf("new game: %v", err)
	}
	return g
}

// walk двигает игрока вправо шагами по 0.1 с
func walk(g *Game, steps int) {
	for j := 0; j < steps; j++ {
		g.step(0.1, player.Input{Move: ecs.Vector3{X: 1}})
	}
}

func TestNewGameSpawnsDefaultLevel(t *testing.T) {
	g := newTestGame(t, testConfig(t))

	if g.levelName == "" || g.world.Level.Name != "workshop" {
		t.Fatalf("level %q / %q", g.levelName, g.world.Level.Name)
	}
	if g.engine.Space().Len() == 0 {
		t.Fatalf("level bodies not synced")
	}
	if g.player.GetPosition() != g.world.SpawnPoint() {
		t.Fatalf("player not at spawn")
	}
	if g.player.HasGun() {
		t.Fatalf("fresh game should start without the gun")
	}
}

func TestUnknownLevelFails(t *testing.T) {
	cfg := testConfig(t)
	cfg.Game.Level = "missing.yaml"
	if _, err := NewGame(cfg, nil); err == nil {
		t.Fatalf("unknown level should fail")
	}
}

func TestPickupIsSavedAndRestored(t *testing.T) {
	cfg := testConfig(t)
	g := newTestGame(t, cfg)

	// Первый кадр на спавне отмечает стартовый чекпоинт
	g.step(0.1, player.Input{})
	walk(g, 5)
	if !g.player.HasGun() || !g.gun.Equipped() {
		t.Fatalf("walking over the gun should equip it, player at %+v", g.player.GetPosition())
	}
	g.saveProgress()

	st, err := progress.NewStore(cfg.Game.SaveDir).Load()
	if err != nil {
		t.Fatalf("load save: %v", err)
	}
	if !st.HasGun || !st.Unlocked[power.Translate] || st.Checkpoint == nil {
		t.Fatalf("save %+v", st)
	}

	again := newTestGame(t, cfg)
	if !again.player.HasGun() || !again.gun.Unlocked(power.Translate) {
		t.Fatalf("gun not restored")
	}
	if cp, ok := again.player.Checkpoint(); !ok || cp != (ecs.Vector3{X: st.Checkpoint.X, Y: st.Checkpoint.Y}) {
		t.Fatalf("checkpoint not restored: %+v", cp)
	}
}

func TestSaveForOtherLevelIsIgnored(t *testing.T) {
	cfg := testConfig(t)
	err := progress.NewStore(cfg.Game.SaveDir).Save(progress.State{Level: "elsewhere.yaml", HasGun: true})
	if err != nil {
		t.Fatal(err)
	}

	g := newTestGame(t, cfg)
	if g.player.HasGun() {
		t.Fatalf("foreign save should not be applied")
	}
}

func TestPendingConfigAppliesOnNextStep(t *testing.T) {
	g := newTestGame(t, testConfig(t))

	next := config.DefaultConfig()
	next.Game.MoveSpeed = 100
	next.Audio.Muted = true
	g.pending.Store(next)

	start := g.player.GetPosition()
	g.step(0.5, player.Input{Move: ecs.Vector3{Y: 1}})
	if d := g.player.GetPosition().Distance(start); math.Abs(d-50) > 1e-6 {
		t.Fatalf("moved %v, want 50 with the reloaded speed", d)
	}
	if g.pending.Load() != nil {
		t.Fatalf("pending config should be consumed")
	}
}

func TestPlayerSettingsKeepDefaultsForZero(t *testing.T) {
	s := playerSettings(config.GameConfig{MoveSpeed: 250})
	def := player.DefaultSettings()
	if s.MoveSpeed != 250 || s.RayLength != def.RayLength || s.RespawnDelay != def.RespawnDelay {
		t.Fatalf("settings %+v", s)
	}
}

func TestMoveDirection(t *testing.T) {
	cases := []struct {
		name                  string
		up, down, left, right bool
		want                  ecs.Vector3
	}{
		{"idle", false, false, false, false, ecs.Vector3{}},
		{"up", true, false, false, false, ecs.Vector3{Y: -1}},
		{"opposite_cancel", true, true, false, false, ecs.Vector3{}},
		{"diagonal", false, true, false, true, ecs.Vector3{X: 1, Y: 1}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := moveDirection(c.up, c.down, c.left, c.right); got != c.want {
				t.Fatalf("got %+v", got)
			}
		})
	}
}
