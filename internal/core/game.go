package core

import (
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/darkbibni/Substanz/internal/audio"
	"github.com/darkbibni/Substanz/internal/config"
	"github.com/darkbibni/Substanz/internal/engine"
	"github.com/darkbibni/Substanz/internal/engine/ecs"
	"github.com/darkbibni/Substanz/internal/entities/player"
	"github.com/darkbibni/Substanz/internal/entities/projectile"
	"github.com/darkbibni/Substanz/internal/power"
	"github.com/darkbibni/Substanz/internal/progress"
	"github.com/darkbibni/Substanz/internal/render"
	"github.com/darkbibni/Substanz/internal/world"
	"github.com/darkbibni/Substanz/internal/world/levels"
)

// maxDeltaTime ограничивает шаг после подвисаний окна
const maxDeltaTime = 0.1

// Game представляет полную игровую структуру
type Game struct {
	config   *config.Config
	logger   *slog.Logger
	ecsWorld *ecs.World
	engine   *engine.Engine
	world    *world.World
	player   *player.Player
	gun      *power.Gun
	renderer *render.Renderer
	audioMgr *audio.Manager
	store    *progress.Store

	levelName string
	pending   atomic.Pointer[config.Config]

	isRunning      bool
	lastUpdateTime time.Time
}

// NewGame создает новый экземпляр игры
func NewGame(cfg *config.Config, logger *slog.Logger) (*Game, error) {
	if logger == nil {
		logger = slog.Default()
	}

	// Загружаем уровень
	levelName := cfg.Game.Level
	if levelName == "" {
		levelName = levels.Default
	}
	level, err := world.LoadLevel(levelName)
	if err != nil {
		return nil, fmt.Errorf("failed to load level: %w", err)
	}

	// Инициализируем ECS мир и движок
	ecsWorld := ecs.NewWorld()
	gameEngine := engine.NewEngine(ecsWorld)

	gameWorld := world.NewWorld(level, ecsWorld, logger)
	gameEngine.AddSystem(gameWorld)
	gameEngine.AddSystem(projectile.NewSystem(ecsWorld, gameEngine.Space(), logger))

	// Создаем аудио менеджер
	audioMgr := audio.NewManager(logger)

	// Создаем игрока
	gun := power.NewGun()
	playerEntity, err := player.CreatePlayerEntity(ecsWorld, player.Deps{
		Gun:      gun,
		Space:    gameEngine.Space(),
		Sounds:   audioMgr,
		Logger:   logger,
		Settings: playerSettings(cfg.Game),
	}, gameWorld.SpawnPoint())
	if err != nil {
		return nil, fmt.Errorf("failed to create player: %w", err)
	}
	gameWorld.Attach(playerEntity)

	game := &Game{
		config:         cfg,
		logger:         logger.With("component", "game"),
		ecsWorld:       ecsWorld,
		engine:         gameEngine,
		world:          gameWorld,
		player:         playerEntity,
		gun:            gun,
		audioMgr:       audioMgr,
		store:          progress.NewStore(cfg.Game.SaveDir),
		levelName:      levelName,
		lastUpdateTime: time.Now(),
	}
	game.applyAudio(cfg.Audio)
	game.restoreProgress()

	// Рендерер подписывается на пушку после восстановления, но берет ее состояние
	game.renderer = render.NewRenderer(cfg.Window.Width, cfg.Window.Height, gun)

	gameWorld.OnCheckpoint(func(ecs.Vector3) {
		game.saveProgress()
	})

	// Тела уровня должны быть в пространстве до первого кадра
	gameEngine.SyncPhysics()

	return game, nil
}

// Watch применяет изменения файла конфигурации на следующем кадре
func (g *Game) Watch(loader *config.Loader) {
	loader.Watch(func(cfg *config.Config) {
		g.pending.Store(cfg)
	})
}

// Update обновляет состояние игры
func (g *Game) Update() error {
	if ebiten.IsKeyPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	// Вычисляем время между кадрами
	now := time.Now()
	deltaTime := min(now.Sub(g.lastUpdateTime).Seconds(), maxDeltaTime)
	g.lastUpdateTime = now

	g.handleHotkeys()
	g.step(deltaTime, g.readInput())
	return nil
}

// step один кадр симуляции
func (g *Game) step(deltaTime float64, in player.Input) {
	if cfg := g.pending.Swap(nil); cfg != nil {
		g.applyConfig(cfg)
	}

	g.player.Update(deltaTime, in)

	// Смешивание, физика, зоны уровня и снаряды
	g.engine.Update(deltaTime)
}

// Draw отрисовывает игровой мир
func (g *Game) Draw(screen *ebiten.Image) {
	g.renderer.Render(screen, g.ecsWorld, render.View{
		Focus:   g.player.GetPosition(),
		Muzzle:  g.player.Muzzle(),
		Aim:     g.player.Aim(),
		Gun:     g.gun.Snapshot(),
		TubeYaw: g.gun.TubeYaw(),
		HasGun:  g.player.HasGun(),
		Dead:    g.player.Dead(),
		Level:   g.world.Level.Name,
	})
}

// Layout определяет размер экрана
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.config.Window.Width, g.config.Window.Height
}

// Run запускает основной цикл игры
func (g *Game) Run() error {
	g.isRunning = true
	defer g.Stop()

	// Инициализируем Ebiten
	ebiten.SetWindowSize(g.config.Window.Width, g.config.Window.Height)
	ebiten.SetWindowTitle(g.config.Window.Title)
	ebiten.SetTPS(g.config.Window.TPS)
	ebiten.SetVsyncEnabled(g.config.Window.VSync)
	ebiten.SetFullscreen(g.config.Window.Fullscreen)

	g.lastUpdateTime = time.Now()
	if err := ebiten.RunGame(g); err != nil {
		return fmt.Errorf("game loop error: %w", err)
	}
	return nil
}

// Stop останавливает игру и сохраняет прогресс
func (g *Game) Stop() {
	if !g.isRunning {
		return
	}
	g.isRunning = false
	g.saveProgress()
}

// applyConfig применяет перечитанную конфигурацию. Размер окна и уровень
// меняются только при перезапуске.
func (g *Game) applyConfig(cfg *config.Config) {
	g.player.SetSettings(playerSettings(cfg.Game))
	g.applyAudio(cfg.Audio)
	ebiten.SetTPS(cfg.Window.TPS)
	g.logger.Info("config applied",
		"move_speed", cfg.Game.MoveSpeed,
		"muted", cfg.Audio.Muted,
		"volume", cfg.Audio.Volume)
}

func (g *Game) applyAudio(cfg config.AudioConfig) {
	g.audioMgr.SetVolume(cfg.Volume)
	if cfg.Muted {
		g.audioMgr.Mute()
	} else {
		g.audioMgr.Unmute()
	}
}

// playerSettings параметры игрока из конфигурации; непустые значения
// заменяют значения по умолчанию
func playerSettings(c config.GameConfig) player.Settings {
	s := player.DefaultSettings()
	override := func(dst *float64, v float64) {
		if v > 0 {
			*dst = v
		}
	}
	override(&s.MoveSpeed, c.MoveSpeed)
	override(&s.RayLength, c.RayLength)
	override(&s.ProjectileSpeed, c.ProjectileSpeed)
	override(&s.ProjectileLifespan, c.ProjectileLifespan)
	override(&s.RespawnDelay, c.RespawnDelay)
	return s
}

// restoreProgress восстанавливает пушку, подборы и чекпоинт
func (g *Game) restoreProgress() {
	st, err := g.store.Load()
	switch {
	case errors.Is(err, progress.ErrNoSave):
		return
	case err != nil:
		g.logger.Warn("progress not restored", "err", err)
		return
	case st.Level != g.levelName:
		g.logger.Info("save belongs to another level", "save", st.Level, "level", g.levelName)
		return
	}

	g.player.RestoreGun(st.Unlocked, st.HasGun)
	g.world.ConsumePickups(st.HasGun, st.Unlocked)
	if st.Checkpoint != nil {
		g.player.RestoreCheckpoint(ecs.Vector3{X: st.Checkpoint.X, Y: st.Checkpoint.Y})
	}
	g.logger.Info("progress restored", "has_gun", st.HasGun, "saved_at", st.SavedAt)
}

// saveProgress сохраняет прогресс игрока
func (g *Game) saveProgress() {
	st := progress.State{
		Level:    g.levelName,
		HasGun:   g.player.HasGun(),
		Unlocked: g.gun.Snapshot().Unlocked,
	}
	if cp, ok := g.player.Checkpoint(); ok {
		st.Checkpoint = &progress.Point{X: cp.X, Y: cp.Y}
	}
	if err := g.store.Save(st); err != nil {
		g.logger.Error("progress not saved", "err", err)
		return
	}
	g.logger.Debug("progress saved", "path", g.store.Path())
}
