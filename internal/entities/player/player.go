package player

import (
	"errors"
	"image/color"
	"log/slog"
	"math"
	"slices"

	"github.com/darkbibni/Substanz/internal/engine"
	"github.com/darkbibni/Substanz/internal/engine/ecs"
	"github.com/darkbibni/Substanz/internal/entities/projectile"
	"github.com/darkbibni/Substanz/internal/power"
	"github.com/darkbibni/Substanz/internal/transformable"
)

// Звуковые сигналы игрока
const (
	SoundFire       = "fire"
	SoundAbsorb     = "absorb"
	SoundPickup     = "pickup"
	SoundCheckpoint = "checkpoint"
	SoundDeath      = "death"
)

var (
	normalColor = color.RGBA{R: 230, G: 230, B: 230, A: 255}
	deadColor   = color.RGBA{R: 120, G: 20, B: 20, A: 255}
)

// Space запросы к физике, нужные игроку
type Space interface {
	Raycast(from, to ecs.Vector3) (engine.Hit, bool)
	Sweep(from, to ecs.Vector3, radius float64) (engine.Hit, bool)
}

// SoundPlayer проигрывает звуковые эффекты по имени
type SoundPlayer interface {
	PlaySound(name string) error
}

// Settings настраиваемые параметры игрока
type Settings struct {
	MoveSpeed          float64
	Radius             float64
	MuzzleOffset       float64
	RayLength          float64
	ProjectileSpeed    float64
	ProjectileLifespan float64
	RespawnDelay       float64
}

// DefaultSettings параметры по умолчанию
func DefaultSettings() Settings {
	return Settings{
		MoveSpeed:          400,
		Radius:             16,
		MuzzleOffset:       28,
		RayLength:          4000,
		ProjectileSpeed:    projectile.DefaultSpeed,
		ProjectileLifespan: projectile.DefaultLifespan,
		RespawnDelay:       1,
	}
}

// Deps зависимости игрока
type Deps struct {
	Gun      *power.Gun
	Space    Space
	Sounds   SoundPlayer
	Logger   *slog.Logger
	Settings Settings
}

// Input команды за один кадр
type Input struct {
	Move   ecs.Vector3 // направление в плоскости XY, длина не важна
	Aim    ecs.Vector3 // точка прицела в координатах мира
	HasAim bool
	Fire   bool
	Absorb bool
	Select int // клавиша 1..3, 0 если ничего не нажато
	Wheel  float64
}

// Player представляет игрока в игре
type Player struct {
	entity    *ecs.Entity
	transform *ecs.TransformComponent
	render    *ecs.RenderComponent

	world    *ecs.World
	gun      *power.Gun
	space    Space
	sounds   SoundPlayer
	logger   *slog.Logger
	settings Settings

	aim     ecs.Vector3
	touched []*transformable.Transformable

	checkpoint    ecs.Vector3
	hasCheckpoint bool
	hasGun        bool
	dead          bool
	respawnIn     float64
}

// CreatePlayerEntity создает сущность игрока в мире
func CreatePlayerEntity(world *ecs.World, deps Deps, spawn ecs.Vector3) (*Player, error) {
	if deps.Gun == nil {
		return nil, errors.New("player: gun is required")
	}
	if deps.Space == nil {
		return nil, errors.New("player: physics space is required")
	}
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if deps.Settings == (Settings{}) {
		deps.Settings = DefaultSettings()
	}

	// Создаем новую сущность игрока
	playerEntity := ecs.NewEntity()

	transformComp := ecs.NewTransformComponent(spawn)
	playerEntity.AddComponent(transformComp)

	renderComp := ecs.NewRenderComponent(ecs.ShapeCircle, ecs.Splat(deps.Settings.Radius*2), normalColor)
	renderComp.Layer = 2
	playerEntity.AddComponent(renderComp)

	playerEntity.AddTag("player")
	world.AddEntity(playerEntity)

	return &Player{
		entity:     playerEntity,
		transform:  transformComp,
		render:     renderComp,
		world:      world,
		gun:        deps.Gun,
		space:      deps.Space,
		sounds:     deps.Sounds,
		logger:     deps.Logger.With("component", "player"),
		settings:   deps.Settings,
		aim:        ecs.Vector3{X: 1},
		checkpoint: spawn,
	}, nil
}

// SetSettings подменяет параметры, например после перезагрузки конфига
func (p *Player) SetSettings(s Settings) {
	p.settings = s
}

// Update обновляет состояние игрока
func (p *Player) Update(deltaTime float64, in Input) {
	if p.dead {
		p.respawnIn -= deltaTime
		if p.respawnIn <= 0 {
			p.TeleportToLastCheckpoint()
		}
		return
	}

	if in.HasAim {
		p.AimAt(in.Aim)
	}
	p.Move(in.Move, deltaTime)

	if in.Select != 0 {
		p.SelectPower(in.Select - 1)
	}
	if in.Wheel != 0 {
		p.ChangePower(in.Wheel)
	}
	if in.Fire {
		p.Fire()
	}
	if in.Absorb {
		p.Absorb()
	}
}

// Move двигает игрока по плоскости; стены и объекты останавливают его
func (p *Player) Move(direction ecs.Vector3, deltaTime float64) {
	direction.Z = 0
	if p.dead || direction.IsZero() {
		return
	}
	direction = direction.Normalize()
	from := p.transform.Position
	to := from.Add(direction.Multiply(p.settings.MoveSpeed * deltaTime))

	// Останавливаемся перед препятствием, но даем отойти от него
	if hit, ok := p.space.Sweep(from, to, p.settings.Radius); ok && direction.Dot(hit.Normal) < 0 {
		to = from.Lerp(to, hit.Alpha)
	}
	p.transform.Position = to
}

// AimAt поворачивает игрока к точке мира
func (p *Player) AimAt(target ecs.Vector3) {
	dir := target.Sub(p.transform.Position)
	dir.Z = 0
	if dir.IsZero() {
		return
	}
	p.aim = dir.Normalize()
	yaw := math.Atan2(p.aim.Y, p.aim.X) * 180 / math.Pi
	p.transform.Rotation = ecs.Rotator{Yaw: yaw}.Quat()
}

// Fire выпускает снаряд с выбранной силой
func (p *Player) Fire() bool {
	if p.dead || !p.gun.Enabled() {
		return false
	}
	if !p.gun.TryConsume() {
		return false
	}

	index := p.gun.Selected()
	projectile.Spawn(p.world, projectile.Spec{
		Index:     index,
		Origin:    p.Muzzle(),
		Direction: p.aim,
		Speed:     p.settings.ProjectileSpeed,
		Lifespan:  p.settings.ProjectileLifespan,
		Gun:       p.gun,
		Owner:     p,
	})
	p.play(SoundFire)
	p.logger.Debug("fired", "power", power.Names[index])
	return true
}

// Absorb вытягивает выбранную силу из объекта под прицелом
func (p *Player) Absorb() bool {
	if p.dead || !p.gun.Enabled() {
		return false
	}
	from := p.Muzzle()
	hit, ok := p.space.Raycast(from, from.Add(p.aim.Multiply(p.settings.RayLength)))
	if !ok {
		return false
	}
	target, ok := p.world.GetEntity(hit.Entity)
	if !ok {
		return false
	}
	comp, ok := ecs.Get[*transformable.Component](target, ecs.TransformableComponentID)
	if !ok {
		return false
	}

	index := p.gun.Selected()
	if !comp.Props.CheckPowerPresent(index) {
		return false
	}
	comp.Props.SwapEffect(index, p.gun)
	p.gun.AbsorbInto()
	p.Touch(comp.Props)
	p.play(SoundAbsorb)
	p.logger.Debug("absorbed", "power", power.Names[index], "target", comp.Name)
	return true
}

// SelectPower выбирает слот 0..2
func (p *Player) SelectPower(index int) {
	p.gun.SelectPower(index)
}

// ChangePower листает слоты по знаку прокрутки
func (p *Player) ChangePower(wheel float64) {
	switch {
	case wheel > 0:
		p.gun.CyclePower(1)
	case wheel < 0:
		p.gun.CyclePower(-1)
	}
}

// PickUpGun экипирует пушку впервые
func (p *Player) PickUpGun() {
	p.hasGun = true
	p.gun.Equip()
	p.play(SoundPickup)
	p.logger.Info("gun picked up")
}

// PickUpPower открывает слот
func (p *Player) PickUpPower(index int) {
	p.gun.Unlock(index)
	p.play(SoundPickup)
	p.logger.Info("power unlocked", "power", index)
}

// RestoreGun восстанавливает пушку из сохранения
func (p *Player) RestoreGun(unlocked [power.SlotCount]bool, equipped bool) {
	p.hasGun = equipped
	p.gun.Restore(unlocked, equipped)
}

// HasGun подбирал ли игрок пушку
func (p *Player) HasGun() bool {
	return p.hasGun
}

// Touch запоминает объект для сброса на следующем чекпоинте
func (p *Player) Touch(t *transformable.Transformable) {
	if t == nil || slices.Contains(p.touched, t) {
		return
	}
	p.touched = append(p.touched, t)
}

// Touched объекты, измененные с последнего чекпоинта
func (p *Player) Touched() []*transformable.Transformable {
	return slices.Clone(p.touched)
}

// SetCheckpoint запоминает точку возрождения
func (p *Player) SetCheckpoint(position ecs.Vector3) {
	p.checkpoint = position
	p.hasCheckpoint = true
	p.play(SoundCheckpoint)
	p.logger.Info("checkpoint set", "x", position.X, "y", position.Y)
}

// RestoreCheckpoint ставит игрока на сохраненный чекпоинт без звука
func (p *Player) RestoreCheckpoint(position ecs.Vector3) {
	p.checkpoint = position
	p.hasCheckpoint = true
	p.transform.Position = position
}

// Checkpoint последняя точка возрождения и была ли она задана явно
func (p *Player) Checkpoint() (ecs.Vector3, bool) {
	return p.checkpoint, p.hasCheckpoint
}

// PassThroughBarrier разоружает игрока, сбрасывает тронутые объекты и пушку
func (p *Player) PassThroughBarrier() {
	p.gun.Unequip()
	for _, t := range p.touched {
		t.Reset()
	}
	if n := len(p.touched); n > 0 {
		p.logger.Debug("reset touched", "count", n)
	}
	p.touched = nil
	p.gun.ResetAll()
}

// ExitBarrier возвращает пушку, если она была
func (p *Player) ExitBarrier() {
	if p.hasGun && !p.dead {
		p.gun.SetEquipped(true)
	}
}

// Kill убивает игрока; возрождение через RespawnDelay
func (p *Player) Kill() {
	if p.dead {
		return
	}
	p.dead = true
	p.respawnIn = p.settings.RespawnDelay
	p.gun.Unequip()
	p.render.Color = deadColor
	p.play(SoundDeath)
	p.logger.Info("player killed")
}

// Dead мертв ли игрок
func (p *Player) Dead() bool {
	return p.dead
}

// TeleportToLastCheckpoint сбрасывает состояние и переносит игрока на
// последний чекпоинт (или на спавн)
func (p *Player) TeleportToLastCheckpoint() {
	p.PassThroughBarrier()
	p.dead = false
	p.respawnIn = 0
	p.render.Color = normalColor
	p.transform.Position = p.checkpoint
	p.ExitBarrier()
	p.logger.Info("respawned", "x", p.checkpoint.X, "y", p.checkpoint.Y)
}

// Muzzle точка вылета снаряда и луча
func (p *Player) Muzzle() ecs.Vector3 {
	return p.transform.Position.Add(p.aim.Multiply(p.settings.MuzzleOffset))
}

// GetPosition возвращает текущую позицию игрока
func (p *Player) GetPosition() ecs.Vector3 {
	return p.transform.Position
}

// Aim единичное направление прицела
func (p *Player) Aim() ecs.Vector3 {
	return p.aim
}

// Gun пушка игрока
func (p *Player) Gun() *power.Gun {
	return p.gun
}

// GetEntity возвращает сущность игрока
func (p *Player) GetEntity() *ecs.Entity {
	return p.entity
}

func (p *Player) play(name string) {
	if p.sounds == nil {
		return
	}
	if err := p.sounds.PlaySound(name); err != nil {
		p.logger.Debug("sound failed", "sound", name, "err", err)
	}
}
