package core

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/darkbibni/Substanz/internal/engine/ecs"
	"github.com/darkbibni/Substanz/internal/entities/player"
)

// Клавиши выбора слотов 1..3
var selectKeys = []ebiten.Key{ebiten.KeyDigit1, ebiten.KeyDigit2, ebiten.KeyDigit3}

// readInput снимает клавиатуру и мышь за кадр
func (g *Game) readInput() player.Input {
	var in player.Input

	in.Move = moveDirection(
		ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp),
		ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown),
		ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft),
		ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight),
	)

	// Курсор в координатах мира
	cx, cy := ebiten.CursorPosition()
	in.Aim = g.renderer.Camera().ScreenToWorld(float64(cx), float64(cy))
	in.HasAim = true

	in.Fire = inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
	in.Absorb = inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight)

	for i, k := range selectKeys {
		if inpututil.IsKeyJustPressed(k) {
			in.Select = i + 1
		}
	}
	_, in.Wheel = ebiten.Wheel()
	return in
}

// handleHotkeys клавиши, не относящиеся к игроку
func (g *Game) handleHotkeys() {
	if inpututil.IsKeyJustPressed(ebiten.KeyM) {
		if g.audioMgr.Muted() {
			g.audioMgr.Unmute()
		} else {
			g.audioMgr.Mute()
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		ebiten.SetFullscreen(!ebiten.IsFullscreen())
	}
}

// moveDirection направление из нажатых клавиш; ось Y экрана вниз
func moveDirection(up, down, left, right bool) ecs.Vector3 {
	var v ecs.Vector3
	if up {
		v.Y--
	}
	if down {
		v.Y++
	}
	if left {
		v.X--
	}
	if right {
		v.X++
	}
	return v
}
