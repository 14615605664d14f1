package render

import (
	"math"

	"github.com/darkbibni/Substanz/internal/engine/ecs"
	"github.com/darkbibni/Substanz/internal/feedback"
	"github.com/darkbibni/Substanz/internal/power"
)

// HUD состояние индикаторов слотов пушки. Цвета приходят событиями
// PowerChanged; заблокированный слот остается черным.
type HUD struct {
	swatches [power.SlotCount]feedback.Color
}

// NewHUD подписывается на события пушки и берет ее текущее состояние
func NewHUD(gun *power.Gun) *HUD {
	h := &HUD{}
	snap := gun.Snapshot()
	for i := range h.swatches {
		switch {
		case snap.Available[i]:
			h.swatches[i] = feedback.Channel(i, feedback.Full)
		case snap.Unlocked[i]:
			h.swatches[i] = feedback.Channel(i, feedback.Dim)
		}
	}
	gun.OnPowerChanged(h.onPowerChanged)
	return h
}

func (h *HUD) onPowerChanged(ev power.PowerChanged) {
	if ev.Index < 0 || ev.Index >= power.SlotCount {
		return
	}
	h.swatches[ev.Index] = ev.Color
}

// Swatch цвет индикатора слота i
func (h *HUD) Swatch(i int) feedback.Color {
	if i < 0 || i >= power.SlotCount {
		return feedback.Black
	}
	return h.swatches[i]
}

// barrelTubes центры стволов барабана вокруг center. Барабан повернут на
// yaw градусов (Gun.TubeYaw): выбранный ствол смотрит вдоль aim, остальные
// через 120 градусов.
func barrelTubes(center, aim ecs.Vector3, yaw, radius float64) [power.SlotCount]ecs.Vector3 {
	base := math.Atan2(aim.Y, aim.X)
	var out [power.SlotCount]ecs.Vector3
	for i := range out {
		angle := base + (yaw-60+float64(i)*120)*math.Pi/180
		sin, cos := math.Sincos(angle)
		out[i] = center.Add(ecs.Vector3{X: cos * radius, Y: sin * radius})
	}
	return out
}
