package gui

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"medieval-rogue/internal/camera"
	"medieval-rogue/internal/entity"
	"medieval-rogue/internal/geom"
)

// aimReach is how far ahead of the player keyboard fire aims.
const aimReach = 100

func pressed(keys ...ebiten.Key) bool {
	for _, k := range keys {
		if ebiten.IsKeyPressed(k) {
			return true
		}
	}
	return false
}

func axis(neg, pos bool) float64 {
	switch {
	case neg && !pos:
		return -1
	case pos && !neg:
		return 1
	}
	return 0
}

// readInput polls the keyboard and mouse. Arrow keys fire in their
// direction; otherwise the left mouse button fires at the cursor.
func readInput(cam *camera.Camera, player geom.Vec) entity.Input {
	in := entity.Input{
		Move: geom.V(
			axis(pressed(ebiten.KeyA), pressed(ebiten.KeyD)),
			axis(pressed(ebiten.KeyW), pressed(ebiten.KeyS)),
		),
		Pause:   inpututil.IsKeyJustPressed(ebiten.KeyP),
		Advance: inpututil.IsKeyJustPressed(ebiten.KeyN),
		Menu:    inpututil.IsKeyJustPressed(ebiten.KeyEscape),
	}

	dir := geom.V(
		axis(pressed(ebiten.KeyArrowLeft, ebiten.KeyJ), pressed(ebiten.KeyArrowRight, ebiten.KeyL)),
		axis(pressed(ebiten.KeyArrowUp, ebiten.KeyI), pressed(ebiten.KeyArrowDown, ebiten.KeyK)),
	)
	switch {
	case !dir.IsZero():
		in.Fire = true
		in.Aim = player.Add(dir.Normalize().Scale(aimReach))
	case ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft):
		x, y := ebiten.CursorPosition()
		in.Fire = true
		in.Aim = cam.ScreenToWorld(float64(x), float64(y))
	}
	return in
}
