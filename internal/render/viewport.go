package render

import (
	"math"

	"medieval-rogue/internal/camera"
	"medieval-rogue/internal/geom"
)

// Viewport maps the camera's world view onto a block of terminal cells.
// Each tile is two columns wide because emoji occupy two terminal columns.
type Viewport struct {
	Cols int // in terminal columns
	Rows int // in terminal rows
}

// Tiles is the number of two-column tiles across the viewport.
func (v Viewport) Tiles() int { return max(1, v.Cols/2) }

// scale returns the world size of one tile.
func (v Viewport) scale(cam camera.Camera) (sx, sy float64) {
	return cam.W / float64(v.Tiles()), cam.H / float64(max(1, v.Rows))
}

// ToCell converts world p to a screen column and row.
// visible is false when the result falls outside the viewport.
func (v Viewport) ToCell(cam camera.Camera, p geom.Vec) (col, row int, visible bool) {
	px, py := cam.WorldToScreen(p)
	sx, sy := v.scale(cam)
	tx := int(math.Floor(float64(px) / sx))
	row = int(math.Floor(float64(py) / sy))
	col = tx * 2
	visible = tx >= 0 && tx < v.Tiles() && row >= 0 && row < v.Rows
	return
}

// ToWorld converts a screen cell to the world point at the center of its tile.
func (v Viewport) ToWorld(cam camera.Camera, col, row int) geom.Vec {
	sx, sy := v.scale(cam)
	return cam.ScreenToWorld((float64(col/2)+0.5)*sx, (float64(row)+0.5)*sy)
}

// TileRect is the world rectangle covered by the tile at (tx, row).
func (v Viewport) TileRect(cam camera.Camera, tx, row int) geom.Rect {
	sx, sy := v.scale(cam)
	tl := cam.ScreenToWorld(float64(tx)*sx, float64(row)*sy)
	return geom.Rect{X: tl.X, Y: tl.Y, W: sx, H: sy}
}
