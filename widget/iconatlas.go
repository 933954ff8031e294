package widget

import "github.com/AndrewAltimit/oasis-os-sub003/types"

// IconAtlas is a 256x256 grid of 16x16 icons packed into a single texture,
// indexed by (col,row) and drawn tinted (spec §4.5).
type IconAtlas struct {
	Texture types.TextureId
}

const (
	IconCellSize  = 16
	iconGridCells = 256 / IconCellSize
)

// Icon returns a drawable referencing the (col,row) cell of the atlas.
func (a IconAtlas) Icon(col, row int, tint types.Color) Icon {
	return Icon{atlas: a, Col: col, Row: row, Tint: tint}
}

// Icon draws a single cell from an IconAtlas tinted with Tint.
type Icon struct {
	atlas    IconAtlas
	Col, Row int
	Tint     types.Color
}

func (i Icon) Measure(ctx *DrawContext, availW, availH int) (int, int) {
	return IconCellSize, IconCellSize
}

func (i Icon) Draw(ctx *DrawContext, x, y, w, h int) error {
	if i.Col < 0 || i.Row < 0 || i.Col >= iconGridCells || i.Row >= iconGridCells {
		return nil
	}
	srcX := i.Col * IconCellSize
	srcY := i.Row * IconCellSize
	return ctx.Backend.BlitSubTinted(i.atlas.Texture, srcX, srcY, IconCellSize, IconCellSize, x, y, w, h, i.Tint)
}
