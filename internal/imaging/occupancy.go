package imaging

import (
	"log"

	"github.com/ironsheep/color-layers-mcp/internal/palette"
)

// Occupancy is a binary grid marking which pixels hold one target color.
//
// The grid is padded: for a W×H image it has H+2 rows and W+2 columns, and
// cell (i+1, j+1) corresponds to pixel row i, column j. The one-cell border
// is always empty, so 2×2 lookups at the edges need no bounds checks.
type Occupancy struct {
	rows, cols int
	cells      []uint8
}

// NewOccupancy returns an empty padded grid for an image of the given size.
func NewOccupancy(height, width int) *Occupancy {
	rows, cols := height+2, width+2
	return &Occupancy{rows: rows, cols: cols, cells: make([]uint8, rows*cols)}
}

// Rows returns the padded row count.
func (o *Occupancy) Rows() int { return o.rows }

// Cols returns the padded column count.
func (o *Occupancy) Cols() int { return o.cols }

// At reports whether padded cell (row, col) is occupied. Cells outside the
// grid read as empty.
func (o *Occupancy) At(row, col int) bool {
	if row < 0 || col < 0 || row >= o.rows || col >= o.cols {
		return false
	}
	return o.cells[row*o.cols+col] == 1
}

// Set marks pixel (i, j), i.e. padded cell (i+1, j+1). Pixels outside the
// image are ignored, which keeps the border empty.
func (o *Occupancy) Set(i, j int, v bool) {
	if i < 0 || j < 0 || i >= o.rows-2 || j >= o.cols-2 {
		return
	}
	var b uint8
	if v {
		b = 1
	}
	o.cells[(i+1)*o.cols+j+1] = b
}

// Count returns the number of occupied cells.
func (o *Occupancy) Count() int {
	n := 0
	for _, c := range o.cells {
		n += int(c)
	}
	return n
}

// ExtractOccupancy marks every non-transparent pixel of b whose RGB equals
// target exactly. Rows are processed in parallel; each worker writes only
// the grid rows of its own pixel rows.
//
// An empty b is logged and produces an empty 2×2 grid.
func ExtractOccupancy(b *Buffer, target palette.Color) *Occupancy {
	if b.Empty() {
		log.Printf("occupancy skipped: %v", ErrEmptyImage)
		return NewOccupancy(0, 0)
	}
	o := NewOccupancy(b.Height, b.Width)
	tr, tg, tb := target.RGB()

	parallelRows(b.Height, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			row := (y + 1) * o.cols
			for x := 0; x < b.Width; x++ {
				i := b.offset(x, y)
				if b.Pix[i] == tr && b.Pix[i+1] == tg && b.Pix[i+2] == tb && !b.Transparent(x, y) {
					o.cells[row+x+1] = 1
				}
			}
		}
	})
	return o
}
