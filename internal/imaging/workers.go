package imaging

import (
	"sync"

	"github.com/ironsheep/color-layers-mcp/internal/cfg"
)

// parallelRows splits [0, height) into at most cfg.Workers contiguous row
// ranges and runs fn on each in its own goroutine, returning when all are
// done. fn must only write rows inside its own range.
func parallelRows(height int, fn func(y0, y1 int)) {
	if height <= 0 {
		return
	}
	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}
	if workers > height {
		workers = height
	}
	if workers == 1 {
		fn(0, height)
		return
	}

	chunk := (height + workers - 1) / workers
	var wg sync.WaitGroup
	for y0 := 0; y0 < height; y0 += chunk {
		y1 := min(y0+chunk, height)
		wg.Add(1)
		go func(y0, y1 int) {
			defer wg.Done()
			fn(y0, y1)
		}(y0, y1)
	}
	wg.Wait()
}
