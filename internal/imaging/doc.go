// Package imaging loads images and runs the pixel passes that turn a photo
// into flat color layers.
//
// Images are decoded into a Buffer, a row-major byte grid with 3 (RGB) or
// 4 (RGBA) channels. The passes are:
//
//   - Downscale, Blur and Denoise: optional pre-processing.
//   - Remap: replace every pixel with its nearest palette color.
//   - SmoothIslands: absorb small single-color regions into their
//     surroundings.
//   - ExtractOccupancy: mark the pixels of one palette color in a padded
//     binary grid, ready for mesh.Build.
//
// Every pass returns a new Buffer and leaves its input alone. Remap and
// ExtractOccupancy split rows across cfg.Workers goroutines; results do not
// depend on the worker count.
//
// # Coordinate System
//
// Pixel (x, y) is 0-based from the top-left corner, X rightward and Y
// downward. Occupancy cells are addressed (row, col) and are offset by one
// for the empty border: pixel (x, y) is cell (y+1, x+1).
//
// # Transparency
//
// A pixel with alpha 0 is transparent. Remap leaves it untouched,
// SmoothIslands neither recolors it nor counts it as a neighbor, and
// ExtractOccupancy never marks it.
//
// # Thread Safety
//
// ImageCache is safe for concurrent use. Buffers are not; a Buffer must not
// be written while a pass reads it.
package imaging
