// Package palette models the reference colors an image is snapped to.
//
// A Color is an 8-bit RGB value that always carries its "#RRGGBB" encoding.
// Colors are compared with one of two metrics:
//   - MetricRGB: Euclidean distance over the channels.
//   - MetricHSL: weighted distance in hue/saturation/lightness, with hue
//     measured the short way around the color wheel.
//
// Both metrics truncate to an integer, so ties are common. Palette.Closest
// breaks them by choosing the lexicographically smaller hex string, which
// makes every lookup deterministic regardless of palette order.
//
// Suggest derives a starting palette from an image, using either dominant
// color bucketing or k-means clustering.
package palette
