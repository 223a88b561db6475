package imaging

import (
	"log"

	"github.com/anthonynsimon/bild/effect"
	"github.com/disintegration/imaging"
)

// Blur applies a Gaussian blur with the given sigma. Smoothing before Remap
// reduces speckle from noisy or JPEG-compressed sources.
//
// sigma <= 0 returns an unmodified copy. The channel count is preserved.
func Blur(b *Buffer, sigma float64) *Buffer {
	if b.Empty() {
		log.Printf("blur skipped: %v", ErrEmptyImage)
		return b
	}
	if sigma <= 0 {
		return b.Clone()
	}
	return fromNRGBA(imaging.Blur(b.ToImage(), sigma), b.Channels)
}

// Denoise applies a median filter of the given radius. Unlike Blur it keeps
// color edges sharp, which matters because Remap snaps every edge pixel.
//
// radius <= 0 returns an unmodified copy.
func Denoise(b *Buffer, radius float64) *Buffer {
	if b.Empty() {
		log.Printf("denoise skipped: %v", ErrEmptyImage)
		return b
	}
	if radius <= 0 {
		return b.Clone()
	}
	return fromNRGBA(imaging.Clone(effect.Median(b.ToImage(), radius)), b.Channels)
}

// Downscale shrinks b so its longer side is maxSize, keeping the aspect
// ratio. Box filtering averages every source pixel that lands in a target
// pixel, the area-resampling behavior wanted for shrinking.
//
// Buffers already within maxSize, and maxSize <= 0, give an unmodified copy.
func Downscale(b *Buffer, maxSize int) *Buffer {
	if b.Empty() {
		log.Printf("downscale skipped: %v", ErrEmptyImage)
		return b
	}
	if maxSize <= 0 || max(b.Width, b.Height) <= maxSize {
		return b.Clone()
	}
	return fromNRGBA(imaging.Fit(b.ToImage(), maxSize, maxSize, imaging.Box), b.Channels)
}
