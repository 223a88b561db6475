// Package layers turns an image and a palette into stackable color layers:
// one closed, extruded mesh per palette color, written as STL.
//
// Process maps a buffer to the palette; Result.ExportAll then writes a
// layer file for every color that received pixels.
package layers
