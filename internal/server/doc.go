// Package server implements the MCP (Model Context Protocol) server that
// splits images into stackable color layers.
//
// This package provides a JSON-RPC 2.0 server exposing the palette, mapping
// and layer export pipeline through the MCP protocol, so an MCP client can
// preview how a picture maps onto a set of filament colors and then write
// one printable STL per color.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Image Information:
//   - image_load: Load image and get metadata
//
// Palette Operations:
//   - palette_suggest: Propose distinct colors for an image
//   - palette_swatch: Render a labeled palette legend
//
// Mapping Operations:
//   - image_map_colors: Snap pixels to the palette, return PNG and pixel counts
//
// Layer Export:
//   - image_color_layer_stl: Extrude one color into an STL file
//   - image_export_layers: Write one STL per used palette color
//
// Mapping tools share the arguments colors, metric, max_size,
// denoise_radius, blur_sigma and island_size. Omitted max_size and
// island_size fall back to the cfg defaults.
//
// # Image Caching
//
// The server maintains an in-memory cache of loaded images. Images are cached
// by path and reused across multiple tool calls, avoiding redundant disk I/O.
// The cache persists for the lifetime of the server process.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: Additional error details (typically the Go error string)
//
// # Usage
//
// The server is typically started by an MCP client:
//
//	srv := server.New()
//	if err := srv.Run(); err != nil {
//	    log.Fatal(err)
//	}
package server
