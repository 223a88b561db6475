package server

import (
	"encoding/json"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/ironsheep/color-layers-mcp/internal/cfg"
	"github.com/ironsheep/color-layers-mcp/internal/imaging"
	"github.com/ironsheep/color-layers-mcp/internal/layers"
	"github.com/ironsheep/color-layers-mcp/internal/palette"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_load", "image_map_colors").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
//
// Each tool handler:
//  1. Unmarshals arguments from JSON
//  2. Applies defaults from cfg for optional parameters
//  3. Loads and maps the image through the layers pipeline
//  4. Returns the result or error
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Image Information
	case "image_load":
		return s.handleImageLoad(args)

	// Palette Operations
	case "palette_suggest":
		return s.handlePaletteSuggest(args)
	case "palette_swatch":
		return s.handlePaletteSwatch(args)

	// Mapping Operations
	case "image_map_colors":
		return s.handleImageMapColors(args)

	// Layer Export
	case "image_color_layer_stl":
		return s.handleImageColorLayerSTL(args)
	case "image_export_layers":
		return s.handleImageExportLayers(args)

	default:
		return nil, errors.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// === Image Information Handlers ===

type imageLoadArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.LoadImageInfo(s.cache, a.Path)
}

// === Palette Handlers ===

type paletteSuggestArgs struct {
	Path   string `json:"path"`
	Count  int    `json:"count"`
	Method string `json:"method"`
}

type paletteSuggestResult struct {
	Colors []string `json:"colors"`
	Method string   `json:"method"`
}

func (s *Server) handlePaletteSuggest(args json.RawMessage) (interface{}, error) {
	var a paletteSuggestArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Count <= 0 {
		a.Count = 4
	}
	method, err := palette.ParseMethod(a.Method)
	if err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	p, err := palette.Suggest(img, a.Count, method)
	if err != nil {
		return nil, err
	}
	return &paletteSuggestResult{Colors: p.Hexes(), Method: method.String()}, nil
}

func (s *Server) handlePaletteSwatch(args json.RawMessage) (interface{}, error) {
	var a mappingArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	p, opts, err := a.options()
	if err != nil {
		return nil, err
	}

	var counts []imaging.ColorCount
	if a.Path != "" {
		res, err := s.pipeline.Run(a.Path, p, opts)
		if err != nil {
			return nil, err
		}
		counts = res.Census
	}
	b, err := imaging.Swatch(p, counts)
	if err != nil {
		return nil, err
	}
	return imaging.EncodePNG(b)
}

// === Mapping Handlers ===

// mappingArgs are the arguments shared by every tool that maps an image.
// Pointer fields distinguish "not given" (use cfg) from an explicit 0.
type mappingArgs struct {
	Path          string   `json:"path"`
	Colors        []string `json:"colors"`
	Metric        string   `json:"metric"`
	MaxSize       *int     `json:"max_size"`
	DenoiseRadius float64  `json:"denoise_radius"`
	BlurSigma     float64  `json:"blur_sigma"`
	IslandSize    *int     `json:"island_size"`
}

func (a *mappingArgs) options() (*palette.Palette, layers.Options, error) {
	opts := layers.DefaultOptions()
	p, err := palette.FromHex(a.Colors)
	if err != nil {
		return nil, opts, err
	}
	if p.Len() == 0 {
		return nil, opts, palette.ErrEmptyPalette
	}
	if opts.Metric, err = palette.ParseMetric(a.Metric); err != nil {
		return nil, opts, err
	}
	if a.MaxSize != nil {
		opts.MaxSize = *a.MaxSize
	}
	if a.IslandSize != nil {
		opts.IslandSize = *a.IslandSize
	}
	opts.DenoiseRadius = a.DenoiseRadius
	opts.BlurSigma = a.BlurSigma
	return p, opts, nil
}

func (s *Server) run(a *mappingArgs) (*layers.Result, error) {
	p, opts, err := a.options()
	if err != nil {
		return nil, err
	}
	return s.pipeline.Run(a.Path, p, opts)
}

type imageMapColorsArgs struct {
	mappingArgs
	OutputPath string `json:"output_path"`
}

type imageMapColorsResult struct {
	*imaging.EncodedImage
	Census     []imaging.ColorCount `json:"census"`
	OutputPath string               `json:"output_path,omitempty"`
}

func (s *Server) handleImageMapColors(args json.RawMessage) (interface{}, error) {
	var a imageMapColorsArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	res, err := s.run(&a.mappingArgs)
	if err != nil {
		return nil, err
	}

	enc, err := imaging.EncodePNG(res.Mapped)
	if err != nil {
		return nil, err
	}
	if a.OutputPath != "" {
		if err := imaging.Save(res.Mapped, a.OutputPath); err != nil {
			return nil, err
		}
	}
	return &imageMapColorsResult{EncodedImage: enc, Census: res.Census, OutputPath: a.OutputPath}, nil
}

// === Layer Export Handlers ===

type imageColorLayerArgs struct {
	mappingArgs
	Color      string `json:"color"`
	OutputPath string `json:"output_path"`
}

func (s *Server) handleImageColorLayerSTL(args json.RawMessage) (interface{}, error) {
	var a imageColorLayerArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	c, err := palette.ParseHex(a.Color)
	if err != nil {
		return nil, err
	}
	if !containsColor(a.Colors, c) {
		return nil, errors.Wrapf(palette.ErrColorNotFound, "layer color %s", c)
	}
	res, err := s.run(&a.mappingArgs)
	if err != nil {
		return nil, err
	}

	path := a.OutputPath
	if path == "" {
		path = filepath.Join(cfg.OutputDir, layers.LayerFileName("", c))
	}
	return res.ExportLayer(c, path)
}

type imageExportLayersArgs struct {
	mappingArgs
	OutputDir string `json:"output_dir"`
	Prefix    string `json:"prefix"`
}

type imageExportLayersResult struct {
	OutputDir string               `json:"output_dir"`
	Layers    []layers.LayerFile   `json:"layers"`
	Skipped   []string             `json:"skipped,omitempty"`
	Census    []imaging.ColorCount `json:"census"`
}

func (s *Server) handleImageExportLayers(args json.RawMessage) (interface{}, error) {
	var a imageExportLayersArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	res, err := s.run(&a.mappingArgs)
	if err != nil {
		return nil, err
	}

	dir := a.OutputDir
	if dir == "" {
		dir = cfg.OutputDir
	}
	prefix := a.Prefix
	if prefix == "" {
		base := filepath.Base(a.Path)
		prefix = strings.TrimSuffix(base, filepath.Ext(base))
	}

	files, err := res.ExportAll(dir, prefix)
	if err != nil {
		return nil, err
	}
	var skipped []string
	for _, cc := range res.Census {
		if cc.Pixels == 0 {
			skipped = append(skipped, cc.Hex)
		}
	}
	return &imageExportLayersResult{OutputDir: dir, Layers: files, Skipped: skipped, Census: res.Census}, nil
}

func containsColor(hexes []string, c palette.Color) bool {
	for _, h := range hexes {
		if pc, err := palette.ParseHex(h); err == nil && pc.Equal(c) {
			return true
		}
	}
	return false
}
