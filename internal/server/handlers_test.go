package server

import (
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ironsheep/color-layers-mcp/internal/cfg"
	"github.com/ironsheep/color-layers-mcp/internal/imaging"
)

// createTestImageFile writes a PNG whose left half is left and right half
// is right, and returns its path.
func createTestImageFile(t *testing.T, width, height int, left, right color.Color) string {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if x < width/2 {
				img.Set(x, y, left)
			} else {
				img.Set(x, y, right)
			}
		}
	}

	path := filepath.Join(t.TempDir(), "handler-test.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create file: %v", err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		t.Fatalf("failed to encode image: %v", err)
	}
	return path
}

var (
	red  = color.RGBA{255, 0, 0, 255}
	blue = color.RGBA{0, 0, 255, 255}
)

// callTool runs a tools/call request and decodes the text content into out.
// It returns the JSON-RPC error, if any.
func callTool(t *testing.T, s *Server, name string, args map[string]interface{}, out interface{}) *MCPError {
	t.Helper()
	params, _ := json.Marshal(map[string]interface{}{
		"name":      name,
		"arguments": args,
	})
	resp := s.handleRequest(&MCPRequest{
		JSONRPC: "2.0",
		ID:      1,
		Method:  "tools/call",
		Params:  params,
	})
	if resp == nil {
		t.Fatal("handleRequest returned nil")
	}
	if resp.Error != nil {
		return resp.Error
	}

	result := resp.Result.(map[string]interface{})
	content := result["content"].([]map[string]interface{})
	text := content[0]["text"].(string)
	if out != nil {
		if err := json.Unmarshal([]byte(text), out); err != nil {
			t.Fatalf("failed to decode result %q: %v", text, err)
		}
	}
	return nil
}

func TestHandleToolsCall_ImageLoad(t *testing.T) {
	s := New()
	imgPath := createTestImageFile(t, 100, 80, red, red)

	var info imaging.ImageInfo
	if err := callTool(t, s, "image_load", map[string]interface{}{"path": imgPath}, &info); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if info.Width != 100 || info.Height != 80 || info.Format != "png" || info.Channels != 3 {
		t.Errorf("unexpected info: %+v", info)
	}
}

func TestHandleToolsCall_NonExistentFile(t *testing.T) {
	s := New()
	tests := []struct {
		tool string
		args map[string]interface{}
	}{
		{"image_load", map[string]interface{}{"path": "/nonexistent/image.png"}},
		{"palette_suggest", map[string]interface{}{"path": "/nonexistent/image.png"}},
		{"image_map_colors", map[string]interface{}{"path": "/nonexistent/image.png", "colors": []string{"#000000"}}},
	}
	for _, tt := range tests {
		t.Run(tt.tool, func(t *testing.T) {
			err := callTool(t, s, tt.tool, tt.args, nil)
			if err == nil {
				t.Fatal("Expected error for non-existent file")
			}
			if err.Code != -32000 {
				t.Errorf("Error code: got %d, want -32000", err.Code)
			}
		})
	}
}

func TestHandleToolsCall_InvalidTool(t *testing.T) {
	err := callTool(t, New(), "nonexistent_tool", map[string]interface{}{}, nil)
	if err == nil {
		t.Fatal("Expected error for invalid tool")
	}
	if !strings.Contains(err.Data.(string), "unknown tool") {
		t.Errorf("Data: got %v", err.Data)
	}
}

func TestHandleToolsCall_InvalidParams(t *testing.T) {
	s := New()
	resp := s.handleRequest(&MCPRequest{
		JSONRPC: "2.0",
		ID:      1,
		Method:  "tools/call",
		Params:  json.RawMessage(`not json`),
	})
	if resp.Error == nil || resp.Error.Code != -32602 {
		t.Errorf("got %+v, want -32602 error", resp.Error)
	}
}

func TestHandleToolsCall_PaletteSuggest(t *testing.T) {
	s := New()
	imgPath := createTestImageFile(t, 40, 40, red, blue)

	for _, method := range []string{"dominant", "kmeans"} {
		t.Run(method, func(t *testing.T) {
			var res paletteSuggestResult
			err := callTool(t, s, "palette_suggest", map[string]interface{}{
				"path":   imgPath,
				"count":  2,
				"method": method,
			}, &res)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if len(res.Colors) == 0 || len(res.Colors) > 2 {
				t.Errorf("got %d colors, want 1..2", len(res.Colors))
			}
			if res.Method != method {
				t.Errorf("Method: got %s, want %s", res.Method, method)
			}
		})
	}

	if err := callTool(t, s, "palette_suggest", map[string]interface{}{"path": imgPath, "method": "median-cut"}, nil); err == nil {
		t.Error("Expected error for unknown method")
	}
}

func TestHandleToolsCall_PaletteSwatch(t *testing.T) {
	s := New()
	imgPath := createTestImageFile(t, 10, 10, red, blue)

	var enc imaging.EncodedImage
	err := callTool(t, s, "palette_swatch", map[string]interface{}{
		"path":   imgPath,
		"colors": []string{"#FF0000", "#0000FF", "#00FF00"},
	}, &enc)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if enc.MimeType != "image/png" || enc.Height == 0 || enc.ImageBase64 == "" {
		t.Errorf("unexpected swatch: %+v", enc)
	}

	if err := callTool(t, s, "palette_swatch", map[string]interface{}{"colors": []string{}}, nil); err == nil {
		t.Error("Expected error for empty palette")
	}
}

func TestHandleToolsCall_MapColors(t *testing.T) {
	s := New()
	imgPath := createTestImageFile(t, 8, 4, color.RGBA{200, 30, 30, 255}, color.RGBA{128, 128, 128, 255})
	outPath := filepath.Join(t.TempDir(), "mapped.png")

	var res struct {
		imaging.EncodedImage
		Census     []imaging.ColorCount `json:"census"`
		OutputPath string               `json:"output_path"`
	}
	err := callTool(t, s, "image_map_colors", map[string]interface{}{
		"path":        imgPath,
		"colors":      []string{"#FF0000", "#0000FF"},
		"output_path": outPath,
	}, &res)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	// Gray is equidistant from red and blue; the smaller hex wins.
	want := []imaging.ColorCount{{Hex: "#FF0000", Pixels: 16}, {Hex: "#0000FF", Pixels: 16}}
	if diff := cmp.Diff(want, res.Census); diff != "" {
		t.Errorf("census mismatch (-want +got):\n%s", diff)
	}
	if res.Width != 8 || res.Height != 4 {
		t.Errorf("dimensions: got %dx%d, want 8x4", res.Width, res.Height)
	}
	if _, err := os.Stat(outPath); err != nil {
		t.Errorf("mapped image not saved: %v", err)
	}
}

func TestHandleToolsCall_MapColorsBadPalette(t *testing.T) {
	s := New()
	imgPath := createTestImageFile(t, 4, 4, red, red)
	tests := []struct {
		name string
		args map[string]interface{}
	}{
		{"bad hex", map[string]interface{}{"path": imgPath, "colors": []string{"FF0000"}}},
		{"empty palette", map[string]interface{}{"path": imgPath, "colors": []string{}}},
		{"bad metric", map[string]interface{}{"path": imgPath, "colors": []string{"#FF0000"}, "metric": "lab"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := callTool(t, s, "image_map_colors", tt.args, nil); err == nil {
				t.Error("Expected error")
			}
		})
	}
}

func TestHandleToolsCall_ColorLayerSTL(t *testing.T) {
	s := New()
	imgPath := createTestImageFile(t, 6, 4, red, blue)
	outPath := filepath.Join(t.TempDir(), "red.stl")

	var lf struct {
		Color      string `json:"color"`
		Path       string `json:"path"`
		Pixels     int    `json:"pixels"`
		Faces      int    `json:"faces"`
		Watertight bool   `json:"watertight"`
	}
	err := callTool(t, s, "image_color_layer_stl", map[string]interface{}{
		"path":        imgPath,
		"colors":      []string{"#FF0000", "#0000FF"},
		"color":       "#ff0000",
		"output_path": outPath,
	}, &lf)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if lf.Color != "#FF0000" || lf.Pixels != 12 || !lf.Watertight || lf.Faces == 0 {
		t.Errorf("unexpected layer: %+v", lf)
	}
	data, readErr := os.ReadFile(outPath)
	if readErr != nil {
		t.Fatal(readErr)
	}
	if !strings.HasPrefix(string(data), "solid mesh\n") {
		t.Error("output is not an ASCII STL solid")
	}
}

func TestHandleToolsCall_ColorLayerNotInPalette(t *testing.T) {
	s := New()
	imgPath := createTestImageFile(t, 4, 4, red, blue)
	err := callTool(t, s, "image_color_layer_stl", map[string]interface{}{
		"path":   imgPath,
		"colors": []string{"#FF0000", "#0000FF"},
		"color":  "#00FF00",
	}, nil)
	if err == nil {
		t.Fatal("Expected error for color outside palette")
	}
	if !strings.Contains(err.Data.(string), "color not found") {
		t.Errorf("Data: got %v", err.Data)
	}
}

func TestHandleToolsCall_ExportLayers(t *testing.T) {
	old := cfg.OutputDir
	cfg.OutputDir = t.TempDir()
	t.Cleanup(func() { cfg.OutputDir = old })

	s := New()
	imgPath := createTestImageFile(t, 6, 4, red, blue)

	var res struct {
		OutputDir string `json:"output_dir"`
		Layers    []struct {
			Color string `json:"color"`
			Path  string `json:"path"`
		} `json:"layers"`
		Skipped []string `json:"skipped"`
	}
	err := callTool(t, s, "image_export_layers", map[string]interface{}{
		"path":   imgPath,
		"colors": []string{"#FF0000", "#00FF00", "#0000FF"},
	}, &res)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if res.OutputDir != cfg.OutputDir {
		t.Errorf("OutputDir: got %s, want %s", res.OutputDir, cfg.OutputDir)
	}
	var names []string
	for _, l := range res.Layers {
		names = append(names, filepath.Base(l.Path))
		if _, err := os.Stat(l.Path); err != nil {
			t.Errorf("layer %s not written: %v", l.Color, err)
		}
	}
	if diff := cmp.Diff([]string{"handler-test_FF0000.stl", "handler-test_0000FF.stl"}, names); diff != "" {
		t.Errorf("layer files mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"#00FF00"}, res.Skipped); diff != "" {
		t.Errorf("skipped mismatch (-want +got):\n%s", diff)
	}
}

func TestExecuteTool_UnknownTool(t *testing.T) {
	s := New()
	if _, err := s.executeTool("unknown_tool", json.RawMessage(`{}`)); err == nil {
		t.Error("Expected error for unknown tool")
	}
}

func TestExecuteTool_InvalidJSON(t *testing.T) {
	s := New()
	for _, tool := range GetToolDefinitions() {
		t.Run(tool.Name, func(t *testing.T) {
			if _, err := s.executeTool(tool.Name, json.RawMessage(`{invalid}`)); err == nil {
				t.Error("Expected error for invalid JSON")
			}
		})
	}
}
