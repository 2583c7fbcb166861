package server

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ironsheep/voronoi-tools/internal/render"
	"github.com/ironsheep/voronoi-tools/internal/voronoi"
)

// callTool sends a tools/call request through handleRequest.
func callTool(t *testing.T, s *Server, name string, args interface{}) *MCPResponse {
	t.Helper()

	params := map[string]interface{}{
		"name":      name,
		"arguments": args,
	}
	paramsJSON, err := json.Marshal(params)
	if err != nil {
		t.Fatalf("failed to marshal params: %v", err)
	}

	resp := s.handleRequest(&MCPRequest{
		JSONRPC: "2.0",
		ID:      1,
		Method:  "tools/call",
		Params:  paramsJSON,
	})
	if resp == nil {
		t.Fatal("handleRequest returned nil")
	}
	return resp
}

// decodeResult unmarshals the text content of a successful tool response.
func decodeResult(t *testing.T, resp *MCPResponse, v interface{}) {
	t.Helper()

	if resp.Error != nil {
		t.Fatalf("Unexpected error: %+v", resp.Error)
	}
	result, ok := resp.Result.(map[string]interface{})
	if !ok {
		t.Fatal("Result should be a map")
	}
	content, ok := result["content"].([]map[string]interface{})
	if !ok || len(content) != 1 {
		t.Fatalf("content: got %#v", result["content"])
	}
	text, ok := content[0]["text"].(string)
	if !ok {
		t.Fatal("content text should be a string")
	}
	if err := json.Unmarshal([]byte(text), v); err != nil {
		t.Fatalf("failed to decode tool result: %v\n%s", err, text)
	}
}

func expectToolError(t *testing.T, resp *MCPResponse) {
	t.Helper()
	if resp.Error == nil {
		t.Fatal("Expected error response")
	}
	if resp.Error.Code != -32000 {
		t.Errorf("Error code: got %d, want -32000", resp.Error.Code)
	}
}

// generate builds a 64x64 diagram with sites at (20,20) and (40,40).
func generate(t *testing.T, s *Server, extra map[string]interface{}) GenerateResult {
	t.Helper()
	args := map[string]interface{}{
		"resolution": 64,
		"padding":    16,
		"seed":       7,
		"sites_at": []map[string]int{
			{"x": 20, "y": 20},
			{"x": 40, "y": 40},
		},
	}
	for k, v := range extra {
		args[k] = v
	}

	var res GenerateResult
	decodeResult(t, callTool(t, s, "voronoi_generate", args), &res)
	return res
}

func TestHandleGenerate(t *testing.T) {
	s := New(nil)
	res := generate(t, s, nil)

	if res.ID != "diagram-1" {
		t.Errorf("ID: got %s, want diagram-1", res.ID)
	}
	if res.Seed != 7 {
		t.Errorf("Seed: got %d, want 7", res.Seed)
	}
	if res.Saved != nil {
		t.Errorf("Saved: got %+v, want nil without output", res.Saved)
	}

	want := voronoi.Status{
		Resolution: 64,
		Padding:    16,
		SiteCount:  2,
		Sites: []voronoi.SiteStatus{
			{Ordinal: 0, X: 20, Y: 20, Color: "#FF0000"},
			{Ordinal: 1, X: 40, Y: 40, Color: "#00FF00"},
		},
		PaletteSize: 14,
	}
	if diff := cmp.Diff(want, res.Status); diff != "" {
		t.Errorf("Status mismatch (-want +got):\n%s", diff)
	}

	second := generate(t, s, nil)
	if second.ID != "diagram-2" {
		t.Errorf("second ID: got %s, want diagram-2", second.ID)
	}
}

func TestHandleGenerate_SampledSitesRepeatWithSeed(t *testing.T) {
	s := New(nil)
	args := map[string]interface{}{"resolution": 32, "sites": 5, "padding": 4, "seed": 11}

	var a, b GenerateResult
	decodeResult(t, callTool(t, s, "voronoi_generate", args), &a)
	decodeResult(t, callTool(t, s, "voronoi_generate", args), &b)

	if a.Status.SiteCount != 5 {
		t.Fatalf("SiteCount: got %d, want 5", a.Status.SiteCount)
	}
	if diff := cmp.Diff(a.Status.Sites, b.Status.Sites); diff != "" {
		t.Errorf("same seed gave different sites (-first +second):\n%s", diff)
	}
	for _, site := range a.Status.Sites {
		if site.X < 4 || site.X >= 28 || site.Y < 4 || site.Y >= 28 {
			t.Errorf("site %+v outside padded interior", site)
		}
	}
}

func TestHandleGenerate_Degenerate(t *testing.T) {
	s := New(nil)
	var res GenerateResult
	decodeResult(t, callTool(t, s, "voronoi_generate", map[string]interface{}{
		"resolution": 4, "sites": 5, "padding": 1, "seed": 1,
	}), &res)

	if !res.Status.Degenerate {
		t.Error("Degenerate: got false, want true")
	}
	if res.Status.SiteCount != 5 {
		t.Errorf("SiteCount: got %d, want 5", res.Status.SiteCount)
	}
}

func TestHandleGenerate_Errors(t *testing.T) {
	tests := []struct {
		name string
		args map[string]interface{}
	}{
		{"padding too large", map[string]interface{}{"resolution": 64, "padding": 32}},
		{"zero resolution", map[string]interface{}{"resolution": 0, "padding": 0}},
		{"negative sites", map[string]interface{}{"sites": -1}},
		{"unknown engine", map[string]interface{}{"engine": "fortune"}},
		{"bad palette", map[string]interface{}{"palette": []string{"nope"}}},
		{"bad output format", map[string]interface{}{"output": "/tmp/x.gif"}},
		{"site in padding", map[string]interface{}{
			"resolution": 64, "padding": 16,
			"sites_at": []map[string]int{{"x": 2, "y": 2}},
		}},
		{"malformed arguments", map[string]interface{}{"resolution": "big"}},
		{"huge padding", map[string]interface{}{"resolution": 10, "padding": 1 << 62, "sites": 1, "seed": 1}},
		{"resolution too large", map[string]interface{}{"resolution": 200000, "padding": 0}},
		{"scale too large", map[string]interface{}{"resolution": 64, "padding": 16, "scale": 1 << 40, "output": "/tmp/x.png"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(nil)
			expectToolError(t, callTool(t, s, "voronoi_generate", tt.args))
			if len(s.diagrams) != 0 {
				t.Errorf("failed generate stored %d diagrams", len(s.diagrams))
			}
		})
	}
}

func TestHandleGenerate_Save(t *testing.T) {
	s := New(nil)
	path := filepath.Join(t.TempDir(), "diagram.png")
	res := generate(t, s, map[string]interface{}{
		"output":     path,
		"scale":      2,
		"boundaries": true,
	})

	want := &render.SaveResult{Path: path, Format: render.FormatPNG, Width: 128, Height: 128}
	if diff := cmp.Diff(want, res.Saved); diff != "" {
		t.Errorf("Saved mismatch (-want +got):\n%s", diff)
	}
}

func TestHandleStatus(t *testing.T) {
	s := New(nil)
	gen := generate(t, s, nil)

	var status voronoi.Status
	decodeResult(t, callTool(t, s, "voronoi_status", map[string]interface{}{"id": gen.ID}), &status)
	if diff := cmp.Diff(gen.Status, status); diff != "" {
		t.Errorf("Status mismatch (-generate +status):\n%s", diff)
	}

	expectToolError(t, callTool(t, s, "voronoi_status", map[string]interface{}{"id": "diagram-99"}))
}

type cellJSON struct {
	X        int      `json:"x"`
	Y        int      `json:"y"`
	Kind     string   `json:"kind"`
	Ordinal  *int     `json:"ordinal"`
	Site     *point   `json:"site"`
	Distance *float64 `json:"distance"`
	Color    struct {
		Hex string `json:"hex"`
	} `json:"color"`
}

func TestHandleCell(t *testing.T) {
	s := New(nil)
	gen := generate(t, s, nil)

	tests := []struct {
		name        string
		x, y        int
		wantKind    string
		wantOrdinal int
		wantSite    point
		wantDist    float64
		wantHex     string
	}{
		{"seed", 20, 20, "seed", 0, point{20, 20}, 0, "#FF0000"},
		{"near first", 23, 24, "interior", 0, point{20, 20}, 5, "#FF0000"},
		{"far corner", 63, 63, "interior", 1, point{40, 40}, 23 * 1.4142135623730951, "#00FF00"},
		// (30,30) is 10√2 from both sites; the lower ordinal wins.
		{"tie", 30, 30, "interior", 0, point{20, 20}, 10 * 1.4142135623730951, "#FF0000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c cellJSON
			decodeResult(t, callTool(t, s, "voronoi_cell", map[string]interface{}{
				"id": gen.ID, "x": tt.x, "y": tt.y,
			}), &c)

			if c.Kind != tt.wantKind {
				t.Errorf("Kind: got %s, want %s", c.Kind, tt.wantKind)
			}
			if c.Ordinal == nil || *c.Ordinal != tt.wantOrdinal {
				t.Errorf("Ordinal: got %v, want %d", c.Ordinal, tt.wantOrdinal)
			}
			if c.Site == nil || *c.Site != tt.wantSite {
				t.Errorf("Site: got %v, want %v", c.Site, tt.wantSite)
			}
			if c.Distance == nil || !approxEqual(*c.Distance, tt.wantDist) {
				t.Errorf("Distance: got %v, want %v", c.Distance, tt.wantDist)
			}
			if c.Color.Hex != tt.wantHex {
				t.Errorf("Color: got %s, want %s", c.Color.Hex, tt.wantHex)
			}
		})
	}
}

func approxEqual(a, b float64) bool {
	d := a - b
	return d < 1e-9 && d > -1e-9
}

func TestHandleCell_NoSites(t *testing.T) {
	s := New(nil)
	var gen GenerateResult
	decodeResult(t, callTool(t, s, "voronoi_generate", map[string]interface{}{
		"resolution": 8, "sites": 0, "padding": 1,
	}), &gen)

	var c cellJSON
	decodeResult(t, callTool(t, s, "voronoi_cell", map[string]interface{}{"id": gen.ID, "x": 3, "y": 3}), &c)
	if c.Ordinal != nil || c.Site != nil || c.Distance != nil {
		t.Errorf("unowned cell reported a site: %+v", c)
	}
	if c.Color.Hex != "#FFFFFF" {
		t.Errorf("Color: got %s, want #FFFFFF", c.Color.Hex)
	}
}

func TestHandleCell_OutOfBounds(t *testing.T) {
	s := New(nil)
	gen := generate(t, s, nil)

	for _, p := range []point{{64, 0}, {0, 64}, {-1, 5}} {
		expectToolError(t, callTool(t, s, "voronoi_cell", map[string]interface{}{
			"id": gen.ID, "x": p.X, "y": p.Y,
		}))
	}
}

func TestHandleCoverage(t *testing.T) {
	s := New(nil)
	gen := generate(t, s, nil)

	var res struct {
		ID       string                 `json:"id"`
		Coverage []voronoi.SeedCoverage `json:"coverage"`
	}
	decodeResult(t, callTool(t, s, "voronoi_coverage", map[string]interface{}{"id": gen.ID}), &res)

	if len(res.Coverage) != 2 {
		t.Fatalf("coverage entries: got %d, want 2", len(res.Coverage))
	}
	// The bisector is x+y=60; ties on it go to ordinal 0, so ordinal 0 owns
	// every cell with x+y <= 60.
	if res.Coverage[0].Cells != 1891 || res.Coverage[1].Cells != 64*64-1891 {
		t.Errorf("cells: got %d and %d, want 1891 and %d", res.Coverage[0].Cells, res.Coverage[1].Cells, 64*64-1891)
	}
	if res.Coverage[0].Color != "#FF0000" {
		t.Errorf("Color: got %s, want #FF0000", res.Coverage[0].Color)
	}

	expectToolError(t, callTool(t, s, "voronoi_coverage", map[string]interface{}{"id": "nope"}))
}

func TestHandlePalette(t *testing.T) {
	s := New(nil)

	var def PaletteResult
	decodeResult(t, callTool(t, s, "voronoi_palette", map[string]interface{}{}), &def)
	if def.Size != 14 || len(def.Colors) != 14 {
		t.Fatalf("default palette size: got %d/%d, want 14", def.Size, len(def.Colors))
	}
	if def.Colors[0].Hex != "#FF0000" || def.Colors[13].Hex != "#000080" {
		t.Errorf("default palette ends: got %s .. %s", def.Colors[0].Hex, def.Colors[13].Hex)
	}
	if def.Colors[2].HSL != (render.HSLColor{H: 240, S: 100, L: 50}) {
		t.Errorf("blue HSL: got %+v", def.Colors[2].HSL)
	}

	gen := generate(t, s, map[string]interface{}{"palette": []string{"#010203", "#0A0B0C"}})
	var custom PaletteResult
	decodeResult(t, callTool(t, s, "voronoi_palette", map[string]interface{}{"id": gen.ID}), &custom)
	if custom.Size != 2 || custom.Colors[1].Hex != "#0A0B0C" {
		t.Errorf("custom palette: got %+v", custom)
	}

	expectToolError(t, callTool(t, s, "voronoi_palette", map[string]interface{}{"id": "nope"}))
}

func TestHandleSampleColor(t *testing.T) {
	s := New(nil)
	path := filepath.Join(t.TempDir(), "sample.bmp")
	generate(t, s, map[string]interface{}{"output": path})

	var c render.ColorResult
	decodeResult(t, callTool(t, s, "voronoi_sample_color", map[string]interface{}{"path": path, "x": 0, "y": 0}), &c)
	if c.Hex != "#FF0000" {
		t.Errorf("first sample: got %s, want #FF0000", c.Hex)
	}

	// Overwriting the file must not serve the stale cached image.
	generate(t, s, map[string]interface{}{"output": path, "palette": []string{"#123456"}})
	decodeResult(t, callTool(t, s, "voronoi_sample_color", map[string]interface{}{"path": path, "x": 0, "y": 0}), &c)
	if c.Hex != "#123456" {
		t.Errorf("after regenerate: got %s, want #123456", c.Hex)
	}
}

func TestHandleSampleColor_Errors(t *testing.T) {
	s := New(nil)
	expectToolError(t, callTool(t, s, "voronoi_sample_color", map[string]interface{}{
		"path": filepath.Join(t.TempDir(), "missing.png"), "x": 0, "y": 0,
	}))

	path := filepath.Join(t.TempDir(), "small.png")
	generate(t, s, map[string]interface{}{"output": path})
	expectToolError(t, callTool(t, s, "voronoi_sample_color", map[string]interface{}{"path": path, "x": 64, "y": 0}))
}

func TestHandleToolsCall_UnknownTool(t *testing.T) {
	s := New(nil)
	expectToolError(t, callTool(t, s, "image_ocr_full", map[string]interface{}{}))
}

func TestHandleToolsCall_InvalidParams(t *testing.T) {
	s := New(nil)
	resp := s.handleRequest(&MCPRequest{
		JSONRPC: "2.0",
		ID:      1,
		Method:  "tools/call",
		Params:  json.RawMessage(`"not an object"`),
	})
	if resp.Error == nil || resp.Error.Code != -32602 {
		t.Errorf("expected -32602, got %+v", resp.Error)
	}
}
