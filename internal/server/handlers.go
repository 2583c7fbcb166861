package server

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/ironsheep/voronoi-tools/internal/config"
	"github.com/ironsheep/voronoi-tools/internal/render"
	"github.com/ironsheep/voronoi-tools/internal/voronoi"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "voronoi_generate", "voronoi_cell").
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
		s.logger.Warn("tool failed", "tool", params.Name, "error", err)
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
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	if len(args) == 0 {
		args = json.RawMessage("{}")
	}

	switch name {
	// Generation
	case "voronoi_generate":
		return s.handleGenerate(args)

	// Inspection
	case "voronoi_status":
		return s.handleStatus(args)
	case "voronoi_cell":
		return s.handleCell(args)
	case "voronoi_coverage":
		return s.handleCoverage(args)

	// Color Operations
	case "voronoi_palette":
		return s.handlePalette(args)
	case "voronoi_sample_color":
		return s.handleSampleColor(args)

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
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
// On marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// === Generation Handlers ===

type point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// generateArgs mirrors config.Config. Pointer fields distinguish "not
// given" from zero so the defaults survive.
type generateArgs struct {
	Resolution *int     `json:"resolution"`
	Sites      *int     `json:"sites"`
	Padding    *int     `json:"padding"`
	Seed       *uint64  `json:"seed"`
	SitesAt    []point  `json:"sites_at"`
	Engine     string   `json:"engine"`
	Palette    []string `json:"palette"`
	Output     string   `json:"output"`
	Scale      int      `json:"scale"`
	Boundaries bool     `json:"boundaries"`
	MarkSites  bool     `json:"mark_sites"`
	Grid       int      `json:"grid"`
}

func (a generateArgs) config() config.Config {
	cfg := config.Default()
	cfg.Output = a.Output
	if a.Resolution != nil {
		cfg.Resolution = *a.Resolution
	}
	if a.Sites != nil {
		cfg.Sites = *a.Sites
	}
	if a.Padding != nil {
		cfg.Padding = *a.Padding
	}
	cfg.Seed = a.Seed
	for _, p := range a.SitesAt {
		cfg.SitesAt = append(cfg.SitesAt, strconv.Itoa(p.X)+","+strconv.Itoa(p.Y))
	}
	if a.Engine != "" {
		cfg.Engine = a.Engine
	}
	cfg.Palette = a.Palette
	if a.Scale != 0 {
		cfg.Scale = a.Scale
	}
	cfg.Boundaries = a.Boundaries
	cfg.MarkSites = a.MarkSites
	cfg.Grid = a.Grid
	return cfg
}

// GenerateResult is returned by voronoi_generate.
type GenerateResult struct {
	ID     string             `json:"id"`
	Seed   uint64             `json:"seed"`
	Status voronoi.Status     `json:"status"`
	Saved  *render.SaveResult `json:"saved,omitempty"`
}

func (s *Server) handleGenerate(args json.RawMessage) (interface{}, error) {
	var a generateArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	cfg := a.config()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	opts, seed, err := cfg.BuildOptions()
	if err != nil {
		return nil, err
	}

	d, err := voronoi.Build(s.ctx, opts)
	if err != nil {
		return nil, err
	}

	result := &GenerateResult{
		ID:     s.store(d),
		Seed:   seed,
		Status: d.Status(),
	}
	s.logger.Info("generated diagram", "id", result.ID, "resolution", cfg.Resolution,
		"sites", result.Status.SiteCount, "seed", seed)
	if result.Status.Degenerate {
		s.logger.Warn("more sites than interior cells; some sites share a position", "id", result.ID)
	}

	if cfg.Output != "" {
		img := render.Compose(d, render.ComposeOptions{
			Boundaries:  cfg.Boundaries,
			MarkSeeds:   cfg.MarkSites,
			GridSpacing: cfg.Grid,
		})
		saved, err := render.Save(cfg.Output, img, render.SaveOptions{Scale: cfg.Scale})
		if err != nil {
			return nil, err
		}
		// A previous sample of the same path is stale now.
		s.cache.Evict(cfg.Output)
		result.Saved = saved
	}

	return result, nil
}

// === Inspection Handlers ===

type diagramArgs struct {
	ID string `json:"id"`
}

func (s *Server) handleStatus(args json.RawMessage) (interface{}, error) {
	var a diagramArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	d, err := s.diagram(a.ID)
	if err != nil {
		return nil, err
	}
	return d.Status(), nil
}

type cellArgs struct {
	ID string `json:"id"`
	X  int    `json:"x"`
	Y  int    `json:"y"`
}

// CellResult describes one grid cell. Site fields are omitted for a cell
// that no seed owns.
type CellResult struct {
	X        int                `json:"x"`
	Y        int                `json:"y"`
	Kind     voronoi.Kind       `json:"kind"`
	Ordinal  *int               `json:"ordinal,omitempty"`
	Site     *point             `json:"site,omitempty"`
	Distance *float64           `json:"distance,omitempty"`
	Color    render.ColorResult `json:"color"`
}

func (s *Server) handleCell(args json.RawMessage) (interface{}, error) {
	var a cellArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	d, err := s.diagram(a.ID)
	if err != nil {
		return nil, err
	}

	grid := d.Grid()
	if !grid.Contains(a.X, a.Y) {
		return nil, fmt.Errorf("coordinates (%d,%d) outside %dx%d grid", a.X, a.Y, grid.Size(), grid.Size())
	}

	c := grid.At(a.X, a.Y)
	result := &CellResult{
		X:     a.X,
		Y:     a.Y,
		Kind:  c.Kind,
		Color: render.DescribeColor(c.Color),
	}
	if ordinal, pos, ok := c.Site(); ok {
		dist := c.Distance
		result.Ordinal = &ordinal
		result.Site = &point{X: pos.X, Y: pos.Y}
		result.Distance = &dist
	}
	return result, nil
}

func (s *Server) handleCoverage(args json.RawMessage) (interface{}, error) {
	var a diagramArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	d, err := s.diagram(a.ID)
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{
		"id":       a.ID,
		"coverage": d.Coverage(),
	}, nil
}

// === Color Operation Handlers ===

// PaletteResult lists palette entries in ordinal order.
type PaletteResult struct {
	Size   int                  `json:"size"`
	Colors []render.ColorResult `json:"colors"`
}

func (s *Server) handlePalette(args json.RawMessage) (interface{}, error) {
	var a diagramArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	palette := voronoi.DefaultPalette
	if a.ID != "" {
		d, err := s.diagram(a.ID)
		if err != nil {
			return nil, err
		}
		palette = d.Palette()
	}
	return describePalette(palette), nil
}

func describePalette(p voronoi.Palette) *PaletteResult {
	colors := p.Colors()
	out := &PaletteResult{
		Size:   len(colors),
		Colors: make([]render.ColorResult, len(colors)),
	}
	for i, c := range colors {
		out.Colors[i] = render.DescribeColor(c)
	}
	return out
}

type sampleColorArgs struct {
	Path string `json:"path"`
	X    int    `json:"x"`
	Y    int    `json:"y"`
}

func (s *Server) handleSampleColor(args json.RawMessage) (interface{}, error) {
	var a sampleColorArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return render.SampleColor(img, a.X, a.Y)
}
