// Package config resolves generator settings from defaults, a YAML file,
// VORONOI_* environment variables and command-line flags, in that order.
package config

import (
	"errors"
	"fmt"
	"image"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/ironsheep/voronoi-tools/internal/geometry"
	"github.com/ironsheep/voronoi-tools/internal/render"
	"github.com/ironsheep/voronoi-tools/internal/voronoi"
)

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "VORONOI_"

// Config holds every setting of a generate run.
type Config struct {
	Resolution int      `yaml:"resolution"`
	Sites      int      `yaml:"sites"`
	Padding    int      `yaml:"padding"`
	Seed       *uint64  `yaml:"seed,omitempty"`
	SitesAt    []string `yaml:"sites_at,omitempty"`
	Engine     string   `yaml:"engine"`
	Workers    int      `yaml:"workers"`
	Palette    []string `yaml:"palette,omitempty"`
	Output     string   `yaml:"output"`
	Scale      int      `yaml:"scale"`
	Boundaries bool     `yaml:"boundaries"`
	MarkSites  bool     `yaml:"mark_sites"`
	Grid       int      `yaml:"grid"`
	LogLevel   string   `yaml:"log_level"`
}

// Default returns the built-in settings: a 256×256 grid with 4 sites and a
// 16 cell margin, written to voronoi.bmp.
func Default() Config {
	return Config{
		Resolution: 256,
		Sites:      4,
		Padding:    16,
		Engine:     voronoi.EngineBruteForce,
		Workers:    1,
		Output:     "voronoi.bmp",
		Scale:      1,
		LogLevel:   "info",
	}
}

// Load returns the defaults overlaid with the YAML file at path. An empty
// path returns the defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// ApplyEnv overrides fields from VORONOI_* variables found by lookup.
// Pass os.LookupEnv in production.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	ints := map[string]*int{
		"RESOLUTION": &c.Resolution,
		"SITES":      &c.Sites,
		"PADDING":    &c.Padding,
		"WORKERS":    &c.Workers,
		"SCALE":      &c.Scale,
		"GRID":       &c.Grid,
	}
	for name, dst := range ints {
		if v, ok := lookup(EnvPrefix + name); ok {
			n, err := strconv.Atoi(strings.TrimSpace(v))
			if err != nil {
				return fmt.Errorf("%s%s: %w", EnvPrefix, name, err)
			}
			*dst = n
		}
	}

	if v, ok := lookup(EnvPrefix + "SEED"); ok {
		n, err := strconv.ParseUint(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return fmt.Errorf("%sSEED: %w", EnvPrefix, err)
		}
		c.Seed = &n
	}
	if v, ok := lookup(EnvPrefix + "ENGINE"); ok {
		c.Engine = v
	}
	if v, ok := lookup(EnvPrefix + "OUTPUT"); ok {
		c.Output = v
	}
	if v, ok := lookup(EnvPrefix + "LOG_LEVEL"); ok {
		c.LogLevel = v
	}
	if v, ok := lookup(EnvPrefix + "PALETTE"); ok {
		c.Palette = splitList(v)
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// RegisterFlags adds the generator flags to fs with the built-in defaults.
func RegisterFlags(fs *pflag.FlagSet) {
	d := Default()
	fs.IntP("resolution", "r", d.Resolution, "grid width and height in cells")
	fs.IntP("sites", "n", d.Sites, "number of seed sites to sample")
	fs.IntP("padding", "p", d.Padding, "margin kept free of sites on every side")
	fs.Uint64("seed", 0, "random seed for site placement (default: time based)")
	fs.StringArray("site", nil, "place a site at x,y instead of sampling (repeatable)")
	fs.String("engine", d.Engine, "assignment engine (brute, kdtree)")
	fs.IntP("workers", "w", d.Workers, "goroutines used by the brute force engine")
	fs.StringSlice("palette", nil, "region colours as hex, e.g. #FF0000,#00FF00")
	fs.StringP("output", "o", d.Output, "output image path (.bmp, .png, .jpg)")
	fs.Int("scale", d.Scale, "integer upscale factor for the output image")
	fs.Bool("boundaries", false, "outline region boundaries in black")
	fs.Bool("mark-sites", false, "paint site cells black")
	fs.Int("grid", 0, "draw a labelled coordinate grid every N cells")
}

// ApplyFlags copies every flag the user set on fs into c. Unset flags leave
// the file and environment values in place.
func (c *Config) ApplyFlags(fs *pflag.FlagSet) error {
	var errs []error
	setInt := func(name string, dst *int) {
		if fs.Changed(name) {
			v, err := fs.GetInt(name)
			errs = append(errs, err)
			*dst = v
		}
	}
	setString := func(name string, dst *string) {
		if fs.Changed(name) {
			v, err := fs.GetString(name)
			errs = append(errs, err)
			*dst = v
		}
	}
	setBool := func(name string, dst *bool) {
		if fs.Changed(name) {
			v, err := fs.GetBool(name)
			errs = append(errs, err)
			*dst = v
		}
	}

	setInt("resolution", &c.Resolution)
	setInt("sites", &c.Sites)
	setInt("padding", &c.Padding)
	setInt("workers", &c.Workers)
	setInt("scale", &c.Scale)
	setInt("grid", &c.Grid)
	setString("engine", &c.Engine)
	setString("output", &c.Output)
	setBool("boundaries", &c.Boundaries)
	setBool("mark-sites", &c.MarkSites)

	if fs.Changed("seed") {
		v, err := fs.GetUint64("seed")
		errs = append(errs, err)
		c.Seed = &v
	}
	if fs.Changed("site") {
		v, err := fs.GetStringArray("site")
		errs = append(errs, err)
		c.SitesAt = v
	}
	if fs.Changed("palette") {
		v, err := fs.GetStringSlice("palette")
		errs = append(errs, err)
		c.Palette = v
	}
	return errors.Join(errs...)
}

// FixedSites parses SitesAt. It returns nil when no sites were given.
func (c Config) FixedSites() ([]image.Point, error) {
	if len(c.SitesAt) == 0 {
		return nil, nil
	}
	out := make([]image.Point, len(c.SitesAt))
	for i, s := range c.SitesAt {
		p, err := ParsePoint(s)
		if err != nil {
			return nil, err
		}
		out[i] = p
	}
	return out, nil
}

// ParsePoint parses "x,y" into a point.
func ParsePoint(s string) (image.Point, error) {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return image.Point{}, fmt.Errorf("invalid site %q: want x,y", s)
	}
	x, err := strconv.Atoi(strings.TrimSpace(xs))
	if err != nil {
		return image.Point{}, fmt.Errorf("invalid site %q: %w", s, err)
	}
	y, err := strconv.Atoi(strings.TrimSpace(ys))
	if err != nil {
		return image.Point{}, fmt.Errorf("invalid site %q: %w", s, err)
	}
	return image.Pt(x, y), nil
}

// ResolvePalette returns the configured palette, or DefaultPalette when none
// is set.
func (c Config) ResolvePalette() (voronoi.Palette, error) {
	if len(c.Palette) == 0 {
		return voronoi.DefaultPalette, nil
	}
	return voronoi.ParsePalette(c.Palette)
}

// ResolveEngine returns the configured assignment engine.
func (c Config) ResolveEngine() (voronoi.Assigner, error) {
	return voronoi.EngineByName(c.Engine, c.Workers)
}

// BuildOptions converts the settings into voronoi build options. seed is the
// random seed actually used, so a time-seeded run can be repeated.
func (c Config) BuildOptions() (opts voronoi.Options, seed uint64, err error) {
	palette, err := c.ResolvePalette()
	if err != nil {
		return opts, 0, err
	}
	engine, err := c.ResolveEngine()
	if err != nil {
		return opts, 0, err
	}
	fixed, err := c.FixedSites()
	if err != nil {
		return opts, 0, err
	}

	if c.Seed != nil {
		seed = *c.Seed
	} else {
		seed = uint64(time.Now().UnixNano())
	}

	sites := c.Sites
	if fixed != nil {
		sites = len(fixed)
	}

	return voronoi.Options{
		Resolution: c.Resolution,
		Sites:      sites,
		Padding:    c.Padding,
		Random:     voronoi.NewRandomSource(seed),
		Fixed:      fixed,
		Palette:    palette,
		Engine:     engine,
	}, seed, nil
}

// Validate reports the first setting that would make a run fail, before
// any work is done.
func (c Config) Validate() error {
	if err := geometry.ValidateBounds(c.Resolution, c.Padding); err != nil {
		return err
	}
	if c.Sites < 0 {
		return fmt.Errorf("%w: %d", voronoi.ErrNegativeSiteCount, c.Sites)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must not be negative: %d", c.Workers)
	}
	if c.Scale < 0 {
		return fmt.Errorf("scale must not be negative: %d", c.Scale)
	}
	if c.Scale > render.MaxImageSide/c.Resolution {
		return fmt.Errorf("scale %d makes a %dx%d grid wider than %d pixels",
			c.Scale, c.Resolution, c.Resolution, render.MaxImageSide)
	}
	if c.Grid < 0 {
		return fmt.Errorf("grid spacing must not be negative: %d", c.Grid)
	}
	if _, err := c.ResolveEngine(); err != nil {
		return err
	}
	if _, err := c.ResolvePalette(); err != nil {
		return err
	}
	if _, err := c.FixedSites(); err != nil {
		return err
	}
	if c.Output != "" {
		if _, err := render.FormatFromPath(c.Output); err != nil {
			return err
		}
	}
	if hclog.LevelFromString(c.LogLevel) == hclog.NoLevel {
		return fmt.Errorf("unknown log level: %s", c.LogLevel)
	}
	return nil
}
