package cli

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/ironsheep/voronoi-tools/internal/config"
	"github.com/ironsheep/voronoi-tools/internal/render"
	"github.com/ironsheep/voronoi-tools/internal/voronoi"
)

func newGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Build a diagram and write it as an image",
		Example: `  voronoi generate -r 512 -n 12 -p 32 -o regions.png
  voronoi generate --seed 42 --boundaries --scale 4 -o big.bmp
  voronoi generate --site 40,40 --site 200,90 --palette '#264653,#E9C46A'`,
		Args: cobra.NoArgs,
		RunE: runGenerate,
	}
	config.RegisterFlags(cmd.Flags())
	return cmd
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd, os.LookupEnv)
	if err != nil {
		return err
	}
	if cfg.Output == "" {
		return errors.New("no output path")
	}
	logger := newLogger(cfg.LogLevel, cmd.ErrOrStderr())

	opts, seed, err := cfg.BuildOptions()
	if err != nil {
		return err
	}
	if cfg.Seed == nil && opts.Fixed == nil {
		logger.Info("no seed given; using time based seed", "seed", seed)
	}

	d, err := voronoi.Build(cmd.Context(), opts)
	if err != nil {
		return err
	}

	status := d.Status()
	logger.Info("built diagram",
		"resolution", status.Resolution,
		"padding", status.Padding,
		"sites", status.SiteCount,
		"palette", status.PaletteSize,
		"engine", cfg.Engine,
		"seed", seed)
	for _, site := range status.Sites {
		logger.Debug("site", "ordinal", site.Ordinal, "x", site.X, "y", site.Y, "color", site.Color)
	}
	if err := voronoi.CheckSiteCount(status.Resolution, status.SiteCount, status.Padding); err != nil {
		logger.Warn("some sites share a position", "error", err)
	}

	img := render.Compose(d, render.ComposeOptions{
		Boundaries:  cfg.Boundaries,
		MarkSeeds:   cfg.MarkSites,
		GridSpacing: cfg.Grid,
	})
	res, err := render.Save(cfg.Output, img, render.SaveOptions{Scale: cfg.Scale})
	if err != nil {
		return err
	}
	logger.Info("wrote image", "path", res.Path, "format", res.Format, "width", res.Width, "height", res.Height)
	return nil
}
