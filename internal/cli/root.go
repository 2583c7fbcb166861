// Package cli provides the command-line interface for the Voronoi generator.
package cli

import (
	"fmt"
	"io"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/ironsheep/voronoi-tools/internal/config"
)

// BuildInfo is the version information stamped into the binary by ldflags.
type BuildInfo struct {
	Version   string
	BuildTime string
	GitCommit string
}

func (b BuildInfo) String() string {
	return fmt.Sprintf("voronoi %s\n  Build time: %s\n  Git commit: %s", b.Version, b.BuildTime, b.GitCommit)
}

// NewRootCmd builds the command tree. Each call returns independent
// commands, so tests can execute them in isolation.
func NewRootCmd(info BuildInfo) *cobra.Command {
	root := &cobra.Command{
		Use:   "voronoi",
		Short: "Discrete Voronoi diagram generator",
		Long: `voronoi scatters seed sites over a square grid, assigns every cell to its
nearest site and writes the coloured regions as an image.

Settings are read from defaults, then --config, then VORONOI_* environment
variables, then flags.`,
		Version:      info.Version,
		SilenceUsage: true,
	}

	root.PersistentFlags().String("config", "", "YAML config file")
	root.PersistentFlags().String("log-level", "", "log level (trace, debug, info, warn, error)")
	root.SetVersionTemplate(info.String() + "\n")

	root.AddCommand(newGenerateCmd())
	root.AddCommand(newServeCmd(info))
	root.AddCommand(newPaletteCmd())
	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), info.String())
		},
	})
	return root
}

// loadConfig layers the config file, environment and the flags set on cmd,
// then validates the result.
func loadConfig(cmd *cobra.Command, lookup func(string) (string, bool)) (config.Config, error) {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return config.Config{}, err
	}

	cfg, err := config.Load(path)
	if err != nil {
		return cfg, err
	}
	if err := cfg.ApplyEnv(lookup); err != nil {
		return cfg, err
	}
	if err := cfg.ApplyFlags(cmd.Flags()); err != nil {
		return cfg, err
	}
	if cmd.Flags().Changed("log-level") {
		if cfg.LogLevel, err = cmd.Flags().GetString("log-level"); err != nil {
			return cfg, err
		}
	}
	return cfg, cfg.Validate()
}

// newLogger writes human-readable logs to w. stdout is reserved for
// command output and the MCP protocol.
func newLogger(level string, w io.Writer) hclog.Logger {
	return hclog.New(&hclog.LoggerOptions{
		Name:   "voronoi",
		Output: w,
		Level:  hclog.LevelFromString(level),
	})
}
