package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ironsheep/voronoi-tools/internal/render"
)

func newPaletteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "palette",
		Short: "Print the region colours in ordinal order",
		Long: `palette prints the effective palette: --palette, VORONOI_PALETTE or the
config file if set, otherwise the built-in 14 colours. Site N takes colour
N modulo the palette size.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, os.LookupEnv)
			if err != nil {
				return err
			}
			palette, err := cfg.ResolvePalette()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for i, c := range palette.Colors() {
				desc := render.DescribeColor(c)
				fmt.Fprintf(out, "%2d  %s  rgb(%3d,%3d,%3d)  hsl(%3d,%3d%%,%3d%%)\n",
					i, desc.Hex, c.R, c.G, c.B, desc.HSL.H, desc.HSL.S, desc.HSL.L)
			}
			return nil
		},
	}
	cmd.Flags().StringSlice("palette", nil, "region colours as hex, e.g. #FF0000,#00FF00")
	return cmd
}
