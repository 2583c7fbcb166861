package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/ironsheep/voronoi-tools/internal/server"
)

func newServeCmd(info BuildInfo) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the MCP server on stdin/stdout",
		Long: `serve speaks JSON-RPC 2.0 (Model Context Protocol) on stdin and stdout so
MCP clients can generate and inspect diagrams. Logs go to stderr.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, os.LookupEnv)
			if err != nil {
				return err
			}
			logger := newLogger(cfg.LogLevel, cmd.ErrOrStderr())
			logger.Debug("starting MCP server", "version", info.Version, "built", info.BuildTime, "commit", info.GitCommit)

			server.Version = info.Version
			srv := server.New(logger.Named("mcp"))
			return srv.Serve(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}
