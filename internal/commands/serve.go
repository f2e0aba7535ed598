package commands

import (
	"github.com/spf13/cobra"

	"github.com/keshon/rewind/internal/config"
	"github.com/keshon/rewind/internal/server"
)

var serveHTTP bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the MCP server (stdio by default)",
	Long:  "Run the MCP server exposing the tracking tools. By default it speaks\nthe stdio transport; --http serves streamable HTTP on serve.http_addr.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		srv := server.New()
		if serveHTTP {
			return srv.ServeHTTP(config.HTTPAddr())
		}
		return srv.ServeStdio()
	},
}

func init() {
	serveCmd.Flags().BoolVar(&serveHTTP, "http", false, "serve over HTTP instead of stdio")
	rootCmd.AddCommand(serveCmd)
}
