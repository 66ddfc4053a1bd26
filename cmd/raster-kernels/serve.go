package main

import (
	"log"

	"github.com/spf13/cobra"

	"github.com/ironsheep/raster-kernels/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the raster tools over MCP on stdin/stdout",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe() error {
	variants, err := configuredVariants()
	if err != nil {
		return err
	}

	debug := debugLogger()
	if debug != nil {
		log.Printf("raster-kernels MCP server v%s (built %s, commit %s)", Version, BuildTime, GitCommit)
	}

	server.Version = Version
	srv := server.New(
		server.WithLogger(log.Default()),
		server.WithDebugLogger(debug),
		server.WithVariants(variants),
	)
	return srv.Run()
}
