package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/huangsam/benchboard/internal/webapi"
	"github.com/spf13/cobra"
)

// serveCmd runs the read-only HTTP API.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the read-only JSON API over HTTP",
	Long: `Serve models, benchmarks, leaderboards, comparisons, publishers and tags
as JSON. Every request reads its own snapshot of the content directory,
so record edits show up without a restart.

Endpoints:
  GET /health
  GET /api/v1/models?search=&publisher=&sort=&page=&page_size=
  GET /api/v1/models/options?search=
  GET /api/v1/stats?model=
  GET /api/v1/benchmarks?tag=&search=&sort=&page=&page_size=
  GET /api/v1/benchmarks/{benchmarkID}
  GET /api/v1/compare?models=a,b
  GET /api/v1/publishers
  GET /api/v1/publishers/{name}?sort=
  GET /api/v1/tags

Examples:
  benchboard serve --addr :8080
  benchboard serve --cors-origins https://example.com --log-file ~/.benchboard/server.log`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(rootCtx, os.Interrupt, syscall.SIGTERM)
		defer stop()
		return webapi.Serve(ctx, cfg, cacheManager)
	},
}
