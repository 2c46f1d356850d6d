package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/matzehuels/archflow/internal/server"
	"github.com/matzehuels/archflow/pkg/cache"
	"github.com/matzehuels/archflow/pkg/diagram"
	"github.com/matzehuels/archflow/pkg/observability"
	"github.com/matzehuels/archflow/pkg/pipeline"
	"github.com/matzehuels/archflow/pkg/session"
)

// serverKeyPrefix keeps server artifacts apart from CLI artifacts when both
// share a cache backend.
const serverKeyPrefix = "server:"

func (c *CLI) serveCommand() *cobra.Command {
	var addr, modeStr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the diagram page and HTTP API",
		Long: `Serve the interactive diagram page, the rendering API, per-client presenter
sessions and Prometheus metrics.

Artifacts are cached in Redis when redis_addr is configured, otherwise in the
local cache directory.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if addr == "" {
				addr = c.Config.Addr
			}
			mode := c.defaultMode()
			if modeStr != "" {
				m, err := diagram.ParseMode(modeStr)
				if err != nil {
					return err
				}
				mode = m
			}
			return c.runServe(cmd.Context(), cmd.OutOrStdout(), addr, mode)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, 127.0.0.1:8080)")
	cmd.Flags().StringVarP(&modeStr, "mode", "m", "", "view mode when a request names none")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, stdout io.Writer, addr string, mode diagram.Mode) error {
	logger := loggerFromContext(ctx)

	ch, err := c.serverCache(ctx)
	if err != nil {
		return err
	}
	runner := pipeline.NewRunner(ch, cache.NewScopedKeyer(nil, serverKeyPrefix), logger)
	defer runner.Close()

	metrics := observability.NewCollector(appName)
	observability.SetPipelineHooks(metrics)
	observability.SetCacheHooks(metrics)
	observability.SetSessionHooks(metrics)
	defer observability.Reset()

	sessions := session.NewMemoryStore(c.Config.SessionTTL)
	srv := server.New(runner, sessions, metrics, logger, server.Options{
		Mode:            mode,
		CORSOrigins:     c.Config.CORSOrigins,
		SweepInterval:   c.Config.SweepInterval,
		ShutdownTimeout: c.Config.ShutdownTimeout,
	})

	out := newPrinter(stdout)
	out.success("Serving %s view on %s", mode, StyleLink.Render("http://"+addr))
	out.detail("Press Ctrl+C to stop")
	return srv.Run(ctx, addr)
}

// serverCache picks the artifact cache backend: Redis when configured,
// falling back to the file cache when Redis cannot be reached.
func (c *CLI) serverCache(ctx context.Context) (cache.Cache, error) {
	logger := loggerFromContext(ctx)
	if c.Config.RedisAddr != "" && !c.Config.NoCache {
		rc, err := cache.NewRedisCache(ctx, cache.RedisOptions{
			Addr:     c.Config.RedisAddr,
			Password: c.Config.RedisPassword,
		})
		if err == nil {
			logger.Info("using redis cache", "addr", c.Config.RedisAddr)
			return rc, nil
		}
		logger.Warn("redis unavailable, using file cache", "err", err)
	}
	ch, err := c.newFileCache(false)
	if err != nil {
		return nil, fmt.Errorf("open cache: %w", err)
	}
	return ch, nil
}
