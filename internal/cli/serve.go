package cli

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/printforge/printboard/internal/server"
	"github.com/printforge/printboard/pkg/cache"
	"github.com/printforge/printboard/pkg/pipeline"
)

// serveCommand creates the serve command, which runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr       string
		redisAddr  string
		redisScope string
		mongoURI   string
		mongoDB    string
		presets    string
		noCache    bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		Long: `Serve exposes the generation pipeline over HTTP. Generated boards are
kept in memory unless --mongo points at a MongoDB instance; the artifact
cache lives on disk unless --redis points at a Redis instance.`,
		Example: `  printboard serve --addr :8080
  printboard serve --redis localhost:6379 --mongo mongodb://localhost:27017`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := withLogger(cmd.Context(), c.Logger)

			store, err := c.newServeCache(ctx, redisAddr, noCache)
			if err != nil {
				return err
			}

			// A shared Redis instance may serve several deployments, so
			// the keys carry a per-deployment scope prefix.
			var keyer cache.Keyer
			if redisAddr != "" && redisScope != "" {
				keyer = cache.NewScopedKeyer(nil, redisScope+":")
			}

			runner := pipeline.NewRunner(store, keyer, c.Logger)
			defer runner.Close()

			boards, err := c.newBoardStore(ctx, mongoURI, mongoDB)
			if err != nil {
				return err
			}
			defer boards.Close(context.Background())

			srv := server.New(server.Config{
				Runner:     runner,
				Store:      boards,
				Logger:     c.Logger,
				PresetsDir: presets,
			})

			httpServer := &http.Server{
				Addr:              addr,
				Handler:           srv.Handler(),
				ReadHeaderTimeout: 10 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				c.Logger.Info("listening", "addr", addr)
				errCh <- httpServer.ListenAndServe()
			}()

			select {
			case <-ctx.Done():
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				if err := httpServer.Shutdown(shutdownCtx); err != nil {
					return err
				}
				c.Logger.Info("server stopped")
				return nil
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			}
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&redisAddr, "redis", "", "Redis address for the artifact cache (host:port)")
	cmd.Flags().StringVar(&redisScope, "redis-scope", appName, "key prefix isolating this deployment in a shared Redis")
	cmd.Flags().StringVar(&mongoURI, "mongo", "", "MongoDB URI for board persistence")
	cmd.Flags().StringVar(&mongoDB, "mongo-db", "printboard", "MongoDB database name")
	cmd.Flags().StringVar(&presets, "presets", "examples", "directory of TOML presets served via the API")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the artifact cache")

	return cmd
}

// newServeCache picks the cache backend for the server: Redis when
// configured, otherwise the file cache used by the CLI commands.
func (c *CLI) newServeCache(ctx context.Context, redisAddr string, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	if redisAddr != "" {
		c.Logger.Info("using redis cache", "addr", redisAddr)
		return cache.NewRedisCache(ctx, redisAddr)
	}
	return newCache(false)
}

// newBoardStore picks the board store: MongoDB when configured, otherwise
// an in-memory store that empties on restart.
func (c *CLI) newBoardStore(ctx context.Context, mongoURI, mongoDB string) (server.Store, error) {
	if mongoURI != "" {
		c.Logger.Info("using mongodb store", "database", mongoDB)
		return server.NewMongoStore(ctx, mongoURI, mongoDB)
	}
	return server.NewMemoryStore(), nil
}
