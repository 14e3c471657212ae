package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/eskillate/lowpop/internal/server"
	"github.com/eskillate/lowpop/pkg/cache"
	"github.com/eskillate/lowpop/pkg/pipeline"
)

// serveFlags holds flag values for the serve command.
type serveFlags struct {
	addr       string
	redisAddr  string
	mongoURI   string
	mongoDB    string
	configPath string
	noCache    bool
}

const (
	connectTimeout  = 10 * time.Second
	shutdownTimeout = 5 * time.Second
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	flags := serveFlags{addr: ":8080"}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve batches over HTTP",
		Long: `Serve batches over HTTP.

Seeded batches are cached in Redis (--redis), MongoDB (--mongo) or, by
default, the local cache directory.`,
		Example: `  lowpop serve --addr :8080 --redis localhost:6379
  curl 'localhost:8080/batches?count=12&tier=float&seed=7'`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), flags)
		},
	}

	cmd.Flags().StringVar(&flags.addr, "addr", flags.addr, "listen address")
	cmd.Flags().StringVar(&flags.redisAddr, "redis", "", "Redis address or redis:// URL for the batch cache")
	cmd.Flags().StringVar(&flags.mongoURI, "mongo", "", "MongoDB URI for the batch cache")
	cmd.Flags().StringVar(&flags.mongoDB, "mongo-db", cache.DefaultMongoDatabase, "MongoDB database name")
	cmd.Flags().StringVarP(&flags.configPath, "config", "c", "", "config file (TOML)")
	cmd.Flags().BoolVar(&flags.noCache, "no-cache", false, "disable the batch cache")
	cmd.MarkFlagsMutuallyExclusive("redis", "mongo", "no-cache")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, flags serveFlags) error {
	logger := loggerFromContext(ctx)

	cfg, cfgPath, err := loadConfig(flags.configPath)
	if err != nil {
		return err
	}
	if cfgPath != "" {
		logger.Info("loaded config", "path", cfgPath)
	}

	store, err := openServeCache(ctx, flags)
	if err != nil {
		return err
	}
	runner := pipeline.NewRunner(store, cache.NewScopedKeyer(nil, "server:"), logger)
	defer runner.Close()

	srv := &http.Server{
		Addr:              flags.addr,
		Handler:           server.New(runner, cfg, logger),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", flags.addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return ctx.Err()
	}
}

// openServeCache picks the cache backend from the flags.
func openServeCache(ctx context.Context, flags serveFlags) (cache.Cache, error) {
	connectCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	switch {
	case flags.noCache:
		printWarning("batch cache disabled")
		return cache.NewNullCache(), nil
	case flags.redisAddr != "":
		c, err := cache.NewRedisCache(connectCtx, flags.redisAddr)
		if err != nil {
			return nil, err
		}
		printSuccess("Connected to Redis")
		return c, nil
	case flags.mongoURI != "":
		c, err := cache.NewMongoCache(connectCtx, flags.mongoURI, flags.mongoDB, "")
		if err != nil {
			return nil, err
		}
		printSuccess("Connected to MongoDB")
		return c, nil
	default:
		return newCache(false)
	}
}
