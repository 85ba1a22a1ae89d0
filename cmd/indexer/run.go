package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/goran-ethernal/NomadIndexer/internal/common"
	"github.com/goran-ethernal/NomadIndexer/internal/config"
	"github.com/goran-ethernal/NomadIndexer/internal/logger"
	"github.com/goran-ethernal/NomadIndexer/internal/metrics"
	"github.com/goran-ethernal/NomadIndexer/internal/orchestrator"
	"github.com/goran-ethernal/NomadIndexer/internal/poller"
	"github.com/goran-ethernal/NomadIndexer/internal/processor"
	"github.com/goran-ethernal/NomadIndexer/internal/retry"
	"github.com/goran-ethernal/NomadIndexer/internal/rpc"
	"github.com/goran-ethernal/NomadIndexer/internal/seen"
	"github.com/goran-ethernal/NomadIndexer/internal/store"
	"github.com/goran-ethernal/NomadIndexer/internal/types"
	"github.com/goran-ethernal/NomadIndexer/pkg/api"
	pkgconfig "github.com/goran-ethernal/NomadIndexer/pkg/config"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func runIndexer(cmd *cobra.Command, args []string) error {
	fmt.Printf(banner, version)

	cfg, err := config.LoadFromFile(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	componentLog := func(component string) *logger.Logger {
		return logger.NewComponentLoggerFromConfig(component, cfg.Logging)
	}
	log := componentLog(common.ComponentOrchestrator)
	logger.SetDefaultLogger(log)

	if cfg.Metrics != nil && cfg.Metrics.Enabled {
		metricsServer := metrics.NewServer(cfg.Metrics, componentLog(common.ComponentMetrics))
		if err := metricsServer.Start(ctx); err != nil {
			return fmt.Errorf("failed to start metrics server: %w", err)
		}
		defer func() {
			if err := metricsServer.Stop(context.Background()); err != nil {
				log.Warnf("failed to stop metrics server: %v", err)
			}
		}()
	}

	log.Infof("opening %s store", cfg.Store.Driver)
	st, err := store.New(ctx, cfg.Store, componentLog(common.ComponentStore))
	if err != nil {
		return err
	}
	defer st.Close()

	checkpoints, err := store.NewKVCache(ctx, st, poller.CheckpointNamespace)
	if err != nil {
		return err
	}

	pool, closePool, err := newPool(ctx, cfg.Pool)
	if err != nil {
		return err
	}
	defer closePool()

	dedup := seen.New(cfg.Dedup.Retention.Duration, cfg.Dedup.CleanEvery, cfg.Dedup.MaxEntries, componentLog(common.ComponentDedup))
	proc, err := processor.New(st, pool, dedup, componentLog(common.ComponentProcessor))
	if err != nil {
		return err
	}

	domains := make([]orchestrator.Domain, 0, len(cfg.Domains))
	for _, d := range cfg.Domains {
		finality, err := types.ParseBlockFinality(d.Finality)
		if err != nil {
			return err
		}
		client, err := rpc.NewClient(ctx, d.RPCURL, d.ID, rpc.Options{
			Retry:     cfg.Retry,
			RateLimit: d.RateLimit,
			Failures:  retry.NewFailureCounter(cfg.Poller.FailureWindow.Duration),
			Logger:    componentLog(common.ComponentRPC).WithDomain(d.ID, d.Name),
			Finality:  finality,
		})
		if err != nil {
			return err
		}
		defer client.Close()

		p, err := poller.New(d, cfg.Poller, client, st, checkpoints,
			componentLog(common.ComponentPoller).WithDomain(d.ID, d.Name))
		if err != nil {
			return fmt.Errorf("failed to create poller of domain %d: %w", d.ID, err)
		}

		domains = append(domains, orchestrator.Domain{Poller: p, Failures: client.Failures()})
		log.Infof("domain %d (%s): %d event streams", d.ID, d.Name, len(p.Streams()))
	}

	orch, err := orchestrator.New(domains, proc, st, cfg.Poller, log)
	if err != nil {
		return err
	}

	if err := orch.Init(ctx); err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	if cfg.API != nil && cfg.API.Enabled {
		apiServer := api.NewServer(cfg.API, st, orch, componentLog(common.ComponentAPI))
		g.Go(func() error { return apiServer.Start(gctx) })
	}
	g.Go(func() error { return orch.Run(gctx) })

	log.Info("NomadIndexer started")
	if err := g.Wait(); err != nil {
		return err
	}

	log.Info("NomadIndexer stopped")
	return nil
}

func newPool(ctx context.Context, cfg pkgconfig.PoolConfig) (processor.EventPool, func(), error) {
	if cfg.Backend != pkgconfig.PoolBackendRedis {
		return processor.NewMemoryPool(cfg.Retention.Duration, cfg.MaxEntries), func() {}, nil
	}

	p, err := processor.NewRedisPool(ctx, cfg.RedisURL, cfg.KeyPrefix, cfg.Retention.Duration)
	if err != nil {
		return nil, nil, err
	}
	return p, func() { _ = p.Close() }, nil
}
