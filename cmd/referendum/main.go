package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/eigerco/referendum/internal/config"
	"github.com/eigerco/referendum/internal/referendum"
	"github.com/eigerco/referendum/internal/scenario"
	"github.com/eigerco/referendum/internal/store"
	"github.com/eigerco/referendum/pkg/db"
	"github.com/eigerco/referendum/pkg/db/pebble"
	"github.com/eigerco/referendum/pkg/log"
)

// main replays a step script against a referendum engine.
// go run ./cmd/referendum -genesis genesis.json -script steps.json
func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "referendum: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load .env from CWD if present; otherwise use the environment as-is
	if _, statErr := os.Stat(".env"); statErr == nil {
		_ = godotenv.Load(".env")
	}

	cfg := config.Load()
	flag.StringVar(&cfg.DataDir, "data-dir", cfg.DataDir, "pebble data directory, empty for in-memory")
	flag.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level")
	flag.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "log format: console or json")
	flag.StringVar(&cfg.Owner, "owner", cfg.Owner, "principal allowed to toggle the emergency stop")
	flag.StringVar(&cfg.MetricsAddr, "metrics-addr", cfg.MetricsAddr, "serve prometheus metrics on this address")
	flag.StringVar(&cfg.Genesis, "genesis", cfg.Genesis, "genesis file")
	flag.StringVar(&cfg.Script, "script", cfg.Script, "step script to replay")
	flag.Parse()

	var genesis scenario.Genesis
	if cfg.Genesis != "" {
		g, err := scenario.LoadGenesis(cfg.Genesis)
		if err != nil {
			return err
		}
		genesis = g
		if cfg.Owner == "" {
			cfg.Owner = string(g.Owner)
		}
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	logOpts, err := cfg.LogOptions()
	if err != nil {
		return err
	}
	logOpts.Output = os.Stderr
	log.Init(logOpts)
	log.Cmd.Info().Str("config", cfg.String()).Msg("starting")

	kv, err := openStore(cfg)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer func() {
		if err := kv.Close(); err != nil {
			log.Cmd.Error().Err(err).Msg("failed to close store")
		}
	}()

	proposals := store.NewProposals(kv)
	eligibility := store.NewEligibility(kv)
	results := store.NewResults(kv)

	if err := scenario.Seed(genesis, proposals, eligibility); err != nil {
		return err
	}

	registry := prometheus.NewRegistry()
	metrics, err := referendum.NewMetrics(registry)
	if err != nil {
		return fmt.Errorf("register metrics: %w", err)
	}

	engine := referendum.New(referendum.Principal(cfg.Owner), proposals, eligibility,
		referendum.WithLogger(log.Engine),
		referendum.WithMetrics(metrics),
		referendum.WithResultsAggregator(results),
		referendum.WithReferendumTracker(results),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	g, ctx := errgroup.WithContext(ctx)

	if cfg.MetricsAddr != "" {
		serveMetrics(ctx, g, cfg.MetricsAddr, registry)
	}

	g.Go(func() error {
		if cfg.MetricsAddr == "" {
			// nothing left to serve once the replay is done
			defer stop()
		}
		return replay(ctx, engine, results, cfg.Script)
	})

	return g.Wait()
}

func openStore(cfg config.Config) (db.KVStore, error) {
	if cfg.InMemory() {
		log.Cmd.Warn().Msg("no data directory configured, state is kept in memory")
		return pebble.NewKVStore()
	}
	return pebble.Open(cfg.DataDir)
}

func serveMetrics(ctx context.Context, g *errgroup.Group, addr string, registry *prometheus.Registry) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	g.Go(func() error {
		log.Cmd.Info().Str("addr", addr).Msg("serving metrics")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("metrics server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
}

func replay(ctx context.Context, engine *referendum.Engine, results *store.Results, script string) error {
	if script == "" {
		log.Cmd.Info().Msg("no script configured")
		return nil
	}
	steps, err := scenario.LoadSteps(script)
	if err != nil {
		return err
	}

	outcomes, err := scenario.Run(ctx, engine, steps)
	fmt.Print(scenario.Transcript(outcomes))
	if err != nil {
		return err
	}

	statuses, err := results.Statuses()
	if err != nil {
		return fmt.Errorf("list results: %w", err)
	}
	for _, s := range statuses {
		log.Cmd.Info().
			Uint64("proposal", uint64(s.ID)).
			Uint64("yes", s.Status.YesVotes).
			Uint64("no", s.Status.NoVotes).
			Uint64("total", s.Status.TotalVotes).
			Bool("passed", s.Status.Passed()).
			Msg("final status")
	}
	return nil
}
