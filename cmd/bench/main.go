// Command bench measures eviction engines: hit rates over the built-in
// workload scenarios, or throughput of a sharded cache under a Zipf load
// with optional pprof/Prometheus endpoints.
package main

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"net/http"
	_ "net/http/pprof" // registers /debug/pprof/* on DefaultServeMux
	"os"
	"os/signal"
	"runtime"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-logr/logr"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/pflag"

	"github.com/IvanBrykalov/evictkit/cache"
	pmet "github.com/IvanBrykalov/evictkit/metrics/prom"
)

type config struct {
	mode     string
	policies []string
	tuning   tuning

	capacity int
	shards   int
	workers  int
	duration time.Duration
	readPct  int
	keys     int
	zipfS    float64
	zipfV    float64
	preload  int

	scale float64
	seed  int64

	pprofAddr   string
	metricsAddr string
	log         logOptions
}

func main() {
	var cfg config
	fs := pflag.NewFlagSet("bench", pflag.ExitOnError)
	fs.StringVar(&cfg.mode, "mode", "hitrate", "what to measure: hitrate | throughput")
	fs.StringSliceVar(&cfg.policies, "policy", policyNames(), "eviction policies to run")
	fs.IntVar(&cfg.tuning.HistoryCapacity, "lruk-history", 1024, "LRU-K history capacity (per shard)")
	fs.IntVar(&cfg.tuning.K, "lruk-k", 2, "LRU-K admission threshold")
	fs.IntVar(&cfg.tuning.MaxFrequency, "agelfu-max-freq", 16, "aging LFU frequency ceiling")
	fs.IntVar(&cfg.tuning.Threshold, "arc-threshold", 2, "ARC promotion threshold")
	fs.Float64Var(&cfg.tuning.InShare, "2q-in", 0.25, "2Q A1in share of shard capacity")
	fs.Float64Var(&cfg.tuning.GhostShare, "2q-ghost", 0.5, "2Q A1out share of shard capacity")

	fs.IntVar(&cfg.capacity, "cap", 100_000, "cache capacity in entries (throughput mode)")
	fs.IntVar(&cfg.shards, "shards", 0, "number of shards (0 = NumCPU)")
	fs.IntVar(&cfg.workers, "workers", 2*runtime.GOMAXPROCS(0), "number of worker goroutines")
	fs.DurationVar(&cfg.duration, "duration", 10*time.Second, "throughput run duration")
	fs.IntVar(&cfg.readPct, "reads", 80, "read percentage [0..100]")
	fs.IntVar(&cfg.keys, "keys", 1_000_000, "keyspace size")
	fs.Float64Var(&cfg.zipfS, "zipf-s", 1.1, "Zipf s > 1 (skew)")
	fs.Float64Var(&cfg.zipfV, "zipf-v", 1.0, "Zipf v")
	fs.IntVar(&cfg.preload, "preload", 0, "preload entries (0 = cap/2)")

	fs.Float64Var(&cfg.scale, "scale", 0.1, "scenario length multiplier (hitrate mode)")
	fs.Int64Var(&cfg.seed, "seed", time.Now().UnixNano(), "random seed")

	fs.StringVar(&cfg.pprofAddr, "pprof", "", "serve pprof at addr (e.g. :6060); empty = disabled")
	fs.StringVar(&cfg.metricsAddr, "http", "", "serve Prometheus metrics at addr (e.g. :8080); empty = disabled")
	cfg.log.BindFlags(fs)
	_ = fs.Parse(os.Args[1:])

	log, flush, err := newLogger(cfg.log)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	defer func() { _ = flush() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error(err, "bench failed")
		_ = flush()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config, log logr.Logger) error {
	if cfg.pprofAddr != "" {
		go serve(log.WithName("pprof"), newServer(cfg.pprofAddr, http.DefaultServeMux))
	}

	switch cfg.mode {
	case "hitrate":
		return runHitRates(os.Stdout, log.WithName("hitrate"), cfg.policies, cfg.tuning, cfg.scale, uint64(cfg.seed))
	case "throughput":
		for _, name := range cfg.policies {
			if err := runThroughput(ctx, cfg, name, log.WithName("throughput")); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("unknown mode %q (use hitrate or throughput)", cfg.mode)
	}
}

func newServer(addr string, h http.Handler) *http.Server {
	return &http.Server{Addr: addr, Handler: h, ReadHeaderTimeout: 5 * time.Second}
}

func serve(log logr.Logger, srv *http.Server) {
	log.Info("serving", "addr", srv.Addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error(err, "listener stopped", "addr", srv.Addr)
	}
}

// runThroughput drives a sharded cache with a Zipf read/write mix until the
// duration elapses or ctx is cancelled.
func runThroughput(ctx context.Context, cfg config, name string, log logr.Logger) error {
	f, err := factoryFor(name, cfg.tuning)
	if err != nil {
		return err
	}
	if cfg.zipfS <= 1 || cfg.zipfV < 1 {
		return fmt.Errorf("zipf parameters need s > 1 and v >= 1, got s=%v v=%v", cfg.zipfS, cfg.zipfV)
	}

	reg := prometheus.NewRegistry()
	metrics := pmet.New(reg, "evictkit", "bench", prometheus.Labels{"policy": name})
	c := cache.New[int, string](cache.Options[int, string]{
		Capacity: cfg.capacity,
		Shards:   cfg.shards,
		Policy:   f,
		Metrics:  metrics,
		Logger:   log.WithValues("policy", name),
	})
	defer func() { _ = c.Close() }()
	if err := metrics.TrackSize(c.Len); err != nil {
		return fmt.Errorf("register size gauge: %w", err)
	}

	if cfg.metricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
		srv := newServer(cfg.metricsAddr, mux)
		go serve(log.WithName("metrics"), srv)
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	pl := cfg.preload
	if pl == 0 {
		pl = cfg.capacity / 2
	}
	for i := 0; i < pl; i++ {
		c.Put(i, "v"+strconv.Itoa(i))
	}

	workers := max(cfg.workers, 1)
	keysMax := uint64(max(cfg.keys, 2) - 1)

	var total atomic.Uint64
	runCtx, cancel := context.WithTimeout(ctx, cfg.duration)
	defer cancel()

	start := time.Now()
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func(id int) {
			defer wg.Done()

			// Each worker gets its own RNG + Zipf (rand.Rand is NOT goroutine-safe).
			r := rand.New(rand.NewSource(cfg.seed + int64(id)*9973))
			z := rand.NewZipf(r, cfg.zipfS, cfg.zipfV, keysMax)

			for runCtx.Err() == nil {
				total.Add(1)
				k := int(z.Uint64())
				if int(r.Int31n(100)) < cfg.readPct {
					c.Get(k)
				} else {
					c.Put(k, "v"+strconv.Itoa(k))
				}
			}
		}(w)
	}
	wg.Wait()
	elapsed := time.Since(start)

	st := c.Stats()
	ops := total.Load()
	fmt.Printf("policy=%s cap=%d shards=%d workers=%d keys=%d dur=%v seed=%d\n",
		name, cfg.capacity, st.Shards, workers, cfg.keys, elapsed.Round(time.Millisecond), cfg.seed)
	fmt.Printf("ops=%d (%.0f ops/s)  hits=%d  misses=%d  evictions=%d  hit-rate=%.2f%%  len=%d\n",
		ops, float64(ops)/elapsed.Seconds(), st.Hits, st.Misses, st.Evictions, 100*st.HitRatio(), st.Len)
	return nil
}
