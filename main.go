package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"go.uber.org/zap"

	"wavesurface/internal/logger"
	"wavesurface/internal/metrics"
)

func main() {
	flag.Parse()
	runtime.GOMAXPROCS(runtime.NumCPU())

	cfg, err := loadConfig()
	if err != nil {
		// The logger depends on the config, so report this one plainly.
		os.Stderr.WriteString("invalid configuration: " + err.Error() + "\n")
		os.Exit(2)
	}
	log, err := logger.New(logger.Config{Level: cfg.logLevel, Development: cfg.debug})
	if err != nil {
		os.Stderr.WriteString("creating logger: " + err.Error() + "\n")
		os.Exit(2)
	}
	defer func() { _ = log.Sync() }()

	if err := run(cfg, log); err != nil {
		log.Error("wave surface failed", zap.Error(err))
		_ = log.Sync()
		os.Exit(1)
	}
}

func run(cfg runConfig, log *zap.Logger) error {
	if cfg.cpuProfile != "" {
		stop, err := startCPUProfile(cfg.cpuProfile)
		if err != nil {
			return err
		}
		defer stop()
		log.Info("CPU profiling enabled", zap.String("path", cfg.cpuProfile))
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	rec := metrics.New()
	if cfg.metricsAddr != "" {
		srv := serveMetrics(cfg.metricsAddr, rec, log)
		defer func() {
			shutdownCtx, done := context.WithTimeout(context.Background(), 2*time.Second)
			defer done()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	if cfg.headless {
		_, err := runHeadless(ctx, cfg, rec, log)
		return err
	}
	return runViewer(ctx, cfg, rec, log)
}

// serveMetrics starts the Prometheus endpoint in the background.
func serveMetrics(addr string, rec *metrics.Recorder, log *zap.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", rec.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		log.Info("serving metrics", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("metrics server stopped", zap.Error(err))
		}
	}()
	return srv
}
