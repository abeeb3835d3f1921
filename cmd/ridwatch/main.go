package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/Parfait-17/Detection-droneV3/internal/adapters/capture"
	"github.com/Parfait-17/Detection-droneV3/internal/adapters/odid"
	"github.com/Parfait-17/Detection-droneV3/internal/adapters/reporting"
	"github.com/Parfait-17/Detection-droneV3/internal/adapters/storage"
	"github.com/Parfait-17/Detection-droneV3/internal/config"
	"github.com/Parfait-17/Detection-droneV3/internal/core/ports"
	"github.com/Parfait-17/Detection-droneV3/internal/core/services/pipeline"
	"github.com/Parfait-17/Detection-droneV3/internal/core/services/session"
	"github.com/Parfait-17/Detection-droneV3/internal/telemetry"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg := config.Load()
	if cfg.Debug {
		logger = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
		slog.SetDefault(logger)
	}

	telemetry.InitMetrics()
	shutdownTracer, err := telemetry.InitTracer()
	if err != nil {
		slog.Error("Failed to init tracer", "error", err)
	} else {
		defer func() {
			if err := shutdownTracer(context.Background()); err != nil {
				slog.Error("Failed to shutdown tracer", "error", err)
			}
		}()
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, cfg, logger); err != nil {
		slog.Error("ridwatch failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	opts := []odid.Option{
		odid.WithMinSignificantChars(cfg.PatternMinChars),
		odid.WithLogger(logger),
		odid.WithRejectCallback(func(string) { telemetry.PatternRejected.Inc() }),
	}
	if cfg.SignaturesPath != "" {
		sigs, err := config.LoadSignatures(cfg.SignaturesPath)
		if err != nil {
			return err
		}
		logger.Info("pattern signature table loaded", "path", cfg.SignaturesPath, "signatures", len(sigs))
		opts = append(opts, odid.WithSignatures(sigs))
	}
	extractor := odid.NewExtractor(opts...)

	var store ports.DetectionStore
	if cfg.DBPath != "" {
		s, err := storage.NewSQLiteStore(cfg.DBPath)
		if err != nil {
			return err
		}
		defer s.Close()
		store = s
	}

	source, err := openSource(cfg)
	if err != nil {
		return err
	}
	defer source.Close()

	if cfg.MetricsAddr != "" {
		go serveMetrics(cfg.MetricsAddr, logger)
	}

	handler := pipeline.New(extractor, session.NewRegistry(), store, nil, logger)

	// Pruning runs on its own ticker so idle sessions expire even while
	// the source blocks waiting for the next frame.
	go prune(ctx, handler, cfg.SessionTTL)

	start := time.Now()
	frames, bytesRead, detections := 0, uint64(0), 0

	for {
		if ctx.Err() != nil {
			break
		}

		frame, err := source.Next(ctx)
		if errors.Is(err, io.EOF) {
			break
		}
		if errors.Is(err, context.Canceled) {
			break
		}
		if err != nil {
			return err
		}

		frames++
		bytesRead += uint64(len(frame.Bytes))

		det, err := handler.HandleFrame(ctx, frame)
		if err != nil {
			logger.Error("failed to emit detection", "error", err)
			continue
		}
		if det != nil {
			detections++
		}
	}

	logger.Info("capture finished",
		"frames", humanize.Comma(int64(frames)),
		"bytes", humanize.Bytes(bytesRead),
		"detections", detections,
		"elapsed", time.Since(start).Round(time.Millisecond).String(),
	)

	if cfg.ReportPath != "" && store != nil {
		return writeReport(ctx, cfg.ReportPath, store, start, logger)
	}
	return nil
}

func prune(ctx context.Context, handler *pipeline.Handler, ttl time.Duration) {
	ticker := time.NewTicker(ttl / 2)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			handler.PruneSessions(ttl)
		}
	}
}

func openSource(cfg *config.Config) (ports.FrameSource, error) {
	if cfg.PcapPath != "" {
		return capture.NewPcapSource(cfg.PcapPath)
	}
	return capture.NewHexSource(os.Stdin), nil
}

func serveMetrics(addr string, logger *slog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", otelhttp.NewHandler(promhttp.Handler(), "metrics"))
	logger.Info("metrics endpoint listening", "addr", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		logger.Error("metrics endpoint failed", "error", err)
	}
}

func writeReport(ctx context.Context, path string, store ports.DetectionStore, since time.Time, logger *slog.Logger) error {
	dets, err := store.ListSince(ctx, since)
	if err != nil {
		// The run context may already be cancelled; the report covers it anyway.
		dets, err = store.ListSince(context.Background(), since)
		if err != nil {
			return err
		}
	}

	pdf, err := reporting.NewPDFExporter().ExportSummary(dets, time.Now())
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, pdf, 0644); err != nil {
		return err
	}
	logger.Info("detection report written", "path", path, "sessions", len(dets))
	return nil
}
