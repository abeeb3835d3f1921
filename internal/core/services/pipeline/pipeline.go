// Package pipeline orchestrates the per-frame decode path: classify the
// frame, run the standards extractor over its IEs, fall back to the byte
// pattern scan, merge into the per-transmitter session, and emit the merged
// detection once it becomes publishable.
package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/Parfait-17/Detection-droneV3/internal/adapters/dot11"
	"github.com/Parfait-17/Detection-droneV3/internal/adapters/odid"
	"github.com/Parfait-17/Detection-droneV3/internal/core/domain"
	"github.com/Parfait-17/Detection-droneV3/internal/core/ports"
	"github.com/Parfait-17/Detection-droneV3/internal/core/services/session"
	"github.com/Parfait-17/Detection-droneV3/internal/telemetry"
)

// Handler runs the decode pipeline over single frames. The decoder stages
// are pure; the only mutable state is the session registry, which does its
// own locking, so one Handler may serve concurrent workers.
type Handler struct {
	extractor *odid.Extractor
	sessions  *session.Registry
	store     ports.DetectionStore
	sink      ports.DetectionSink
	tracer    trace.Tracer
	log       *slog.Logger
}

// New creates a pipeline handler. Store and sink may be nil; publishable
// detections are then only returned to the caller.
func New(extractor *odid.Extractor, sessions *session.Registry, store ports.DetectionStore, sink ports.DetectionSink, log *slog.Logger) *Handler {
	if log == nil {
		log = slog.Default()
	}
	return &Handler{
		extractor: extractor,
		sessions:  sessions,
		store:     store,
		sink:      sink,
		tracer:    otel.Tracer("pipeline"),
		log:       log,
	}
}

// HandleFrame processes one raw management frame. It returns the merged
// session detection when this frame made it publishable, or nil. Absence
// of a detection is the normal outcome for most frames and is not an
// error; only downstream store/sink failures surface as errors.
func (h *Handler) HandleFrame(ctx context.Context, frame ports.RawFrame) (*domain.Detection, error) {
	ctx, span := h.tracer.Start(ctx, "pipeline.HandleFrame")
	defer span.End()

	captureTime := frame.Time
	if captureTime.IsZero() {
		captureTime = time.Now()
	}

	info, err := dot11.Classify(frame.Bytes)
	if err != nil {
		if errors.Is(err, dot11.ErrUnsupportedFrameType) {
			// Data/control frames and probe requests carry no Remote ID.
			telemetry.FramesProcessed.WithLabelValues("unsupported").Inc()
			return nil, nil
		}
		telemetry.FramesProcessed.WithLabelValues("malformed").Inc()
		// A truncated frame still carries its vendor markers; the byte
		// scan does not need a valid header.
		rec, found := h.extractor.SearchPatterns(frame.Bytes, captureTime)
		if !found {
			return nil, nil
		}
		return h.track(ctx, rec, bestEffortMAC(frame.Bytes), frame)
	}
	telemetry.FramesProcessed.WithLabelValues(info.Type.String()).Inc()
	span.SetAttributes(
		attribute.String("frame.type", info.Type.String()),
		attribute.String("frame.source_mac", info.SourceMAC.String()),
	)

	rec, found := h.extractor.Extract(info.Elements, captureTime)
	if !found {
		// Best-effort heuristic path; never reached when the standards
		// path succeeded for this frame.
		rec, found = h.extractor.SearchPatterns(frame.Bytes, captureTime)
	}
	if !found {
		return nil, nil
	}

	return h.track(ctx, rec, info.SourceMAC.String(), frame)
}

// track merges an extracted record into the transmitter's session and emits
// it on the identity transition.
func (h *Handler) track(ctx context.Context, rec *domain.RemoteIDRecord, mac string, frame ports.RawFrame) (*domain.Detection, error) {
	// An identifier below the significance threshold (all zero/padding
	// bytes) must not seed the session identity; keep the telemetry
	// fields and wait for a real one.
	if rec.UASID != "" && !h.extractor.ValidIdentity(rec.UASID) {
		rec.UASID = ""
		rec.UASIDType = domain.IDTypeNone
	}

	det := domain.Detection{
		SourceMAC: mac,
		Record:    *rec,
		RSSI:      frame.RSSI,
		Frequency: frame.Frequency,
		Channel:   frame.Channel,
	}

	merged, publishable := h.sessions.Track(det)
	telemetry.SessionsActive.Set(float64(h.sessions.Active()))

	// Partially populated sessions (position without identity) are held
	// back until an identity arrives.
	if !publishable {
		return nil, nil
	}

	return &merged, h.emit(ctx, merged)
}

// bestEffortMAC recovers the transmitter address when enough of a malformed
// header survived. Frames too short to carry addr2 share one unattributed
// session key.
func bestEffortMAC(frame []byte) string {
	if len(frame) >= 16 {
		return net.HardwareAddr(frame[10:16]).String()
	}
	return ""
}

func (h *Handler) emit(ctx context.Context, det domain.Detection) error {
	ctx, span := h.tracer.Start(ctx, "pipeline.emit")
	defer span.End()

	telemetry.DetectionsEmitted.WithLabelValues(string(det.Record.Source)).Inc()
	h.log.Info("remote id detection",
		"session", det.SessionID,
		"mac", det.SourceMAC,
		"uas_id", det.Record.UASID,
		"id_type", det.Record.UASIDType.String(),
		"source", string(det.Record.Source),
	)

	if h.store != nil {
		if err := h.store.Save(ctx, det); err != nil {
			return err
		}
	}
	if h.sink != nil {
		if err := h.sink.Publish(ctx, det); err != nil {
			return err
		}
	}
	return nil
}

// PruneSessions expires idle sessions and updates the gauges. Intended to
// be called periodically by the owning process.
func (h *Handler) PruneSessions(ttl time.Duration) int {
	pruned := h.sessions.Prune(ttl)
	if pruned > 0 {
		telemetry.SessionsPruned.Add(float64(pruned))
	}
	telemetry.SessionsActive.Set(float64(h.sessions.Active()))
	return pruned
}
