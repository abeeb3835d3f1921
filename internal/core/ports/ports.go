package ports

import (
	"context"
	"time"

	"github.com/Parfait-17/Detection-droneV3/internal/core/domain"
)

// RawFrame is one captured 802.11 management frame plus the metadata the
// capture layer tags it with. Metadata is passed through to the output
// record, never validated here.
type RawFrame struct {
	Bytes     []byte
	Time      time.Time
	RSSI      int
	Frequency int
	Channel   int
}

// FrameSource produces raw management-frame buffers from some capture
// collaborator (pcap file, live interface, stdin hex).
type FrameSource interface {
	Next(ctx context.Context) (RawFrame, error)
	Close() error
}

// DetectionStore persists emitted detections.
type DetectionStore interface {
	Save(ctx context.Context, det domain.Detection) error
	GetBySession(ctx context.Context, sessionID string) (*domain.Detection, error)
	ListSince(ctx context.Context, since time.Time) ([]domain.Detection, error)
	Close() error
}

// DetectionSink receives publishable detections. The external publishing
// system (MQTT, dashboards) lives behind this boundary and is out of scope.
type DetectionSink interface {
	Publish(ctx context.Context, det domain.Detection) error
}
