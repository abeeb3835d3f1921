package odid

import (
	"bytes"
	"log/slog"
	"time"

	"github.com/Parfait-17/Detection-droneV3/internal/adapters/dot11/ie"
	"github.com/Parfait-17/Detection-droneV3/internal/core/domain"
)

// Extractor runs the standards path over a frame's information elements and
// the pattern fallback over raw bytes. It holds only immutable configuration
// (OUI, signature table, validity threshold) loaded at startup, so a single
// Extractor may serve many goroutines.
type Extractor struct {
	oui        [3]byte
	signatures []Signature
	minChars   int
	log        *slog.Logger
	onReject   func(signature string)
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithSignatures replaces the built-in pattern signature table.
func WithSignatures(sigs []Signature) Option {
	return func(e *Extractor) { e.signatures = sigs }
}

// WithMinSignificantChars sets the anti-false-positive threshold: an
// extracted identifier with fewer significant characters is rejected.
func WithMinSignificantChars(n int) Option {
	return func(e *Extractor) { e.minChars = n }
}

// WithLogger sets the logger used for debug traces.
func WithLogger(log *slog.Logger) Option {
	return func(e *Extractor) { e.log = log }
}

// WithRejectCallback is invoked whenever a pattern match is dropped below
// the significance threshold, so callers can count rejections.
func WithRejectCallback(fn func(signature string)) Option {
	return func(e *Extractor) { e.onReject = fn }
}

// NewExtractor builds an extractor with the registered OpenDroneID OUI and
// the default signature table.
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{
		oui:        OpenDroneIDOUI,
		signatures: DefaultSignatures(),
		minChars:   DefaultMinSignificantChars,
		log:        slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract scans the IE list for OpenDroneID vendor elements and folds every
// decoded message into one record. The boolean result is false when no
// conformant vendor IE yielded anything; per-message decode problems are
// recovered locally and never fail the whole frame.
func (e *Extractor) Extract(elements []ie.Element, captureTime time.Time) (*domain.RemoteIDRecord, bool) {
	rec := &domain.RemoteIDRecord{
		Timestamp: captureTime,
		Source:    domain.SourceStandard,
	}

	found := false
	for _, payload := range ie.VendorSpecific(elements) {
		oui, ok := ie.OUI(payload)
		if !ok {
			continue
		}
		if !bytes.Equal(oui[:], e.oui[:]) {
			// Unrelated vendor IE (WMM, P2P, ...), skip silently.
			continue
		}
		if len(payload) <= vendorHdrLen {
			continue
		}
		if e.applyMessages(rec, payload[vendorHdrLen:]) {
			found = true
		}
	}

	if !found {
		return nil, false
	}
	return rec, true
}

// applyMessages walks concatenated ODID messages and reports whether at
// least one was decoded.
func (e *Extractor) applyMessages(rec *domain.RemoteIDRecord, data []byte) bool {
	applied := false
	offset := 0
	for offset < len(data) {
		msg, consumed, err := ParseMessage(data[offset:])
		if err != nil {
			// Trailing bytes shorter than a message, or a malformed
			// pack header: stop this IE, keep what we have.
			e.log.Debug("odid message scan stopped", "offset", offset, "error", err)
			break
		}
		if _, unknown := msg.(domain.Unknown); !unknown {
			Apply(rec, msg)
			applied = true
		}
		offset += consumed
	}
	return applied
}

// ExtractPayload decodes a bare ODID payload (no 802.11 framing), as used
// by the analyze CLI and by tests feeding synthetic byte strings.
func (e *Extractor) ExtractPayload(data []byte, captureTime time.Time) (*domain.RemoteIDRecord, bool) {
	rec := &domain.RemoteIDRecord{
		Timestamp: captureTime,
		Source:    domain.SourceStandard,
	}
	if !e.applyMessages(rec, data) {
		return nil, false
	}
	return rec, true
}

// ValidIdentity applies the significant-character threshold to an extracted
// identifier: NUL, '0', space and '-' runs alone do not make an identity.
func (e *Extractor) ValidIdentity(id string) bool {
	return id != "" && significantChars(id) >= e.minChars
}
