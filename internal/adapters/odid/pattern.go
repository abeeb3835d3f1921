package odid

import (
	"bytes"
	"time"

	"github.com/Parfait-17/Detection-droneV3/internal/core/domain"
)

// DefaultMinSignificantChars is the anti-false-positive threshold for the
// pattern path. It is a tunable, not a contract: three significant
// characters reject coincidental byte runs (an SSID containing "AIR")
// while keeping short proprietary serials.
const DefaultMinSignificantChars = 3

// maxPatternIDLen bounds the printable run read after a signature so a
// long frame body never turns into a kilobyte "identifier".
const maxPatternIDLen = 32

// Signature is one byte-literal marker of a non-conformant Remote ID
// broadcast: a vendor ID-string prefix, a legacy ASTM header, or the
// OpenDroneID OUI embedded outside a well-formed vendor IE.
type Signature struct {
	Name  string
	Bytes []byte
	// Literal signatures are themselves the start of the identifier
	// string; header signatures only mark where one may follow.
	Literal bool
}

// DefaultSignatures is the built-in table of vendor-proprietary and legacy
// markers observed in the field.
func DefaultSignatures() []Signature {
	return []Signature{
		{Name: "dji_remote_id", Bytes: []byte("DJI-RID-"), Literal: true},
		{Name: "dji_mavic", Bytes: []byte("MAVIC"), Literal: true},
		{Name: "dji_mini", Bytes: []byte("MINI"), Literal: true},
		{Name: "dji_air", Bytes: []byte("AIR"), Literal: true},
		{Name: "dji_fpv", Bytes: []byte("FPV"), Literal: true},
		{Name: "astm_f3411_hdr", Bytes: []byte{0x0D, 0x00}},
		{Name: "odid_hdr", Bytes: []byte{0x25, 0x00}},
		{Name: "astm_alt_hdr", Bytes: []byte{0x1A, 0x00}},
		{Name: "odid_oui", Bytes: []byte{0xFA, 0x0B, 0xBC}},
	}
}

// SearchPatterns scans a full frame payload for known signatures. It is
// invoked only after the standards path found nothing, trades precision
// for recall, and must never override a standards-path result. The record,
// when produced, is tagged SourcePattern / IDTypePattern.
func (e *Extractor) SearchPatterns(raw []byte, captureTime time.Time) (*domain.RemoteIDRecord, bool) {
	for _, sig := range e.signatures {
		offset := bytes.Index(raw, sig.Bytes)
		if offset < 0 {
			continue
		}

		id := e.extractPatternID(raw, offset, sig)
		if significantChars(id) < e.minChars {
			// Below the significance threshold: treated as not found.
			e.log.Debug("pattern match rejected", "signature", sig.Name, "candidate", id)
			if e.onReject != nil {
				e.onReject(sig.Name)
			}
			continue
		}

		e.log.Info("remote id recovered via pattern", "signature", sig.Name, "offset", offset)
		return &domain.RemoteIDRecord{
			UASID:     id,
			UASIDType: domain.IDTypePattern,
			Source:    domain.SourcePattern,
			Timestamp: captureTime,
		}, true
	}
	return nil, false
}

// extractPatternID reads the longest printable run at (literal signatures)
// or after (header signatures) the match, length-bounded.
func (e *Extractor) extractPatternID(raw []byte, offset int, sig Signature) string {
	start := offset
	if !sig.Literal {
		start = offset + len(sig.Bytes)
	}

	end := start
	for end < len(raw) && end-start < maxPatternIDLen {
		ch := raw[end]
		if ch < 0x20 || ch > 0x7E {
			break
		}
		end++
	}
	return string(raw[start:end])
}
