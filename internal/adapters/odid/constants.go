// Package odid decodes ASTM F3411 / OpenDroneID messages out of 802.11
// vendor-specific information elements, with a byte-pattern fallback for
// non-conformant vendor payloads. Decoding is pure: no I/O, no shared
// mutable state, safe to call concurrently.
package odid

// OpenDroneIDOUI is the Wi-Fi Alliance OUI registered for OpenDroneID
// vendor-specific elements. Vendor IEs with any other OUI (WMM, P2P, ...)
// must be skipped, never interpreted as malformed Remote ID data.
var OpenDroneIDOUI = [3]byte{0xFA, 0x0B, 0xBC}

const (
	// MessageSize is the full ODID message size including the header byte.
	MessageSize = 25
	// BodySize is the fixed message body size after the header byte.
	BodySize = MessageSize - 1

	ouiLen        = 3
	vendorHdrLen  = 4 // OUI + vendor OUI-type
	uasIDLen      = 20
	selfIDTextLen = 23
)

// Wire sentinels meaning "unknown". A sentinel-valued field surfaces as an
// unset optional, never as zero.
const (
	sentinelSpeed     = 0xFF
	sentinelVertSpeed = 0x7F
	sentinelHeading   = 0xFFFF
	sentinelTimestamp = 0xFFFF
	// Latitude/longitude 0 and raw altitude 0 (decoded -1000 m) mean unknown.
	sentinelCoordinate = 0
	sentinelAltitude   = 0
)
