package odid

import (
	"encoding/binary"
	"math"

	"github.com/Parfait-17/Detection-droneV3/internal/core/domain"
)

// Byte-field codecs for the ASTM F3411 fixed-point encodings. Each decoder
// maps the wire sentinel to nil instead of a numeric value.

// decodeCoordinate converts a little-endian int32 in 1e-7 degree units.
func decodeCoordinate(b []byte) *float64 {
	raw := int32(binary.LittleEndian.Uint32(b))
	if raw == sentinelCoordinate {
		return nil
	}
	return domain.Float(float64(raw) * 1e-7)
}

// decodeAltitude converts a little-endian uint16 in 0.5 m units with a
// -1000 m offset. Raw 0 (decoded -1000 m) is the invalid marker.
func decodeAltitude(b []byte) *float64 {
	raw := binary.LittleEndian.Uint16(b)
	if raw == sentinelAltitude {
		return nil
	}
	return domain.Float(float64(raw)*0.5 - 1000)
}

// decodeSpeed converts the 1-byte horizontal speed. With the multiplier
// flag clear the unit is 0.25 m/s; with it set the value is shifted into
// the high-speed range (0.75 m/s units offset by the low-range maximum).
func decodeSpeed(raw byte, multiplier bool) *float64 {
	if raw == sentinelSpeed {
		return nil
	}
	if multiplier {
		return domain.Float(float64(raw)*0.75 + 255*0.25)
	}
	return domain.Float(float64(raw) * 0.25)
}

// decodeHeading converts a little-endian uint16 in 0.01 degree units,
// normalized into [0, 360).
func decodeHeading(b []byte) *float64 {
	raw := binary.LittleEndian.Uint16(b)
	if raw == sentinelHeading {
		return nil
	}
	deg := math.Mod(float64(raw)*0.01, 360)
	if deg < 0 {
		deg += 360
	}
	return domain.Float(deg)
}

// decodeVerticalSpeed converts a signed byte in 0.5 m/s units.
func decodeVerticalSpeed(raw byte) *float64 {
	if raw == sentinelVertSpeed {
		return nil
	}
	return domain.Float(float64(int8(raw)) * 0.5)
}

// decodeLocationTimestamp converts a little-endian uint16 of tenths of a
// second since the last hour boundary.
func decodeLocationTimestamp(b []byte) *float64 {
	raw := binary.LittleEndian.Uint16(b)
	if raw == sentinelTimestamp {
		return nil
	}
	return domain.Float(float64(raw) * 0.1)
}

func decodeStatus(nibble byte) domain.OperationalStatus {
	switch nibble {
	case 1:
		return domain.StatusGround
	case 2:
		return domain.StatusAirborne
	case 3:
		return domain.StatusEmergency
	}
	return domain.StatusUnknown
}

func decodeIDType(raw byte) domain.IDType {
	switch raw {
	case 1:
		return domain.IDTypeSerialNumber
	case 2:
		return domain.IDTypeCAARegistration
	case 3:
		return domain.IDTypeUTMAssigned
	case 4:
		return domain.IDTypeSpecificSession
	}
	return domain.IDTypeNone
}
