package odid

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/Parfait-17/Detection-droneV3/internal/core/domain"
)

var (
	ErrShortMessage = errors.New("odid: message shorter than fixed size")
	ErrBadPackSize  = errors.New("odid: message pack size mismatch")
)

// ParseMessage decodes one ODID message: a header byte (high nibble message
// type, low nibble protocol version) followed by the fixed 24-byte body.
// It returns the decoded message and the number of bytes consumed.
//
// An unknown message type is not an error for the caller's siblings: the
// header is preserved in an Unknown message and the fixed size is consumed
// so the scan can continue.
func ParseMessage(data []byte) (domain.Message, int, error) {
	if len(data) < MessageSize {
		return nil, 0, fmt.Errorf("%w: %d bytes", ErrShortMessage, len(data))
	}

	msgType := domain.MessageType(data[0] >> 4)
	body := data[1:MessageSize]

	switch msgType {
	case domain.MessageTypeBasicID:
		return parseBasicID(body), MessageSize, nil
	case domain.MessageTypeLocation:
		return parseLocation(body), MessageSize, nil
	case domain.MessageTypeAuth:
		return parseAuthentication(body), MessageSize, nil
	case domain.MessageTypeSelfID:
		return parseSelfID(body), MessageSize, nil
	case domain.MessageTypeSystem:
		return parseSystem(body), MessageSize, nil
	case domain.MessageTypeOperatorID:
		return parseOperatorID(body), MessageSize, nil
	case domain.MessageTypeMessagePack:
		return parseMessagePack(data[1:])
	}

	return domain.Unknown{RawType: byte(msgType)}, MessageSize, nil
}

func parseBasicID(body []byte) domain.Message {
	return domain.BasicID{
		IDType: decodeIDType(body[0]),
		UASID:  decodePrintable(body[1 : 1+uasIDLen]),
	}
}

// Location body layout:
//
//	0     status (high nibble), height ref (bit 2), speed multiplier (bit 0)
//	1     speed, 0.25 m/s (0.75 m/s shifted when multiplier set)
//	2-3   heading, 0.01 deg LE
//	4     vertical speed, signed, 0.5 m/s
//	5-8   latitude, int32 LE, 1e-7 deg
//	9-12  longitude, int32 LE, 1e-7 deg
//	13-14 pressure altitude, 0.5 m, -1000 m offset
//	15-16 geodetic altitude
//	17-18 height AGL
//	19    horizontal/vertical accuracy nibbles
//	20-21 timestamp, 0.1 s since last hour boundary
//	22-23 reserved
func parseLocation(body []byte) domain.Message {
	flags := body[0]
	multiplier := flags&0x01 != 0

	return domain.Location{
		Status:             decodeStatus(flags >> 4),
		HeightAboveGround:  flags&0x04 != 0,
		Speed:              decodeSpeed(body[1], multiplier),
		Heading:            decodeHeading(body[2:4]),
		VerticalSpeed:      decodeVerticalSpeed(body[4]),
		Latitude:           decodeCoordinate(body[5:9]),
		Longitude:          decodeCoordinate(body[9:13]),
		AltitudePressure:   decodeAltitude(body[13:15]),
		AltitudeMSL:        decodeAltitude(body[15:17]),
		HeightAGL:          decodeAltitude(body[17:19]),
		HorizontalAccuracy: int(body[19] >> 4),
		VerticalAccuracy:   int(body[19] & 0x0F),
		Timestamp:          decodeLocationTimestamp(body[20:22]),
	}
}

// parseAuthentication decodes a single authentication page. Page 0 carries
// the last-page index and total length; later pages are data-only.
// Multi-page reassembly is deliberately not implemented.
func parseAuthentication(body []byte) domain.Message {
	auth := domain.Authentication{
		AuthType: int(body[0] >> 4),
		Page:     int(body[0] & 0x0F),
	}
	if auth.Page == 0 {
		auth.LastPage = int(body[1])
		auth.Length = int(body[2])
		auth.Data = append([]byte(nil), body[7:]...)
	} else {
		auth.Data = append([]byte(nil), body[1:]...)
	}
	return auth
}

func parseSelfID(body []byte) domain.Message {
	return domain.SelfID{
		DescriptionType: int(body[0]),
		Description:     decodePrintable(body[1 : 1+selfIDTextLen]),
	}
}

// System body layout:
//
//	0     operator location type (bits 0-1), classification type (bits 2-4)
//	1-4   operator latitude, int32 LE, 1e-7 deg
//	5-8   operator longitude
//	9-10  area count, uint16 LE
//	11    area radius, 10 m units
//	12-13 area ceiling, 0.5 m, -1000 m offset
//	14-15 area floor
//	16    EU category (high nibble) / class (low nibble)
//	17-18 operator altitude, 0.5 m, -1000 m offset
//	19-22 system timestamp
//	23    reserved
func parseSystem(body []byte) domain.Message {
	return domain.System{
		OperatorLocationType: int(body[0] & 0x03),
		ClassificationType:   int(body[0] >> 2 & 0x07),
		OperatorLatitude:     decodeCoordinate(body[1:5]),
		OperatorLongitude:    decodeCoordinate(body[5:9]),
		AreaCount:            int(binary.LittleEndian.Uint16(body[9:11])),
		AreaRadius:           int(body[11]) * 10,
		AreaCeiling:          decodeAltitude(body[12:14]),
		AreaFloor:            decodeAltitude(body[14:16]),
		CategoryEU:           int(body[16] >> 4),
		ClassEU:              int(body[16] & 0x0F),
		OperatorAltitude:     decodeAltitude(body[17:19]),
	}
}

func parseOperatorID(body []byte) domain.Message {
	return domain.OperatorID{
		IDType:     int(body[0]),
		OperatorID: decodePrintable(body[1 : 1+uasIDLen]),
	}
}

// parseMessagePack decodes the container: one byte single-message size
// (which must be the standard 25), one byte message count, then that many
// concatenated single messages. Recursion is one level deep; a pack inside
// a pack is skipped as an unsupported sub-message.
func parseMessagePack(data []byte) (domain.Message, int, error) {
	if len(data) < 2 {
		return nil, 0, fmt.Errorf("%w: pack header", ErrShortMessage)
	}
	size := int(data[0])
	count := int(data[1])

	if size != MessageSize {
		return nil, 0, fmt.Errorf("%w: declared %d, want %d", ErrBadPackSize, size, MessageSize)
	}

	pack := domain.MessagePack{MessageSize: size}
	offset := 2
	for i := 0; i < count; i++ {
		if offset+MessageSize > len(data) {
			// Truncated pack: keep what was decoded.
			break
		}
		sub := data[offset : offset+MessageSize]
		if domain.MessageType(sub[0]>>4) == domain.MessageTypeMessagePack {
			offset += MessageSize
			continue
		}
		msg, _, err := ParseMessage(sub)
		if err == nil {
			pack.Messages = append(pack.Messages, msg)
		}
		offset += MessageSize
	}

	// Consumed: header byte already counted by the caller, plus pack
	// header and sub-messages.
	return pack, 1 + offset, nil
}
