// Package dot11 classifies raw 802.11 management frames and exposes their
// information elements. Frames arrive as plain byte buffers from the
// external demodulation/capture layer; no radiotap header is expected here.
package dot11

import (
	"encoding/binary"
	"errors"
	"fmt"
	"net"

	"github.com/Parfait-17/Detection-droneV3/internal/adapters/dot11/ie"
)

// FrameType is the management subtype of a classified frame.
type FrameType int

const (
	FrameBeacon FrameType = iota
	FrameProbeResponse
	FrameAction
)

func (t FrameType) String() string {
	switch t {
	case FrameBeacon:
		return "beacon"
	case FrameProbeResponse:
		return "probe-resp"
	case FrameAction:
		return "action"
	}
	return "unknown"
}

const (
	// MAC header: frame control(2) duration(2) addr1(6) addr2(6) addr3(6) seq(2)
	macHeaderLen = 24
	// Beacon/probe-resp fixed prefix: timestamp(8) interval(2) capability(2)
	beaconFixedLen = 12

	typeMgmt = 0

	subtypeProbeResp = 5
	subtypeBeacon    = 8
	subtypeAction    = 13
)

var (
	ErrMalformedFrame       = errors.New("malformed frame")
	ErrUnsupportedFrameType = errors.New("unsupported frame type")
)

// FrameInfo is the classification result: frame subtype, sender and the
// ordered IE list recovered from the frame body.
type FrameInfo struct {
	Type      FrameType
	SourceMAC net.HardwareAddr
	Elements  []ie.Element

	// Beacon/probe-response fixed fields. Zero for action frames.
	Timestamp      uint64
	BeaconInterval uint16
	Capability     uint16
}

// Classify validates the MAC header of a raw management frame and walks its
// IE region. Only Beacon, Probe Response and Action frames are IE-bearing;
// anything else returns ErrUnsupportedFrameType so the caller can skip it.
// A truncated IE region is not an error: the IEs recovered before the
// truncation are returned.
func Classify(frame []byte) (*FrameInfo, error) {
	if len(frame) < macHeaderLen {
		return nil, fmt.Errorf("%w: %d bytes, need %d", ErrMalformedFrame, len(frame), macHeaderLen)
	}

	fc := binary.LittleEndian.Uint16(frame[0:2])
	frameType := int(fc>>2) & 0x3
	subtype := int(fc>>4) & 0xF

	if frameType != typeMgmt {
		return nil, fmt.Errorf("%w: type %d", ErrUnsupportedFrameType, frameType)
	}

	info := &FrameInfo{
		// Address 2 is the transmitter in management frames.
		SourceMAC: net.HardwareAddr(append([]byte(nil), frame[10:16]...)),
	}

	body := frame[macHeaderLen:]

	switch subtype {
	case subtypeBeacon, subtypeProbeResp:
		if subtype == subtypeBeacon {
			info.Type = FrameBeacon
		} else {
			info.Type = FrameProbeResponse
		}
		if len(body) < beaconFixedLen {
			return nil, fmt.Errorf("%w: beacon body %d bytes", ErrMalformedFrame, len(body))
		}
		info.Timestamp = binary.LittleEndian.Uint64(body[0:8])
		info.BeaconInterval = binary.LittleEndian.Uint16(body[8:10])
		info.Capability = binary.LittleEndian.Uint16(body[10:12])
		info.Elements = ie.Parse(body[beaconFixedLen:])

	case subtypeAction:
		info.Type = FrameAction
		// Category and action code precede any vendor content.
		if len(body) > 2 {
			info.Elements = ie.Parse(body[2:])
		}

	default:
		return nil, fmt.Errorf("%w: mgmt subtype %d", ErrUnsupportedFrameType, subtype)
	}

	return info, nil
}
