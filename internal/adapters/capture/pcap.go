// Package capture adapts external frame feeds (pcap files, hex dumps) to
// the FrameSource port. It strips link-layer headers and passes RSSI and
// frequency metadata through untouched; decoding happens downstream.
package capture

import (
	"context"
	"fmt"
	"os"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/google/gopacket/pcapgo"

	"github.com/Parfait-17/Detection-droneV3/internal/core/ports"
)

// PcapSource reads 802.11 frames from a pcap file. Radiotap link types are
// unwrapped to the bare 802.11 frame, keeping signal metadata.
type PcapSource struct {
	f        *os.File
	reader   *pcapgo.Reader
	linkType layers.LinkType
}

// NewPcapSource opens a pcap file with an 802.11 or Radiotap link type.
func NewPcapSource(path string) (*PcapSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pcap: %w", err)
	}
	reader, err := pcapgo.NewReader(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("read pcap header: %w", err)
	}

	linkType := layers.LinkType(reader.LinkType())
	switch linkType {
	case layers.LinkTypeIEEE80211Radio, layers.LinkTypeIEEE802_11:
	default:
		f.Close()
		return nil, fmt.Errorf("pcap link type %s is not 802.11", linkType)
	}

	return &PcapSource{f: f, reader: reader, linkType: linkType}, nil
}

// Next returns the next frame. io.EOF signals a cleanly exhausted file.
func (s *PcapSource) Next(ctx context.Context) (ports.RawFrame, error) {
	if err := ctx.Err(); err != nil {
		return ports.RawFrame{}, err
	}

	data, ci, err := s.reader.ReadPacketData()
	if err != nil {
		return ports.RawFrame{}, err
	}

	frame := ports.RawFrame{Bytes: data, Time: ci.Timestamp}

	if s.linkType == layers.LinkTypeIEEE80211Radio {
		packet := gopacket.NewPacket(data, layers.LayerTypeRadioTap, gopacket.Lazy)
		if rtLayer := packet.Layer(layers.LayerTypeRadioTap); rtLayer != nil {
			if rt, ok := rtLayer.(*layers.RadioTap); ok {
				frame.Bytes = rt.LayerPayload()
				frame.RSSI = int(rt.DBMAntennaSignal)
				frame.Frequency = int(rt.ChannelFrequency)
				frame.Channel = frequencyToChannel(frame.Frequency)
			}
		}
	}

	return frame, nil
}

func (s *PcapSource) Close() error {
	return s.f.Close()
}

// frequencyToChannel converts a WiFi center frequency (MHz) to its channel
// number. Remote ID broadcasts sit almost exclusively on 2.4 GHz channel 6,
// but the 5/6 GHz bands are mapped for completeness.
func frequencyToChannel(freq int) int {
	if freq >= 2412 && freq <= 2484 {
		if freq == 2484 {
			return 14
		}
		return (freq - 2407) / 5
	}
	if freq >= 5170 && freq <= 5825 {
		return (freq - 5000) / 5
	}
	if freq >= 5955 && freq <= 7115 {
		return (freq - 5950) / 5
	}
	return 0
}
