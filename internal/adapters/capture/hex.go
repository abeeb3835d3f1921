package capture

import (
	"bufio"
	"context"
	"encoding/hex"
	"io"
	"strings"
	"time"

	"github.com/Parfait-17/Detection-droneV3/internal/core/ports"
)

// HexSource reads one hex-encoded management frame per line, for piping
// captures out of external demodulators or replaying test vectors. Blank
// lines and '#' comments are skipped; whitespace inside a line is ignored.
type HexSource struct {
	scanner *bufio.Scanner
	closer  io.Closer
}

// NewHexSource wraps a reader of hex frame lines.
func NewHexSource(r io.Reader) *HexSource {
	src := &HexSource{scanner: bufio.NewScanner(r)}
	if c, ok := r.(io.Closer); ok {
		src.closer = c
	}
	// Frames can exceed the default token size once hex-doubled.
	src.scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	return src
}

// Next returns the next decodable line. io.EOF signals exhausted input;
// undecodable lines are skipped, not fatal.
func (s *HexSource) Next(ctx context.Context) (ports.RawFrame, error) {
	for {
		if err := ctx.Err(); err != nil {
			return ports.RawFrame{}, err
		}
		if !s.scanner.Scan() {
			if err := s.scanner.Err(); err != nil {
				return ports.RawFrame{}, err
			}
			return ports.RawFrame{}, io.EOF
		}

		line := strings.TrimSpace(s.scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		line = strings.Map(func(r rune) rune {
			if r == ' ' || r == '\t' || r == ':' {
				return -1
			}
			return r
		}, line)

		data, err := hex.DecodeString(line)
		if err != nil {
			continue
		}
		return ports.RawFrame{Bytes: data, Time: time.Now()}, nil
	}
}

func (s *HexSource) Close() error {
	if s.closer != nil {
		return s.closer.Close()
	}
	return nil
}
