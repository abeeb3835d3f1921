package session

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Parfait-17/Detection-droneV3/internal/core/domain"
)

func frameDetection(mac string, rec domain.RemoteIDRecord) domain.Detection {
	if rec.Timestamp.IsZero() {
		rec.Timestamp = time.Now()
	}
	return domain.Detection{SourceMAC: mac, Record: rec}
}

func TestTrack_NewSessionWithIdentity(t *testing.T) {
	r := NewRegistry()

	det, publishable := r.Track(frameDetection("60:60:1f:00:00:01", domain.RemoteIDRecord{
		UASID:     "1FFJX8K3QH000001",
		UASIDType: domain.IDTypeSerialNumber,
		Source:    domain.SourceStandard,
	}))

	assert.True(t, publishable, "first frame with an identity must publish")
	assert.NotEmpty(t, det.SessionID)
	assert.Equal(t, 1, det.Frames)
	assert.Equal(t, 1, r.Active())
}

func TestTrack_IdentityArrivesLater(t *testing.T) {
	r := NewRegistry()
	mac := "60:60:1f:00:00:02"

	// Location-only frame first: session exists but is held back.
	_, publishable := r.Track(frameDetection(mac, domain.RemoteIDRecord{
		Latitude:  domain.Float(45.5),
		Longitude: domain.Float(-73.45),
		Source:    domain.SourceStandard,
	}))
	assert.False(t, publishable)

	// Basic ID in a later frame completes the session.
	det, publishable := r.Track(frameDetection(mac, domain.RemoteIDRecord{
		UASID:     "1FFJX8K3QH000001",
		UASIDType: domain.IDTypeSerialNumber,
		Source:    domain.SourceStandard,
	}))
	require.True(t, publishable)

	assert.Equal(t, "1FFJX8K3QH000001", det.Record.UASID)
	require.True(t, det.Record.HasPosition(), "position from the first frame must survive the merge")
	assert.InDelta(t, 45.5, *det.Record.Latitude, 1e-9)
	assert.Equal(t, 2, det.Frames)

	// The identity transition fires exactly once.
	_, publishable = r.Track(frameDetection(mac, domain.RemoteIDRecord{
		UASID:     "1FFJX8K3QH000001",
		UASIDType: domain.IDTypeSerialNumber,
		Source:    domain.SourceStandard,
	}))
	assert.False(t, publishable)
}

func TestTrack_DistinctTransmittersDoNotMerge(t *testing.T) {
	r := NewRegistry()

	a, _ := r.Track(frameDetection("60:60:1f:00:00:03", domain.RemoteIDRecord{
		UASID: "SERIAL-A", Source: domain.SourceStandard,
	}))
	b, _ := r.Track(frameDetection("60:60:1f:00:00:04", domain.RemoteIDRecord{
		UASID: "SERIAL-B", Source: domain.SourceStandard,
	}))

	assert.NotEqual(t, a.SessionID, b.SessionID)
	assert.Equal(t, 2, r.Active())

	got, ok := r.Get("60:60:1f:00:00:03")
	require.True(t, ok)
	assert.Equal(t, "SERIAL-A", got.Record.UASID)
}

func TestTrack_StandardsIdentityBeatsPattern(t *testing.T) {
	r := NewRegistry()
	mac := "60:60:1f:00:00:05"

	r.Track(frameDetection(mac, domain.RemoteIDRecord{
		UASID: "DJI-RID-784CE0", UASIDType: domain.IDTypePattern, Source: domain.SourcePattern,
	}))
	det, _ := r.Track(frameDetection(mac, domain.RemoteIDRecord{
		UASID: "1FFJX8K3QH000001", UASIDType: domain.IDTypeSerialNumber, Source: domain.SourceStandard,
	}))

	assert.Equal(t, "1FFJX8K3QH000001", det.Record.UASID)
	assert.Equal(t, domain.SourceStandard, det.Record.Source)

	// And the pattern path never takes it back.
	det, _ = r.Track(frameDetection(mac, domain.RemoteIDRecord{
		UASID: "DJI-RID-784CE0", UASIDType: domain.IDTypePattern, Source: domain.SourcePattern,
	}))
	assert.Equal(t, "1FFJX8K3QH000001", det.Record.UASID)
	assert.Equal(t, domain.IDTypeSerialNumber, det.Record.UASIDType)
}

func TestTrack_SentinelNeverErasesKnownField(t *testing.T) {
	r := NewRegistry()
	mac := "60:60:1f:00:00:06"

	r.Track(frameDetection(mac, domain.RemoteIDRecord{
		UASID:   "SERIAL-X",
		Source:  domain.SourceStandard,
		Speed:   domain.Float(12.5),
		Heading: domain.Float(270),
	}))
	// Next frame reports heading unknown.
	det, _ := r.Track(frameDetection(mac, domain.RemoteIDRecord{
		UASID:  "SERIAL-X",
		Source: domain.SourceStandard,
		Speed:  domain.Float(11),
	}))

	require.NotNil(t, det.Record.Heading)
	assert.InDelta(t, 270, *det.Record.Heading, 1e-9)
	assert.InDelta(t, 11, *det.Record.Speed, 1e-9)
}

func TestPrune(t *testing.T) {
	r := NewRegistry()
	stale := frameDetection("60:60:1f:00:00:07", domain.RemoteIDRecord{
		UASID:     "OLD",
		Source:    domain.SourceStandard,
		Timestamp: time.Now().Add(-10 * time.Minute),
	})
	fresh := frameDetection("60:60:1f:00:00:08", domain.RemoteIDRecord{
		UASID:  "NEW",
		Source: domain.SourceStandard,
	})
	r.Track(stale)
	r.Track(fresh)

	pruned := r.Prune(5 * time.Minute)

	assert.Equal(t, 1, pruned)
	assert.Equal(t, 1, r.Active())
	_, ok := r.Get("60:60:1f:00:00:07")
	assert.False(t, ok)

	// A pruned transmitter starts over, with a fresh session ID.
	det, publishable := r.Track(frameDetection("60:60:1f:00:00:07", domain.RemoteIDRecord{
		UASID:  "OLD",
		Source: domain.SourceStandard,
	}))
	assert.True(t, publishable)
	assert.Equal(t, 1, det.Frames)
}

func TestTrackAndPruneConcurrently(t *testing.T) {
	r := NewRegistry()
	var wg sync.WaitGroup

	for w := 0; w < 4; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				mac := fmt.Sprintf("60:60:1f:00:%02x:%02x", w, i%8)
				r.Track(frameDetection(mac, domain.RemoteIDRecord{
					UASID:  "SERIAL-" + mac,
					Source: domain.SourceStandard,
				}))
			}
		}(w)
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 50; i++ {
			r.Prune(time.Nanosecond)
		}
	}()
	wg.Wait()

	// Every tracked session that survived pruning is still readable.
	for _, det := range []string{"60:60:1f:00:00:00", "60:60:1f:00:03:07"} {
		if got, ok := r.Get(det); ok {
			assert.Equal(t, "SERIAL-"+det, got.Record.UASID)
		}
	}
}

func TestClear(t *testing.T) {
	r := NewRegistry()
	r.Track(frameDetection("60:60:1f:00:00:09", domain.RemoteIDRecord{UASID: "X", Source: domain.SourceStandard}))

	r.Clear()

	assert.Equal(t, 0, r.Active())
}
