package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Parfait-17/Detection-droneV3/internal/core/domain"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "detections.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func sampleDetection(sessionID, mac string, lastSeen time.Time) domain.Detection {
	return domain.Detection{
		SessionID: sessionID,
		SourceMAC: mac,
		Record: domain.RemoteIDRecord{
			UASID:     "1FFJX8K3QH000001",
			UASIDType: domain.IDTypeSerialNumber,
			Source:    domain.SourceStandard,
			Latitude:  domain.Float(45.5031230),
			Longitude: domain.Float(-73.4561890),
			Speed:     domain.Float(10),
			Status:    domain.StatusAirborne,
		},
		RSSI:      -63,
		Channel:   6,
		FirstSeen: lastSeen.Add(-time.Minute),
		LastSeen:  lastSeen,
		Frames:    12,
	}
}

func TestSaveAndGetBySession(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	now := time.Now().Truncate(time.Second)

	det := sampleDetection("sess-1", "60:60:1f:aa:bb:cc", now)
	require.NoError(t, store.Save(ctx, det))

	got, err := store.GetBySession(ctx, "sess-1")
	require.NoError(t, err)

	assert.Equal(t, "60:60:1f:aa:bb:cc", got.SourceMAC)
	assert.Equal(t, "1FFJX8K3QH000001", got.Record.UASID)
	assert.Equal(t, domain.IDTypeSerialNumber, got.Record.UASIDType)
	assert.Equal(t, domain.SourceStandard, got.Record.Source)
	require.True(t, got.Record.HasPosition())
	assert.InDelta(t, 45.5031230, *got.Record.Latitude, 1e-9)
	assert.Equal(t, -63, got.RSSI)
	assert.Equal(t, 12, got.Frames)
}

func TestSave_UpsertsBySession(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	now := time.Now().Truncate(time.Second)

	det := sampleDetection("sess-2", "60:60:1f:aa:bb:cc", now)
	require.NoError(t, store.Save(ctx, det))

	det.Frames = 40
	det.LastSeen = now.Add(time.Minute)
	require.NoError(t, store.Save(ctx, det))

	got, err := store.GetBySession(ctx, "sess-2")
	require.NoError(t, err)
	assert.Equal(t, 40, got.Frames)

	all, err := store.ListSince(ctx, now.Add(-time.Hour))
	require.NoError(t, err)
	assert.Len(t, all, 1, "upsert must not create a second row")
}

func TestListSince(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	now := time.Now().Truncate(time.Second)

	old := sampleDetection("sess-old", "60:60:1f:00:00:01", now.Add(-2*time.Hour))
	recent := sampleDetection("sess-recent", "60:60:1f:00:00:02", now)
	require.NoError(t, store.Save(ctx, old))
	require.NoError(t, store.Save(ctx, recent))

	got, err := store.ListSince(ctx, now.Add(-time.Hour))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "sess-recent", got[0].SessionID)
}

func TestAuthAndSystemFieldsSurviveRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	det := sampleDetection("sess-full", "60:60:1f:00:00:09", time.Now())
	det.Record.OperatorID = "FIN87astrdge12k8"
	det.Record.OperatorLatitude = domain.Float(45.5)
	det.Record.OperatorLongitude = domain.Float(-73.45)
	det.Record.OperatorAltitude = domain.Float(50)
	det.Record.SelfID = "Aerial survey flight"
	det.Record.OperatorLocationType = 1
	det.Record.ClassificationType = 1
	det.Record.CategoryEU = 1
	det.Record.ClassEU = 2
	det.Record.AreaCount = 1
	det.Record.AreaRadius = 50
	det.Record.AreaCeiling = domain.Float(120)
	det.Record.AreaFloor = domain.Float(0)
	det.Record.AuthType = domain.Int(1)
	det.Record.AuthPage = domain.Int(0)
	det.Record.AuthLastPage = domain.Int(2)
	det.Record.AuthData = []byte{0xDE, 0xAD, 0xBE, 0xEF}
	det.Record.AuthMultiPage = true

	require.NoError(t, store.Save(ctx, det))

	got, err := store.GetBySession(ctx, "sess-full")
	require.NoError(t, err)
	rec := got.Record

	assert.Equal(t, "FIN87astrdge12k8", rec.OperatorID)
	require.NotNil(t, rec.OperatorAltitude)
	assert.InDelta(t, 50, *rec.OperatorAltitude, 1e-9)
	assert.Equal(t, "Aerial survey flight", rec.SelfID)
	assert.Equal(t, 1, rec.OperatorLocationType)
	assert.Equal(t, 1, rec.CategoryEU)
	assert.Equal(t, 2, rec.ClassEU)
	assert.Equal(t, 1, rec.AreaCount)
	assert.Equal(t, 50, rec.AreaRadius)
	require.NotNil(t, rec.AreaCeiling)
	assert.InDelta(t, 120, *rec.AreaCeiling, 1e-9)
	require.NotNil(t, rec.AuthType)
	assert.Equal(t, 1, *rec.AuthType)
	require.NotNil(t, rec.AuthLastPage)
	assert.Equal(t, 2, *rec.AuthLastPage)
	assert.Equal(t, []byte{0xDE, 0xAD, 0xBE, 0xEF}, rec.AuthData)
	assert.True(t, rec.AuthMultiPage)
}

func TestGetBySession_NotFound(t *testing.T) {
	store := newTestStore(t)

	_, err := store.GetBySession(context.Background(), "no-such-session")
	assert.Error(t, err)
}

func TestNilOptionalsSurviveRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	det := domain.Detection{
		SessionID: "sess-3",
		SourceMAC: "60:60:1f:00:00:03",
		Record: domain.RemoteIDRecord{
			UASID:     "DJI-RID-784CE0",
			UASIDType: domain.IDTypePattern,
			Source:    domain.SourcePattern,
		},
		FirstSeen: time.Now(),
		LastSeen:  time.Now(),
		Frames:    1,
	}
	require.NoError(t, store.Save(ctx, det))

	got, err := store.GetBySession(ctx, "sess-3")
	require.NoError(t, err)
	assert.Nil(t, got.Record.Latitude, "unknown position must stay unknown, not zero")
	assert.Nil(t, got.Record.Speed)
	assert.Equal(t, domain.SourcePattern, got.Record.Source)
}
