// Package session owns the mutable cross-frame state the pure decoder
// deliberately avoids: a real Remote ID broadcaster cycles Basic ID,
// Location and Operator ID across successive beacons, so per-frame records
// are merged into per-transmitter sessions keyed by source MAC.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Parfait-17/Detection-droneV3/internal/core/domain"
)

const numShards = 16

type sessionShard struct {
	mu       sync.RWMutex
	sessions map[string]domain.Detection
}

// Registry is a sharded, TTL-bounded accumulator of detections keyed by
// source MAC address.
type Registry struct {
	shards [numShards]*sessionShard
	merger *Merger
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	r := &Registry{merger: NewMerger()}
	for i := 0; i < numShards; i++ {
		r.shards[i] = &sessionShard{sessions: make(map[string]domain.Detection)}
	}
	return r
}

func (r *Registry) getShard(mac string) *sessionShard {
	hash := uint32(0)
	for i := 0; i < len(mac); i++ {
		hash = hash*31 + uint32(mac[i])
	}
	return r.shards[hash%numShards]
}

// Track merges a per-frame detection into the transmitter's session and
// returns the merged state plus whether this frame made the session
// publishable (merged record gained its identity just now).
func (r *Registry) Track(det domain.Detection) (domain.Detection, bool) {
	shard := r.getShard(det.SourceMAC)
	shard.mu.Lock()
	defer shard.mu.Unlock()

	existing, ok := shard.sessions[det.SourceMAC]
	if !ok {
		det.SessionID = uuid.NewString()
		if det.FirstSeen.IsZero() {
			det.FirstSeen = det.Record.Timestamp
		}
		det.LastSeen = det.Record.Timestamp
		det.Frames = 1
		shard.sessions[det.SourceMAC] = det
		return det, det.Record.HasIdentity()
	}

	hadIdentity := existing.Record.HasIdentity()
	r.merger.Merge(&existing, det)
	shard.sessions[det.SourceMAC] = existing

	return existing, !hadIdentity && existing.Record.HasIdentity()
}

// Get returns the current session for a MAC.
func (r *Registry) Get(mac string) (domain.Detection, bool) {
	shard := r.getShard(mac)
	shard.mu.RLock()
	defer shard.mu.RUnlock()
	det, ok := shard.sessions[mac]
	return det, ok
}

// Active returns the number of live sessions.
func (r *Registry) Active() int {
	count := 0
	for _, shard := range r.shards {
		shard.mu.RLock()
		count += len(shard.sessions)
		shard.mu.RUnlock()
	}
	return count
}

// Prune drops sessions not seen within ttl and returns how many were
// removed. A pruned transmitter starts a fresh session on its next frame.
func (r *Registry) Prune(ttl time.Duration) int {
	threshold := time.Now().Add(-ttl)
	deleted := 0
	for _, shard := range r.shards {
		shard.mu.Lock()
		for mac, det := range shard.sessions {
			if det.LastSeen.Before(threshold) {
				delete(shard.sessions, mac)
				deleted++
			}
		}
		shard.mu.Unlock()
	}
	return deleted
}

// Clear wipes all session state.
func (r *Registry) Clear() {
	for _, shard := range r.shards {
		shard.mu.Lock()
		shard.sessions = make(map[string]domain.Detection)
		shard.mu.Unlock()
	}
}
