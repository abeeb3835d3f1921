package session

import "github.com/Parfait-17/Detection-droneV3/internal/core/domain"

// Merger folds a new per-frame detection into an existing session. Rules:
// newer non-sentinel values win, absent values never erase known ones, and
// a standards-path identity is never overridden by a pattern-path one.
type Merger struct{}

func NewMerger() *Merger { return &Merger{} }

// Merge updates existing in place with the fields of update.
func (m *Merger) Merge(existing *domain.Detection, update domain.Detection) {
	existing.LastSeen = update.Record.Timestamp
	existing.Frames++
	if update.RSSI != 0 {
		existing.RSSI = update.RSSI
	}
	if update.Frequency > 0 {
		existing.Frequency = update.Frequency
	}
	if update.Channel > 0 {
		existing.Channel = update.Channel
	}

	m.mergeRecord(&existing.Record, update.Record)
}

func (m *Merger) mergeRecord(rec *domain.RemoteIDRecord, update domain.RemoteIDRecord) {
	rec.Timestamp = update.Timestamp

	if update.UASID != "" {
		// The standards path always beats the heuristic path; within the
		// same path the newest identity wins.
		standardsOverPattern := rec.Source == domain.SourcePattern && update.Source == domain.SourceStandard
		if rec.UASID == "" || standardsOverPattern || rec.Source == update.Source {
			rec.UASID = update.UASID
			rec.UASIDType = update.UASIDType
			rec.Source = update.Source
		}
	}

	if update.Status != domain.StatusUnknown {
		rec.Status = update.Status
	}

	mergeFloat(&rec.Latitude, update.Latitude)
	mergeFloat(&rec.Longitude, update.Longitude)
	mergeFloat(&rec.AltitudePressure, update.AltitudePressure)
	mergeFloat(&rec.AltitudeMSL, update.AltitudeMSL)
	mergeFloat(&rec.HeightAGL, update.HeightAGL)
	mergeFloat(&rec.Speed, update.Speed)
	mergeFloat(&rec.Heading, update.Heading)
	mergeFloat(&rec.VerticalSpeed, update.VerticalSpeed)
	mergeFloat(&rec.LocationTimestamp, update.LocationTimestamp)
	mergeFloat(&rec.OperatorLatitude, update.OperatorLatitude)
	mergeFloat(&rec.OperatorLongitude, update.OperatorLongitude)
	mergeFloat(&rec.OperatorAltitude, update.OperatorAltitude)
	mergeFloat(&rec.AreaCeiling, update.AreaCeiling)
	mergeFloat(&rec.AreaFloor, update.AreaFloor)

	if update.OperatorID != "" {
		rec.OperatorID = update.OperatorID
	}
	if update.SelfID != "" {
		rec.SelfID = update.SelfID
	}
	if update.OperatorLocationType != 0 {
		rec.OperatorLocationType = update.OperatorLocationType
	}
	if update.ClassificationType != 0 {
		rec.ClassificationType = update.ClassificationType
	}
	if update.CategoryEU != 0 {
		rec.CategoryEU = update.CategoryEU
	}
	if update.ClassEU != 0 {
		rec.ClassEU = update.ClassEU
	}
	if update.AreaCount != 0 {
		rec.AreaCount = update.AreaCount
	}
	if update.AreaRadius != 0 {
		rec.AreaRadius = update.AreaRadius
	}

	if update.AuthType != nil {
		rec.AuthType = update.AuthType
		rec.AuthPage = update.AuthPage
		if update.AuthLastPage != nil {
			rec.AuthLastPage = update.AuthLastPage
		}
		if len(update.AuthData) > 0 {
			rec.AuthData = update.AuthData
		}
		rec.AuthMultiPage = rec.AuthMultiPage || update.AuthMultiPage
	}
}

func mergeFloat(dst **float64, src *float64) {
	if src != nil {
		*dst = src
	}
}
