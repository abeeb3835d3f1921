package odid

import "github.com/Parfait-17/Detection-droneV3/internal/core/domain"

// Apply folds one decoded message into the flattened record. Pointer fields
// only overwrite when the message actually carried a value, so a sentinel
// in a later frame never erases a known field.
func Apply(rec *domain.RemoteIDRecord, msg domain.Message) {
	switch m := msg.(type) {
	case domain.BasicID:
		if m.UASID != "" {
			rec.UASID = m.UASID
			rec.UASIDType = m.IDType
		}

	case domain.Location:
		rec.Status = m.Status
		setFloat(&rec.Latitude, m.Latitude)
		setFloat(&rec.Longitude, m.Longitude)
		setFloat(&rec.AltitudePressure, m.AltitudePressure)
		setFloat(&rec.AltitudeMSL, m.AltitudeMSL)
		setFloat(&rec.HeightAGL, m.HeightAGL)
		setFloat(&rec.Speed, m.Speed)
		setFloat(&rec.Heading, m.Heading)
		setFloat(&rec.VerticalSpeed, m.VerticalSpeed)
		setFloat(&rec.LocationTimestamp, m.Timestamp)

	case domain.Authentication:
		rec.AuthType = domain.Int(m.AuthType)
		rec.AuthPage = domain.Int(m.Page)
		if m.Page == 0 {
			rec.AuthLastPage = domain.Int(m.LastPage)
			rec.AuthData = m.Data
			rec.AuthMultiPage = m.LastPage > 0
		} else {
			// Later pages are acknowledged but never reassembled.
			rec.AuthMultiPage = true
		}

	case domain.SelfID:
		if m.Description != "" {
			rec.SelfID = m.Description
		}

	case domain.System:
		rec.OperatorLocationType = m.OperatorLocationType
		rec.ClassificationType = m.ClassificationType
		rec.CategoryEU = m.CategoryEU
		rec.ClassEU = m.ClassEU
		rec.AreaCount = m.AreaCount
		rec.AreaRadius = m.AreaRadius
		setFloat(&rec.AreaCeiling, m.AreaCeiling)
		setFloat(&rec.AreaFloor, m.AreaFloor)
		setFloat(&rec.OperatorLatitude, m.OperatorLatitude)
		setFloat(&rec.OperatorLongitude, m.OperatorLongitude)
		setFloat(&rec.OperatorAltitude, m.OperatorAltitude)

	case domain.OperatorID:
		if m.OperatorID != "" {
			rec.OperatorID = m.OperatorID
		}

	case domain.MessagePack:
		for _, sub := range m.Messages {
			Apply(rec, sub)
		}

	case domain.Unknown:
		// Skipped: a single unrecognized sub-message must not disturb
		// its siblings.
	}
}

func setFloat(dst **float64, src *float64) {
	if src != nil {
		*dst = src
	}
}
