package storage

import "github.com/Parfait-17/Detection-droneV3/internal/core/domain"

func toModel(det domain.Detection) DetectionModel {
	rec := det.Record
	return DetectionModel{
		SessionID: det.SessionID,
		SourceMAC: det.SourceMAC,

		UASID:     rec.UASID,
		UASIDType: int(rec.UASIDType),
		Source:    string(rec.Source),

		Latitude:          rec.Latitude,
		Longitude:         rec.Longitude,
		AltitudePressure:  rec.AltitudePressure,
		AltitudeMSL:       rec.AltitudeMSL,
		HeightAGL:         rec.HeightAGL,
		Speed:             rec.Speed,
		Heading:           rec.Heading,
		VerticalSpeed:     rec.VerticalSpeed,
		Status:            int(rec.Status),
		LocationTimestamp: rec.LocationTimestamp,

		OperatorID:        rec.OperatorID,
		OperatorLatitude:  rec.OperatorLatitude,
		OperatorLongitude: rec.OperatorLongitude,
		OperatorAltitude:  rec.OperatorAltitude,
		SelfID:            rec.SelfID,

		OperatorLocationType: rec.OperatorLocationType,
		ClassificationType:   rec.ClassificationType,
		CategoryEU:           rec.CategoryEU,
		ClassEU:              rec.ClassEU,
		AreaCount:            rec.AreaCount,
		AreaRadius:           rec.AreaRadius,
		AreaCeiling:          rec.AreaCeiling,
		AreaFloor:            rec.AreaFloor,

		AuthType:      rec.AuthType,
		AuthPage:      rec.AuthPage,
		AuthLastPage:  rec.AuthLastPage,
		AuthData:      rec.AuthData,
		AuthMultiPage: rec.AuthMultiPage,

		RSSI:      det.RSSI,
		Frequency: det.Frequency,
		Channel:   det.Channel,

		FirstSeen: det.FirstSeen,
		LastSeen:  det.LastSeen,
		Frames:    det.Frames,
	}
}

func toDomain(model DetectionModel) domain.Detection {
	return domain.Detection{
		SessionID: model.SessionID,
		SourceMAC: model.SourceMAC,
		Record: domain.RemoteIDRecord{
			UASID:     model.UASID,
			UASIDType: domain.IDType(model.UASIDType),
			Source:    domain.Source(model.Source),

			Latitude:          model.Latitude,
			Longitude:         model.Longitude,
			AltitudePressure:  model.AltitudePressure,
			AltitudeMSL:       model.AltitudeMSL,
			HeightAGL:         model.HeightAGL,
			Speed:             model.Speed,
			Heading:           model.Heading,
			VerticalSpeed:     model.VerticalSpeed,
			Status:            domain.OperationalStatus(model.Status),
			LocationTimestamp: model.LocationTimestamp,

			OperatorID:        model.OperatorID,
			OperatorLatitude:  model.OperatorLatitude,
			OperatorLongitude: model.OperatorLongitude,
			OperatorAltitude:  model.OperatorAltitude,
			SelfID:            model.SelfID,

			OperatorLocationType: model.OperatorLocationType,
			ClassificationType:   model.ClassificationType,
			CategoryEU:           model.CategoryEU,
			ClassEU:              model.ClassEU,
			AreaCount:            model.AreaCount,
			AreaRadius:           model.AreaRadius,
			AreaCeiling:          model.AreaCeiling,
			AreaFloor:            model.AreaFloor,

			AuthType:      model.AuthType,
			AuthPage:      model.AuthPage,
			AuthLastPage:  model.AuthLastPage,
			AuthData:      model.AuthData,
			AuthMultiPage: model.AuthMultiPage,

			Timestamp: model.LastSeen,
		},
		RSSI:      model.RSSI,
		Frequency: model.Frequency,
		Channel:   model.Channel,
		FirstSeen: model.FirstSeen,
		LastSeen:  model.LastSeen,
		Frames:    model.Frames,
	}
}
