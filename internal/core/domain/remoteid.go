package domain

import "time"

// IDType identifies the kind of UAS identifier carried in a Basic ID message.
type IDType int

const (
	IDTypeNone IDType = iota
	IDTypeSerialNumber
	IDTypeCAARegistration
	IDTypeUTMAssigned
	IDTypeSpecificSession
	// IDTypePattern marks identifiers recovered by the heuristic byte-pattern
	// scanner rather than a conformant Basic ID message.
	IDTypePattern
)

func (t IDType) String() string {
	switch t {
	case IDTypeNone:
		return "None"
	case IDTypeSerialNumber:
		return "Serial Number"
	case IDTypeCAARegistration:
		return "CAA Registration ID"
	case IDTypeUTMAssigned:
		return "UTM Assigned ID"
	case IDTypeSpecificSession:
		return "Specific Session ID"
	case IDTypePattern:
		return "Pattern"
	}
	return "Unknown"
}

// OperationalStatus is the flight status reported in a Location/Vector message.
type OperationalStatus int

const (
	StatusUnknown OperationalStatus = iota
	StatusGround
	StatusAirborne
	StatusEmergency
)

func (s OperationalStatus) String() string {
	switch s {
	case StatusGround:
		return "Ground"
	case StatusAirborne:
		return "Airborne"
	case StatusEmergency:
		return "Emergency"
	}
	return "Unknown"
}

// Source records which extraction path produced a record.
type Source string

const (
	SourceStandard Source = "standard"
	SourcePattern  Source = "pattern"
)

// RemoteIDRecord is the flattened output record accumulated from the ODID
// messages of one or more frames. Numeric fields are pointers so that a
// sentinel-valued ("unknown") field stays nil instead of reading as zero;
// zero is a valid latitude.
type RemoteIDRecord struct {
	UASID     string `json:"uas_id"`
	UASIDType IDType `json:"uas_id_type"`

	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`

	AltitudePressure *float64 `json:"altitude_pressure,omitempty"` // meters, baro
	AltitudeMSL      *float64 `json:"altitude_msl,omitempty"`      // meters, geodetic
	HeightAGL        *float64 `json:"height_agl,omitempty"`        // meters above ground/takeoff

	Speed         *float64 `json:"speed,omitempty"`          // m/s horizontal
	Heading       *float64 `json:"heading,omitempty"`        // degrees [0,360)
	VerticalSpeed *float64 `json:"vertical_speed,omitempty"` // m/s, up positive

	Status OperationalStatus `json:"status"`

	// Tenths of a second since the last hour boundary, from the Location message.
	LocationTimestamp *float64 `json:"location_timestamp,omitempty"`

	OperatorID        string   `json:"operator_id,omitempty"`
	OperatorLatitude  *float64 `json:"operator_latitude,omitempty"`
	OperatorLongitude *float64 `json:"operator_longitude,omitempty"`
	OperatorAltitude  *float64 `json:"operator_altitude,omitempty"`

	SelfID string `json:"self_id,omitempty"`

	// System message fields.
	OperatorLocationType int `json:"operator_location_type,omitempty"`
	ClassificationType   int `json:"classification_type,omitempty"`
	CategoryEU           int `json:"category_eu,omitempty"`
	ClassEU              int `json:"class_eu,omitempty"`
	AreaCount            int `json:"area_count,omitempty"`
	AreaRadius           int `json:"area_radius,omitempty"` // meters
	AreaCeiling          *float64 `json:"area_ceiling,omitempty"`
	AreaFloor            *float64 `json:"area_floor,omitempty"`

	// Authentication, single page only. Multi-page reassembly is not
	// implemented; pages past the first are counted but not kept.
	AuthType          *int   `json:"auth_type,omitempty"`
	AuthPage          *int   `json:"auth_page,omitempty"`
	AuthLastPage      *int   `json:"auth_last_page,omitempty"`
	AuthData          []byte `json:"auth_data,omitempty"`
	AuthMultiPage     bool   `json:"auth_multi_page,omitempty"`

	Timestamp time.Time `json:"timestamp"` // capture time of the owning frame
	Source    Source    `json:"source"`
}

// HasIdentity reports whether the record carries a UAS identifier.
func (r *RemoteIDRecord) HasIdentity() bool {
	return r.UASID != ""
}

// HasPosition reports whether both coordinates were decoded.
func (r *RemoteIDRecord) HasPosition() bool {
	return r.Latitude != nil && r.Longitude != nil
}

// Detection is the envelope handed to stores and sinks: one merged record
// plus capture metadata and session bookkeeping.
type Detection struct {
	SessionID string         `json:"session_id"`
	SourceMAC string         `json:"source_mac"`
	Record    RemoteIDRecord `json:"record"`

	RSSI      int `json:"rssi,omitempty"`
	Frequency int `json:"freq,omitempty"`
	Channel   int `json:"channel,omitempty"`

	FirstSeen time.Time `json:"first_seen"`
	LastSeen  time.Time `json:"last_seen"`
	Frames    int       `json:"frames"`
}

// Float is a convenience for building optional numeric fields.
func Float(v float64) *float64 { return &v }

// Int is the int counterpart of Float.
func Int(v int) *int { return &v }
