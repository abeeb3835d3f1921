package domain

// MessageType tags the seven ODID message kinds defined by ASTM F3411.
type MessageType byte

const (
	MessageTypeBasicID     MessageType = 0x0
	MessageTypeLocation    MessageType = 0x1
	MessageTypeAuth        MessageType = 0x2
	MessageTypeSelfID      MessageType = 0x3
	MessageTypeSystem      MessageType = 0x4
	MessageTypeOperatorID  MessageType = 0x5
	MessageTypeMessagePack MessageType = 0xF
)

func (t MessageType) String() string {
	switch t {
	case MessageTypeBasicID:
		return "BasicID"
	case MessageTypeLocation:
		return "Location"
	case MessageTypeAuth:
		return "Authentication"
	case MessageTypeSelfID:
		return "SelfID"
	case MessageTypeSystem:
		return "System"
	case MessageTypeOperatorID:
		return "OperatorID"
	case MessageTypeMessagePack:
		return "MessagePack"
	}
	return "Unknown"
}

// Message is the tagged union over decoded ODID messages. Each variant
// carries only the fields relevant to its kind; the flattened
// RemoteIDRecord is built by applying messages in sequence.
type Message interface {
	MessageType() MessageType
}

// BasicID carries the UAS identifier.
type BasicID struct {
	IDType IDType
	UASID  string
}

func (BasicID) MessageType() MessageType { return MessageTypeBasicID }

// Location carries position and velocity. Pointer fields are nil when the
// wire value was the "unknown" sentinel.
type Location struct {
	Status            OperationalStatus
	HeightAboveGround bool // height references ground rather than takeoff

	Speed         *float64
	Heading       *float64
	VerticalSpeed *float64

	Latitude  *float64
	Longitude *float64

	AltitudePressure *float64
	AltitudeMSL      *float64
	HeightAGL        *float64

	HorizontalAccuracy int
	VerticalAccuracy   int

	// Tenths of a second since the last hour boundary.
	Timestamp *float64
}

func (Location) MessageType() MessageType { return MessageTypeLocation }

// Authentication is a single authentication page. Reassembly across pages
// is unsupported; callers must treat LastPage > 0 as partial data.
type Authentication struct {
	AuthType int
	Page     int
	LastPage int
	Length   int
	Data     []byte
}

func (Authentication) MessageType() MessageType { return MessageTypeAuth }

// SelfID is the operator-entered free-text description.
type SelfID struct {
	DescriptionType int
	Description     string
}

func (SelfID) MessageType() MessageType { return MessageTypeSelfID }

// System carries operator location and airspace context.
type System struct {
	OperatorLocationType int
	ClassificationType   int

	OperatorLatitude  *float64
	OperatorLongitude *float64
	OperatorAltitude  *float64

	AreaCount   int
	AreaRadius  int // meters
	AreaCeiling *float64
	AreaFloor   *float64

	CategoryEU int
	ClassEU    int
}

func (System) MessageType() MessageType { return MessageTypeSystem }

// OperatorID carries the operator registration identifier.
type OperatorID struct {
	IDType     int
	OperatorID string
}

func (OperatorID) MessageType() MessageType { return MessageTypeOperatorID }

// MessagePack bundles several single messages from one transmission.
type MessagePack struct {
	MessageSize int
	Messages    []Message
}

func (MessagePack) MessageType() MessageType { return MessageTypeMessagePack }

// Unknown preserves the header of a message type outside the known range so
// siblings in a pack keep their position without the decoder guessing.
type Unknown struct {
	RawType byte
}

func (u Unknown) MessageType() MessageType { return MessageType(u.RawType) }
