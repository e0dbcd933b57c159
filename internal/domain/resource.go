package domain

// ViewAxis determines which resource lane a board view (and a move command) targets
type ViewAxis string

const (
	AxisDoctor ViewAxis = "doctor"
	AxisRoom   ViewAxis = "room"
)

// IsValid returns true for a known axis value
func (a ViewAxis) IsValid() bool {
	return a == AxisDoctor || a == AxisRoom
}

// ResourceKind names the resource axis on which a conflict was detected.
// Serialized in conflict responses as DOCTOR or ROOM.
type ResourceKind string

const (
	ResourceDoctor ResourceKind = "DOCTOR"
	ResourceRoom   ResourceKind = "ROOM"
)

// RoomType represents the kind of a room
type RoomType string

const (
	RoomOperating    RoomType = "operating"
	RoomConsultation RoomType = "consultation"
)

// Doctor read-only reference data, owned by the clinic directory service
type Doctor struct {
	ID        int64
	Name      string
	Specialty string
}

// Room read-only reference data, owned by the clinic directory service
type Room struct {
	ID   int64
	Name string
	Type RoomType
}
