package domain

// ChangeKind вид изменения состояния доски
type ChangeKind string

const (
	ChangeUpsert ChangeKind = "upsert"
	ChangeDelete ChangeKind = "delete"
)

// ChangeEvent фиксирует одно примененное изменение доски.
// События публикуются после коммита мутации и потребляются
// журналом персистентности вне критической секции.
type ChangeEvent struct {
	Kind          ChangeKind
	AppointmentID int64
	// Appointment копия записи после изменения; nil для ChangeDelete
	Appointment *Appointment
}
