package domain

import "time"

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pending"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCompleted AppointmentStatus = "completed"
	StatusCancelled AppointmentStatus = "cancelled"
	StatusNoShow    AppointmentStatus = "no_show"
)

// Appointment represents a patient booking on the scheduling board.
// Every appointment occupies two resources at once: a doctor and a room.
type Appointment struct {
	ID        int64
	PatientID int64
	DoctorID  int64
	RoomID    int64
	Start     time.Time
	End       time.Time
	Type      string
	Status    AppointmentStatus
	Notes     *string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HoldsResources returns true if the appointment still occupies its doctor and room.
// Cancelled and no-show appointments free their resources and never conflict.
func (a *Appointment) HoldsResources() bool {
	return a.Status != StatusCancelled && a.Status != StatusNoShow
}

// IsCancelled returns true if the appointment has been cancelled
func (a *Appointment) IsCancelled() bool {
	return a.Status == StatusCancelled
}

// IsFinished returns true if the appointment reached a terminal state
func (a *Appointment) IsFinished() bool {
	return a.Status == StatusCompleted || a.Status == StatusCancelled || a.Status == StatusNoShow
}

// CanBeCancelled returns true if the appointment can still be cancelled
func (a *Appointment) CanBeCancelled() bool {
	return a.Status == StatusPending || a.Status == StatusConfirmed
}

// CanBeMoved returns true if the appointment can be rescheduled
func (a *Appointment) CanBeMoved() bool {
	return a.Status == StatusPending || a.Status == StatusConfirmed
}

// Duration returns the length of the appointment
func (a *Appointment) Duration() time.Duration {
	return a.End.Sub(a.Start)
}

// Clone returns a deep copy of the appointment.
// The board hands out copies only, so callers can never mutate stored state.
func (a *Appointment) Clone() *Appointment {
	clone := *a
	clone.Notes = clonePtr(a.Notes)
	clone.CancellationReason = clonePtr(a.CancellationReason)
	clone.CancelledAt = clonePtr(a.CancelledAt)
	return &clone
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// AppointmentDraft входные данные для создания встречи.
// ID и статус назначает хранилище.
type AppointmentDraft struct {
	PatientID int64
	DoctorID  int64
	RoomID    int64
	Start     time.Time
	End       time.Time
	Type      string
	Notes     *string
}

// AppointmentPatch частичное обновление встречи.
// nil-поле означает "оставить без изменений".
type AppointmentPatch struct {
	PatientID *int64
	DoctorID  *int64
	RoomID    *int64
	Start     *time.Time
	End       *time.Time
	Type      *string
	Status    *AppointmentStatus
	Notes     *string
}

// IsEmpty returns true if the patch changes nothing
func (p *AppointmentPatch) IsEmpty() bool {
	return p.PatientID == nil && p.DoctorID == nil && p.RoomID == nil &&
		p.Start == nil && p.End == nil && p.Type == nil && p.Status == nil && p.Notes == nil
}
