package move_appointment

import (
	"time"

	"github.com/m04kA/SMC-SchedulerService/internal/domain"
)

// Request команда переноса встречи на новый слот.
// Единая форма для любого источника ввода: drag-and-drop на доске,
// клавиатурный шорткат или прямой вызов API.
type Request struct {
	AppointmentID    int64           // ID переносимой встречи
	Axis             domain.ViewAxis // Активная ось доски: doctor или room
	TargetResourceID int64           // Новый ресурс по активной оси
	TargetStart      time.Time       // Новое время начала (конец вычисляется из длительности)
}

// Response модель ответа с перенесенной встречей
type Response struct {
	ID        int64
	PatientID int64
	DoctorID  int64
	RoomID    int64
	Start     time.Time
	End       time.Time
	Type      string
	Status    string
	Notes     *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// FromDomain конвертирует доменную встречу в response
func FromDomain(appt *domain.Appointment) *Response {
	return &Response{
		ID:        appt.ID,
		PatientID: appt.PatientID,
		DoctorID:  appt.DoctorID,
		RoomID:    appt.RoomID,
		Start:     appt.Start,
		End:       appt.End,
		Type:      appt.Type,
		Status:    string(appt.Status),
		Notes:     appt.Notes,
		CreatedAt: appt.CreatedAt,
		UpdatedAt: appt.UpdatedAt,
	}
}
