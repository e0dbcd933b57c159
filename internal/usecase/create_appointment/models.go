package create_appointment

import (
	"time"

	"github.com/m04kA/SMC-SchedulerService/internal/domain"
)

// Request модель запроса на создание встречи
type Request struct {
	PatientID int64     // ID пациента
	DoctorID  int64     // ID доктора
	RoomID    int64     // ID кабинета
	Start     time.Time // Начало встречи
	End       time.Time // Конец встречи (исключается, полуоткрытый интервал)
	Type      string    // Тип встречи (свободная метка)
	Notes     *string   // Дополнительные заметки (опционально)
}

// Response модель ответа с созданной встречей
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
