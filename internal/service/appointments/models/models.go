package models

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-SchedulerService/internal/domain"
)

// AppointmentResponse модель встречи для вышестоящих слоев
type AppointmentResponse struct {
	ID                 int64
	PatientID          int64
	DoctorID           int64
	RoomID             int64
	Start              time.Time
	End                time.Time
	Type               string
	Status             string
	Notes              *string
	CancellationReason *string
	CancelledAt        *time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// AppointmentListResponse список встреч
type AppointmentListResponse struct {
	Appointments []AppointmentResponse
	Total        int
}

// UpdateAppointmentRequest частичное обновление встречи.
// nil-поле означает "оставить без изменений".
type UpdateAppointmentRequest struct {
	PatientID *int64
	DoctorID  *int64
	RoomID    *int64
	Start     *time.Time
	End       *time.Time
	Type      *string
	Status    *string
	Notes     *string
}

// CancelAppointmentRequest запрос на отмену встречи
type CancelAppointmentRequest struct {
	Reason *string
}

// BoardRequest запрос представления доски: одна лента ресурса на одну дату
type BoardRequest struct {
	Axis       domain.ViewAxis
	ResourceID int64
	Date       time.Time
}

// BoardItem встреча вместе с ее координатами на сетке
type BoardItem struct {
	Appointment   AppointmentResponse
	OffsetMinutes int
	LengthMinutes int
}

// BoardResponse представление ленты доски: встречи с координатами
// и выровненные по слотам drop-цели для перетаскивания
type BoardResponse struct {
	Axis        domain.ViewAxis
	ResourceID  int64
	Date        time.Time
	Items       []BoardItem
	SlotTargets []time.Time
}

// ToDomainStatus валидирует и конвертирует строковый статус
func ToDomainStatus(s string) (domain.AppointmentStatus, error) {
	status := domain.AppointmentStatus(s)
	if !domain.IsValidStatus(status) {
		return "", fmt.Errorf("unknown appointment status %q", s)
	}
	return status, nil
}

// ToDomainPatch конвертирует запрос обновления в доменный patch
func (r *UpdateAppointmentRequest) ToDomainPatch() (*domain.AppointmentPatch, error) {
	patch := &domain.AppointmentPatch{
		PatientID: r.PatientID,
		DoctorID:  r.DoctorID,
		RoomID:    r.RoomID,
		Start:     r.Start,
		End:       r.End,
		Type:      r.Type,
		Notes:     r.Notes,
	}
	if r.Status != nil {
		status, err := ToDomainStatus(*r.Status)
		if err != nil {
			return nil, err
		}
		patch.Status = &status
	}
	return patch, nil
}

// FromDomainAppointment конвертирует доменную встречу в response
func FromDomainAppointment(appt *domain.Appointment) *AppointmentResponse {
	return &AppointmentResponse{
		ID:                 appt.ID,
		PatientID:          appt.PatientID,
		DoctorID:           appt.DoctorID,
		RoomID:             appt.RoomID,
		Start:              appt.Start,
		End:                appt.End,
		Type:               appt.Type,
		Status:             string(appt.Status),
		Notes:              appt.Notes,
		CancellationReason: appt.CancellationReason,
		CancelledAt:        appt.CancelledAt,
		CreatedAt:          appt.CreatedAt,
		UpdatedAt:          appt.UpdatedAt,
	}
}

// FromDomainAppointmentList конвертирует список доменных встреч
func FromDomainAppointmentList(appts []*domain.Appointment) *AppointmentListResponse {
	result := &AppointmentListResponse{
		Appointments: make([]AppointmentResponse, 0, len(appts)),
		Total:        len(appts),
	}
	for _, appt := range appts {
		result.Appointments = append(result.Appointments, *FromDomainAppointment(appt))
	}
	return result
}
