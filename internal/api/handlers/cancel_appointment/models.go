package cancel_appointment

import (
	"time"

	"github.com/m04kA/SMC-SchedulerService/internal/service/appointments/models"
)

// CancelAppointmentRequest HTTP request model
type CancelAppointmentRequest struct {
	Reason *string `json:"reason,omitempty"`
}

// AppointmentResponse HTTP response model
type AppointmentResponse struct {
	ID                 int64   `json:"id"`
	PatientID          int64   `json:"patientId"`
	DoctorID           int64   `json:"doctorId"`
	RoomID             int64   `json:"roomId"`
	Start              string  `json:"start"`
	End                string  `json:"end"`
	Type               string  `json:"type"`
	Status             string  `json:"status"`
	Notes              *string `json:"notes,omitempty"`
	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"`
	CreatedAt          string  `json:"createdAt"`
	UpdatedAt          string  `json:"updatedAt"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *CancelAppointmentRequest) ToServiceRequest() *models.CancelAppointmentRequest {
	return &models.CancelAppointmentRequest{
		Reason: r.Reason,
	}
}

// FromServiceResponse конвертирует модель сервиса в HTTP response
func FromServiceResponse(resp *models.AppointmentResponse) *AppointmentResponse {
	out := &AppointmentResponse{
		ID:                 resp.ID,
		PatientID:          resp.PatientID,
		DoctorID:           resp.DoctorID,
		RoomID:             resp.RoomID,
		Start:              resp.Start.Format(time.RFC3339),
		End:                resp.End.Format(time.RFC3339),
		Type:               resp.Type,
		Status:             resp.Status,
		Notes:              resp.Notes,
		CancellationReason: resp.CancellationReason,
		CreatedAt:          resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:          resp.UpdatedAt.Format(time.RFC3339),
	}
	if resp.CancelledAt != nil {
		cancelledAt := resp.CancelledAt.Format(time.RFC3339)
		out.CancelledAt = &cancelledAt
	}
	return out
}
