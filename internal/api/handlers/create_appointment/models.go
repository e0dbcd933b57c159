package create_appointment

import (
	"time"

	createAppointment "github.com/m04kA/SMC-SchedulerService/internal/usecase/create_appointment"
)

// CreateAppointmentRequest HTTP request model
type CreateAppointmentRequest struct {
	PatientID int64   `json:"patientId"`
	DoctorID  int64   `json:"doctorId"`
	RoomID    int64   `json:"roomId"`
	Start     string  `json:"start"` // RFC3339, например "2026-08-29T10:00:00Z"
	End       string  `json:"end"`   // RFC3339, конец не входит в интервал
	Type      string  `json:"type"`
	Notes     *string `json:"notes,omitempty"`
}

// AppointmentResponse HTTP response model
type AppointmentResponse struct {
	ID        int64   `json:"id"`
	PatientID int64   `json:"patientId"`
	DoctorID  int64   `json:"doctorId"`
	RoomID    int64   `json:"roomId"`
	Start     string  `json:"start"`
	End       string  `json:"end"`
	Type      string  `json:"type"`
	Status    string  `json:"status"`
	Notes     *string `json:"notes,omitempty"`
	CreatedAt string  `json:"createdAt"`
	UpdatedAt string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateAppointmentRequest) ToUseCaseRequest() (*createAppointment.Request, error) {
	start, err := time.Parse(time.RFC3339, r.Start)
	if err != nil {
		return nil, err
	}

	end, err := time.Parse(time.RFC3339, r.End)
	if err != nil {
		return nil, err
	}

	return &createAppointment.Request{
		PatientID: r.PatientID,
		DoctorID:  r.DoctorID,
		RoomID:    r.RoomID,
		Start:     start,
		End:       end,
		Type:      r.Type,
		Notes:     r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createAppointment.Response) *AppointmentResponse {
	return &AppointmentResponse{
		ID:        resp.ID,
		PatientID: resp.PatientID,
		DoctorID:  resp.DoctorID,
		RoomID:    resp.RoomID,
		Start:     resp.Start.Format(time.RFC3339),
		End:       resp.End.Format(time.RFC3339),
		Type:      resp.Type,
		Status:    resp.Status,
		Notes:     resp.Notes,
		CreatedAt: resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt: resp.UpdatedAt.Format(time.RFC3339),
	}
}
