package move_appointment

import (
	"time"

	"github.com/m04kA/SMC-SchedulerService/internal/domain"
	moveAppointment "github.com/m04kA/SMC-SchedulerService/internal/usecase/move_appointment"
)

// MoveAppointmentRequest HTTP request model.
// Ось определяет, какой ресурс меняется: по оси doctor встреча
// переезжает к другому доктору, кабинет сохраняется, и наоборот.
type MoveAppointmentRequest struct {
	Axis             string `json:"axis"` // "doctor" или "room"
	TargetResourceID int64  `json:"targetResourceId"`
	TargetStart      string `json:"targetStart"` // RFC3339
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
func (r *MoveAppointmentRequest) ToUseCaseRequest(appointmentID int64) (*moveAppointment.Request, error) {
	targetStart, err := time.Parse(time.RFC3339, r.TargetStart)
	if err != nil {
		return nil, err
	}

	return &moveAppointment.Request{
		AppointmentID:    appointmentID,
		Axis:             domain.ViewAxis(r.Axis),
		TargetResourceID: r.TargetResourceID,
		TargetStart:      targetStart,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *moveAppointment.Response) *AppointmentResponse {
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
