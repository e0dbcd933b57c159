package get_board

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/m04kA/SMC-SchedulerService/internal/domain"
	"github.com/m04kA/SMC-SchedulerService/internal/service/appointments/models"
)

// BoardAppointment встреча в ответе доски
type BoardAppointment struct {
	ID        int64   `json:"id"`
	PatientID int64   `json:"patientId"`
	DoctorID  int64   `json:"doctorId"`
	RoomID    int64   `json:"roomId"`
	Start     string  `json:"start"`
	End       string  `json:"end"`
	Type      string  `json:"type"`
	Status    string  `json:"status"`
	Notes     *string `json:"notes,omitempty"`
}

// BoardItem встреча вместе с координатами на сетке доски
type BoardItem struct {
	Appointment   BoardAppointment `json:"appointment"`
	OffsetMinutes int              `json:"offsetMinutes"`
	LengthMinutes int              `json:"lengthMinutes"`
}

// BoardResponse HTTP response model: одна лента ресурса на одну дату
type BoardResponse struct {
	Axis        string      `json:"axis"`
	ResourceID  int64       `json:"resourceId"`
	Date        string      `json:"date"`
	Items       []BoardItem `json:"items"`
	SlotTargets []string    `json:"slotTargets"`
}

// ParseBoardRequest извлекает параметры доски из query string
func ParseBoardRequest(r *http.Request) (*models.BoardRequest, error) {
	query := r.URL.Query()

	axis := domain.ViewAxis(query.Get("axis"))
	if !axis.IsValid() {
		return nil, fmt.Errorf("invalid axis %q", query.Get("axis"))
	}

	resourceID, err := strconv.ParseInt(query.Get("resourceId"), 10, 64)
	if err != nil || resourceID <= 0 {
		return nil, fmt.Errorf("invalid resourceId %q", query.Get("resourceId"))
	}

	date, err := time.Parse(domain.DateFormat, query.Get("date"))
	if err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", query.Get("date"), err)
	}

	return &models.BoardRequest{
		Axis:       axis,
		ResourceID: resourceID,
		Date:       date,
	}, nil
}

// FromServiceResponse конвертирует модель сервиса в HTTP response
func FromServiceResponse(resp *models.BoardResponse) *BoardResponse {
	out := &BoardResponse{
		Axis:        string(resp.Axis),
		ResourceID:  resp.ResourceID,
		Date:        resp.Date.Format(domain.DateFormat),
		Items:       make([]BoardItem, 0, len(resp.Items)),
		SlotTargets: make([]string, 0, len(resp.SlotTargets)),
	}

	for _, item := range resp.Items {
		out.Items = append(out.Items, BoardItem{
			Appointment: BoardAppointment{
				ID:        item.Appointment.ID,
				PatientID: item.Appointment.PatientID,
				DoctorID:  item.Appointment.DoctorID,
				RoomID:    item.Appointment.RoomID,
				Start:     item.Appointment.Start.Format(time.RFC3339),
				End:       item.Appointment.End.Format(time.RFC3339),
				Type:      item.Appointment.Type,
				Status:    item.Appointment.Status,
				Notes:     item.Appointment.Notes,
			},
			OffsetMinutes: item.OffsetMinutes,
			LengthMinutes: item.LengthMinutes,
		})
	}

	for _, slot := range resp.SlotTargets {
		out.SlotTargets = append(out.SlotTargets, slot.Format(time.RFC3339))
	}

	return out
}
