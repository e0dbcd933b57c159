package move_appointment

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SchedulerService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulerService/internal/domain"
	moveAppointment "github.com/m04kA/SMC-SchedulerService/internal/usecase/move_appointment"
)

const (
	msgInvalidID           = "некорректный идентификатор встречи"
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidTime         = "некорректный формат времени, ожидается RFC3339"
	msgInvalidInput        = "некорректные параметры переноса"
	msgAppointmentNotFound = "встреча не найдена"
	msgCannotMove          = "завершенную или отмененную встречу нельзя перенести"
	msgConflict            = "целевой слот пересекается с существующей встречей"
)

type Handler struct {
	useCase MoveAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase MoveAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments/{id}/move
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.PathInt64(r, "id")
	if err != nil {
		h.logger.Warn("POST /appointments/{id}/move - Invalid id: %v", err)
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	var req MoveAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments/{id}/move - Invalid request body: appointment_id=%d, error=%v", id, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(id)
	if err != nil {
		h.logger.Warn("POST /appointments/{id}/move - Failed to parse request: appointment_id=%d, error=%v", id, err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		var conflict *domain.ConflictError

		switch {
		case errors.As(err, &conflict):
			h.logger.Warn("POST /appointments/{id}/move - Conflict: appointment_id=%d, collider_id=%d, resource=%s",
				id, conflict.ColliderID, conflict.Resource)
			handlers.RespondConflict(w, msgConflict, conflict)

		case errors.Is(err, moveAppointment.ErrAppointmentNotFound):
			h.logger.Warn("POST /appointments/{id}/move - Appointment not found: appointment_id=%d", id)
			handlers.RespondNotFound(w, msgAppointmentNotFound)

		case errors.Is(err, moveAppointment.ErrCannotMove):
			h.logger.Warn("POST /appointments/{id}/move - Cannot move: appointment_id=%d", id)
			handlers.RespondError(w, http.StatusConflict, msgCannotMove)

		case errors.Is(err, moveAppointment.ErrInvalidInput):
			h.logger.Warn("POST /appointments/{id}/move - Invalid input: appointment_id=%d, error=%v", id, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /appointments/{id}/move - Failed to move appointment: appointment_id=%d, error=%v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /appointments/{id}/move - Appointment moved: appointment_id=%d, doctor_id=%d, room_id=%d, start=%s",
		result.ID, result.DoctorID, result.RoomID, result.Start.Format("2006-01-02 15:04"))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
