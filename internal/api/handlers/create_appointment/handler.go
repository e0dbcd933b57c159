package create_appointment

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SchedulerService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulerService/internal/domain"
	createAppointment "github.com/m04kA/SMC-SchedulerService/internal/usecase/create_appointment"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidTime        = "некорректный формат времени, ожидается RFC3339"
	msgInvalidInput       = "некорректные данные встречи"
	msgInvalidInterval    = "конец встречи должен быть позже начала"
	msgDoctorNotFound     = "доктор не найден"
	msgRoomNotFound       = "кабинет не найден"
	msgConflict           = "интервал пересекается с существующей встречей"
)

type Handler struct {
	useCase CreateAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase CreateAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /appointments - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		var conflict *domain.ConflictError

		switch {
		case errors.As(err, &conflict):
			h.logger.Warn("POST /appointments - Conflict: patient_id=%d, collider_id=%d, resource=%s",
				req.PatientID, conflict.ColliderID, conflict.Resource)
			handlers.RespondConflict(w, msgConflict, conflict)

		case errors.Is(err, createAppointment.ErrInvalidInterval):
			h.logger.Warn("POST /appointments - Invalid interval: patient_id=%d", req.PatientID)
			handlers.RespondBadRequest(w, msgInvalidInterval)

		case errors.Is(err, createAppointment.ErrInvalidInput):
			h.logger.Warn("POST /appointments - Invalid input: patient_id=%d, error=%v", req.PatientID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, createAppointment.ErrDoctorNotFound):
			h.logger.Warn("POST /appointments - Doctor not found: doctor_id=%d", req.DoctorID)
			handlers.RespondNotFound(w, msgDoctorNotFound)

		case errors.Is(err, createAppointment.ErrRoomNotFound):
			h.logger.Warn("POST /appointments - Room not found: room_id=%d", req.RoomID)
			handlers.RespondNotFound(w, msgRoomNotFound)

		default:
			h.logger.Error("POST /appointments - Failed to create appointment: patient_id=%d, error=%v",
				req.PatientID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("POST /appointments - Appointment created: appointment_id=%d, doctor_id=%d, room_id=%d",
		result.ID, result.DoctorID, result.RoomID)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
