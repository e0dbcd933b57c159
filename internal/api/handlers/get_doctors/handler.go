package get_doctors

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SchedulerService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulerService/internal/service/appointments"
)

const msgDirectoryUnavailable = "справочник клиники временно недоступен"

type Handler struct {
	service AppointmentsService
	logger  Logger
}

func NewHandler(service AppointmentsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/doctors
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	doctors, err := h.service.Doctors(r.Context())
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrDirectoryUnavailable):
			h.logger.Warn("GET /doctors - Directory unavailable: %v", err)
			handlers.RespondError(w, http.StatusServiceUnavailable, msgDirectoryUnavailable)

		default:
			h.logger.Error("GET /doctors - Failed to list doctors: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromDomainDoctors(doctors))
}
