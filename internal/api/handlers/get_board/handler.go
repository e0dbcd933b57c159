package get_board

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SchedulerService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulerService/internal/service/appointments"
)

const (
	msgInvalidQuery = "некорректные параметры доски: ожидаются axis, resourceId и date (YYYY-MM-DD)"
	msgInvalidInput = "некорректные параметры доски"
)

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

// Handle GET /api/v1/board
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	req, err := ParseBoardRequest(r)
	if err != nil {
		h.logger.Warn("GET /board - Invalid query: %v", err)
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	result, err := h.service.BoardView(req)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrInvalidInput):
			h.logger.Warn("GET /board - Invalid input: axis=%s, resource_id=%d, error=%v", req.Axis, req.ResourceID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("GET /board - Failed to build board view: axis=%s, resource_id=%d, error=%v",
				req.Axis, req.ResourceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromServiceResponse(result))
}
