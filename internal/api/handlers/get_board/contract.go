package get_board

import (
	"github.com/m04kA/SMC-SchedulerService/internal/service/appointments/models"
)

type AppointmentsService interface {
	BoardView(req *models.BoardRequest) (*models.BoardResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
