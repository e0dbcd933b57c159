package cancel_appointment

import (
	"github.com/m04kA/SMC-SchedulerService/internal/service/appointments/models"
)

type AppointmentsService interface {
	Cancel(id int64, req *models.CancelAppointmentRequest) (*models.AppointmentResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
