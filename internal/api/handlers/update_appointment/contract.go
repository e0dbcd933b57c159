package update_appointment

import (
	"github.com/m04kA/SMC-SchedulerService/internal/service/appointments/models"
)

type AppointmentsService interface {
	Update(id int64, req *models.UpdateAppointmentRequest) (*models.AppointmentResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
