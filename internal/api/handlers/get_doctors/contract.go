package get_doctors

import (
	"context"

	"github.com/m04kA/SMC-SchedulerService/internal/domain"
)

type AppointmentsService interface {
	Doctors(ctx context.Context) ([]domain.Doctor, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
