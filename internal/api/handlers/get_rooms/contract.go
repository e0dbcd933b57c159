package get_rooms

import (
	"context"

	"github.com/m04kA/SMC-SchedulerService/internal/domain"
)

type AppointmentsService interface {
	Rooms(ctx context.Context) ([]domain.Room, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
