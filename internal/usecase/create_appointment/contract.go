package create_appointment

import (
	"context"

	"github.com/m04kA/SMC-SchedulerService/internal/domain"
)

// Board интерфейс доски планировщика
type Board interface {
	Create(draft *domain.AppointmentDraft) (*domain.Appointment, error)
}

// DirectoryClient интерфейс клиента справочника клиники
type DirectoryClient interface {
	GetDoctor(ctx context.Context, id int64) (*domain.Doctor, error)
	GetRoom(ctx context.Context, id int64) (*domain.Room, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
