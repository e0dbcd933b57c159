package appointments

import (
	"context"

	"github.com/m04kA/SMC-SchedulerService/internal/domain"
)

// Board интерфейс доски планировщика
type Board interface {
	Get(id int64) (*domain.Appointment, error)
	Update(id int64, patch *domain.AppointmentPatch) (*domain.Appointment, error)
	Cancel(id int64, reason *string) (*domain.Appointment, error)
	Delete(id int64) error
	ListByDoctor(doctorID int64) []*domain.Appointment
	ListByRoom(roomID int64) []*domain.Appointment
}

// DirectoryClient интерфейс клиента справочника клиники
type DirectoryClient interface {
	GetDoctors(ctx context.Context) ([]domain.Doctor, error)
	GetRooms(ctx context.Context) ([]domain.Room, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
