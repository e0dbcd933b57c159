package move_appointment

import (
	"time"

	"github.com/m04kA/SMC-SchedulerService/internal/domain"
)

// Board интерфейс доски планировщика
type Board interface {
	Get(id int64) (*domain.Appointment, error)
	Move(id int64, doctorID, roomID int64, start, end time.Time) (*domain.Appointment, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
