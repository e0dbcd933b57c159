package directory

import "github.com/m04kA/SMC-SchedulerService/internal/domain"

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// doctorModel модель доктора из справочника клиники
type doctorModel struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Specialty string `json:"specialty"`
}

// roomModel модель кабинета из справочника клиники
type roomModel struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"` // operating | consultation
}

// ErrorResponse модель ошибки от справочника
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (m doctorModel) toDomain() domain.Doctor {
	return domain.Doctor{ID: m.ID, Name: m.Name, Specialty: m.Specialty}
}

func (m roomModel) toDomain() domain.Room {
	return domain.Room{ID: m.ID, Name: m.Name, Type: domain.RoomType(m.Type)}
}
