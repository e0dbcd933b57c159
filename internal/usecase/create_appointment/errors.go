package create_appointment

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_appointment: invalid input data")

	// ErrInvalidInterval возвращается, когда конец встречи не позже начала
	ErrInvalidInterval = errors.New("create_appointment: end must be after start")

	// ErrDoctorNotFound возвращается, когда доктор не найден в справочнике
	ErrDoctorNotFound = errors.New("create_appointment: doctor not found")

	// ErrRoomNotFound возвращается, когда кабинет не найден в справочнике
	ErrRoomNotFound = errors.New("create_appointment: room not found")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_appointment: internal error")
)
