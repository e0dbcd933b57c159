package directory

import "errors"

var (
	// ErrDoctorNotFound возвращается, когда доктор не найден в справочнике
	ErrDoctorNotFound = errors.New("directory client: doctor not found")

	// ErrRoomNotFound возвращается, когда кабинет не найден в справочнике
	ErrRoomNotFound = errors.New("directory client: room not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("directory client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("directory client: invalid response")

	// ErrServiceDegraded возвращается при применении graceful degradation:
	// справочник недоступен и локального кеша еще нет
	ErrServiceDegraded = errors.New("directory unavailable: graceful degradation applied")
)
