package move_appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SchedulerService/internal/domain"
	"github.com/m04kA/SMC-SchedulerService/internal/scheduler/board"
)

// UseCase use case атомарного переноса встречи (drag-and-drop на доске).
// Перенос сохраняет идентичность и длительность встречи; активная ось
// определяет, какой из двух ресурсов меняется, второй остается прежним.
type UseCase struct {
	board  Board
	logger Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(board Board, logger Logger) *UseCase {
	return &UseCase{
		board:  board,
		logger: logger,
	}
}

// Execute выполняет команду переноса.
//
// Алгоритм:
//  1. Находим встречу (ErrAppointmentNotFound, если нет).
//  2. Длительность не меняется: newEnd = targetStart + (end - start).
//  3. Ось doctor: меняется doctorID, кабинет прежний; ось room - наоборот.
//  4. Проверка конфликта (с исключением самой встречи) и коммит четырех
//     полей происходят в одной критической секции доски - промежуточное
//     состояние не наблюдаемо, при отказе доска не меняется вовсе.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("MoveAppointment: id=%d, axis=%s, targetResource=%d, targetStart=%s",
		req.AppointmentID, req.Axis, req.TargetResourceID, req.TargetStart.Format(time.RFC3339))

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("MoveAppointment: validation failed: %v", err)
		return nil, err
	}

	appt, err := uc.board.Get(req.AppointmentID)
	if err != nil {
		if errors.Is(err, board.ErrNotFound) {
			uc.logger.Warn("MoveAppointment: appointment id=%d not found", req.AppointmentID)
			return nil, ErrAppointmentNotFound
		}
		uc.logger.Error("MoveAppointment: failed to get appointment id=%d: %v", req.AppointmentID, err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	newStart := req.TargetStart
	newEnd := newStart.Add(appt.Duration())

	newDoctorID := appt.DoctorID
	newRoomID := appt.RoomID
	switch req.Axis {
	case domain.AxisDoctor:
		newDoctorID = req.TargetResourceID
	case domain.AxisRoom:
		newRoomID = req.TargetResourceID
	}

	moved, err := uc.board.Move(req.AppointmentID, newDoctorID, newRoomID, newStart, newEnd)
	if err != nil {
		return nil, uc.mapBoardError(req, err)
	}

	uc.logger.Info("MoveAppointment: successfully moved appointment id=%d to doctor=%d, room=%d, start=%s",
		moved.ID, moved.DoctorID, moved.RoomID, moved.Start.Format(time.RFC3339))

	return FromDomain(moved), nil
}

// validateRequest валидирует команду переноса
func validateRequest(req *Request) error {
	if req.AppointmentID <= 0 {
		return fmt.Errorf("%w: appointmentID must be positive", ErrInvalidInput)
	}
	if !req.Axis.IsValid() {
		return fmt.Errorf("%w: unknown view axis %q", ErrInvalidInput, req.Axis)
	}
	if req.TargetResourceID <= 0 {
		return fmt.Errorf("%w: targetResourceID must be positive", ErrInvalidInput)
	}
	if req.TargetStart.IsZero() {
		return fmt.Errorf("%w: targetStart is required", ErrInvalidInput)
	}
	return nil
}

// mapBoardError переводит ошибки доски в ошибки usecase.
// Конфликт пробрасывается как есть вместе с данными о виновнике.
func (uc *UseCase) mapBoardError(req *Request, err error) error {
	switch {
	case errors.Is(err, domain.ErrConflict):
		var conflictErr *domain.ConflictError
		if errors.As(err, &conflictErr) {
			uc.logger.Warn("MoveAppointment: id=%d conflicts with appointment id=%d on %s axis",
				req.AppointmentID, conflictErr.ColliderID, conflictErr.Resource)
		}
		return err
	case errors.Is(err, board.ErrNotFound):
		return ErrAppointmentNotFound
	case errors.Is(err, board.ErrCannotMove):
		uc.logger.Warn("MoveAppointment: appointment id=%d cannot be moved: %v", req.AppointmentID, err)
		return ErrCannotMove
	default:
		uc.logger.Error("MoveAppointment: board error for id=%d: %v", req.AppointmentID, err)
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
}
