package appointments

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SchedulerService/internal/domain"
	"github.com/m04kA/SMC-SchedulerService/internal/integrations/directory"
	"github.com/m04kA/SMC-SchedulerService/internal/scheduler/board"
	"github.com/m04kA/SMC-SchedulerService/internal/scheduler/timegrid"
	"github.com/m04kA/SMC-SchedulerService/internal/service/appointments/models"
)

// Service сервис простых операций над встречами: чтение, частичное
// обновление, отмена, удаление и сборка представления доски.
// Создание и перенос живут в отдельных use case (create_appointment,
// move_appointment) - у них своя оркестрация.
type Service struct {
	board           Board
	grid            timegrid.Grid
	directoryClient DirectoryClient
	logger          Logger
}

// NewService создает новый экземпляр сервиса встреч
func NewService(board Board, grid timegrid.Grid, directoryClient DirectoryClient, logger Logger) *Service {
	return &Service{
		board:           board,
		grid:            grid,
		directoryClient: directoryClient,
		logger:          logger,
	}
}

// GetByID получает встречу по ID
func (s *Service) GetByID(id int64) (*models.AppointmentResponse, error) {
	appt, err := s.board.Get(id)
	if err != nil {
		if errors.Is(err, board.ErrNotFound) {
			s.logger.Warn("GetByID: appointment id=%d not found", id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("GetByID: board error for appointment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - board error: %v", ErrInternal, err)
	}

	return models.FromDomainAppointment(appt), nil
}

// Update применяет частичное обновление встречи.
// Инварианты (корректный интервал, отсутствие конфликтов) заново
// проверяет доска; при нарушении ничего не применяется.
func (s *Service) Update(id int64, req *models.UpdateAppointmentRequest) (*models.AppointmentResponse, error) {
	s.logger.Info("Update: updating appointment id=%d", id)

	patch, err := req.ToDomainPatch()
	if err != nil {
		s.logger.Warn("Update: invalid patch for appointment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if patch.IsEmpty() {
		s.logger.Warn("Update: empty patch for appointment id=%d", id)
		return nil, fmt.Errorf("%w: patch is empty", ErrInvalidInput)
	}

	updated, err := s.board.Update(id, patch)
	if err != nil {
		return nil, s.mapBoardError("Update", id, err)
	}

	s.logger.Info("Update: successfully updated appointment id=%d", id)
	return models.FromDomainAppointment(updated), nil
}

// Cancel отменяет встречу с указанием причины.
// Отмена освобождает доктора и кабинет; ожидающее напоминание гасится
// планировщиком на следующем проходе.
func (s *Service) Cancel(id int64, req *models.CancelAppointmentRequest) (*models.AppointmentResponse, error) {
	s.logger.Info("Cancel: cancelling appointment id=%d", id)

	if req.Reason != nil && len(*req.Reason) > domain.MaxCancellationReasonLength {
		return nil, fmt.Errorf("%w: cancellation reason exceeds %d characters",
			ErrInvalidInput, domain.MaxCancellationReasonLength)
	}

	cancelled, err := s.board.Cancel(id, req.Reason)
	if err != nil {
		switch {
		case errors.Is(err, board.ErrNotFound):
			s.logger.Warn("Cancel: appointment id=%d not found", id)
			return nil, ErrAppointmentNotFound
		case errors.Is(err, board.ErrCannotCancel):
			s.logger.Warn("Cancel: appointment id=%d cannot be cancelled: %v", id, err)
			return nil, ErrCannotCancel
		default:
			s.logger.Error("Cancel: board error for appointment id=%d: %v", id, err)
			return nil, fmt.Errorf("%w: Cancel - board error: %v", ErrInternal, err)
		}
	}

	s.logger.Info("Cancel: successfully cancelled appointment id=%d", id)
	return models.FromDomainAppointment(cancelled), nil
}

// Delete безусловно удаляет встречу
func (s *Service) Delete(id int64) error {
	s.logger.Info("Delete: deleting appointment id=%d", id)

	if err := s.board.Delete(id); err != nil {
		if errors.Is(err, board.ErrNotFound) {
			s.logger.Warn("Delete: appointment id=%d not found", id)
			return ErrAppointmentNotFound
		}
		s.logger.Error("Delete: board error for appointment id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - board error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: successfully deleted appointment id=%d", id)
	return nil
}

// BoardView собирает представление одной ленты доски на одну дату:
// встречи ресурса с координатами сетки и выровненные по слотам drop-цели
func (s *Service) BoardView(req *models.BoardRequest) (*models.BoardResponse, error) {
	if !req.Axis.IsValid() {
		return nil, fmt.Errorf("%w: unknown view axis %q", ErrInvalidInput, req.Axis)
	}
	if req.ResourceID <= 0 {
		return nil, fmt.Errorf("%w: resourceID must be positive", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	var appts []*domain.Appointment
	if req.Axis == domain.AxisDoctor {
		appts = s.board.ListByDoctor(req.ResourceID)
	} else {
		appts = s.board.ListByRoom(req.ResourceID)
	}

	items := make([]models.BoardItem, 0, len(appts))
	for _, appt := range appts {
		if !isSameDay(appt.Start, req.Date) {
			continue
		}
		pos := s.grid.Position(appt.Start, appt.End)
		items = append(items, models.BoardItem{
			Appointment:   *models.FromDomainAppointment(appt),
			OffsetMinutes: pos.OffsetMinutes,
			LengthMinutes: pos.LengthMinutes,
		})
	}

	return &models.BoardResponse{
		Axis:        req.Axis,
		ResourceID:  req.ResourceID,
		Date:        req.Date,
		Items:       items,
		SlotTargets: s.grid.SlotStarts(req.Date),
	}, nil
}

// Doctors возвращает справочник докторов (только чтение)
func (s *Service) Doctors(ctx context.Context) ([]domain.Doctor, error) {
	doctors, err := s.directoryClient.GetDoctors(ctx)
	if err != nil {
		if errors.Is(err, directory.ErrServiceDegraded) {
			s.logger.Warn("Doctors: directory degraded: %v", err)
			return nil, ErrDirectoryUnavailable
		}
		s.logger.Error("Doctors: directory error: %v", err)
		return nil, fmt.Errorf("%w: Doctors - directory error: %v", ErrInternal, err)
	}
	return doctors, nil
}

// Rooms возвращает справочник кабинетов (только чтение)
func (s *Service) Rooms(ctx context.Context) ([]domain.Room, error) {
	rooms, err := s.directoryClient.GetRooms(ctx)
	if err != nil {
		if errors.Is(err, directory.ErrServiceDegraded) {
			s.logger.Warn("Rooms: directory degraded: %v", err)
			return nil, ErrDirectoryUnavailable
		}
		s.logger.Error("Rooms: directory error: %v", err)
		return nil, fmt.Errorf("%w: Rooms - directory error: %v", ErrInternal, err)
	}
	return rooms, nil
}

// mapBoardError переводит ошибки доски в ошибки сервиса.
// Конфликт пробрасывается как есть вместе с данными о виновнике.
func (s *Service) mapBoardError(op string, id int64, err error) error {
	switch {
	case errors.Is(err, domain.ErrConflict):
		var conflictErr *domain.ConflictError
		if errors.As(err, &conflictErr) {
			s.logger.Warn("%s: appointment id=%d conflicts with id=%d on %s axis",
				op, id, conflictErr.ColliderID, conflictErr.Resource)
		}
		return err
	case errors.Is(err, board.ErrNotFound):
		s.logger.Warn("%s: appointment id=%d not found", op, id)
		return ErrAppointmentNotFound
	case errors.Is(err, board.ErrInvalidInterval),
		errors.Is(err, board.ErrMissingResource),
		errors.Is(err, board.ErrInvalidStatus):
		s.logger.Warn("%s: invalid update for appointment id=%d: %v", op, id, err)
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	default:
		s.logger.Error("%s: board error for appointment id=%d: %v", op, id, err)
		return fmt.Errorf("%w: %s - board error: %v", ErrInternal, op, err)
	}
}

// isSameDay проверяет, что две даты относятся к одному и тому же дню
func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
