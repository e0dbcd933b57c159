package create_appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SchedulerService/internal/domain"
	"github.com/m04kA/SMC-SchedulerService/internal/integrations/directory"
	"github.com/m04kA/SMC-SchedulerService/internal/scheduler/board"
)

// UseCase use case для создания встречи на доске
type UseCase struct {
	board           Board
	directoryClient DirectoryClient
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(board Board, directoryClient DirectoryClient, logger Logger) *UseCase {
	return &UseCase{
		board:           board,
		directoryClient: directoryClient,
		logger:          logger,
	}
}

// Execute выполняет use case создания встречи.
// Проверка конфликтов и запись происходят атомарно внутри доски;
// здесь - валидация входа и проверка ресурсов по справочнику.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateAppointment: patient=%d, doctor=%d, room=%d, start=%s, end=%s",
		req.PatientID, req.DoctorID, req.RoomID,
		req.Start.Format(time.RFC3339), req.End.Format(time.RFC3339))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем доктора по справочнику
	if err := uc.checkDoctor(ctx, req.DoctorID); err != nil {
		return nil, err
	}

	// 3. Проверяем кабинет по справочнику
	if err := uc.checkRoom(ctx, req.RoomID); err != nil {
		return nil, err
	}

	// 4. Создаем встречу; доска выполняет проверку конфликтов и запись
	// в одной критической секции
	created, err := uc.board.Create(&domain.AppointmentDraft{
		PatientID: req.PatientID,
		DoctorID:  req.DoctorID,
		RoomID:    req.RoomID,
		Start:     req.Start,
		End:       req.End,
		Type:      req.Type,
		Notes:     req.Notes,
	})
	if err != nil {
		return nil, uc.mapBoardError(req, err)
	}

	uc.logger.Info("CreateAppointment: successfully created appointment id=%d", created.ID)
	return FromDomain(created), nil
}

// checkDoctor проверяет существование доктора.
// При недоступности справочника (graceful degradation с холодным кешем)
// создание не блокируется - доска сама гарантирует инварианты.
func (uc *UseCase) checkDoctor(ctx context.Context, doctorID int64) error {
	_, err := uc.directoryClient.GetDoctor(ctx, doctorID)
	if err == nil {
		return nil
	}
	if errors.Is(err, directory.ErrDoctorNotFound) {
		uc.logger.Warn("CreateAppointment: doctor id=%d not found", doctorID)
		return ErrDoctorNotFound
	}
	if errors.Is(err, directory.ErrServiceDegraded) {
		uc.logger.Warn("CreateAppointment: directory degraded, skipping doctor id=%d check", doctorID)
		return nil
	}
	uc.logger.Error("CreateAppointment: failed to check doctor id=%d: %v", doctorID, err)
	return fmt.Errorf("%w: failed to check doctor: %v", ErrInternal, err)
}

// checkRoom проверяет существование кабинета с той же семантикой деградации
func (uc *UseCase) checkRoom(ctx context.Context, roomID int64) error {
	_, err := uc.directoryClient.GetRoom(ctx, roomID)
	if err == nil {
		return nil
	}
	if errors.Is(err, directory.ErrRoomNotFound) {
		uc.logger.Warn("CreateAppointment: room id=%d not found", roomID)
		return ErrRoomNotFound
	}
	if errors.Is(err, directory.ErrServiceDegraded) {
		uc.logger.Warn("CreateAppointment: directory degraded, skipping room id=%d check", roomID)
		return nil
	}
	uc.logger.Error("CreateAppointment: failed to check room id=%d: %v", roomID, err)
	return fmt.Errorf("%w: failed to check room: %v", ErrInternal, err)
}

// mapBoardError переводит ошибки доски в ошибки usecase.
// Конфликт пробрасывается как есть: *domain.ConflictError несет
// ID встречи-виновника и ось ресурса для ответа клиенту.
func (uc *UseCase) mapBoardError(req *Request, err error) error {
	switch {
	case errors.Is(err, domain.ErrConflict):
		var conflictErr *domain.ConflictError
		if errors.As(err, &conflictErr) {
			uc.logger.Warn("CreateAppointment: conflict with appointment id=%d on %s axis",
				conflictErr.ColliderID, conflictErr.Resource)
		}
		return err
	case errors.Is(err, board.ErrInvalidInterval):
		return ErrInvalidInterval
	case errors.Is(err, board.ErrMissingResource):
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	default:
		uc.logger.Error("CreateAppointment: board error for patient=%d: %v", req.PatientID, err)
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
}
