package board

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/m04kA/SMC-SchedulerService/internal/domain"
	"github.com/m04kA/SMC-SchedulerService/internal/scheduler/conflict"
)

// Board авторитетное in-memory хранилище встреч.
//
// Все мутации (Create/Update/Move/Cancel/Delete) выполняются целиком
// под одним мьютексом: проверка конфликтов и запись - единая критическая
// секция, поэтому два конкурентных писателя не могут пройти проверку
// по устаревшему снимку и оба закоммитить пересекающиеся встречи.
// Чтения отдают копии и никогда не видят частично примененную мутацию.
//
// После коммита мутация публикуется как ChangeEvent в журнал (если он
// подключен); отправка неблокирующая, I/O внутри критической секции нет.
type Board struct {
	mu sync.RWMutex

	byID     map[int64]*domain.Appointment
	byDoctor map[int64]map[int64]*domain.Appointment
	byRoom   map[int64]map[int64]*domain.Appointment
	nextID   int64

	log      Logger
	recorder ConflictRecorder
	events   chan<- domain.ChangeEvent
}

// New создает пустую доску.
// recorder и events опциональны (nil = метрики/журнал выключены).
func New(log Logger, recorder ConflictRecorder, events chan<- domain.ChangeEvent) *Board {
	return &Board{
		byID:     make(map[int64]*domain.Appointment),
		byDoctor: make(map[int64]map[int64]*domain.Appointment),
		byRoom:   make(map[int64]map[int64]*domain.Appointment),
		nextID:   1,
		log:      log,
		recorder: recorder,
		events:   events,
	}
}

// Load заполняет доску сохраненными встречами при старте сервиса.
// События журнала не публикуются. Конфликтные или некорректные записи
// отклоняют загрузку целиком.
func (b *Board) Load(appointments []*domain.Appointment) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, appt := range appointments {
		if appt.ID <= 0 {
			return fmt.Errorf("%w: stored appointment without id", ErrMissingResource)
		}
		if _, exists := b.byID[appt.ID]; exists {
			return fmt.Errorf("board: duplicate appointment id=%d in stored data", appt.ID)
		}
		if !appt.Start.Before(appt.End) {
			return fmt.Errorf("%w: stored appointment id=%d", ErrInvalidInterval, appt.ID)
		}
		if appt.HoldsResources() {
			if hit := b.checkConflictLocked(appt.DoctorID, appt.RoomID, appt.Start, appt.End, appt.ID); hit != nil {
				return fmt.Errorf("board: stored appointment id=%d conflicts with id=%d", appt.ID, hit.Appointment.ID)
			}
		}

		b.insertLocked(appt.Clone())
		if appt.ID >= b.nextID {
			b.nextID = appt.ID + 1
		}
	}

	return nil
}

// Create валидирует черновик, проверяет конфликты и сохраняет новую
// встречу в статусе pending. При любой ошибке состояние доски не меняется.
func (b *Board) Create(draft *domain.AppointmentDraft) (*domain.Appointment, error) {
	if err := validateDraft(draft); err != nil {
		return nil, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if hit := b.checkConflictLocked(draft.DoctorID, draft.RoomID, draft.Start, draft.End, 0); hit != nil {
		return nil, b.rejectLocked(hit)
	}

	now := time.Now().UTC()
	appt := &domain.Appointment{
		ID:        b.nextID,
		PatientID: draft.PatientID,
		DoctorID:  draft.DoctorID,
		RoomID:    draft.RoomID,
		Start:     draft.Start,
		End:       draft.End,
		Type:      strings.TrimSpace(draft.Type),
		Status:    domain.StatusPending,
		Notes:     draft.Notes,
		CreatedAt: now,
		UpdatedAt: now,
	}
	b.nextID++

	b.insertLocked(appt)
	b.emitUpsertLocked(appt)

	return appt.Clone(), nil
}

// Get возвращает копию встречи по ID
func (b *Board) Get(id int64) (*domain.Appointment, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	appt, ok := b.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	return appt.Clone(), nil
}

// Update применяет частичное обновление: nil-поля patch не трогаются.
// Объединенная запись заново проходит валидацию интервала и проверку
// конфликтов (сама встреча исключается). Применяется целиком или никак.
func (b *Board) Update(id int64, patch *domain.AppointmentPatch) (*domain.Appointment, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	existing, ok := b.byID[id]
	if !ok {
		return nil, ErrNotFound
	}

	merged := existing.Clone()
	applyPatch(merged, patch)

	if err := validateAppointment(merged); err != nil {
		return nil, err
	}

	// Встречи, освободившие ресурсы, в проверке конфликтов не участвуют
	if merged.HoldsResources() {
		if hit := b.checkConflictLocked(merged.DoctorID, merged.RoomID, merged.Start, merged.End, id); hit != nil {
			return nil, b.rejectLocked(hit)
		}
	}

	if merged.Status == domain.StatusCancelled && existing.Status != domain.StatusCancelled {
		now := time.Now().UTC()
		merged.CancelledAt = &now
	}
	merged.UpdatedAt = time.Now().UTC()

	b.removeLocked(existing)
	b.insertLocked(merged)
	b.emitUpsertLocked(merged)

	return merged.Clone(), nil
}

// Move атомарно переносит встречу на новые ресурсы и время.
// Вызывается usecase перемещения; проверка конфликта и коммит четырех
// полей (doctorID, roomID, start, end) происходят в одной критической
// секции - читатели видят либо старую запись, либо новую.
func (b *Board) Move(id int64, doctorID, roomID int64, start, end time.Time) (*domain.Appointment, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	existing, ok := b.byID[id]
	if !ok {
		return nil, ErrNotFound
	}

	if !existing.CanBeMoved() {
		return nil, fmt.Errorf("%w: appointment id=%d has status %s", ErrCannotMove, id, existing.Status)
	}

	if doctorID <= 0 || roomID <= 0 {
		return nil, ErrMissingResource
	}
	if !start.Before(end) {
		return nil, ErrInvalidInterval
	}

	if hit := b.checkConflictLocked(doctorID, roomID, start, end, id); hit != nil {
		return nil, b.rejectLocked(hit)
	}

	moved := existing.Clone()
	moved.DoctorID = doctorID
	moved.RoomID = roomID
	moved.Start = start
	moved.End = end
	moved.UpdatedAt = time.Now().UTC()

	b.removeLocked(existing)
	b.insertLocked(moved)
	b.emitUpsertLocked(moved)

	return moved.Clone(), nil
}

// Cancel отменяет встречу с указанием причины, освобождая доктора и кабинет
func (b *Board) Cancel(id int64, reason *string) (*domain.Appointment, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	existing, ok := b.byID[id]
	if !ok {
		return nil, ErrNotFound
	}

	if !existing.CanBeCancelled() {
		return nil, fmt.Errorf("%w: appointment id=%d has status %s", ErrCannotCancel, id, existing.Status)
	}

	now := time.Now().UTC()
	cancelled := existing.Clone()
	cancelled.Status = domain.StatusCancelled
	cancelled.CancellationReason = reason
	cancelled.CancelledAt = &now
	cancelled.UpdatedAt = now

	b.removeLocked(existing)
	b.insertLocked(cancelled)
	b.emitUpsertLocked(cancelled)

	return cancelled.Clone(), nil
}

// Delete безусловно удаляет встречу
func (b *Board) Delete(id int64) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	existing, ok := b.byID[id]
	if !ok {
		return ErrNotFound
	}

	b.removeLocked(existing)

	if b.events != nil {
		b.sendEventLocked(domain.ChangeEvent{Kind: domain.ChangeDelete, AppointmentID: id})
	}

	return nil
}

// ListByDoctor возвращает копии встреч доктора, отсортированные по началу
func (b *Board) ListByDoctor(doctorID int64) []*domain.Appointment {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return sortedClones(b.byDoctor[doctorID])
}

// ListByRoom возвращает копии встреч кабинета, отсортированные по началу
func (b *Board) ListByRoom(roomID int64) []*domain.Appointment {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return sortedClones(b.byRoom[roomID])
}

// Snapshot возвращает консистентную копию всех встреч.
// Используется планировщиком напоминаний и не блокирует писателей
// дольше, чем занимает копирование.
func (b *Board) Snapshot() []*domain.Appointment {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return sortedClones(b.byID)
}

// --- внутренние методы (вызываются только под мьютексом) ---

func (b *Board) checkConflictLocked(doctorID, roomID int64, start, end time.Time, excludeID int64) *conflict.Hit {
	return conflict.Check(
		indexSlice(b.byDoctor[doctorID]),
		indexSlice(b.byRoom[roomID]),
		start, end, excludeID,
	)
}

// rejectLocked оформляет отказ по конфликту: метрика + типизированная ошибка
func (b *Board) rejectLocked(hit *conflict.Hit) error {
	if b.recorder != nil {
		b.recorder.IncConflictRejected(strings.ToLower(string(hit.Resource)))
	}
	return &domain.ConflictError{ColliderID: hit.Appointment.ID, Resource: hit.Resource}
}

func (b *Board) insertLocked(appt *domain.Appointment) {
	b.byID[appt.ID] = appt

	if b.byDoctor[appt.DoctorID] == nil {
		b.byDoctor[appt.DoctorID] = make(map[int64]*domain.Appointment)
	}
	b.byDoctor[appt.DoctorID][appt.ID] = appt

	if b.byRoom[appt.RoomID] == nil {
		b.byRoom[appt.RoomID] = make(map[int64]*domain.Appointment)
	}
	b.byRoom[appt.RoomID][appt.ID] = appt
}

func (b *Board) removeLocked(appt *domain.Appointment) {
	delete(b.byID, appt.ID)
	delete(b.byDoctor[appt.DoctorID], appt.ID)
	delete(b.byRoom[appt.RoomID], appt.ID)
}

func (b *Board) emitUpsertLocked(appt *domain.Appointment) {
	if b.events == nil {
		return
	}
	b.sendEventLocked(domain.ChangeEvent{
		Kind:          domain.ChangeUpsert,
		AppointmentID: appt.ID,
		Appointment:   appt.Clone(),
	})
}

// sendEventLocked публикует событие в журнал без блокировки.
// Переполненная очередь журнала не должна останавливать доску;
// потерянное событие попадет в журнал только со следующим
// изменением той же встречи.
func (b *Board) sendEventLocked(event domain.ChangeEvent) {
	select {
	case b.events <- event:
	default:
		b.log.Warn("Board: journal queue is full, dropping %s event for appointment id=%d",
			event.Kind, event.AppointmentID)
	}
}

// --- вспомогательные функции ---

func validateDraft(draft *domain.AppointmentDraft) error {
	if draft.PatientID <= 0 || draft.DoctorID <= 0 || draft.RoomID <= 0 {
		return ErrMissingResource
	}
	if !draft.Start.Before(draft.End) {
		return ErrInvalidInterval
	}
	return nil
}

func validateAppointment(appt *domain.Appointment) error {
	if appt.PatientID <= 0 || appt.DoctorID <= 0 || appt.RoomID <= 0 {
		return ErrMissingResource
	}
	if !appt.Start.Before(appt.End) {
		return ErrInvalidInterval
	}
	if !domain.IsValidStatus(appt.Status) {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, appt.Status)
	}
	return nil
}

func applyPatch(appt *domain.Appointment, patch *domain.AppointmentPatch) {
	if patch.PatientID != nil {
		appt.PatientID = *patch.PatientID
	}
	if patch.DoctorID != nil {
		appt.DoctorID = *patch.DoctorID
	}
	if patch.RoomID != nil {
		appt.RoomID = *patch.RoomID
	}
	if patch.Start != nil {
		appt.Start = *patch.Start
	}
	if patch.End != nil {
		appt.End = *patch.End
	}
	if patch.Type != nil {
		appt.Type = strings.TrimSpace(*patch.Type)
	}
	if patch.Status != nil {
		appt.Status = *patch.Status
	}
	if patch.Notes != nil {
		appt.Notes = patch.Notes
	}
}

func indexSlice(index map[int64]*domain.Appointment) []*domain.Appointment {
	if len(index) == 0 {
		return nil
	}
	result := make([]*domain.Appointment, 0, len(index))
	for _, appt := range index {
		result = append(result, appt)
	}
	return result
}

func sortedClones(index map[int64]*domain.Appointment) []*domain.Appointment {
	result := make([]*domain.Appointment, 0, len(index))
	for _, appt := range index {
		result = append(result, appt.Clone())
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Start.Equal(result[j].Start) {
			return result[i].ID < result[j].ID
		}
		return result[i].Start.Before(result[j].Start)
	})
	return result
}
