package board

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulerService/internal/domain"
	"github.com/m04kA/SMC-SchedulerService/pkg/ptr"
)

type nopLogger struct{}

func (nopLogger) Debug(format string, v ...interface{}) {}
func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type countingRecorder struct {
	mu       sync.Mutex
	rejected map[string]int
}

func (r *countingRecorder) IncConflictRejected(resource string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.rejected == nil {
		r.rejected = make(map[string]int)
	}
	r.rejected[resource]++
}

func at(hour, minutes int) time.Time {
	return time.Date(2026, 3, 2, hour, minutes, 0, 0, time.UTC)
}

func draft(patientID, doctorID, roomID int64, start, end time.Time) *domain.AppointmentDraft {
	return &domain.AppointmentDraft{
		PatientID: patientID,
		DoctorID:  doctorID,
		RoomID:    roomID,
		Start:     start,
		End:       end,
		Type:      "consultation",
	}
}

func newTestBoard(t *testing.T) *Board {
	t.Helper()
	return New(nopLogger{}, nil, nil)
}

func TestCreate_AssignsIDAndPendingStatus(t *testing.T) {
	b := newTestBoard(t)

	appt, err := b.Create(draft(1, 10, 100, at(10, 0), at(11, 0)))
	require.NoError(t, err)

	assert.Equal(t, int64(1), appt.ID)
	assert.Equal(t, domain.StatusPending, appt.Status)
	assert.False(t, appt.CreatedAt.IsZero())
	assert.Equal(t, appt.CreatedAt, appt.UpdatedAt)

	second, err := b.Create(draft(2, 11, 101, at(10, 0), at(11, 0)))
	require.NoError(t, err)
	assert.Equal(t, int64(2), second.ID)
}

func TestCreate_RejectsInvalidDraft(t *testing.T) {
	b := newTestBoard(t)

	_, err := b.Create(draft(0, 10, 100, at(10, 0), at(11, 0)))
	assert.ErrorIs(t, err, ErrMissingResource)

	_, err = b.Create(draft(1, 10, 100, at(11, 0), at(10, 0)))
	assert.ErrorIs(t, err, ErrInvalidInterval)

	_, err = b.Create(draft(1, 10, 100, at(10, 0), at(10, 0)))
	assert.ErrorIs(t, err, ErrInvalidInterval)
}

func TestCreate_DoctorConflict(t *testing.T) {
	b := newTestBoard(t)

	first, err := b.Create(draft(1, 10, 100, at(10, 0), at(11, 0)))
	require.NoError(t, err)

	// Тот же доктор, другой кабинет, пересекающийся интервал
	_, err = b.Create(draft(2, 10, 200, at(10, 30), at(11, 30)))
	require.ErrorIs(t, err, domain.ErrConflict)

	var conflictErr *domain.ConflictError
	require.ErrorAs(t, err, &conflictErr)
	assert.Equal(t, first.ID, conflictErr.ColliderID)
	assert.Equal(t, domain.ResourceDoctor, conflictErr.Resource)
}

func TestCreate_RoomConflict(t *testing.T) {
	b := newTestBoard(t)

	first, err := b.Create(draft(1, 10, 100, at(10, 0), at(11, 0)))
	require.NoError(t, err)

	// Другой доктор, тот же кабинет
	_, err = b.Create(draft(2, 20, 100, at(10, 0), at(10, 30)))
	require.ErrorIs(t, err, domain.ErrConflict)

	var conflictErr *domain.ConflictError
	require.ErrorAs(t, err, &conflictErr)
	assert.Equal(t, first.ID, conflictErr.ColliderID)
	assert.Equal(t, domain.ResourceRoom, conflictErr.Resource)
}

func TestCreate_AdjacentIntervalsAllowed(t *testing.T) {
	b := newTestBoard(t)

	_, err := b.Create(draft(1, 10, 100, at(10, 0), at(11, 0)))
	require.NoError(t, err)

	// Конец первой равен началу второй: полуоткрытые интервалы не пересекаются
	_, err = b.Create(draft(2, 10, 100, at(11, 0), at(12, 0)))
	assert.NoError(t, err)

	_, err = b.Create(draft(3, 10, 100, at(9, 0), at(10, 0)))
	assert.NoError(t, err)
}

func TestCreate_FailedCreateLeavesBoardUnchanged(t *testing.T) {
	b := newTestBoard(t)

	_, err := b.Create(draft(1, 10, 100, at(10, 0), at(11, 0)))
	require.NoError(t, err)

	_, err = b.Create(draft(2, 10, 100, at(10, 0), at(11, 0)))
	require.ErrorIs(t, err, domain.ErrConflict)

	// Отклоненная встреча не заняла id и не попала в индексы
	appt, err := b.Create(draft(3, 30, 300, at(10, 0), at(11, 0)))
	require.NoError(t, err)
	assert.Equal(t, int64(2), appt.ID)
	assert.Len(t, b.Snapshot(), 2)
}

func TestCreate_RecordsConflictMetric(t *testing.T) {
	recorder := &countingRecorder{}
	b := New(nopLogger{}, recorder, nil)

	_, err := b.Create(draft(1, 10, 100, at(10, 0), at(11, 0)))
	require.NoError(t, err)

	_, err = b.Create(draft(2, 10, 200, at(10, 0), at(11, 0)))
	require.Error(t, err)
	_, err = b.Create(draft(3, 20, 100, at(10, 0), at(11, 0)))
	require.Error(t, err)

	assert.Equal(t, 1, recorder.rejected["doctor"])
	assert.Equal(t, 1, recorder.rejected["room"])
}

func TestGet_ReturnsCopy(t *testing.T) {
	b := newTestBoard(t)

	created, err := b.Create(draft(1, 10, 100, at(10, 0), at(11, 0)))
	require.NoError(t, err)

	got, err := b.Get(created.ID)
	require.NoError(t, err)

	// Мутация копии не затрагивает состояние доски
	got.DoctorID = 999
	got.Notes = ptr.Ptr("mutated")

	again, err := b.Get(created.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(10), again.DoctorID)
	assert.Nil(t, again.Notes)
}

func TestGet_NotFound(t *testing.T) {
	b := newTestBoard(t)

	_, err := b.Get(42)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdate_PartialPatch(t *testing.T) {
	b := newTestBoard(t)

	created, err := b.Create(draft(1, 10, 100, at(10, 0), at(11, 0)))
	require.NoError(t, err)

	updated, err := b.Update(created.ID, &domain.AppointmentPatch{
		Notes: ptr.Ptr("prepare x-ray"),
	})
	require.NoError(t, err)

	// Нетронутые поля сохранились
	assert.Equal(t, created.DoctorID, updated.DoctorID)
	assert.Equal(t, created.Start, updated.Start)
	require.NotNil(t, updated.Notes)
	assert.Equal(t, "prepare x-ray", *updated.Notes)
}

func TestUpdate_ConflictOnNewInterval(t *testing.T) {
	b := newTestBoard(t)

	first, err := b.Create(draft(1, 10, 100, at(10, 0), at(11, 0)))
	require.NoError(t, err)
	second, err := b.Create(draft(2, 10, 100, at(11, 0), at(12, 0)))
	require.NoError(t, err)

	_, err = b.Update(second.ID, &domain.AppointmentPatch{
		Start: ptr.Ptr(at(10, 30)),
		End:   ptr.Ptr(at(11, 30)),
	})
	require.ErrorIs(t, err, domain.ErrConflict)

	var conflictErr *domain.ConflictError
	require.ErrorAs(t, err, &conflictErr)
	assert.Equal(t, first.ID, conflictErr.ColliderID)

	// Неудачное обновление ничего не изменило
	unchanged, err := b.Get(second.ID)
	require.NoError(t, err)
	assert.Equal(t, at(11, 0), unchanged.Start)
}

func TestUpdate_SelfOverlapAllowed(t *testing.T) {
	b := newTestBoard(t)

	created, err := b.Create(draft(1, 10, 100, at(10, 0), at(11, 0)))
	require.NoError(t, err)

	// Сдвиг внутри собственного интервала: прежнее состояние исключается
	updated, err := b.Update(created.ID, &domain.AppointmentPatch{
		Start: ptr.Ptr(at(10, 30)),
		End:   ptr.Ptr(at(11, 30)),
	})
	require.NoError(t, err)
	assert.Equal(t, at(10, 30), updated.Start)
}

func TestUpdate_CancelViaStatusSetsCancelledAt(t *testing.T) {
	b := newTestBoard(t)

	created, err := b.Create(draft(1, 10, 100, at(10, 0), at(11, 0)))
	require.NoError(t, err)

	updated, err := b.Update(created.ID, &domain.AppointmentPatch{
		Status: ptr.Ptr(domain.StatusCancelled),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, updated.Status)
	assert.NotNil(t, updated.CancelledAt)
}

func TestUpdate_InvalidStatusRejected(t *testing.T) {
	b := newTestBoard(t)

	created, err := b.Create(draft(1, 10, 100, at(10, 0), at(11, 0)))
	require.NoError(t, err)

	_, err = b.Update(created.ID, &domain.AppointmentPatch{
		Status: ptr.Ptr(domain.AppointmentStatus("unknown")),
	})
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestMove_AtomicSwap(t *testing.T) {
	b := newTestBoard(t)

	created, err := b.Create(draft(1, 10, 100, at(10, 0), at(11, 0)))
	require.NoError(t, err)

	moved, err := b.Move(created.ID, 20, 100, at(14, 0), at(15, 0))
	require.NoError(t, err)

	assert.Equal(t, int64(20), moved.DoctorID)
	assert.Equal(t, int64(100), moved.RoomID)
	assert.Equal(t, at(14, 0), moved.Start)
	assert.Equal(t, at(15, 0), moved.End)

	// Старый слот освобожден: новая встреча занимает его без конфликта
	_, err = b.Create(draft(2, 10, 100, at(10, 0), at(11, 0)))
	assert.NoError(t, err)
}

func TestMove_ConflictKeepsOriginal(t *testing.T) {
	b := newTestBoard(t)

	blocker, err := b.Create(draft(1, 20, 200, at(14, 0), at(15, 0)))
	require.NoError(t, err)
	created, err := b.Create(draft(2, 10, 100, at(10, 0), at(11, 0)))
	require.NoError(t, err)

	_, err = b.Move(created.ID, 20, 100, at(14, 0), at(15, 0))
	require.ErrorIs(t, err, domain.ErrConflict)

	var conflictErr *domain.ConflictError
	require.ErrorAs(t, err, &conflictErr)
	assert.Equal(t, blocker.ID, conflictErr.ColliderID)
	assert.Equal(t, domain.ResourceDoctor, conflictErr.Resource)

	// Встреча осталась на прежнем месте
	unchanged, err := b.Get(created.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(10), unchanged.DoctorID)
	assert.Equal(t, at(10, 0), unchanged.Start)
}

func TestMove_InvalidIntervalRejected(t *testing.T) {
	b := newTestBoard(t)

	created, err := b.Create(draft(1, 10, 100, at(10, 0), at(11, 0)))
	require.NoError(t, err)

	_, err = b.Move(created.ID, 10, 100, at(12, 0), at(11, 30))
	require.ErrorIs(t, err, ErrInvalidInterval)

	_, err = b.Move(created.ID, 10, 100, at(12, 0), at(12, 0))
	require.ErrorIs(t, err, ErrInvalidInterval)

	// Встреча осталась на прежнем месте
	unchanged, err := b.Get(created.ID)
	require.NoError(t, err)
	assert.Equal(t, at(10, 0), unchanged.Start)
	assert.Equal(t, at(11, 0), unchanged.End)
}

func TestMove_MissingResourceRejected(t *testing.T) {
	b := newTestBoard(t)

	created, err := b.Create(draft(1, 10, 100, at(10, 0), at(11, 0)))
	require.NoError(t, err)

	_, err = b.Move(created.ID, 0, 100, at(12, 0), at(13, 0))
	assert.ErrorIs(t, err, ErrMissingResource)

	_, err = b.Move(created.ID, 10, 0, at(12, 0), at(13, 0))
	assert.ErrorIs(t, err, ErrMissingResource)
}

func TestMove_FinishedAppointmentRejected(t *testing.T) {
	b := newTestBoard(t)

	created, err := b.Create(draft(1, 10, 100, at(10, 0), at(11, 0)))
	require.NoError(t, err)

	_, err = b.Update(created.ID, &domain.AppointmentPatch{
		Status: ptr.Ptr(domain.StatusCompleted),
	})
	require.NoError(t, err)

	_, err = b.Move(created.ID, 20, 200, at(14, 0), at(15, 0))
	assert.ErrorIs(t, err, ErrCannotMove)
}

func TestCancel_FreesSlot(t *testing.T) {
	b := newTestBoard(t)

	created, err := b.Create(draft(1, 10, 100, at(10, 0), at(11, 0)))
	require.NoError(t, err)

	cancelled, err := b.Cancel(created.ID, ptr.Ptr("patient request"))
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, cancelled.Status)
	require.NotNil(t, cancelled.CancellationReason)
	assert.Equal(t, "patient request", *cancelled.CancellationReason)
	assert.NotNil(t, cancelled.CancelledAt)

	// Слот освобожден: та же пара доктор/кабинет бронируется заново
	_, err = b.Create(draft(2, 10, 100, at(10, 0), at(11, 0)))
	assert.NoError(t, err)
}

func TestCancel_TerminalStatusRejected(t *testing.T) {
	b := newTestBoard(t)

	created, err := b.Create(draft(1, 10, 100, at(10, 0), at(11, 0)))
	require.NoError(t, err)

	_, err = b.Cancel(created.ID, nil)
	require.NoError(t, err)

	_, err = b.Cancel(created.ID, nil)
	assert.ErrorIs(t, err, ErrCannotCancel)
}

func TestDelete_RemovesFromIndexes(t *testing.T) {
	b := newTestBoard(t)

	created, err := b.Create(draft(1, 10, 100, at(10, 0), at(11, 0)))
	require.NoError(t, err)

	require.NoError(t, b.Delete(created.ID))

	_, err = b.Get(created.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Empty(t, b.ListByDoctor(10))
	assert.Empty(t, b.ListByRoom(100))

	assert.ErrorIs(t, b.Delete(created.ID), ErrNotFound)
}

func TestListByDoctor_SortedByStart(t *testing.T) {
	b := newTestBoard(t)

	_, err := b.Create(draft(1, 10, 100, at(14, 0), at(15, 0)))
	require.NoError(t, err)
	_, err = b.Create(draft(2, 10, 101, at(9, 0), at(10, 0)))
	require.NoError(t, err)
	_, err = b.Create(draft(3, 10, 102, at(11, 0), at(12, 0)))
	require.NoError(t, err)
	_, err = b.Create(draft(4, 99, 103, at(8, 0), at(9, 0)))
	require.NoError(t, err)

	list := b.ListByDoctor(10)
	require.Len(t, list, 3)
	assert.Equal(t, at(9, 0), list[0].Start)
	assert.Equal(t, at(11, 0), list[1].Start)
	assert.Equal(t, at(14, 0), list[2].Start)
}

func TestLoad_SeedsBoardAndContinuesIDs(t *testing.T) {
	b := newTestBoard(t)

	stored := []*domain.Appointment{
		{ID: 7, PatientID: 1, DoctorID: 10, RoomID: 100, Start: at(10, 0), End: at(11, 0), Status: domain.StatusConfirmed},
		{ID: 3, PatientID: 2, DoctorID: 20, RoomID: 200, Start: at(10, 0), End: at(11, 0), Status: domain.StatusPending},
	}
	require.NoError(t, b.Load(stored))

	// Новые id продолжаются после максимального сохраненного
	created, err := b.Create(draft(3, 30, 300, at(10, 0), at(11, 0)))
	require.NoError(t, err)
	assert.Equal(t, int64(8), created.ID)
}

func TestLoad_RejectsConflictingData(t *testing.T) {
	b := newTestBoard(t)

	stored := []*domain.Appointment{
		{ID: 1, PatientID: 1, DoctorID: 10, RoomID: 100, Start: at(10, 0), End: at(11, 0), Status: domain.StatusConfirmed},
		{ID: 2, PatientID: 2, DoctorID: 10, RoomID: 200, Start: at(10, 30), End: at(11, 30), Status: domain.StatusConfirmed},
	}
	assert.Error(t, b.Load(stored))
}

func TestEvents_EmittedAfterMutations(t *testing.T) {
	events := make(chan domain.ChangeEvent, 16)
	b := New(nopLogger{}, nil, events)

	created, err := b.Create(draft(1, 10, 100, at(10, 0), at(11, 0)))
	require.NoError(t, err)
	_, err = b.Cancel(created.ID, nil)
	require.NoError(t, err)
	require.NoError(t, b.Delete(created.ID))

	createEvent := <-events
	assert.Equal(t, domain.ChangeUpsert, createEvent.Kind)
	assert.Equal(t, created.ID, createEvent.AppointmentID)
	require.NotNil(t, createEvent.Appointment)
	assert.Equal(t, domain.StatusPending, createEvent.Appointment.Status)

	cancelEvent := <-events
	assert.Equal(t, domain.ChangeUpsert, cancelEvent.Kind)
	assert.Equal(t, domain.StatusCancelled, cancelEvent.Appointment.Status)

	deleteEvent := <-events
	assert.Equal(t, domain.ChangeDelete, deleteEvent.Kind)
	assert.Equal(t, created.ID, deleteEvent.AppointmentID)
	assert.Nil(t, deleteEvent.Appointment)
}

func TestEvents_FullQueueDoesNotBlock(t *testing.T) {
	events := make(chan domain.ChangeEvent, 1)
	b := New(nopLogger{}, nil, events)

	_, err := b.Create(draft(1, 10, 100, at(10, 0), at(11, 0)))
	require.NoError(t, err)
	// Буфер заполнен, событие отбрасывается вместо блокировки доски
	_, err = b.Create(draft(2, 20, 200, at(10, 0), at(11, 0)))
	require.NoError(t, err)

	assert.Len(t, b.Snapshot(), 2)
}

func TestConcurrentCreates_NoDoubleBooking(t *testing.T) {
	b := newTestBoard(t)

	const writers = 16
	var wg sync.WaitGroup
	results := make(chan error, writers)

	// Все писатели претендуют на один и тот же слот одного доктора
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(patientID int64) {
			defer wg.Done()
			_, err := b.Create(draft(patientID, 10, 100+patientID, at(10, 0), at(11, 0)))
			results <- err
		}(int64(i + 1))
	}
	wg.Wait()
	close(results)

	var succeeded, rejected int
	for err := range results {
		if err == nil {
			succeeded++
		} else {
			require.ErrorIs(t, err, domain.ErrConflict)
			rejected++
		}
	}

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, writers-1, rejected)
	assert.Len(t, b.ListByDoctor(10), 1)
}
