package appointment

import (
	"context"
	"errors"
	"time"

	"github.com/m04kA/SMC-SchedulerService/internal/domain"
)

const applyTimeout = 5 * time.Second

// Journal асинхронно переносит изменения доски в PostgreSQL.
// Ошибки записи только логируются: доска в памяти остаётся источником
// истины, а копия в журнале может отставать - запись, чьё событие
// потеряно, попадёт в журнал только со следующим её изменением и до
// этого момента не переживёт перезапуск сервиса.
type Journal struct {
	repo      AppointmentWriter
	txManager TransactionManager
	events    <-chan domain.ChangeEvent
	logger    Logger
	done      chan struct{}
}

// NewJournal создает новый журнал изменений доски
func NewJournal(repo AppointmentWriter, txManager TransactionManager, events <-chan domain.ChangeEvent, logger Logger) *Journal {
	return &Journal{
		repo:      repo,
		txManager: txManager,
		events:    events,
		logger:    logger,
		done:      make(chan struct{}),
	}
}

// Run читает события изменений до отмены контекста.
// После отмены дочитывает уже буферизованные события, чтобы не потерять
// изменения, принятые доской до начала остановки сервиса.
func (j *Journal) Run(ctx context.Context) {
	defer close(j.done)

	for {
		select {
		case <-ctx.Done():
			j.drain()
			return
		case event, ok := <-j.events:
			if !ok {
				return
			}
			j.apply(event)
		}
	}
}

// Done закрывается после того, как Run обработал буфер событий и завершился.
// Позволяет дождаться дозаписи журнала при остановке сервиса.
func (j *Journal) Done() <-chan struct{} {
	return j.done
}

// drain обрабатывает события, оставшиеся в канале на момент остановки
func (j *Journal) drain() {
	for {
		select {
		case event, ok := <-j.events:
			if !ok {
				return
			}
			j.apply(event)
		default:
			return
		}
	}
}

func (j *Journal) apply(event domain.ChangeEvent) {
	ctx, cancel := context.WithTimeout(context.Background(), applyTimeout)
	defer cancel()

	err := j.txManager.DoSerializable(ctx, func(ctx context.Context) error {
		switch event.Kind {
		case domain.ChangeDelete:
			if err := j.repo.Delete(ctx, event.AppointmentID); err != nil {
				if errors.Is(err, ErrAppointmentNotFound) {
					// Запись так и не успела попасть в журнал, удалять нечего
					return nil
				}
				return err
			}
			return nil
		default:
			return j.repo.Upsert(ctx, event.Appointment)
		}
	})

	if err != nil {
		j.logger.Error("journal: failed to persist change for appointment %d: %v", event.AppointmentID, err)
	}
}
