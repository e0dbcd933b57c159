package reminder

import (
	"context"
	"sync"
	"time"

	"github.com/m04kA/SMC-SchedulerService/internal/domain"
)

// Scheduler рассылает напоминания о встречах за фиксированный интервал
// до их начала.
//
// Наивная проверка "попала ли разница (start - now) в узкое окно прямо
// сейчас", переоцениваемая каждый тик, срабатывает дважды (если два тика
// попали в окно) или не срабатывает вовсе (если тики окно перешагнули).
// Вместо этого на каждую встречу вычисляется единственный момент
// срабатывания fireAt = start - lead, а факт отправки фиксируется
// в fired-множестве по ID встречи: ровно одно напоминание на встречу
// независимо от частоты опроса.
type Scheduler struct {
	source   BoardSource
	notifier Notifier
	lead     time.Duration
	poll     time.Duration

	log          Logger
	recorder     FireRecorder
	timeProvider TimeProvider

	mu sync.Mutex
	// fired: ID встречи -> fireAt, для которого напоминание уже отправлено
	fired map[int64]time.Time
}

// New создает планировщик напоминаний.
// lead - за сколько до начала встречи напоминать, poll - период опроса доски.
// recorder опционален (nil = метрики выключены).
func New(source BoardSource, notifier Notifier, lead, poll time.Duration, log Logger, recorder FireRecorder) *Scheduler {
	return &Scheduler{
		source:       source,
		notifier:     notifier,
		lead:         lead,
		poll:         poll,
		log:          log,
		recorder:     recorder,
		timeProvider: &RealTimeProvider{},
		fired:        make(map[int64]time.Time),
	}
}

// Run запускает цикл опроса до отмены контекста.
// Работает в собственной горутине и читает только снимки доски.
func (s *Scheduler) Run(ctx context.Context) {
	s.log.Info("ReminderScheduler: started (lead=%s, poll=%s)", s.lead, s.poll)

	ticker := time.NewTicker(s.poll)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.log.Info("ReminderScheduler: stopped")
			return
		case <-ticker.C:
			s.Poll(s.timeProvider.Now())
		}
	}
}

// Poll выполняет один проход по снимку доски на момент времени now.
// Выделен отдельно от Run для детерминированного тестирования.
func (s *Scheduler) Poll(now time.Time) {
	snapshot := s.source.Snapshot()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.dropStale(snapshot)

	for _, appt := range snapshot {
		if !s.eligible(appt, now) {
			continue
		}

		fireAt := appt.Start.Add(-s.lead)

		if now.Before(fireAt) {
			// Момент срабатывания еще впереди. Если встречу перенесли
			// дальше в будущее после уже отправленного напоминания,
			// перевзводим ее: новое время получит свое напоминание.
			if prev, ok := s.fired[appt.ID]; ok && !prev.Equal(fireAt) {
				delete(s.fired, appt.ID)
			}
			continue
		}

		// Момент срабатывания наступил. Отправляем ровно один раз:
		// встреча с любой отметкой в fired уже получила напоминание
		// (в том числе для прежнего времени - перенос ближе к началу
		// второго напоминания не дает).
		if _, ok := s.fired[appt.ID]; ok {
			continue
		}

		s.fired[appt.ID] = fireAt
		s.notifier.Notify(Event{Appointment: appt, FireAt: fireAt, SentAt: now})
		if s.recorder != nil {
			s.recorder.IncReminderFired()
		}
		s.log.Info("ReminderScheduler: reminder sent for appointment id=%d (start=%s)",
			appt.ID, appt.Start.Format(time.RFC3339))
	}
}

// eligible отбирает встречи, которым положено напоминание:
// ресурсы удержаны, встреча не завершена и еще не началась.
// Отмена или перенос за пределы lead-окна гасят ожидающее напоминание.
func (s *Scheduler) eligible(appt *domain.Appointment, now time.Time) bool {
	if !appt.HoldsResources() || appt.IsFinished() {
		delete(s.fired, appt.ID)
		return false
	}
	if !appt.Start.After(now) {
		// Встреча уже началась - напоминание больше не имеет смысла
		return false
	}
	return true
}

// dropStale удаляет из fired-множества отметки удаленных встреч
func (s *Scheduler) dropStale(snapshot []*domain.Appointment) {
	if len(s.fired) == 0 {
		return
	}
	present := make(map[int64]struct{}, len(snapshot))
	for _, appt := range snapshot {
		present[appt.ID] = struct{}{}
	}
	for id := range s.fired {
		if _, ok := present[id]; !ok {
			delete(s.fired, id)
		}
	}
}
