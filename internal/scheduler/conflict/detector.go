package conflict

import (
	"time"

	"github.com/m04kA/SMC-SchedulerService/internal/domain"
)

// Hit описывает найденный конфликт: с какой встречей и по какой оси
type Hit struct {
	Appointment *domain.Appointment
	Resource    domain.ResourceKind
}

// Overlaps проверяет пересечение двух полуоткрытых интервалов [s1, e1) и [s2, e2).
// Используются строгие неравенства: встречи, граничащие по времени
// (конец одной равен началу другой), НЕ пересекаются.
func Overlaps(s1, e1, s2, e2 time.Time) bool {
	return s1.Before(e2) && e1.After(s2)
}

// Check ищет конфликт интервала [start, end) с уже существующими встречами.
// byDoctor - встречи целевого доктора, byRoom - встречи целевого кабинета
// (две независимые выборки по индексам, объединение - не составной ключ,
// потому что конфликт возможен по любой из осей отдельно).
//
// Правила:
//   - отмененные и no-show встречи освободили ресурсы и не учитываются;
//   - excludeID исключает прежнее состояние самой перемещаемой встречи;
//   - ось доктора проверяется первой; внутри оси выбирается встреча
//     с минимальным ID, чтобы ошибка конфликта была детерминированной.
//
// Возвращает nil, если конфликтов нет.
func Check(byDoctor, byRoom []*domain.Appointment, start, end time.Time, excludeID int64) *Hit {
	if hit := firstCollider(byDoctor, start, end, excludeID); hit != nil {
		return &Hit{Appointment: hit, Resource: domain.ResourceDoctor}
	}
	if hit := firstCollider(byRoom, start, end, excludeID); hit != nil {
		return &Hit{Appointment: hit, Resource: domain.ResourceRoom}
	}
	return nil
}

// firstCollider возвращает пересекающуюся встречу с минимальным ID или nil
func firstCollider(appointments []*domain.Appointment, start, end time.Time, excludeID int64) *domain.Appointment {
	var best *domain.Appointment

	for _, appt := range appointments {
		if appt.ID == excludeID {
			continue
		}
		if !appt.HoldsResources() {
			continue
		}
		if !Overlaps(appt.Start, appt.End, start, end) {
			continue
		}
		if best == nil || appt.ID < best.ID {
			best = appt
		}
	}

	return best
}
