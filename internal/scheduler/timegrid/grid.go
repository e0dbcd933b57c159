package timegrid

import (
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SchedulerService/internal/domain"
	"github.com/m04kA/SMC-SchedulerService/pkg/types"
)

var (
	// ErrInvalidWindow возвращается при некорректном операционном окне
	ErrInvalidWindow = errors.New("timegrid: day end must be after day start")

	// ErrInvalidSlotSize возвращается при недопустимом размере слота
	ErrInvalidSlotSize = errors.New("timegrid: invalid slot size")
)

// Grid чистое геометрическое преобразование "время -> координаты сетки"
// для фиксированного операционного окна [DayStart, DayEnd).
// Не хранит состояния, не обращается к ресурсам и не имеет side effects -
// переиспользуется любым слоем отрисовки.
type Grid struct {
	dayStartMinutes int
	dayEndMinutes   int
	slotMinutes     int
}

// Position координаты встречи на сетке в минутах.
// OffsetMinutes - смещение начала от начала операционного окна,
// LengthMinutes - длительность встречи.
type Position struct {
	OffsetMinutes int
	LengthMinutes int
}

// New создает сетку для окна [dayStart, dayEnd) с заданным размером слота
func New(dayStart, dayEnd types.TimeString, slotMinutes int) (Grid, error) {
	startMinutes, err := dayStart.Minutes()
	if err != nil {
		return Grid{}, fmt.Errorf("%w: day start: %v", ErrInvalidWindow, err)
	}
	endMinutes, err := dayEnd.Minutes()
	if err != nil {
		return Grid{}, fmt.Errorf("%w: day end: %v", ErrInvalidWindow, err)
	}
	if endMinutes <= startMinutes {
		return Grid{}, ErrInvalidWindow
	}
	if slotMinutes < domain.MinSlotMinutes || slotMinutes > domain.MaxSlotMinutes {
		return Grid{}, fmt.Errorf("%w: %d minutes", ErrInvalidSlotSize, slotMinutes)
	}

	return Grid{
		dayStartMinutes: startMinutes,
		dayEndMinutes:   endMinutes,
		slotMinutes:     slotMinutes,
	}, nil
}

// Default возвращает сетку с дефолтным окном и часовыми слотами
func Default() Grid {
	grid, err := New(
		types.TimeString(domain.DefaultDayStart),
		types.TimeString(domain.DefaultDayEnd),
		domain.DefaultSlotMinutes,
	)
	if err != nil {
		// Дефолтные константы валидны всегда
		panic(err)
	}
	return grid
}

// SlotMinutes возвращает размер слота сетки
func (g Grid) SlotMinutes() int {
	return g.slotMinutes
}

// WindowMinutes возвращает длину операционного окна в минутах
func (g Grid) WindowMinutes() int {
	return g.dayEndMinutes - g.dayStartMinutes
}

// Position переводит интервал встречи в координаты сетки.
// Встречи могут начинаться с произвольным минутным смещением (не по
// границе слота); начало раньше операционного окна дает отрицательный offset.
func (g Grid) Position(start, end time.Time) Position {
	startMinutes := start.Hour()*60 + start.Minute()
	return Position{
		OffsetMinutes: startMinutes - g.dayStartMinutes,
		LengthMinutes: int(end.Sub(start) / time.Minute),
	}
}

// SlotStarts генерирует выровненные по слотам drop-цели для указанной даты:
// начала всех слотов операционного окна, целиком помещающихся до его конца.
// Сами встречи могут стоять вне границ слотов; по слотам выравниваются
// только цели перетаскивания.
func (g Grid) SlotStarts(date time.Time) []time.Time {
	year, month, day := date.Date()
	midnight := time.Date(year, month, day, 0, 0, 0, 0, date.Location())

	starts := make([]time.Time, 0, g.WindowMinutes()/g.slotMinutes)
	for m := g.dayStartMinutes; m+g.slotMinutes <= g.dayEndMinutes; m += g.slotMinutes {
		starts = append(starts, midnight.Add(time.Duration(m)*time.Minute))
	}
	return starts
}

// Contains сообщает, попадает ли интервал встречи в операционное окно
func (g Grid) Contains(start, end time.Time) bool {
	pos := g.Position(start, end)
	return pos.OffsetMinutes >= 0 && pos.OffsetMinutes+pos.LengthMinutes <= g.WindowMinutes()
}
