package domain

import (
	"sort"
	"time"
)

// FindAvailableRooms возвращает комнаты, свободные на интервал [start, end).
//
// Комната исключается, если хотя бы одно её бронирование в занимающем статусе
// (не canceled и не checked_out) пересекается с интервалом, либо с интервалом
// пересекается заблокированный диапазон дат. Пересечение проверяется по
// полуоткрытой конвенции: выезд в день start конфликтом не считается.
//
// Результат отсортирован по ID комнаты по возрастанию. Функция читает только
// переданные снимки данных; консистентность снимка - забота вызывающего.
func FindAvailableRooms(
	rooms []*Room,
	start, end time.Time,
	bookings []*Booking,
	blocks []*BlockedDateRange,
) []*Room {
	start = DateOnly(start)
	end = DateOnly(end)

	conflicting := make(map[int64]struct{})

	for _, b := range bookings {
		if !b.IsBlocking() {
			continue
		}
		if b.OverlapsRange(start, end) {
			conflicting[b.RoomID] = struct{}{}
		}
	}

	for _, blk := range blocks {
		if RangesOverlap(blk.StartDate, blk.EndDate, start, end) {
			conflicting[blk.RoomID] = struct{}{}
		}
	}

	available := make([]*Room, 0, len(rooms))
	for _, room := range rooms {
		if _, excluded := conflicting[room.ID]; !excluded {
			available = append(available, room)
		}
	}

	sort.Slice(available, func(i, j int) bool { return available[i].ID < available[j].ID })

	return available
}
