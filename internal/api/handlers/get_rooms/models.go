package get_rooms

import (
	"github.com/m04kA/SMC-SchedulerService/internal/domain"
)

// RoomResponse HTTP response model
type RoomResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}

// RoomListResponse список кабинетов
type RoomListResponse struct {
	Rooms []RoomResponse `json:"rooms"`
	Total int            `json:"total"`
}

// FromDomainRooms конвертирует доменные модели в HTTP response
func FromDomainRooms(rooms []domain.Room) *RoomListResponse {
	out := &RoomListResponse{
		Rooms: make([]RoomResponse, 0, len(rooms)),
		Total: len(rooms),
	}
	for _, room := range rooms {
		out.Rooms = append(out.Rooms, RoomResponse{
			ID:   room.ID,
			Name: room.Name,
			Type: string(room.Type),
		})
	}
	return out
}
