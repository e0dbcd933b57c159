package directory

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/m04kA/SMC-SchedulerService/internal/domain"
)

// Client клиент справочника клиники (доктора и кабинеты).
// Ядро планировщика никогда не мутирует эти данные - справочник
// принадлежит внешнему сервису, здесь только чтение и локальный кеш.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger

	mu          sync.RWMutex
	doctors     []domain.Doctor
	rooms       []domain.Room
	doctorsWarm bool
	roomsWarm   bool
}

// NewClient создает новый экземпляр клиента справочника
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetDoctors возвращает список докторов.
// При недоступности справочника применяется graceful degradation:
// если кеш уже прогрет - возвращается последний успешный снимок,
// иначе ErrServiceDegraded.
func (c *Client) GetDoctors(ctx context.Context) ([]domain.Doctor, error) {
	var models []doctorModel
	if err := c.fetch(ctx, "/internal/directory/doctors", &models); err != nil {
		return c.doctorsFromCache(err)
	}

	doctors := make([]domain.Doctor, 0, len(models))
	for _, m := range models {
		doctors = append(doctors, m.toDomain())
	}

	c.mu.Lock()
	c.doctors = doctors
	c.doctorsWarm = true
	c.mu.Unlock()

	return doctors, nil
}

// GetRooms возвращает список кабинетов с той же семантикой кеширования
func (c *Client) GetRooms(ctx context.Context) ([]domain.Room, error) {
	var models []roomModel
	if err := c.fetch(ctx, "/internal/directory/rooms", &models); err != nil {
		return c.roomsFromCache(err)
	}

	rooms := make([]domain.Room, 0, len(models))
	for _, m := range models {
		rooms = append(rooms, m.toDomain())
	}

	c.mu.Lock()
	c.rooms = rooms
	c.roomsWarm = true
	c.mu.Unlock()

	return rooms, nil
}

// GetDoctor возвращает доктора по ID или ErrDoctorNotFound
func (c *Client) GetDoctor(ctx context.Context, id int64) (*domain.Doctor, error) {
	doctors, err := c.GetDoctors(ctx)
	if err != nil {
		return nil, err
	}
	for i := range doctors {
		if doctors[i].ID == id {
			return &doctors[i], nil
		}
	}
	return nil, ErrDoctorNotFound
}

// GetRoom возвращает кабинет по ID или ErrRoomNotFound
func (c *Client) GetRoom(ctx context.Context, id int64) (*domain.Room, error) {
	rooms, err := c.GetRooms(ctx)
	if err != nil {
		return nil, err
	}
	for i := range rooms {
		if rooms[i].ID == id {
			return &rooms[i], nil
		}
	}
	return nil, ErrRoomNotFound
}

// fetch выполняет GET запрос и декодирует JSON ответ
func (c *Client) fetch(ctx context.Context, path string, dst interface{}) error {
	url := c.baseURL + path

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return nil
}

// doctorsFromCache отдает прогретый кеш вместо ошибки справочника
func (c *Client) doctorsFromCache(cause error) ([]domain.Doctor, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if !c.doctorsWarm {
		c.log.Error("Directory unavailable and doctors cache is cold: %v", cause)
		return nil, fmt.Errorf("%w: %v", ErrServiceDegraded, cause)
	}

	c.log.Warn("Directory unavailable, serving %d doctors from cache: %v", len(c.doctors), cause)
	return append([]domain.Doctor(nil), c.doctors...), nil
}

// roomsFromCache отдает прогретый кеш вместо ошибки справочника
func (c *Client) roomsFromCache(cause error) ([]domain.Room, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if !c.roomsWarm {
		c.log.Error("Directory unavailable and rooms cache is cold: %v", cause)
		return nil, fmt.Errorf("%w: %v", ErrServiceDegraded, cause)
	}

	c.log.Warn("Directory unavailable, serving %d rooms from cache: %v", len(c.rooms), cause)
	return append([]domain.Room(nil), c.rooms...), nil
}
