package directory

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

// flakyDirectory имитирует справочник, который можно выключить на лету
type flakyDirectory struct {
	down atomic.Bool
}

func (d *flakyDirectory) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/internal/directory/doctors", func(w http.ResponseWriter, r *http.Request) {
		if d.down.Load() {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":1,"name":"Dr. Petrova","specialty":"cardiology"},{"id":2,"name":"Dr. Ivanov","specialty":"surgery"}]`))
	})
	mux.HandleFunc("/internal/directory/rooms", func(w http.ResponseWriter, r *http.Request) {
		if d.down.Load() {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":10,"name":"Room A","type":"operating"}]`))
	})
	return mux
}

func newTestClient(t *testing.T) (*Client, *flakyDirectory) {
	t.Helper()
	dir := &flakyDirectory{}
	srv := httptest.NewServer(dir.handler())
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, time.Second, nopLogger{}), dir
}

func TestGetDoctors(t *testing.T) {
	client, _ := newTestClient(t)

	doctors, err := client.GetDoctors(context.Background())
	require.NoError(t, err)
	require.Len(t, doctors, 2)
	assert.Equal(t, "Dr. Petrova", doctors[0].Name)
	assert.Equal(t, "cardiology", doctors[0].Specialty)
}

func TestGetRooms(t *testing.T) {
	client, _ := newTestClient(t)

	rooms, err := client.GetRooms(context.Background())
	require.NoError(t, err)
	require.Len(t, rooms, 1)
	assert.Equal(t, "Room A", rooms[0].Name)
}

func TestGetDoctor_ByID(t *testing.T) {
	client, _ := newTestClient(t)

	doctor, err := client.GetDoctor(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, "Dr. Ivanov", doctor.Name)

	_, err = client.GetDoctor(context.Background(), 99)
	assert.ErrorIs(t, err, ErrDoctorNotFound)
}

func TestGetRoom_ByID(t *testing.T) {
	client, _ := newTestClient(t)

	room, err := client.GetRoom(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, "Room A", room.Name)

	_, err = client.GetRoom(context.Background(), 99)
	assert.ErrorIs(t, err, ErrRoomNotFound)
}

func TestGetDoctors_WarmCacheServedWhenDown(t *testing.T) {
	client, dir := newTestClient(t)

	// Прогреваем кеш успешным запросом
	_, err := client.GetDoctors(context.Background())
	require.NoError(t, err)

	dir.down.Store(true)

	doctors, err := client.GetDoctors(context.Background())
	require.NoError(t, err)
	assert.Len(t, doctors, 2)
}

func TestGetDoctors_ColdCacheDegraded(t *testing.T) {
	client, dir := newTestClient(t)
	dir.down.Store(true)

	_, err := client.GetDoctors(context.Background())
	assert.ErrorIs(t, err, ErrServiceDegraded)
}

func TestCachesWarmIndependently(t *testing.T) {
	client, dir := newTestClient(t)

	// Прогрет только кеш докторов
	_, err := client.GetDoctors(context.Background())
	require.NoError(t, err)

	dir.down.Store(true)

	_, err = client.GetDoctors(context.Background())
	assert.NoError(t, err)
	_, err = client.GetRooms(context.Background())
	assert.ErrorIs(t, err, ErrServiceDegraded)
}
