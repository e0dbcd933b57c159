package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulerService/pkg/types"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

const validConfig = `
[server]
http_port = 9090

[logs]
file = "logs/test.log"
level = "debug"

[database]
enabled = false

[metrics]
enabled = false

[directory]
url = "http://localhost:8090"
timeout = 3

[board]
day_start = "09:00"
day_end = "17:00"
slot_minutes = 30
reminder_lead_minutes = 45
reminder_poll_seconds = 10
`

func TestLoad(t *testing.T) {
	cfg, err := Load(writeConfig(t, validConfig))
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.HTTPPort)
	assert.Equal(t, "debug", cfg.Logs.Level)
	assert.False(t, cfg.Database.Enabled)
	assert.Equal(t, types.TimeString("09:00"), cfg.Board.DayStart)
	assert.Equal(t, types.TimeString("17:00"), cfg.Board.DayEnd)
	assert.Equal(t, 30, cfg.Board.SlotMinutes)
	assert.Equal(t, 45, cfg.Board.ReminderLeadMinutes)
	assert.Equal(t, 10, cfg.Board.ReminderPollSeconds)
}

func TestLoad_DefaultsApplied(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
[directory]
url = "http://localhost:8090"
`))
	require.NoError(t, err)

	// Незаполненные секции получают дефолты
	assert.Equal(t, 8080, cfg.Server.HTTPPort)
	assert.Equal(t, "info", cfg.Logs.Level)
	assert.Equal(t, types.TimeString("08:00"), cfg.Board.DayStart)
	assert.Equal(t, 60, cfg.Board.SlotMinutes)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestLoad_Validation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing directory url", `
[board]
day_start = "08:00"
`},
		{"inverted window", `
[directory]
url = "http://localhost:8090"
[board]
day_start = "18:00"
day_end = "08:00"
`},
		{"bad slot size", `
[directory]
url = "http://localhost:8090"
[board]
slot_minutes = 2
`},
		{"database enabled without host", `
[directory]
url = "http://localhost:8090"
[database]
enabled = true
`},
		{"malformed day_start", `
[directory]
url = "http://localhost:8090"
[board]
day_start = "8 am"
`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			assert.Error(t, err)
		})
	}
}

func TestDSN(t *testing.T) {
	db := DatabaseConfig{
		Host:     "db.local",
		Port:     5432,
		User:     "scheduler",
		Password: "secret",
		DBName:   "scheduler",
		SSLMode:  "disable",
	}
	assert.Equal(t,
		"host=db.local port=5432 user=scheduler password=secret dbname=scheduler sslmode=disable",
		db.DSN())
}
