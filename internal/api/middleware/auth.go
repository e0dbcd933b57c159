package middleware

import (
	"net/http"

	"github.com/m04kA/SMC-SchedulerService/internal/api/handlers"
)

const userIDHeader = "X-User-ID"

// Auth проверяет наличие идентификатора пользователя в заголовке.
// Аутентификацию выполняет API gateway, сервис доверяет заголовку.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get(userIDHeader) == "" {
			handlers.RespondError(w, http.StatusUnauthorized, "отсутствует заголовок X-User-ID")
			return
		}
		next.ServeHTTP(w, r)
	})
}
