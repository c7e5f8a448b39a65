package middleware

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/maynagashev/blogapi/internal/models"
	"github.com/maynagashev/blogapi/internal/services"
)

// Тип для ключа контекста.
type contextKey string

// Ключ для хранения аутентифицированного пользователя в контексте.
const UserKey contextKey = "authUser"

// Realm в заголовке WWW-Authenticate.
const basicRealm = `Basic realm="blogapi", charset="UTF-8"`

// CredentialVerifier проверяет пару логин/пароль и возвращает пользователя.
// Интерфейс отвязан от разбора транспортного заголовка, поэтому схему
// аутентификации можно заменить, не трогая обработчики маршрутов.
type CredentialVerifier interface {
	VerifyCredentials(ctx context.Context, username, password string) (*models.User, error)
}

// BasicAuth возвращает middleware, проверяющий учетные данные из заголовка
// HTTP Basic Authentication. При успехе пользователь кладется в контекст
// запроса; отказ в доступе (нет заголовка, неизвестное имя, неверный пароль)
// дает одинаковый ответ 401, чтобы не раскрывать существование имени.
// Сбой проверки (например, недоступное хранилище) — это 500, а не 401.
func BasicAuth(verifier CredentialVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			username, password, ok := r.BasicAuth()
			if !ok {
				log.Println("[AuthMiddleware] Заголовок Basic Authentication отсутствует или некорректен")
				unauthorized(w)
				return
			}

			user, err := verifier.VerifyCredentials(r.Context(), username, password)
			if err != nil {
				if errors.Is(err, services.ErrInvalidCredentials) {
					log.Printf("[AuthMiddleware] Отказ в аутентификации для '%s'", username)
					unauthorized(w)
					return
				}
				log.Printf("[AuthMiddleware] Ошибка проверки учетных данных для '%s': %v", username, err)
				http.Error(w, "Внутренняя ошибка сервера", http.StatusInternalServerError)
				return
			}

			// Добавляем пользователя в контекст запроса
			ctx := context.WithValue(r.Context(), UserKey, user)

			log.Printf("[AuthMiddleware] Пользователь '%s' (ID %d) успешно аутентифицирован", user.Username, user.ID)

			// Передаем управление следующему обработчику с обновленным контекстом
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// unauthorized отправляет единый ответ 401 с заголовком WWW-Authenticate.
func unauthorized(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", basicRealm)
	http.Error(w, "Требуется аутентификация", http.StatusUnauthorized)
}

// GetUserFromContext извлекает аутентифицированного пользователя из контекста.
// Возвращает пользователя и true, если он найден, иначе nil и false.
func GetUserFromContext(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(UserKey).(*models.User)
	return user, ok
}
