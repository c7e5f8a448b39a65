package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/maynagashev/blogapi/internal/middleware"
	"github.com/maynagashev/blogapi/internal/models"
	"github.com/maynagashev/blogapi/internal/services"
)

// UserService определяет интерфейс сервиса учетных записей,
// необходимый обработчику. Это позволяет подменять реализацию в тестах.
type UserService interface {
	Register(ctx context.Context, req models.RegisterRequest) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
}

// UserHandler обрабатывает HTTP-запросы, связанные с пользователями.
type UserHandler struct {
	service UserService // Зависимость от интерфейса, а не конкретной реализации
}

// NewUserHandler создает новый экземпляр UserHandler.
func NewUserHandler(s UserService) *UserHandler {
	return &UserHandler{service: s}
}

// Register обрабатывает POST /users — регистрацию нового пользователя.
// Валидация выполняется до обращения к сервису: имя и пароль — непустые
// строки после обрезки пробелов. Ошибки валидации и занятое имя — 422.
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	// Декодируем JSON из тела запроса
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("[UserHandler] Ошибка декодирования запроса регистрации: %v", err)
		http.Error(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	req.Username = strings.TrimSpace(req.Username)
	req.Password = strings.TrimSpace(req.Password)

	if req.Username == "" {
		log.Println("[UserHandler] Пустое имя пользователя при регистрации")
		http.Error(w, "Имя пользователя не может быть пустым", http.StatusUnprocessableEntity)
		return
	}
	if req.Password == "" {
		log.Println("[UserHandler] Пустой пароль при регистрации")
		http.Error(w, "Пароль не может быть пустым", http.StatusUnprocessableEntity)
		return
	}

	log.Printf("[UserHandler] Попытка регистрации пользователя: %s", req.Username)

	user, err := h.service.Register(r.Context(), req)
	if err != nil {
		if errors.Is(err, services.ErrUsernameTaken) {
			http.Error(w, services.ErrUsernameTaken.Error(), http.StatusUnprocessableEntity)
			return
		}
		log.Printf("[UserHandler] Ошибка сервиса при регистрации '%s': %v", req.Username, err)
		http.Error(w, "Внутренняя ошибка сервера", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated) // 201 Created
	if err = json.NewEncoder(w).Encode(user.APIRepr()); err != nil {
		log.Printf("[UserHandler] Ошибка кодирования ответа регистрации: %v", err)
	}
}

// List обрабатывает GET /users — список всех пользователей (требует аутентификации).
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.ListUsers(r.Context())
	if err != nil {
		log.Printf("[UserHandler] Ошибка получения списка пользователей: %v", err)
		http.Error(w, "Внутренняя ошибка сервера", http.StatusInternalServerError)
		return
	}

	// Отдаем только публичные представления
	reprs := make([]models.PublicUser, 0, len(users))
	for i := range users {
		reprs = append(reprs, users[i].APIRepr())
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err = json.NewEncoder(w).Encode(reprs); err != nil {
		log.Printf("[UserHandler] Ошибка кодирования списка пользователей: %v", err)
	}
}

// Me обрабатывает GET /users/me — публичное представление вызывающего
// пользователя, завернутое в объект "user".
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		log.Println("[UserHandler] Не удалось получить пользователя из контекста")
		http.Error(w, "Внутренняя ошибка сервера", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(models.MeResponse{User: user.APIRepr()}); err != nil {
		log.Printf("[UserHandler] Ошибка кодирования ответа /users/me: %v", err)
	}
}
