package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/maynagashev/blogapi/internal/middleware"
	"github.com/maynagashev/blogapi/internal/models"
	"github.com/maynagashev/blogapi/internal/services"
)

// PostsService определяет интерфейс сервиса записей, необходимый обработчику.
type PostsService interface {
	CreatePost(ctx context.Context, author *models.User, req models.CreatePostRequest) (*models.BlogPost, error)
	ListPosts(ctx context.Context) ([]models.BlogPost, error)
	UpdatePost(ctx context.Context, id string, req models.UpdatePostRequest) (*models.BlogPost, error)
	DeletePost(ctx context.Context, id string) error
}

// PostHandler обрабатывает HTTP-запросы, связанные с записями блога.
type PostHandler struct {
	service PostsService
}

// NewPostHandler создает новый экземпляр PostHandler.
func NewPostHandler(s PostsService) *PostHandler {
	return &PostHandler{service: s}
}

// List обрабатывает GET /posts — публичный список всех записей.
func (h *PostHandler) List(w http.ResponseWriter, r *http.Request) {
	posts, err := h.service.ListPosts(r.Context())
	if err != nil {
		log.Printf("[PostHandler:List] Ошибка получения списка записей: %v", err)
		http.Error(w, "Внутренняя ошибка сервера", http.StatusInternalServerError)
		return
	}

	reprs := make([]models.PublicPost, 0, len(posts))
	for i := range posts {
		reprs = append(reprs, posts[i].APIRepr())
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err = json.NewEncoder(w).Encode(reprs); err != nil {
		log.Printf("[PostHandler:List] Ошибка кодирования списка записей: %v", err)
	}
}

// Create обрабатывает POST /posts — создание записи от имени
// аутентифицированного пользователя. Заголовок записи обязателен.
func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	author, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		log.Println("[PostHandler:Create] Не удалось получить пользователя из контекста")
		http.Error(w, "Внутренняя ошибка сервера", http.StatusInternalServerError)
		return
	}

	var req models.CreatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("[PostHandler:Create] Ошибка декодирования запроса: %v", err)
		http.Error(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	if strings.TrimSpace(req.Title) == "" {
		log.Println("[PostHandler:Create] Отсутствует заголовок записи")
		http.Error(w, "Заголовок записи не может быть пустым", http.StatusUnprocessableEntity)
		return
	}

	log.Printf("[PostHandler:Create] Пользователь '%s' создает запись '%s'", author.Username, req.Title)

	post, err := h.service.CreatePost(r.Context(), author, req)
	if err != nil {
		log.Printf("[PostHandler:Create] Ошибка сервиса при создании записи: %v", err)
		http.Error(w, "Внутренняя ошибка сервера", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated) // 201 Created
	if err = json.NewEncoder(w).Encode(post.APIRepr()); err != nil {
		log.Printf("[PostHandler:Create] Ошибка кодирования ответа: %v", err)
	}
}

// Update обрабатывает PUT /posts/{postID} — частичное обновление записи.
// Отвечает 201 с обновленным представлением, 404 для несуществующего ID.
func (h *PostHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "postID")

	var req models.UpdatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("[PostHandler:Update] Ошибка декодирования запроса: %v", err)
		http.Error(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	post, err := h.service.UpdatePost(r.Context(), id, req)
	if err != nil {
		if errors.Is(err, services.ErrPostNotFound) {
			log.Printf("[PostHandler:Update] Запись %s не найдена", id)
			http.Error(w, "Запись не найдена", http.StatusNotFound)
			return
		}
		log.Printf("[PostHandler:Update] Ошибка сервиса при обновлении записи %s: %v", id, err)
		http.Error(w, "Внутренняя ошибка сервера", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated) // 201, как в исходном API
	if err = json.NewEncoder(w).Encode(post.APIRepr()); err != nil {
		log.Printf("[PostHandler:Update] Ошибка кодирования ответа: %v", err)
	}
}

// Delete обрабатывает DELETE /posts/{postID}.
// Отвечает 204 без тела, 404 для несуществующего ID.
func (h *PostHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "postID")

	if err := h.service.DeletePost(r.Context(), id); err != nil {
		if errors.Is(err, services.ErrPostNotFound) {
			log.Printf("[PostHandler:Delete] Запись %s не найдена", id)
			http.Error(w, "Запись не найдена", http.StatusNotFound)
			return
		}
		log.Printf("[PostHandler:Delete] Ошибка сервиса при удалении записи %s: %v", id, err)
		http.Error(w, "Внутренняя ошибка сервера", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent) // 204, тело не возвращаем
}
