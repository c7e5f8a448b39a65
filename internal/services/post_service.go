package services

import (
	"context"
	"errors"
	"log"

	"github.com/maynagashev/blogapi/internal/models"
	"github.com/maynagashev/blogapi/internal/repository"
)

// PostService определяет интерфейс для сервиса записей блога.
type PostService interface {
	CreatePost(ctx context.Context, author *models.User, req models.CreatePostRequest) (*models.BlogPost, error)
	ListPosts(ctx context.Context) ([]models.BlogPost, error)
	UpdatePost(ctx context.Context, id string, req models.UpdatePostRequest) (*models.BlogPost, error)
	DeletePost(ctx context.Context, id string) error
}

// Убедимся, что postService удовлетворяет интерфейсу PostService.
var _ PostService = (*postService)(nil)

type postService struct {
	postRepo repository.PostRepository // Зависимость от репозитория записей
}

// NewPostService создает новый экземпляр сервиса записей блога.
func NewPostService(postRepo repository.PostRepository) PostService {
	return &postService{postRepo: postRepo}
}

// CreatePost создает запись от имени автора.
// Имя и фамилия автора копируются в запись по значению: это снимок
// на момент публикации, дальнейшие изменения пользователя его не затрагивают.
func (s *postService) CreatePost(
	ctx context.Context, author *models.User, req models.CreatePostRequest,
) (*models.BlogPost, error) {
	post := &models.BlogPost{
		AuthorFirstName: author.FirstName,
		AuthorLastName:  author.LastName,
		Title:           req.Title,
		Content:         req.Content,
	}

	if err := s.postRepo.CreatePost(ctx, post); err != nil {
		log.Printf("[PostService] Ошибка создания записи '%s': %v", req.Title, err)
		return nil, errors.New("внутренняя ошибка сервера при создании записи")
	}

	log.Printf("[PostService] Запись %s создана автором '%s'", post.ID, post.AuthorName())
	return post, nil
}

// ListPosts возвращает все записи блога.
func (s *postService) ListPosts(ctx context.Context) ([]models.BlogPost, error) {
	posts, err := s.postRepo.ListPosts(ctx)
	if err != nil {
		log.Printf("[PostService] Ошибка получения списка записей: %v", err)
		return nil, errors.New("внутренняя ошибка сервера при получении списка записей")
	}
	return posts, nil
}

// UpdatePost частично обновляет запись: меняются только переданные поля,
// автор и время создания остаются прежними.
func (s *postService) UpdatePost(
	ctx context.Context, id string, req models.UpdatePostRequest,
) (*models.BlogPost, error) {
	post, err := s.postRepo.UpdatePost(ctx, id, req.Title, req.Content)
	if err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			return nil, ErrPostNotFound
		}
		log.Printf("[PostService] Ошибка обновления записи %s: %v", id, err)
		return nil, errors.New("внутренняя ошибка сервера при обновлении записи")
	}

	log.Printf("[PostService] Запись %s обновлена", id)
	return post, nil
}

// DeletePost удаляет запись по идентификатору.
func (s *postService) DeletePost(ctx context.Context, id string) error {
	if err := s.postRepo.DeletePost(ctx, id); err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			return ErrPostNotFound
		}
		log.Printf("[PostService] Ошибка удаления записи %s: %v", id, err)
		return errors.New("внутренняя ошибка сервера при удалении записи")
	}

	log.Printf("[PostService] Запись %s удалена", id)
	return nil
}

// Кастомные ошибки сервиса записей.
var ErrPostNotFound = errors.New("запись блога не найдена")
