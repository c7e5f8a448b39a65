package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/maynagashev/blogapi/internal/models"
)

// PostRepository определяет методы для работы с записями блога в хранилище.
type PostRepository interface {
	CreatePost(ctx context.Context, post *models.BlogPost) error
	ListPosts(ctx context.Context) ([]models.BlogPost, error)
	GetPostByID(ctx context.Context, id string) (*models.BlogPost, error)
	UpdatePost(ctx context.Context, id string, title, content *string) (*models.BlogPost, error)
	DeletePost(ctx context.Context, id string) error
}

// postgresPostRepository реализует PostRepository для PostgreSQL.
type postgresPostRepository struct {
	db *sqlx.DB
}

// NewPostgresPostRepository создает новый экземпляр репозитория записей для PostgreSQL.
func NewPostgresPostRepository(db *sqlx.DB) PostRepository {
	return &postgresPostRepository{db: db}
}

// CreatePost сохраняет новую запись блога.
// Идентификатор присваивается здесь (UUID), время создания — базой данных;
// оба заполняются в переданной структуре.
func (r *postgresPostRepository) CreatePost(ctx context.Context, post *models.BlogPost) error {
	post.ID = uuid.New().String()

	query := `INSERT INTO posts (id, author_first_name, author_last_name, title, content)
		VALUES ($1, $2, $3, $4, $5) RETURNING created`

	err := r.db.QueryRowxContext(ctx, query,
		post.ID, post.AuthorFirstName, post.AuthorLastName, post.Title, post.Content).
		Scan(&post.Created)
	if err != nil {
		log.Printf("[Repo] Ошибка при создании записи '%s': %v", post.Title, err)
		return fmt.Errorf("ошибка выполнения запроса на создание записи: %w", err)
	}

	log.Printf("[Repo] Запись '%s' создана с ID %s", post.Title, post.ID)
	return nil
}

// ListPosts возвращает все записи блога в естественном порядке БД.
func (r *postgresPostRepository) ListPosts(ctx context.Context) ([]models.BlogPost, error) {
	query := `SELECT id, author_first_name, author_last_name, title, content, created FROM posts`
	var posts []models.BlogPost

	if err := r.db.SelectContext(ctx, &posts, query); err != nil {
		log.Printf("[Repo] Ошибка при получении списка записей: %v", err)
		return nil, fmt.Errorf("ошибка выполнения запроса на список записей: %w", err)
	}

	return posts, nil
}

// GetPostByID находит запись по идентификатору.
// Возвращает ErrPostNotFound, если записи нет.
func (r *postgresPostRepository) GetPostByID(ctx context.Context, id string) (*models.BlogPost, error) {
	query := `SELECT id, author_first_name, author_last_name, title, content, created
		FROM posts WHERE id=$1`
	var post models.BlogPost

	err := r.db.GetContext(ctx, &post, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Printf("[Repo] Запись с ID %s не найдена", id)
			return nil, ErrPostNotFound
		}
		log.Printf("[Repo] Ошибка при поиске записи %s: %v", id, err)
		return nil, fmt.Errorf("ошибка выполнения запроса на получение записи: %w", err)
	}

	return &post, nil
}

// UpdatePost частично обновляет запись: nil-поле остается нетронутым.
// Автор и время создания не изменяются. Возвращает обновленную запись
// или ErrPostNotFound, если записи с таким ID нет.
func (r *postgresPostRepository) UpdatePost(
	ctx context.Context, id string, title, content *string,
) (*models.BlogPost, error) {
	query := `UPDATE posts
		SET title = COALESCE($2, title), content = COALESCE($3, content)
		WHERE id = $1
		RETURNING id, author_first_name, author_last_name, title, content, created`
	var post models.BlogPost

	err := r.db.QueryRowxContext(ctx, query, id, title, content).StructScan(&post)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Printf("[Repo] Запись с ID %s для обновления не найдена", id)
			return nil, ErrPostNotFound
		}
		log.Printf("[Repo] Ошибка при обновлении записи %s: %v", id, err)
		return nil, fmt.Errorf("ошибка выполнения запроса на обновление записи: %w", err)
	}

	log.Printf("[Repo] Запись %s обновлена", id)
	return &post, nil
}

// DeletePost удаляет запись по идентификатору.
// Возвращает ErrPostNotFound, если удалять было нечего.
func (r *postgresPostRepository) DeletePost(ctx context.Context, id string) error {
	query := `DELETE FROM posts WHERE id=$1`

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		log.Printf("[Repo] Ошибка при удалении записи %s: %v", id, err)
		return fmt.Errorf("ошибка выполнения запроса на удаление записи: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка получения количества удаленных строк: %w", err)
	}
	if affected == 0 {
		log.Printf("[Repo] Запись с ID %s для удаления не найдена", id)
		return ErrPostNotFound
	}

	log.Printf("[Repo] Запись %s удалена", id)
	return nil
}

// Кастомные ошибки репозитория записей.
var ErrPostNotFound = errors.New("запись блога не найдена")
