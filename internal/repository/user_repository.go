package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/maynagashev/blogapi/internal/models"
)

// Коды ошибок PostgreSQL.
const (
	pgUniqueViolationCode = "23505"
)

// UserRepository определяет методы для работы с учетными записями в хранилище.
type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User) (int64, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	CountByUsername(ctx context.Context, username string) (int, error)
	ListUsers(ctx context.Context) ([]models.User, error)
}

// postgresUserRepository реализует UserRepository для PostgreSQL.
type postgresUserRepository struct {
	db *sqlx.DB
}

// NewPostgresUserRepository создает новый экземпляр репозитория пользователей для PostgreSQL.
func NewPostgresUserRepository(db *sqlx.DB) UserRepository {
	return &postgresUserRepository{db: db}
}

// CreateUser создает нового пользователя в базе данных.
// Возвращает ID созданного пользователя или ошибку.
// Уникальность имени пользователя гарантирует уникальный индекс в БД:
// нарушение транслируется в ErrUsernameTaken.
func (r *postgresUserRepository) CreateUser(ctx context.Context, user *models.User) (int64, error) {
	query := `INSERT INTO users (username, password_hash, first_name, last_name)
		VALUES ($1, $2, $3, $4) RETURNING id`
	var userID int64

	err := r.db.QueryRowxContext(ctx, query,
		user.Username, user.PasswordHash, user.FirstName, user.LastName).Scan(&userID)
	if err != nil {
		var pgErr *pq.Error
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolationCode {
			log.Printf("[Repo] Имя пользователя '%s' уже занято", user.Username)
			return 0, ErrUsernameTaken
		}
		log.Printf("[Repo] Непредвиденная ошибка при создании пользователя '%s': %v", user.Username, err)
		return 0, fmt.Errorf("ошибка выполнения запроса на создание пользователя: %w", err)
	}

	user.ID = userID
	log.Printf("[Repo] Пользователь '%s' создан с ID %d", user.Username, userID)
	return userID, nil
}

// GetUserByUsername находит пользователя по его имени.
// Возвращает ErrUserNotFound, если пользователь отсутствует.
func (r *postgresUserRepository) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	query := `SELECT id, username, password_hash, first_name, last_name, created_at
		FROM users WHERE username=$1`
	var user models.User

	err := r.db.GetContext(ctx, &user, query, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Printf("[Repo] Пользователь с именем '%s' не найден", username)
			return nil, ErrUserNotFound
		}
		log.Printf("[Repo] Ошибка при поиске пользователя '%s': %v", username, err)
		return nil, fmt.Errorf("ошибка выполнения запроса на получение пользователя: %w", err)
	}

	return &user, nil
}

// CountByUsername возвращает количество пользователей с данным именем.
// Используется как быстрая предварительная проверка занятости имени
// перед регистрацией; атомарную гарантию дает индекс (см. CreateUser).
func (r *postgresUserRepository) CountByUsername(ctx context.Context, username string) (int, error) {
	query := `SELECT count(*) FROM users WHERE username=$1`
	var count int

	if err := r.db.GetContext(ctx, &count, query, username); err != nil {
		log.Printf("[Repo] Ошибка при подсчете пользователей с именем '%s': %v", username, err)
		return 0, fmt.Errorf("ошибка выполнения запроса на подсчет пользователей: %w", err)
	}

	return count, nil
}

// ListUsers возвращает всех пользователей в порядке их создания.
func (r *postgresUserRepository) ListUsers(ctx context.Context) ([]models.User, error) {
	query := `SELECT id, username, password_hash, first_name, last_name, created_at
		FROM users ORDER BY id`
	var users []models.User

	if err := r.db.SelectContext(ctx, &users, query); err != nil {
		log.Printf("[Repo] Ошибка при получении списка пользователей: %v", err)
		return nil, fmt.Errorf("ошибка выполнения запроса на список пользователей: %w", err)
	}

	return users, nil
}

// Кастомные ошибки репозитория.
var (
	ErrUserNotFound  = errors.New("пользователь не найден")
	ErrUsernameTaken = errors.New("имя пользователя уже занято")
)
