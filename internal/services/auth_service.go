package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/maynagashev/blogapi/internal/models"
	"github.com/maynagashev/blogapi/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

// AuthService определяет интерфейс для сервиса учетных записей.
type AuthService interface {
	Register(ctx context.Context, req models.RegisterRequest) (*models.User, error)
	VerifyCredentials(ctx context.Context, username, password string) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
}

// Убедимся, что authService удовлетворяет интерфейсу AuthService.
var _ AuthService = (*authService)(nil)

type authService struct {
	userRepo repository.UserRepository // Зависимость от репозитория пользователей
}

// NewAuthService создает новый экземпляр сервиса учетных записей.
func NewAuthService(userRepo repository.UserRepository) AuthService {
	return &authService{userRepo: userRepo}
}

// Register регистрирует нового пользователя: проверяет занятость имени,
// хеширует пароль и сохраняет учетную запись.
// Проверка занятости — быстрый путь; гонку двух одновременных регистраций
// разрешает уникальный индекс в БД, нарушение которого репозиторий
// также возвращает как занятое имя.
func (s *authService) Register(ctx context.Context, req models.RegisterRequest) (*models.User, error) {
	count, err := s.userRepo.CountByUsername(ctx, req.Username)
	if err != nil {
		log.Printf("[AuthService] Ошибка проверки занятости имени '%s': %v", req.Username, err)
		return nil, errors.New("внутренняя ошибка сервера при проверке имени пользователя")
	}
	if count > 0 {
		log.Printf("[AuthService] Попытка регистрации с занятым именем: %s", req.Username)
		return nil, ErrUsernameTaken
	}

	// Хешируем пароль
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("[AuthService] Ошибка хеширования пароля для '%s': %v", req.Username, err)
		return nil, errors.New("внутренняя ошибка сервера при хешировании пароля")
	}

	user := &models.User{
		Username:     req.Username,
		PasswordHash: string(hashedPassword),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
	}

	if _, err = s.userRepo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repository.ErrUsernameTaken) {
			log.Printf("[AuthService] Имя '%s' занято конкурентной регистрацией", req.Username)
			return nil, ErrUsernameTaken
		}
		log.Printf("[AuthService] Непредвиденная ошибка репозитория при регистрации '%s': %v", req.Username, err)
		return nil, errors.New("внутренняя ошибка сервера при создании пользователя")
	}

	log.Printf("[AuthService] Пользователь '%s' успешно зарегистрирован", req.Username)
	return user, nil
}

// VerifyCredentials проверяет пару логин/пароль и возвращает пользователя.
// Для несуществующего пользователя и неверного пароля возвращается одна
// и та же ErrInvalidCredentials, чтобы не раскрывать существование имени.
// Ошибки хранилища и поврежденный хеш возвращаются отдельными ошибками:
// это сбой сервера, а не отказ в доступе.
func (s *authService) VerifyCredentials(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.userRepo.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			log.Printf("[AuthService] Попытка входа несуществующего пользователя: %s", username)
			return nil, ErrInvalidCredentials
		}
		log.Printf("[AuthService] Ошибка репозитория при поиске '%s': %v", username, err)
		return nil, fmt.Errorf("ошибка поиска пользователя при проверке учетных данных: %w", err)
	}

	// Сравниваем предоставленный пароль с хешем из базы данных
	if err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			log.Printf("[AuthService] Неверный пароль для пользователя: %s", username)
			return nil, ErrInvalidCredentials
		}
		// Хеш в БД поврежден или имеет неверный формат
		log.Printf("[AuthService] Ошибка проверки хеша пароля для '%s': %v", username, err)
		return nil, fmt.Errorf("ошибка проверки хеша пароля: %w", err)
	}

	log.Printf("[AuthService] Пользователь '%s' успешно аутентифицирован", username)
	return user, nil
}

// ListUsers возвращает всех зарегистрированных пользователей.
func (s *authService) ListUsers(ctx context.Context) ([]models.User, error) {
	users, err := s.userRepo.ListUsers(ctx)
	if err != nil {
		log.Printf("[AuthService] Ошибка получения списка пользователей: %v", err)
		return nil, errors.New("внутренняя ошибка сервера при получении списка пользователей")
	}
	return users, nil
}

// Кастомные ошибки сервиса.
var (
	ErrInvalidCredentials = errors.New("неверное имя пользователя или пароль")
	ErrUsernameTaken      = errors.New("имя пользователя уже занято")
)
