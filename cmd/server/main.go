package main

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/maynagashev/blogapi/internal/handlers"
	appmiddleware "github.com/maynagashev/blogapi/internal/middleware"
	"github.com/maynagashev/blogapi/internal/repository"
	"github.com/maynagashev/blogapi/internal/services"
)

const (
	defaultReadTimeout  = 10 * time.Second
	defaultWriteTimeout = 10 * time.Second
	defaultIdleTimeout  = 30 * time.Second
)

// main - точка входа. Вызывает run и обрабатывает ошибку.
func main() {
	if err := run(); err != nil {
		log.Printf("Ошибка выполнения сервера: %v", err)
		os.Exit(1)
	}
}

// run содержит основную логику запуска сервера и возвращает ошибку.
func run() error {
	log.Println("Запуск сервера блог-платформы...")

	cfg, err := parseFlags()
	if err != nil {
		return fmt.Errorf("ошибка разбора конфигурации: %w", err)
	}

	// Подключение к БД
	db, err := repository.NewPostgresDB(cfg.DatabaseDSN)
	if err != nil {
		return fmt.Errorf("ошибка инициализации БД: %w", err)
	}
	// Отложенное закрытие соединения с БД
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			log.Printf("Ошибка закрытия соединения с БД: %v", closeErr)
		}
	}()

	// Создание репозиториев
	userRepo := repository.NewPostgresUserRepository(db)
	postRepo := repository.NewPostgresPostRepository(db)

	// Создание сервисов
	authService := services.NewAuthService(userRepo)
	postService := services.NewPostService(postRepo)

	// Создание обработчиков
	userHandler := handlers.NewUserHandler(authService)
	postHandler := handlers.NewPostHandler(postService)

	// Настройка роутера. AuthService одновременно выступает проверяющим
	// учетные данные для Basic-аутентификации.
	r := setupRouter(userHandler, postHandler, authService)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      r,
		ReadTimeout:  defaultReadTimeout,
		WriteTimeout: defaultWriteTimeout,
		IdleTimeout:  defaultIdleTimeout,
	}

	if cfg.useTLS() {
		log.Printf("Запуск HTTPS-сервера на порту %s...", cfg.Port)
		err = server.ListenAndServeTLS(cfg.CertFile, cfg.KeyFile)
	} else {
		log.Printf("Запуск HTTP-сервера на порту %s...", cfg.Port)
		err = server.ListenAndServe()
	}
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("ошибка запуска сервера: %w", err)
	}
	return nil
}

// setupRouter настраивает и возвращает роутер chi.
func setupRouter(
	userHandler *handlers.UserHandler,
	postHandler *handlers.PostHandler,
	verifier appmiddleware.CredentialVerifier,
) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/ping", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("pong\n"))
	})

	// Публичные маршруты: регистрация и чтение ленты
	r.Post("/users", userHandler.Register)
	r.Get("/posts", postHandler.List)

	// Приватные маршруты (требуют Basic-аутентификации)
	r.Group(func(r chi.Router) {
		r.Use(appmiddleware.BasicAuth(verifier))

		r.Get("/users", userHandler.List)
		r.Get("/users/me", userHandler.Me)

		r.Post("/posts", postHandler.Create)
		r.Put("/posts/{postID}", postHandler.Update)
		r.Delete("/posts/{postID}", postHandler.Delete)
	})

	return r
}
