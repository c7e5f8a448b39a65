package repository

import (
	"fmt"
	"log"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // Драйвер PostgreSQL, импортируем для регистрации
)

const (
	maxOpenConns    = 10               // Максимальное количество открытых соединений
	maxIdleConns    = 10               // Максимальное количество простаивающих соединений
	connMaxLifetime = 30 * time.Minute // Максимальное время жизни соединения
)

// NewPostgresDB открывает подключение к PostgreSQL по строке подключения
// и настраивает пул соединений. sqlx.Connect сам выполняет ping,
// поэтому возвращенное соединение гарантированно живое.
func NewPostgresDB(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("ошибка подключения к БД: %w", err)
	}

	db.SetMaxOpenConns(maxOpenConns)
	db.SetMaxIdleConns(maxIdleConns)
	db.SetConnMaxLifetime(connMaxLifetime)

	log.Println("[Repo] Подключение к PostgreSQL установлено")
	return db, nil
}
