package models

import "time"

// User представляет пользователя блог-платформы.
// Тэги `db` используются для маппинга с полями БД с помощью sqlx.
type User struct {
	ID           int64     `db:"id" json:"id"`
	Username     string    `db:"username" json:"username"`
	PasswordHash string    `db:"password_hash" json:"-"` // Хеш пароля никогда не отдаем клиенту
	FirstName    string    `db:"first_name" json:"firstName"`
	LastName     string    `db:"last_name" json:"lastName"`
	CreatedAt    time.Time `db:"created_at" json:"-"`
}

// PublicUser — публичное представление пользователя для API (без хеша пароля).
type PublicUser struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// APIRepr возвращает публичное представление пользователя.
func (u *User) APIRepr() PublicUser {
	return PublicUser{
		ID:        u.ID,
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
	}
}

// RegisterRequest представляет тело запроса на регистрацию.
// firstName/lastName — необязательные отображаемые строки.
type RegisterRequest struct {
	Username  string `json:"username"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// MeResponse представляет тело ответа GET /users/me:
// представление пользователя завернуто в объект "user".
type MeResponse struct {
	User PublicUser `json:"user"`
}
