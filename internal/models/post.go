package models

import (
	"strings"
	"time"
)

// BlogPost представляет запись блога.
// Автор хранится как снимок имени на момент создания записи,
// а не как ссылка на пользователя: переименование пользователя
// не меняет автора уже опубликованных записей.
type BlogPost struct {
	ID              string    `db:"id" json:"id"`
	AuthorFirstName string    `db:"author_first_name" json:"-"`
	AuthorLastName  string    `db:"author_last_name" json:"-"`
	Title           string    `db:"title" json:"title"`
	Content         string    `db:"content" json:"content"`
	Created         time.Time `db:"created" json:"created"`
}

// AuthorName возвращает отображаемое имя автора ("Имя Фамилия").
// Если одна из частей пустая, лишние пробелы обрезаются.
func (p *BlogPost) AuthorName() string {
	return strings.TrimSpace(p.AuthorFirstName + " " + p.AuthorLastName)
}

// PublicPost — публичное представление записи для API:
// автор отдается одной строкой, а не парой имя/фамилия.
type PublicPost struct {
	ID      string    `json:"id"`
	Author  string    `json:"author"`
	Content string    `json:"content"`
	Title   string    `json:"title"`
	Created time.Time `json:"created"`
}

// APIRepr возвращает публичное представление записи.
func (p *BlogPost) APIRepr() PublicPost {
	return PublicPost{
		ID:      p.ID,
		Author:  p.AuthorName(),
		Content: p.Content,
		Title:   p.Title,
		Created: p.Created,
	}
}

// CreatePostRequest представляет тело запроса на создание записи.
type CreatePostRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// UpdatePostRequest представляет тело запроса на частичное обновление записи.
// Nil-поле означает "оставить без изменений".
type UpdatePostRequest struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
}
