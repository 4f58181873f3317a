package models

import "time"

type Article struct {
	ID        int       `json:"id"`
	Title     string    `json:"title"`
	Category  int       `json:"category"`
	AuthorID  int       `json:"author_id"`
	Cover     string    `json:"cover"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// ArticleForm — провалидированные поля формы публикации/редактирования.
// Cover — уже переименованное имя файла обложки, не исходное.
type ArticleForm struct {
	Title    string `json:"title"`
	Category int    `json:"category"`
	Content  string `json:"content"`
	Cover    string `json:"cover"`
}
