package models

// Post - запись на доске. Пароль хранится открытым текстом.
type Post struct {
	ID        int64  `json:"id" db:"id"`
	Title     string `json:"title" db:"title"`
	Content   string `json:"content" db:"content"`
	Author    string `json:"author" db:"author"`
	Password  string `json:"password" db:"password"`
	Timestamp string `json:"timestamp" db:"timestamp"`
}

// PostSummary - запись в списке доски, без содержимого и пароля.
type PostSummary struct {
	ID        int64  `json:"id" db:"id"`
	Title     string `json:"title" db:"title"`
	Author    string `json:"author" db:"author"`
	Timestamp string `json:"timestamp" db:"timestamp"`
}

// Summary возвращает краткое представление поста.
func (p *Post) Summary() PostSummary {
	return PostSummary{ID: p.ID, Title: p.Title, Author: p.Author, Timestamp: p.Timestamp}
}
