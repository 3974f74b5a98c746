package handler

type generateIntroRequest struct {
	CharacterName string `json:"characterName"`
}

type generateStoryRequest struct {
	FullStory  string `json:"fullStory"`
	LastChoice string `json:"lastChoice"`
}

type generateEndingRequest struct {
	FullStory string `json:"fullStory"`
}

type generateChoicesRequest struct {
	LastStory string `json:"lastStory"`
}

type generateTitleRequest struct {
	Story string `json:"story"`
}

// Наличие полей проверяет BoardService, здесь только верхние границы длины.
type submitPostRequest struct {
	Title     string `json:"title" binding:"max=200"`
	Content   string `json:"content" binding:"max=50000"`
	Author    string `json:"author" binding:"max=50"`
	Password  string `json:"password" binding:"max=100"`
	Timestamp string `json:"timestamp" binding:"max=64"`
}

type deletePostRequest struct {
	Password string `json:"password"`
}
