package models

// ErrorResponse - стандартная структура для ответа об ошибке в формате JSON.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ResultResponse - ответ эндпоинтов генерации истории.
type ResultResponse struct {
	Result string `json:"result"`
}

// TitleResponse - ответ эндпоинта генерации заголовка.
type TitleResponse struct {
	Title string `json:"title"`
}

// SubmitPostResponse - ответ на создание поста.
type SubmitPostResponse struct {
	Success bool  `json:"success"`
	ID      int64 `json:"id"`
}

// DeletePostResponse - ответ на удаление поста (и на его ошибки).
type DeletePostResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// HealthResponse - ответ /health.
type HealthResponse struct {
	Status string `json:"status"`
}
