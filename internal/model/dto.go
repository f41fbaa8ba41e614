package model

import "time"

// ErrorMessage - единый формат сообщений об ошибках API
type ErrorMessage struct {
	Error string `json:"error" example:"Invalid credentials"`
}

// RegisterRequest содержит данные для регистрации нового пользователя
type RegisterRequest struct {
	Email    string `json:"email" example:"user1@example.com"`
	Password string `json:"password" example:"password123"`
}

// LoginRequest содержит данные для аутентификации пользователя
type LoginRequest struct {
	Email    string `json:"email" example:"user1@example.com"`
	Password string `json:"password" example:"password123"`
}

// TokenResponse представляет ответ с токеном доступа
type TokenResponse struct {
	Token string `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
}

type ProfileResponse struct {
	ID        int64     `json:"id" example:"42"`
	Email     string    `json:"email" example:"user1@example.com"`
	CreatedAt time.Time `json:"created_at"`
}

// UpdateProfileRequest - частичное обновление профиля, пустые поля не меняются
type UpdateProfileRequest struct {
	Email    string `json:"email,omitempty"`
	Password string `json:"password,omitempty"`
}

type CreateLinkRequest struct {
	OriginalURL string     `json:"original_url" example:"https://example.com/page"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`
}

type UpdateLinkRequest struct {
	OriginalURL string     `json:"original_url,omitempty"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`
}

// LinkResponse - ссылка в ответе API; QR-код отдаем inline в base64,
// если артефакт доступен в хранилище
type LinkResponse struct {
	ID           int64      `json:"id"`
	OriginalURL  string     `json:"original_url"`
	ShortCode    string     `json:"short_code"`
	ShortURL     string     `json:"short_url"`
	QrCodePath   string     `json:"qr_code_path,omitempty"`
	QrCodeBase64 string     `json:"qr_code_base64,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	ExpiresAt    *time.Time `json:"expires_at,omitempty"`
	Clicks       int64      `json:"clicks"`
}

type LinksListResponse struct {
	Links []LinkResponse `json:"links"`
}
