package model

import "time"

type Link struct {
	ID          int64      `db:"id" json:"id"`
	UserID      int64      `db:"user_id" json:"user_id"`
	OriginalURL string     `db:"original_url" json:"original_url"`
	ShortCode   string     `db:"short_code" json:"short_code"`
	ShortURL    string     `db:"short_url" json:"short_url"`
	QrCodePath  string     `db:"qr_code_path" json:"qr_code_path"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
	ExpiresAt   *time.Time `db:"expires_at" json:"expires_at,omitempty"`
	Clicks      int64      `db:"clicks" json:"clicks"`
}

// LinkPatch описывает частичное обновление ссылки: пустые поля не трогаем.
// UserID проставляется сервисом из токена и не принимается от клиента.
type LinkPatch struct {
	OriginalURL string
	ExpiresAt   *time.Time
	UserID      int64
}
