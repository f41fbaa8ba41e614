package service

import (
	"context"
	"fmt"

	qrcode "github.com/skip2/go-qrcode"
)

const qrImageSize = 256

// QRStore - хранилище готовых PNG с QR-кодами (локальная папка или S3).
type QRStore interface {
	Save(ctx context.Context, code string, png []byte) (string, error)
	Load(ctx context.Context, code string) ([]byte, error)
	Delete(ctx context.Context, code string) error
}

// QRService рендерит QR-код для короткой ссылки и кладет его в хранилище.
type QRService struct {
	store QRStore
}

func NewQRService(store QRStore) *QRService {
	return &QRService{store: store}
}

// Generate кодирует payload (полный короткий URL) в PNG и сохраняет его
// под именем кода. Возвращает локатор артефакта.
func (s *QRService) Generate(ctx context.Context, payload, code string) (string, error) {
	png, err := qrcode.Encode(payload, qrcode.Medium, qrImageSize)
	if err != nil {
		return "", fmt.Errorf("failed to encode qr code: %w", err)
	}

	path, err := s.store.Save(ctx, code, png)
	if err != nil {
		return "", fmt.Errorf("failed to store qr code: %w", err)
	}
	return path, nil
}

func (s *QRService) Load(ctx context.Context, code string) ([]byte, error) {
	return s.store.Load(ctx, code)
}

func (s *QRService) Delete(ctx context.Context, code string) error {
	return s.store.Delete(ctx, code)
}
