package local

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/alexscarano/QrLinkki/internal/storage"
)

// LocalStorage хранит QR-коды в локальной папке.
type LocalStorage struct {
	dir string
}

func NewLocalStorage(dir string) (*LocalStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create qr directory: %w", err)
	}
	return &LocalStorage{dir: dir}, nil
}

func (s *LocalStorage) path(code string) string {
	return filepath.Join(s.dir, code+".png")
}

func (s *LocalStorage) Save(_ context.Context, code string, png []byte) (string, error) {
	p := s.path(code)
	if err := os.WriteFile(p, png, 0o644); err != nil {
		return "", fmt.Errorf("failed to save qr image: %w", err)
	}
	return p, nil
}

func (s *LocalStorage) Load(_ context.Context, code string) ([]byte, error) {
	png, err := os.ReadFile(s.path(code))
	if os.IsNotExist(err) {
		return nil, storage.ErrNotFound
	}
	return png, err
}

func (s *LocalStorage) Delete(_ context.Context, code string) error {
	err := os.Remove(s.path(code))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
