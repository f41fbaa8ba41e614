package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/alexscarano/QrLinkki/internal/model"
	"github.com/alexscarano/QrLinkki/internal/storage"
)

const (
	shortCodeLength = 6
	// Предел повторов при коллизии кода. Уникальный индекс в базе -
	// авторитетная защита, повтор с новым кодом закрывает окно гонки
	// между проверкой и вставкой.
	maxCodeAttempts = 5
)

// LinkStore - операции хранилища над ссылками.
type LinkStore interface {
	CreateLink(ctx context.Context, link *model.Link) (*model.Link, error)
	GetLinkByRef(ctx context.Context, ref model.LinkRef) (*model.Link, error)
	GetLinkAndRegisterClick(ctx context.Context, ref model.LinkRef) (*model.Link, error)
	UpdateLink(ctx context.Context, ref model.LinkRef, patch model.LinkPatch) (*model.Link, error)
	DeleteLink(ctx context.Context, ref model.LinkRef) error
	GetLinksByUser(ctx context.Context, userID int64) ([]model.Link, error)
	CodeExists(ctx context.Context, code string) (bool, error)
}

type LinkService struct {
	store   LinkStore
	qr      *QRService
	baseURL string
}

func NewLinkService(store LinkStore, qr *QRService, baseURL string) *LinkService {
	return &LinkService{store: store, qr: qr, baseURL: baseURL}
}

// IsValidURL принимает только абсолютные http/https URL с хостом.
func IsValidURL(raw string) bool {
	u, err := url.ParseRequestURI(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// generateShortCode берет первые символы случайного UUID - шестнадцатеричные
// цифры, безопасные в пути URL.
func generateShortCode(length int) string {
	return uuid.NewString()[:length]
}

// CreateLink выдает уникальный код, рендерит QR и сохраняет ссылку.
// Цикл: сгенерировать код -> проверить в базе -> вставить; нарушение
// уникальности при вставке не видно клиенту - берем новый код и повторяем.
func (s *LinkService) CreateLink(ctx context.Context, callerID int64, originalURL string, expiresAt *time.Time) (*model.Link, error) {
	if !IsValidURL(originalURL) {
		return nil, ErrInvalidURL
	}

	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		code := generateShortCode(shortCodeLength)

		// Предварительная проверка - оптимизация, не гарантия
		exists, err := s.store.CodeExists(ctx, code)
		if err != nil {
			return nil, fmt.Errorf("code pre-check failed: %w", err)
		}
		if exists {
			continue
		}

		shortURL := s.baseURL + "/r/" + code

		qrPath, err := s.qr.Generate(ctx, shortURL, code)
		if err != nil {
			return nil, fmt.Errorf("qr generation failed: %w", err)
		}

		link := &model.Link{
			UserID:      callerID,
			OriginalURL: originalURL,
			ShortCode:   code,
			ShortURL:    shortURL,
			QrCodePath:  qrPath,
			ExpiresAt:   expiresAt,
		}

		created, err := s.store.CreateLink(ctx, link)
		if errors.Is(err, storage.ErrDuplicateCode) {
			// Конкурент успел вставить этот код - артефакт больше не нужен
			if delErr := s.qr.Delete(ctx, code); delErr != nil {
				log.Printf("failed to clean up qr artifact %s: %v", code, delErr)
			}
			continue
		}
		if errors.Is(err, storage.ErrUserMissing) {
			return nil, ErrNotFound
		}
		if err != nil {
			return nil, fmt.Errorf("failed to create link: %w", err)
		}
		return created, nil
	}

	return nil, ErrCodeExhausted
}

// ResolveForRedirect - публичный путь редиректа: ищет ссылку по коду и
// атомарно засчитывает переход.
func (s *LinkService) ResolveForRedirect(ctx context.Context, code string) (string, error) {
	link, err := s.store.GetLinkAndRegisterClick(ctx, model.RefByCode(code))
	if errors.Is(err, storage.ErrNotFound) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return link.OriginalURL, nil
}

// getOwned загружает ссылку без инкремента и проверяет владение.
// Чужая ссылка - всегда ErrForbidden, несуществующая - ErrNotFound.
func (s *LinkService) getOwned(ctx context.Context, callerID int64, ref model.LinkRef) (*model.Link, error) {
	link, err := s.store.GetLinkByRef(ctx, ref)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if link.UserID != callerID {
		return nil, ErrForbidden
	}
	return link, nil
}

func (s *LinkService) GetOwned(ctx context.Context, callerID int64, ref model.LinkRef) (*model.Link, error) {
	return s.getOwned(ctx, callerID, ref)
}

// UpdateOwned применяет частичное обновление. Владелец через этот путь не
// переназначается: UserID в патче всегда перезаписывается на вызывающего.
func (s *LinkService) UpdateOwned(ctx context.Context, callerID int64, ref model.LinkRef, patch model.LinkPatch) (*model.Link, error) {
	if patch.OriginalURL != "" && !IsValidURL(patch.OriginalURL) {
		return nil, ErrInvalidURL
	}

	if _, err := s.getOwned(ctx, callerID, ref); err != nil {
		return nil, err
	}

	patch.UserID = callerID

	updated, err := s.store.UpdateLink(ctx, ref, patch)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrNotFound
	}
	return updated, err
}

func (s *LinkService) DeleteOwned(ctx context.Context, callerID int64, ref model.LinkRef) error {
	link, err := s.getOwned(ctx, callerID, ref)
	if err != nil {
		return err
	}

	if err := s.store.DeleteLink(ctx, ref); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}

	// Артефакт QR чистим в лучшем случае: осиротевший PNG - мусор, не ошибка
	if err := s.qr.Delete(ctx, link.ShortCode); err != nil {
		log.Printf("failed to delete qr artifact %s: %v", link.ShortCode, err)
	}
	return nil
}

func (s *LinkService) ListOwned(ctx context.Context, callerID int64) ([]model.Link, error) {
	return s.store.GetLinksByUser(ctx, callerID)
}

// LoadQR отдает PNG с QR-кодом для детального просмотра.
func (s *LinkService) LoadQR(ctx context.Context, code string) ([]byte, error) {
	return s.qr.Load(ctx, code)
}
