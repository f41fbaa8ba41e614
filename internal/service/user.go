package service

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/alexscarano/QrLinkki/internal/model"
	"github.com/alexscarano/QrLinkki/internal/storage"
)

// UserStore - операции хранилища над пользователями.
type UserStore interface {
	CreateUser(ctx context.Context, user *model.User) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	GetUserByID(ctx context.Context, id int64) (*model.User, error)
	UpdateUser(ctx context.Context, id int64, email, passwordHash string) (*model.User, error)
	DeleteUser(ctx context.Context, id int64) error
}

type UserService struct {
	users  UserStore
	links  LinkStore
	qr     *QRService
	tokens *TokenService
}

func NewUserService(users UserStore, links LinkStore, qr *QRService, tokens *TokenService) *UserService {
	return &UserService{users: users, links: links, qr: qr, tokens: tokens}
}

// Register создает пользователя с захешированным паролем.
func (s *UserService) Register(ctx context.Context, email, password string) (*model.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, ErrInvalidInput
	}

	// Хешируем пароль
	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	user, err := s.users.CreateUser(ctx, &model.User{Email: email, PasswordHash: hash})
	if errors.Is(err, storage.ErrDuplicateUser) {
		return nil, ErrEmailTaken
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

// Login проверяет пару email/пароль и выпускает токен. Несуществующий email
// и неверный пароль наружу неразличимы.
func (s *UserService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.users.GetUserByEmail(ctx, email)
	if errors.Is(err, storage.ErrNotFound) {
		return "", ErrInvalidCredentials
	}
	if err != nil {
		return "", err
	}
	if !VerifyPassword(password, user.PasswordHash) {
		return "", ErrInvalidCredentials
	}
	return s.tokens.Issue(user.ID, user.Email)
}

func (s *UserService) GetProfile(ctx context.Context, userID int64) (*model.User, error) {
	user, err := s.users.GetUserByID(ctx, userID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrNotFound
	}
	return user, err
}

// UpdateProfile меняет email и/или пароль; пустые поля не трогаем.
func (s *UserService) UpdateProfile(ctx context.Context, userID int64, email, password string) (*model.User, error) {
	var hash string
	if password != "" {
		var err error
		hash, err = HashPassword(password)
		if err != nil {
			return nil, err
		}
	}

	user, err := s.users.UpdateUser(ctx, userID, strings.TrimSpace(email), hash)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrNotFound
	}
	if errors.Is(err, storage.ErrDuplicateUser) {
		return nil, ErrEmailTaken
	}
	return user, err
}

// DeleteAccount удаляет пользователя. Ссылки уходят каскадом в базе,
// QR-артефакты подчищаем в лучшем случае уже после удаления.
func (s *UserService) DeleteAccount(ctx context.Context, userID int64) error {
	links, err := s.links.GetLinksByUser(ctx, userID)
	if err != nil {
		return err
	}

	if err := s.users.DeleteUser(ctx, userID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}

	for _, l := range links {
		if err := s.qr.Delete(ctx, l.ShortCode); err != nil {
			log.Printf("failed to delete qr artifact %s: %v", l.ShortCode, err)
		}
	}
	return nil
}
