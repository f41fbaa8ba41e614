package service

import (
	"context"
	"sync"
	"time"

	"github.com/alexscarano/QrLinkki/internal/model"
	"github.com/alexscarano/QrLinkki/internal/storage"
)

// memLinkStore - потокобезопасное хранилище ссылок в памяти для тестов.
// Уникальность short_code обеспечивается под мьютексом, как уникальным
// индексом в настоящей базе.
type memLinkStore struct {
	mu     sync.Mutex
	seq    int64
	byCode map[string]*model.Link

	// failCreates: столько первых вставок отвергнуть как дубликаты
	failCreates int
	// failClicks: возвращать эту ошибку из GetLinkAndRegisterClick
	failClicks error
}

func newMemLinkStore() *memLinkStore {
	return &memLinkStore{byCode: make(map[string]*model.Link)}
}

func (m *memLinkStore) CreateLink(_ context.Context, link *model.Link) (*model.Link, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failCreates > 0 {
		m.failCreates--
		return nil, storage.ErrDuplicateCode
	}
	if _, ok := m.byCode[link.ShortCode]; ok {
		return nil, storage.ErrDuplicateCode
	}

	m.seq++
	stored := *link
	stored.ID = m.seq
	stored.CreatedAt = time.Now()
	m.byCode[stored.ShortCode] = &stored

	out := stored
	return &out, nil
}

func (m *memLinkStore) find(ref model.LinkRef) *model.Link {
	if id, ok := ref.ByID(); ok {
		for _, l := range m.byCode {
			if l.ID == id {
				return l
			}
		}
		return nil
	}
	code, _ := ref.Code()
	return m.byCode[code]
}

func (m *memLinkStore) GetLinkByRef(_ context.Context, ref model.LinkRef) (*model.Link, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	l := m.find(ref)
	if l == nil {
		return nil, storage.ErrNotFound
	}
	out := *l
	return &out, nil
}

func (m *memLinkStore) GetLinkAndRegisterClick(_ context.Context, ref model.LinkRef) (*model.Link, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failClicks != nil {
		return nil, m.failClicks
	}
	l := m.find(ref)
	if l == nil {
		return nil, storage.ErrNotFound
	}
	l.Clicks++
	out := *l
	return &out, nil
}

func (m *memLinkStore) UpdateLink(_ context.Context, ref model.LinkRef, patch model.LinkPatch) (*model.Link, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	l := m.find(ref)
	if l == nil {
		return nil, storage.ErrNotFound
	}
	if patch.OriginalURL != "" {
		l.OriginalURL = patch.OriginalURL
	}
	if patch.ExpiresAt != nil {
		l.ExpiresAt = patch.ExpiresAt
	}
	out := *l
	return &out, nil
}

func (m *memLinkStore) DeleteLink(_ context.Context, ref model.LinkRef) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	l := m.find(ref)
	if l == nil {
		return storage.ErrNotFound
	}
	delete(m.byCode, l.ShortCode)
	return nil
}

func (m *memLinkStore) GetLinksByUser(_ context.Context, userID int64) ([]model.Link, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var links []model.Link
	for _, l := range m.byCode {
		if l.UserID == userID {
			links = append(links, *l)
		}
	}
	return links, nil
}

func (m *memLinkStore) CodeExists(_ context.Context, code string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.byCode[code]
	return ok, nil
}

func (m *memLinkStore) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.byCode)
}

// memUserStore - пользователи в памяти для тестов.
type memUserStore struct {
	mu      sync.Mutex
	seq     int64
	byEmail map[string]*model.User

	// failReads: возвращать эту ошибку из GetUserByEmail
	failReads error
}

func newMemUserStore() *memUserStore {
	return &memUserStore{byEmail: make(map[string]*model.User)}
}

func (m *memUserStore) CreateUser(_ context.Context, user *model.User) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.byEmail[user.Email]; ok {
		return nil, storage.ErrDuplicateUser
	}
	m.seq++
	stored := *user
	stored.ID = m.seq
	stored.CreatedAt = time.Now()
	m.byEmail[stored.Email] = &stored

	out := stored
	return &out, nil
}

func (m *memUserStore) GetUserByEmail(_ context.Context, email string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failReads != nil {
		return nil, m.failReads
	}
	u, ok := m.byEmail[email]
	if !ok {
		return nil, storage.ErrNotFound
	}
	out := *u
	return &out, nil
}

func (m *memUserStore) GetUserByID(_ context.Context, id int64) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.byEmail {
		if u.ID == id {
			out := *u
			return &out, nil
		}
	}
	return nil, storage.ErrNotFound
}

func (m *memUserStore) UpdateUser(_ context.Context, id int64, email, passwordHash string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for oldEmail, u := range m.byEmail {
		if u.ID != id {
			continue
		}
		if email != "" && email != oldEmail {
			if _, taken := m.byEmail[email]; taken {
				return nil, storage.ErrDuplicateUser
			}
			delete(m.byEmail, oldEmail)
			u.Email = email
			m.byEmail[email] = u
		}
		if passwordHash != "" {
			u.PasswordHash = passwordHash
		}
		now := time.Now()
		u.UpdatedAt = &now
		out := *u
		return &out, nil
	}
	return nil, storage.ErrNotFound
}

func (m *memUserStore) DeleteUser(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for email, u := range m.byEmail {
		if u.ID == id {
			delete(m.byEmail, email)
			return nil
		}
	}
	return storage.ErrNotFound
}

// memQRStore - хранилище QR-артефактов в памяти.
type memQRStore struct {
	mu    sync.Mutex
	blobs map[string][]byte
}

func newMemQRStore() *memQRStore {
	return &memQRStore{blobs: make(map[string][]byte)}
}

func (m *memQRStore) Save(_ context.Context, code string, png []byte) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.blobs[code] = png
	return "mem/" + code + ".png", nil
}

func (m *memQRStore) Load(_ context.Context, code string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	png, ok := m.blobs[code]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return png, nil
}

func (m *memQRStore) Delete(_ context.Context, code string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.blobs, code)
	return nil
}

func (m *memQRStore) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.blobs)
}
