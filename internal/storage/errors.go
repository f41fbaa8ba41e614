package storage

import "errors"

// Типизированные ошибки хранилищ. Конкретные реализации переводят свои
// низкоуровневые ошибки в эти, сервисный слой различает их через errors.Is.
var (
	ErrNotFound      = errors.New("not found")
	ErrDuplicateCode = errors.New("short code already exists")
	ErrDuplicateUser = errors.New("user already exists")
	ErrUserMissing   = errors.New("referenced user does not exist")
)
