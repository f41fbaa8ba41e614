package service

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

// Параметры PBKDF2: 100 000 итераций SHA-256, 16 байт соли, 32 байта ключа.
const (
	pbkdf2Iterations = 100_000
	saltBytes        = 16
	keyBytes         = 32
)

// HashPassword хеширует пароль со свежей случайной солью.
// Формат хранения: base64(salt):base64(key).
func HashPassword(password string) (string, error) {
	salt := make([]byte, saltBytes)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}

	key := pbkdf2.Key([]byte(password), salt, pbkdf2Iterations, keyBytes, sha256.New)

	return base64.StdEncoding.EncodeToString(salt) + ":" +
		base64.StdEncoding.EncodeToString(key), nil
}

// VerifyPassword пересчитывает ключ по сохраненной соли и сравнивает за
// константное время. Любой битый storedHash - это отказ в проверке,
// а не паника: наружу уходит только false.
func VerifyPassword(password, storedHash string) bool {
	parts := strings.Split(storedHash, ":")
	if len(parts) != 2 {
		return false
	}

	salt, err := base64.StdEncoding.DecodeString(parts[0])
	if err != nil {
		return false
	}
	key, err := base64.StdEncoding.DecodeString(parts[1])
	if err != nil || len(key) == 0 {
		return false
	}

	candidate := pbkdf2.Key([]byte(password), salt, pbkdf2Iterations, len(key), sha256.New)
	return subtle.ConstantTimeCompare(key, candidate) == 1
}
