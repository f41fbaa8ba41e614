package service

import (
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenService выпускает и проверяет JWT. Секрет приходит из конфигурации
// при старте (его длина уже проверена), из окружения здесь ничего не читаем.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenService(secret []byte, ttl time.Duration) *TokenService {
	return &TokenService{secret: secret, ttl: ttl}
}

// Issue выпускает подписанный токен с user_id в качестве субъекта.
func (t *TokenService) Issue(userID int64, email string) (string, error) {
	claims := jwt.MapClaims{
		"user_id": strconv.FormatInt(userID, 10),
		"email":   email,
		"exp":     time.Now().Add(t.ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}

// Verify проверяет подпись и срок действия, возвращает id пользователя.
// Просроченный или битый токен - всегда ErrInvalidToken, без деталей.
func (t *TokenService) Verify(tokenStr string) (int64, error) {
	token, err := jwt.Parse(tokenStr,
		func(token *jwt.Token) (interface{}, error) { return t.secret, nil },
		jwt.WithValidMethods([]string{"HS256"}))
	if err != nil || !token.Valid {
		return 0, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, ErrInvalidToken
	}
	userIDStr, ok := claims["user_id"].(string)
	if !ok {
		return 0, ErrInvalidToken
	}
	userID, err := strconv.ParseInt(userIDStr, 10, 64)
	if err != nil || userID <= 0 {
		return 0, ErrInvalidToken
	}
	return userID, nil
}
