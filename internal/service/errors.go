package service

import "errors"

// Ошибки сервисного слоя. Обработчики отображают их в HTTP-статусы,
// внутрь никакие ошибки базы не протекают наружу.
var (
	// ErrNotFound - запрошенная ссылка или пользователь не существует.
	ErrNotFound = errors.New("not found")

	// ErrForbidden - ссылка существует, но принадлежит другому пользователю.
	ErrForbidden = errors.New("forbidden")

	// ErrInvalidURL - оригинальный URL не абсолютный http/https.
	ErrInvalidURL = errors.New("invalid url: must be absolute http or https")

	// ErrInvalidCredentials - неверная пара email/пароль.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidToken - токен просрочен, подпись не сошлась или формат битый.
	ErrInvalidToken = errors.New("invalid token")

	// ErrEmailTaken - пользователь с таким email уже зарегистрирован.
	ErrEmailTaken = errors.New("email already registered")

	// ErrInvalidInput - пустые или некорректные обязательные поля.
	ErrInvalidInput = errors.New("invalid input")

	// ErrCodeExhausted - не удалось выдать уникальный код за отведенное
	// число попыток. Практически недостижимо, но цикл ограничен явно.
	ErrCodeExhausted = errors.New("failed to allocate a unique short code")
)
