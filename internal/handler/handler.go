package handler

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/alexscarano/QrLinkki/internal/model"
	"github.com/alexscarano/QrLinkki/internal/service"
)

type Handler struct {
	users  *service.UserService
	links  *service.LinkService
	tokens *service.TokenService
}

func NewHandler(users *service.UserService, links *service.LinkService, tokens *service.TokenService) *Handler {
	return &Handler{users: users, links: links, tokens: tokens}
}

// AuthMiddleware проверяет Bearer-токен и кладет id вызывающего в контекст.
// Дальше обработчики доверяют только этому id, а не полям запроса.
func (h *Handler) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if auth == "" || !strings.HasPrefix(auth, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, model.ErrorMessage{Error: "Missing token"})
			return
		}
		tokenStr := strings.TrimPrefix(auth, "Bearer ")
		userID, err := h.tokens.Verify(tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, model.ErrorMessage{Error: "Invalid token"})
			return
		}
		c.Set("user_id", userID)
		c.Next()
	}
}

// respondError переводит ошибки сервисного слоя в HTTP-статусы.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, model.ErrorMessage{Error: "Not found"})
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, model.ErrorMessage{Error: "Forbidden"})
	case errors.Is(err, service.ErrInvalidURL), errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, model.ErrorMessage{Error: err.Error()})
	case errors.Is(err, service.ErrEmailTaken):
		c.JSON(http.StatusConflict, model.ErrorMessage{Error: "Email already registered"})
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, model.ErrorMessage{Error: "Invalid credentials"})
	default:
		log.Printf("internal error: %v", err)
		c.JSON(http.StatusInternalServerError, model.ErrorMessage{Error: "Internal server error"})
	}
}

// Register обрабатывает POST /users
func (h *Handler) Register(c *gin.Context) {
	var input model.RegisterRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, model.ErrorMessage{Error: "Invalid input"})
		return
	}

	user, err := h.users.Register(c.Request.Context(), input.Email, input.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, model.ProfileResponse{
		ID:        user.ID,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	})
}

// Login обрабатывает POST /auth
func (h *Handler) Login(c *gin.Context) {
	var input model.LoginRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, model.ErrorMessage{Error: "Invalid input"})
		return
	}

	token, err := h.users.Login(c.Request.Context(), input.Email, input.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.TokenResponse{Token: token})
}

func (h *Handler) GetProfile(c *gin.Context) {
	userID := c.GetInt64("user_id")
	user, err := h.users.GetProfile(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.ProfileResponse{
		ID:        user.ID,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	})
}

func (h *Handler) UpdateProfile(c *gin.Context) {
	userID := c.GetInt64("user_id")
	var input model.UpdateProfileRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, model.ErrorMessage{Error: "Invalid input"})
		return
	}

	user, err := h.users.UpdateProfile(c.Request.Context(), userID, input.Email, input.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.ProfileResponse{
		ID:        user.ID,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	})
}

func (h *Handler) DeleteAccount(c *gin.Context) {
	userID := c.GetInt64("user_id")
	if err := h.users.DeleteAccount(c.Request.Context(), userID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
