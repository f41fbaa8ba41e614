package handler

import (
	"encoding/base64"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/alexscarano/QrLinkki/internal/model"
)

func toLinkResponse(l *model.Link) model.LinkResponse {
	return model.LinkResponse{
		ID:          l.ID,
		OriginalURL: l.OriginalURL,
		ShortCode:   l.ShortCode,
		ShortURL:    l.ShortURL,
		QrCodePath:  l.QrCodePath,
		CreatedAt:   l.CreatedAt,
		ExpiresAt:   l.ExpiresAt,
		Clicks:      l.Clicks,
	}
}

// CreateLink обрабатывает POST /links
func (h *Handler) CreateLink(c *gin.Context) {
	userID := c.GetInt64("user_id")
	var input model.CreateLinkRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, model.ErrorMessage{Error: "Invalid input"})
		return
	}

	link, err := h.links.CreateLink(c.Request.Context(), userID, input.OriginalURL, input.ExpiresAt)
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Location", "/links/"+link.ShortCode)
	c.JSON(http.StatusCreated, toLinkResponse(link))
}

// Redirect обрабатывает GET /r/:code. Публичный путь: без авторизации,
// переход засчитывается атомарно в хранилище.
func (h *Handler) Redirect(c *gin.Context) {
	code := c.Param("code")

	originalURL, err := h.links.ResolveForRedirect(c.Request.Context(), code)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Redirect(http.StatusFound, originalURL)
}

func (h *Handler) ListLinks(c *gin.Context) {
	userID := c.GetInt64("user_id")
	links, err := h.links.ListOwned(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := model.LinksListResponse{Links: make([]model.LinkResponse, 0, len(links))}
	for i := range links {
		resp.Links = append(resp.Links, toLinkResponse(&links[i]))
	}
	c.JSON(http.StatusOK, resp)
}

// GetLink обрабатывает GET /links/:code. Детальный просмотр не считается
// переходом, счетчик кликов не трогается.
func (h *Handler) GetLink(c *gin.Context) {
	userID := c.GetInt64("user_id")
	ref := model.ParseLinkRef(c.Param("code"))

	link, err := h.links.GetOwned(c.Request.Context(), userID, ref)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := toLinkResponse(link)
	// QR отдаем inline, если артефакт читается; иначе просто без него
	if png, err := h.links.LoadQR(c.Request.Context(), link.ShortCode); err == nil {
		resp.QrCodeBase64 = base64.StdEncoding.EncodeToString(png)
	} else {
		log.Printf("failed to load qr artifact %s: %v", link.ShortCode, err)
	}
	c.JSON(http.StatusOK, resp)
}

// UpdateLink обрабатывает PUT /links/:code, частичное обновление.
func (h *Handler) UpdateLink(c *gin.Context) {
	userID := c.GetInt64("user_id")
	ref := model.ParseLinkRef(c.Param("code"))

	var input model.UpdateLinkRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, model.ErrorMessage{Error: "Invalid input"})
		return
	}

	patch := model.LinkPatch{
		OriginalURL: input.OriginalURL,
		ExpiresAt:   input.ExpiresAt,
	}
	link, err := h.links.UpdateOwned(c.Request.Context(), userID, ref, patch)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toLinkResponse(link))
}

func (h *Handler) DeleteLink(c *gin.Context) {
	userID := c.GetInt64("user_id")
	ref := model.ParseLinkRef(c.Param("code"))

	if err := h.links.DeleteOwned(c.Request.Context(), userID, ref); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
