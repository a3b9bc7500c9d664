package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/chat-backend/internal/service"
)

// TranslationHandler proxies translation requests to the external API.
type TranslationHandler struct {
	Client *service.TranslationClient
}

func NewTranslationHandler(c *service.TranslationClient) *TranslationHandler {
	return &TranslationHandler{Client: c}
}

type translateBody struct {
	Text       string `json:"text"`
	SourceLang string `json:"source_lang"`
	TargetLang string `json:"target_lang"`
}

// Translate forwards text to the translation API and returns the result.
// Upstream failures surface as 502 since the API server itself is healthy.
func (h *TranslationHandler) Translate(c echo.Context) error {
	var req translateBody
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Text = strings.TrimSpace(req.Text)
	if req.Text == "" || req.SourceLang == "" || req.TargetLang == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "text, source_lang and target_lang required"})
	}

	translated, err := h.Client.Translate(c.Request().Context(), req.Text, req.SourceLang, req.TargetLang)
	if err != nil {
		return c.JSON(http.StatusBadGateway, echo.Map{"error": "translation service unavailable"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"translated_text": translated,
		"source_lang":     req.SourceLang,
		"target_lang":     req.TargetLang,
	})
}
