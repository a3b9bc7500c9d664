// Package service holds thin clients for external collaborators of the API
// server.
package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// TranslationClient wraps a LibreTranslate-compatible HTTP API. It is a
// pass-through: the API server adds no caching or language detection of its
// own.
type TranslationClient struct {
	BaseURL string
	HTTP    *http.Client
}

// NewTranslationClient builds a client for the given base URL (e.g.
// http://localhost:5001). A zero-value URL yields a client whose calls fail;
// the handler reports that as the feature being unavailable.
func NewTranslationClient(baseURL string) *TranslationClient {
	return &TranslationClient{
		BaseURL: baseURL,
		HTTP:    &http.Client{Timeout: 10 * time.Second},
	}
}

type translateReq struct {
	Q      string `json:"q"`
	Source string `json:"source"`
	Target string `json:"target"`
}

type translateResp struct {
	TranslatedText string `json:"translatedText"`
}

// Translate sends text for translation and returns the translated string.
func (c *TranslationClient) Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error) {
	body, err := json.Marshal(translateReq{Q: text, Source: sourceLang, Target: targetLang})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/translate", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return "", fmt.Errorf("translation request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("translation API returned %d", resp.StatusCode)
	}

	var out translateResp
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode translation response: %w", err)
	}
	return out.TranslatedText, nil
}

// Available probes the API with a short timeout. Used once at startup to log
// whether translation features will work.
func (c *TranslationClient) Available(ctx context.Context) bool {
	if c.BaseURL == "" {
		return false
	}
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/languages", nil)
	if err != nil {
		return false
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}
