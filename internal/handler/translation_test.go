package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/iliyamo/chat-backend/internal/service"
)

func TestTranslateRequiresAllFields(t *testing.T) {
	h := NewTranslationHandler(service.NewTranslationClient(""))
	rec := postJSON(t, h.Translate, "/api/translate", `{"text":"  ","source_lang":"en","target_lang":"ru"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}

	rec = postJSON(t, h.Translate, "/api/translate", `{"text":"hello","source_lang":"","target_lang":"ru"}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 without source_lang, got %d", rec.Code)
	}
}

func TestTranslateProxiesUpstream(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"translatedText": "hola"})
	}))
	defer srv.Close()

	h := NewTranslationHandler(service.NewTranslationClient(srv.URL))
	rec := postJSON(t, h.Translate, "/api/translate", `{"text":"hello","source_lang":"en","target_lang":"es"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var m map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &m); err != nil {
		t.Fatalf("response not JSON: %v", err)
	}
	if m["translated_text"] != "hola" {
		t.Errorf("wrong translation: %v", m["translated_text"])
	}
}

func TestTranslateUpstreamDownIs502(t *testing.T) {
	h := NewTranslationHandler(service.NewTranslationClient("http://127.0.0.1:1"))
	rec := postJSON(t, h.Translate, "/api/translate", `{"text":"hello","source_lang":"en","target_lang":"es"}`)
	if rec.Code != http.StatusBadGateway {
		t.Errorf("expected 502 when upstream is down, got %d", rec.Code)
	}
	if got := errorField(t, rec); got != "translation service unavailable" {
		t.Errorf("wrong error: %q", got)
	}
}
