package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/chat-backend/internal/config"
)

// postJSON runs a handler against a synthetic request. Tests here cover the
// validation layer, which rejects before any repository call, so handlers can
// be constructed with nil dependencies.
func postJSON(t *testing.T, h echo.HandlerFunc, path, body string, params ...string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	var names, values []string
	for i := 0; i+1 < len(params); i += 2 {
		names = append(names, params[i])
		values = append(values, params[i+1])
	}
	if len(names) > 0 {
		c.SetParamNames(names...)
		c.SetParamValues(values...)
	}
	if err := h(c); err != nil {
		t.Fatalf("handler: %v", err)
	}
	return rec
}

func errorField(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var m map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &m); err != nil {
		t.Fatalf("response not JSON: %v", err)
	}
	s, _ := m["error"].(string)
	return s
}

func TestRegisterRejectsInvalidUsername(t *testing.T) {
	h := NewAuthHandler(config.Config{}, nil, nil)
	rec := postJSON(t, h.Register, "/api/register", `{"username":"ab","email":"a@b.com","password":"abcdefg1"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if got := errorField(t, rec); got != "invalid username format" {
		t.Errorf("wrong error: %q", got)
	}
}

func TestRegisterRejectsInvalidEmail(t *testing.T) {
	h := NewAuthHandler(config.Config{}, nil, nil)
	rec := postJSON(t, h.Register, "/api/register", `{"username":"alice","email":"not-an-email","password":"abcdefg1"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if got := errorField(t, rec); got != "invalid email format" {
		t.Errorf("wrong error: %q", got)
	}
}

func TestRegisterRejectsWeakPassword(t *testing.T) {
	h := NewAuthHandler(config.Config{}, nil, nil)
	rec := postJSON(t, h.Register, "/api/register", `{"username":"alice","email":"a@b.com","password":"short"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if got := errorField(t, rec); !strings.Contains(got, "at least 8 characters") {
		t.Errorf("wrong error: %q", got)
	}
}

func TestRegisterRejectsMalformedBody(t *testing.T) {
	h := NewAuthHandler(config.Config{}, nil, nil)
	rec := postJSON(t, h.Register, "/api/register", `{not json`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for malformed body, got %d", rec.Code)
	}
}

func TestLoginRequiresCredentials(t *testing.T) {
	h := NewAuthHandler(config.Config{}, nil, nil)
	rec := postJSON(t, h.Login, "/api/login", `{"username":"  ","password":""}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if got := errorField(t, rec); got != "username/password required" {
		t.Errorf("wrong error: %q", got)
	}
}
