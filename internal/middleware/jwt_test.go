package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/chat-backend/internal/utils"
)

func callProtected(t *testing.T, secret, authHeader string) (*httptest.ResponseRecorder, echo.Context) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := JWTAuth(secret)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	if err := h(c); err != nil {
		t.Fatalf("handler: %v", err)
	}
	return rec, c
}

func TestJWTAuthAcceptsValidToken(t *testing.T) {
	tok, err := utils.NewAccessToken("s3cret", 7, "alice", 5)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	rec, c := callProtected(t, "s3cret", "Bearer "+tok.Token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if uid, ok := c.Get("user_id").(float64); !ok || uid != 7 {
		t.Errorf("expected user_id claim 7, got %v", c.Get("user_id"))
	}
	if c.Get("username") != "alice" {
		t.Errorf("expected username claim, got %v", c.Get("username"))
	}
}

func TestJWTAuthRejectsMissingHeader(t *testing.T) {
	rec, _ := callProtected(t, "s3cret", "")
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 without header, got %d", rec.Code)
	}
}

func TestJWTAuthRejectsNonBearer(t *testing.T) {
	rec, _ := callProtected(t, "s3cret", "Basic dXNlcjpwYXNz")
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 for non-bearer scheme, got %d", rec.Code)
	}
}

func TestJWTAuthRejectsWrongSecret(t *testing.T) {
	tok, err := utils.NewAccessToken("other-secret", 7, "alice", 5)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	rec, _ := callProtected(t, "s3cret", "Bearer "+tok.Token)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 for wrong secret, got %d", rec.Code)
	}
}

func TestJWTAuthRejectsGarbageToken(t *testing.T) {
	rec, _ := callProtected(t, "s3cret", "Bearer not.a.jwt")
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 for garbage token, got %d", rec.Code)
	}
}
