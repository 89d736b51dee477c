package handler

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/taskhub/task-api/internal/api/middleware"
	"github.com/taskhub/task-api/internal/core/domain"
)

// testEnvelope mirrors the response envelope for assertions.
type testEnvelope struct {
	Success bool           `json:"success"`
	Message string         `json:"message"`
	Error   string         `json:"error"`
	Data    map[string]any `json:"data"`
}

// newTestCtx builds an echo context the way the router would hand it to a
// handler: JSON content type, request validator installed, and claims bound
// when the route sits behind the auth middleware.
func newTestCtx(t *testing.T, method, target, body string, claims *domain.Claims) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()

	r := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		r.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(r, rec)
	if claims != nil {
		c.Set(middleware.ClaimsKey, *claims)
	}
	return c, rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) testEnvelope {
	t.Helper()
	var env testEnvelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return env
}

func assertSuccess(t *testing.T, rec *httptest.ResponseRecorder, status int, message string) testEnvelope {
	t.Helper()
	if rec.Code != status {
		t.Errorf("expected status %d, got %d", status, rec.Code)
	}
	env := decodeEnvelope(t, rec)
	if !env.Success {
		t.Errorf("expected success envelope, got %+v", env)
	}
	if env.Message != message {
		t.Errorf("expected message %q, got %q", message, env.Message)
	}
	return env
}

func assertHTTPError(t *testing.T, err error, code int, messagePart string) {
	t.Helper()
	var httpErr *echo.HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("expected *echo.HTTPError, got %v", err)
	}
	if httpErr.Code != code {
		t.Errorf("expected status %d, got %d", code, httpErr.Code)
	}
	msg, ok := httpErr.Message.(string)
	if !ok || !strings.Contains(msg, messagePart) {
		t.Errorf("expected message containing %q, got %v", messagePart, httpErr.Message)
	}
}
