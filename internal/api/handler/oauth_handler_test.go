package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/taskhive/task-tracker/internal/core/domain"
	"github.com/taskhive/task-tracker/internal/core/ports"
	"github.com/taskhive/task-tracker/internal/core/service"
	"github.com/taskhive/task-tracker/internal/infrastructure/oauth"
)

type fakeProvider struct {
	name        string
	identity    ports.ExternalIdentity
	exchangeErr error
}

func (p *fakeProvider) Name() string { return p.name }

func (p *fakeProvider) AuthCodeURL(state string) string {
	return "https://provider.example/authorize?state=" + state
}

func (p *fakeProvider) Exchange(ctx context.Context, code string) (ports.ExternalIdentity, error) {
	if p.exchangeErr != nil {
		return ports.ExternalIdentity{}, p.exchangeErr
	}
	return p.identity, nil
}

type stubStateStore struct {
	issued string
	valid  string
}

func (s *stubStateStore) Issue(ctx context.Context, provider string) (string, error) {
	s.issued = "nonce-1"
	return s.issued, nil
}

func (s *stubStateStore) Consume(ctx context.Context, provider, state string) (bool, error) {
	return state != "" && state == s.valid, nil
}

type stubReconciler struct {
	user *domain.User
	err  error
}

func (r *stubReconciler) Reconcile(ctx context.Context, ext ports.ExternalIdentity) (*domain.User, error) {
	return r.user, r.err
}

func newOAuthHandlerForTest(provider *fakeProvider, states StateStore, rec ports.Reconciler) *OAuthHandler {
	tokens := service.NewTokenService(nil, "test-secret", time.Hour, zerolog.Nop())
	return NewOAuthHandler(oauth.NewRegistry(provider), states, rec, tokens, zerolog.Nop())
}

func TestOAuthHandler_Begin(t *testing.T) {
	e := echo.New()
	states := &stubStateStore{}
	handler := newOAuthHandlerForTest(&fakeProvider{name: "google"}, states, &stubReconciler{})

	req := httptest.NewRequest(http.MethodGet, "/auth/oauth/google", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("provider")
	c.SetParamValues("google")

	if err := handler.Begin(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", rec.Code)
	}
	loc := rec.Header().Get(echo.HeaderLocation)
	if loc != "https://provider.example/authorize?state=nonce-1" {
		t.Fatalf("unexpected redirect target: %s", loc)
	}
	if states.issued == "" {
		t.Fatalf("expected a state nonce to be issued")
	}
}

func TestOAuthHandler_Begin_UnknownProvider(t *testing.T) {
	e := echo.New()
	handler := newOAuthHandlerForTest(&fakeProvider{name: "google"}, &stubStateStore{}, &stubReconciler{})

	req := httptest.NewRequest(http.MethodGet, "/auth/oauth/github", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("provider")
	c.SetParamValues("github")

	err := handler.Begin(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestOAuthHandler_Callback(t *testing.T) {
	e := echo.New()
	provider := &fakeProvider{
		name: "google",
		identity: ports.ExternalIdentity{
			Provider:          "google",
			ProviderAccountID: "g-123",
			Email:             "a@x.com",
			Name:              "Alice",
		},
	}
	reconciled := &domain.User{ID: "u1", Email: "a@x.com", Role: domain.RoleUser, PasswordHash: "hash"}
	handler := newOAuthHandlerForTest(provider, &stubStateStore{valid: "nonce-1"}, &stubReconciler{user: reconciled})

	req := httptest.NewRequest(http.MethodGet, "/auth/oauth/google/callback?state=nonce-1&code=abc", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("provider")
	c.SetParamValues("google")

	if err := handler.Callback(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if tok, _ := resp["token"].(string); tok == "" {
		t.Fatalf("expected a session token")
	}
	user, _ := resp["user"].(map[string]any)
	if user == nil || user["id"] != "u1" {
		t.Fatalf("unexpected user payload: %+v", resp["user"])
	}
	if _, leaked := user["password_hash"]; leaked {
		t.Fatalf("password hash leaked in callback payload")
	}
}

func TestOAuthHandler_Callback_BadState(t *testing.T) {
	e := echo.New()
	handler := newOAuthHandlerForTest(&fakeProvider{name: "google"}, &stubStateStore{valid: "nonce-1"}, &stubReconciler{})

	req := httptest.NewRequest(http.MethodGet, "/auth/oauth/google/callback?state=forged&code=abc", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("provider")
	c.SetParamValues("google")

	err := handler.Callback(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestOAuthHandler_Callback_ReconcileDenial(t *testing.T) {
	e := echo.New()
	provider := &fakeProvider{name: "google", identity: ports.ExternalIdentity{Provider: "google"}}
	handler := newOAuthHandlerForTest(provider, &stubStateStore{valid: "nonce-1"}, &stubReconciler{err: errors.New("store down")})

	req := httptest.NewRequest(http.MethodGet, "/auth/oauth/google/callback?state=nonce-1&code=abc", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("provider")
	c.SetParamValues("google")

	err := handler.Callback(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
	// The denial body never names the cause.
	if he.Message != "sign-in failed" {
		t.Fatalf("expected generic denial message, got %v", he.Message)
	}
}
