package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/taskhive/task-tracker/internal/api/metrics"
	"github.com/taskhive/task-tracker/internal/core/domain"
	"github.com/taskhive/task-tracker/internal/core/ports"
	"github.com/taskhive/task-tracker/internal/core/service"
	"github.com/taskhive/task-tracker/internal/infrastructure/oauth"
)

// StateStore issues and consumes single-use OAuth state nonces.
type StateStore interface {
	Issue(ctx context.Context, provider string) (string, error)
	Consume(ctx context.Context, provider, state string) (bool, error)
}

// OAuthHandler drives the redirect/callback flow for external providers and
// hands verified identity claims to the reconciler.
type OAuthHandler struct {
	providers  *oauth.Registry
	states     StateStore
	reconciler ports.Reconciler
	tokens     *service.TokenService
	log        zerolog.Logger
}

func NewOAuthHandler(
	providers *oauth.Registry,
	states StateStore,
	reconciler ports.Reconciler,
	tokens *service.TokenService,
	log zerolog.Logger,
) *OAuthHandler {
	return &OAuthHandler{
		providers:  providers,
		states:     states,
		reconciler: reconciler,
		tokens:     tokens,
		log:        log,
	}
}

// Begin handles GET /auth/oauth/:provider. It issues a state nonce and
// redirects the browser to the provider's authorization page.
//
// @Summary      Start an OAuth sign-in
// @Tags         auth
// @Param        provider  path  string  true  "Provider name"
// @Success      302
// @Failure      400  {object}  map[string]string
// @Router       /auth/oauth/{provider} [get]
func (h *OAuthHandler) Begin(c echo.Context) error {
	provider, err := h.providers.Get(c.Param("provider"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "unknown provider")
	}

	state, err := h.states.Issue(c.Request().Context(), provider.Name())
	if err != nil {
		return err
	}

	return c.Redirect(http.StatusFound, provider.AuthCodeURL(state))
}

// Callback handles GET /auth/oauth/:provider/callback. It validates the
// state nonce, exchanges the code, reconciles the external identity, and
// returns the minted session token. Every reconciliation failure denies the
// sign-in.
//
// @Summary      Complete an OAuth sign-in
// @Tags         auth
// @Param        provider  path   string  true  "Provider name"
// @Param        state     query  string  true  "State nonce"
// @Param        code      query  string  true  "Authorization code"
// @Success      200  {object}  authResponse
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Router       /auth/oauth/{provider}/callback [get]
func (h *OAuthHandler) Callback(c echo.Context) error {
	ctx := c.Request().Context()

	provider, err := h.providers.Get(c.Param("provider"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "unknown provider")
	}

	ok, err := h.states.Consume(ctx, provider.Name(), c.QueryParam("state"))
	if err != nil {
		return err
	}
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired state")
	}

	code := c.QueryParam("code")
	if code == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "missing authorization code")
	}

	ext, err := provider.Exchange(ctx, code)
	if err != nil {
		h.log.Warn().Err(err).Str("provider", provider.Name()).Msg("code exchange failed")
		metrics.SignInsTotal.WithLabelValues(provider.Name(), "error").Inc()
		return echo.NewHTTPError(http.StatusUnauthorized, "sign-in failed")
	}

	user, err := h.reconciler.Reconcile(ctx, ext)
	if err != nil {
		h.log.Warn().Err(err).Str("provider", provider.Name()).Msg("reconciliation denied sign-in")
		metrics.SignInsTotal.WithLabelValues(provider.Name(), "denied").Inc()
		return echo.NewHTTPError(http.StatusUnauthorized, "sign-in failed")
	}

	token, err := h.tokens.Mint(user)
	if err != nil {
		return err
	}

	metrics.SignInsTotal.WithLabelValues(provider.Name(), "ok").Inc()
	return c.JSON(http.StatusOK, authResponse{Token: token, User: stripSensitive(user)})
}

func stripSensitive(u *domain.User) *domain.User {
	clone := *u
	clone.PasswordHash = ""
	return &clone
}
