package google

import (
	"context"
	"errors"
	"fmt"

	"github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"

	"github.com/taskhive/task-tracker/internal/core/ports"
)

const providerName = "google"

const issuerURL = "https://accounts.google.com"

// Provider implements Google sign-in through the OIDC discovery endpoint.
// The ID token is verified against Google's published keys before any claim
// is trusted.
type Provider struct {
	oauthConfig *oauth2.Config
	verifier    *oidc.IDTokenVerifier
}

type Config struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
}

func New(ctx context.Context, cfg Config) (*Provider, error) {
	if cfg.ClientID == "" || cfg.ClientSecret == "" || cfg.RedirectURL == "" {
		return nil, errors.New("google oauth config missing required fields")
	}

	oidcProvider, err := oidc.NewProvider(ctx, issuerURL)
	if err != nil {
		return nil, fmt.Errorf("init google oidc provider: %w", err)
	}

	return &Provider{
		verifier: oidcProvider.Verifier(&oidc.Config{ClientID: cfg.ClientID}),
		oauthConfig: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Endpoint:     oidcProvider.Endpoint(),
			Scopes:       []string{oidc.ScopeOpenID, "profile", "email"},
		},
	}, nil
}

// Name returns the provider identifier used by the registry.
func (p *Provider) Name() string {
	return providerName
}

// AuthCodeURL builds the Google authorization URL for the given state nonce.
func (p *Provider) AuthCodeURL(state string) string {
	return p.oauthConfig.AuthCodeURL(state, oauth2.AccessTypeOnline)
}

// Exchange trades the authorization code for tokens, verifies the ID token,
// and returns the normalized identity claims.
func (p *Provider) Exchange(ctx context.Context, code string) (ports.ExternalIdentity, error) {
	token, err := p.oauthConfig.Exchange(ctx, code)
	if err != nil {
		return ports.ExternalIdentity{}, fmt.Errorf("google token exchange: %w", err)
	}

	rawIDToken, ok := token.Extra("id_token").(string)
	if !ok || rawIDToken == "" {
		return ports.ExternalIdentity{}, errors.New("google token response missing id_token")
	}

	idToken, err := p.verifier.Verify(ctx, rawIDToken)
	if err != nil {
		return ports.ExternalIdentity{}, fmt.Errorf("verify google id token: %w", err)
	}

	var claims struct {
		Email         string `json:"email"`
		EmailVerified bool   `json:"email_verified"`
		Name          string `json:"name"`
		Picture       string `json:"picture"`
	}
	if err := idToken.Claims(&claims); err != nil {
		return ports.ExternalIdentity{}, fmt.Errorf("parse google claims: %w", err)
	}
	if claims.Email == "" || !claims.EmailVerified {
		return ports.ExternalIdentity{}, errors.New("google identity has no verified email")
	}

	var expiresAt int64
	if !token.Expiry.IsZero() {
		expiresAt = token.Expiry.Unix()
	}

	return ports.ExternalIdentity{
		Provider:          providerName,
		ProviderAccountID: idToken.Subject,
		Email:             claims.Email,
		Name:              claims.Name,
		Image:             claims.Picture,
		AccessToken:       token.AccessToken,
		RefreshToken:      token.RefreshToken,
		IDToken:           rawIDToken,
		ExpiresAt:         expiresAt,
	}, nil
}
