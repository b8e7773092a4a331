package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/github"
	"golang.org/x/oauth2/google"

	"github.com/engin-hq/engin/internal/common"
	"github.com/engin-hq/engin/internal/entity"
)

// Provider pairs an oauth2 config with the endpoint that yields the
// authenticated user's identity.
type Provider struct {
	Name        string
	Config      *oauth2.Config
	UserInfoURL string
}

// Registry holds the enabled OAuth providers.
type Registry struct {
	providers map[string]*Provider
}

// NewRegistry wires the providers that have credentials configured.
func NewRegistry(cfg common.AuthConfig, baseURL string) *Registry {
	r := &Registry{providers: make(map[string]*Provider)}

	if cfg.GoogleClientID != "" {
		r.providers["google"] = &Provider{
			Name: "google",
			Config: &oauth2.Config{
				ClientID:     cfg.GoogleClientID,
				ClientSecret: cfg.GoogleClientSecret,
				Endpoint:     google.Endpoint,
				RedirectURL:  baseURL + "/auth/callback",
				Scopes:       []string{"openid", "email", "profile"},
			},
			UserInfoURL: "https://www.googleapis.com/oauth2/v2/userinfo",
		}
	}
	if cfg.GitHubClientID != "" {
		r.providers["github"] = &Provider{
			Name: "github",
			Config: &oauth2.Config{
				ClientID:     cfg.GitHubClientID,
				ClientSecret: cfg.GitHubClientSecret,
				Endpoint:     github.Endpoint,
				RedirectURL:  baseURL + "/auth/callback",
				Scopes:       []string{"read:user", "user:email"},
			},
			UserInfoURL: "https://api.github.com/user",
		}
	}
	return r
}

// Lookup returns the named provider.
func (r *Registry) Lookup(name string) (*Provider, error) {
	p, ok := r.providers[name]
	if !ok {
		return nil, common.InvalidArgumentErrorf("unknown or disabled provider %q", name)
	}
	return p, nil
}

// FetchIdentity exchanges the authorization code and resolves the
// provider's userinfo into an identity record. Everything the rest of
// the system trusts about the user comes from this call, never from the
// client.
func (p *Provider) FetchIdentity(ctx context.Context, code string) (*entity.AuthIdentity, error) {
	tok, err := p.Config.Exchange(ctx, code)
	if err != nil {
		return nil, common.WrapError(err, "exchange authorization code")
	}

	client := p.Config.Client(ctx, tok)
	resp, err := client.Get(p.UserInfoURL)
	if err != nil {
		return nil, common.WrapError(err, "fetch userinfo")
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, common.InternalErrorf("userinfo endpoint returned %d", resp.StatusCode)
	}

	switch p.Name {
	case "google":
		var info struct {
			ID      string `json:"id"`
			Email   string `json:"email"`
			Name    string `json:"name"`
			Picture string `json:"picture"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
			return nil, common.WrapError(err, "decode userinfo")
		}
		return &entity.AuthIdentity{
			Provider:  p.Name,
			Subject:   info.ID,
			Email:     info.Email,
			Name:      info.Name,
			AvatarURL: info.Picture,
		}, nil
	case "github":
		var info struct {
			ID        int64  `json:"id"`
			Login     string `json:"login"`
			Email     string `json:"email"`
			Name      string `json:"name"`
			AvatarURL string `json:"avatar_url"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
			return nil, common.WrapError(err, "decode userinfo")
		}
		name := info.Name
		if name == "" {
			name = info.Login
		}
		return &entity.AuthIdentity{
			Provider:  p.Name,
			Subject:   strconv.FormatInt(info.ID, 10),
			Email:     info.Email,
			Name:      name,
			AvatarURL: info.AvatarURL,
		}, nil
	}
	return nil, fmt.Errorf("no userinfo decoder for provider %s", p.Name)
}

// RandomToken returns a hex token for sessions and OAuth state.
func RandomToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
