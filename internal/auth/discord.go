// Package auth gère le login Discord : URL d'autorisation, échange du code
// et récupération du profil, avec relance sur rate limit.
package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"github.com/Shjra/Shjra-Maps/internal/models"
	"github.com/Shjra/Shjra-Maps/internal/utils"
	"github.com/Shjra/Shjra-Maps/pkg/retry"
)

const (
	discordAPIBase = "https://discord.com/api"
	discordCDN     = "https://cdn.discordapp.com"
)

type DiscordProvider struct {
	Config     *oauth2.Config
	client     *http.Client
	APIBase    string
	RetryDelay time.Duration
}

func NewDiscordProvider(clientID, clientSecret, redirectURI string) *DiscordProvider {
	return &DiscordProvider{
		Config: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURI,
			Scopes:       []string{"identify", "email"},
			Endpoint: oauth2.Endpoint{
				AuthURL:   discordAPIBase + "/oauth2/authorize",
				TokenURL:  discordAPIBase + "/oauth2/token",
				AuthStyle: oauth2.AuthStyleInParams,
			},
		},
		client:     &http.Client{Timeout: 10 * time.Second},
		APIBase:    discordAPIBase,
		RetryDelay: time.Second,
	}
}

func (p *DiscordProvider) retryConfig() retry.Config {
	return retry.Config{
		MaxAttempts: 3,
		Backoff:     retry.ExponentialBackoff(p.RetryDelay),
		ShouldRetry: utils.IsTransient,
	}
}

func (p *DiscordProvider) AuthURL(state string) string {
	return p.Config.AuthCodeURL(state)
}

// Exchange échange le code d'autorisation contre un access token,
// avec relance si Discord rate-limite
func (p *DiscordProvider) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	return retry.DoWithResult(ctx, p.retryConfig(), func() (*oauth2.Token, error) {
		token, err := p.Config.Exchange(ctx, code)
		if err != nil {
			return nil, normalizeOAuthError(err)
		}
		return token, nil
	})
}

// le profil renvoyé par /users/@me
type discordProfile struct {
	ID            string `json:"id"`
	Username      string `json:"username"`
	Discriminator string `json:"discriminator"`
	Avatar        string `json:"avatar"`
	Banner        string `json:"banner"`
	BannerColor   string `json:"banner_color"`
}

// FetchUser récupère le profil Discord et dérive les URLs avatar/bannière
func (p *DiscordProvider) FetchUser(ctx context.Context, accessToken string) (models.User, error) {
	profile, err := retry.DoWithResult(ctx, p.retryConfig(), func() (discordProfile, error) {
		return p.fetchProfile(ctx, accessToken)
	})
	if err != nil {
		return models.User{}, err
	}

	return models.User{
		ID:            profile.ID,
		Username:      profile.Username,
		Discriminator: profile.Discriminator,
		Avatar:        AvatarURL(profile.ID, profile.Discriminator, profile.Avatar),
		Banner:        BannerURL(profile.ID, profile.Banner, profile.BannerColor),
	}, nil
}

func (p *DiscordProvider) fetchProfile(ctx context.Context, accessToken string) (discordProfile, error) {
	var profile discordProfile

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.APIBase+"/users/@me", nil)
	if err != nil {
		return profile, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := p.client.Do(req)
	if err != nil {
		return profile, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return profile, &utils.StatusError{Code: resp.StatusCode, Body: string(body)}
	}

	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return profile, fmt.Errorf("décodage profil Discord: %w", err)
	}
	return profile, nil
}

// normalizeOAuthError convertit l'erreur oauth2 en StatusError pour que la
// classification transitoire voie le statut HTTP
func normalizeOAuthError(err error) error {
	var retrieveErr *oauth2.RetrieveError
	if errors.As(err, &retrieveErr) && retrieveErr.Response != nil {
		return &utils.StatusError{
			Code: retrieveErr.Response.StatusCode,
			Body: string(retrieveErr.Body),
		}
	}
	return err
}

// IsRateLimited signale le cas 429, qui a sa propre page d'explication
func IsRateLimited(err error) bool {
	var statusErr *utils.StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Code == http.StatusTooManyRequests ||
			strings.Contains(statusErr.Body, "You are being blocked")
	}
	return false
}

// AvatarURL retourne l'avatar custom, sinon l'avatar par défaut dérivé du
// discriminator (discriminator % 5)
func AvatarURL(userID, discriminator, avatarHash string) string {
	if avatarHash != "" {
		return fmt.Sprintf("%s/avatars/%s/%s.png?size=256", discordCDN, userID, avatarHash)
	}
	index, _ := strconv.Atoi(discriminator)
	return fmt.Sprintf("%s/embed/avatars/%d.png", discordCDN, index%5)
}

// BannerURL retourne l'image de bannière (gif si animée, préfixe a_),
// sinon la couleur hexadécimale, sinon une chaîne vide
func BannerURL(userID, bannerHash, bannerColor string) string {
	if bannerHash != "" {
		ext := "png"
		if strings.HasPrefix(bannerHash, "a_") {
			ext = "gif"
		}
		return fmt.Sprintf("%s/banners/%s/%s.%s?size=600", discordCDN, userID, bannerHash, ext)
	}
	return bannerColor
}
