package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Shjra/Shjra-Maps/internal/utils"
)

func TestAvatarURL(t *testing.T) {
	t.Run("CustomAvatar", func(t *testing.T) {
		url := AvatarURL("1100354997738274858", "0001", "abc123")
		assert.Equal(t, "https://cdn.discordapp.com/avatars/1100354997738274858/abc123.png?size=256", url)
	})

	t.Run("DefaultAvatarFromDiscriminator", func(t *testing.T) {
		url := AvatarURL("42", "0007", "")
		assert.Equal(t, "https://cdn.discordapp.com/embed/avatars/2.png", url)
	})

	t.Run("NonNumericDiscriminatorFallsBackToZero", func(t *testing.T) {
		url := AvatarURL("42", "", "")
		assert.Equal(t, "https://cdn.discordapp.com/embed/avatars/0.png", url)
	})
}

func TestBannerURL(t *testing.T) {
	t.Run("StaticBanner", func(t *testing.T) {
		url := BannerURL("42", "deadbeef", "")
		assert.Equal(t, "https://cdn.discordapp.com/banners/42/deadbeef.png?size=600", url)
	})

	t.Run("AnimatedBanner", func(t *testing.T) {
		url := BannerURL("42", "a_deadbeef", "")
		assert.Equal(t, "https://cdn.discordapp.com/banners/42/a_deadbeef.gif?size=600", url)
	})

	t.Run("BannerColorFallback", func(t *testing.T) {
		assert.Equal(t, "#ff8800", BannerURL("42", "", "#ff8800"))
	})

	t.Run("Nothing", func(t *testing.T) {
		assert.Equal(t, "", BannerURL("42", "", ""))
	})
}

func TestFetchUserRetriesOnRateLimit(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/users/@me", r.URL.Path)
		require.Equal(t, "Bearer tok", r.Header.Get("Authorization"))

		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusTooManyRequests)
			w.Write([]byte(`{"retry_after": 0.01}`))
			return
		}
		w.Write([]byte(`{"id":"123","username":"shjra","discriminator":"0001","avatar":"","banner":"","banner_color":"#112233"}`))
	}))
	defer srv.Close()

	p := NewDiscordProvider("cid", "secret", "http://localhost/cb")
	p.APIBase = srv.URL
	p.RetryDelay = time.Millisecond

	user, err := p.FetchUser(context.Background(), "tok")
	require.NoError(t, err)
	assert.Equal(t, int32(3), calls.Load())
	assert.Equal(t, "123", user.ID)
	assert.Equal(t, "shjra", user.Username)
	assert.Equal(t, "https://cdn.discordapp.com/embed/avatars/1.png", user.Avatar)
	assert.Equal(t, "#112233", user.Banner)
}

func TestFetchUserDoesNotRetryHardFailure(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message": "401: Unauthorized"}`))
	}))
	defer srv.Close()

	p := NewDiscordProvider("cid", "secret", "http://localhost/cb")
	p.APIBase = srv.URL

	_, err := p.FetchUser(context.Background(), "tok")
	require.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())

	var statusErr *utils.StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusUnauthorized, statusErr.Code)
	assert.False(t, IsRateLimited(err))
}

func TestAuthURL(t *testing.T) {
	p := NewDiscordProvider("cid", "secret", "http://localhost:3000/auth/discord/callback")
	url := p.AuthURL("state123")
	assert.Contains(t, url, "https://discord.com/api/oauth2/authorize")
	assert.Contains(t, url, "client_id=cid")
	assert.Contains(t, url, "state=state123")
	assert.Contains(t, url, "identify+email")
}
