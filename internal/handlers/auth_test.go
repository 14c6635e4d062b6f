package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Shjra/Shjra-Maps/internal/auth"
	"github.com/Shjra/Shjra-Maps/internal/models"
	"github.com/Shjra/Shjra-Maps/internal/utils"
)

const testSecret = "test-secret"

// fakeDiscord sert à la fois l'endpoint token et /users/@me
func fakeDiscord(t *testing.T, tokenStatus, profileStatus int, profile map[string]interface{}) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/oauth2/token", func(w http.ResponseWriter, r *http.Request) {
		if tokenStatus != http.StatusOK {
			w.WriteHeader(tokenStatus)
			w.Write([]byte(`{"error": "invalid_grant"}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"access_token": "fake-access-token",
			"token_type":   "Bearer",
			"expires_in":   604800,
		})
	})
	mux.HandleFunc("/users/@me", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer fake-access-token", r.Header.Get("Authorization"))
		if profileStatus != http.StatusOK {
			w.WriteHeader(profileStatus)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(profile)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newAuthRouter(t *testing.T, srv *httptest.Server) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	provider := auth.NewDiscordProvider("cid", "csecret", "http://localhost:3000/auth/discord/callback")
	if srv != nil {
		provider.Config.Endpoint.TokenURL = srv.URL + "/oauth2/token"
		provider.APIBase = srv.URL
	}
	provider.RetryDelay = time.Millisecond

	h := NewAuthHandler(provider, testSecret, utils.NewWebhookNotifier(""))

	r := gin.New()
	r.GET("/auth/discord", h.DiscordLogin)
	r.GET("/auth/discord/callback", h.DiscordCallback)
	r.GET("/api/user", h.GetCurrentUser)
	return r
}

func TestDiscordLogin(t *testing.T) {
	r := newAuthRouter(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/auth/discord", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusFound, w.Code)
	location := w.Header().Get("Location")
	assert.Contains(t, location, "client_id=cid")
	assert.Contains(t, location, "state=")
	assert.Contains(t, location, "identify+email")
}

func TestDiscordCallback(t *testing.T) {
	t.Run("missing code redirects with error", func(t *testing.T) {
		r := newAuthRouter(t, nil)

		req := httptest.NewRequest(http.MethodGet, "/auth/discord/callback", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		require.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/?error=No code provided", w.Header().Get("Location"))
	})

	t.Run("successful login returns the storage page", func(t *testing.T) {
		srv := fakeDiscord(t, http.StatusOK, http.StatusOK, map[string]interface{}{
			"id":            "1100354997738274858",
			"username":      "shjra",
			"discriminator": "0",
			"avatar":        "abc123",
		})
		r := newAuthRouter(t, srv)

		req := httptest.NewRequest(http.MethodGet, "/auth/discord/callback?code=authcode", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		body := w.Body.String()
		assert.Contains(t, body, "localStorage.setItem('token'")
		assert.Contains(t, body, "localStorage.setItem('user'")
		assert.Contains(t, body, "/?login_success=true&username=shjra&id=1100354997738274858")
	})

	t.Run("rejected code redirects with error", func(t *testing.T) {
		srv := fakeDiscord(t, http.StatusBadRequest, http.StatusOK, nil)
		r := newAuthRouter(t, srv)

		req := httptest.NewRequest(http.MethodGet, "/auth/discord/callback?code=stale", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		require.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/?error=Authentication failed", w.Header().Get("Location"))
	})

	t.Run("rate limited exchange shows the wait page", func(t *testing.T) {
		srv := fakeDiscord(t, http.StatusTooManyRequests, http.StatusOK, nil)
		r := newAuthRouter(t, srv)

		req := httptest.NewRequest(http.MethodGet, "/auth/discord/callback?code=authcode", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		require.Equal(t, http.StatusTooManyRequests, w.Code)
		assert.Contains(t, w.Body.String(), "Troppe richieste")
	})
}

func TestGetCurrentUser(t *testing.T) {
	r := newAuthRouter(t, nil)

	getUser := func(token string) (int, map[string]json.RawMessage) {
		req := httptest.NewRequest(http.MethodGet, "/api/user", nil)
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		var body map[string]json.RawMessage
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		return w.Code, body
	}

	t.Run("no token is a soft failure", func(t *testing.T) {
		code, body := getUser("")
		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, "false", string(body["success"]))
		assert.Equal(t, "null", string(body["user"]))
	})

	t.Run("invalid token is a soft failure", func(t *testing.T) {
		code, body := getUser("not-a-jwt")
		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, "false", string(body["success"]))
		assert.Equal(t, "null", string(body["user"]))
	})

	t.Run("valid token returns the profile", func(t *testing.T) {
		user := models.User{ID: "42", Username: "cliente", Discriminator: "1234"}
		token, err := utils.GenerateJWT(user, testSecret)
		require.NoError(t, err)

		code, body := getUser(token)
		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, "true", string(body["success"]))

		var got models.User
		require.NoError(t, json.Unmarshal(body["user"], &got))
		assert.Equal(t, user, got)
	})
}
