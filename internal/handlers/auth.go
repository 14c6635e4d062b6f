package handlers

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Shjra/Shjra-Maps/internal/auth"
	"github.com/Shjra/Shjra-Maps/internal/middleware"
	"github.com/Shjra/Shjra-Maps/internal/utils"
)

type AuthHandler struct {
	Provider  *auth.DiscordProvider
	JWTSecret string
	LoginHook *utils.WebhookNotifier
}

func NewAuthHandler(provider *auth.DiscordProvider, jwtSecret string, loginHook *utils.WebhookNotifier) *AuthHandler {
	return &AuthHandler{Provider: provider, JWTSecret: jwtSecret, LoginHook: loginHook}
}

// DiscordLogin redirige vers la page d'autorisation Discord
func (h *AuthHandler) DiscordLogin(c *gin.Context) {
	state := uuid.NewString()
	c.Redirect(http.StatusFound, h.Provider.AuthURL(state))
}

// DiscordCallback échange le code, récupère le profil, signe le credential
// et renvoie la page HTML qui le stocke côté client avant de rediriger
func (h *AuthHandler) DiscordCallback(c *gin.Context) {
	code := c.Query("code")
	if code == "" {
		log.Println("❌ Callback Discord sans code")
		c.Redirect(http.StatusFound, "/?error=No code provided")
		return
	}

	ctx := c.Request.Context()

	token, err := h.Provider.Exchange(ctx, code)
	if err != nil {
		log.Printf("❌ Échange du code Discord échoué: %v", err)
		h.oauthFailure(c, err)
		return
	}

	user, err := h.Provider.FetchUser(ctx, token.AccessToken)
	if err != nil {
		log.Printf("❌ Récupération du profil Discord échouée: %v", err)
		h.oauthFailure(c, err)
		return
	}

	signed, err := utils.GenerateJWT(user, h.JWTSecret)
	if err != nil {
		log.Printf("❌ Signature JWT échouée: %v", err)
		c.Redirect(http.StatusFound, "/?error=Authentication failed")
		return
	}

	log.Printf("✅ Login Discord réussi: %s (%s)", user.Username, user.ID)
	h.LoginHook.SendAsync(utils.BuildLoginEmbed(user, time.Now()))

	userJSON, _ := json.Marshal(user)
	redirect := "/?login_success=true&username=" + url.QueryEscape(user.Username) + "&id=" + url.QueryEscape(user.ID)

	page := fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <title>Redirecting...</title>
</head>
<body>
  <script>
    localStorage.setItem('token', '%s');
    localStorage.setItem('user', '%s');
    window.location.href = '%s';
  </script>
</body>
</html>`, signed, userJSON, redirect)

	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(page))
}

// oauthFailure applique la taxonomie d'erreur du callback : page dédiée pour
// le rate limiting Discord, sinon redirection avec paramètre d'erreur
func (h *AuthHandler) oauthFailure(c *gin.Context, err error) {
	if auth.IsRateLimited(err) {
		const page = `<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <title>Shjra Maps - Troppe richieste</title>
</head>
<body style="font-family: sans-serif; text-align: center; padding: 60px;">
  <h1>⏳ Troppe richieste</h1>
  <p>Discord sta limitando le richieste di login in questo momento.</p>
  <p>Attendi qualche minuto e riprova.</p>
  <a href="/">Torna alla home</a>
</body>
</html>`
		c.Data(http.StatusTooManyRequests, "text/html; charset=utf-8", []byte(page))
		return
	}
	c.Redirect(http.StatusFound, "/?error=Authentication failed")
}

// GetCurrentUser vérifie le credential en mode "soft" : jamais d'erreur HTTP,
// le client reçoit toujours un corps JSON bien formé
func (h *AuthHandler) GetCurrentUser(c *gin.Context) {
	token := middleware.BearerToken(c)
	if token == "" {
		c.JSON(http.StatusOK, gin.H{"success": false, "user": nil})
		return
	}

	user, err := utils.ParseJWT(token, h.JWTSecret)
	if err != nil {
		log.Printf("❌ Vérification token échouée: %v", err)
		c.JSON(http.StatusOK, gin.H{"success": false, "user": nil})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "user": user})
}
