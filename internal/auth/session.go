package auth

import (
	"log"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/sessions"

	"veloura_back_end/internal/models"
)

const SessionName = "veloura_admin"

var Store *sessions.CookieStore

// InitSessionStore configure le store de sessions admin (cookie signé).
func InitSessionStore() {
	sessionSecret := os.Getenv("SESSION_SECRET")
	if sessionSecret == "" {
		log.Fatal("❌ SESSION_SECRET manquant dans .env")
	}

	Store = sessions.NewCookieStore([]byte(sessionSecret))
	Store.MaxAge(86400 * 7)
	Store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7,
		HttpOnly: true,
		Secure:   false, // false en dev, true en prod
		SameSite: http.SameSiteLaxMode,
	}

	log.Println("✅ Store de sessions admin initialisé")
}

// SetAdminSession ouvre une session pour l'admin connecté.
func SetAdminSession(c *gin.Context, admin models.Admin) error {
	session, _ := Store.Get(c.Request, SessionName)
	session.Values["admin_id"] = admin.ID
	session.Values["email"] = admin.Email
	return session.Save(c.Request, c.Writer)
}

// ClearAdminSession invalide la session (logout).
func ClearAdminSession(c *gin.Context) error {
	session, _ := Store.Get(c.Request, SessionName)
	session.Options.MaxAge = -1
	return session.Save(c.Request, c.Writer)
}

// AdminFromSession extrait l'identité admin du cookie de session, si présente.
func AdminFromSession(r *http.Request) (string, string, bool) {
	if Store == nil {
		return "", "", false
	}
	session, err := Store.Get(r, SessionName)
	if err != nil {
		return "", "", false
	}

	adminID, ok := session.Values["admin_id"].(string)
	if !ok || adminID == "" {
		return "", "", false
	}
	email, _ := session.Values["email"].(string)
	return adminID, email, true
}
