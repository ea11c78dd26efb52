package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	jwtmw "riskwizard_backend/internal/platform/jwt"
)

const RefreshTokenCookie = "refresh_token"

// CookieConfig はトークンCookieの属性です。
type CookieConfig struct {
	Domain     string
	Secure     bool
	SameSite   http.SameSite
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

// NewCookieConfig は本番ではSameSite=None、開発ではLaxを使います。
func NewCookieConfig(domain string, secure, production bool, accessTTL, refreshTTL time.Duration) CookieConfig {
	sameSite := http.SameSiteLaxMode
	if production {
		sameSite = http.SameSiteNoneMode
	}
	return CookieConfig{
		Domain:     domain,
		Secure:     secure,
		SameSite:   sameSite,
		AccessTTL:  accessTTL,
		RefreshTTL: refreshTTL,
	}
}

func (cc CookieConfig) set(c *gin.Context, name, value string, maxAge time.Duration) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		Domain:   cc.Domain,
		MaxAge:   int(maxAge.Seconds()),
		Secure:   cc.Secure,
		HttpOnly: true,
		SameSite: cc.SameSite,
	})
}

func (cc CookieConfig) clear(c *gin.Context, name string) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		Domain:   cc.Domain,
		MaxAge:   -1,
		Secure:   cc.Secure,
		HttpOnly: true,
		SameSite: cc.SameSite,
	})
}

func (cc CookieConfig) setAccess(c *gin.Context, token string) {
	cc.set(c, jwtmw.AccessTokenCookie, token, cc.AccessTTL)
}

func (cc CookieConfig) setRefresh(c *gin.Context, token string) {
	cc.set(c, RefreshTokenCookie, token, cc.RefreshTTL)
}

func (cc CookieConfig) clearAll(c *gin.Context) {
	cc.clear(c, jwtmw.AccessTokenCookie)
	cc.clear(c, RefreshTokenCookie)
}
