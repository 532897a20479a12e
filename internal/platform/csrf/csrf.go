// Package csrf は double-submit cookie 方式の anti-forgery トークンを扱う。
//
// GET /csrf でトークンを cookie と JSON の両方に返し、POST 側では
// X-CSRF-Token ヘッダと cookie の値が一致しなければ 403 にする。
package csrf

import (
	"crypto/rand"
	"crypto/subtle"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/oklog/ulid/v2"
)

const (
	CookieName = "imdb_csrf"
	HeaderName = "X-CSRF-Token"
	cookieTTL  = 2 * time.Hour
)

type Guard struct {
	secure bool
	now    func() time.Time
}

// NewGuard: secure=true なら cookie に Secure 属性を付ける（TLS運用時）
func NewGuard(secure bool) *Guard {
	return &Guard{secure: secure, now: time.Now}
}

// ulid のランダム部（80bit）は crypto/rand から取る
func (g *Guard) newToken() (string, error) {
	id, err := ulid.New(ulid.Timestamp(g.now().UTC()), rand.Reader)
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

func (g *Guard) RegisterRoutes(r gin.IRoutes) {
	r.GET("/csrf", g.Issue)
}

// Issue godoc
// @Summary  Issue an anti-forgery token
// @Tags     csrf
// @Produce  json
// @Success  200 {object} map[string]string
// @Router   /csrf [get]
func (g *Guard) Issue(c *gin.Context) {
	tok, err := g.newToken()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to issue token"})
		return
	}
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(CookieName, tok, int(cookieTTL.Seconds()), "/", "", g.secure, true)
	c.JSON(http.StatusOK, gin.H{"token": tok, "header": HeaderName})
}

// Verify: 一致しなければ 403 で打ち切る
func (g *Guard) Verify() gin.HandlerFunc {
	return func(c *gin.Context) {
		cookie, err := c.Cookie(CookieName)
		header := c.GetHeader(HeaderName)
		if err != nil || cookie == "" || header == "" ||
			subtle.ConstantTimeCompare([]byte(cookie), []byte(header)) != 1 {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "anti-forgery token missing or invalid"})
			return
		}
		c.Next()
	}
}
