package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"freightline/pkg/utils"
)

const SessionCookie = "fl_session"

// SessionMiddleware reads the signed session cookie and exposes its session id.
// A missing or invalid cookie is not an error here; handlers that need a session
// reject the request themselves.
func SessionMiddleware(signer *utils.SessionSigner) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(SessionCookie)
		if err != nil || token == "" {
			c.Next()
			return
		}
		id, err := signer.Parse(token)
		if err != nil {
			utils.Logger(c).Debug("dropping session cookie", zap.Error(err))
			c.Next()
			return
		}
		c.Set(utils.SessionIDKey, id)
		c.Next()
	}
}

// SetSessionCookie signs id and stores it in the session cookie.
func SetSessionCookie(c *gin.Context, signer *utils.SessionSigner, id string) error {
	token, err := signer.Sign(id)
	if err != nil {
		return err
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, token, int(signer.TTL().Seconds()), "/", "", c.Request.TLS != nil, true)
	return nil
}

func ClearSessionCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, "", -1, "/", "", c.Request.TLS != nil, true)
}
