package middleware

import (
	"github.com/gin-gonic/gin"

	"freightline/pkg/utils"
)

type LanguageMatcher interface {
	Match(preferred ...string) string
}

// LanguageMiddleware resolves the display language from ?lang=, the lang cookie
// and Accept-Language, in that order.
func LanguageMiddleware(m LanguageMatcher) gin.HandlerFunc {
	return func(c *gin.Context) {
		cookie, _ := c.Cookie("lang")
		lang := m.Match(c.Query("lang"), cookie, c.GetHeader("Accept-Language"))
		c.Set(utils.LanguageKey, lang)
		c.Header("Content-Language", lang)
		c.Next()
	}
}
