package cookie

import (
	"github.com/gin-gonic/gin"
)

// DefaultAccessTokenCookieName is the session cookie set by the marketplace auth service.
const DefaultAccessTokenCookieName = "access_token"

func GetAccessToken(c *gin.Context, name string) string {
	if name == "" {
		name = DefaultAccessTokenCookieName
	}
	token, _ := c.Cookie(name)
	return token
}
