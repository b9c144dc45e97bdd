package cookie

import (
	"github.com/gin-gonic/gin"
)

const AccessTokenCookieName = "access_token"

func SetAccessTokenCookie(c *gin.Context, token string, maxAgeSeconds int) {
	c.SetCookie(
		AccessTokenCookieName,
		token,
		maxAgeSeconds,
		"/",
		"",
		false,
		true, // HttpOnly
	)
}

func ClearAccessTokenCookie(c *gin.Context) {
	c.SetCookie(
		AccessTokenCookieName,
		"",
		-1,
		"/",
		"",
		false,
		true,
	)
}

func GetAccessToken(c *gin.Context) string {
	token, _ := c.Cookie(AccessTokenCookieName)
	return token
}
