package httperr

import (
	"github.com/gin-gonic/gin"
)

// Response is the single error shape every endpoint returns.
type Response struct {
	Status int    `json:"-"`
	Error  string `json:"error"`
}

// Abort renders the error body and, when the underlying error is
// present, parks it on the gin context so the logging middleware can
// record the cause alongside the request line.
func Abort(c *gin.Context, status int, err error, msg string) {
	resp := Response{Status: status, Error: msg}
	if err != nil {
		_ = c.Error(gin.Error{
			Err:  err,
			Type: gin.ErrorTypePublic,
			Meta: resp,
		})
	}
	c.AbortWithStatusJSON(status, resp)
}
