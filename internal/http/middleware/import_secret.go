package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
)

const headerImportSecret = "X-Import-Secret"

// RequireImportSecret guards the import endpoints. The header must equal the
// configured secret byte for byte; an unset secret rejects every request.
// Importers are scripts, so the reply is plain text.
func RequireImportSecret(secret string) gin.HandlerFunc {
	want := []byte(secret)
	return func(c *gin.Context) {
		got := []byte(c.GetHeader(headerImportSecret))
		if len(want) == 0 || len(got) == 0 || subtle.ConstantTimeCompare(got, want) != 1 {
			c.String(http.StatusUnauthorized, "Unauthorized")
			c.Abort()
			return
		}
		c.Next()
	}
}
