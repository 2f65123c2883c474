package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/dev-alt/invoice-generator-go/routeguard"
	"github.com/dev-alt/invoice-generator-go/session"
)

// Guard enforces the route guard policy on page navigation. API routes
// are left alone; they answer authentication failures through the
// gateway's error taxonomy instead of redirects.
func Guard(store *session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if strings.HasPrefix(path, "/api") || path == "/health" {
			c.Next()
			return
		}

		decision := routeguard.Decide(path, store.Present())
		if decision.Action == routeguard.Redirect {
			c.Redirect(http.StatusFound, decision.Location)
			c.Abort()
			return
		}

		c.Next()
	}
}
