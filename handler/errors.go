package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dev-alt/invoice-generator-go/gateway"
)

// writeGatewayError translates the gateway's failure taxonomy into the
// shell's HTTP responses. Validation carries field errors for inline
// display; network and server failures are marked retryable so the UI
// can show a retry banner.
func writeGatewayError(c *gin.Context, err error) {
	var gwErr *gateway.Error
	if !errors.As(err, &gwErr) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	switch gwErr.Kind {
	case gateway.KindUnauthorized:
		// Session is already torn down; the client navigates to login
		c.JSON(http.StatusUnauthorized, gin.H{"error": gwErr.Message, "redirect": "/login"})
	case gateway.KindNotFound:
		c.JSON(http.StatusNotFound, gin.H{"error": gwErr.Message})
	case gateway.KindValidation:
		resp := gin.H{"error": gwErr.Message}
		if len(gwErr.Fields) > 0 {
			resp["fields"] = gwErr.Fields
		}
		c.JSON(http.StatusBadRequest, resp)
	case gateway.KindNetwork:
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": gwErr.Message, "retryable": true})
	default:
		c.JSON(http.StatusBadGateway, gin.H{"error": gwErr.Message, "retryable": true})
	}
}
