package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dev-alt/invoice-generator-go/currency"
)

// CurrencyHandler serves the currency selector payload
type CurrencyHandler struct{}

func NewCurrencyHandler() *CurrencyHandler {
	return &CurrencyHandler{}
}

// List returns the supported currencies in display order
func (h *CurrencyHandler) List(c *gin.Context) {
	codes := currency.Codes()
	result := make([]gin.H, len(codes))
	for i, code := range codes {
		info := currency.Lookup(code)
		result[i] = gin.H{
			"code":   code,
			"symbol": info.Symbol,
			"name":   info.Name,
			"locale": info.Locale,
		}
	}
	c.JSON(http.StatusOK, gin.H{"currencies": result})
}
