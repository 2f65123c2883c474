package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dev-alt/invoice-generator-go/gateway"
	"github.com/dev-alt/invoice-generator-go/pkg/logger"
	"github.com/dev-alt/invoice-generator-go/session"
)

type AuthHandler struct {
	client  *gateway.Client
	session *session.Store
}

func NewAuthHandler(client *gateway.Client, store *session.Store) *AuthHandler {
	return &AuthHandler{client: client, session: store}
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type RegisterRequest struct {
	Email       string `json:"email" binding:"required"`
	Password    string `json:"password" binding:"required"`
	CompanyName string `json:"company_name"`
}

// Login exchanges credentials with the backend and stores the session.
// This is one of the two sanctioned session writers.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	resp, err := h.client.Login(c.Request.Context(), gateway.LoginRequest{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		writeGatewayError(c, err)
		return
	}

	h.session.Set(resp.Token, req.Email)
	logger.Info(c.Request.Context(), "session created", "email", req.Email)

	c.JSON(http.StatusOK, gin.H{"email": req.Email})
}

// Register creates a new account, then logs straight in so the fresh
// account has a session
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	ctx := c.Request.Context()
	if _, err := h.client.Register(ctx, gateway.RegisterRequest{
		Email:       req.Email,
		Password:    req.Password,
		CompanyName: req.CompanyName,
	}); err != nil {
		writeGatewayError(c, err)
		return
	}

	resp, err := h.client.Login(ctx, gateway.LoginRequest{Email: req.Email, Password: req.Password})
	if err != nil {
		writeGatewayError(c, err)
		return
	}

	h.session.Set(resp.Token, req.Email)
	logger.Info(ctx, "account registered", "email", req.Email)

	c.JSON(http.StatusCreated, gin.H{"email": req.Email})
}

// Logout destroys the local session
func (h *AuthHandler) Logout(c *gin.Context) {
	h.session.Clear()
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// Me reports session presence and the display label
func (h *AuthHandler) Me(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"authenticated": h.session.Present(),
		"email":         h.session.Label(),
	})
}
