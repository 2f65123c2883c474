package gateway

import (
	"context"
	"net/http"
)

// LoginRequest carries user credentials for login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse is the backend's successful login payload
type LoginResponse struct {
	Token string `json:"token"`
}

// RegisterRequest carries new-account details
type RegisterRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	CompanyName string `json:"company_name,omitempty"`
}

// RegisterResponse is the backend's successful registration payload
type RegisterResponse struct {
	Message string `json:"message"`
	UserID  string `json:"user_id"`
}

// Login exchanges credentials for a session token. It does not write
// the session store; the caller decides whether to keep the credential.
func (c *Client) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	var resp LoginResponse
	if _, _, err := c.do(ctx, http.MethodPost, "/api/login", req, &resp, false); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Register creates a new account
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*RegisterResponse, error) {
	var resp RegisterResponse
	if _, _, err := c.do(ctx, http.MethodPost, "/api/register", req, &resp, false); err != nil {
		return nil, err
	}
	return &resp, nil
}
