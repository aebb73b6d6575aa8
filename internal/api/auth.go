package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/casedesk/cli/internal/models"
	"github.com/casedesk/cli/internal/utils"
)

// Auth endpoints
const (
	SendOTPPath  = "/api/auth/send-otp"
	LoginPath    = "/api/auth/login"
	PINLoginPath = "/api/auth/pin-login"
)

// Fallback messages used when the backend sends no message field
const (
	SendOTPFailed  = "Failed to send OTP"
	LoginFailed    = "Login failed"
	PINLoginFailed = "PIN login failed"
)

// RequestOTP asks the backend to send a one-time password to mobile.
// The number is forwarded as given; format checks belong to the caller.
func (c *Client) RequestOTP(ctx context.Context, mobile string) error {
	resp, err := c.do(ctx, http.MethodPost, SendOTPPath, "", models.SendOTPRequest{Mobile: mobile})
	if err != nil {
		return &utils.AuthError{Message: SendOTPFailed, Err: err}
	}
	if !resp.ok() {
		return utils.NewAuthError(resp.StatusCode, errorMessage(resp.Body, SendOTPFailed))
	}
	return nil
}

// LoginWithOTP verifies the OTP and returns the session the backend issued
func (c *Client) LoginWithOTP(ctx context.Context, mobile, otp string) (*models.Session, error) {
	return c.login(ctx, LoginPath, "", models.OTPLoginRequest{Mobile: mobile, OTP: otp}, LoginFailed)
}

// LoginWithPIN authenticates with a PIN on top of the session identified by
// token and returns the (possibly refreshed) session
func (c *Client) LoginWithPIN(ctx context.Context, token, pin string) (*models.Session, error) {
	return c.login(ctx, PINLoginPath, token, models.PINLoginRequest{PIN: pin}, PINLoginFailed)
}

func (c *Client) login(ctx context.Context, path, token string, payload interface{}, fallback string) (*models.Session, error) {
	resp, err := c.do(ctx, http.MethodPost, path, token, payload)
	if err != nil {
		return nil, &utils.AuthError{Message: fallback, Err: err}
	}
	if !resp.ok() {
		return nil, utils.NewAuthError(resp.StatusCode, errorMessage(resp.Body, fallback))
	}

	var lr models.LoginResponse
	if err := json.Unmarshal(resp.Body, &lr); err != nil {
		return nil, &utils.AuthError{StatusCode: resp.StatusCode, Message: fallback, Err: err}
	}
	if lr.Token == "" || lr.User == nil || !lr.User.HasID() {
		return nil, utils.NewAuthError(resp.StatusCode, fallback)
	}

	return &models.Session{Token: lr.Token, User: *lr.User}, nil
}
