package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/MKhiriev/go-supa-client/internal/config"
	"github.com/MKhiriev/go-supa-client/internal/logger"
	"github.com/MKhiriev/go-supa-client/internal/utils"
	"github.com/MKhiriev/go-supa-client/models"
)

// ClientInfo is sent in the X-Client-Info header of every request.
const ClientInfo = "go-supa-client/1.0"

const authPath = "/auth/v1"

type httpAuthAdapter struct {
	client *utils.HTTPClient
	now    func() time.Time

	logger *logger.Logger
}

type signInRequest struct {
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// NewHTTPAuthAdapter constructs an HTTP/REST implementation of [AuthAdapter]
// for the project at projectURL. apiKey is the project's anon key: it is sent
// as the "apikey" header on every request and as the bearer token on requests
// that are not made on behalf of a user.
//
// Returns an error wrapping [ErrInvalidBaseURL] if projectURL is empty or
// cannot be parsed as an http(s) URL.
func NewHTTPAuthAdapter(projectURL, apiKey string, adapterCfg config.Adapter, logger *logger.Logger) (AuthAdapter, error) {
	baseURL, err := normalizeBaseURL(projectURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBaseURL, err)
	}

	client := utils.NewHTTPClient().RetryOnGatewayErrors(adapterCfg.RetryCount)
	client.
		SetBaseURL(baseURL+authPath).
		SetTimeout(adapterCfg.RequestTimeout).
		SetHeader("apikey", apiKey).
		SetHeader("X-Client-Info", ClientInfo).
		SetHeader("Content-Type", "application/json").
		SetAuthToken(apiKey)

	return &httpAuthAdapter{client: client, now: time.Now, logger: logger}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", fmt.Errorf("address must include http(s) scheme and host")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// SignUp implements [AuthAdapter]. It POSTs the credentials to
// POST /auth/v1/signup. A response carrying an access token is decoded as a
// session, anything else as the bare user record.
func (h *httpAuthAdapter) SignUp(ctx context.Context, creds models.Credentials) (models.AuthResponse, error) {
	req := h.client.R().
		SetContext(ctx).
		SetBody(creds)
	if creds.RedirectTo != "" {
		req.SetQueryParam("redirect_to", creds.RedirectTo)
	}

	resp, err := req.Post("/signup")
	if err != nil {
		return models.AuthResponse{}, fmt.Errorf("sign up request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.AuthResponse{}, err
	}

	var session models.Session
	if err = json.Unmarshal(resp.Body(), &session); err != nil {
		return models.AuthResponse{}, fmt.Errorf("decode sign up response: %w", err)
	}
	if session.AccessToken != "" {
		h.fillExpiry(&session)
		return models.AuthResponse{User: &session.User, Session: &session}, nil
	}

	var user models.User
	if err = json.Unmarshal(resp.Body(), &user); err != nil {
		return models.AuthResponse{}, fmt.Errorf("decode sign up user: %w", err)
	}

	return models.AuthResponse{User: &user}, nil
}

// SignInWithPassword implements [AuthAdapter]. It POSTs the credentials to
// POST /auth/v1/token?grant_type=password and returns the issued session.
func (h *httpAuthAdapter) SignInWithPassword(ctx context.Context, creds models.Credentials) (models.Session, error) {
	body := signInRequest{Email: creds.Email, Phone: creds.Phone, Password: creds.Password}

	return h.tokenGrant(ctx, "password", body)
}

// RefreshSession implements [AuthAdapter]. It POSTs the refresh token to
// POST /auth/v1/token?grant_type=refresh_token and returns the new session.
func (h *httpAuthAdapter) RefreshSession(ctx context.Context, refreshToken string) (models.Session, error) {
	return h.tokenGrant(ctx, "refresh_token", refreshRequest{RefreshToken: refreshToken})
}

func (h *httpAuthAdapter) tokenGrant(ctx context.Context, grantType string, body any) (models.Session, error) {
	var session models.Session

	resp, err := h.client.R().
		SetContext(ctx).
		SetQueryParam("grant_type", grantType).
		SetBody(body).
		SetResult(&session).
		Post("/token")
	if err != nil {
		return models.Session{}, fmt.Errorf("%s grant request: %w", grantType, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Session{}, err
	}

	h.fillExpiry(&session)
	h.logger.Debug().Str("grant_type", grantType).Msg("token grant succeeded")
	return session, nil
}

// SignOut implements [AuthAdapter]. It sends POST /auth/v1/logout?scope=global
// authorised with accessToken; the server answers 204 on success.
func (h *httpAuthAdapter) SignOut(ctx context.Context, accessToken string) error {
	resp, err := h.client.R().
		SetContext(ctx).
		SetAuthToken(accessToken).
		SetQueryParam("scope", "global").
		Post("/logout")
	if err != nil {
		return fmt.Errorf("sign out request: %w", err)
	}

	return mapHTTPError(resp)
}

// GetUser implements [AuthAdapter]. It sends GET /auth/v1/user authorised
// with accessToken.
func (h *httpAuthAdapter) GetUser(ctx context.Context, accessToken string) (models.User, error) {
	var user models.User

	resp, err := h.client.R().
		SetContext(ctx).
		SetAuthToken(accessToken).
		SetResult(&user).
		Get("/user")
	if err != nil {
		return models.User{}, fmt.Errorf("get user request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.User{}, err
	}

	return user, nil
}

// fillExpiry derives expires_at from expires_in when the server left it out.
func (h *httpAuthAdapter) fillExpiry(session *models.Session) {
	if session.ExpiresAt == 0 && session.ExpiresIn > 0 {
		session.ExpiresAt = h.now().Unix() + session.ExpiresIn
	}
}
