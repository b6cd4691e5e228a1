// File: internal/identity/restauth.go
package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"student_directory/internal/common"
	"student_directory/internal/config"
)

// Session is an authenticated provider session, the result of a successful
// password sign-in.
type Session struct {
	UID          string
	Email        string
	DisplayName  string
	IDToken      string
	RefreshToken string
	ExpiresAt    time.Time
}

// RESTAuth performs email/password sign-in against the Identity Toolkit REST
// API. The Admin SDK cannot do this — password sign-in is a client-side
// surface — and no official Go client exists for it, so this is a thin
// hand-rolled call. The HTTP client carries no timeout of its own; callers
// bound the wait through ctx, or not at all, matching the client this
// replaces.
type RESTAuth struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewRESTAuth creates the sign-in client from configuration.
func NewRESTAuth(cfg *config.Config, logger *zap.Logger) *RESTAuth {
	return &RESTAuth{
		apiKey:     cfg.FirebaseWebAPIKey,
		baseURL:    strings.TrimRight(cfg.IdentityToolkitURL, "/"),
		httpClient: &http.Client{},
		logger:     logger.Named("restauth"),
	}
}

type signInRequest struct {
	Email             string `json:"email"`
	Password          string `json:"password"`
	ReturnSecureToken bool   `json:"returnSecureToken"`
}

type signInResponse struct {
	LocalID      string `json:"localId"`
	Email        string `json:"email"`
	DisplayName  string `json:"displayName"`
	IDToken      string `json:"idToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    string `json:"expiresIn"`
}

type errorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// SignIn exchanges email/password for a session. Provider failure codes map
// onto the closed set; anything unrecognized becomes CodeUnknown carrying the
// raw provider message.
func (c *RESTAuth) SignIn(ctx context.Context, email, password string) (*Session, error) {
	payload, err := json.Marshal(signInRequest{
		Email:             strings.TrimSpace(email),
		Password:          password,
		ReturnSecureToken: true,
	})
	if err != nil {
		return nil, fmt.Errorf("encoding sign-in request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/accounts:signInWithPassword?key=%s", c.baseURL, url.QueryEscape(c.apiKey))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("building sign-in request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("sign-in request failed", zap.Error(err))
		return nil, common.Unknownf("identity provider unreachable: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var errResp errorResponse
		if err := json.NewDecoder(resp.Body).Decode(&errResp); err != nil {
			return nil, common.Unknownf("identity provider returned status %d", resp.StatusCode)
		}
		c.logger.Warn("sign-in rejected", zap.String("provider_code", errResp.Error.Message))
		return nil, mapSignInError(errResp.Error.Message)
	}

	var body signInResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, common.Unknownf("decoding sign-in response: %v", err)
	}

	session := &Session{
		UID:          body.LocalID,
		Email:        body.Email,
		DisplayName:  body.DisplayName,
		IDToken:      body.IDToken,
		RefreshToken: body.RefreshToken,
	}
	if seconds, err := strconv.Atoi(body.ExpiresIn); err == nil {
		session.ExpiresAt = time.Now().Add(time.Duration(seconds) * time.Second)
	}

	c.logger.Info("user signed in", zap.String("uid", session.UID))
	return session, nil
}

// mapSignInError translates Identity Toolkit failure codes. Messages may
// carry a suffix after the code ("TOO_MANY_ATTEMPTS_TRY_LATER : ..."), so
// only the leading token is matched.
func mapSignInError(message string) error {
	code := message
	if i := strings.IndexAny(message, " :"); i > 0 {
		code = message[:i]
	}

	switch code {
	case "EMAIL_NOT_FOUND", "USER_NOT_FOUND":
		return common.ErrUserNotFound
	case "INVALID_PASSWORD", "INVALID_LOGIN_CREDENTIALS":
		return common.ErrWrongPassword
	case "INVALID_EMAIL", "MISSING_EMAIL":
		return common.ErrInvalidEmail
	case "TOO_MANY_ATTEMPTS_TRY_LATER":
		return common.ErrTooManyRequests
	case "EMAIL_EXISTS":
		return common.ErrEmailInUse
	case "WEAK_PASSWORD":
		return common.ErrWeakPassword
	default:
		return common.Unknownf("sign-in failed: %s", message)
	}
}
