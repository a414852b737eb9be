// Package google implements the mail provider interfaces against Google's
// OAuth token endpoint and the Gmail REST API.
package google

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/fitracker/fitracker/pkg/config"
	"github.com/fitracker/fitracker/pkg/domain"
	"github.com/fitracker/fitracker/pkg/provider/mail"
)

// OAuthClient exchanges OAuth grants at Google's token endpoint. Credentials
// are caller-supplied per request (bring-your-own-key), so the client itself
// holds no secrets.
type OAuthClient struct {
	tokenURL   string
	httpClient *http.Client
	logger     *slog.Logger
}

// tokenEndpointResponse covers both the success and the error payload of the
// token endpoint; Google returns errors with HTTP 4xx and a JSON body.
type tokenEndpointResponse struct {
	mail.TokenResponse
	ErrorCode        string `json:"error,omitempty"`
	ErrorDescription string `json:"error_description,omitempty"`
}

func NewOAuthClient(cfg *config.Google, logger *slog.Logger) *OAuthClient {
	return &OAuthClient{
		tokenURL: cfg.TokenURL,
		httpClient: &http.Client{
			Timeout: cfg.HTTPTimeout,
		},
		logger: logger,
	}
}

// Exchange converts a single-use authorization code into tokens.
func (c *OAuthClient) Exchange(
	ctx context.Context,
	clientID, clientSecret, code, redirectURI string,
) (*mail.TokenResponse, error) {
	form := url.Values{
		"code":          {code},
		"client_id":     {clientID},
		"client_secret": {clientSecret},
		"redirect_uri":  {redirectURI},
		"grant_type":    {"authorization_code"},
	}
	return c.postForm(ctx, form)
}

// Refresh mints a fresh access token from a stored refresh token.
func (c *OAuthClient) Refresh(
	ctx context.Context,
	clientID, clientSecret, refreshToken string,
) (*mail.TokenResponse, error) {
	form := url.Values{
		"client_id":     {clientID},
		"client_secret": {clientSecret},
		"refresh_token": {refreshToken},
		"grant_type":    {"refresh_token"},
	}
	return c.postForm(ctx, form)
}

func (c *OAuthClient) postForm(ctx context.Context, form url.Values) (*mail.TokenResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call token endpoint: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read token response: %w", err)
	}

	var payload tokenEndpointResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		// A proxy or outage page answers with non-JSON; report the status and
		// body rather than a decode error.
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("%w: token endpoint returned status %d: %s",
				domain.ErrProviderRejected, resp.StatusCode, strings.TrimSpace(string(body)))
		}
		return nil, fmt.Errorf("failed to decode token response: %w", err)
	}

	// The provider's own message is propagated verbatim so users can debug
	// their OAuth app configuration.
	if payload.ErrorCode != "" {
		detail := payload.ErrorCode
		if payload.ErrorDescription != "" {
			detail = payload.ErrorDescription
		}
		c.logger.Warn("token endpoint rejected grant", "error", payload.ErrorCode)
		return nil, fmt.Errorf("%w: %s", domain.ErrProviderRejected, detail)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: token endpoint returned status %d", domain.ErrProviderRejected, resp.StatusCode)
	}
	if payload.AccessToken == "" {
		return nil, fmt.Errorf("%w: token endpoint returned no access token", domain.ErrProviderRejected)
	}

	return &payload.TokenResponse, nil
}

// AuthCodeURL builds the hosted consent page URL for the given OAuth app.
// access_type=offline and prompt=consent force a refresh token grant.
func AuthCodeURL(authURL, clientID, redirectURI, scope string) string {
	v := url.Values{
		"client_id":     {clientID},
		"redirect_uri":  {redirectURI},
		"response_type": {"code"},
		"scope":         {scope},
		"access_type":   {"offline"},
		"prompt":        {"consent"},
	}
	return authURL + "?" + v.Encode()
}

var _ mail.TokenExchanger = (*OAuthClient)(nil)

// maxErrorBodyBytes caps how much of a provider error body is carried into
// error messages and logs.
const maxErrorBodyBytes = 4096

func readBody(r io.Reader) string {
	b, _ := io.ReadAll(io.LimitReader(r, maxErrorBodyBytes))
	return string(b)
}
