package google

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/fitracker/fitracker/pkg/config"
	"github.com/fitracker/fitracker/pkg/domain"
	"github.com/fitracker/fitracker/pkg/provider/mail"
)

// GmailClient reads messages through the Gmail REST API using a bearer token
// supplied per call.
type GmailClient struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

type messageListResponse struct {
	Messages []struct {
		ID       string `json:"id"`
		ThreadID string `json:"threadId"`
	} `json:"messages"`
	ResultSizeEstimate int64 `json:"resultSizeEstimate"`
}

func NewGmailClient(cfg *config.Google, logger *slog.Logger) *GmailClient {
	return &GmailClient{
		baseURL: cfg.GmailBaseURL,
		httpClient: &http.Client{
			Timeout: cfg.HTTPTimeout,
		},
		logger: logger,
	}
}

// ListMessageIDs returns identifiers of messages matching query, newest
// first, truncated to max. No matches is an empty slice, not an error.
func (c *GmailClient) ListMessageIDs(
	ctx context.Context,
	accessToken, query string,
	max int64,
) ([]string, error) {
	endpoint := fmt.Sprintf(
		"%s/users/me/messages?q=%s&maxResults=%d",
		c.baseURL, url.QueryEscape(query), max,
	)

	var payload messageListResponse
	if err := c.getJSON(ctx, endpoint, accessToken, &payload); err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(payload.Messages))
	for _, m := range payload.Messages {
		ids = append(ids, m.ID)
	}
	return ids, nil
}

// GetMessage fetches one message with its full MIME payload.
func (c *GmailClient) GetMessage(
	ctx context.Context,
	accessToken, id string,
) (*mail.Message, error) {
	endpoint := fmt.Sprintf("%s/users/me/messages/%s", c.baseURL, url.PathEscape(id))

	var msg mail.Message
	if err := c.getJSON(ctx, endpoint, accessToken, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

func (c *GmailClient) getJSON(ctx context.Context, endpoint, accessToken string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call mail API: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		body := readBody(resp.Body)
		c.logger.Warn("mail API returned error", "status", resp.StatusCode)
		return fmt.Errorf("%w: mail API returned status %d: %s", domain.ErrProviderRejected, resp.StatusCode, body)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode mail API response: %w", err)
	}
	return nil
}

var _ mail.Reader = (*GmailClient)(nil)
