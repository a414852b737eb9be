// Package mail defines the capability interfaces the receipt pipeline needs
// from a mail provider: an OAuth token endpoint and a read-only message API.
// Implementations live under infra/provider.
package mail

import "context"

// TokenResponse is the provider token endpoint's success payload.
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
	ExpiresIn    int64  `json:"expires_in"`
	TokenType    string `json:"token_type,omitempty"`
	Scope        string `json:"scope,omitempty"`
}

// TokenExchanger converts OAuth grants into tokens. Exchange consumes a
// single-use authorization code; Refresh mints a fresh access token from a
// stored refresh token.
type TokenExchanger interface {
	Exchange(ctx context.Context, clientID, clientSecret, code, redirectURI string) (*TokenResponse, error)
	Refresh(ctx context.Context, clientID, clientSecret, refreshToken string) (*TokenResponse, error)
}

// Header is a transport header on a message payload.
type Header struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Body carries base64url-encoded part content.
type Body struct {
	Size int    `json:"size"`
	Data string `json:"data,omitempty"`
}

// Part is one MIME section of a multipart message.
type Part struct {
	MimeType string `json:"mimeType"`
	Body     Body   `json:"body"`
	Parts    []Part `json:"parts,omitempty"`
}

// Payload is the full MIME tree of a message.
type Payload struct {
	MimeType string   `json:"mimeType"`
	Headers  []Header `json:"headers"`
	Body     Body     `json:"body"`
	Parts    []Part   `json:"parts,omitempty"`
}

// Message is a single mail message with its MIME payload.
type Message struct {
	ID      string  `json:"id"`
	Payload Payload `json:"payload"`
}

// Header returns the first header with the given name, or "" if absent.
func (m *Message) Header(name string) string {
	for _, h := range m.Payload.Headers {
		if h.Name == name {
			return h.Value
		}
	}
	return ""
}

// Reader lists and fetches messages. List returns identifiers only, most
// recent first; each message is fetched individually for full content.
type Reader interface {
	ListMessageIDs(ctx context.Context, accessToken, query string, max int64) ([]string, error)
	GetMessage(ctx context.Context, accessToken, id string) (*Message, error)
}
