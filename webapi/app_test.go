package webapi_test

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/fitracker/fitracker/pkg/app"
	"github.com/fitracker/fitracker/pkg/config"
	"github.com/fitracker/fitracker/pkg/domain"
	"github.com/fitracker/fitracker/pkg/dto"
	"github.com/fitracker/fitracker/pkg/provider/mail"
	"github.com/fitracker/fitracker/webapi"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// In-memory repositories backing a full application instance. Handler tests
// exercise the real routing, middleware, services and DTO sanitization with
// only the database and Google swapped out.

type memUserRepo struct {
	users map[uuid.UUID]*domain.User
}

func (m *memUserRepo) Create(_ context.Context, u *domain.User) error {
	for _, existing := range m.users {
		if existing.Username == u.Username || existing.Email == u.Email {
			return domain.ErrAlreadyExists
		}
	}
	m.users[u.ID] = u
	return nil
}

func (m *memUserRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return u, nil
}

func (m *memUserRepo) GetByIdentity(_ context.Context, identity string) (*domain.User, error) {
	for _, u := range m.users {
		if u.Username == identity || u.Email == identity {
			return u, nil
		}
	}
	return nil, domain.ErrNotFound
}

type memIntegrationRepo struct {
	byUser map[uuid.UUID]*domain.Integration
}

func (m *memIntegrationRepo) SaveCredentials(
	_ context.Context, userID uuid.UUID, provider, clientID, clientSecret string,
) (*domain.Integration, error) {
	integ, ok := m.byUser[userID]
	if !ok {
		integ = &domain.Integration{ID: uuid.New(), UserID: userID, Provider: provider}
		m.byUser[userID] = integ
	}
	integ.ClientID = clientID
	integ.ClientSecret = clientSecret
	return integ, nil
}

func (m *memIntegrationRepo) Get(_ context.Context, userID uuid.UUID, _ string) (*domain.Integration, error) {
	integ, ok := m.byUser[userID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return integ, nil
}

func (m *memIntegrationRepo) UpdateTokens(_ context.Context, id uuid.UUID, update dto.TokenUpdate) error {
	for _, integ := range m.byUser {
		if integ.ID != id {
			continue
		}
		if update.AccessToken != nil {
			integ.AccessToken = update.AccessToken
		}
		if update.RefreshToken != nil {
			integ.RefreshToken = update.RefreshToken
		}
		if update.TokenExpiresAt != nil {
			integ.TokenExpiresAt = update.TokenExpiresAt
		}
		if update.IsActive != nil {
			integ.IsActive = *update.IsActive
		}
		if update.LastSyncedAt != nil {
			integ.LastSyncedAt = update.LastSyncedAt
		}
		return nil
	}
	return domain.ErrNotFound
}

type memTransactionRepo struct {
	byID map[uuid.UUID]*domain.Transaction
}

func (m *memTransactionRepo) Create(_ context.Context, t *domain.Transaction) error {
	if t.SourceID != nil {
		for _, existing := range m.byID {
			if existing.UserID == t.UserID && existing.SourceID != nil && *existing.SourceID == *t.SourceID {
				return domain.ErrAlreadyExists
			}
		}
	}
	m.byID[t.ID] = t
	return nil
}

func (m *memTransactionRepo) Get(_ context.Context, id uuid.UUID) (*domain.Transaction, error) {
	t, ok := m.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return t, nil
}

func (m *memTransactionRepo) ListByUser(
	_ context.Context, userID uuid.UUID, _ dto.TransactionFilter,
) ([]*domain.Transaction, error) {
	var out []*domain.Transaction
	for _, t := range m.byID {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (m *memTransactionRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := m.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.byID, id)
	return nil
}

func (m *memTransactionRepo) ExistsBySourceID(_ context.Context, userID uuid.UUID, sourceID string) (bool, error) {
	for _, t := range m.byID {
		if t.UserID == userID && t.SourceID != nil && *t.SourceID == sourceID {
			return true, nil
		}
	}
	return false, nil
}

func (m *memTransactionRepo) SumByCategory(
	_ context.Context, userID uuid.UUID, from, to time.Time,
) ([]dto.CategorySum, error) {
	totals := map[[2]string]float64{}
	for _, t := range m.byID {
		if t.UserID != userID || t.Date.Before(from) || t.Date.After(to) {
			continue
		}
		totals[[2]string{t.Category, string(t.Type)}] += t.Amount
	}
	var out []dto.CategorySum
	for key, total := range totals {
		out = append(out, dto.CategorySum{Category: key[0], Type: key[1], Total: total})
	}
	return out, nil
}

type memWalletRepo struct{}

func (memWalletRepo) Create(_ context.Context, _ *domain.Wallet) error { return nil }
func (memWalletRepo) Get(_ context.Context, _ uuid.UUID) (*domain.Wallet, error) {
	return nil, domain.ErrNotFound
}
func (memWalletRepo) ListByUser(_ context.Context, _ uuid.UUID) ([]*domain.Wallet, error) {
	return nil, nil
}
func (memWalletRepo) Delete(_ context.Context, _ uuid.UUID) error { return domain.ErrNotFound }
func (memWalletRepo) FirstByUser(_ context.Context, _ uuid.UUID) (*domain.Wallet, error) {
	return nil, domain.ErrNotFound
}

type memCategoryRepo struct {
	byID map[uuid.UUID]*domain.Category
}

func (m *memCategoryRepo) Create(_ context.Context, c *domain.Category) error {
	m.byID[c.ID] = c
	return nil
}

func (m *memCategoryRepo) Get(_ context.Context, id uuid.UUID) (*domain.Category, error) {
	c, ok := m.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return c, nil
}

func (m *memCategoryRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]*domain.Category, error) {
	var out []*domain.Category
	for _, c := range m.byID {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *memCategoryRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := m.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.byID, id)
	return nil
}

type memBudgetRepo struct {
	byID map[uuid.UUID]*domain.Budget
}

func (m *memBudgetRepo) Upsert(_ context.Context, b *domain.Budget) (*domain.Budget, error) {
	for _, existing := range m.byID {
		if existing.UserID == b.UserID && existing.Category == b.Category {
			existing.Limit = b.Limit
			return existing, nil
		}
	}
	m.byID[b.ID] = b
	return b, nil
}

func (m *memBudgetRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]*domain.Budget, error) {
	var out []*domain.Budget
	for _, b := range m.byID {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (m *memBudgetRepo) Delete(_ context.Context, userID, id uuid.UUID) error {
	b, ok := m.byID[id]
	if !ok || b.UserID != userID {
		return domain.ErrNotFound
	}
	delete(m.byID, id)
	return nil
}

type stubOAuth struct {
	exchangeErr error
}

func (s *stubOAuth) Exchange(_ context.Context, clientID, _, code, _ string) (*mail.TokenResponse, error) {
	if s.exchangeErr != nil {
		return nil, s.exchangeErr
	}
	return &mail.TokenResponse{
		AccessToken:  "access-" + code,
		RefreshToken: "refresh-" + clientID,
		ExpiresIn:    3600,
	}, nil
}

func (s *stubOAuth) Refresh(_ context.Context, _, _, refreshToken string) (*mail.TokenResponse, error) {
	return &mail.TokenResponse{AccessToken: "access-from-" + refreshToken, ExpiresIn: 3600}, nil
}

type stubReader struct {
	messages map[string]*mail.Message
}

func (s *stubReader) ListMessageIDs(_ context.Context, _, _ string, _ int64) ([]string, error) {
	ids := make([]string, 0, len(s.messages))
	for id := range s.messages {
		ids = append(ids, id)
	}
	return ids, nil
}

func (s *stubReader) GetMessage(_ context.Context, _, id string) (*mail.Message, error) {
	msg, ok := s.messages[id]
	if !ok {
		return nil, errors.New("no such message")
	}
	return msg, nil
}

func testConfig() *config.App {
	return &config.App{
		Env: "test",
		Jwt: &config.Jwt{Secret: "test-secret", Expiry: time.Hour},
		RateLimit: &config.RateLimit{
			MaxRequests: 1000,
			Window:      time.Minute,
		},
		Google: &config.Google{
			AuthURL: "https://accounts.google.com/o/oauth2/v2/auth",
			Scope:   "https://www.googleapis.com/auth/gmail.readonly",
		},
		Receipt: &config.Receipt{
			Query:      `from:no-reply@gojek.com "Bukti Pembayaran"`,
			MaxResults: 10,
		},
	}
}

func newTestApp(reader *stubReader) *fiber.App {
	deps := &config.Deps{
		Users:        &memUserRepo{users: map[uuid.UUID]*domain.User{}},
		Integrations: &memIntegrationRepo{byUser: map[uuid.UUID]*domain.Integration{}},
		Transactions: &memTransactionRepo{byID: map[uuid.UUID]*domain.Transaction{}},
		Wallets:      memWalletRepo{},
		Categories:   &memCategoryRepo{byID: map[uuid.UUID]*domain.Category{}},
		Budgets:      &memBudgetRepo{byID: map[uuid.UUID]*domain.Budget{}},
		OAuth:        &stubOAuth{},
		Mail:         reader,
		Logger:       slog.Default(),
		Config:       testConfig(),
	}
	return webapi.SetupApp(app.New(deps))
}

func doJSON(t *testing.T, fiberApp *fiber.App, method, target, body, token string) (int, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := fiberApp.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close() //nolint:errcheck

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var decoded map[string]any
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(t, json.Unmarshal(raw, &decoded))
	} else {
		decoded = map[string]any{"raw": string(raw)}
	}
	return resp.StatusCode, decoded
}

func registerAndLogin(t *testing.T, fiberApp *fiber.App) string {
	return registerAndLoginAs(t, fiberApp, "budi")
}

func registerAndLoginAs(t *testing.T, fiberApp *fiber.App, username string) string {
	t.Helper()
	status, _ := doJSON(t, fiberApp, fiber.MethodPost, "/auth/register",
		fmt.Sprintf(`{"username":%q,"email":"%s@example.com","password":"s3cret-pass"}`, username, username), "")
	require.Equal(t, fiber.StatusCreated, status)

	status, body := doJSON(t, fiberApp, fiber.MethodPost, "/auth/login",
		fmt.Sprintf(`{"identity":%q,"password":"s3cret-pass"}`, username), "")
	require.Equal(t, fiber.StatusOK, status)

	data, ok := body["data"].(map[string]any)
	require.True(t, ok)
	token, ok := data["token"].(string)
	require.True(t, ok)
	return token
}

func receiptHTML(merchant, total string) string {
	html := fmt.Sprintf(`<html><body>
		<table><tr><td>Pembayaran kepada</td><td>%s</td></tr></table>
		<p>Total Bayar Rp %s</p>
	</body></html>`, merchant, total)
	return base64.RawURLEncoding.EncodeToString([]byte(html))
}

func TestHealthRoute(t *testing.T) {
	fiberApp := newTestApp(&stubReader{})
	status, body := doJSON(t, fiberApp, fiber.MethodGet, "/", "", "")
	assert.Equal(t, fiber.StatusOK, status)
	assert.Contains(t, body["raw"], "App is working!")
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	fiberApp := newTestApp(&stubReader{})

	// A missing token is a malformed request; a garbage token fails verification.
	status, _ := doJSON(t, fiberApp, fiber.MethodGet, "/integrations/gmail/", "", "")
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, _ = doJSON(t, fiberApp, fiber.MethodGet, "/integrations/gmail/", "", "not-a-jwt")
	assert.Equal(t, fiber.StatusUnauthorized, status)
}

func TestGmailConnectAndSyncFlow(t *testing.T) {
	reader := &stubReader{messages: map[string]*mail.Message{
		"m1": {
			ID: "m1",
			Payload: mail.Payload{
				MimeType: "text/html",
				Headers:  []mail.Header{{Name: "Date", Value: "Mon, 2 Jun 2025 14:30:00 +0700"}},
				Body:     mail.Body{Size: 1, Data: receiptHTML("GoFood Sate Madura", "27.500")},
			},
		},
	}}
	fiberApp := newTestApp(reader)
	token := registerAndLogin(t, fiberApp)

	// Save BYOK credentials. The response must stay sanitized.
	status, body := doJSON(t, fiberApp, fiber.MethodPut, "/integrations/gmail/",
		`{"client_id":"client-x","client_secret":"super-secret"}`, token)
	require.Equal(t, fiber.StatusOK, status)
	encoded, err := json.Marshal(body)
	require.NoError(t, err)
	assert.NotContains(t, string(encoded), "super-secret")
	data := body["data"].(map[string]any)
	assert.Equal(t, false, data["connected"])

	// Consent URL is built from the stored client id.
	status, body = doJSON(t, fiberApp, fiber.MethodGet,
		"/integrations/gmail/auth-url?redirect_uri=http://localhost:5173", "", token)
	require.Equal(t, fiber.StatusOK, status)
	url := body["data"].(map[string]any)["url"].(string)
	assert.Contains(t, url, "client_id=client-x")
	assert.Contains(t, url, "access_type=offline")

	// Sync before connect fails fast.
	status, body = doJSON(t, fiberApp, fiber.MethodPost, "/integrations/gmail/sync", "", token)
	require.Equal(t, fiber.StatusBadRequest, status)
	assert.Contains(t, body["detail"], "not connected")

	// Exchange the code and activate.
	status, _ = doJSON(t, fiberApp, fiber.MethodPost, "/integrations/gmail/connect",
		`{"code":"auth-code","redirect_uri":"http://localhost:5173"}`, token)
	require.Equal(t, fiber.StatusOK, status)

	status, body = doJSON(t, fiberApp, fiber.MethodGet, "/integrations/gmail/", "", token)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, true, body["data"].(map[string]any)["connected"])

	// First sync ingests the receipt.
	status, body = doJSON(t, fiberApp, fiber.MethodPost, "/integrations/gmail/sync", "", token)
	require.Equal(t, fiber.StatusOK, status)
	assert.EqualValues(t, 1, body["added"])
	assert.Empty(t, body["errors"])

	// Second sync is a no-op.
	status, body = doJSON(t, fiberApp, fiber.MethodPost, "/integrations/gmail/sync", "", token)
	require.Equal(t, fiber.StatusOK, status)
	assert.EqualValues(t, 0, body["added"])

	// The ingested row shows up in the ledger.
	status, body = doJSON(t, fiberApp, fiber.MethodGet, "/transactions/", "", token)
	require.Equal(t, fiber.StatusOK, status)
	items := body["data"].([]any)
	require.Len(t, items, 1)
	tx := items[0].(map[string]any)
	assert.Equal(t, "Expense", tx["type"])
	assert.Equal(t, 27500.0, tx["amount"])
	assert.Equal(t, "Food", tx["category"])
	assert.Equal(t, "m1", tx["source_id"])
}

func TestCrossUserDeletesAreRejected(t *testing.T) {
	fiberApp := newTestApp(&stubReader{})
	ownerToken := registerAndLoginAs(t, fiberApp, "budi")
	otherToken := registerAndLoginAs(t, fiberApp, "siti")

	status, body := doJSON(t, fiberApp, fiber.MethodPost, "/categories/",
		`{"name":"Groceries","type":"Expense"}`, ownerToken)
	require.Equal(t, fiber.StatusCreated, status)
	categoryID := body["data"].(map[string]any)["id"].(string)

	status, body = doJSON(t, fiberApp, fiber.MethodPut, "/budgets/",
		`{"category":"Groceries","limit":1500000}`, ownerToken)
	require.Equal(t, fiber.StatusOK, status)
	budgetID := body["data"].(map[string]any)["id"].(string)

	// Another user who learns the ids must not be able to delete the rows.
	status, _ = doJSON(t, fiberApp, fiber.MethodDelete, "/categories/"+categoryID, "", otherToken)
	assert.Equal(t, fiber.StatusForbidden, status)

	status, _ = doJSON(t, fiberApp, fiber.MethodDelete, "/budgets/"+budgetID, "", otherToken)
	assert.Equal(t, fiber.StatusNotFound, status)

	status, body = doJSON(t, fiberApp, fiber.MethodGet, "/categories/", "", ownerToken)
	require.Equal(t, fiber.StatusOK, status)
	require.Len(t, body["data"].([]any), 1, "category must survive a cross-user delete attempt")

	status, body = doJSON(t, fiberApp, fiber.MethodGet, "/budgets/", "", ownerToken)
	require.Equal(t, fiber.StatusOK, status)
	require.Len(t, body["data"].([]any), 1, "budget must survive a cross-user delete attempt")

	// The owner still can.
	status, _ = doJSON(t, fiberApp, fiber.MethodDelete, "/categories/"+categoryID, "", ownerToken)
	assert.Equal(t, fiber.StatusOK, status)
	status, _ = doJSON(t, fiberApp, fiber.MethodDelete, "/budgets/"+budgetID, "", ownerToken)
	assert.Equal(t, fiber.StatusOK, status)
}

func TestManualTransactionLifecycle(t *testing.T) {
	fiberApp := newTestApp(&stubReader{})
	token := registerAndLogin(t, fiberApp)

	status, body := doJSON(t, fiberApp, fiber.MethodPost, "/transactions/",
		`{"type":"Expense","amount":50000,"category":"Food","date":"2025-06-02T00:00:00Z","description":"warteg"}`, token)
	require.Equal(t, fiber.StatusCreated, status)
	id := body["data"].(map[string]any)["id"].(string)

	status, _ = doJSON(t, fiberApp, fiber.MethodPost, "/transactions/",
		`{"type":"Gift","amount":1,"category":"Food","date":"2025-06-02T00:00:00Z"}`, token)
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, _ = doJSON(t, fiberApp, fiber.MethodDelete, "/transactions/"+id, "", token)
	assert.Equal(t, fiber.StatusOK, status)

	status, body = doJSON(t, fiberApp, fiber.MethodGet, "/transactions/", "", token)
	require.Equal(t, fiber.StatusOK, status)
	assert.Empty(t, body["data"])
}
