// Package ingest coordinates one mail-receipt sync: refresh token, search
// candidate messages, extract receipts, and insert new ledger rows.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/fitracker/fitracker/pkg/config"
	"github.com/fitracker/fitracker/pkg/domain"
	"github.com/fitracker/fitracker/pkg/dto"
	"github.com/fitracker/fitracker/pkg/provider/mail"
	"github.com/fitracker/fitracker/pkg/repository"
	"github.com/fitracker/fitracker/pkg/service/receipt"
	"github.com/google/uuid"
)

type Service struct {
	integrations repository.IntegrationRepository
	transactions repository.TransactionRepository
	wallets      repository.WalletRepository
	oauth        mail.TokenExchanger
	mail         mail.Reader
	cfg          *config.Receipt
	logger       *slog.Logger
}

func New(
	integrations repository.IntegrationRepository,
	transactions repository.TransactionRepository,
	wallets repository.WalletRepository,
	oauth mail.TokenExchanger,
	mailReader mail.Reader,
	cfg *config.Receipt,
	logger *slog.Logger,
) *Service {
	return &Service{
		integrations: integrations,
		transactions: transactions,
		wallets:      wallets,
		oauth:        oauth,
		mail:         mailReader,
		cfg:          cfg,
		logger:       logger,
	}
}

// Sync runs one ingestion pass for the user. It fails fast with
// domain.ErrNotConnected when no refresh token is on file and aborts on
// refresh or search failures. Per-message failures are collected in the
// result and never stop the run; messages without a parseable receipt are
// skipped silently. Access tokens are held in memory only; every sync mints a
// fresh one rather than trusting the stored expiry.
func (s *Service) Sync(ctx context.Context, userID uuid.UUID) (*dto.SyncResult, error) {
	log := s.logger.With("context", "Sync", "userID", userID)

	integ, err := s.integrations.Get(ctx, userID, domain.ProviderGmail)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotConnected
		}
		return nil, fmt.Errorf("failed to load integration: %w", err)
	}
	if !integ.Connected() {
		return nil, domain.ErrNotConnected
	}

	tokens, err := s.oauth.Refresh(ctx, integ.ClientID, integ.ClientSecret, *integ.RefreshToken)
	if err != nil {
		log.Error("token refresh failed", "error", err)
		return nil, err
	}

	ids, err := s.mail.ListMessageIDs(ctx, tokens.AccessToken, s.cfg.Query, s.cfg.MaxResults)
	if err != nil {
		log.Error("message search failed", "error", err)
		return nil, err
	}
	log.Info("candidate messages found", "count", len(ids))

	result := &dto.SyncResult{Errors: []string{}}
	walletID := s.defaultWalletID(ctx, userID)

	for _, id := range ids {
		if err := s.ingestMessage(ctx, userID, id, tokens.AccessToken, walletID, result); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", id, err))
		}
	}

	// The sync timestamp records the attempt even when nothing was added;
	// only runs aborted before message processing skip it.
	now := time.Now().UTC()
	if err := s.integrations.UpdateTokens(ctx, integ.ID, dto.TokenUpdate{LastSyncedAt: &now}); err != nil {
		log.Warn("failed to update sync timestamp", "error", err)
	}

	log.Info("sync finished", "added", result.Added, "errors", len(result.Errors))
	return result, nil
}

// ingestMessage processes a single candidate message. A returned error is
// recorded against the message; skips (duplicate or unparseable) return nil.
func (s *Service) ingestMessage(
	ctx context.Context,
	userID uuid.UUID,
	messageID, accessToken string,
	walletID *uuid.UUID,
	result *dto.SyncResult,
) error {
	exists, err := s.transactions.ExistsBySourceID(ctx, userID, messageID)
	if err != nil {
		return fmt.Errorf("dedup check failed: %w", err)
	}
	if exists {
		return nil
	}

	msg, err := s.mail.GetMessage(ctx, accessToken, messageID)
	if err != nil {
		return fmt.Errorf("fetch failed: %w", err)
	}

	parsed := receipt.Extract(msg)
	if parsed == nil {
		return nil
	}
	if parsed.Amount == 0 {
		s.logger.Warn("receipt amount did not match, ingesting as zero",
			"messageID", messageID)
	}

	sourceID := messageID
	tx := &domain.Transaction{
		ID:          uuid.New(),
		UserID:      userID,
		Type:        domain.TransactionTypeExpense,
		Amount:      parsed.Amount,
		Category:    parsed.Category,
		Date:        parsed.Date,
		WalletID:    walletID,
		SourceID:    &sourceID,
		Description: parsed.Merchant,
	}
	if err := s.transactions.Create(ctx, tx); err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			return fmt.Errorf("insert conflict: %w", err)
		}
		return fmt.Errorf("insert failed: %w", err)
	}

	result.Added++
	return nil
}

// defaultWalletID picks the user's first wallet. Receipts carry no wallet
// information, so ingested rows fall back to it; no wallet at all is fine.
func (s *Service) defaultWalletID(ctx context.Context, userID uuid.UUID) *uuid.UUID {
	w, err := s.wallets.FirstByUser(ctx, userID)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			s.logger.Warn("failed to look up default wallet", "error", err)
		}
		return nil
	}
	return &w.ID
}
