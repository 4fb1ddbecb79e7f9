package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/cuentaclara/cuentaclara-backend/internal/apperrors"
	"github.com/cuentaclara/cuentaclara-backend/internal/core/domain"
	portsrepo "github.com/cuentaclara/cuentaclara-backend/internal/core/ports/repositories"
	portssvc "github.com/cuentaclara/cuentaclara-backend/internal/core/ports/services"
	"github.com/cuentaclara/cuentaclara-backend/internal/dto"
)

// journalService owns the posting/void state machine and the balance
// invariant. It is the only writer of journal data.
type journalService struct {
	BaseService
	journalRepo portsrepo.JournalRepositoryFacade
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewJournalService creates a new JournalService.
func NewJournalService(journalRepo portsrepo.JournalRepositoryFacade, accountRepo portsrepo.AccountRepositoryFacade) portssvc.JournalSvcFacade {
	return &journalService{
		journalRepo: journalRepo,
		accountRepo: accountRepo,
	}
}

var _ portssvc.JournalSvcFacade = (*journalService)(nil)

// validateLines enforces the creation-time invariants: at least two lines,
// per-line amounts non-negative with exactly one positive side, and total
// debits equal to total credits with zero tolerance.
func (s *journalService) validateLines(lines []dto.JournalEntryLineRequest) (totalDebit, totalCredit decimal.Decimal, err error) {
	if len(lines) < 2 {
		return decimal.Zero, decimal.Zero, fmt.Errorf("%w: journal entry must have at least two lines", apperrors.ErrValidation)
	}

	totalDebit = decimal.Zero
	totalCredit = decimal.Zero
	for i, line := range lines {
		if line.Debit.IsNegative() || line.Credit.IsNegative() {
			return decimal.Zero, decimal.Zero, fmt.Errorf("%w: line %d has a negative amount", apperrors.ErrValidation, i)
		}
		if line.Debit.IsPositive() == line.Credit.IsPositive() {
			return decimal.Zero, decimal.Zero, fmt.Errorf("%w: line %d must have exactly one of debit/credit set", apperrors.ErrValidation, i)
		}
		totalDebit = totalDebit.Add(line.Debit)
		totalCredit = totalCredit.Add(line.Credit)
	}

	if !totalDebit.Equal(totalCredit) {
		return decimal.Zero, decimal.Zero, fmt.Errorf("%w: debits sum to %s, credits sum to %s",
			apperrors.ErrUnbalanced, totalDebit.String(), totalCredit.String())
	}
	return totalDebit, totalCredit, nil
}

// buildEntry assembles a domain entry with its lines from a validated line
// set. The entry number is assigned by the repository at insert time.
func (s *journalService) buildEntry(ctx context.Context, tenantID string, date time.Time, description string, source domain.EntrySource, status domain.EntryStatus, refs domain.EntryRefs, lines []dto.JournalEntryLineRequest, userID string) (*domain.JournalEntry, error) {
	totalDebit, totalCredit, err := s.validateLines(lines)
	if err != nil {
		return nil, err
	}

	accountIDs := make([]string, 0, len(lines))
	for _, l := range lines {
		accountIDs = append(accountIDs, l.AccountID)
	}
	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, tenantID, accountIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve accounts: %w", err)
	}
	for _, l := range lines {
		acc, ok := accounts[l.AccountID]
		if !ok {
			return nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, l.AccountID)
		}
		if !acc.IsActive {
			return nil, fmt.Errorf("%w: account %s is inactive", apperrors.ErrValidation, acc.Code)
		}
	}

	now := time.Now().UTC()
	entryID := uuid.NewString()
	entry := &domain.JournalEntry{
		EntryID:     entryID,
		TenantID:    tenantID,
		Date:        date,
		Description: description,
		Source:      source,
		Status:      status,
		TotalDebit:  totalDebit,
		TotalCredit: totalCredit,
		Refs:        refs,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	entry.Lines = make([]domain.JournalEntryLine, len(lines))
	for i, l := range lines {
		entry.Lines[i] = domain.JournalEntryLine{
			LineID:      uuid.NewString(),
			EntryID:     entryID,
			AccountID:   l.AccountID,
			Description: l.Description,
			Debit:       l.Debit,
			Credit:      l.Credit,
		}
	}
	return entry, nil
}

// CreateEntry validates and persists a manual DRAFT entry.
func (s *journalService) CreateEntry(ctx context.Context, tenantID string, req dto.CreateJournalEntryRequest, creatorUserID string) (*domain.JournalEntry, error) {
	if req.Description == "" {
		return nil, fmt.Errorf("%w: description is required", apperrors.ErrValidation)
	}

	entry, err := s.buildEntry(ctx, tenantID, req.Date, req.Description, domain.SourceManual, domain.Draft, domain.EntryRefs{}, req.Lines, creatorUserID)
	if err != nil {
		return nil, err
	}

	if err := s.journalRepo.SaveEntry(ctx, entry); err != nil {
		s.LogError(ctx, err, "Failed to save journal entry", slog.String("entry_id", entry.EntryID))
		return nil, err
	}

	s.LogInfo(ctx, "Journal entry created",
		slog.String("entry_id", entry.EntryID),
		slog.Int64("entry_number", entry.EntryNumber),
		slog.String("status", string(entry.Status)))
	return entry, nil
}

// CreateAutoEntry is the bridge-only creation path: business events are
// settled facts, so the entry skips DRAFT and is posted directly.
func (s *journalService) CreateAutoEntry(ctx context.Context, tenantID string, params dto.AutoEntryParams, userID string) (*domain.JournalEntry, error) {
	entry, err := s.buildEntry(ctx, tenantID, params.Date, params.Description, params.Source, domain.Posted, params.Refs, params.Lines, userID)
	if err != nil {
		return nil, err
	}

	if err := s.journalRepo.SaveEntry(ctx, entry); err != nil {
		s.LogError(ctx, err, "Failed to save auto journal entry",
			slog.String("entry_id", entry.EntryID),
			slog.String("source", string(params.Source)))
		return nil, err
	}

	s.LogInfo(ctx, "Auto journal entry posted",
		slog.String("entry_id", entry.EntryID),
		slog.Int64("entry_number", entry.EntryNumber),
		slog.String("source", string(params.Source)))
	return entry, nil
}

// PostEntry transitions a DRAFT entry to POSTED. Totals were fixed at
// creation; nothing monetary is recomputed here.
func (s *journalService) PostEntry(ctx context.Context, tenantID, entryID, userID string) (*domain.JournalEntry, error) {
	entry, err := s.journalRepo.FindEntryByID(ctx, tenantID, entryID)
	if err != nil {
		return nil, err
	}
	if entry.Status != domain.Draft {
		return nil, fmt.Errorf("%w: cannot post entry in status %s", apperrors.ErrInvalidState, entry.Status)
	}

	now := time.Now().UTC()
	if err := s.journalRepo.UpdateEntryStatus(ctx, tenantID, entryID, domain.Posted, "", userID, now); err != nil {
		s.LogError(ctx, err, "Failed to post journal entry", slog.String("entry_id", entryID))
		return nil, err
	}

	entry.Status = domain.Posted
	entry.LastUpdatedAt = now
	entry.LastUpdatedBy = userID
	s.LogInfo(ctx, "Journal entry posted", slog.String("entry_id", entryID))
	return entry, nil
}

// VoidEntry transitions a POSTED entry to VOIDED. Lines stay untouched; any
// compensating entry is the caller's responsibility.
func (s *journalService) VoidEntry(ctx context.Context, tenantID, entryID, reason, userID string) (*domain.JournalEntry, error) {
	if reason == "" {
		return nil, fmt.Errorf("%w: void reason is required", apperrors.ErrValidation)
	}

	entry, err := s.journalRepo.FindEntryByID(ctx, tenantID, entryID)
	if err != nil {
		return nil, err
	}
	if entry.Status != domain.Posted {
		return nil, fmt.Errorf("%w: cannot void entry in status %s", apperrors.ErrInvalidState, entry.Status)
	}

	now := time.Now().UTC()
	if err := s.journalRepo.UpdateEntryStatus(ctx, tenantID, entryID, domain.Voided, reason, userID, now); err != nil {
		s.LogError(ctx, err, "Failed to void journal entry", slog.String("entry_id", entryID))
		return nil, err
	}

	entry.Status = domain.Voided
	entry.VoidReason = reason
	entry.LastUpdatedAt = now
	entry.LastUpdatedBy = userID
	s.LogInfo(ctx, "Journal entry voided", slog.String("entry_id", entryID), slog.String("reason", reason))
	return entry, nil
}

// GetEntry returns one entry with its lines.
func (s *journalService) GetEntry(ctx context.Context, tenantID, entryID string) (*domain.JournalEntry, error) {
	return s.journalRepo.FindEntryByID(ctx, tenantID, entryID)
}

// ListEntries returns the POSTED entries in a date range.
func (s *journalService) ListEntries(ctx context.Context, tenantID string, from, to time.Time) ([]domain.JournalEntry, error) {
	if to.Before(from) {
		return nil, fmt.Errorf("%w: date range end precedes start", apperrors.ErrValidation)
	}
	return s.journalRepo.ListPostedEntries(ctx, tenantID, from, to)
}
