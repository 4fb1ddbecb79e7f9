package services

import (
	"context"
	"time"

	"github.com/cuentaclara/cuentaclara-backend/internal/core/domain"
	"github.com/cuentaclara/cuentaclara-backend/internal/dto"
)

// JournalSvcFacade owns the journal entry lifecycle. It is the only writer
// of journal data; every entry it accepts balances exactly.
type JournalSvcFacade interface {
	// CreateEntry validates and persists a manual DRAFT entry.
	CreateEntry(ctx context.Context, tenantID string, req dto.CreateJournalEntryRequest, creatorUserID string) (*domain.JournalEntry, error)

	// PostEntry transitions DRAFT -> POSTED.
	PostEntry(ctx context.Context, tenantID, entryID, userID string) (*domain.JournalEntry, error)

	// VoidEntry transitions POSTED -> VOIDED and records the reason. Lines
	// are not reversed; compensating entries are the caller's concern.
	VoidEntry(ctx context.Context, tenantID, entryID, reason, userID string) (*domain.JournalEntry, error)

	// CreateAutoEntry is the bridge-only path: the entry is created POSTED
	// and linked to the business document that produced it.
	CreateAutoEntry(ctx context.Context, tenantID string, params dto.AutoEntryParams, userID string) (*domain.JournalEntry, error)

	GetEntry(ctx context.Context, tenantID, entryID string) (*domain.JournalEntry, error)
	ListEntries(ctx context.Context, tenantID string, from, to time.Time) ([]domain.JournalEntry, error)
}
