package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/cuentaclara/cuentaclara-backend/internal/apperrors"
	"github.com/cuentaclara/cuentaclara-backend/internal/core/domain"
	portsrepo "github.com/cuentaclara/cuentaclara-backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxJournalRepository struct {
	BaseRepository
}

// newPgxJournalRepository creates a new repository for journal entries and lines.
func newPgxJournalRepository(pool *pgxpool.Pool) portsrepo.JournalRepositoryFacade {
	return &PgxJournalRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.JournalRepositoryFacade = (*PgxJournalRepository)(nil)

const entryColumns = `
	entry_id, tenant_id, entry_number, entry_date, description, source, status,
	total_debit, total_credit, void_reason,
	invoice_id, payment_id, purchase_order_id, stock_movement_id, payroll_period_id,
	dian_document_id,
	created_at, created_by, last_updated_at, last_updated_by
`

// SaveEntry persists the entry header and all lines atomically. The
// tenant-scoped sequential entry number is assigned inside the same
// transaction; the advisory lock serializes concurrent writers of one
// tenant so two entries never take the same number.
func (r *PgxJournalRepository) SaveEntry(ctx context.Context, entry *domain.JournalEntry) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, entry.TenantID); err != nil {
		return apperrors.NewAppError(500, "failed to acquire tenant lock", err)
	}

	err = tx.QueryRow(ctx, `
		SELECT COALESCE(MAX(entry_number), 0) + 1
		FROM journal_entries
		WHERE tenant_id = $1;
	`, entry.TenantID).Scan(&entry.EntryNumber)
	if err != nil {
		return apperrors.NewAppError(500, "failed to assign entry number", err)
	}

	entryQuery := `
		INSERT INTO journal_entries (` + entryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20);
	`
	_, err = tx.Exec(ctx, entryQuery,
		entry.EntryID,
		entry.TenantID,
		entry.EntryNumber,
		entry.Date,
		entry.Description,
		entry.Source,
		entry.Status,
		entry.TotalDebit,
		entry.TotalCredit,
		nullIfEmpty(entry.VoidReason),
		nullIfEmpty(entry.Refs.InvoiceID),
		nullIfEmpty(entry.Refs.PaymentID),
		nullIfEmpty(entry.Refs.PurchaseOrderID),
		nullIfEmpty(entry.Refs.StockMovementID),
		nullIfEmpty(entry.Refs.PayrollPeriodID),
		nullIfEmpty(entry.Refs.DianDocumentID),
		entry.CreatedAt,
		entry.CreatedBy,
		entry.LastUpdatedAt,
		entry.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert journal entry "+entry.EntryID, err)
	}

	batch := &pgx.Batch{}
	lineQuery := `
		INSERT INTO journal_entry_lines (line_id, entry_id, line_no, account_id, description, debit, credit)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	for i, line := range entry.Lines {
		batch.Queue(lineQuery,
			line.LineID,
			entry.EntryID,
			i+1,
			line.AccountID,
			line.Description,
			line.Debit,
			line.Credit,
		)
	}
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to insert lines for entry "+entry.EntryID, err)
	}

	return r.Commit(ctx, tx)
}

// FindEntryByID retrieves one entry with its lines, scoped to the tenant.
func (r *PgxJournalRepository) FindEntryByID(ctx context.Context, tenantID, entryID string) (*domain.JournalEntry, error) {
	query := `
		SELECT ` + entryColumns + `
		FROM journal_entries
		WHERE tenant_id = $1 AND entry_id = $2;
	`
	entry, err := scanEntry(r.Pool.QueryRow(ctx, query, tenantID, entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find journal entry "+entryID, err)
	}

	lines, err := r.findLines(ctx, entryID)
	if err != nil {
		return nil, err
	}
	entry.Lines = lines
	return entry, nil
}

// UpdateEntryStatus transitions the entry's status. The state-machine check
// happens in the service; the repository only guards existence.
func (r *PgxJournalRepository) UpdateEntryStatus(ctx context.Context, tenantID, entryID string, status domain.EntryStatus, voidReason string, updatedBy string, updatedAt time.Time) error {
	query := `
		UPDATE journal_entries
		SET status = $3,
		    void_reason = COALESCE($4, void_reason),
		    last_updated_at = $5,
		    last_updated_by = $6
		WHERE tenant_id = $1 AND entry_id = $2;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, tenantID, entryID, status, nullIfEmpty(voidReason), updatedAt, updatedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update status of entry "+entryID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// ListPostedEntries returns POSTED entries dated within [from, to] with
// their lines loaded, ordered by date then entry number.
func (r *PgxJournalRepository) ListPostedEntries(ctx context.Context, tenantID string, from, to time.Time) ([]domain.JournalEntry, error) {
	query := `
		SELECT ` + entryColumns + `
		FROM journal_entries
		WHERE tenant_id = $1 AND status = 'POSTED' AND entry_date >= $2 AND entry_date <= $3
		ORDER BY entry_date, entry_number;
	`
	rows, err := r.Pool.Query(ctx, query, tenantID, from, to)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query posted entries", err)
	}
	defer rows.Close()

	entries := []domain.JournalEntry{}
	entryIDs := []string{}
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan journal entry row", err)
		}
		entries = append(entries, *entry)
		entryIDs = append(entryIDs, entry.EntryID)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating journal entry rows", err)
	}
	if len(entries) == 0 {
		return entries, nil
	}

	linesByEntry, err := r.findLinesByEntryIDs(ctx, entryIDs)
	if err != nil {
		return nil, err
	}
	for i := range entries {
		entries[i].Lines = linesByEntry[entries[i].EntryID]
	}
	return entries, nil
}

// SumPostedLinesByAccount aggregates debit/credit per account over POSTED
// entries dated <= to (and >= from when given).
func (r *PgxJournalRepository) SumPostedLinesByAccount(ctx context.Context, tenantID string, from *time.Time, to time.Time) ([]portsrepo.AccountActivity, error) {
	query := `
		SELECT l.account_id, COALESCE(SUM(l.debit), 0), COALESCE(SUM(l.credit), 0)
		FROM journal_entry_lines l
		JOIN journal_entries e ON l.entry_id = e.entry_id
		WHERE e.tenant_id = $1 AND e.status = 'POSTED' AND e.entry_date <= $2
	`
	args := []any{tenantID, to}
	if from != nil {
		query += ` AND e.entry_date >= $3`
		args = append(args, *from)
	}
	query += ` GROUP BY l.account_id;`

	return r.queryActivity(ctx, query, args...)
}

// SumPostedLinesBefore aggregates debit/credit per account over POSTED
// entries dated strictly before the given instant. The < bound pairs with
// the >= bound of the window queries so no timestamp falls between opening
// and movements.
func (r *PgxJournalRepository) SumPostedLinesBefore(ctx context.Context, tenantID string, before time.Time) ([]portsrepo.AccountActivity, error) {
	query := `
		SELECT l.account_id, COALESCE(SUM(l.debit), 0), COALESCE(SUM(l.credit), 0)
		FROM journal_entry_lines l
		JOIN journal_entries e ON l.entry_id = e.entry_id
		WHERE e.tenant_id = $1 AND e.status = 'POSTED' AND e.entry_date < $2
		GROUP BY l.account_id;
	`
	return r.queryActivity(ctx, query, tenantID, before)
}

func (r *PgxJournalRepository) queryActivity(ctx context.Context, query string, args ...any) ([]portsrepo.AccountActivity, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to aggregate posted lines", err)
	}
	defer rows.Close()

	activity := []portsrepo.AccountActivity{}
	for rows.Next() {
		var a portsrepo.AccountActivity
		if err := rows.Scan(&a.AccountID, &a.TotalDebit, &a.TotalCredit); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan account activity row", err)
		}
		activity = append(activity, a)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating account activity rows", err)
	}
	return activity, nil
}

// ListPostedLines returns the chronological posted lines in the window,
// optionally restricted to one account or to a PUC code prefix.
func (r *PgxJournalRepository) ListPostedLines(ctx context.Context, tenantID string, from, to time.Time, accountID string, codePrefix string) ([]portsrepo.PostedLine, error) {
	query := `
		SELECT e.entry_id, e.entry_number, e.entry_date, e.description,
		       COALESCE(l.description, ''), l.account_id, l.debit, l.credit
		FROM journal_entry_lines l
		JOIN journal_entries e ON l.entry_id = e.entry_id
	`
	args := []any{tenantID, from, to}
	where := ` WHERE e.tenant_id = $1 AND e.status = 'POSTED' AND e.entry_date >= $2 AND e.entry_date <= $3`
	if accountID != "" {
		where += ` AND l.account_id = $4`
		args = append(args, accountID)
	} else if codePrefix != "" {
		query += ` JOIN accounts a ON l.account_id = a.account_id`
		where += ` AND a.code LIKE $4 || '%'`
		args = append(args, codePrefix)
	}
	query += where + ` ORDER BY e.entry_date, e.entry_number, l.line_no;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query posted lines", err)
	}
	defer rows.Close()

	lines := []portsrepo.PostedLine{}
	for rows.Next() {
		var pl portsrepo.PostedLine
		if err := rows.Scan(
			&pl.EntryID,
			&pl.EntryNumber,
			&pl.Date,
			&pl.EntryDescription,
			&pl.LineDescription,
			&pl.AccountID,
			&pl.Debit,
			&pl.Credit,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan posted line row", err)
		}
		lines = append(lines, pl)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating posted line rows", err)
	}
	return lines, nil
}

// findLines loads the lines of one entry in insertion order.
func (r *PgxJournalRepository) findLines(ctx context.Context, entryID string) ([]domain.JournalEntryLine, error) {
	query := `
		SELECT line_id, entry_id, account_id, COALESCE(description, ''), debit, credit
		FROM journal_entry_lines
		WHERE entry_id = $1
		ORDER BY line_no;
	`
	rows, err := r.Pool.Query(ctx, query, entryID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query lines for entry "+entryID, err)
	}
	defer rows.Close()

	lines := []domain.JournalEntryLine{}
	for rows.Next() {
		var l domain.JournalEntryLine
		if err := rows.Scan(&l.LineID, &l.EntryID, &l.AccountID, &l.Description, &l.Debit, &l.Credit); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan line row for entry "+entryID, err)
		}
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating line rows for entry "+entryID, err)
	}
	return lines, nil
}

// findLinesByEntryIDs batch-loads lines for a set of entries.
func (r *PgxJournalRepository) findLinesByEntryIDs(ctx context.Context, entryIDs []string) (map[string][]domain.JournalEntryLine, error) {
	query := `
		SELECT line_id, entry_id, account_id, COALESCE(description, ''), debit, credit
		FROM journal_entry_lines
		WHERE entry_id = ANY($1)
		ORDER BY entry_id, line_no;
	`
	rows, err := r.Pool.Query(ctx, query, entryIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to batch query entry lines", err)
	}
	defer rows.Close()

	linesByEntry := make(map[string][]domain.JournalEntryLine)
	for rows.Next() {
		var l domain.JournalEntryLine
		if err := rows.Scan(&l.LineID, &l.EntryID, &l.AccountID, &l.Description, &l.Debit, &l.Credit); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan line row during batch fetch", err)
		}
		linesByEntry[l.EntryID] = append(linesByEntry[l.EntryID], l)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating line rows during batch fetch", err)
	}
	return linesByEntry, nil
}

// scanEntry reads one journal entry header row.
func scanEntry(row pgx.Row) (*domain.JournalEntry, error) {
	var e domain.JournalEntry
	var voidReason, invoiceID, paymentID, purchaseOrderID, stockMovementID, payrollPeriodID, dianDocumentID *string
	err := row.Scan(
		&e.EntryID,
		&e.TenantID,
		&e.EntryNumber,
		&e.Date,
		&e.Description,
		&e.Source,
		&e.Status,
		&e.TotalDebit,
		&e.TotalCredit,
		&voidReason,
		&invoiceID,
		&paymentID,
		&purchaseOrderID,
		&stockMovementID,
		&payrollPeriodID,
		&dianDocumentID,
		&e.CreatedAt,
		&e.CreatedBy,
		&e.LastUpdatedAt,
		&e.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	e.VoidReason = deref(voidReason)
	e.Refs = domain.EntryRefs{
		InvoiceID:       deref(invoiceID),
		PaymentID:       deref(paymentID),
		PurchaseOrderID: deref(purchaseOrderID),
		StockMovementID: deref(stockMovementID),
		PayrollPeriodID: deref(payrollPeriodID),
		DianDocumentID:  deref(dianDocumentID),
	}
	return &e, nil
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
