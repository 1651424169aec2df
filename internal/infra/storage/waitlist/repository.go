package waitlist

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ShopBooking/internal/domain"
	"github.com/m04kA/SMC-ShopBooking/internal/infra/storage/pgerr"
	"github.com/m04kA/SMC-ShopBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-ShopBooking/pkg/psqlbuilder"
)

const refCodeConstraint = "waitlist_entries_ref_code_key"

var (
	ErrEntryNotFound    = errors.New("waitlist.repository: entry not found")
	ErrDuplicateRefCode = domain.ErrDuplicateRefCode
	ErrBuildQuery       = errors.New("waitlist.repository: failed to build query")
	ErrExecQuery        = errors.New("waitlist.repository: failed to execute query")
	ErrScanRow          = errors.New("waitlist.repository: failed to scan row")
)

// Repository репозиторий листа ожидания
type Repository struct {
	db dbmetrics.DBExecutor
}

func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create добавляет запись в лист ожидания
func (r *Repository) Create(ctx context.Context, e *domain.WaitlistEntry) (*domain.WaitlistEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("waitlist_entries").
		Columns(
			"id", "shop_id", "service_id", "staff_id", "preferred_date",
			"client_name", "client_email", "client_phone", "ref_code", "status",
		).
		Values(
			e.ID, e.ShopID, e.ServiceID, e.StaffID, e.PreferredDate,
			e.ClientName, e.ClientEmail, e.ClientPhone, e.RefCode, e.Status,
		).
		Suffix("RETURNING created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&createdAt); err != nil {
		if pgerr.IsUniqueViolation(err, refCodeConstraint) {
			return nil, fmt.Errorf("%w: Create - ref_code %s", ErrDuplicateRefCode, e.RefCode)
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}
	e.CreatedAt = createdAt.Time

	return e, nil
}

// GetByRefCode получает запись магазина по коду
func (r *Repository) GetByRefCode(ctx context.Context, shopID, refCode string) (*domain.WaitlistEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id", "shop_id", "service_id", "staff_id", "to_char(preferred_date, 'YYYY-MM-DD')",
		"client_name", "client_email", "client_phone", "ref_code", "status", "created_at",
	).
		From("waitlist_entries").
		Where(squirrel.Eq{"shop_id": shopID, "ref_code": refCode}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByRefCode - build select query: %v", ErrBuildQuery, err)
	}

	var e domain.WaitlistEntry
	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&e.ID, &e.ShopID, &e.ServiceID, &e.StaffID, &e.PreferredDate,
		&e.ClientName, &e.ClientEmail, &e.ClientPhone, &e.RefCode, &e.Status, &createdAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrEntryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByRefCode - scan row: %v", ErrScanRow, err)
	}
	e.CreatedAt = createdAt.Time

	return &e, nil
}
