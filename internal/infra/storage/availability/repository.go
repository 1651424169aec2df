package availability

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

const tableSlots = "availability_slots"

var selectColumns = []string{
	"id",
	"shop_id",
	"to_char(slot_date, 'YYYY-MM-DD')",
	"start_time",
	"duration_minutes",
	"available",
	"staff_id",
}

// Repository репозиторий ручных слотов доступности
type Repository struct {
	db DBExecutor
}

func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create добавляет ручной слот
func (r *Repository) Create(ctx context.Context, slot *domain.AvailabilitySlot) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(tableSlots).
		Columns("id", "shop_id", "slot_date", "start_time", "duration_minutes", "available", "staff_id").
		Values(slot.ID, slot.ShopID, slot.Date, slot.Time, slot.Duration, slot.Available, slot.StaffID).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// GetByID получает ручной слот магазина
func (r *Repository) GetByID(ctx context.Context, shopID, id string) (*domain.AvailabilitySlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(selectColumns...).
		From(tableSlots).
		Where(squirrel.Eq{"shop_id": shopID, "id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	slot, err := scanSlot(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan slot: %v", ErrScanRow, err)
	}

	return slot, nil
}

// GetByShop получает ручные слоты магазина начиная с fromDate, включая занятые
// (занятые нужны для приоритета над сгенерированными слотами)
func (r *Repository) GetByShop(ctx context.Context, shopID, fromDate string) ([]domain.AvailabilitySlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(selectColumns...).
		From(tableSlots).
		Where(squirrel.Eq{"shop_id": shopID}).
		Where(squirrel.GtOrEq{"slot_date": fromDate}).
		OrderBy("slot_date ASC", "start_time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByShop - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByShop - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]domain.AvailabilitySlot, 0)
	for rows.Next() {
		slot, err := scanSlot(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetByShop - scan row: %v", ErrScanRow, err)
		}
		result = append(result, *slot)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByShop - rows error: %v", ErrScanRow, err)
	}

	return result, nil
}

// Claim занимает слот, только если он еще свободен.
// Ноль затронутых строк означает, что слот занял кто-то другой.
func (r *Repository) Claim(ctx context.Context, shopID, id string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableSlots).
		Set("available", false).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"shop_id": shopID, "id": id, "available": true}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Claim - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		if pgerr.IsSerializationFailure(err) {
			return fmt.Errorf("%w: Claim - execute update: %v", ErrWriteConflict, err)
		}
		return fmt.Errorf("%w: Claim - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Claim - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%w: id=%s", ErrSlotAlreadyClaimed, id)
	}

	return nil
}

// Release снова открывает слот. Отсутствие слота (удален владельцем) не ошибка.
func (r *Repository) Release(ctx context.Context, shopID, id string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableSlots).
		Set("available", true).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"shop_id": shopID, "id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Release - build update query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		if pgerr.IsSerializationFailure(err) {
			return fmt.Errorf("%w: Release - execute update: %v", ErrWriteConflict, err)
		}
		return fmt.Errorf("%w: Release - execute update: %v", ErrExecQuery, err)
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSlot(row rowScanner) (*domain.AvailabilitySlot, error) {
	var slot domain.AvailabilitySlot
	err := row.Scan(
		&slot.ID,
		&slot.ShopID,
		&slot.Date,
		&slot.Time,
		&slot.Duration,
		&slot.Available,
		&slot.StaffID,
	)
	if err != nil {
		return nil, err
	}
	return &slot, nil
}
