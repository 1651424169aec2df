package settings

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ShopBooking/internal/domain"
	"github.com/m04kA/SMC-ShopBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-ShopBooking/pkg/psqlbuilder"
)

// Repository репозиторий настроек бронирования магазина
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория настроек
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Get получает настройки магазина
func (r *Repository) Get(ctx context.Context, shopID string) (*domain.ShopSettings, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"shop_id",
		"buffer_minutes",
		"require_approval",
		"horizon_weeks",
		"created_at",
		"updated_at",
	).
		From("shop_settings").
		Where(squirrel.Eq{"shop_id": shopID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Get - build select query: %v", ErrBuildQuery, err)
	}

	var s domain.ShopSettings
	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&s.ShopID,
		&s.BufferMinutes,
		&s.RequireApproval,
		&s.HorizonWeeks,
		&createdAt,
		&updatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSettingsNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get - scan settings: %v", ErrScanRow, err)
	}

	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time

	return &s, nil
}

// Upsert создает или обновляет настройки магазина
func (r *Repository) Upsert(ctx context.Context, s *domain.ShopSettings) (*domain.ShopSettings, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("shop_settings").
		Columns("shop_id", "buffer_minutes", "require_approval", "horizon_weeks").
		Values(s.ShopID, s.BufferMinutes, s.RequireApproval, s.HorizonWeeks).
		Suffix(`ON CONFLICT (shop_id) DO UPDATE SET
			buffer_minutes = EXCLUDED.buffer_minutes,
			require_approval = EXCLUDED.require_approval,
			horizon_weeks = EXCLUDED.horizon_weeks,
			updated_at = NOW()
		RETURNING created_at, updated_at`).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt); err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute upsert: %v", ErrExecQuery, err)
	}

	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time

	return s, nil
}
