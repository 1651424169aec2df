package staff

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

var (
	ErrStaffNotFound = errors.New("staff.repository: staff member not found")
	ErrBuildQuery    = errors.New("staff.repository: failed to build query")
	ErrExecQuery     = errors.New("staff.repository: failed to execute query")
	ErrScanRow       = errors.New("staff.repository: failed to scan row")
)

// Repository репозиторий мастеров магазина
type Repository struct {
	db dbmetrics.DBExecutor
}

func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByShop получает всех мастеров магазина (weekly_hours хранится в JSONB)
func (r *Repository) GetByShop(ctx context.Context, shopID string) ([]domain.StaffMember, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "shop_id", "name", "active", "weekly_hours").
		From("staff").
		Where(squirrel.Eq{"shop_id": shopID}).
		OrderBy("name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByShop - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByShop - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	members := make([]domain.StaffMember, 0)
	for rows.Next() {
		var m domain.StaffMember
		if err := rows.Scan(&m.ID, &m.ShopID, &m.Name, &m.Active, &m.WeeklyHours); err != nil {
			return nil, fmt.Errorf("%w: GetByShop - scan row: %v", ErrScanRow, err)
		}
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByShop - rows error: %v", ErrScanRow, err)
	}

	return members, nil
}

// GetByID получает мастера магазина
func (r *Repository) GetByID(ctx context.Context, shopID, id string) (*domain.StaffMember, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "shop_id", "name", "active", "weekly_hours").
		From("staff").
		Where(squirrel.Eq{"shop_id": shopID, "id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var m domain.StaffMember
	err = executor.QueryRowContext(ctx, query, args...).Scan(&m.ID, &m.ShopID, &m.Name, &m.Active, &m.WeeklyHours)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrStaffNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan row: %v", ErrScanRow, err)
	}

	return &m, nil
}
