package catalog

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
	ErrServiceNotFound = errors.New("catalog.repository: service not found")
	ErrBuildQuery      = errors.New("catalog.repository: failed to build query")
	ErrScanRow         = errors.New("catalog.repository: failed to scan row")
)

// Repository репозиторий услуг магазина
type Repository struct {
	db dbmetrics.DBExecutor
}

func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetService получает услугу магазина
func (r *Repository) GetService(ctx context.Context, shopID, serviceID string) (*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "shop_id", "name", "duration_minutes", "price", "deposit_percent").
		From("services").
		Where(squirrel.Eq{"shop_id": shopID, "id": serviceID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetService - build select query: %v", ErrBuildQuery, err)
	}

	var s domain.Service
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&s.ID, &s.ShopID, &s.Name, &s.Duration, &s.Price, &s.DepositPercent,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrServiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetService - scan row: %v", ErrScanRow, err)
	}

	return &s, nil
}
